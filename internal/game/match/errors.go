package match

import (
	"errors"

	"github.com/udisondev/skirmish/internal/game/skill"
)

// Rejections. A rejected command never mutates the match.
var (
	ErrNotActive      = errors.New("unit is not the active unit")
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrWrongPhase     = errors.New("command not allowed in this phase")
	ErrNotHighlighted = errors.New("tile is not reachable")
	ErrTileOccupied   = errors.New("tile is occupied")
	ErrOutOfRange     = errors.New("cursor out of range")
	ErrMatchOver      = errors.New("match is over")
	ErrUnknownCommand = errors.New("unknown command")

	ErrNoSuchAbility = skill.ErrNoSuchAbility
	ErrNotEnoughMana = skill.ErrNotEnoughMana
	ErrOnCooldown    = skill.ErrOnCooldown
	ErrNoTarget      = skill.ErrNoTarget
)
