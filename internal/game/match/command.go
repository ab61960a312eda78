package match

import (
	"fmt"
	"strings"

	"github.com/udisondev/skirmish/internal/model"
)

// Direction is one of the four grid directions.
type Direction int8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int8(d))
	}
}

// Step returns p moved one tile in direction d. Y grows downwards.
func (d Direction) Step(p model.Point) model.Point {
	switch d {
	case Up:
		return p.Add(0, -1)
	case Down:
		return p.Add(0, 1)
	case Left:
		return p.Add(-1, 0)
	case Right:
		return p.Add(1, 0)
	default:
		return p
	}
}

// ParseDirection accepts up/down/left/right and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Command is a decoded player input. The set of commands is closed.
type Command interface {
	command()
	fmt.Stringer
}

// MoveStep moves the unit one tile during the move phase.
type MoveStep struct{ Dir Direction }

// FinalizeMove ends the move phase on the current tile.
type FinalizeMove struct{}

// MoveCursor moves the attack cursor one tile during the attack phase.
type MoveCursor struct{ Dir Direction }

// SelectAbility selects ability Index (0-based).
type SelectAbility struct{ Index int }

// CancelAbility clears the ability selection.
type CancelAbility struct{}

// Confirm fires the selected ability, or a basic attack if none is selected.
type Confirm struct{}

// EndTurn passes the turn to the next unit.
type EndTurn struct{}

func (MoveStep) command()      {}
func (FinalizeMove) command()  {}
func (MoveCursor) command()    {}
func (SelectAbility) command() {}
func (CancelAbility) command() {}
func (Confirm) command()       {}
func (EndTurn) command()       {}

func (c MoveStep) String() string      { return "move " + c.Dir.String() }
func (FinalizeMove) String() string    { return "finalize" }
func (c MoveCursor) String() string    { return "cursor " + c.Dir.String() }
func (c SelectAbility) String() string { return fmt.Sprintf("ability %d", c.Index+1) }
func (CancelAbility) String() string   { return "cancel" }
func (Confirm) String() string         { return "confirm" }
func (EndTurn) String() string         { return "end turn" }
