// Package event defines the records the engine emits for the presentation layer:
// combat log lines, deaths, key transfers, barrier breaches and cosmetic cues.
package event

import (
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

// Kind classifies an Event.
type Kind string

const (
	KindLog            Kind = "log"
	KindRejected       Kind = "rejected"
	KindHit            Kind = "hit"
	KindHeal           Kind = "heal"
	KindMiss           Kind = "miss"
	KindDeath          Kind = "death"
	KindAmbush         Kind = "ambush"
	KindBuff           Kind = "buff"
	KindDebuff         Kind = "debuff"
	KindEffectExpired  Kind = "effect_expired"
	KindMonsterBuff    Kind = "monster_buff"
	KindKeyTransfer    Kind = "key_transfer"
	KindKeysFrozen     Kind = "keys_frozen"
	KindBarrierBreach  Kind = "barrier_breach"
	KindRespawn        Kind = "respawn"
	KindMonsterRespawn Kind = "monster_respawn"
	KindPickup         Kind = "pickup"
	KindTurn           Kind = "turn"
	KindNoEligible     Kind = "no_eligible_units"
	KindGameOver       Kind = "game_over"
	KindFX             Kind = "fx"
)

// FX describes a cosmetic cue. The engine only emits it; drawing is up to the client.
type FX struct {
	Shake     bool        `json:"shake,omitempty"`
	Flash     string      `json:"flash,omitempty"`
	Particles int         `json:"particles,omitempty"`
	At        model.Point `json:"at"`
}

// Event is a single thing that happened while resolving a command or a turn tick.
type Event struct {
	Kind    Kind       `json:"kind"`
	Turn    int        `json:"turn"`
	Message string     `json:"message"`
	Unit    string     `json:"unit,omitempty"`
	Target  string     `json:"target,omitempty"`
	Amount  int        `json:"amount,omitempty"`
	Team    model.Team `json:"team,omitempty"`
	FX      *FX        `json:"fx,omitempty"`
}

// Loggable reports whether the event carries a line for the combat log.
func (e Event) Loggable() bool {
	return e.Kind != KindFX && e.Message != ""
}

func (e Event) String() string {
	return fmt.Sprintf("[turn %d] %s: %s", e.Turn, e.Kind, e.Message)
}

// New builds an event with a formatted message.
func New(kind Kind, turn int, format string, args ...any) Event {
	return Event{Kind: kind, Turn: turn, Message: fmt.Sprintf(format, args...)}
}

// Effect builds a cosmetic event at p.
func Effect(turn int, p model.Point, shake bool, flash string, particles int) Event {
	return Event{
		Kind: KindFX,
		Turn: turn,
		FX:   &FX{Shake: shake, Flash: flash, Particles: particles, At: p},
	}
}

// Buffer accumulates events during one command.
type Buffer struct {
	Turn   int
	events []Event
}

// Add appends e, stamping the buffer's turn when unset.
func (b *Buffer) Add(e Event) {
	if e.Turn == 0 {
		e.Turn = b.Turn
	}
	b.events = append(b.events, e)
}

// Addf appends a formatted event of the given kind.
func (b *Buffer) Addf(kind Kind, format string, args ...any) {
	b.events = append(b.events, New(kind, b.Turn, format, args...))
}

// Append adds already built events.
func (b *Buffer) Append(events ...Event) {
	for _, e := range events {
		b.Add(e)
	}
}

// Events returns the accumulated events.
func (b *Buffer) Events() []Event {
	return b.events
}
