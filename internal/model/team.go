package model

import "fmt"

// Team — принадлежность юнита к стороне.
type Team int8

const (
	TeamNone    Team = iota // чемпион ещё не выбран ни одной стороной
	TeamBlue                // синяя команда
	TeamRed                 // красная команда
	TeamNeutral             // нейтральные монстры
)

// String returns the lowercase team name used in logs and configs.
func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "blue"
	case TeamRed:
		return "red"
	case TeamNeutral:
		return "neutral"
	default:
		return "none"
	}
}

// Opponent возвращает противоположную команду для blue/red.
// Для neutral/none возвращает TeamNone.
func (t Team) Opponent() Team {
	switch t {
	case TeamBlue:
		return TeamRed
	case TeamRed:
		return TeamBlue
	default:
		return TeamNone
	}
}

// ParseTeam converts a config string into a Team.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "blue":
		return TeamBlue, nil
	case "red":
		return TeamRed, nil
	case "neutral":
		return TeamNeutral, nil
	case "", "none":
		return TeamNone, nil
	}
	return TeamNone, fmt.Errorf("unknown team %q", s)
}

// Kind — вид юнита. Поведение (реакция на атаку, участие в очереди ходов)
// выбирается по Kind, а не через наследование.
type Kind int8

const (
	KindPlayer Kind = iota
	KindMonster
	KindBase
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindBase:
		return "base"
	default:
		return fmt.Sprintf("kind(%d)", int8(k))
	}
}

// Phase — состояние юнита внутри хода: Move → Attack → Done.
type Phase int8

const (
	PhaseMove Phase = iota
	PhaseAttack
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseAttack:
		return "attack"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int8(p))
	}
}

// BarrierStatus — состояние барьера базы.
type BarrierStatus int8

const (
	BarrierUp BarrierStatus = iota
	BarrierDown
)

func (b BarrierStatus) String() string {
	if b == BarrierDown {
		return "Down"
	}
	return "Up"
}

// DamageType selects which defense mitigates a hit.
type DamageType int8

const (
	DamagePhysical DamageType = iota
	DamageMagical
)

func (d DamageType) String() string {
	if d == DamageMagical {
		return "magical"
	}
	return "physical"
}

// ParseDamageType converts a config string into a DamageType.
// Empty string means physical.
func ParseDamageType(s string) (DamageType, error) {
	switch s {
	case "", "physical":
		return DamagePhysical, nil
	case "magical":
		return DamageMagical, nil
	}
	return DamagePhysical, fmt.Errorf("unknown damage type %q", s)
}

// MarshalText encodes the team by name.
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a team name.
func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
