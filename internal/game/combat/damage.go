package combat

import (
	"math/rand/v2"

	"github.com/udisondev/skirmish/internal/model"
)

// CritMultiplier is applied to positive amounts on a critical hit.
const CritMultiplier = 2

// defenseScale is the defense value that halves incoming damage.
const defenseScale = 100

// Roller produces a uniform integer in [1, 100].
type Roller interface {
	Roll() int
}

// DiceRoller rolls with math/rand/v2.
type DiceRoller struct{}

func (DiceRoller) Roll() int { return rand.IntN(100) + 1 }

// FixedRoller always returns the same value. Used by tests and replays of
// scripted scenarios.
type FixedRoller int

func (f FixedRoller) Roll() int { return int(f) }

// IsCrit checks whether roll lands a critical hit for the given crit chance.
// Heals and zero amounts never crit.
func IsCrit(roll, critChance, amount int) bool {
	return amount > 0 && roll <= critChance
}

// Mitigate applies the diminishing-returns defense curve:
//
//	floor(amount × mult × (1 − def/(def+100)))
//
// computed as amount×mult×100/(def+100) in integers so that the floor is exact.
// Non-positive amounts are heals and pass through untouched. Negative
// defense (heavy debuffs) counts as zero.
func Mitigate(amount, defense, mult int) int {
	if amount <= 0 {
		return amount
	}
	if defense < 0 {
		defense = 0
	}
	return amount * mult * defenseScale / (defense + defenseScale)
}

// MitigateFor is Mitigate against target's defense for dt.
func MitigateFor(target *model.Unit, amount int, dt model.DamageType, crit bool) int {
	mult := 1
	if crit {
		mult = CritMultiplier
	}
	return Mitigate(amount, target.Defense(dt), mult)
}
