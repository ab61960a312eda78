package spawn

import (
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

// Kind — вид зелья. Weight задаёт относительную частоту появления.
// Положительные Attack/Defense дают бафф, отрицательные — дебафф
// длительностью Duration ходов.
type Kind struct {
	Name     string
	Weight   float64
	Health   int
	Mana     int
	Attack   int
	Defense  int
	Duration int
}

// Apply applies the potion to u.
func (k *Kind) Apply(u *model.Unit) {
	u.Restore(k.Health, k.Mana)
	if k.Duration <= 0 {
		return
	}
	if atk, def := max(k.Attack, 0), max(k.Defense, 0); atk > 0 || def > 0 {
		u.ApplyBuff(atk, def, k.Duration)
	}
	if atk, def := -min(k.Attack, 0), -min(k.Defense, 0); atk > 0 || def > 0 {
		u.ApplyDebuff(atk, def, k.Duration)
	}
}

// Config — параметры спавнера.
type Config struct {
	Max         int // одновременно на поле
	Lifetime    int // ходов до исчезновения
	FirstMin    int
	FirstMax    int
	IntervalMin int
	IntervalMax int
	Kinds       []Kind
}

// DefaultConfig returns the stock potion table.
func DefaultConfig() Config {
	return Config{
		Max:         10,
		Lifetime:    15,
		FirstMin:    5,
		FirstMax:    8,
		IntervalMin: 15,
		IntervalMax: 20,
		Kinds: []Kind{
			{Name: "red potion", Weight: 0.8, Health: 150},
			{Name: "blue potion", Weight: 0.8, Mana: 80},
			{Name: "green potion", Weight: 0.3, Health: 75, Mana: 40},
			{Name: "golden potion", Weight: 0.2, Attack: 30, Defense: 20, Duration: 3},
			{Name: "black potion", Weight: 0.2, Mana: 200, Attack: 40, Defense: -20, Duration: 3},
		},
	}
}

func (c Config) validate() error {
	if len(c.Kinds) == 0 {
		return ErrNoKinds
	}
	for _, k := range c.Kinds {
		if k.Weight <= 0 {
			return fmt.Errorf("%w: %s", ErrBadWeight, k.Name)
		}
	}
	if c.Max <= 0 {
		return ErrNonPositiveMax
	}
	if c.FirstMin < 0 || c.FirstMin > c.FirstMax || c.IntervalMin <= 0 || c.IntervalMin > c.IntervalMax {
		return ErrBadInterval
	}
	return nil
}
