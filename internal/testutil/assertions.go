package testutil

import (
	"testing"

	"github.com/udisondev/skirmish/internal/model"
)

// AssertHealthInvariant проверяет 0 ≤ health ≤ max и health == 0 ⇔ dead для всех юнитов.
func AssertHealthInvariant(t testing.TB, units []*model.Unit) {
	t.Helper()

	for _, u := range units {
		if u.Health() < 0 || u.Health() > u.MaxHealth() {
			t.Fatalf("%s: health %d outside [0, %d]", u.Name, u.Health(), u.MaxHealth())
		}
		if (u.Health() == 0) != !u.Alive() {
			t.Fatalf("%s: health %d but alive=%v", u.Name, u.Health(), u.Alive())
		}
	}
}

// TotalKeys sums keys of the given colour across units.
func TotalKeys(units []*model.Unit, color model.Team) int {
	total := 0
	for _, u := range units {
		total += u.Keys(color)
	}
	return total
}

// Kill drops a unit to zero health.
func Kill(u *model.Unit) {
	u.TakeDamage(u.MaxHealth() * 10)
}
