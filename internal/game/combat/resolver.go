package combat

import (
	"log/slog"
	"time"

	"github.com/udisondev/skirmish/internal/model"
)

// Hit is the outcome of a single Resolve call.
type Hit struct {
	Attacker   *model.Unit
	Target     *model.Unit
	Base       int
	Amount     int // after crit and mitigation; negative for heals
	DamageType model.DamageType
	Crit       bool
	Absorbed   bool // base barrier swallowed the hit
	Killed     bool

	// Counter is the target's reaction, if it struck back.
	Counter *Hit
}

// Landed reports whether the hit changed the target's health.
func (h Hit) Landed() bool {
	return h.Amount != 0
}

// reaction is the per-kind response to being hit.
type reaction func(r *Resolver, self, attacker *model.Unit) *Hit

var reactions map[model.Kind]reaction

func init() {
	reactions = map[model.Kind]reaction{
		model.KindMonster: counterAttack,
	}
}

// counterAttack — монстр отвечает атакующему базовым уроном, если тот в радиусе атаки.
func counterAttack(r *Resolver, self, attacker *model.Unit) *Hit {
	if !self.Alive() || !attacker.Alive() {
		return nil
	}
	if self.Pos.Manhattan(attacker.Pos) > self.AttackRange {
		return nil
	}
	h := r.Resolve(self, attacker, self.AttackPower(), model.DamagePhysical)
	return &h
}

// Resolver applies attacks and heals to units.
// It holds no match state; the roller and clock are injected.
type Resolver struct {
	roller Roller
	now    func() time.Time
}

// NewResolver creates a Resolver. A nil roller falls back to DiceRoller.
func NewResolver(roller Roller) *Resolver {
	if roller == nil {
		roller = DiceRoller{}
	}
	return &Resolver{roller: roller, now: time.Now}
}

// SetClock overrides the clock used to stamp LastDamageAt.
func (r *Resolver) SetClock(now func() time.Time) {
	r.now = now
}

// Resolve applies amount from attacker to target.
//
// Workflow:
//  1. Roll 1–100; crit doubles positive amounts when roll ≤ attacker crit chance.
//  2. Positive amounts are mitigated by the target defense for dt; heals pass through.
//  3. A base with its barrier up absorbs everything.
//  4. Health is clamped to [0, max]; zero health kills.
//  5. The target's reaction runs (monsters counter-attack).
func (r *Resolver) Resolve(attacker, target *model.Unit, amount int, dt model.DamageType) Hit {
	hit := Hit{Attacker: attacker, Target: target, Base: amount, DamageType: dt}
	if target == nil || !target.Alive() {
		return hit
	}

	hit.Crit = IsCrit(r.roller.Roll(), attacker.CritChance, amount)
	hit.Amount = MitigateFor(target, amount, dt, hit.Crit)

	if target.IsBase() && target.Barrier == model.BarrierUp {
		hit.Amount = 0
		hit.Absorbed = true
	}

	hit.Killed = target.TakeDamage(hit.Amount)
	target.RecordHit(hit.Amount, dt, r.now())

	slog.Debug("hit resolved",
		"attacker", attacker.Name,
		"target", target.Name,
		"base", amount,
		"amount", hit.Amount,
		"crit", hit.Crit,
		"killed", hit.Killed)

	if react, ok := reactions[target.Kind]; ok {
		hit.Counter = react(r, target, attacker)
	}
	return hit
}
