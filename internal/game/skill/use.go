// Package skill resolves champion abilities: gating on mana and cooldown,
// picking targets around the cursor or the caster, and applying each
// effect variant through the combat resolver.
package skill

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/model"
)

// DefaultEffectDuration is used when a buff or debuff does not set its own.
const DefaultEffectDuration = 8

var (
	ErrNoSuchAbility  = errors.New("no such ability")
	ErrNotEnoughMana  = errors.New("not enough mana")
	ErrOnCooldown     = errors.New("ability on cooldown")
	ErrNoTarget       = errors.New("no valid target")
	ErrUnknownEffect  = errors.New("unknown ability effect")
	ErrCasterNotReady = errors.New("caster cannot act")
)

// Outcome describes one target affected by an ability.
type Outcome struct {
	Target *model.Unit

	// Hit is set for damage and heal abilities.
	Hit *combat.Hit

	// Attack and Defense are the applied deltas for buffs and debuffs.
	Attack   int
	Defense  int
	Duration int
}

// Result is what a successful Use returns.
type Result struct {
	Caster   *model.Unit
	Ability  *model.Ability
	Anchor   model.Point
	Outcomes []Outcome
}

// Killed returns the targets that died to this ability.
// Units killed by a counter-attack are not included.
func (r Result) Killed() []*model.Unit {
	var dead []*model.Unit
	for _, o := range r.Outcomes {
		if o.Hit != nil && o.Hit.Killed {
			dead = append(dead, o.Target)
		}
	}
	return dead
}

// Caster applies abilities. It holds no match state.
type Caster struct {
	resolver       *combat.Resolver
	buffDuration   int
	debuffDuration int
}

// NewCaster creates a Caster. Non-positive durations fall back to
// DefaultEffectDuration.
func NewCaster(resolver *combat.Resolver, buffDuration, debuffDuration int) *Caster {
	if buffDuration <= 0 {
		buffDuration = DefaultEffectDuration
	}
	if debuffDuration <= 0 {
		debuffDuration = DefaultEffectDuration
	}
	return &Caster{
		resolver:       resolver,
		buffDuration:   buffDuration,
		debuffDuration: debuffDuration,
	}
}

// Check validates that caster can fire ability idx right now, without
// looking at targets.
func Check(caster *model.Unit, idx int) (*model.Ability, error) {
	if !caster.Alive() {
		return nil, ErrCasterNotReady
	}
	if idx < 0 || idx >= len(caster.Abilities) {
		return nil, fmt.Errorf("%w: index %d, %s has %d", ErrNoSuchAbility, idx, caster.Name, len(caster.Abilities))
	}
	a := caster.Abilities[idx]
	if !a.Ready() {
		return nil, fmt.Errorf("%w: %s has %d turns left", ErrOnCooldown, a.Name, a.RemainingCooldown)
	}
	if !a.CanAfford(caster.Mana()) {
		return nil, fmt.Errorf("%w: %s needs %d, have %d", ErrNotEnoughMana, a.Name, a.ManaCost, caster.Mana())
	}
	return a, nil
}

// Use fires ability idx of caster with the attack cursor at cursor.
//
// The ability is rejected before any mutation when it is on cooldown, the
// caster lacks mana, or no unit qualifies as a target. On success mana is
// debited, the cooldown restarts and every target receives the effect.
func (c *Caster) Use(caster *model.Unit, idx int, cursor model.Point, units []*model.Unit) (Result, error) {
	a, err := Check(caster, idx)
	if err != nil {
		return Result{}, err
	}

	anchor := Anchor(a, caster, cursor)
	targets := Targets(a, caster, anchor, units)
	if len(targets) == 0 {
		return Result{}, fmt.Errorf("%w: %s at %v", ErrNoTarget, a.Name, anchor)
	}

	res := Result{Caster: caster, Ability: a, Anchor: anchor}
	switch e := a.Effect.(type) {
	case model.DamageHeal:
		amount := e.Amount
		if e.Mode == model.ModeHeal {
			amount = -amount
		}
		for _, t := range targets {
			h := c.resolver.Resolve(caster, t, amount, e.DamageType)
			res.Outcomes = append(res.Outcomes, Outcome{Target: t, Hit: &h})
		}
	case model.Buff:
		d := duration(e.Duration, c.buffDuration)
		for _, t := range targets {
			t.ApplyBuff(e.Attack, e.Defense, d)
			res.Outcomes = append(res.Outcomes, Outcome{Target: t, Attack: e.Attack, Defense: e.Defense, Duration: d})
		}
	case model.Debuff:
		d := duration(e.Duration, c.debuffDuration)
		for _, t := range targets {
			t.ApplyDebuff(e.Attack, e.Defense, d)
			res.Outcomes = append(res.Outcomes, Outcome{Target: t, Attack: e.Attack, Defense: e.Defense, Duration: d})
		}
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownEffect, a.Effect)
	}

	caster.AddMana(-a.ManaCost)
	a.StartCooldown()

	slog.Debug("ability used",
		"caster", caster.Name,
		"ability", a.Name,
		"kind", a.KindName(),
		"targets", len(targets),
		"mana_left", caster.Mana())

	return res, nil
}

func duration(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}
