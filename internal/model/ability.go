package model

import "fmt"

// AreaShape — форма области действия способности.
type AreaShape int8

const (
	AreaSingle  AreaShape = iota // одна цель под курсором
	AreaDiamond                  // манхэттенский радиус
	AreaCircle                   // евклидов радиус
)

func (a AreaShape) String() string {
	switch a {
	case AreaDiamond:
		return "diamond"
	case AreaCircle:
		return "circle"
	default:
		return "single"
	}
}

// IsArea reports whether the shape hits more than the cursor tile.
func (a AreaShape) IsArea() bool { return a != AreaSingle }

// Effect — закрытый (sealed) интерфейс варианта способности.
// Варианты: DamageHeal, Buff, Debuff. Разрешение эффекта делается через type switch.
type Effect interface {
	effect()
}

// HealMode selects whether a DamageHeal ability hurts or heals.
type HealMode int8

const (
	ModeDamage HealMode = iota
	ModeHeal
)

func (m HealMode) String() string {
	if m == ModeHeal {
		return "heal"
	}
	return "damage"
}

// DamageHeal наносит урон (Amount > 0 через формулу защиты) или лечит.
type DamageHeal struct {
	Mode       HealMode
	Amount     int
	DamageType DamageType
}

// Buff добавляет Attack к урону и Defense к обеим защитам на Duration ходов.
// Duration 0 означает «длительность по умолчанию из правил».
type Buff struct {
	Attack   int
	Defense  int
	Duration int
}

// Debuff снимает Attack с урона и Defense с обеих защит цели.
type Debuff struct {
	Attack   int
	Defense  int
	Duration int
}

func (DamageHeal) effect() {}
func (Buff) effect()       {}
func (Debuff) effect()     {}

// Ability — способность, принадлежащая ровно одному юниту.
// Создаётся при создании юнита из шаблона; кулдаун и мана меняются
// только при использовании и на тике конца хода.
type Ability struct {
	Name              string
	Description       string
	ManaCost          int
	Cooldown          int
	RemainingCooldown int

	// Radius — attack_radius из конфига; nil если не задан.
	Radius *int
	Area   AreaShape

	Effect Effect
}

// Clone returns an independent copy, so that units never share ability state.
func (a *Ability) Clone() *Ability {
	cp := *a
	if a.Radius != nil {
		r := *a.Radius
		cp.Radius = &r
	}
	return &cp
}

// Ready reports whether the ability is off cooldown.
func (a *Ability) Ready() bool {
	return a.RemainingCooldown == 0
}

// CanAfford reports whether mana covers the cost.
func (a *Ability) CanAfford(mana int) bool {
	return mana >= a.ManaCost
}

// StartCooldown sets the remaining cooldown to the configured value.
func (a *Ability) StartCooldown() {
	a.RemainingCooldown = a.Cooldown
}

// TickCooldown уменьшает оставшийся кулдаун на 1, не ниже нуля.
func (a *Ability) TickCooldown() {
	if a.RemainingCooldown > 0 {
		a.RemainingCooldown--
	}
}

// CursorRange returns how far the attack cursor may travel while this ability
// is selected. Abilities without a configured radius fall back to the
// caster's attack range.
func (a *Ability) CursorRange(attackRange int) int {
	if a.Radius != nil {
		return *a.Radius
	}
	return attackRange
}

// AreaRadius returns the AoE radius. An area ability without a configured
// radius covers only the anchor tile.
func (a *Ability) AreaRadius() int {
	if a.Radius != nil {
		return *a.Radius
	}
	return 0
}

// Supportive reports whether the ability targets allies (heals and buffs)
// rather than opponents.
func (a *Ability) Supportive() bool {
	switch e := a.Effect.(type) {
	case DamageHeal:
		return e.Mode == ModeHeal
	case Buff:
		return true
	default:
		return false
	}
}

// KindName returns the config name of the ability variant.
func (a *Ability) KindName() string {
	switch a.Effect.(type) {
	case DamageHeal:
		return "DamageHealAbility"
	case Buff:
		return "BuffAbility"
	case Debuff:
		return "DebuffAbility"
	default:
		return fmt.Sprintf("%T", a.Effect)
	}
}
