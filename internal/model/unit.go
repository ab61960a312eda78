package model

import (
	"fmt"
	"math"
	"time"
)

// NoAbility — значение Unit.Selected, когда способность не выбрана.
const NoAbility = -1

// UnitSpec — статические параметры для создания юнита (из ростера).
type UnitSpec struct {
	Name            string
	Team            Team
	Kind            Kind
	Seat            string
	Pos             Point
	Health          int
	Mana            int
	Damage          int
	PhysicalDefense int
	MagicalDefense  int
	CritChance      int
	MoveRange       int
	AttackRange     int
	Abilities       []*Ability
}

// Unit — чемпион, монстр или база. Одна запись на все виды;
// различия в поведении определяются полем Kind.
//
// HP и флаг alive изменяются только через методы, которые держат инвариант
// health == 0 ⇔ !alive и 0 ≤ health ≤ maxHealth.
type Unit struct {
	ID   int
	Name string
	Team Team
	Kind Kind
	Seat string

	Pos     Point
	Initial Point // позиция на начало хода, от неё считается дальность движения

	health    int
	maxHealth int
	mana      int
	maxMana   int

	PhysicalDefense int
	MagicalDefense  int
	Damage          int
	CritChance      int

	MoveRange   int
	AttackRange int

	Phase     Phase
	Selected  int
	Cursor    Point
	Abilities []*Ability

	BuffedDamage    int
	BuffedDefense   int
	BuffDuration    int
	DebuffedDamage  int
	DebuffedDefense int
	DebuffDuration  int

	RedKeys  int
	BlueKeys int

	alive      bool
	DeathTimer int

	Barrier BarrierStatus

	// Для всплывающих цифр урона в UI.
	DamageTaken     int
	DamageTakenType DamageType
	LastDamageAt    time.Time
}

// NewUnit создаёт живого юнита с полным HP/MP.
// Способности клонируются, чтобы юниты никогда не делили состояние кулдаунов.
func NewUnit(spec UnitSpec) *Unit {
	abilities := make([]*Ability, 0, len(spec.Abilities))
	for _, a := range spec.Abilities {
		abilities = append(abilities, a.Clone())
	}
	maxHealth := spec.Health
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Unit{
		Name:            spec.Name,
		Team:            spec.Team,
		Kind:            spec.Kind,
		Seat:            spec.Seat,
		Pos:             spec.Pos,
		Initial:         spec.Pos,
		Cursor:          spec.Pos,
		health:          maxHealth,
		maxHealth:       maxHealth,
		mana:            spec.Mana,
		maxMana:         spec.Mana,
		PhysicalDefense: spec.PhysicalDefense,
		MagicalDefense:  spec.MagicalDefense,
		Damage:          spec.Damage,
		CritChance:      spec.CritChance,
		MoveRange:       spec.MoveRange,
		AttackRange:     spec.AttackRange,
		Phase:           PhaseMove,
		Selected:        NoAbility,
		Abilities:       abilities,
		alive:           true,
		Barrier:         BarrierUp,
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s(%s %s #%d)", u.Name, u.Team, u.Kind, u.ID)
}

// Health возвращает текущее HP.
func (u *Unit) Health() int { return u.health }

// MaxHealth возвращает максимальное HP.
func (u *Unit) MaxHealth() int { return u.maxHealth }

// Mana возвращает текущую ману.
func (u *Unit) Mana() int { return u.mana }

// MaxMana возвращает максимальную ману.
func (u *Unit) MaxMana() int { return u.maxMana }

// Alive reports whether the unit can act and be targeted.
func (u *Unit) Alive() bool { return u.alive }

func (u *Unit) IsPlayer() bool  { return u.Kind == KindPlayer }
func (u *Unit) IsMonster() bool { return u.Kind == KindMonster }
func (u *Unit) IsBase() bool    { return u.Kind == KindBase }

// Opposes reports whether other belongs to a different side.
// Neutral monsters oppose both teams.
func (u *Unit) Opposes(other *Unit) bool {
	return u.Team != other.Team
}

// TakeDamage вычитает amount из HP (отрицательный amount лечит) и
// ограничивает результат диапазоном [0, maxHealth].
// Returns true when this call killed the unit.
func (u *Unit) TakeDamage(amount int) bool {
	if !u.alive {
		return false
	}
	u.setHealth(u.health - amount)
	return !u.alive
}

// RecordHit сохраняет данные для отображения последнего попадания.
func (u *Unit) RecordHit(amount int, dt DamageType, at time.Time) {
	u.DamageTaken = amount
	u.DamageTakenType = dt
	u.LastDamageAt = at
}

// Restore adds health and mana, capped at their maxima. Dead units are ignored.
func (u *Unit) Restore(health, mana int) {
	if !u.alive {
		return
	}
	u.setHealth(u.health + health)
	u.AddMana(mana)
}

// AddMana добавляет ману (или снимает при отрицательном значении), clamp 0..maxMana.
func (u *Unit) AddMana(delta int) {
	m := u.mana + delta
	if m < 0 {
		m = 0
	}
	if m > u.maxMana {
		m = u.maxMana
	}
	u.mana = m
}

// ScaleMaxHealth умножает максимальное HP (бафф за убийство монстра).
// Текущее HP не меняется, только обрезается при необходимости.
func (u *Unit) ScaleMaxHealth(mult float64) {
	m := Scale(u.maxHealth, mult)
	if m < 1 {
		m = 1
	}
	u.maxHealth = m
	if u.health > m {
		u.health = m
	}
}

// ScaleDamage multiplies base damage, rounding down.
func (u *Unit) ScaleDamage(mult float64) {
	u.Damage = Scale(u.Damage, mult)
}

// Scale floors v×mult. The epsilon keeps decimal multipliers such as 1.15
// from landing one below the exact product.
func Scale(v int, mult float64) int {
	return int(math.Floor(float64(v)*mult + 1e-9))
}

// Revive воскрешает юнита с полным HP в точке at и сбрасывает состояние хода.
func (u *Unit) Revive(at Point) {
	u.alive = true
	u.health = u.maxHealth
	u.DeathTimer = 0
	u.Pos = at
	u.Initial = at
	u.Cursor = at
	u.Phase = PhaseMove
	u.Selected = NoAbility
}

func (u *Unit) setHealth(h int) {
	if h < 0 {
		h = 0
	}
	if h > u.maxHealth {
		h = u.maxHealth
	}
	u.health = h
	if h == 0 {
		u.alive = false
	}
}

// AttackPower returns the damage used for a basic attack or a counter-attack.
// Debuffs may push Damage below zero; that never turns into a heal.
func (u *Unit) AttackPower() int {
	if u.Damage < 0 {
		return 0
	}
	return u.Damage
}

// Defense returns the raw defense matching dt.
func (u *Unit) Defense(dt DamageType) int {
	if dt == DamageMagical {
		return u.MagicalDefense
	}
	return u.PhysicalDefense
}

// --- Turn state ---

// SelectedAbility возвращает выбранную способность или nil.
func (u *Unit) SelectedAbility() *Ability {
	if u.Selected < 0 || u.Selected >= len(u.Abilities) {
		return nil
	}
	return u.Abilities[u.Selected]
}

// ActiveRange returns the cursor range for the current attack phase.
func (u *Unit) ActiveRange() int {
	if a := u.SelectedAbility(); a != nil {
		return a.CursorRange(u.AttackRange)
	}
	return u.AttackRange
}

// ResetCursor moves the attack cursor back onto the unit.
func (u *Unit) ResetCursor() {
	u.Cursor = u.Pos
}

// ResetTurn возвращает юнита в фазу Move и фиксирует стартовую позицию.
func (u *Unit) ResetTurn() {
	u.Phase = PhaseMove
	u.Selected = NoAbility
	u.Initial = u.Pos
	u.Cursor = u.Pos
}

// --- Keys ---

// TakeKeys переносит все ключи victim на u и обнуляет их у victim.
func (u *Unit) TakeKeys(victim *Unit) (red, blue int) {
	red, blue = victim.RedKeys, victim.BlueKeys
	u.RedKeys += red
	u.BlueKeys += blue
	victim.RedKeys = 0
	victim.BlueKeys = 0
	return red, blue
}

// Keys returns the number of keys of the given colour.
func (u *Unit) Keys(color Team) int {
	switch color {
	case TeamRed:
		return u.RedKeys
	case TeamBlue:
		return u.BlueKeys
	default:
		return 0
	}
}

// AddKeys adds n keys of the given colour.
func (u *Unit) AddKeys(color Team, n int) {
	switch color {
	case TeamRed:
		u.RedKeys += n
	case TeamBlue:
		u.BlueKeys += n
	}
}
