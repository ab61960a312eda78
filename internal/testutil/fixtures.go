package testutil

import (
	"github.com/udisondev/skirmish/internal/model"
)

// Fixtures содержит стандартные параметры юнитов для тестов,
// чтобы не дублировать их в каждом пакете.
var Fixtures = struct {
	ChampionHealth int
	ChampionMana   int
	MonsterHealth  int
	BaseHealth     int
}{
	ChampionHealth: 1000,
	ChampionMana:   200,
	MonsterHealth:  390,
	BaseHealth:     2500,
}

// UnitOption tweaks a unit built by the fixture constructors.
type UnitOption func(*model.UnitSpec)

// WithDefense sets both defenses.
func WithDefense(physical, magical int) UnitOption {
	return func(s *model.UnitSpec) {
		s.PhysicalDefense = physical
		s.MagicalDefense = magical
	}
}

// WithDamage sets base damage.
func WithDamage(d int) UnitOption {
	return func(s *model.UnitSpec) { s.Damage = d }
}

// WithCrit sets crit chance in percent.
func WithCrit(c int) UnitOption {
	return func(s *model.UnitSpec) { s.CritChance = c }
}

// WithHealth sets max health.
func WithHealth(h int) UnitOption {
	return func(s *model.UnitSpec) { s.Health = h }
}

// WithMana sets max mana.
func WithMana(m int) UnitOption {
	return func(s *model.UnitSpec) { s.Mana = m }
}

// WithRanges sets move and attack range.
func WithRanges(move, attack int) UnitOption {
	return func(s *model.UnitSpec) {
		s.MoveRange = move
		s.AttackRange = attack
	}
}

// WithSeat assigns a seat id.
func WithSeat(seat string) UnitOption {
	return func(s *model.UnitSpec) { s.Seat = seat }
}

// WithAbilities gives the unit abilities (cloned by model.NewUnit).
func WithAbilities(abilities ...*model.Ability) UnitOption {
	return func(s *model.UnitSpec) { s.Abilities = abilities }
}

// Champion создаёт чемпиона без защиты и крита: удобно для точной арифметики урона.
func Champion(name string, team model.Team, at model.Point, opts ...UnitOption) *model.Unit {
	spec := model.UnitSpec{
		Name:        name,
		Team:        team,
		Kind:        model.KindPlayer,
		Pos:         at,
		Health:      Fixtures.ChampionHealth,
		Mana:        Fixtures.ChampionMana,
		Damage:      100,
		MoveRange:   3,
		AttackRange: 2,
	}
	return build(spec, opts)
}

// Monster создаёт нейтрального монстра.
func Monster(name string, at model.Point, opts ...UnitOption) *model.Unit {
	spec := model.UnitSpec{
		Name:        name,
		Team:        model.TeamNeutral,
		Kind:        model.KindMonster,
		Pos:         at,
		Health:      Fixtures.MonsterHealth,
		Damage:      150,
		MoveRange:   3,
		AttackRange: 2,
	}
	return build(spec, opts)
}

// Base создаёт базу команды с поднятым барьером.
func Base(name string, team model.Team, at model.Point, opts ...UnitOption) *model.Unit {
	spec := model.UnitSpec{
		Name:   name,
		Team:   team,
		Kind:   model.KindBase,
		Pos:    at,
		Health: Fixtures.BaseHealth,
		Damage: 50,
	}
	return build(spec, opts)
}

// Roster assigns sequential IDs, mirroring how a match numbers its units.
func Roster(units ...*model.Unit) []*model.Unit {
	for i, u := range units {
		u.ID = i
	}
	return units
}

// DamageAbility builds a single-target damage ability.
func DamageAbility(name string, amount, cost, cooldown int) *model.Ability {
	return &model.Ability{
		Name:     name,
		ManaCost: cost,
		Cooldown: cooldown,
		Effect:   model.DamageHeal{Mode: model.ModeDamage, Amount: amount},
	}
}

// Radius returns a pointer for Ability.Radius.
func Radius(r int) *int { return &r }

func build(spec model.UnitSpec, opts []UnitOption) *model.Unit {
	for _, opt := range opts {
		opt(&spec)
	}
	return model.NewUnit(spec)
}
