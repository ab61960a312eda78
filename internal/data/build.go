package data

import (
	"fmt"
	"strings"

	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/spawn"
	"github.com/udisondev/skirmish/internal/world"
)

const (
	typeDamageHeal = "DamageHealAbility"
	typeBuff       = "BuffAbility"
	typeDebuff     = "DebuffAbility"
)

// Champion finds a champion by name, ignoring case.
func (r *Roster) Champion(name string) (*ChampionDef, bool) {
	for i := range r.Champions {
		if strings.EqualFold(r.Champions[i].Name, name) {
			return &r.Champions[i], true
		}
	}
	return nil, false
}

// ChampionNames returns champion names in roster order.
func (r *Roster) ChampionNames() []string {
	names := make([]string, 0, len(r.Champions))
	for _, c := range r.Champions {
		names = append(names, c.Name)
	}
	return names
}

// Build creates the match units: one champion per pick, seated in roster
// order, followed by every monster and base. A champion can be picked once.
func (r *Roster) Build(picks []string) ([]*model.Unit, model.Seats, error) {
	if len(picks) > len(r.Seats) {
		return nil, nil, fmt.Errorf("%w: %d picks, %d seats", ErrTooManyPicks, len(picks), len(r.Seats))
	}

	seatList := make([]model.Seat, 0, len(r.Seats))
	for _, s := range r.Seats {
		team, err := model.ParseTeam(s.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("seat %s: %w", s.ID, err)
		}
		seatList = append(seatList, model.Seat{
			ID:        s.ID,
			Team:      team,
			Respawn:   point(s.Respawn),
			StartKeys: s.StartKeys,
		})
	}
	seats, err := model.NewSeats(seatList)
	if err != nil {
		return nil, nil, err
	}

	units := make([]*model.Unit, 0, len(picks)+len(r.Monsters)+len(r.Bases))
	picked := make(map[string]bool, len(picks))
	for i, name := range picks {
		def, ok := r.Champion(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownChampion, name)
		}
		if picked[def.Name] {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicatePick, def.Name)
		}
		picked[def.Name] = true

		abilities, err := buildAbilities(def.Abilities)
		if err != nil {
			return nil, nil, fmt.Errorf("champion %s: %w", def.Name, err)
		}
		seat := seatList[i]
		spec := def.spec(model.KindPlayer, seat.Team, point(r.Seats[i].Spawn))
		spec.Seat = seat.ID
		spec.Abilities = abilities
		units = append(units, model.NewUnit(spec))
	}

	for _, m := range r.Monsters {
		units = append(units, model.NewUnit(m.spec(model.KindMonster, model.TeamNeutral, point(m.Position))))
	}
	for _, b := range r.Bases {
		team, err := model.ParseTeam(b.Team)
		if err != nil {
			return nil, nil, fmt.Errorf("base %s: %w", b.Name, err)
		}
		units = append(units, model.NewUnit(b.spec(model.KindBase, team, point(b.Position))))
	}
	return units, seats, nil
}

// Layout converts the map section into a world layout.
func (r *Roster) Layout() world.Layout {
	l := world.Layout{
		Size:        r.Map.Size,
		Lakes:       points(r.Map.Lakes),
		Hills:       points(r.Map.Hills),
		Bushes:      points(r.Map.Bushes),
		Barriers:    make(map[model.Team][]model.Point, len(r.Map.Barriers)),
		VisionBonus: r.Map.VisionBonus,
	}
	for name, tiles := range r.Map.Barriers {
		team, _ := model.ParseTeam(name) // keys are validated as blue|red
		l.Barriers[team] = points(tiles)
	}
	return l
}

// SpawnConfig converts the pickups section into a spawner config.
func (r *Roster) SpawnConfig() spawn.Config {
	p := r.Pickups
	cfg := spawn.Config{
		Max:         p.Max,
		Lifetime:    p.Lifetime,
		FirstMin:    p.FirstSpawn.Min,
		FirstMax:    p.FirstSpawn.Max,
		IntervalMin: p.Interval.Min,
		IntervalMax: p.Interval.Max,
		Kinds:       make([]spawn.Kind, 0, len(p.Kinds)),
	}
	for _, k := range p.Kinds {
		cfg.Kinds = append(cfg.Kinds, spawn.Kind{
			Name:     k.Name,
			Weight:   k.Weight,
			Health:   k.Health,
			Mana:     k.Mana,
			Attack:   k.Attack,
			Defense:  k.Defense,
			Duration: k.Duration,
		})
	}
	return cfg
}

func (s StatsDef) spec(kind model.Kind, team model.Team, at model.Point) model.UnitSpec {
	return model.UnitSpec{
		Name:            s.Name,
		Team:            team,
		Kind:            kind,
		Pos:             at,
		Health:          s.Health,
		Mana:            s.Mana,
		Damage:          s.Damage,
		PhysicalDefense: s.PhysicalDefense,
		MagicalDefense:  s.MagicalDefense,
		CritChance:      s.CritChance,
		MoveRange:       s.MoveRange,
		AttackRange:     s.AttackRange,
	}
}

func buildAbilities(defs []AbilityDef) ([]*model.Ability, error) {
	out := make([]*model.Ability, 0, len(defs))
	for _, d := range defs {
		a, err := d.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Build converts the definition into an ability template.
func (d AbilityDef) Build() (*model.Ability, error) {
	a := &model.Ability{
		Name:        d.Name,
		Description: d.Description,
		ManaCost:    d.ManaCost,
		Cooldown:    d.Cooldown,
		Area:        areaShape(d.Area),
	}
	if d.AttackRadius != nil {
		r := *d.AttackRadius
		a.Radius = &r
	}

	switch d.Type {
	case typeDamageHeal:
		dt, err := model.ParseDamageType(d.DamageType)
		if err != nil {
			return nil, fmt.Errorf("ability %s: %w", d.Name, err)
		}
		mode := model.ModeDamage
		if d.AbilityType == "heal" {
			mode = model.ModeHeal
		}
		a.Effect = model.DamageHeal{Mode: mode, Amount: d.Attack, DamageType: dt}
	case typeBuff:
		a.Effect = model.Buff{Attack: d.Attack, Defense: d.Defense, Duration: d.Duration}
	case typeDebuff:
		a.Effect = model.Debuff{Attack: d.Attack, Defense: d.Defense, Duration: d.Duration}
	default:
		return nil, fmt.Errorf("ability %s: %w %q", d.Name, ErrUnknownAbilityType, d.Type)
	}
	return a, nil
}

func areaShape(s string) model.AreaShape {
	switch s {
	case "diamond":
		return model.AreaDiamond
	case "circle":
		return model.AreaCircle
	default:
		return model.AreaSingle
	}
}

func point(c Coord) model.Point { return model.Pt(c.X, c.Y) }

func points(cs []Coord) []model.Point {
	out := make([]model.Point, 0, len(cs))
	for _, c := range cs {
		out = append(out, point(c))
	}
	return out
}
