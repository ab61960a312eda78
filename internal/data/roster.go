// Package data загружает ростер матча: чемпионов и их способности, нейтральных
// монстров, базы, таблицу мест и карту. По умолчанию используется встроенный
// roster.yaml; путь к файлу переопределяет его.
package data

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed roster.yaml
var defaultRoster []byte

var validate = validator.New()

var (
	ErrUnknownChampion    = errors.New("unknown champion")
	ErrUnknownAbilityType = errors.New("unknown ability type")
	ErrDuplicatePick      = errors.New("champion picked twice")
	ErrTooManyPicks       = errors.New("more picks than seats")
	ErrOffMap             = errors.New("position outside the map")
	ErrMissingMode        = errors.New("damage/heal ability without ability_type")
)

// Coord — координата [x, y] в YAML.
type Coord struct {
	X int
	Y int
}

// UnmarshalYAML decodes a two-element sequence.
func (c *Coord) UnmarshalYAML(n *yaml.Node) error {
	var xy []int
	if err := n.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: coordinate needs 2 values, got %d", n.Line, len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// Span — закрытый интервал [min, max] в YAML.
type Span struct {
	Min int `validate:"min=0"`
	Max int `validate:"gtefield=Min"`
}

// UnmarshalYAML decodes a two-element sequence.
func (s *Span) UnmarshalYAML(n *yaml.Node) error {
	var c Coord
	if err := c.UnmarshalYAML(n); err != nil {
		return err
	}
	s.Min, s.Max = c.X, c.Y
	return nil
}

// AbilityDef — способность в ростере.
type AbilityDef struct {
	Type         string `yaml:"type" validate:"required,oneof=DamageHealAbility BuffAbility DebuffAbility"`
	Name         string `yaml:"name" validate:"required"`
	Description  string `yaml:"description"`
	ManaCost     int    `yaml:"mana_cost" validate:"min=0"`
	Cooldown     int    `yaml:"cooldown" validate:"min=0"`
	AbilityType  string `yaml:"ability_type" validate:"omitempty,oneof=damage heal"`
	Attack       int    `yaml:"attack" validate:"min=0"`
	Defense      int    `yaml:"defense" validate:"min=0"`
	Duration     int    `yaml:"duration" validate:"min=0"`
	AttackRadius *int   `yaml:"attack_radius" validate:"omitempty,min=0"`
	Area         string `yaml:"area" validate:"omitempty,oneof=single diamond circle"`
	DamageType   string `yaml:"damage_type" validate:"omitempty,oneof=physical magical"`
}

// StatsDef — общие характеристики юнита.
type StatsDef struct {
	Name            string `yaml:"name" validate:"required"`
	Health          int    `yaml:"health" validate:"min=1"`
	Mana            int    `yaml:"mana" validate:"min=0"`
	Damage          int    `yaml:"damage" validate:"min=0"`
	PhysicalDefense int    `yaml:"physical_defense"`
	MagicalDefense  int    `yaml:"magical_defense"`
	CritChance      int    `yaml:"crit_chance" validate:"min=0,max=100"`
	MoveRange       int    `yaml:"move_range" validate:"min=0"`
	AttackRange     int    `yaml:"attack_range" validate:"min=0"`
}

type ChampionDef struct {
	StatsDef  `yaml:",inline"`
	Abilities []AbilityDef `yaml:"abilities" validate:"max=3,dive"`
}

type MonsterDef struct {
	StatsDef `yaml:",inline"`
	Position Coord `yaml:"position"`
}

type BaseDef struct {
	StatsDef `yaml:",inline"`
	Team     string `yaml:"team" validate:"oneof=blue red"`
	Position Coord  `yaml:"position"`
}

// SeatDef — место в драфте. Пики занимают места по порядку списка.
type SeatDef struct {
	ID        string `yaml:"id" validate:"required"`
	Team      string `yaml:"team" validate:"oneof=blue red"`
	Spawn     Coord  `yaml:"spawn"`
	Respawn   Coord  `yaml:"respawn"`
	StartKeys int    `yaml:"start_keys" validate:"min=0"`
}

type MapDef struct {
	Size        int                `yaml:"size" validate:"min=1"`
	VisionBonus int                `yaml:"vision_bonus" validate:"min=0"`
	Lakes       []Coord            `yaml:"lakes"`
	Hills       []Coord            `yaml:"hills"`
	Bushes      []Coord            `yaml:"bushes"`
	Barriers    map[string][]Coord `yaml:"barriers" validate:"dive,keys,oneof=blue red,endkeys,required"`
}

type PickupKindDef struct {
	Name     string  `yaml:"name" validate:"required"`
	Weight   float64 `yaml:"weight" validate:"gt=0"`
	Health   int     `yaml:"health" validate:"min=0"`
	Mana     int     `yaml:"mana" validate:"min=0"`
	Attack   int     `yaml:"attack"`
	Defense  int     `yaml:"defense"`
	Duration int     `yaml:"duration" validate:"min=0"`
}

type PickupsDef struct {
	Max        int             `yaml:"max" validate:"min=1"`
	Lifetime   int             `yaml:"lifetime" validate:"min=1"`
	FirstSpawn Span            `yaml:"first_spawn"`
	Interval   Span            `yaml:"interval"`
	Kinds      []PickupKindDef `yaml:"kinds" validate:"min=1,unique=Name,dive"`
}

// Roster — всё содержимое файла ростера.
type Roster struct {
	Champions []ChampionDef `yaml:"champions" validate:"min=1,unique=Name,dive"`
	Monsters  []MonsterDef  `yaml:"monsters" validate:"dive"`
	Bases     []BaseDef     `yaml:"bases" validate:"min=1,dive"`
	Seats     []SeatDef     `yaml:"seats" validate:"min=1,unique=ID,dive"`
	Map       MapDef        `yaml:"map"`
	Pickups   PickupsDef    `yaml:"pickups"`
}

// Load reads the roster at path on fsys. An empty path selects the embedded
// default roster.
func Load(fsys afero.Fs, path string) (*Roster, error) {
	raw, source := defaultRoster, "embedded"
	if path != "" {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading roster %s: %w", path, err)
		}
		raw, source = data, path
	}

	r, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", source, err)
	}

	slog.Info("loaded roster",
		"source", source,
		"champions", len(r.Champions),
		"monsters", len(r.Monsters),
		"seats", len(r.Seats))
	return r, nil
}

// Default parses the embedded roster.
func Default() (*Roster, error) {
	return Parse(defaultRoster)
}

// Parse decodes and validates a roster document. Unknown keys are errors.
func Parse(raw []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks field constraints, then cross-field rules validator tags
// cannot express: every damage/heal ability declares its mode and every
// position lies on the map.
func (r *Roster) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}

	for _, c := range r.Champions {
		for _, a := range c.Abilities {
			if a.Type == typeDamageHeal && a.AbilityType == "" {
				return fmt.Errorf("%s/%s: %w", c.Name, a.Name, ErrMissingMode)
			}
		}
	}

	onMap := func(what string, c Coord) error {
		if c.X < 0 || c.Y < 0 || c.X >= r.Map.Size || c.Y >= r.Map.Size {
			return fmt.Errorf("%s [%d, %d]: %w", what, c.X, c.Y, ErrOffMap)
		}
		return nil
	}
	for _, m := range r.Monsters {
		if err := onMap("monster "+m.Name, m.Position); err != nil {
			return err
		}
	}
	for _, b := range r.Bases {
		if err := onMap("base "+b.Name, b.Position); err != nil {
			return err
		}
	}
	for _, s := range r.Seats {
		if err := onMap("seat "+s.ID+" spawn", s.Spawn); err != nil {
			return err
		}
		if err := onMap("seat "+s.ID+" respawn", s.Respawn); err != nil {
			return err
		}
	}
	return nil
}
