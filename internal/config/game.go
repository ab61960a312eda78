package config

import (
	"fmt"

	"github.com/spf13/afero"
)

// MonsterBuff is the team-wide bonus for slaying a monster.
type MonsterBuff struct {
	MaxHealth float64 `yaml:"max_health_multiplier" validate:"gt=0"`
	Damage    float64 `yaml:"damage_multiplier" validate:"gt=0"`
}

// Rules holds gameplay constants.
type Rules struct {
	KeysToBreach           int `yaml:"keys_to_breach" validate:"min=1"`
	MonsterRespawnInterval int `yaml:"monster_respawn_interval" validate:"min=1"`

	RespawnBase int `yaml:"respawn_base_turns" validate:"min=1"`
	RespawnCap  int `yaml:"respawn_max_cap" validate:"min=0"`

	HealthRegen float64 `yaml:"health_regen" validate:"min=0,max=1"`
	ManaRegen   float64 `yaml:"mana_regen" validate:"min=0,max=1"`

	BuffDuration   int `yaml:"buff_duration" validate:"min=1"`
	DebuffDuration int `yaml:"debuff_duration" validate:"min=1"`
	AmbushDamage   int `yaml:"ambush_damage" validate:"min=1"`
	EventLogSize   int `yaml:"event_log_size" validate:"min=1"`

	MajorMonster string      `yaml:"major_monster" validate:"required"`
	MajorBuff    MonsterBuff `yaml:"major_buff"`
	MinorBuff    MonsterBuff `yaml:"minor_buff"`

	// SideMonsters maps a monster name to the key colour it regains on respawn.
	SideMonsters map[string]string `yaml:"side_monsters" validate:"dive,keys,required,endkeys,oneof=red blue"`
}

// DefaultRules returns the standard gameplay constants.
func DefaultRules() Rules {
	return Rules{
		KeysToBreach:           3,
		MonsterRespawnInterval: 20,
		RespawnBase:            8,
		RespawnCap:             10,
		HealthRegen:            0.005,
		ManaRegen:              0.01,
		BuffDuration:           8,
		DebuffDuration:         8,
		AmbushDamage:           9999,
		EventLogSize:           10,
		MajorMonster:           "BigBuff",
		MajorBuff:              MonsterBuff{MaxHealth: 1.10, Damage: 1.15},
		MinorBuff:              MonsterBuff{MaxHealth: 1.05, Damage: 1.05},
		SideMonsters: map[string]string{
			"BlueBuff": "blue",
			"RedBuff":  "red",
		},
	}
}

// Game holds all configuration for a skirmish session.
type Game struct {
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn warning error"`

	// Roster is a roster YAML file; empty means the embedded default.
	Roster string `yaml:"roster"`

	// Seed fixes the pickup spawner's randomness; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`

	Rules    Rules          `yaml:"rules"`
	Database DatabaseConfig `yaml:"database"`
	Bus      BusConfig      `yaml:"bus"`
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Rules:    DefaultRules(),
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skirmish",
			Password: "skirmish",
			DBName:   "skirmish",
			SSLMode:  "disable",
		},
		Bus: BusConfig{
			Enabled: true,
			Topic:   "match.events",
			Buffer:  64,
		},
	}
}

// LoadGame loads game config from a YAML file on fsys.
// If the file doesn't exist, returns defaults. The result is validated.
func LoadGame(fsys afero.Fs, path string) (Game, error) {
	cfg := DefaultGame()
	if err := load(fsys, path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (g Game) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	return nil
}
