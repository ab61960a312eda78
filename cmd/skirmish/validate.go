package main

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/data"
	"github.com/udisondev/skirmish/internal/spawn"
	"github.com/udisondev/skirmish/internal/world"
)

// validateRoster loads the roster at path and builds everything a match
// needs from it, so that errors surface before a game starts.
func validateRoster(fsys afero.Fs, path string, cfg config.Game) error {
	r, err := data.Load(fsys, path)
	if err != nil {
		return err
	}
	w, err := world.New(r.Layout())
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	if _, err := spawn.NewManager(r.SpawnConfig(), w, 1); err != nil {
		return fmt.Errorf("pickups: %w", err)
	}
	if _, err := matchRules(cfg.Rules); err != nil {
		return err
	}

	names := r.ChampionNames()
	if len(names) > len(r.Seats) {
		names = names[:len(r.Seats)]
	}
	if _, _, err := r.Build(names); err != nil {
		return fmt.Errorf("draft: %w", err)
	}
	if _, ok := findMonster(r, cfg.Rules.MajorMonster); !ok {
		return fmt.Errorf("major monster %q is not in the roster", cfg.Rules.MajorMonster)
	}
	for name := range cfg.Rules.SideMonsters {
		if _, ok := findMonster(r, name); !ok {
			return fmt.Errorf("side monster %q is not in the roster", name)
		}
	}
	return nil
}

func findMonster(r *data.Roster, name string) (data.MonsterDef, bool) {
	for _, m := range r.Monsters {
		if m.Name == name {
			return m, true
		}
	}
	return data.MonsterDef{}, false
}
