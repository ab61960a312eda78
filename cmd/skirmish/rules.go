package main

import (
	"fmt"

	"github.com/udisondev/skirmish/internal/config"
	"github.com/udisondev/skirmish/internal/game/match"
	"github.com/udisondev/skirmish/internal/game/objective"
	"github.com/udisondev/skirmish/internal/game/turn"
	"github.com/udisondev/skirmish/internal/model"
)

// matchRules converts validated config rules into engine rules.
func matchRules(r config.Rules) (match.Rules, error) {
	side := make(map[string]model.Team, len(r.SideMonsters))
	for name, color := range r.SideMonsters {
		team, err := model.ParseTeam(color)
		if err != nil {
			return match.Rules{}, fmt.Errorf("side monster %s: %w", name, err)
		}
		side[name] = team
	}

	return match.Rules{
		AmbushDamage:   r.AmbushDamage,
		LogSize:        r.EventLogSize,
		BuffDuration:   r.BuffDuration,
		DebuffDuration: r.DebuffDuration,
		Turn: turn.Rules{
			RespawnBase: r.RespawnBase,
			RespawnCap:  r.RespawnCap,
			HealthRegen: r.HealthRegen,
			ManaRegen:   r.ManaRegen,
		},
		Objective: objective.Rules{
			KeysToBreach:           r.KeysToBreach,
			MonsterRespawnInterval: r.MonsterRespawnInterval,
			MajorMonster:           r.MajorMonster,
			MajorBuff:              objective.Multipliers{MaxHealth: r.MajorBuff.MaxHealth, Damage: r.MajorBuff.Damage},
			MinorBuff:              objective.Multipliers{MaxHealth: r.MinorBuff.MaxHealth, Damage: r.MinorBuff.Damage},
			SideMonsters:           side,
		},
	}, nil
}
