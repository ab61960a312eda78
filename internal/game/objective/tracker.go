// Package objective tracks keys and base barriers: initial key seating,
// monster-kill team buffs, key transfer on death, the one-shot barrier
// breach and the periodic monster respawn.
package objective

import (
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/model"
)

// Multipliers scale a unit's max health and damage.
type Multipliers struct {
	MaxHealth float64
	Damage    float64
}

// Rules parameterise the tracker.
type Rules struct {
	// KeysToBreach is how many keys of a base's colour the opposing
	// champions must hold to bring its barrier down.
	KeysToBreach int

	// MonsterRespawnInterval revives dead monsters on every turn divisible by it.
	MonsterRespawnInterval int

	// MajorMonster grants MajorBuff on death, every other monster MinorBuff.
	MajorMonster string
	MajorBuff    Multipliers
	MinorBuff    Multipliers

	// SideMonsters maps monster name to the key colour it regains on respawn.
	SideMonsters map[string]model.Team
}

// DefaultRules returns the standard lane rules.
func DefaultRules() Rules {
	return Rules{
		KeysToBreach:           3,
		MonsterRespawnInterval: 20,
		MajorMonster:           "BigBuff",
		MajorBuff:              Multipliers{MaxHealth: 1.10, Damage: 1.15},
		MinorBuff:              Multipliers{MaxHealth: 1.05, Damage: 1.05},
		SideMonsters: map[string]model.Team{
			"BlueBuff": model.TeamBlue,
			"RedBuff":  model.TeamRed,
		},
	}
}

// BarrierClearer removes barrier overlays from the map when a side's barrier falls.
type BarrierClearer interface {
	ClearBarrier(team model.Team)
}

// Tracker owns no state of its own: everything it needs lives on the units
// and in model.MatchState.
type Tracker struct {
	rules   Rules
	terrain BarrierClearer
}

// New creates a Tracker. terrain may be nil.
func New(rules Rules, terrain BarrierClearer) *Tracker {
	return &Tracker{rules: rules, terrain: terrain}
}

// Rules returns the tracker configuration.
func (t *Tracker) Rules() Rules { return t.rules }

// InitKeys hands out starting keys by seat. Runs once per match.
func (t *Tracker) InitKeys(state model.MatchState, units []*model.Unit, seats model.Seats, buf *event.Buffer) model.MatchState {
	if state.KeysInitialized {
		return state
	}
	for _, u := range units {
		if !u.IsPlayer() || u.Seat == "" {
			continue
		}
		seat, ok := seats[u.Seat]
		if !ok || seat.StartKeys <= 0 {
			continue
		}
		u.AddKeys(u.Team, seat.StartKeys)
		buf.Addf(event.KindLog, "%s starts with %d %s key(s)", u.Name, seat.StartKeys, u.Team)
	}
	state.KeysInitialized = true
	return state
}

// OnDeath reacts to dead having been killed by killer.
//
// A monster death buffs every living unit on the killer's team. A player
// killer then takes all of the dead unit's keys. Any other killer leaves
// the keys on the corpse, where nobody can pick them up again.
func (t *Tracker) OnDeath(dead, killer *model.Unit, units []*model.Unit, buf *event.Buffer) {
	if dead == nil || dead.Alive() || killer == nil {
		return
	}

	if dead.IsMonster() {
		t.buffTeam(dead, killer, units, buf)
	}

	red, blue := dead.RedKeys, dead.BlueKeys
	if red+blue == 0 {
		return
	}
	if !killer.IsPlayer() {
		slog.Warn("keys frozen on corpse",
			"unit", dead.Name,
			"killer", killer.Name,
			"red", red,
			"blue", blue)
		e := event.New(event.KindKeysFrozen, buf.Turn,
			"%s's %d red and %d blue key(s) are lost with the body", dead.Name, red, blue)
		e.Unit, e.Target = killer.Name, dead.Name
		buf.Add(e)
		return
	}

	killer.TakeKeys(dead)
	e := event.New(event.KindKeyTransfer, buf.Turn,
		"%s collected %d red and %d blue key(s) from %s", killer.Name, red, blue, dead.Name)
	e.Unit, e.Target, e.Amount, e.Team = killer.Name, dead.Name, red+blue, killer.Team
	buf.Add(e)
}

func (t *Tracker) buffTeam(monster, killer *model.Unit, units []*model.Unit, buf *event.Buffer) {
	if killer.Team != model.TeamBlue && killer.Team != model.TeamRed {
		return
	}
	m := t.rules.MinorBuff
	if monster.Name == t.rules.MajorMonster {
		m = t.rules.MajorBuff
	}
	for _, u := range units {
		if u.Team != killer.Team || !u.Alive() {
			continue
		}
		u.ScaleMaxHealth(m.MaxHealth)
		u.ScaleDamage(m.Damage)
	}
	e := event.New(event.KindMonsterBuff, buf.Turn,
		"%s slew %s: %s team empowered", killer.Name, monster.Name, killer.Team)
	e.Unit, e.Target, e.Team = killer.Name, monster.Name, killer.Team
	buf.Add(e)
}

// CheckBarriers brings down any barrier whose breach threshold has been met.
// A barrier falls at most once per match.
func (t *Tracker) CheckBarriers(state model.MatchState, units []*model.Unit, buf *event.Buffer) model.MatchState {
	for _, side := range []model.Team{model.TeamRed, model.TeamBlue} {
		if state.BarrierDown(side) {
			continue
		}
		held := HeldBy(units, side.Opponent(), side)
		if held < t.rules.KeysToBreach {
			continue
		}
		state = state.WithBarrierDown(side)
		for _, u := range units {
			if u.IsBase() && u.Team == side {
				u.Barrier = model.BarrierDown
			}
		}
		if t.terrain != nil {
			t.terrain.ClearBarrier(side)
		}
		slog.Info("barrier breached", "side", side, "keys", held, "turn", state.Turn)
		e := event.New(event.KindBarrierBreach, buf.Turn,
			"The %s barrier has fallen! %s team holds %d %s keys", side, side.Opponent(), held, side)
		e.Team, e.Amount = side, held
		buf.Add(e)
		buf.Add(event.Effect(buf.Turn, model.Point{}, true, side.String(), 0))
	}
	return state
}

// HeldBy counts keys of the given colour held by team's champions, dead or alive.
func HeldBy(units []*model.Unit, team, color model.Team) int {
	n := 0
	for _, u := range units {
		if u.IsPlayer() && u.Team == team {
			n += u.Keys(color)
		}
	}
	return n
}

// RespawnMonsters revives dead monsters on turns divisible by the respawn
// interval. Side monsters come back carrying one key of their colour.
func (t *Tracker) RespawnMonsters(turn int, units []*model.Unit, buf *event.Buffer) {
	if t.rules.MonsterRespawnInterval <= 0 || turn%t.rules.MonsterRespawnInterval != 0 {
		return
	}
	for _, u := range units {
		if !u.IsMonster() || u.Alive() {
			continue
		}
		u.Revive(u.Pos)
		if color, ok := t.rules.SideMonsters[u.Name]; ok && u.Keys(color) == 0 {
			u.AddKeys(color, 1)
		}
		e := event.New(event.KindMonsterRespawn, buf.Turn, "%s has returned", u.Name)
		e.Unit = u.Name
		buf.Add(e)
	}
}
