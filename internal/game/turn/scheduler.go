// Package turn orders units and runs the end-of-turn tick.
package turn

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/game/objective"
	"github.com/udisondev/skirmish/internal/model"
)

// Rules parameterise the end-of-turn tick.
type Rules struct {
	// RespawnBase and RespawnCap give the respawn wait: min(turn/RespawnBase, RespawnCap).
	RespawnBase int
	RespawnCap  int

	// HealthRegen and ManaRegen are fractions of the maximum restored per turn.
	HealthRegen float64
	ManaRegen   float64
}

// DefaultRules returns the standard tick rules.
func DefaultRules() Rules {
	return Rules{
		RespawnBase: 8,
		RespawnCap:  10,
		HealthRegen: 0.005,
		ManaRegen:   0.01,
	}
}

// Visibility recomputes fog of war for the team about to act.
type Visibility interface {
	RefreshVisibility(team model.Team, units []*model.Unit)
}

// Spawner advances the pickup spawner to a new turn.
type Spawner interface {
	Advance(turn int, occupied []model.Point)
}

// Respawns maps a seat to its respawn point.
type Respawns interface {
	RespawnLocation(seat string) (model.Point, bool)
}

// Scheduler owns the unit order. It keeps no state beyond it:
// the turn counter and active index live in model.MatchState.
type Scheduler struct {
	units    []*model.Unit
	rules    Rules
	tracker  *objective.Tracker
	respawns Respawns

	visibility Visibility
	spawner    Spawner
}

// NewScheduler sorts units into turn order and returns a scheduler over them.
// visibility and spawner may be nil.
func NewScheduler(units []*model.Unit, rules Rules, tracker *objective.Tracker, respawns Respawns) *Scheduler {
	return &Scheduler{
		units:    Order(units),
		rules:    rules,
		tracker:  tracker,
		respawns: respawns,
	}
}

// SetVisibility sets the fog-of-war collaborator.
func (s *Scheduler) SetVisibility(v Visibility) { s.visibility = v }

// SetSpawner sets the pickup collaborator.
func (s *Scheduler) SetSpawner(sp Spawner) { s.spawner = sp }

// Units returns units in turn order.
func (s *Scheduler) Units() []*model.Unit { return s.units }

// Active returns the unit whose turn it is.
func (s *Scheduler) Active(state model.MatchState) *model.Unit {
	if state.Active < 0 || state.Active >= len(s.units) {
		return nil
	}
	return s.units[state.Active]
}

// Order returns units sorted blue champions, red champions, monsters, bases.
// Units within a group keep their relative order.
func Order(units []*model.Unit) []*model.Unit {
	out := slices.Clone(units)
	slices.SortStableFunc(out, func(a, b *model.Unit) int {
		return cmp.Compare(rank(a), rank(b))
	})
	return out
}

func rank(u *model.Unit) int {
	switch {
	case u.IsPlayer() && u.Team == model.TeamBlue:
		return 0
	case u.IsPlayer() && u.Team == model.TeamRed:
		return 1
	case u.IsPlayer():
		return 2
	case u.IsMonster():
		return 3
	default:
		return 4
	}
}

// Eligible reports whether u may take a turn.
func Eligible(u *model.Unit) bool {
	return u.Alive() && u.IsPlayer()
}

// Start places the active index on the first eligible unit.
func (s *Scheduler) Start(state model.MatchState, buf *event.Buffer) model.MatchState {
	if len(s.units) == 0 {
		return s.exhaust(state, buf)
	}
	if Eligible(s.units[state.Active]) {
		return state
	}
	return s.Advance(state, buf)
}

// Advance moves the active index to the next living champion, wrapping
// around. If it comes back to where it started without finding one, the
// state is marked exhausted.
func (s *Scheduler) Advance(state model.MatchState, buf *event.Buffer) model.MatchState {
	next, ok := s.next(state)
	if !ok {
		return s.exhaust(next, buf)
	}
	return next
}

func (s *Scheduler) next(state model.MatchState) (model.MatchState, bool) {
	n := len(s.units)
	if n == 0 {
		return state, false
	}
	start := state.Active
	for {
		state.Active = (state.Active + 1) % n
		if Eligible(s.units[state.Active]) {
			return state, true
		}
		if state.Active == start {
			return state, false
		}
	}
}

func (s *Scheduler) exhaust(state model.MatchState, buf *event.Buffer) model.MatchState {
	state.Exhausted = true
	slog.Warn("no eligible units", "turn", state.Turn)
	buf.Add(event.New(event.KindNoEligible, state.Turn, "No alive units remaining!"))
	return state
}

// EndTurn runs the end-of-turn tick and hands the turn to the next unit.
//
// The order is fixed:
//  1. cooldowns decay
//  2. buffs and debuffs decay
//  3. the previous unit resets and the next living champion becomes active
//  4. living champions regenerate
//  5. dead champions count down and respawn; if nobody was eligible in
//     step 3, a revived champion becomes active, otherwise the state is exhausted
//  6. fog and pickups update
//  7. keys, barriers and monster respawns are reassessed
func (s *Scheduler) EndTurn(state model.MatchState, buf *event.Buffer) model.MatchState {
	state.Turn++
	buf.Turn = state.Turn

	for _, u := range s.units {
		for _, a := range u.Abilities {
			a.TickCooldown()
		}
	}
	for _, u := range s.units {
		s.tickEffects(u, buf)
	}

	if prev := s.Active(state); prev != nil {
		prev.ResetTurn()
	}
	state, found := s.next(state)

	s.regen()
	s.respawn(state.Turn, buf)

	// A champion revived this tick takes the turn when nobody else could.
	if !found {
		if state, found = s.next(state); !found {
			state = s.exhaust(state, buf)
		}
	}
	if next := s.Active(state); next != nil && found && s.visibility != nil {
		s.visibility.RefreshVisibility(next.Team, s.units)
	}
	if s.spawner != nil {
		s.spawner.Advance(state.Turn, s.occupied())
	}

	if s.tracker != nil {
		state = s.tracker.CheckBarriers(state, s.units, buf)
		s.tracker.RespawnMonsters(state.Turn, s.units, buf)
	}

	if next := s.Active(state); next != nil && !state.Exhausted {
		e := event.New(event.KindTurn, state.Turn, "Turn %d: %s (%s) to act", state.Turn, next.Name, next.Team)
		e.Unit, e.Team = next.Name, next.Team
		buf.Add(e)
	}
	return state
}

func (s *Scheduler) tickEffects(u *model.Unit, buf *event.Buffer) {
	buffOver, debuffOver := u.TickEffects()
	if buffOver {
		buf.Add(event.Event{Kind: event.KindEffectExpired, Message: u.Name + "'s buff wore off", Unit: u.Name})
	}
	if debuffOver {
		buf.Add(event.Event{Kind: event.KindEffectExpired, Message: u.Name + "'s debuff wore off", Unit: u.Name})
	}
}

func (s *Scheduler) regen() {
	for _, u := range s.units {
		if !Eligible(u) {
			continue
		}
		u.Restore(model.Scale(u.MaxHealth(), s.rules.HealthRegen), model.Scale(u.MaxMana(), s.rules.ManaRegen))
	}
}

// RespawnThreshold is how many turns a champion must stay dead on this turn.
// Zero means no champion may respawn yet.
func (s *Scheduler) RespawnThreshold(turn int) int {
	if s.rules.RespawnBase <= 0 {
		return 0
	}
	return min(turn/s.rules.RespawnBase, s.rules.RespawnCap)
}

func (s *Scheduler) respawn(turn int, buf *event.Buffer) {
	threshold := s.RespawnThreshold(turn)
	for _, u := range s.units {
		if u.Alive() || !u.IsPlayer() {
			continue
		}
		u.DeathTimer++
		if threshold <= 0 || u.DeathTimer < threshold {
			continue
		}
		at := u.Pos
		if s.respawns != nil {
			if p, ok := s.respawns.RespawnLocation(u.Seat); ok {
				at = p
			} else {
				slog.Warn("no respawn location for seat", "unit", u.Name, "seat", u.Seat)
			}
		}
		u.Revive(at)
		slog.Debug("champion respawned", "unit", u.Name, "at", at, "turn", turn)
		e := event.New(event.KindRespawn, turn, "%s has respawned at base!", u.Name)
		e.Unit, e.Team = u.Name, u.Team
		buf.Add(e)
	}
}

func (s *Scheduler) occupied() []model.Point {
	var out []model.Point
	for _, u := range s.units {
		if u.Alive() {
			out = append(out, u.Pos)
		}
	}
	return out
}
