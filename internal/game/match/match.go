// Package match is the command surface of a skirmish: it validates player
// commands against the active unit's phase, resolves moves, attacks and
// abilities, and drives the turn scheduler and objective tracker.
//
// A Match is not safe for concurrent use. All commands must come from one
// goroutine.
package match

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/game/objective"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/game/turn"
	"github.com/udisondev/skirmish/internal/model"
)

const (
	// DefaultAmbushDamage is the hit dealt by a unit hiding in a bush.
	DefaultAmbushDamage = 9999
	// DefaultLogSize is how many combat-log lines Log keeps.
	DefaultLogSize = 10
	// maxAbilities is how many ability slots a champion has.
	maxAbilities = 3
)

// Rules collects every tunable of a match.
type Rules struct {
	AmbushDamage   int
	LogSize        int
	BuffDuration   int
	DebuffDuration int
	Turn           turn.Rules
	Objective      objective.Rules
}

// DefaultRules returns the standard match rules.
func DefaultRules() Rules {
	return Rules{
		AmbushDamage:   DefaultAmbushDamage,
		LogSize:        DefaultLogSize,
		BuffDuration:   skill.DefaultEffectDuration,
		DebuffDuration: skill.DefaultEffectDuration,
		Turn:           turn.DefaultRules(),
		Objective:      objective.DefaultRules(),
	}
}

// Options configure New. Terrain is required; Pickups, Roller and Rules
// fall back to no pickups, real dice and DefaultRules.
type Options struct {
	Seats   model.Seats
	Terrain Terrain
	Pickups Pickups
	Roller  combat.Roller
	Rules   *Rules
}

// Match is one game in progress.
type Match struct {
	state   model.MatchState
	rules   Rules
	units   []*model.Unit
	seats   model.Seats
	terrain Terrain
	pickups Pickups

	resolver  *combat.Resolver
	caster    *skill.Caster
	tracker   *objective.Tracker
	scheduler *turn.Scheduler

	log  *eventLog
	sink func(event.Event)
}

// New sets up a match over units. Units are put in turn order and numbered
// by their position in it, starting keys are handed out by seat and the
// first eligible champion becomes active.
func New(units []*model.Unit, opts Options) (*Match, []event.Event, error) {
	if opts.Terrain == nil {
		return nil, nil, fmt.Errorf("new match: terrain is required")
	}
	if len(units) == 0 {
		return nil, nil, fmt.Errorf("new match: no units")
	}
	rules := DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}

	m := &Match{
		state:   model.NewMatchState(),
		rules:   rules,
		seats:   opts.Seats,
		terrain: opts.Terrain,
		pickups: opts.Pickups,
		log:     newEventLog(rules.LogSize),
	}
	m.resolver = combat.NewResolver(opts.Roller)
	m.caster = skill.NewCaster(m.resolver, rules.BuffDuration, rules.DebuffDuration)
	m.tracker = objective.New(rules.Objective, opts.Terrain)
	m.scheduler = turn.NewScheduler(units, rules.Turn, m.tracker, opts.Seats)
	m.scheduler.SetVisibility(opts.Terrain)
	if opts.Pickups != nil {
		m.scheduler.SetSpawner(opts.Pickups)
	}
	m.units = m.scheduler.Units()
	for i, u := range m.units {
		u.ID = i
	}

	buf := &event.Buffer{Turn: m.state.Turn}
	m.state = m.tracker.InitKeys(m.state, m.units, m.seats, buf)
	m.state = m.scheduler.Start(m.state, buf)
	if a := m.Active(); a != nil && !m.state.Exhausted {
		m.terrain.RefreshVisibility(a.Team, m.units)
		m.terrain.Highlight(a.Initial, a.MoveRange)
		e := event.New(event.KindTurn, m.state.Turn, "Turn %d: %s (%s) to act", m.state.Turn, a.Name, a.Team)
		e.Unit, e.Team = a.Name, a.Team
		buf.Add(e)
	}

	slog.Info("match started", "units", len(m.units), "active", m.Active())
	return m, m.emit(buf), nil
}

// SetEventSink registers fn to receive every event the match emits.
func (m *Match) SetEventSink(fn func(event.Event)) {
	m.sink = fn
}

// Active returns the unit whose turn it is.
func (m *Match) Active() *model.Unit { return m.scheduler.Active(m.state) }

// Turn returns the turn counter, starting at 1.
func (m *Match) Turn() int { return m.state.Turn }

// State returns a copy of the match state.
func (m *Match) State() model.MatchState { return m.state }

// Units returns all units in turn order. Callers must not mutate them.
func (m *Match) Units() []*model.Unit { return m.units }

// Unit returns the unit with the given id.
func (m *Match) Unit(id int) (*model.Unit, bool) {
	if id < 0 || id >= len(m.units) {
		return nil, false
	}
	return m.units[id], true
}

// Log returns the most recent combat-log lines, oldest first.
func (m *Match) Log() []string { return m.log.snapshot() }

// Winner returns the team that destroyed the enemy base, or TeamNone.
func (m *Match) Winner() model.Team { return m.state.Winner }

// Over reports whether no further commands will be accepted.
func (m *Match) Over() bool { return m.state.Over() || m.state.Exhausted }

// Issue applies cmd on behalf of unit id.
//
// It returns the events produced by the command. A rejected command
// returns an error wrapping one of the package's sentinel errors together
// with a single KindRejected event, and leaves the match untouched.
func (m *Match) Issue(id int, cmd Command) ([]event.Event, error) {
	buf := &event.Buffer{Turn: m.state.Turn}

	if err := m.issue(id, cmd, buf); err != nil {
		slog.Debug("command rejected", "unit", id, "command", cmd, "error", err)
		rej := &event.Buffer{Turn: m.state.Turn}
		e := event.New(event.KindRejected, m.state.Turn, "%s", err)
		if u, ok := m.Unit(id); ok {
			e.Unit = u.Name
		}
		rej.Add(e)
		return m.emit(rej), err
	}
	return m.emit(buf), nil
}

func (m *Match) issue(id int, cmd Command, buf *event.Buffer) error {
	if m.Over() {
		return ErrMatchOver
	}
	u, ok := m.Unit(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, id)
	}
	if u != m.Active() {
		return fmt.Errorf("%w: %s", ErrNotActive, u.Name)
	}

	switch c := cmd.(type) {
	case MoveStep:
		return m.moveStep(u, c.Dir)
	case FinalizeMove:
		return m.finalizeMove(u, buf)
	case MoveCursor:
		return m.moveCursor(u, c.Dir)
	case SelectAbility:
		return m.selectAbility(u, c.Index)
	case CancelAbility:
		return m.cancelAbility(u)
	case Confirm:
		return m.confirm(u, buf)
	case EndTurn:
		return m.endTurn(u, buf)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func requirePhase(u *model.Unit, want model.Phase) error {
	if u.Phase != want {
		return fmt.Errorf("%w: %s is in %s, need %s", ErrWrongPhase, u.Name, u.Phase, want)
	}
	return nil
}

// emit records loggable events in the combat log and forwards everything
// to the sink.
func (m *Match) emit(buf *event.Buffer) []event.Event {
	events := buf.Events()
	for _, e := range events {
		if e.Loggable() {
			m.log.add(e.Message)
		}
		if m.sink != nil {
			m.sink(e)
		}
	}
	return events
}
