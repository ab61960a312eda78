package match

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/game/skill"
	"github.com/udisondev/skirmish/internal/model"
)

const (
	flashDamage = "red"
	flashHeal   = "green"
	flashBuff   = "gold"
	flashDebuff = "purple"

	hitParticles = 15
)

func (m *Match) moveStep(u *model.Unit, dir Direction) error {
	if err := requirePhase(u, model.PhaseMove); err != nil {
		return err
	}
	dest := dir.Step(u.Pos)
	if !m.terrain.Contains(dest) || !m.terrain.IsHighlighted(dest) {
		return fmt.Errorf("%w: %v", ErrNotHighlighted, dest)
	}
	u.Pos = dest
	u.Cursor = dest
	return nil
}

// occupant returns a living unit other than u standing on p.
func (m *Match) occupant(u *model.Unit, p model.Point) *model.Unit {
	for _, o := range m.units {
		if o != u && o.Alive() && o.Pos == p {
			return o
		}
	}
	return nil
}

func (m *Match) finalizeMove(u *model.Unit, buf *event.Buffer) error {
	if err := requirePhase(u, model.PhaseMove); err != nil {
		return err
	}

	occ := m.occupant(u, u.Pos)
	switch {
	case occ == nil:
	case m.terrain.Overlay(u.Pos) == model.OverlayBush && u.Opposes(occ):
		m.ambush(occ, u, buf)
		return nil
	default:
		return fmt.Errorf("%w: %s stands on %v", ErrTileOccupied, occ.Name, u.Pos)
	}

	u.Phase = model.PhaseAttack
	u.Selected = model.NoAbility
	u.ResetCursor()
	buf.Addf(event.KindLog, "%s finalized move at %v.", u.Name, u.Pos)

	if m.pickups != nil {
		if kind, ok := m.pickups.PickupAt(u.Pos); ok && m.pickups.Consume(u, u.Pos) {
			e := event.New(event.KindPickup, buf.Turn, "%s picked up a %s", u.Name, kind)
			e.Unit = u.Name
			buf.Add(e)
		}
	}
	m.terrain.RefreshVisibility(u.Team, m.units)
	m.terrain.Highlight(u.Pos, u.ActiveRange())
	return nil
}

// ambush resolves a unit finalizing its move onto a bush an enemy hides in.
func (m *Match) ambush(hidden, victim *model.Unit, buf *event.Buffer) {
	slog.Debug("ambush", "hidden", hidden.Name, "victim", victim.Name, "at", victim.Pos)
	e := event.New(event.KindAmbush, buf.Turn, "%s got assassinated by %s", victim.Name, hidden.Name)
	e.Unit, e.Target = hidden.Name, victim.Name
	buf.Add(e)

	h := m.resolver.Resolve(hidden, victim, m.rules.AmbushDamage, model.DamagePhysical)
	buf.Add(event.Effect(buf.Turn, victim.Pos, true, flashDamage, hitParticles))
	m.afterHit(h, buf)
	victim.Phase = model.PhaseDone
	victim.Selected = model.NoAbility
}

func (m *Match) moveCursor(u *model.Unit, dir Direction) error {
	if err := requirePhase(u, model.PhaseAttack); err != nil {
		return err
	}
	next := dir.Step(u.Cursor)
	if !m.terrain.Contains(next) {
		return fmt.Errorf("%w: %v is off the map", ErrOutOfRange, next)
	}
	if rng := u.ActiveRange(); u.Pos.Manhattan(next) > rng {
		return fmt.Errorf("%w: %v is beyond range %d", ErrOutOfRange, next, rng)
	}
	u.Cursor = next
	return nil
}

func (m *Match) selectAbility(u *model.Unit, idx int) error {
	if err := requirePhase(u, model.PhaseAttack); err != nil {
		return err
	}
	if idx < 0 || idx >= maxAbilities || idx >= len(u.Abilities) {
		return fmt.Errorf("%w: %d", ErrNoSuchAbility, idx+1)
	}
	u.Selected = idx
	u.ResetCursor()
	m.terrain.Highlight(u.Pos, u.ActiveRange())
	return nil
}

func (m *Match) cancelAbility(u *model.Unit) error {
	if err := requirePhase(u, model.PhaseAttack); err != nil {
		return err
	}
	u.Selected = model.NoAbility
	u.ResetCursor()
	m.terrain.Highlight(u.Pos, u.ActiveRange())
	return nil
}

func (m *Match) confirm(u *model.Unit, buf *event.Buffer) error {
	if err := requirePhase(u, model.PhaseAttack); err != nil {
		return err
	}
	if u.SelectedAbility() == nil {
		m.basicAttack(u, buf)
		u.Phase = model.PhaseDone
		return nil
	}
	if err := m.useAbility(u, buf); err != nil {
		return err
	}
	u.Phase = model.PhaseDone
	u.Selected = model.NoAbility
	return nil
}

func (m *Match) basicAttack(u *model.Unit, buf *event.Buffer) {
	var target *model.Unit
	for _, o := range m.units {
		if o.Alive() && o.Pos == u.Cursor && u.Opposes(o) {
			target = o
			break
		}
	}
	if target == nil {
		e := event.New(event.KindMiss, buf.Turn, "%s attacked but missed!", u.Name)
		e.Unit = u.Name
		buf.Add(e)
		return
	}

	h := m.resolver.Resolve(u, target, u.AttackPower(), model.DamagePhysical)
	switch {
	case h.Absorbed:
		e := event.New(event.KindMiss, buf.Turn, "%s's barrier absorbed %s's attack", target.Name, u.Name)
		e.Unit, e.Target = u.Name, target.Name
		buf.Add(e)
	case h.Amount > 0:
		buf.Add(hitEvent(h, buf.Turn, "%s attacked %s for %d damage!", u.Name, target.Name, h.Amount))
		buf.Add(event.Effect(buf.Turn, target.Pos, true, flashDamage, hitParticles))
	default:
		e := event.New(event.KindMiss, buf.Turn, "%s attacked %s but missed!", u.Name, target.Name)
		e.Unit, e.Target = u.Name, target.Name
		buf.Add(e)
	}
	m.afterHit(h, buf)
}

func (m *Match) useAbility(u *model.Unit, buf *event.Buffer) error {
	res, err := m.caster.Use(u, u.Selected, u.Cursor, m.units)
	if err != nil {
		if errors.Is(err, skill.ErrCasterNotReady) {
			return fmt.Errorf("%w: %v", ErrWrongPhase, err)
		}
		return err
	}

	a := res.Ability
	buf.Addf(event.KindLog, "%s used %s", u.Name, a.Name)
	for _, o := range res.Outcomes {
		switch {
		case o.Hit != nil && o.Hit.Amount < 0:
			e := hitEvent(*o.Hit, buf.Turn, "%s healed %s for %d", u.Name, o.Target.Name, -o.Hit.Amount)
			e.Kind = event.KindHeal
			buf.Add(e)
			buf.Add(event.Effect(buf.Turn, o.Target.Pos, false, flashHeal, hitParticles))
		case o.Hit != nil && o.Hit.Absorbed:
			buf.Addf(event.KindMiss, "%s's barrier absorbed %s", o.Target.Name, a.Name)
		case o.Hit != nil && o.Hit.Amount > 0:
			buf.Add(hitEvent(*o.Hit, buf.Turn, "%s hit %s with %s for %d damage!", u.Name, o.Target.Name, a.Name, o.Hit.Amount))
			buf.Add(event.Effect(buf.Turn, o.Target.Pos, true, flashDamage, hitParticles))
		case o.Hit != nil:
			buf.Addf(event.KindMiss, "%s's %s had no effect on %s", u.Name, a.Name, o.Target.Name)
		default:
			buf.Add(effectEvent(a, u, o, buf.Turn))
		}
		if o.Hit != nil {
			m.afterHit(*o.Hit, buf)
		}
	}
	return nil
}

func effectEvent(a *model.Ability, caster *model.Unit, o skill.Outcome, turn int) event.Event {
	var e event.Event
	switch a.Effect.(type) {
	case model.Debuff:
		e = event.New(event.KindDebuff, turn, "%s weakened %s (-%d attack, -%d defense) for %d turns",
			caster.Name, o.Target.Name, o.Attack, o.Defense, o.Duration)
		e.FX = &event.FX{Flash: flashDebuff, At: o.Target.Pos}
	default:
		e = event.New(event.KindBuff, turn, "%s empowered %s (+%d attack, +%d defense) for %d turns",
			caster.Name, o.Target.Name, o.Attack, o.Defense, o.Duration)
		e.FX = &event.FX{Flash: flashBuff, At: o.Target.Pos}
	}
	e.Unit, e.Target, e.Amount = caster.Name, o.Target.Name, o.Duration
	return e
}

func hitEvent(h combat.Hit, turn int, format string, args ...any) event.Event {
	e := event.New(event.KindHit, turn, format, args...)
	if h.Crit {
		e.Message += " Critical!"
	}
	e.Unit, e.Target, e.Amount = h.Attacker.Name, h.Target.Name, h.Amount
	return e
}

// afterHit reports a kill to the tracker, then does the same for the
// counter-attack the hit provoked, if any.
func (m *Match) afterHit(h combat.Hit, buf *event.Buffer) {
	if h.Killed {
		m.onKill(h.Target, h.Attacker, buf)
	}
	if c := h.Counter; c != nil {
		if c.Amount > 0 {
			buf.Add(hitEvent(*c, buf.Turn, "%s struck back at %s for %d damage!", c.Attacker.Name, c.Target.Name, c.Amount))
			buf.Add(event.Effect(buf.Turn, c.Target.Pos, true, flashDamage, hitParticles))
		}
		m.afterHit(*c, buf)
	}
}

func (m *Match) onKill(dead, killer *model.Unit, buf *event.Buffer) {
	e := event.New(event.KindDeath, buf.Turn, "%s has been defeated!", dead.Name)
	e.Unit, e.Target, e.Team = killer.Name, dead.Name, dead.Team
	buf.Add(e)

	m.tracker.OnDeath(dead, killer, m.units, buf)
	m.state = m.tracker.CheckBarriers(m.state, m.units, buf)

	if dead.IsBase() && m.state.Winner == model.TeamNone {
		m.state.Winner = dead.Team.Opponent()
		slog.Info("match over", "winner", m.state.Winner, "turn", m.state.Turn)
		g := event.New(event.KindGameOver, buf.Turn, "%s base destroyed! %s team wins", dead.Team, m.state.Winner)
		g.Team = m.state.Winner
		buf.Add(g)
	}
}

func (m *Match) endTurn(u *model.Unit, buf *event.Buffer) error {
	if err := requirePhase(u, model.PhaseDone); err != nil {
		return err
	}
	m.state = m.scheduler.EndTurn(m.state, buf)
	if next := m.Active(); next != nil && !m.state.Exhausted {
		m.terrain.Highlight(next.Initial, next.MoveRange)
	}
	return nil
}
