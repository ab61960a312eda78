package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/game/combat"
	"github.com/udisondev/skirmish/internal/game/event"
	"github.com/udisondev/skirmish/internal/model"
	"github.com/udisondev/skirmish/internal/testutil"
)

const gridSize = 21

type fakeTerrain struct {
	bushes      map[model.Point]bool
	highlighted map[model.Point]bool
	origin      model.Point
	rng         int
	refreshed   []model.Team
	cleared     []model.Team
}

func newFakeTerrain() *fakeTerrain {
	return &fakeTerrain{bushes: map[model.Point]bool{}, highlighted: map[model.Point]bool{}}
}

func (f *fakeTerrain) Contains(p model.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < gridSize && p.Y < gridSize
}

func (f *fakeTerrain) Highlight(origin model.Point, rng int) {
	f.origin, f.rng = origin, rng
	clear(f.highlighted)
	for x := range gridSize {
		for y := range gridSize {
			if p := model.Pt(x, y); origin.Manhattan(p) <= rng {
				f.highlighted[p] = true
			}
		}
	}
}

func (f *fakeTerrain) IsHighlighted(p model.Point) bool { return f.highlighted[p] }

func (f *fakeTerrain) Overlay(p model.Point) model.Overlay {
	if f.bushes[p] {
		return model.OverlayBush
	}
	return model.OverlayNone
}

func (f *fakeTerrain) RefreshVisibility(team model.Team, _ []*model.Unit) {
	f.refreshed = append(f.refreshed, team)
}

func (f *fakeTerrain) ClearBarrier(team model.Team) { f.cleared = append(f.cleared, team) }

type fakePickups struct {
	at       map[model.Point]string
	consumed []string
	turns    []int
}

func (f *fakePickups) PickupAt(p model.Point) (string, bool) {
	k, ok := f.at[p]
	return k, ok
}

func (f *fakePickups) Consume(u *model.Unit, p model.Point) bool {
	k, ok := f.at[p]
	if !ok {
		return false
	}
	delete(f.at, p)
	u.AddMana(50)
	f.consumed = append(f.consumed, u.Name+":"+k)
	return true
}

func (f *fakePickups) Advance(turn int, _ []model.Point) { f.turns = append(f.turns, turn) }

type arena struct {
	m       *Match
	terrain *fakeTerrain
	pickups *fakePickups
	start   []event.Event

	garen, ashe, darius, soraka *model.Unit
	monster, blueBase, redBase  *model.Unit
}

func newArena(t *testing.T, tweak func(a *arena)) *arena {
	t.Helper()

	a := &arena{
		terrain: newFakeTerrain(),
		pickups: &fakePickups{at: map[model.Point]string{}},
		garen: testutil.Champion("Garen", model.TeamBlue, model.Pt(3, 3), testutil.WithSeat("blue-1"),
			testutil.WithAbilities(
				testutil.DamageAbility("Judgment", 150, 50, 3),
				&model.Ability{Name: "Courage", ManaCost: 20, Cooldown: 4, Effect: model.Buff{Defense: 50}},
			)),
		ashe:     testutil.Champion("Ashe", model.TeamBlue, model.Pt(0, 1), testutil.WithSeat("blue-2")),
		darius:   testutil.Champion("Darius", model.TeamRed, model.Pt(12, 12), testutil.WithSeat("red-1")),
		soraka:   testutil.Champion("Soraka", model.TeamRed, model.Pt(14, 12), testutil.WithSeat("red-2")),
		monster:  testutil.Monster("BlueBuff", model.Pt(16, 16)),
		blueBase: testutil.Base("NexusBlue", model.TeamBlue, model.Pt(0, 20)),
		redBase:  testutil.Base("NexusRed", model.TeamRed, model.Pt(20, 0)),
	}
	if tweak != nil {
		tweak(a)
	}

	seats, err := model.NewSeats([]model.Seat{
		{ID: "blue-1", Team: model.TeamBlue, Respawn: model.Pt(1, 18), StartKeys: 1},
		{ID: "red-1", Team: model.TeamRed, Respawn: model.Pt(18, 1), StartKeys: 1},
		{ID: "blue-2", Team: model.TeamBlue, Respawn: model.Pt(2, 19), StartKeys: 1},
		{ID: "red-2", Team: model.TeamRed, Respawn: model.Pt(19, 2), StartKeys: 1},
	})
	require.NoError(t, err)

	units := []*model.Unit{a.redBase, a.monster, a.soraka, a.darius, a.blueBase, a.ashe, a.garen}
	m, start, err := New(units, Options{
		Seats:   seats,
		Terrain: a.terrain,
		Pickups: a.pickups,
		Roller:  combat.FixedRoller(100),
	})
	require.NoError(t, err)
	a.m, a.start = m, start
	return a
}

func (a *arena) issue(t *testing.T, u *model.Unit, cmds ...Command) []event.Event {
	t.Helper()

	var all []event.Event
	for _, c := range cmds {
		events, err := a.m.Issue(u.ID, c)
		require.NoError(t, err, "%s: %s", u.Name, c)
		all = append(all, events...)
	}
	return all
}

// idle takes a unit that has not moved straight to Done.
func idle() []Command {
	return []Command{FinalizeMove{}, Confirm{}}
}

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestNew(t *testing.T) {
	a := newArena(t, nil)

	assert.Equal(t, []*model.Unit{a.ashe, a.garen, a.soraka, a.darius, a.monster, a.redBase, a.blueBase}, a.m.Units(),
		"turn order keeps input order within each group")
	for i, u := range a.m.Units() {
		assert.Equal(t, i, u.ID)
	}
	assert.Equal(t, a.ashe, a.m.Active())
	assert.Equal(t, 1, a.m.Turn())
	assert.Equal(t, 1, a.garen.BlueKeys)
	assert.Equal(t, 1, a.darius.RedKeys)
	assert.Equal(t, model.TeamNone, a.m.Winner())
	assert.Equal(t, a.ashe.Initial, a.terrain.origin)
	assert.Equal(t, a.ashe.MoveRange, a.terrain.rng)
	assert.Equal(t, []model.Team{model.TeamBlue}, a.terrain.refreshed)
	assert.Equal(t, event.KindTurn, a.start[len(a.start)-1].Kind)
}

func TestNew_RequiresTerrain(t *testing.T) {
	_, _, err := New([]*model.Unit{testutil.Champion("Garen", model.TeamBlue, model.Pt(0, 0))}, Options{})
	require.Error(t, err)
}

func TestIssue_OnlyActiveUnit(t *testing.T) {
	a := newArena(t, nil)

	events, err := a.m.Issue(a.darius.ID, MoveStep{Dir: Down})

	require.ErrorIs(t, err, ErrNotActive)
	require.Len(t, events, 1)
	assert.Equal(t, event.KindRejected, events[0].Kind)
	assert.Equal(t, model.Pt(12, 12), a.darius.Pos)

	_, err = a.m.Issue(99, EndTurn{})
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestMoveStep(t *testing.T) {
	a := newArena(t, nil)

	a.issue(t, a.ashe, MoveStep{Dir: Right}, MoveStep{Dir: Right}, MoveStep{Dir: Down})
	assert.Equal(t, model.Pt(2, 2), a.ashe.Pos)

	_, err := a.m.Issue(a.ashe.ID, MoveStep{Dir: Right})
	require.ErrorIs(t, err, ErrNotHighlighted, "range is counted from the turn start")
	assert.Equal(t, model.Pt(2, 2), a.ashe.Pos)

	a.issue(t, a.ashe, MoveStep{Dir: Left})
	assert.Equal(t, model.Pt(1, 2), a.ashe.Pos)
}

func TestMoveStep_OffTheMap(t *testing.T) {
	a := newArena(t, nil)

	_, err := a.m.Issue(a.ashe.ID, MoveStep{Dir: Left})

	require.ErrorIs(t, err, ErrNotHighlighted)
	assert.Equal(t, model.Pt(0, 1), a.ashe.Pos)
}

func TestWrongPhase(t *testing.T) {
	a := newArena(t, nil)

	for _, c := range []Command{Confirm{}, MoveCursor{Dir: Up}, SelectAbility{}, CancelAbility{}, EndTurn{}} {
		_, err := a.m.Issue(a.ashe.ID, c)
		require.ErrorIs(t, err, ErrWrongPhase, "%s", c)
	}

	a.issue(t, a.ashe, FinalizeMove{})
	_, err := a.m.Issue(a.ashe.ID, MoveStep{Dir: Right})
	require.ErrorIs(t, err, ErrWrongPhase)
	_, err = a.m.Issue(a.ashe.ID, FinalizeMove{})
	require.ErrorIs(t, err, ErrWrongPhase)
}

func TestFinalizeMove(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.ashe.AddMana(-100)
	})
	a.pickups.at[model.Pt(1, 1)] = "blue potion"

	a.issue(t, a.ashe, MoveStep{Dir: Right})
	events := a.issue(t, a.ashe, FinalizeMove{})

	assert.Equal(t, model.PhaseAttack, a.ashe.Phase)
	assert.Equal(t, a.ashe.Pos, a.ashe.Cursor)
	assert.Equal(t, []string{"Ashe:blue potion"}, a.pickups.consumed)
	assert.Equal(t, testutil.Fixtures.ChampionMana-50, a.ashe.Mana())
	assert.Contains(t, kinds(events), event.KindPickup)
	assert.Equal(t, []model.Team{model.TeamBlue, model.TeamBlue}, a.terrain.refreshed)
}

func TestFinalizeMove_OccupiedTile(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.garen.Pos = model.Pt(1, 1)
	})

	a.issue(t, a.ashe, MoveStep{Dir: Right})
	_, err := a.m.Issue(a.ashe.ID, FinalizeMove{})

	require.ErrorIs(t, err, ErrTileOccupied)
	assert.Equal(t, model.PhaseMove, a.ashe.Phase)
}

func TestFinalizeMove_FriendInBushIsNotAmbush(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.garen.Pos = model.Pt(1, 1)
	})
	a.terrain.bushes[model.Pt(1, 1)] = true

	a.issue(t, a.ashe, MoveStep{Dir: Right})
	_, err := a.m.Issue(a.ashe.ID, FinalizeMove{})

	require.ErrorIs(t, err, ErrTileOccupied)
	assert.True(t, a.ashe.Alive())
}

func TestFinalizeMove_DeadOccupantIgnored(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.darius.Pos = model.Pt(1, 1)
		testutil.Kill(a.darius)
	})

	a.issue(t, a.ashe, MoveStep{Dir: Right}, FinalizeMove{})

	assert.Equal(t, model.PhaseAttack, a.ashe.Phase)
}

func TestAmbush(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.darius.Pos = model.Pt(1, 1)
	})
	a.terrain.bushes[model.Pt(1, 1)] = true

	a.issue(t, a.ashe, MoveStep{Dir: Right})
	events := a.issue(t, a.ashe, FinalizeMove{})

	assert.False(t, a.ashe.Alive())
	assert.Equal(t, model.PhaseDone, a.ashe.Phase)
	assert.Equal(t, 1, a.darius.BlueKeys, "hidden champion takes the victim's key")
	assert.Zero(t, a.ashe.BlueKeys)
	assert.Contains(t, kinds(events), event.KindAmbush)
	assert.Contains(t, kinds(events), event.KindDeath)
	assert.Contains(t, kinds(events), event.KindKeyTransfer)

	a.issue(t, a.ashe, EndTurn{})
	assert.Equal(t, a.garen, a.m.Active())
}

func TestAmbush_MonsterKeepsNoKeys(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.monster.Pos = model.Pt(1, 1)
	})
	a.terrain.bushes[model.Pt(1, 1)] = true

	a.issue(t, a.ashe, MoveStep{Dir: Right})
	events := a.issue(t, a.ashe, FinalizeMove{})

	assert.False(t, a.ashe.Alive())
	assert.Equal(t, 1, a.ashe.BlueKeys, "keys stay frozen on the corpse")
	assert.Zero(t, a.monster.BlueKeys)
	assert.Contains(t, kinds(events), event.KindKeysFrozen)
}

func TestMoveCursor(t *testing.T) {
	a := newArena(t, nil)
	a.issue(t, a.ashe, FinalizeMove{})

	a.issue(t, a.ashe, MoveCursor{Dir: Right}, MoveCursor{Dir: Down})
	assert.Equal(t, model.Pt(1, 2), a.ashe.Cursor)

	_, err := a.m.Issue(a.ashe.ID, MoveCursor{Dir: Right})
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, model.Pt(1, 2), a.ashe.Cursor)

	a.issue(t, a.ashe, MoveCursor{Dir: Left}, MoveCursor{Dir: Up}, MoveCursor{Dir: Up})
	assert.Equal(t, model.Pt(0, 0), a.ashe.Cursor)
	_, err = a.m.Issue(a.ashe.ID, MoveCursor{Dir: Left})
	require.ErrorIs(t, err, ErrOutOfRange, "off the map")
}

func TestSelectAbility_WidensCursorRange(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.ashe.Abilities = []*model.Ability{{
			Name:   "Volley",
			Radius: testutil.Radius(4),
			Effect: model.DamageHeal{Amount: 50},
		}}
	})
	a.issue(t, a.ashe, FinalizeMove{})

	a.issue(t, a.ashe, SelectAbility{Index: 0})
	a.issue(t, a.ashe, MoveCursor{Dir: Right}, MoveCursor{Dir: Right}, MoveCursor{Dir: Right}, MoveCursor{Dir: Right})
	assert.Equal(t, model.Pt(4, 1), a.ashe.Cursor)

	a.issue(t, a.ashe, CancelAbility{})
	assert.Equal(t, model.NoAbility, a.ashe.Selected)
	assert.Equal(t, a.ashe.Pos, a.ashe.Cursor, "cancel recentres the cursor")
}

func TestSelectAbility_OutOfBounds(t *testing.T) {
	a := newArena(t, nil)
	a.issue(t, a.ashe, idle()...)
	a.issue(t, a.ashe, EndTurn{})
	require.Equal(t, a.garen, a.m.Active())
	a.issue(t, a.garen, FinalizeMove{})

	for _, idx := range []int{-1, 2, 3} {
		_, err := a.m.Issue(a.garen.ID, SelectAbility{Index: idx})
		require.ErrorIs(t, err, ErrNoSuchAbility, "index %d", idx)
	}
	a.issue(t, a.garen, SelectAbility{Index: 1})
	assert.Equal(t, 1, a.garen.Selected)
}

func TestConfirm_BasicAttack(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.darius.Pos = model.Pt(1, 2)
	})
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right}, MoveCursor{Dir: Down})

	events := a.issue(t, a.ashe, Confirm{})

	assert.Equal(t, model.PhaseDone, a.ashe.Phase)
	assert.Equal(t, testutil.Fixtures.ChampionHealth-100, a.darius.Health())
	assert.Equal(t, []event.Kind{event.KindHit, event.KindFX}, kinds(events))
	assert.Equal(t, "Ashe attacked Darius for 100 damage!", events[0].Message)
}

func TestConfirm_BasicAttackMiss(t *testing.T) {
	a := newArena(t, nil)
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right})

	events := a.issue(t, a.ashe, Confirm{})

	assert.Equal(t, model.PhaseDone, a.ashe.Phase)
	assert.Equal(t, []event.Kind{event.KindMiss}, kinds(events))
}

func TestConfirm_BasicAttackIgnoresAllies(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.garen.Pos = model.Pt(1, 1)
	})
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right})

	events := a.issue(t, a.ashe, Confirm{})

	assert.Equal(t, testutil.Fixtures.ChampionHealth, a.garen.Health())
	assert.Equal(t, event.KindMiss, events[0].Kind)
}

func TestConfirm_AbilityRejectedKeepsAttackPhase(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.darius.Pos = model.Pt(4, 3)
		a.garen.AddMana(-180)
	})
	a.issue(t, a.ashe, idle()...)
	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, FinalizeMove{}, SelectAbility{Index: 0}, MoveCursor{Dir: Right})

	_, err := a.m.Issue(a.garen.ID, Confirm{})

	require.ErrorIs(t, err, ErrNotEnoughMana)
	assert.Equal(t, model.PhaseAttack, a.garen.Phase)
	assert.Equal(t, 0, a.garen.Selected)
	assert.Equal(t, testutil.Fixtures.ChampionHealth, a.darius.Health())
	assert.Contains(t, a.m.Log()[len(a.m.Log())-1], "not enough mana")
}

func TestConfirm_AbilityNoTarget(t *testing.T) {
	a := newArena(t, nil)
	a.issue(t, a.ashe, idle()...)
	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, FinalizeMove{}, SelectAbility{Index: 0}, MoveCursor{Dir: Right})

	_, err := a.m.Issue(a.garen.ID, Confirm{})

	require.ErrorIs(t, err, ErrNoTarget)
	assert.Equal(t, model.PhaseAttack, a.garen.Phase)
	assert.Equal(t, testutil.Fixtures.ChampionMana, a.garen.Mana())
}

func TestConfirm_AbilityHitsAndKills(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.darius.Pos = model.Pt(4, 3)
		a.darius.TakeDamage(900)
	})
	a.issue(t, a.ashe, idle()...)
	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, FinalizeMove{}, SelectAbility{Index: 0}, MoveCursor{Dir: Right})

	events := a.issue(t, a.garen, Confirm{})

	assert.Equal(t, model.PhaseDone, a.garen.Phase)
	assert.Equal(t, model.NoAbility, a.garen.Selected)
	assert.False(t, a.darius.Alive())
	assert.Equal(t, 1, a.garen.RedKeys)
	assert.Equal(t, testutil.Fixtures.ChampionMana-50, a.garen.Mana())
	assert.Equal(t, 3, a.garen.Abilities[0].RemainingCooldown)
	assert.Subset(t, kinds(events), []event.Kind{event.KindLog, event.KindHit, event.KindFX, event.KindDeath, event.KindKeyTransfer})
	testutil.AssertHealthInvariant(t, a.m.Units())
}

func TestConfirm_BuffSelf(t *testing.T) {
	a := newArena(t, nil)
	a.issue(t, a.ashe, idle()...)
	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, FinalizeMove{}, SelectAbility{Index: 1})

	events := a.issue(t, a.garen, Confirm{})

	assert.True(t, a.garen.IsBuffed())
	assert.Equal(t, 50, a.garen.PhysicalDefense)
	require.Len(t, events, 2)
	assert.Equal(t, event.KindBuff, events[1].Kind)
	require.NotNil(t, events[1].FX)
}

func TestConfirm_MonsterCounterKillFreezesKeys(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.monster.Pos = model.Pt(1, 2)
		a.ashe.TakeDamage(900)
	})
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right}, MoveCursor{Dir: Down})

	events := a.issue(t, a.ashe, Confirm{})

	assert.False(t, a.ashe.Alive())
	assert.Equal(t, 1, a.ashe.BlueKeys)
	assert.Equal(t, testutil.Fixtures.MonsterHealth-100, a.monster.Health())
	assert.Contains(t, kinds(events), event.KindKeysFrozen)

	a.issue(t, a.ashe, EndTurn{})
	assert.Equal(t, a.garen, a.m.Active())
}

func TestConfirm_MonsterKillBuffsTeam(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.monster.Pos = model.Pt(1, 2)
		a.monster.TakeDamage(300)
	})
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right}, MoveCursor{Dir: Down})

	events := a.issue(t, a.ashe, Confirm{})

	assert.False(t, a.monster.Alive())
	assert.Contains(t, kinds(events), event.KindMonsterBuff)
	assert.Equal(t, 1050, a.garen.MaxHealth())
	assert.Equal(t, 105, a.ashe.Damage)
	assert.Equal(t, testutil.Fixtures.ChampionHealth, a.darius.MaxHealth())
}

func TestBarrierBreachAndBaseDestroyed(t *testing.T) {
	a := newArena(t, func(a *arena) {
		a.garen.RedKeys = 2
		a.darius.Pos = model.Pt(1, 2)
		a.darius.TakeDamage(950)
		a.redBase.Pos = model.Pt(0, 2)
		a.redBase.TakeDamage(2450)
	})

	// The red base is immune while its barrier stands.
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Down})
	events := a.issue(t, a.ashe, Confirm{})
	assert.Equal(t, event.KindMiss, events[0].Kind)
	assert.Equal(t, 50, a.redBase.Health())
	assert.Zero(t, a.redBase.DamageTaken)

	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, idle()...)
	a.issue(t, a.garen, EndTurn{})
	a.issue(t, a.soraka, idle()...)
	a.issue(t, a.soraka, EndTurn{})
	a.issue(t, a.darius, idle()...)
	a.issue(t, a.darius, EndTurn{})
	require.Equal(t, a.ashe, a.m.Active())

	// Killing Darius hands Ashe the third red key.
	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Right}, MoveCursor{Dir: Down})
	events = a.issue(t, a.ashe, Confirm{})
	assert.Contains(t, kinds(events), event.KindBarrierBreach)
	assert.Equal(t, model.BarrierDown, a.redBase.Barrier)
	assert.Equal(t, []model.Team{model.TeamRed}, a.terrain.cleared)
	assert.True(t, a.m.State().RedBarrierDown)

	a.issue(t, a.ashe, EndTurn{})
	a.issue(t, a.garen, idle()...)
	a.issue(t, a.garen, EndTurn{})
	a.issue(t, a.soraka, idle()...)
	a.issue(t, a.soraka, EndTurn{})
	require.Equal(t, a.ashe, a.m.Active(), "dead Darius is skipped")

	a.issue(t, a.ashe, FinalizeMove{}, MoveCursor{Dir: Down})
	events = a.issue(t, a.ashe, Confirm{})

	assert.False(t, a.redBase.Alive())
	assert.Equal(t, model.TeamBlue, a.m.Winner())
	assert.Contains(t, kinds(events), event.KindGameOver)
	assert.True(t, a.m.Over())

	_, err := a.m.Issue(a.ashe.ID, EndTurn{})
	require.ErrorIs(t, err, ErrMatchOver)
	assert.Equal(t, []model.Team{model.TeamRed}, a.terrain.cleared, "breach is one-shot")
}

func TestEndTurn_FullRotation(t *testing.T) {
	a := newArena(t, nil)
	order := []*model.Unit{a.ashe, a.garen, a.soraka, a.darius, a.ashe}

	for i, u := range order[:len(order)-1] {
		require.Equal(t, u, a.m.Active(), "step %d", i)
		a.issue(t, u, idle()...)
		a.issue(t, u, EndTurn{})
		assert.Equal(t, model.PhaseMove, u.Phase)
		assert.Equal(t, order[i+1], a.m.Active())
		assert.Equal(t, order[i+1].Initial, a.terrain.origin, "highlight follows the new active unit")
	}
	assert.Equal(t, 5, a.m.Turn())
	assert.Equal(t, []int{2, 3, 4, 5}, a.pickups.turns)
}

func TestLog_KeepsLastLines(t *testing.T) {
	a := newArena(t, nil)

	for range 8 {
		u := a.m.Active()
		a.issue(t, u, idle()...)
		a.issue(t, u, EndTurn{})
	}

	lines := a.m.Log()
	require.Len(t, lines, DefaultLogSize)
	assert.Equal(t, fmt.Sprintf("Turn 9: %s (blue) to act", a.ashe.Name), lines[len(lines)-1])
}

func TestEventSink(t *testing.T) {
	a := newArena(t, nil)
	var got []event.Event
	a.m.SetEventSink(func(e event.Event) { got = append(got, e) })

	events := a.issue(t, a.ashe, FinalizeMove{})
	_, _ = a.m.Issue(a.ashe.ID, FinalizeMove{})

	require.Len(t, got, len(events)+1)
	assert.Equal(t, event.KindRejected, got[len(got)-1].Kind)
}
