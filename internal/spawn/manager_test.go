package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/model"
)

type mockBoard []model.Point

func (b mockBoard) OpenTiles() []model.Point { return b }

func newTestManager(t *testing.T, cfg Config, tiles ...model.Point) *Manager {
	t.Helper()
	m, err := NewManager(cfg, mockBoard(tiles), 42)
	require.NoError(t, err)
	return m
}

func singleKindConfig() Config {
	cfg := DefaultConfig()
	cfg.FirstMin, cfg.FirstMax = 2, 2
	cfg.IntervalMin, cfg.IntervalMax = 3, 3
	cfg.Lifetime = 4
	cfg.Kinds = []Kind{{Name: "red potion", Weight: 1, Health: 150}}
	return cfg
}

func TestNewManager_FirstSpawnWindow(t *testing.T) {
	cfg := DefaultConfig()
	for seed := range uint64(50) {
		m, err := NewManager(cfg, mockBoard{model.Pt(0, 0)}, seed)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.NextSpawn(), 5)
		assert.LessOrEqual(t, m.NextSpawn(), 8)
	}
}

func TestNewManager_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no kinds", func(c *Config) { c.Kinds = nil }, ErrNoKinds},
		{"zero weight", func(c *Config) { c.Kinds[0].Weight = 0 }, ErrBadWeight},
		{"zero max", func(c *Config) { c.Max = 0 }, ErrNonPositiveMax},
		{"inverted first", func(c *Config) { c.FirstMin, c.FirstMax = 9, 3 }, ErrBadInterval},
		{"zero interval", func(c *Config) { c.IntervalMin = 0 }, ErrBadInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := NewManager(cfg, mockBoard{}, 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdvance_SpawnAndExpire(t *testing.T) {
	tile := model.Pt(3, 3)
	m := newTestManager(t, singleKindConfig(), tile)

	m.Advance(1, nil)
	assert.Empty(t, m.Pickups())

	m.Advance(2, nil)
	kind, ok := m.PickupAt(tile)
	require.True(t, ok)
	assert.Equal(t, "red potion", kind)
	assert.Equal(t, 5, m.NextSpawn())

	// тайл занят зельем: следующий спавн некуда ставить
	m.Advance(5, nil)
	assert.Len(t, m.Pickups(), 1)

	m.Advance(6, nil)
	assert.Empty(t, m.Pickups(), "expires after Lifetime turns")
}

func TestAdvance_SkipsOccupiedTiles(t *testing.T) {
	free, taken := model.Pt(1, 0), model.Pt(0, 0)
	m := newTestManager(t, singleKindConfig(), taken, free)

	m.Advance(2, []model.Point{taken})

	_, onTaken := m.PickupAt(taken)
	_, onFree := m.PickupAt(free)
	assert.False(t, onTaken)
	assert.True(t, onFree)
}

func TestAdvance_RespectsMax(t *testing.T) {
	cfg := singleKindConfig()
	cfg.Max = 2
	cfg.Lifetime = 100
	cfg.IntervalMin, cfg.IntervalMax = 1, 1
	m := newTestManager(t, cfg, model.Pt(0, 0), model.Pt(1, 0), model.Pt(2, 0))

	for turn := 2; turn <= 10; turn++ {
		m.Advance(turn, nil)
	}
	assert.Len(t, m.Pickups(), 2)
}

func TestAdvance_Deterministic(t *testing.T) {
	tiles := []model.Point{model.Pt(0, 0), model.Pt(1, 0), model.Pt(2, 0), model.Pt(3, 0)}
	run := func() []Pickup {
		m, err := NewManager(DefaultConfig(), mockBoard(tiles), 7)
		require.NoError(t, err)
		for turn := 1; turn <= 60; turn++ {
			m.Advance(turn, nil)
		}
		return m.Pickups()
	}
	assert.Equal(t, run(), run())
}

func TestConsume(t *testing.T) {
	m := newTestManager(t, singleKindConfig(), model.Pt(0, 0))
	require.NoError(t, m.Place("red potion", model.Pt(0, 0), 1))

	u := model.NewUnit(model.UnitSpec{Name: "Ashe", Kind: model.KindPlayer, Health: 500})
	u.TakeDamage(300)

	assert.False(t, m.Consume(u, model.Pt(1, 1)), "nothing there")
	assert.True(t, m.Consume(u, model.Pt(0, 0)))
	assert.Equal(t, 350, u.Health())
	assert.Empty(t, m.Pickups())
}

func TestConsume_DeadUnit(t *testing.T) {
	m := newTestManager(t, singleKindConfig(), model.Pt(0, 0))
	require.NoError(t, m.Place("red potion", model.Pt(0, 0), 1))

	u := model.NewUnit(model.UnitSpec{Name: "Ashe", Kind: model.KindPlayer, Health: 500})
	u.TakeDamage(500)

	assert.False(t, m.Consume(u, model.Pt(0, 0)))
	assert.Len(t, m.Pickups(), 1)
}

func TestPlace_UnknownKind(t *testing.T) {
	m := newTestManager(t, singleKindConfig())
	assert.Error(t, m.Place("purple potion", model.Pt(0, 0), 1))
}

func TestKind_Apply(t *testing.T) {
	kinds := DefaultConfig().Kinds
	byName := func(name string) *Kind {
		for i := range kinds {
			if kinds[i].Name == name {
				return &kinds[i]
			}
		}
		t.Fatalf("kind %q not found", name)
		return nil
	}

	u := model.NewUnit(model.UnitSpec{
		Name: "Garen", Kind: model.KindPlayer, Health: 900, Mana: 220,
		Damage: 80, PhysicalDefense: 50, MagicalDefense: 50,
	})
	u.AddMana(-220)

	byName("blue potion").Apply(u)
	assert.Equal(t, 80, u.Mana())

	byName("golden potion").Apply(u)
	assert.Equal(t, 110, u.Damage)
	assert.Equal(t, 70, u.PhysicalDefense)
	assert.True(t, u.IsBuffed())

	byName("black potion").Apply(u)
	assert.Equal(t, 220, u.Mana(), "mana is capped")
	assert.Equal(t, 150, u.Damage)
	assert.Equal(t, 50, u.PhysicalDefense)
	assert.Equal(t, 50, u.MagicalDefense)
	assert.True(t, u.IsDebuffed())

	for range 3 {
		u.TickEffects()
	}
	assert.Equal(t, 80, u.Damage)
	assert.Equal(t, 50, u.PhysicalDefense)
}
