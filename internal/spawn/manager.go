// Package spawn размещает зелья на поле и убирает их по таймеру.
//
// Manager реализует контракт match.Pickups: раз в несколько ходов на случайной
// свободной клетке появляется зелье случайного вида (вес = редкость),
// через Lifetime ходов оно исчезает, подобранное зелье применяется к юниту.
package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

var (
	ErrNoKinds        = errors.New("spawn: no pickup kinds configured")
	ErrBadWeight      = errors.New("spawn: pickup weight must be positive")
	ErrBadInterval    = errors.New("spawn: interval bounds are inverted")
	ErrNonPositiveMax = errors.New("spawn: max pickups must be positive")
)

// Board lists the tiles a pickup may appear on.
type Board interface {
	OpenTiles() []model.Point
}

// Pickup — зелье на клетке.
type Pickup struct {
	Kind      *Kind
	Pos       model.Point
	SpawnedAt int
}

// Manager manages pickup spawns and despawns. It is driven by the turn
// scheduler and is not safe for concurrent use.
type Manager struct {
	cfg   Config
	board Board
	rng   *rand.Rand

	pickups   map[model.Point]*Pickup
	nextSpawn int
}

// NewManager creates a spawner seeded with seed. The first spawn lands on a
// turn drawn from [FirstMin, FirstMax].
func NewManager(cfg Config, board Board, seed uint64) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		cfg:     cfg,
		board:   board,
		rng:     rand.New(rand.NewPCG(seed, seed^0x5eed)),
		pickups: make(map[model.Point]*Pickup),
	}
	m.nextSpawn = m.between(cfg.FirstMin, cfg.FirstMax)
	return m, nil
}

// PickupAt returns the kind name of the pickup lying on p.
func (m *Manager) PickupAt(p model.Point) (string, bool) {
	pk, ok := m.pickups[p]
	if !ok {
		return "", false
	}
	return pk.Kind.Name, true
}

// Consume applies the pickup on p to u and removes it.
// Dead units pick nothing up.
func (m *Manager) Consume(u *model.Unit, p model.Point) bool {
	pk, ok := m.pickups[p]
	if !ok || u == nil || !u.Alive() {
		return false
	}
	pk.Kind.Apply(u)
	delete(m.pickups, p)

	slog.Debug("pickup consumed", "unit", u.Name, "kind", pk.Kind.Name, "pos", p)
	return true
}

// Advance expires old pickups and, when the spawn timer is due, places a new
// one on a random open tile that no unit occupies.
func (m *Manager) Advance(turn int, occupied []model.Point) {
	for p, pk := range m.pickups {
		if turn-pk.SpawnedAt >= m.cfg.Lifetime {
			delete(m.pickups, p)
			slog.Debug("pickup expired", "kind", pk.Kind.Name, "pos", p, "turn", turn)
		}
	}

	if turn < m.nextSpawn {
		return
	}
	m.nextSpawn = turn + m.between(m.cfg.IntervalMin, m.cfg.IntervalMax)

	if len(m.pickups) >= m.cfg.Max {
		return
	}
	free := m.freeTiles(occupied)
	if len(free) == 0 {
		slog.Warn("no free tile for pickup", "turn", turn)
		return
	}
	p := free[m.rng.IntN(len(free))]
	kind := m.pickKind()
	m.pickups[p] = &Pickup{Kind: kind, Pos: p, SpawnedAt: turn}

	slog.Debug("pickup spawned", "kind", kind.Name, "pos", p, "turn", turn, "next", m.nextSpawn)
}

// Pickups returns the pickups on the board in row-major order.
func (m *Manager) Pickups() []Pickup {
	out := make([]Pickup, 0, len(m.pickups))
	for _, pk := range m.pickups {
		out = append(out, *pk)
	}
	slices.SortFunc(out, func(a, b Pickup) int {
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y - b.Pos.Y
		}
		return a.Pos.X - b.Pos.X
	})
	return out
}

// NextSpawn returns the turn of the next spawn attempt.
func (m *Manager) NextSpawn() int { return m.nextSpawn }

// Place puts a pickup of the named kind on p, replacing whatever lay there.
func (m *Manager) Place(name string, p model.Point, turn int) error {
	for i := range m.cfg.Kinds {
		if m.cfg.Kinds[i].Name == name {
			m.pickups[p] = &Pickup{Kind: &m.cfg.Kinds[i], Pos: p, SpawnedAt: turn}
			return nil
		}
	}
	return fmt.Errorf("spawn: unknown pickup kind %q", name)
}

func (m *Manager) freeTiles(occupied []model.Point) []model.Point {
	var free []model.Point
	for _, p := range m.board.OpenTiles() {
		if _, taken := m.pickups[p]; taken || slices.Contains(occupied, p) {
			continue
		}
		free = append(free, p)
	}
	return free
}

func (m *Manager) pickKind() *Kind {
	var total float64
	for _, k := range m.cfg.Kinds {
		total += k.Weight
	}
	roll := m.rng.Float64() * total
	for i := range m.cfg.Kinds {
		roll -= m.cfg.Kinds[i].Weight
		if roll < 0 {
			return &m.cfg.Kinds[i]
		}
	}
	return &m.cfg.Kinds[len(m.cfg.Kinds)-1]
}

// between returns a uniform integer in [lo, hi].
func (m *Manager) between(lo, hi int) int {
	return lo + m.rng.IntN(hi-lo+1)
}
