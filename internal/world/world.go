package world

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/skirmish/internal/model"
)

// World — поле боя: местность, оверлеи (кусты и барьеры), подсветка
// досягаемых клеток и туман войны. Не потокобезопасен: им владеет матч.
type World struct {
	grid

	overlays map[model.Point]model.Overlay
	barriers map[model.Team][]model.Point

	highlighted map[model.Point]struct{}
	visible     map[model.Point]struct{}
	visionBonus int
}

// New builds a world from layout. Every point must lie on the grid.
// Hills are painted after lakes, barriers after bushes.
func New(l Layout) (*World, error) {
	g, err := newGrid(l.Size)
	if err != nil {
		return nil, err
	}
	if err := g.paint(l.Lakes, TileWater); err != nil {
		return nil, fmt.Errorf("lakes: %w", err)
	}
	if err := g.paint(l.Hills, TileRock); err != nil {
		return nil, fmt.Errorf("hills: %w", err)
	}

	w := &World{
		grid:        g,
		overlays:    make(map[model.Point]model.Overlay),
		barriers:    make(map[model.Team][]model.Point),
		highlighted: make(map[model.Point]struct{}),
		visible:     make(map[model.Point]struct{}),
		visionBonus: l.VisionBonus,
	}
	if w.visionBonus < 0 {
		w.visionBonus = 0
	}

	for _, p := range l.Bushes {
		if !g.Contains(p) {
			return nil, fmt.Errorf("bushes: %w: %s", ErrOutOfBounds, p)
		}
		w.overlays[p] = model.OverlayBush
	}
	for team, points := range l.Barriers {
		for _, p := range points {
			if !g.Contains(p) {
				return nil, fmt.Errorf("%s barrier: %w: %s", team, ErrOutOfBounds, p)
			}
			w.overlays[p] = model.OverlayBarrier
		}
		w.barriers[team] = slices.Clone(points)
	}
	return w, nil
}

// Overlay returns the overlay on p.
func (w *World) Overlay(p model.Point) model.Overlay {
	return w.overlays[p]
}

// Walkable reports whether a unit may step onto p: the tile exists, is not
// rock and carries no standing barrier.
func (w *World) Walkable(p model.Point) bool {
	return w.Contains(p) && w.Tile(p).Passable() && w.overlays[p] != model.OverlayBarrier
}

// Highlight marks every walkable tile within Manhattan distance rng of origin.
// The origin itself is always marked. Previous marks are cleared.
func (w *World) Highlight(origin model.Point, rng int) {
	clear(w.highlighted)
	if !w.Contains(origin) {
		return
	}
	w.highlighted[origin] = struct{}{}
	for dx := -rng; dx <= rng; dx++ {
		span := rng - abs(dx)
		for dy := -span; dy <= span; dy++ {
			p := model.Pt(origin.X+dx, origin.Y+dy)
			if w.Walkable(p) {
				w.highlighted[p] = struct{}{}
			}
		}
	}
}

// IsHighlighted reports whether p was marked by the last Highlight call.
func (w *World) IsHighlighted(p model.Point) bool {
	_, ok := w.highlighted[p]
	return ok
}

// Highlighted returns the marked tiles in row-major order.
func (w *World) Highlighted() []model.Point {
	out := make([]model.Point, 0, len(w.highlighted))
	for p := range w.highlighted {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePoints)
	return out
}

// ClearBarrier removes the barrier tiles guarding team's base.
// Subsequent calls are no-ops.
func (w *World) ClearBarrier(team model.Team) {
	points, ok := w.barriers[team]
	if !ok {
		return
	}
	for _, p := range points {
		if w.overlays[p] == model.OverlayBarrier {
			delete(w.overlays, p)
		}
	}
	delete(w.barriers, team)
	slog.Debug("barrier tiles removed", "team", team, "tiles", len(points))
}

// BarrierTiles returns the standing barrier tiles of team.
func (w *World) BarrierTiles(team model.Team) []model.Point {
	return slices.Clone(w.barriers[team])
}

func comparePoints(a, b model.Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// OpenTiles returns grass tiles without an overlay in row-major order.
// Pickups spawn only there.
func (w *World) OpenTiles() []model.Point {
	var out []model.Point
	for y := range w.size {
		for x := range w.size {
			p := model.Pt(x, y)
			if w.Tile(p) == TileGrass && w.overlays[p] == model.OverlayNone {
				out = append(out, p)
			}
		}
	}
	return out
}
