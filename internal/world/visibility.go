package world

import "github.com/udisondev/skirmish/internal/model"

// RefreshVisibility recomputes the fog of war for team. A tile is visible
// when it lies within MoveRange+visionBonus (Manhattan) of a living unit
// of the team.
func (w *World) RefreshVisibility(team model.Team, units []*model.Unit) {
	clear(w.visible)
	for _, u := range units {
		if u == nil || !u.Alive() || u.Team != team {
			continue
		}
		w.reveal(u.Pos, u.MoveRange+w.visionBonus)
	}
}

func (w *World) reveal(center model.Point, rng int) {
	for dx := -rng; dx <= rng; dx++ {
		span := rng - abs(dx)
		for dy := -span; dy <= span; dy++ {
			p := model.Pt(center.X+dx, center.Y+dy)
			if w.Contains(p) {
				w.visible[p] = struct{}{}
			}
		}
	}
}

// IsVisible reports whether p was revealed by the last RefreshVisibility.
func (w *World) IsVisible(p model.Point) bool {
	_, ok := w.visible[p]
	return ok
}

// VisibleCount returns the number of revealed tiles.
func (w *World) VisibleCount() int { return len(w.visible) }
