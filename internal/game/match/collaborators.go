package match

import "github.com/udisondev/skirmish/internal/model"

// Terrain answers movement and overlay queries about the map.
type Terrain interface {
	Contains(p model.Point) bool
	// Highlight recomputes the reachable set from origin within rng steps.
	Highlight(origin model.Point, rng int)
	IsHighlighted(p model.Point) bool
	Overlay(p model.Point) model.Overlay
	RefreshVisibility(team model.Team, units []*model.Unit)
	ClearBarrier(team model.Team)
}

// Pickups is the potion spawner.
type Pickups interface {
	PickupAt(p model.Point) (string, bool)
	// Consume applies the pickup at p to u and removes it.
	Consume(u *model.Unit, p model.Point) bool
	Advance(turn int, occupied []model.Point)
}
