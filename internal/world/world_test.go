package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skirmish/internal/model"
)

func testLayout() Layout {
	return Layout{
		Size:   9,
		Lakes:  []model.Point{model.Pt(4, 4)},
		Hills:  []model.Point{model.Pt(2, 1), model.Pt(4, 4)},
		Bushes: []model.Point{model.Pt(0, 0), model.Pt(8, 8)},
		Barriers: map[model.Team][]model.Point{
			model.TeamBlue: {model.Pt(0, 6), model.Pt(1, 6)},
			model.TeamRed:  {model.Pt(6, 0)},
		},
		VisionBonus: DefaultVisionBonus,
	}
}

func mustWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(testLayout())
	require.NoError(t, err)
	return w
}

func TestNew_Terrain(t *testing.T) {
	w := mustWorld(t)

	assert.Equal(t, 9, w.Size())
	assert.Equal(t, TileGrass, w.Tile(model.Pt(1, 1)))
	assert.Equal(t, TileRock, w.Tile(model.Pt(2, 1)))
	assert.Equal(t, TileRock, w.Tile(model.Pt(4, 4)), "hills paint over lakes")
	assert.Equal(t, TileRock, w.Tile(model.Pt(-1, 0)), "off-grid reads as rock")

	assert.Equal(t, model.OverlayBush, w.Overlay(model.Pt(0, 0)))
	assert.Equal(t, model.OverlayBarrier, w.Overlay(model.Pt(0, 6)))
	assert.Equal(t, model.OverlayNone, w.Overlay(model.Pt(3, 3)))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Layout{Size: 0})
	assert.ErrorIs(t, err, ErrBadSize)

	l := testLayout()
	l.Lakes = append(l.Lakes, model.Pt(9, 0))
	_, err = New(l)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	l = testLayout()
	l.Barriers[model.TeamRed] = []model.Point{model.Pt(0, -1)}
	_, err = New(l)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestTile_Passable(t *testing.T) {
	assert.True(t, TileGrass.Passable())
	assert.True(t, TileWater.Passable())
	assert.False(t, TileRock.Passable())
	assert.Equal(t, "water", TileWater.String())
}

func TestHighlight_Diamond(t *testing.T) {
	w := mustWorld(t)
	w.Highlight(model.Pt(2, 2), 1)

	assert.True(t, w.IsHighlighted(model.Pt(2, 2)))
	assert.True(t, w.IsHighlighted(model.Pt(1, 2)))
	assert.True(t, w.IsHighlighted(model.Pt(2, 3)))
	assert.False(t, w.IsHighlighted(model.Pt(2, 1)), "rock")
	assert.False(t, w.IsHighlighted(model.Pt(3, 3)), "diagonal is distance 2")
	assert.Len(t, w.Highlighted(), 4)
}

func TestHighlight_ClearsPrevious(t *testing.T) {
	w := mustWorld(t)
	w.Highlight(model.Pt(0, 0), 2)
	require.True(t, w.IsHighlighted(model.Pt(1, 1)))

	w.Highlight(model.Pt(8, 8), 0)
	assert.False(t, w.IsHighlighted(model.Pt(1, 1)))
	assert.Equal(t, []model.Point{model.Pt(8, 8)}, w.Highlighted())
}

func TestHighlight_SortedRowMajor(t *testing.T) {
	w := mustWorld(t)
	w.Highlight(model.Pt(7, 7), 1)

	assert.Equal(t, []model.Point{
		model.Pt(7, 6),
		model.Pt(6, 7), model.Pt(7, 7), model.Pt(8, 7),
		model.Pt(7, 8),
	}, w.Highlighted())
}

func TestHighlight_OffGrid(t *testing.T) {
	w := mustWorld(t)
	w.Highlight(model.Pt(20, 20), 3)
	assert.Empty(t, w.Highlighted())
}

func TestBarrier_BlocksUntilCleared(t *testing.T) {
	w := mustWorld(t)
	w.Highlight(model.Pt(0, 5), 1)
	assert.False(t, w.IsHighlighted(model.Pt(0, 6)))
	assert.False(t, w.Walkable(model.Pt(0, 6)))

	w.ClearBarrier(model.TeamBlue)
	assert.Equal(t, model.OverlayNone, w.Overlay(model.Pt(0, 6)))
	assert.Empty(t, w.BarrierTiles(model.TeamBlue))
	assert.Equal(t, []model.Point{model.Pt(6, 0)}, w.BarrierTiles(model.TeamRed))

	w.Highlight(model.Pt(0, 5), 1)
	assert.True(t, w.IsHighlighted(model.Pt(0, 6)))

	w.ClearBarrier(model.TeamBlue)
	assert.Equal(t, model.OverlayBarrier, w.Overlay(model.Pt(6, 0)))
}

func TestOpenTiles(t *testing.T) {
	w, err := New(Layout{
		Size:     2,
		Lakes:    []model.Point{model.Pt(1, 0)},
		Bushes:   []model.Point{model.Pt(0, 1)},
		Barriers: map[model.Team][]model.Point{model.TeamRed: {model.Pt(1, 1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Point{model.Pt(0, 0)}, w.OpenTiles())

	w.ClearBarrier(model.TeamRed)
	assert.Equal(t, []model.Point{model.Pt(0, 0), model.Pt(1, 1)}, w.OpenTiles())
}
