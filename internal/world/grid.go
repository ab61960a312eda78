package world

import (
	"errors"
	"fmt"

	"github.com/udisondev/skirmish/internal/model"
)

// Grid constants
const (
	// DefaultSize — сторона квадратного поля в клетках.
	DefaultSize = 21

	// DefaultVisionBonus — на сколько клеток обзор юнита превышает его дальность хода.
	DefaultVisionBonus = 2
)

var (
	ErrBadSize     = errors.New("world: grid size must be positive")
	ErrOutOfBounds = errors.New("world: point outside the grid")
)

// Tile — тип местности клетки.
type Tile int8

const (
	TileGrass Tile = iota
	TileWater
	TileRock
)

func (t Tile) String() string {
	switch t {
	case TileWater:
		return "water"
	case TileRock:
		return "rock"
	default:
		return "grass"
	}
}

// Passable reports whether units may stand on the tile. Water is shallow;
// only rock blocks movement.
func (t Tile) Passable() bool { return t != TileRock }

// Layout describes a battlefield: its size, terrain and overlays.
type Layout struct {
	Size        int
	Lakes       []model.Point
	Hills       []model.Point
	Bushes      []model.Point
	Barriers    map[model.Team][]model.Point
	VisionBonus int
}

// grid хранит тип местности в плоском массиве, индекс y*size+x.
type grid struct {
	size  int
	tiles []Tile
}

func newGrid(size int) (grid, error) {
	if size <= 0 {
		return grid{}, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	return grid{size: size, tiles: make([]Tile, size*size)}, nil
}

// Size returns the side length of the grid.
func (g *grid) Size() int { return g.size }

// Contains reports whether p lies on the grid.
func (g *grid) Contains(p model.Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// Tile returns the terrain at p. Points outside the grid read as rock.
func (g *grid) Tile(p model.Point) Tile {
	if !g.Contains(p) {
		return TileRock
	}
	return g.tiles[p.Y*g.size+p.X]
}

func (g *grid) paint(points []model.Point, t Tile) error {
	for _, p := range points {
		if !g.Contains(p) {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
		}
		g.tiles[p.Y*g.size+p.X] = t
	}
	return nil
}
