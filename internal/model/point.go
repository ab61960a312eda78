package model

import (
	"fmt"
	"math"
)

// Point — клетка сетки. Value type.
type Point struct {
	X int
	Y int
}

// Pt is a shorthand constructor.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Add возвращает точку, сдвинутую на (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan возвращает манхэттенское расстояние до other.
func (p Point) Manhattan(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Euclidean returns the straight-line distance to other.
func (p Point) Euclidean(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
