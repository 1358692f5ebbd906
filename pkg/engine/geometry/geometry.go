// Package geometry holds the grid primitives shared by every biome
// synthesizer: rectangles, bounded-retry placement, line rasterization and
// flood-fill region extraction. Everything here is pure; randomness comes in
// through an explicit rng.Stream.
package geometry

// Point is a tile coordinate.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle in tile coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}
