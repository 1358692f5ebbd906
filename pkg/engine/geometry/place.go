package geometry

import (
	"tileforge/pkg/engine/rng"
)

// DefaultAttempts is the standard attempt budget for bounded-retry placement.
const DefaultAttempts = 20

// TryPlace draws up to attempts random coordinates inside a w×h grid and
// returns the first one the excluded predicate does not reject.
// It is best-effort: ok is false once the budget is exhausted, and callers
// are expected to simply skip the feature they were placing.
func TryPlace(r *rng.Stream, w, h int, excluded func(x, y int) bool, attempts int) (Point, bool) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for i := 0; i < attempts; i++ {
		x := r.IntN(w)
		y := r.IntN(h)
		if !excluded(x, y) {
			return Point{X: x, Y: y}, true
		}
	}
	return Point{}, false
}

// TryPlaceIn is TryPlace restricted to the cells of a rectangle.
func TryPlaceIn(r *rng.Stream, area Rect, excluded func(x, y int) bool, attempts int) (Point, bool) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	for i := 0; i < attempts; i++ {
		x := area.X + r.IntN(area.W)
		y := area.Y + r.IntN(area.H)
		if !excluded(x, y) {
			return Point{X: x, Y: y}, true
		}
	}
	return Point{}, false
}
