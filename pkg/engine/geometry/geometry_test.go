package geometry

import (
	"testing"

	"tileforge/pkg/engine/rng"
)

func TestTryPlaceReturnsValidCell(t *testing.T) {
	r := rng.New(1)
	pt, ok := TryPlace(r, 10, 8, func(x, y int) bool { return false }, DefaultAttempts)
	if !ok {
		t.Fatal("TryPlace with permissive predicate failed")
	}
	if pt.X < 0 || pt.X >= 10 || pt.Y < 0 || pt.Y >= 8 {
		t.Errorf("placed out of bounds: %+v", pt)
	}
}

func TestTryPlaceExhaustsAfterAttemptBudget(t *testing.T) {
	r := rng.New(1)
	calls := 0
	_, ok := TryPlace(r, 10, 10, func(x, y int) bool {
		calls++
		return true
	}, DefaultAttempts)
	if ok {
		t.Error("TryPlace succeeded against an always-true exclusion")
	}
	if calls != DefaultAttempts {
		t.Errorf("predicate called %d times, want exactly %d", calls, DefaultAttempts)
	}
}

func TestTryPlaceInStaysInsideRect(t *testing.T) {
	r := rng.New(3)
	area := Rect{X: 4, Y: 5, W: 3, H: 2}
	for i := 0; i < 50; i++ {
		pt, ok := TryPlaceIn(r, area, func(x, y int) bool { return false }, 1)
		if !ok {
			t.Fatal("TryPlaceIn failed with permissive predicate")
		}
		if !area.Contains(pt.X, pt.Y) {
			t.Fatalf("point %+v outside rect %+v", pt, area)
		}
	}
}

func TestRasterizeLineEndpoints(t *testing.T) {
	cells := RasterizeLine(Point{X: 2, Y: 3}, Point{X: 9, Y: 3}, 1)
	if len(cells) != 8 {
		t.Errorf("horizontal 8-cell line has %d cells", len(cells))
	}
	hasStart, hasEnd := false, false
	for _, c := range cells {
		if c == (Point{X: 2, Y: 3}) {
			hasStart = true
		}
		if c == (Point{X: 9, Y: 3}) {
			hasEnd = true
		}
		if c.Y != 3 {
			t.Errorf("horizontal line left its row: %+v", c)
		}
	}
	if !hasStart || !hasEnd {
		t.Error("line missing an endpoint")
	}
}

func TestRasterizeLineThickens(t *testing.T) {
	cells := RasterizeLine(Point{X: 0, Y: 5}, Point{X: 6, Y: 5}, 3)
	rows := map[int]bool{}
	for _, c := range cells {
		rows[c.Y] = true
	}
	for _, want := range []int{4, 5, 6} {
		if !rows[want] {
			t.Errorf("width-3 stroke missing row %d", want)
		}
	}
	if len(rows) != 3 {
		t.Errorf("width-3 stroke covers %d rows, want 3", len(rows))
	}
}

func TestRasterizeLineDiagonalConnectsEnds(t *testing.T) {
	a, b := Point{X: 1, Y: 1}, Point{X: 7, Y: 4}
	cells := RasterizeLine(a, b, 1)
	if cells[0] != a || cells[len(cells)-1] != b {
		t.Errorf("diagonal line endpoints wrong: first=%+v last=%+v", cells[0], cells[len(cells)-1])
	}
}

func TestFloodRegionsSplitsComponents(t *testing.T) {
	// Two open blocks separated by a closed column.
	open := func(x, y int) bool { return x != 3 }
	regions := FloodRegions(7, 4, open)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if len(regions[0]) != 12 || len(regions[1]) != 12 {
		t.Errorf("region sizes %d/%d, want 12/12", len(regions[0]), len(regions[1]))
	}
}

func TestFloodFromUnreachable(t *testing.T) {
	open := func(x, y int) bool { return x != 3 }
	reach := FloodFrom(7, 4, Point{X: 0, Y: 0}, open)
	if reach.Size() != 12 {
		t.Errorf("reachable set size %d, want 12", reach.Size())
	}
	if reach.Has(Point{X: 5, Y: 1}) {
		t.Error("flood crossed the closed column")
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	if !a.Overlaps(Rect{X: 3, Y: 3, W: 2, H: 2}) {
		t.Error("touching-corner rects should overlap")
	}
	if a.Overlaps(Rect{X: 4, Y: 0, W: 2, H: 2}) {
		t.Error("adjacent rects should not overlap")
	}
}
