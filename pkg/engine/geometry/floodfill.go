package geometry

import (
	"github.com/zyedidia/generic/mapset"
)

// FloodRegions labels the 4-connected components of a w×h predicate grid and
// returns one cell slice per component. Scanning is row-major so component
// order (and the order of cells within a component) is deterministic.
func FloodRegions(w, h int, open func(x, y int) bool) [][]Point {
	visited := mapset.New[Point]()
	var regions [][]Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := Point{X: x, Y: y}
			if visited.Has(start) || !open(x, y) {
				continue
			}
			regions = append(regions, collectComponent(w, h, start, open, &visited))
		}
	}
	return regions
}

// FloodFrom returns the set of open cells 4-reachable from start, including
// start itself when it is open.
func FloodFrom(w, h int, start Point, open func(x, y int) bool) *mapset.Set[Point] {
	visited := mapset.New[Point]()
	if start.X < 0 || start.X >= w || start.Y < 0 || start.Y >= h || !open(start.X, start.Y) {
		return &visited
	}
	collectComponent(w, h, start, open, &visited)
	return &visited
}

func collectComponent(w, h int, start Point, open func(x, y int) bool, visited *mapset.Set[Point]) []Point {
	var cells []Point
	queue := []Point{start}
	visited.Put(start)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		cells = append(cells, c)

		neighbors := [4]Point{
			{X: c.X, Y: c.Y - 1},
			{X: c.X + 1, Y: c.Y},
			{X: c.X, Y: c.Y + 1},
			{X: c.X - 1, Y: c.Y},
		}
		for _, n := range neighbors {
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
				continue
			}
			if visited.Has(n) || !open(n.X, n.Y) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return cells
}
