package geometry

// RasterizeLine returns the cells forming a straight interpolated path from a
// to b. For width > 1 the stroke is thickened symmetrically around the
// centerline along the minor axis. Cells may repeat for near-degenerate
// lines; callers treat the result as a set.
func RasterizeLine(a, b Point, width int) []Point {
	if width < 1 {
		width = 1
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}

	// Thicken along the minor axis so a horizontal corridor grows vertically
	// and vice versa.
	horizontal := absInt(dx) >= absInt(dy)
	lo := -(width - 1) / 2
	hi := width / 2

	if steps == 0 {
		var cells []Point
		for off := lo; off <= hi; off++ {
			if horizontal {
				cells = append(cells, Point{X: a.X, Y: a.Y + off})
			} else {
				cells = append(cells, Point{X: a.X + off, Y: a.Y})
			}
		}
		return cells
	}

	cells := make([]Point, 0, (steps+1)*width)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := a.X + roundToInt(float64(dx)*t)
		y := a.Y + roundToInt(float64(dy)*t)
		for off := lo; off <= hi; off++ {
			if horizontal {
				cells = append(cells, Point{X: x, Y: y + off})
			} else {
				cells = append(cells, Point{X: x + off, Y: y})
			}
		}
	}
	return cells
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
