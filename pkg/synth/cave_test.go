package synth

import (
	"testing"

	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/level"
)

// TestCaveRegionClassification checks the size thresholds on a synthetic
// 20×20 grid holding three disjoint open components: a 6×10 block (60 cells,
// chamber), a 5×4 block (20 cells, tunnel), and a 3-cell strip (noise).
func TestCaveRegionClassification(t *testing.T) {
	open := func(x, y int) bool {
		if x >= 0 && x < 10 && y >= 0 && y < 6 {
			return true
		}
		if x >= 12 && x < 17 && y >= 8 && y < 12 {
			return true
		}
		if x >= 2 && x < 5 && y == 15 {
			return true
		}
		return false
	}

	regions := geometry.FloodRegions(20, 20, open)
	if len(regions) != 3 {
		t.Fatalf("got %d regions, want 3", len(regions))
	}

	chambers, tunnels, noise := classifyCaveRegions(regions)
	if len(chambers) != 1 || len(chambers[0]) != 60 {
		t.Errorf("chambers: got %d regions, want one of 60 cells", len(chambers))
	}
	if len(tunnels) != 1 || len(tunnels[0]) != 20 {
		t.Errorf("tunnels: got %d regions, want one of 20 cells", len(tunnels))
	}
	if len(noise) != 1 || len(noise[0]) != 3 {
		t.Errorf("noise: got %d regions, want one of 3 cells", len(noise))
	}
}

// Boundary cases around the thresholds: 51 is a chamber, 50 a tunnel, 6 a
// tunnel, 5 noise.
func TestCaveClassificationThresholds(t *testing.T) {
	mk := func(n int) []geometry.Point {
		cells := make([]geometry.Point, n)
		for i := range cells {
			cells[i] = geometry.Point{X: i, Y: 0}
		}
		return cells
	}
	chambers, tunnels, noise := classifyCaveRegions([][]geometry.Point{mk(51), mk(50), mk(6), mk(5)})
	if len(chambers) != 1 {
		t.Errorf("chambers %d, want 1", len(chambers))
	}
	if len(tunnels) != 2 {
		t.Errorf("tunnels %d, want 2", len(tunnels))
	}
	if len(noise) != 1 {
		t.Errorf("noise %d, want 1", len(noise))
	}
}

func TestCaveAutomatonKeepsBorderSolid(t *testing.T) {
	cfg := caveTestConfig(13)
	lvl, _ := mustGenerate(t, cfg)
	w, h := lvl.Width(), lvl.Height()
	for x := 0; x < w; x++ {
		if lvl.WalkableAt(x, 0) || lvl.WalkableAt(x, h-1) {
			t.Fatalf("open cell on horizontal border at x=%d", x)
		}
	}
	for y := 0; y < h; y++ {
		if lvl.WalkableAt(0, y) || lvl.WalkableAt(w-1, y) {
			t.Fatalf("open cell on vertical border at y=%d", y)
		}
	}
}

func TestCaveDiscardsNoiseComponents(t *testing.T) {
	cfg := caveTestConfig(29)
	lvl, _ := mustGenerate(t, cfg)
	open := func(x, y int) bool { return lvl.Layers.Terrain.At(x, y) != "" }
	for _, region := range geometry.FloodRegions(lvl.Width(), lvl.Height(), open) {
		if len(region) <= tunnelThreshold {
			t.Errorf("noise component of %d cells survived at %+v", len(region), region[0])
		}
	}
}

func caveTestConfig(seed int64) level.Config {
	return level.Config{Width: 40, Height: 36, TileSize: 32, BiomeType: level.BiomeCave, Seed: seed}
}
