package synth

import (
	"testing"

	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

// handBuiltScene scaffolds an empty dungeon level so tests can paint walkable
// cells directly and run the post-processor on a known topology.
func handBuiltScene(t *testing.T) *Scene {
	t.Helper()
	cfg := level.Config{Width: 16, Height: 12, TileSize: 32, BiomeType: level.BiomeDungeon, Seed: 1}.Normalize()
	lvl, err := level.NewScaffold(cfg, rng.New(cfg.Seed))
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	return &Scene{Level: lvl, Cfg: cfg, RNG: rng.New(cfg.Seed)}
}

func carveRow(s *Scene, y, x0, x1 int) {
	for x := x0; x <= x1; x++ {
		s.Level.Layers.Terrain.Set(x, y, level.TileDungeonFloor)
	}
}

func TestPostProcessReachabilityFromSpawn(t *testing.T) {
	// One component holding every walkable cell reports connected.
	s := handBuiltScene(t)
	for y := 2; y <= 5; y++ {
		carveRow(s, y, 2, 5)
	}
	if report := postProcess(s); !report.IsConnected {
		t.Error("single 16-cell component should report connected")
	}

	// Three separated rows of 5+5+4 cells: 14 walkable in total, but the
	// spawn component covers only 5, under the half-coverage bar.
	s = handBuiltScene(t)
	carveRow(s, 2, 2, 6)
	carveRow(s, 5, 2, 6)
	carveRow(s, 8, 2, 5)
	if report := postProcess(s); report.IsConnected {
		t.Error("fragmented level should not report connected")
	}
}

func TestPostProcessSingleCellComponentKeepsSpawn(t *testing.T) {
	s := handBuiltScene(t)
	s.Level.Layers.Terrain.Set(5, 5, level.TileDungeonFloor)

	report := postProcess(s)
	if !report.HasStartPoint {
		t.Fatal("spawn should still be placed on a one-cell level")
	}
	if report.HasEndPoint {
		t.Error("exit should be omitted when only the spawn cell is walkable")
	}
	if got := s.Level.Layers.Interactive.At(5, 5); got != level.TileSpawnPoint {
		t.Errorf("spawn marker was overwritten: %q", got)
	}
}

func TestPostProcessExitNeverOverwritesChest(t *testing.T) {
	s := handBuiltScene(t)
	carveRow(s, 3, 2, 8)
	s.Level.Layers.Interactive.Set(8, 3, level.TileTreasureChest)

	report := postProcess(s)
	if got := s.Level.Layers.Interactive.At(8, 3); got != level.TileTreasureChest {
		t.Fatalf("chest at the corridor end was overwritten: %q", got)
	}
	if got := s.Level.Layers.Interactive.At(2, 3); got != level.TileSpawnPoint {
		t.Fatalf("spawn expected at row start, got %q", got)
	}
	if got := s.Level.Layers.Interactive.At(7, 3); got != level.TileExitPoint {
		t.Errorf("exit should land on the furthest free cell, got %q", got)
	}
	if !report.HasTreasures {
		t.Error("surviving chest should be reported")
	}
}
