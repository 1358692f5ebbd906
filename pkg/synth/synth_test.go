package synth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

func rngFor(cfg level.Config) *rng.Stream {
	return rng.New(cfg.Seed)
}

func mustGenerate(t *testing.T, cfg level.Config) (*level.Level, *Report) {
	t.Helper()
	lvl, report, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate(%+v): %v", cfg, err)
	}
	return lvl, report
}

func allBiomeConfigs(seed int64) []level.Config {
	var cfgs []level.Config
	for _, biome := range []level.BiomeType{
		level.BiomeDungeon, level.BiomeCave, level.BiomeForest, level.BiomeTown, level.BiomeCastle,
	} {
		cfgs = append(cfgs, level.Config{
			Width: 32, Height: 28, TileSize: 32, BiomeType: biome, Seed: seed,
		})
	}
	return cfgs
}

func TestGenerateDeterministic(t *testing.T) {
	for _, cfg := range allBiomeConfigs(1234) {
		a, _ := mustGenerate(t, cfg)
		b, _ := mustGenerate(t, cfg)

		layersA, _ := json.Marshal(a.Layers)
		layersB, _ := json.Marshal(b.Layers)
		if string(layersA) != string(layersB) {
			t.Errorf("%s: layers differ between identical runs", cfg.BiomeType)
		}
		entitiesA, _ := json.Marshal(a.Entities)
		entitiesB, _ := json.Marshal(b.Entities)
		if string(entitiesA) != string(entitiesB) {
			t.Errorf("%s: entities differ between identical runs", cfg.BiomeType)
		}
		if a.ID != b.ID || a.Name != b.Name {
			t.Errorf("%s: identity fields differ: %s/%s vs %s/%s",
				cfg.BiomeType, a.ID, a.Name, b.ID, b.Name)
		}
	}
}

func TestNoWalkableBlockingOverlap(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		for _, cfg := range allBiomeConfigs(seed) {
			lvl, _ := mustGenerate(t, cfg)
			for y := 0; y < lvl.Height(); y++ {
				for x := 0; x < lvl.Width(); x++ {
					if level.Walkable(lvl.Layers.Terrain.At(x, y)) &&
						level.Blocking(lvl.Layers.Structures.At(x, y)) {
						t.Fatalf("%s seed %d: cell (%d,%d) is both walkable and blocked",
							cfg.BiomeType, seed, x, y)
					}
				}
			}
		}
	}
}

func TestWallInferenceInvariant(t *testing.T) {
	for _, biome := range []level.BiomeType{level.BiomeDungeon, level.BiomeCave} {
		for _, seed := range []int64{3, 11, 42} {
			cfg := level.Config{Width: 36, Height: 30, TileSize: 32, BiomeType: biome, Seed: seed}
			lvl, _ := mustGenerate(t, cfg)
			for y := 0; y < lvl.Height(); y++ {
				for x := 0; x < lvl.Width(); x++ {
					if !level.Walkable(lvl.Layers.Terrain.At(x, y)) {
						continue
					}
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dx == 0 && dy == 0 {
								continue
							}
							nx, ny := x+dx, y+dy
							if !lvl.InBounds(nx, ny) {
								t.Fatalf("%s seed %d: walkable cell (%d,%d) touches the grid edge",
									biome, seed, x, y)
							}
							if lvl.Layers.Terrain.At(nx, ny) == level.Unassigned &&
								!level.Blocking(lvl.Layers.Structures.At(nx, ny)) {
								t.Fatalf("%s seed %d: unassigned neighbor (%d,%d) of floor (%d,%d) has no wall",
									biome, seed, nx, ny, x, y)
							}
						}
					}
				}
			}
		}
	}
}

func TestEntityPlacementValidity(t *testing.T) {
	for _, seed := range []int64{2, 9, 77} {
		for _, cfg := range allBiomeConfigs(seed) {
			lvl, _ := mustGenerate(t, cfg)
			for _, e := range lvl.Entities {
				if !lvl.InBounds(e.Position.X, e.Position.Y) {
					t.Fatalf("%s seed %d: entity %s at (%d,%d) out of bounds",
						cfg.BiomeType, seed, e.ID, e.Position.X, e.Position.Y)
				}
				if level.Blocking(lvl.Layers.Structures.At(e.Position.X, e.Position.Y)) {
					t.Fatalf("%s seed %d: entity %s placed inside a blocking structure",
						cfg.BiomeType, seed, e.ID)
				}
			}
		}
	}
}

func TestDungeonScenario(t *testing.T) {
	cfg := level.Config{Width: 32, Height: 24, TileSize: 32, BiomeType: level.BiomeDungeon, Seed: 42}
	lvl, report := mustGenerate(t, cfg)

	want := level.Dimensions{Width: 32, Height: 24, TileSize: 32}
	if lvl.Dimensions != want {
		t.Errorf("dimensions %+v, want %+v", lvl.Dimensions, want)
	}
	if n := lvl.CountWalkable(); n < 10 {
		t.Errorf("walkable tiles %d, want >= 10", n)
	}
	if !report.IsConnected {
		t.Error("dungeon should report isConnected")
	}
	if !report.HasStartPoint || !report.HasEndPoint {
		t.Errorf("missing start/end markers: %+v", report)
	}
}

func TestDungeonRoomCountRange(t *testing.T) {
	for _, seed := range []int64{42, 5, 19} {
		cfg := level.Config{Width: 32, Height: 24, TileSize: 32, BiomeType: level.BiomeDungeon, Seed: seed}.Normalize()
		lvl, err := level.NewScaffold(cfg, rngFor(cfg))
		if err != nil {
			t.Fatalf("scaffold: %v", err)
		}
		s := &Scene{Level: lvl, Cfg: cfg, RNG: rngFor(cfg)}
		d := &Dungeon{}
		d.Layout(s)
		if n := len(d.rooms); n < dungeonMinRooms || n > dungeonMaxRooms {
			t.Errorf("seed %d: %d rooms, want %d-%d", seed, n, dungeonMinRooms, dungeonMaxRooms)
		}
	}
}

func TestCaveScenarioTagVocabulary(t *testing.T) {
	cfg := level.Config{Width: 40, Height: 40, BiomeType: level.BiomeCave, Seed: 7}
	lvl, _ := mustGenerate(t, cfg)

	terrainAllowed := map[level.Tile]bool{
		level.TileCaveFloor: true,
		level.TileCaveWater: true,
	}
	structuresAllowed := map[level.Tile]bool{
		level.TileCaveWall:       true,
		level.TileStalactite:     true,
		level.TileStalagmite:     true,
		level.TileCavePillar:     true,
		level.TileFlowstone:      true,
		level.TileCrystalCluster: true,
		level.TileCaveMushrooms:  true,
	}
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			if tag := lvl.Layers.Terrain.At(x, y); tag != level.Unassigned && !terrainAllowed[tag] {
				t.Fatalf("terrain (%d,%d) holds foreign tag %q", x, y, tag)
			}
			if tag := lvl.Layers.Structures.At(x, y); tag != level.Unassigned && !structuresAllowed[tag] {
				t.Fatalf("structures (%d,%d) holds foreign tag %q", x, y, tag)
			}
		}
	}
}

func TestForestLayerTagScoping(t *testing.T) {
	cfg := level.Config{Width: 32, Height: 28, TileSize: 32, BiomeType: level.BiomeForest, Seed: 17}
	lvl, _ := mustGenerate(t, cfg)
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			if tag := lvl.Layers.Lighting.At(x, y); tag != level.Unassigned && tag != level.TileFireflies {
				t.Fatalf("lighting (%d,%d) holds foreign tag %q", x, y, tag)
			}
			if tag := lvl.Layers.Effects.At(x, y); tag != level.Unassigned && tag != level.TileFallingLeaves {
				t.Fatalf("effects (%d,%d) holds foreign tag %q", x, y, tag)
			}
		}
	}
}

func TestUnknownBiomeFallsBackToDungeon(t *testing.T) {
	cfg := level.Config{Width: 24, Height: 20, TileSize: 32, BiomeType: "swamp", Seed: 8}
	lvl, _, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unknown biome should not error: %v", err)
	}
	if lvl.BiomeType != level.BiomeDungeon {
		t.Errorf("biome %q, want dungeon fallback", lvl.BiomeType)
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	_, _, err := Generate(context.Background(), level.Config{Width: 0, Height: 10})
	if err == nil {
		t.Fatal("expected ConfigError for zero width")
	}
}

func TestCancelledContextReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := level.Config{Width: 24, Height: 20, TileSize: 32, BiomeType: level.BiomeDungeon, Seed: 3}
	lvl, report, err := Generate(ctx, cfg)
	if err == nil {
		t.Fatal("cancelled context should surface an error")
	}
	if lvl == nil {
		t.Error("partial level should still be returned")
	}
	if report != nil {
		t.Error("post-processing should be skipped on cancellation")
	}
}

func TestGenerateWithTimeoutCompletes(t *testing.T) {
	cfg := level.Config{Width: 24, Height: 20, TileSize: 32, BiomeType: level.BiomeForest, Seed: 3}
	lvl, report, err := GenerateWithTimeout(cfg, time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithTimeout: %v", err)
	}
	if lvl == nil || report == nil {
		t.Fatal("expected complete result inside generous timeout")
	}
}

func TestDifficultyBalancingClampsEnemies(t *testing.T) {
	cfg := level.Config{
		Width: 32, Height: 28, TileSize: 32,
		BiomeType: level.BiomeCave, Difficulty: "easy", Seed: 21,
	}
	lvl, _ := mustGenerate(t, cfg)
	for _, e := range lvl.Entities {
		if e.Kind != level.KindEnemy {
			continue
		}
		if e.DifficultyLevel < 1 || e.DifficultyLevel > 2 {
			t.Errorf("easy enemy %s has level %d, want 1-2", e.ID, e.DifficultyLevel)
		}
	}
}
