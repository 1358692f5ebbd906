package synth

import (
	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/level"
)

// connectivityFloor is the minimum walkable-tile count for a level to pass
// the cheap connectivity pre-filter.
const connectivityFloor = 10

// postProcess runs after every synthesizer: it places the spawn and exit
// markers, measures real reachability, sprinkles ambience on the effects
// layer, clamps enemy difficulty into the configured band, and builds the
// advisory report. It never fails.
func postProcess(s *Scene) *Report {
	lvl := s.Level
	report := &Report{}

	total := lvl.CountWalkable()
	spawn := placeSpawn(s)
	report.HasStartPoint = spawn != nil
	if spawn != nil {
		if exit := placeExit(s, *spawn); exit != nil {
			report.HasEndPoint = true
		}
		// The count floor is a fast pre-filter; the real check is how much
		// of the walkable area is reachable from the spawn tile.
		reach := geometry.FloodFrom(s.W(), s.H(), *spawn, lvl.WalkableAt)
		report.IsConnected = total > connectivityFloor && reach.Size()*2 >= total
	}

	decorate(s)
	balanceDifficulty(s)

	for y := 0; y < s.H() && !report.HasTreasures; y++ {
		for x := 0; x < s.W(); x++ {
			if lvl.Layers.Interactive.At(x, y) == level.TileTreasureChest {
				report.HasTreasures = true
				break
			}
		}
	}
	for _, e := range lvl.Entities {
		if e.Kind == level.KindEnemy {
			report.HasEnemies = true
			break
		}
	}
	return report
}

// placeSpawn marks a spawn point in the largest walkable component.
func placeSpawn(s *Scene) *geometry.Point {
	regions := geometry.FloodRegions(s.W(), s.H(), s.Level.WalkableAt)
	if len(regions) == 0 {
		return nil
	}
	largest := regions[0]
	for _, r := range regions[1:] {
		if len(r) > len(largest) {
			largest = r
		}
	}

	spawn := largest[0]
	for _, cell := range largest {
		if s.Level.Layers.Interactive.At(cell.X, cell.Y) == level.Unassigned {
			spawn = cell
			break
		}
	}
	s.Level.Layers.Interactive.Set(spawn.X, spawn.Y, level.TileSpawnPoint)
	return &spawn
}

// placeExit marks the walkable cell with the longest path distance from the
// spawn, breadth-first over the spawn's component. Cells that already carry
// an interactive tag (the spawn itself, chests, doors) are never overwritten;
// if no free cell exists the exit is omitted.
func placeExit(s *Scene, spawn geometry.Point) *geometry.Point {
	dist := map[geometry.Point]int{spawn: 0}
	queue := []geometry.Point{spawn}
	var furthest *geometry.Point
	furthestDist := -1

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if dist[c] > furthestDist && s.Level.Layers.Interactive.At(c.X, c.Y) == level.Unassigned {
			cell := c
			furthest, furthestDist = &cell, dist[c]
		}
		neighbors := [4]geometry.Point{
			{X: c.X, Y: c.Y - 1},
			{X: c.X + 1, Y: c.Y},
			{X: c.X, Y: c.Y + 1},
			{X: c.X - 1, Y: c.Y},
		}
		for _, n := range neighbors {
			if _, seen := dist[n]; seen || !s.Level.WalkableAt(n.X, n.Y) {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}

	if furthest == nil {
		return nil
	}
	s.Level.Layers.Interactive.Set(furthest.X, furthest.Y, level.TileExitPoint)
	return furthest
}

var ambienceByBiome = map[level.BiomeType]level.Tile{
	level.BiomeDungeon: level.TileDustMotes,
	level.BiomeCave:    level.TileFog,
	level.BiomeForest:  level.TileFallingLeaves,
	level.BiomeTown:    level.TileEmberGlow,
	level.BiomeCastle:  level.TileEmberGlow,
}

// decorate sprinkles sparse ambience tags over walkable ground.
func decorate(s *Scene) {
	tag, ok := ambienceByBiome[s.Level.BiomeType]
	if !ok {
		return
	}
	count := s.Level.CountWalkable() / 40
	if count < 1 {
		count = 1
	}
	if count > 8 {
		count = 8
	}
	for i := 0; i < count; i++ {
		pt, placed := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			return !s.Level.WalkableAt(x, y) || s.Level.Layers.Effects.At(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if placed {
			s.Level.Layers.Effects.Set(pt.X, pt.Y, tag)
		}
	}
}

// balanceDifficulty clamps every enemy into the band implied by the
// configured difficulty string.
func balanceDifficulty(s *Scene) {
	lo, hi := difficultyBand(s.Cfg.Difficulty)
	for i := range s.Level.Entities {
		e := &s.Level.Entities[i]
		if e.Kind != level.KindEnemy {
			continue
		}
		if e.DifficultyLevel < lo {
			e.DifficultyLevel = lo
		}
		if e.DifficultyLevel > hi {
			e.DifficultyLevel = hi
		}
	}
}

func difficultyBand(difficulty string) (int, int) {
	switch difficulty {
	case "easy":
		return 1, 2
	case "hard":
		return 2, 5
	default:
		return 1, 3
	}
}
