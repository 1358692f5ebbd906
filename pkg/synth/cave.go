package synth

import (
	"github.com/aquilax/go-perlin"

	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

// Cellular automata parameters.
const (
	caveWallChance    = 0.45
	caveIterations    = 5
	caveSurviveLimit  = 4 // wall stays wall with >= this many wall neighbors
	caveBirthLimit    = 5 // open becomes wall with >= this many wall neighbors
	chamberThreshold  = 50
	tunnelThreshold   = 5
	moistureThreshold = 0.15
)

var caveEnemies = []string{"bat_swarm", "slime", "cave_crawler", "pale_lurker"}

var caveDialogue = []string{
	"I came down for the crystals. I stayed for the quiet.",
	"Mind the water. Things live in the water.",
}

// Cave synthesizes organic cavern levels with a cellular-automata pass,
// flood-fill chamber extraction and moisture-driven formations.
type Cave struct {
	walls    [][]bool
	chambers [][]geometry.Point
	tunnels  [][]geometry.Point
	moisture *perlin.Perlin
}

func (c *Cave) Name() string { return "cave" }

func (c *Cave) Layout(s *Scene) {
	w, h := s.W(), s.H()

	// Random fill; the border stays solid so wall inference never needs a
	// tag outside the grid.
	c.walls = make([][]bool, h)
	for y := range c.walls {
		c.walls[y] = make([]bool, w)
		for x := range c.walls[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				c.walls[y][x] = true
			} else {
				c.walls[y][x] = s.RNG.Chance(caveWallChance)
			}
		}
	}

	for i := 0; i < caveIterations; i++ {
		c.walls = c.step(w, h)
	}

	// Classify open space; components too small to matter are filled back in.
	regions := geometry.FloodRegions(w, h, func(x, y int) bool { return !c.walls[y][x] })
	chambers, tunnels, noise := classifyCaveRegions(regions)
	c.chambers, c.tunnels = chambers, tunnels
	for _, region := range noise {
		for _, cell := range region {
			c.walls[cell.Y][cell.X] = true
		}
	}

	c.moisture = perlin.NewPerlin(2, 2, 3, s.Cfg.Seed)
}

// step applies one neighbor-count iteration. Out-of-bounds neighbors count
// as walls, and the border is kept solid.
func (c *Cave) step(w, h int) [][]bool {
	next := make([][]bool, h)
	for y := range next {
		next[y] = make([]bool, w)
		for x := range next[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				next[y][x] = true
				continue
			}
			n := c.countWallNeighbors(w, h, x, y)
			if c.walls[y][x] {
				next[y][x] = n >= caveSurviveLimit
			} else {
				next[y][x] = n >= caveBirthLimit
			}
		}
	}
	return next
}

func (c *Cave) countWallNeighbors(w, h, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h || c.walls[ny][nx] {
				n++
			}
		}
	}
	return n
}

// classifyCaveRegions buckets 4-connected open components by size: large ones
// are chambers, mid-sized ones tunnels, and tiny ones noise to be discarded.
func classifyCaveRegions(regions [][]geometry.Point) (chambers, tunnels, noise [][]geometry.Point) {
	for _, region := range regions {
		switch {
		case len(region) > chamberThreshold:
			chambers = append(chambers, region)
		case len(region) > tunnelThreshold:
			tunnels = append(tunnels, region)
		default:
			noise = append(noise, region)
		}
	}
	return chambers, tunnels, noise
}

func (c *Cave) Terrain(s *Scene) {
	s.FillBackground(level.TileCaveRock)
	for y := 0; y < s.H(); y++ {
		for x := 0; x < s.W(); x++ {
			if !c.walls[y][x] {
				s.Level.Layers.Terrain.Set(x, y, level.TileCaveFloor)
			}
		}
	}

	// A few pools. Water is assigned terrain, not walkable floor.
	pools := s.RNG.Between(1, 3)
	for i := 0; i < pools; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			return s.Level.Layers.Terrain.At(x, y) != level.TileCaveFloor
		}, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Terrain.Set(pt.X, pt.Y, level.TileCaveWater)
		}
	}
}

func (c *Cave) Structures(s *Scene) {
	for y := 0; y < s.H(); y++ {
		for x := 0; x < s.W(); x++ {
			if c.walls[y][x] {
				s.Level.Layers.Structures.Set(x, y, level.TileCaveWall)
			}
		}
	}

	for _, chamber := range c.chambers {
		formations := s.RNG.Between(3, 7)
		for i := 0; i < formations; i++ {
			cell, ok := c.tryPlaceInRegion(s, chamber)
			if !ok {
				continue
			}
			s.PlaceDecoration(cell.X, cell.Y, c.formationFor(s, cell))
		}
	}

	clusters := s.RNG.Between(2, 5)
	for i := 0; i < clusters; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			return !s.Level.WalkableAt(x, y) || s.StructureAt(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if ok {
			s.PlaceDecoration(pt.X, pt.Y, level.TileCrystalCluster)
		}
	}
}

// formationFor picks a formation type; wet cells grow flowstone, dry ones a
// mix of stalactites, stalagmites, pillars and mushroom patches.
func (c *Cave) formationFor(s *Scene, cell geometry.Point) level.Tile {
	wet := c.moisture.Noise2D(float64(cell.X)/float64(s.W())*4, float64(cell.Y)/float64(s.H())*4)
	if wet > moistureThreshold {
		return level.TileFlowstone
	}
	return rng.Pick(s.RNG, []level.Tile{
		level.TileStalactite, level.TileStalagmite, level.TileCavePillar, level.TileCaveMushrooms,
	})
}

// tryPlaceInRegion is bounded-retry placement over an explicit cell list.
func (c *Cave) tryPlaceInRegion(s *Scene, region []geometry.Point) (geometry.Point, bool) {
	for i := 0; i < geometry.DefaultAttempts; i++ {
		cell := region[s.RNG.IntN(len(region))]
		if s.StructureAt(cell.X, cell.Y) == level.Unassigned &&
			s.Level.Layers.Terrain.At(cell.X, cell.Y) == level.TileCaveFloor {
			return cell, true
		}
	}
	return geometry.Point{}, false
}

func (c *Cave) Interactive(s *Scene) {
	// Chests favor chambers; tunnels stay bare.
	for _, chamber := range c.chambers {
		if !s.RNG.Chance(chestChance) {
			continue
		}
		cell, ok := c.tryPlaceInRegion(s, chamber)
		if ok {
			s.Level.Layers.Interactive.Set(cell.X, cell.Y, level.TileTreasureChest)
		}
	}
}

func (c *Cave) Lighting(s *Scene) {
	mushrooms := s.RNG.Between(2, 6)
	for i := 0; i < mushrooms; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Lighting.Set(pt.X, pt.Y, level.TileGlowingMushroom)
		}
	}
	lights := s.RNG.Between(1, 4)
	for i := 0; i < lights; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Lighting.Set(pt.X, pt.Y, level.TileCrystalLight)
		}
	}
}

func (c *Cave) Entities(s *Scene) {
	base := s.EnemyBaseLevel()
	enemies := s.RNG.Between(4, 9)
	for i := 0; i < enemies; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.AddEnemy(rng.Pick(s.RNG, caveEnemies), pt.X, pt.Y, base+s.RNG.Between(0, 1))
	}
	if s.RNG.Chance(0.2) {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddNPC("hermit", rng.Pick(s.RNG, caveDialogue), pt.X, pt.Y)
		}
	}
}
