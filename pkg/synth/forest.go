package synth

import (
	"github.com/aquilax/go-perlin"

	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

const (
	forestMinClearings = 2
	forestMaxClearings = 5
	forestChestChance  = 0.5
)

var forestEnemies = []string{"wolf", "bandit", "forest_spider", "wild_boar"}

var forestDialogue = []string{
	"The old paths are safer than the new ones.",
	"Hunting has been poor since the lights appeared.",
}

// Forest synthesizes clearing-and-trail levels: rectangular clearings chained
// by rasterized trails, with vegetation scattered everywhere else. A seeded
// noise field varies how dense the scatter gets from grove to grove.
type Forest struct {
	clearings []geometry.Rect
	trails    []geometry.Point
	density   *perlin.Perlin
}

func (f *Forest) Name() string { return "forest" }

func (f *Forest) Layout(s *Scene) {
	count := s.RNG.Between(forestMinClearings, forestMaxClearings)
	for i := 0; i < count; i++ {
		w := s.RNG.Between(4, 8)
		h := s.RNG.Between(4, 7)
		if w > s.W()-2 {
			w = s.W() - 2
		}
		if h > s.H()-2 {
			h = s.H() - 2
		}
		x := s.RNG.Between(1, maxInt(1, s.W()-w-1))
		y := s.RNG.Between(1, maxInt(1, s.H()-h-1))
		f.clearings = append(f.clearings, geometry.Rect{X: x, Y: y, W: w, H: h})
	}

	for i := 1; i < len(f.clearings); i++ {
		width := s.RNG.Between(1, 2)
		line := geometry.RasterizeLine(f.clearings[i-1].Center(), f.clearings[i].Center(), width)
		f.trails = append(f.trails, line...)
	}

	f.density = perlin.NewPerlin(2, 2, 3, s.Cfg.Seed+1)
}

func (f *Forest) Terrain(s *Scene) {
	s.FillBackground(level.TileForestGround)
	for _, clearing := range f.clearings {
		s.CarveRect(clearing, level.TileForestGrass)
	}
	for _, t := range f.trails {
		if s.Level.Layers.Terrain.At(t.X, t.Y) == level.Unassigned {
			s.Carve(t.X, t.Y, level.TileForestPath)
		}
	}
}

func (f *Forest) Structures(s *Scene) {
	target := s.W() * s.H() / 12
	excluded := func(x, y int) bool {
		if !s.Playable(x, y) || onAnchorOrTrail(s, x, y) || s.StructureAt(x, y) != level.Unassigned {
			return true
		}
		// Dense groves where the noise runs high, sparse meadows elsewhere.
		d := f.density.Noise2D(float64(x)/float64(s.W())*5, float64(y)/float64(s.H())*5)
		return d < -0.25
	}
	for i := 0; i < target; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), excluded, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.PlaceBlocking(pt.X, pt.Y, f.vegetationFor(s))
	}
}

// vegetationFor picks a plant: mostly trees, occasionally brush or rock.
func (f *Forest) vegetationFor(s *Scene) level.Tile {
	roll := s.RNG.Float64()
	switch {
	case roll < 0.45:
		return level.TileOakTree
	case roll < 0.75:
		return level.TilePineTree
	case roll < 0.9:
		return level.TileBerryBush
	default:
		return level.TileForestRock
	}
}

// onAnchorOrTrail reports whether the cell belongs to a clearing or a trail.
func onAnchorOrTrail(s *Scene, x, y int) bool {
	t := s.Level.Layers.Terrain.At(x, y)
	return t == level.TileForestGrass || t == level.TileForestPath
}

func (f *Forest) Interactive(s *Scene) {
	for _, clearing := range f.clearings {
		if !s.RNG.Chance(forestChestChance) {
			continue
		}
		pt, ok := geometry.TryPlaceIn(s.RNG, clearing, func(x, y int) bool {
			return !s.Level.WalkableAt(x, y) || s.Level.Layers.Interactive.At(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Interactive.Set(pt.X, pt.Y, level.TileTreasureChest)
		}
	}
}

func (f *Forest) Lighting(s *Scene) {
	glows := s.RNG.Between(1, 3)
	for i := 0; i < glows; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Lighting.Set(pt.X, pt.Y, level.TileFireflies)
		}
	}
}

func (f *Forest) Entities(s *Scene) {
	base := s.EnemyBaseLevel()
	enemies := s.RNG.Between(3, 7)
	for i := 0; i < enemies; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.AddEnemy(rng.Pick(s.RNG, forestEnemies), pt.X, pt.Y, base+s.RNG.Between(0, 1))
	}
	if s.RNG.Chance(0.2) {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddNPC("ranger", rng.Pick(s.RNG, forestDialogue), pt.X, pt.Y)
		}
	}
}
