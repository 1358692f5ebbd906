package synth

import (
	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

const (
	towerSize       = 3
	keepChestChance = 0.7
	castleNPCChance = 0.3
)

var castleDialogue = []string{
	"The lord sees no one. The lord has seen no one for years.",
	"These walls were old before the town below was young.",
}

// Castle synthesizes fortification levels. Unlike the other settlement
// biomes it is a deterministic template: outer wall ring, four corner
// towers, a central keep, and randomized courtyards and interior sections
// filling the bailey. There are no connectors; the layout is already
// enclosed.
type Castle struct {
	wallThickness int
	interior      geometry.Rect
	keep          geometry.Rect
	courtyards    []geometry.Rect
	sections      []geometry.Rect
}

func (c *Castle) Name() string { return "castle" }

func (c *Castle) Layout(s *Scene) {
	c.wallThickness = 1
	if s.W() >= 28 && s.H() >= 28 {
		c.wallThickness = 2
	}
	inset := 1 + c.wallThickness
	c.interior = geometry.Rect{
		X: inset,
		Y: inset,
		W: s.W() - 2*inset,
		H: s.H() - 2*inset,
	}

	kw := maxInt(5, s.W()/4)
	kh := maxInt(5, s.H()/4)
	c.keep = geometry.Rect{X: (s.W() - kw) / 2, Y: (s.H() - kh) / 2, W: kw, H: kh}

	courtyards := s.RNG.Between(1, 2)
	for i := 0; i < courtyards; i++ {
		if r, ok := c.placeInterior(s, 5, 8, 4, 6); ok {
			c.courtyards = append(c.courtyards, r)
		}
	}

	sections := s.RNG.Between(2, 4)
	for i := 0; i < sections; i++ {
		if r, ok := c.placeInterior(s, 4, 6, 3, 5); ok {
			c.sections = append(c.sections, r)
		}
	}
}

// placeInterior retries rectangles inside the bailey that avoid the keep and
// every area placed so far.
func (c *Castle) placeInterior(s *Scene, minW, maxW, minH, maxH int) (geometry.Rect, bool) {
	for i := 0; i < geometry.DefaultAttempts; i++ {
		w := s.RNG.Between(minW, maxW)
		h := s.RNG.Between(minH, maxH)
		if w > c.interior.W || h > c.interior.H {
			return geometry.Rect{}, false
		}
		r := geometry.Rect{
			X: c.interior.X + s.RNG.IntN(maxInt(1, c.interior.W-w)),
			Y: c.interior.Y + s.RNG.IntN(maxInt(1, c.interior.H-h)),
			W: w,
			H: h,
		}
		if r.Overlaps(c.keep) || c.overlapsPlaced(r) {
			continue
		}
		return r, true
	}
	return geometry.Rect{}, false
}

func (c *Castle) overlapsPlaced(r geometry.Rect) bool {
	for _, o := range append(append([]geometry.Rect{}, c.courtyards...), c.sections...) {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func (c *Castle) Terrain(s *Scene) {
	s.FillBackground(level.TileCastleFlagstone)
	s.CarveRect(c.interior, level.TileCastleCobble)
	for _, cy := range c.courtyards {
		s.CarveRect(cy, level.TileCastleCourtyard)
	}
	for _, sec := range c.sections {
		s.CarveRect(sec, level.TileCastleFloor)
	}
	s.CarveRect(c.keep, level.TileCastleFloor)
}

func (c *Castle) Structures(s *Scene) {
	c.stampOuterWall(s)
	c.stampTowers(s)
	c.stampRing(s, c.keep)
	for _, sec := range c.sections {
		c.stampRing(s, sec)
	}

	// Banners, fountains and benches only ever stand on cobblestone or
	// courtyard ground.
	decorations := s.RNG.Between(3, 7)
	for i := 0; i < decorations; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			t := s.Level.Layers.Terrain.At(x, y)
			if t != level.TileCastleCobble && t != level.TileCastleCourtyard {
				return true
			}
			return s.StructureAt(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.PlaceDecoration(pt.X, pt.Y, rng.Pick(s.RNG, []level.Tile{
			level.TileCastleBanner, level.TileCastleFountain, level.TileCastleBench,
		}))
	}
}

// stampOuterWall rings the playable area with wallThickness layers of wall.
func (c *Castle) stampOuterWall(s *Scene) {
	for y := 1; y < s.H()-1; y++ {
		for x := 1; x < s.W()-1; x++ {
			if c.interior.Contains(x, y) {
				continue
			}
			s.PlaceBlocking(x, y, level.TileCastleWall)
		}
	}
}

// stampTowers puts a solid tower block over each corner of the wall ring.
func (c *Castle) stampTowers(s *Scene) {
	corners := []geometry.Point{
		{X: 1, Y: 1},
		{X: s.W() - 1 - towerSize, Y: 1},
		{X: 1, Y: s.H() - 1 - towerSize},
		{X: s.W() - 1 - towerSize, Y: s.H() - 1 - towerSize},
	}
	for _, corner := range corners {
		for dy := 0; dy < towerSize; dy++ {
			for dx := 0; dx < towerSize; dx++ {
				s.PlaceBlocking(corner.X+dx, corner.Y+dy, level.TileCastleTower)
			}
		}
	}
}

// stampRing walls a rectangle's perimeter, leaving the door cell open.
func (c *Castle) stampRing(s *Scene, r geometry.Rect) {
	door := doorCell(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			onEdge := x == r.X || x == r.X+r.W-1 || y == r.Y || y == r.Y+r.H-1
			if !onEdge || (x == door.X && y == door.Y) {
				continue
			}
			s.PlaceBlocking(x, y, level.TileCastleWall)
		}
	}
}

func (c *Castle) Interactive(s *Scene) {
	doors := []geometry.Rect{c.keep}
	doors = append(doors, c.sections...)
	for _, r := range doors {
		door := doorCell(r)
		if s.Level.WalkableAt(door.X, door.Y) {
			s.Level.Layers.Interactive.Set(door.X, door.Y, level.TileDoor)
		}
	}

	if s.RNG.Chance(keepChestChance) {
		pt, ok := geometry.TryPlaceIn(s.RNG, c.keep, func(x, y int) bool {
			return !s.Level.WalkableAt(x, y) || s.Level.Layers.Interactive.At(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Interactive.Set(pt.X, pt.Y, level.TileTreasureChest)
		}
	}
}

func (c *Castle) Lighting(s *Scene) {
	braziers := s.RNG.Between(2, 6)
	for i := 0; i < braziers; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			return s.Level.Layers.Terrain.At(x, y) != level.TileCastleCobble ||
				s.Level.Layers.Lighting.At(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Lighting.Set(pt.X, pt.Y, level.TileBrazier)
		}
	}
}

func (c *Castle) Entities(s *Scene) {
	base := s.EnemyBaseLevel()
	guards := s.RNG.Between(3, 6)
	for i := 0; i < guards; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.AddEnemy("castle_guard", pt.X, pt.Y, base+s.RNG.Between(0, 1))
	}

	if s.RNG.Chance(c.bossChance(s)) {
		pt, ok := geometry.TryPlaceIn(s.RNG, c.keep, s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddEnemy("castle_lord", pt.X, pt.Y, base+2)
		}
	}

	if s.RNG.Chance(castleNPCChance) {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddNPC("steward", rng.Pick(s.RNG, castleDialogue), pt.X, pt.Y)
		}
	}
}

// bossChance scales the keep's boss spawn with the configured difficulty.
func (c *Castle) bossChance(s *Scene) float64 {
	switch s.Cfg.Difficulty {
	case "hard":
		return 0.6
	case "easy":
		return 0.1
	default:
		return 0.3
	}
}
