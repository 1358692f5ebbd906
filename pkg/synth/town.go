package synth

import (
	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

const (
	townMinDistricts   = 2
	townMaxDistricts   = 4
	townMinBuildings   = 3
	townMaxBuildings   = 6
	townChestChance    = 0.15
	streetLampSpacing  = 6
	districtPlaceRetry = geometry.DefaultAttempts
	buildingPlaceRetry = geometry.DefaultAttempts
)

var townEnemies = []string{"thief", "stray_dog", "drunkard"}

var townDialogue = []string{
	"Fresh wares, straight off the cart!",
	"Keep to the streets after dark, stranger.",
	"The well water has tasted odd all week.",
}

// Town synthesizes settlement levels: rectangular districts populated with
// buildings, chained by cobblestone streets, with market furniture scattered
// on the outskirts.
type Town struct {
	districts []geometry.Rect
	buildings []geometry.Rect
	streets   []geometry.Point
	doors     []geometry.Point
}

func (t *Town) Name() string { return "town" }

func (t *Town) Layout(s *Scene) {
	count := s.RNG.Between(townMinDistricts, townMaxDistricts)
	for i := 0; i < count; i++ {
		rect, ok := t.placeDistrict(s)
		if !ok {
			continue
		}
		t.districts = append(t.districts, rect)
		t.placeBuildings(s, rect)
	}

	width := s.RNG.Between(2, 3)
	for i := 1; i < len(t.districts); i++ {
		line := geometry.RasterizeLine(t.districts[i-1].Center(), t.districts[i].Center(), width)
		t.streets = append(t.streets, line...)
	}
}

// placeDistrict retries random rectangles until one fits without overlapping
// an existing district. Under-filled towns are acceptable.
func (t *Town) placeDistrict(s *Scene) (geometry.Rect, bool) {
	for i := 0; i < districtPlaceRetry; i++ {
		w := s.RNG.Between(8, 12)
		h := s.RNG.Between(6, 10)
		if w > s.W()-2 {
			w = s.W() - 2
		}
		if h > s.H()-2 {
			h = s.H() - 2
		}
		rect := geometry.Rect{
			X: s.RNG.Between(1, maxInt(1, s.W()-w-1)),
			Y: s.RNG.Between(1, maxInt(1, s.H()-h-1)),
			W: w,
			H: h,
		}
		if !t.overlapsDistrict(rect) {
			return rect, true
		}
	}
	return geometry.Rect{}, false
}

func (t *Town) overlapsDistrict(rect geometry.Rect) bool {
	for _, d := range t.districts {
		if rect.Overlaps(d) {
			return true
		}
	}
	return false
}

// placeBuildings nests 3-6 building footprints inside a district, skipping
// candidates that collide with buildings already placed.
func (t *Town) placeBuildings(s *Scene, district geometry.Rect) {
	count := s.RNG.Between(townMinBuildings, townMaxBuildings)
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < buildingPlaceRetry; attempt++ {
			w := s.RNG.Between(3, 5)
			h := s.RNG.Between(3, 4)
			if w > district.W-1 || h > district.H-1 {
				break
			}
			b := geometry.Rect{
				X: district.X + s.RNG.IntN(district.W-w),
				Y: district.Y + s.RNG.IntN(district.H-h),
				W: w,
				H: h,
			}
			if t.overlapsBuilding(b) {
				continue
			}
			t.buildings = append(t.buildings, b)
			t.doors = append(t.doors, doorCell(b))
			break
		}
	}
}

func (t *Town) overlapsBuilding(rect geometry.Rect) bool {
	for _, b := range t.buildings {
		if rect.Overlaps(b) {
			return true
		}
	}
	return false
}

func (t *Town) Terrain(s *Scene) {
	s.FillBackground(level.TileTownDirt)
	for _, d := range t.districts {
		s.CarveRect(d, level.TileTownGrass)
	}
	for _, c := range t.streets {
		s.Carve(c.X, c.Y, level.TileTownCobblestone)
	}
	for _, b := range t.buildings {
		s.CarveRect(b, level.TileTownFloor)
	}
}

func (t *Town) Structures(s *Scene) {
	for _, b := range t.buildings {
		t.stampWalls(s, b)
	}

	// Market furniture goes on the outskirts, away from districts and streets.
	furniture := s.RNG.Between(3, 8)
	for i := 0; i < furniture; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), func(x, y int) bool {
			return !s.Playable(x, y) || t.onDistrictOrStreet(s, x, y) || s.StructureAt(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.PlaceDecoration(pt.X, pt.Y, rng.Pick(s.RNG, []level.Tile{
			level.TileMarketStall, level.TileTownWell, level.TileTownStatue,
		}))
	}
}

// stampWalls rings a building with wall tags, leaving the door cell open.
func (t *Town) stampWalls(s *Scene, b geometry.Rect) {
	door := doorCell(b)
	for y := b.Y; y < b.Y+b.H; y++ {
		for x := b.X; x < b.X+b.W; x++ {
			onEdge := x == b.X || x == b.X+b.W-1 || y == b.Y || y == b.Y+b.H-1
			if !onEdge || (x == door.X && y == door.Y) {
				continue
			}
			s.PlaceBlocking(x, y, level.TileBuildingWall)
		}
	}
}

func (t *Town) onDistrictOrStreet(s *Scene, x, y int) bool {
	for _, d := range t.districts {
		if d.Contains(x, y) {
			return true
		}
	}
	return s.Level.Layers.Terrain.At(x, y) == level.TileTownCobblestone
}

func (t *Town) Interactive(s *Scene) {
	for _, door := range t.doors {
		if s.Level.WalkableAt(door.X, door.Y) {
			s.Level.Layers.Interactive.Set(door.X, door.Y, level.TileDoor)
		}
	}
	for _, d := range t.districts {
		if !s.RNG.Chance(townChestChance) {
			continue
		}
		pt, ok := geometry.TryPlaceIn(s.RNG, d, func(x, y int) bool {
			return !s.Level.WalkableAt(x, y) || s.Level.Layers.Interactive.At(x, y) != level.Unassigned
		}, geometry.DefaultAttempts)
		if ok {
			s.Level.Layers.Interactive.Set(pt.X, pt.Y, level.TileTreasureChest)
		}
	}
}

func (t *Town) Lighting(s *Scene) {
	for i, c := range t.streets {
		if i%streetLampSpacing != 0 {
			continue
		}
		if s.Level.WalkableAt(c.X, c.Y) && s.Level.Layers.Lighting.At(c.X, c.Y) == level.Unassigned {
			s.Level.Layers.Lighting.Set(c.X, c.Y, level.TileStreetLamp)
		}
	}
}

func (t *Town) Entities(s *Scene) {
	base := s.EnemyBaseLevel()
	enemies := s.RNG.Between(1, 3)
	for i := 0; i < enemies; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if !ok {
			continue
		}
		s.AddEnemy(rng.Pick(s.RNG, townEnemies), pt.X, pt.Y, base)
	}

	guards := s.RNG.Between(1, 2)
	for i := 0; i < guards; i++ {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddNPC("town_guard", "Move along, nothing to see here.", pt.X, pt.Y)
		}
	}
	if s.RNG.Chance(0.6) {
		pt, ok := geometry.TryPlace(s.RNG, s.W(), s.H(), s.NotWalkable, geometry.DefaultAttempts)
		if ok {
			s.AddNPC("merchant", rng.Pick(s.RNG, townDialogue), pt.X, pt.Y)
		}
	}
}
