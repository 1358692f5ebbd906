package synth

import (
	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

// Dungeon dimensions and probabilities.
const (
	dungeonMinRooms    = 5
	dungeonMaxRooms    = 11
	dungeonMinRoomEdge = 4
	dungeonMaxRoomEdge = 8
	corridorWidth      = 2

	doorChance     = 0.7
	chestChance    = 0.4
	dungeonNPCOdds = 0.1
	maxRoomEnemies = 3
	maxRoomTorches = 3
)

var dungeonEnemies = []string{"skeleton", "goblin", "giant_rat", "cave_spider"}

var dungeonDialogue = []string{
	"Turn back while you still can.",
	"I have been down here longer than I can remember.",
	"The walls shift when no one watches.",
}

// Dungeon synthesizes room-and-corridor levels. Rooms may overlap and merge;
// that is accepted behavior, corridors still chain every room to the next so
// the whole floor stays reachable.
type Dungeon struct {
	rooms     []geometry.Rect
	corridors []geometry.Point
}

func (d *Dungeon) Name() string { return "dungeon" }

func (d *Dungeon) Layout(s *Scene) {
	count := s.RNG.Between(dungeonMinRooms, dungeonMaxRooms)
	for i := 0; i < count; i++ {
		w := s.RNG.Between(dungeonMinRoomEdge, dungeonMaxRoomEdge)
		h := s.RNG.Between(dungeonMinRoomEdge-1, dungeonMaxRoomEdge-2)
		if w > s.W()-2 {
			w = s.W() - 2
		}
		if h > s.H()-2 {
			h = s.H() - 2
		}
		x := s.RNG.Between(1, maxInt(1, s.W()-w-1))
		y := s.RNG.Between(1, maxInt(1, s.H()-h-1))
		d.rooms = append(d.rooms, geometry.Rect{X: x, Y: y, W: w, H: h})
	}

	// Chain rooms pairwise through their centers.
	for i := 1; i < len(d.rooms); i++ {
		line := geometry.RasterizeLine(d.rooms[i-1].Center(), d.rooms[i].Center(), corridorWidth)
		d.corridors = append(d.corridors, line...)
	}
}

func (d *Dungeon) Terrain(s *Scene) {
	s.FillBackground(level.TileDungeonStone)
	for _, room := range d.rooms {
		s.CarveRect(room, level.TileDungeonFloor)
	}
	for _, c := range d.corridors {
		s.Carve(c.X, c.Y, level.TileDungeonFloor)
	}
}

func (d *Dungeon) Structures(s *Scene) {
	s.InferWalls(level.TileDungeonWall)
}

func (d *Dungeon) Interactive(s *Scene) {
	for _, room := range d.rooms {
		if s.RNG.Chance(doorChance) {
			door := doorCell(room)
			if s.Level.WalkableAt(door.X, door.Y) {
				s.Level.Layers.Interactive.Set(door.X, door.Y, level.TileDoor)
			}
		}
		if s.RNG.Chance(chestChance) {
			pt, ok := geometry.TryPlaceIn(s.RNG, room, func(x, y int) bool {
				return !s.Level.WalkableAt(x, y) || s.Level.Layers.Interactive.At(x, y) != level.Unassigned
			}, geometry.DefaultAttempts)
			if ok {
				s.Level.Layers.Interactive.Set(pt.X, pt.Y, level.TileTreasureChest)
			}
		}
	}
}

func (d *Dungeon) Lighting(s *Scene) {
	for _, room := range d.rooms {
		torches := s.RNG.Between(1, maxRoomTorches)
		for i := 0; i < torches; i++ {
			pt, ok := geometry.TryPlaceIn(s.RNG, room, func(x, y int) bool {
				return !s.Level.WalkableAt(x, y) || s.Level.Layers.Lighting.At(x, y) != level.Unassigned
			}, geometry.DefaultAttempts)
			if ok {
				s.Level.Layers.Lighting.Set(pt.X, pt.Y, level.TileTorch)
			}
		}
	}
}

func (d *Dungeon) Entities(s *Scene) {
	base := s.EnemyBaseLevel()
	for _, room := range d.rooms {
		enemies := s.RNG.Between(0, maxRoomEnemies)
		for i := 0; i < enemies; i++ {
			pt, ok := geometry.TryPlaceIn(s.RNG, room, s.NotWalkable, geometry.DefaultAttempts)
			if !ok {
				continue
			}
			s.AddEnemy(rng.Pick(s.RNG, dungeonEnemies), pt.X, pt.Y, base+s.RNG.Between(0, 1))
		}
		if s.RNG.Chance(dungeonNPCOdds) {
			pt, ok := geometry.TryPlaceIn(s.RNG, room, s.NotWalkable, geometry.DefaultAttempts)
			if ok {
				s.AddNPC("lost_adventurer", rng.Pick(s.RNG, dungeonDialogue), pt.X, pt.Y)
			}
		}
	}
}

// doorCell returns the midpoint of a room's south edge.
func doorCell(room geometry.Rect) geometry.Point {
	return geometry.Point{X: room.X + room.W/2, Y: room.Y + room.H - 1}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
