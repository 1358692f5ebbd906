package synth

import (
	"fmt"

	"tileforge/pkg/engine/geometry"
	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

// Scene is the working context shared by a synthesizer's phases: the level
// under construction, the seeded stream, and placement helpers that keep the
// layer invariants intact.
type Scene struct {
	Level *level.Level
	Cfg   level.Config
	RNG   *rng.Stream

	entityCounter int
}

// W returns the level width in tiles.
func (s *Scene) W() int { return s.Level.Width() }

// H returns the level height in tiles.
func (s *Scene) H() int { return s.Level.Height() }

// Playable reports whether (x, y) lies inside the one-cell safety margin.
// Walkable terrain is only ever carved inside this area so the wall-inference
// invariant never needs a tag outside the grid.
func (s *Scene) Playable(x, y int) bool {
	return x >= 1 && x < s.W()-1 && y >= 1 && y < s.H()-1
}

// FillBackground assigns the biome base tile to every background cell.
func (s *Scene) FillBackground(t level.Tile) {
	for y := 0; y < s.H(); y++ {
		for x := 0; x < s.W(); x++ {
			s.Level.Layers.Background.Set(x, y, t)
		}
	}
}

// Carve marks (x, y) as walkable terrain, skipping cells outside the
// playable area.
func (s *Scene) Carve(x, y int, t level.Tile) {
	if !s.Playable(x, y) {
		return
	}
	s.Level.Layers.Terrain.Set(x, y, t)
}

// CarveRect carves every cell of a rectangle.
func (s *Scene) CarveRect(r geometry.Rect, t level.Tile) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.Carve(x, y, t)
		}
	}
}

// PlaceBlocking puts a blocking structure tag at (x, y) and clears any
// walkable terrain underneath, preserving the no-overlap invariant.
func (s *Scene) PlaceBlocking(x, y int, t level.Tile) {
	if !s.Level.InBounds(x, y) {
		return
	}
	s.Level.Layers.Structures.Set(x, y, t)
	if level.Walkable(s.Level.Layers.Terrain.At(x, y)) {
		s.Level.Layers.Terrain.Set(x, y, level.Unassigned)
	}
}

// PlaceDecoration puts a non-blocking structure tag at (x, y). Terrain is
// untouched, so the cell stays walkable.
func (s *Scene) PlaceDecoration(x, y int, t level.Tile) {
	s.Level.Layers.Structures.Set(x, y, t)
}

// StructureAt is a shorthand for the structures layer lookup.
func (s *Scene) StructureAt(x, y int) level.Tile {
	return s.Level.Layers.Structures.At(x, y)
}

// InferWalls places wallTag on every unassigned-terrain cell in the
// 8-neighborhood of a walkable cell. Carve keeps floors off the border, so
// every such neighbor is in bounds and can hold the tag.
func (s *Scene) InferWalls(wallTag level.Tile) {
	terrain := s.Level.Layers.Terrain
	for y := 0; y < s.H(); y++ {
		for x := 0; x < s.W(); x++ {
			if !level.Walkable(terrain.At(x, y)) {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if !s.Level.InBounds(nx, ny) {
						continue
					}
					if terrain.At(nx, ny) == level.Unassigned {
						s.Level.Layers.Structures.Set(nx, ny, wallTag)
					}
				}
			}
		}
	}
}

// AddEnemy appends an enemy entity at (x, y).
func (s *Scene) AddEnemy(subtype string, x, y, difficulty int) {
	s.entityCounter++
	s.Level.Entities = append(s.Level.Entities, level.Entity{
		ID:              fmt.Sprintf("enemy_%d", s.entityCounter),
		Kind:            level.KindEnemy,
		Subtype:         subtype,
		Position:        level.Position{X: x, Y: y},
		DifficultyLevel: difficulty,
	})
}

// AddNPC appends a dialogue-bearing NPC at (x, y).
func (s *Scene) AddNPC(subtype, dialogue string, x, y int) {
	s.entityCounter++
	s.Level.Entities = append(s.Level.Entities, level.Entity{
		ID:       fmt.Sprintf("npc_%d", s.entityCounter),
		Kind:     level.KindNPC,
		Subtype:  subtype,
		Position: level.Position{X: x, Y: y},
		Dialogue: dialogue,
	})
}

// EnemyBaseLevel maps the free-form difficulty string onto a base enemy
// level. Unknown strings read as normal.
func (s *Scene) EnemyBaseLevel() int {
	switch s.Cfg.Difficulty {
	case "easy":
		return 1
	case "hard":
		return 3
	default:
		return 2
	}
}

// NotWalkable is the standard exclusion predicate for entity placement.
func (s *Scene) NotWalkable(x, y int) bool {
	return !s.Level.WalkableAt(x, y)
}
