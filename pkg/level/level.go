// Package level defines the layered tile/entity data model the synthesizers
// mutate, the scaffold builder that allocates it, and the tpt_level_v1
// interchange exporter. A Level is owned exclusively by the caller once
// generation returns; the engine keeps no reference.
package level

// BiomeType selects one of the five synthesis pipelines.
type BiomeType string

const (
	BiomeDungeon BiomeType = "dungeon"
	BiomeCave    BiomeType = "cave"
	BiomeForest  BiomeType = "forest"
	BiomeTown    BiomeType = "town"
	BiomeCastle  BiomeType = "castle"
)

// Known reports whether b names one of the five biome pipelines.
func (b BiomeType) Known() bool {
	switch b {
	case BiomeDungeon, BiomeCave, BiomeForest, BiomeTown, BiomeCastle:
		return true
	}
	return false
}

// Grid is one layer: rows of nullable tile tags, indexed [y][x].
type Grid [][]Tile

// NewGrid allocates a w×h grid of unassigned cells.
func NewGrid(w, h int) Grid {
	g := make(Grid, h)
	for y := range g {
		g[y] = make([]Tile, w)
	}
	return g
}

// At returns the tag at (x, y), or Unassigned when out of bounds.
func (g Grid) At(x, y int) Tile {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return Unassigned
	}
	return g[y][x]
}

// Set assigns the tag at (x, y); out-of-bounds writes are dropped.
func (g Grid) Set(x, y int, t Tile) {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return
	}
	g[y][x] = t
}

// Layers are the six named grids composing a Level.
type Layers struct {
	Background  Grid `json:"background"`
	Terrain     Grid `json:"terrain"`
	Structures  Grid `json:"structures"`
	Interactive Grid `json:"interactive"`
	Lighting    Grid `json:"lighting"`
	Effects     Grid `json:"effects"`
}

// Dimensions are the tile-grid extents and the tile edge length in pixels.
type Dimensions struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

// EntityKind distinguishes enemies from dialogue-bearing NPCs.
type EntityKind string

const (
	KindEnemy EntityKind = "enemy"
	KindNPC   EntityKind = "npc"
)

// Position is an entity's tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is a placed actor. Entities are never mutated after insertion,
// except for the post-processor's difficulty clamp.
type Entity struct {
	ID              string     `json:"id"`
	Kind            EntityKind `json:"kind"`
	Subtype         string     `json:"subtype"`
	Position        Position   `json:"position"`
	DifficultyLevel int        `json:"difficultyLevel,omitempty"`
	Dialogue        string     `json:"dialogue,omitempty"`
}

// Metadata records how a Level came to be. GeneratedAt is an RFC3339 string
// so exports are byte-stable.
type Metadata struct {
	GeneratedAt string   `json:"generatedAt"`
	Seed        int64    `json:"seed"`
	Objectives  []string `json:"objectives"`
	Description string   `json:"description"`
}

// Level is the root artifact of one generation run.
type Level struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	BiomeType  BiomeType  `json:"biomeType"`
	Theme      string     `json:"theme"`
	Difficulty string     `json:"difficulty"`
	Dimensions Dimensions `json:"dimensions"`
	Layers     Layers     `json:"layers"`
	Entities   []Entity   `json:"entities"`
	Metadata   Metadata   `json:"metadata"`
}

// Width returns the grid width in tiles.
func (l *Level) Width() int { return l.Dimensions.Width }

// Height returns the grid height in tiles.
func (l *Level) Height() int { return l.Dimensions.Height }

// InBounds reports whether (x, y) is a valid tile coordinate.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Dimensions.Width && y >= 0 && y < l.Dimensions.Height
}

// WalkableAt reports whether the terrain at (x, y) is walkable floor and no
// blocking structure occupies the cell.
func (l *Level) WalkableAt(x, y int) bool {
	return Walkable(l.Layers.Terrain.At(x, y)) && !Blocking(l.Layers.Structures.At(x, y))
}

// CountWalkable returns the number of walkable cells on the terrain layer.
func (l *Level) CountWalkable() int {
	n := 0
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			if l.WalkableAt(x, y) {
				n++
			}
		}
	}
	return n
}
