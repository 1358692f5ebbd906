package level

import "encoding/json"

// Tile is a tile-type tag inside one layer. The zero value means the cell is
// unassigned and marshals to JSON null, matching the interchange format.
type Tile string

// Unassigned is the empty tile tag.
const Unassigned Tile = ""

// MarshalJSON emits null for unassigned cells.
func (t Tile) MarshalJSON() ([]byte, error) {
	if t == Unassigned {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalJSON accepts null as the unassigned tag.
func (t *Tile) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Unassigned
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Tile(s)
	return nil
}

// Background layer bases, one per biome.
const (
	TileDungeonStone    Tile = "dungeon_stone"
	TileCaveRock        Tile = "cave_rock"
	TileForestGround    Tile = "forest_ground"
	TileTownDirt        Tile = "town_dirt"
	TileCastleFlagstone Tile = "castle_flagstone"
)

// Terrain tags.
const (
	TileDungeonFloor    Tile = "dungeon_floor"
	TileCaveFloor       Tile = "cave_floor"
	TileCaveWater       Tile = "cave_water"
	TileForestGrass     Tile = "forest_grass"
	TileForestPath      Tile = "forest_path"
	TileTownCobblestone Tile = "town_cobblestone"
	TileTownGrass       Tile = "town_grass"
	TileTownFloor       Tile = "town_floor"
	TileCastleCobble    Tile = "castle_cobblestone"
	TileCastleCourtyard Tile = "castle_courtyard"
	TileCastleFloor     Tile = "castle_floor"
)

// Structure tags. Walls, towers, trees and building shells block movement;
// formations and street furniture are decorative.
const (
	TileDungeonWall    Tile = "dungeon_wall"
	TileCaveWall       Tile = "cave_wall"
	TileStalactite     Tile = "stalactite"
	TileStalagmite     Tile = "stalagmite"
	TileCavePillar     Tile = "cave_pillar"
	TileFlowstone      Tile = "flowstone"
	TileCrystalCluster Tile = "crystal_cluster"
	TileCaveMushrooms  Tile = "cave_mushrooms"
	TileOakTree        Tile = "oak_tree"
	TilePineTree       Tile = "pine_tree"
	TileBerryBush      Tile = "berry_bush"
	TileForestRock     Tile = "forest_rock"
	TileBuildingWall   Tile = "building_wall"
	TileMarketStall    Tile = "market_stall"
	TileTownWell       Tile = "town_well"
	TileTownStatue     Tile = "town_statue"
	TileCastleWall     Tile = "castle_wall"
	TileCastleTower    Tile = "castle_tower"
	TileCastleBanner   Tile = "castle_banner"
	TileCastleFountain Tile = "castle_fountain"
	TileCastleBench    Tile = "castle_bench"
)

// Interactive tags.
const (
	TileDoor          Tile = "door"
	TileTreasureChest Tile = "treasure_chest"
	TileSpawnPoint    Tile = "spawn_point"
	TileExitPoint     Tile = "exit_point"
)

// Lighting tags.
const (
	TileTorch           Tile = "torch"
	TileGlowingMushroom Tile = "glowing_mushroom"
	TileCrystalLight    Tile = "crystal_light"
	TileStreetLamp      Tile = "street_lamp"
	TileBrazier         Tile = "brazier"
	TileFireflies       Tile = "fireflies"
)

// Effects tags, applied sparsely by the post-processor.
const (
	TileFog           Tile = "fog"
	TileDustMotes     Tile = "dust_motes"
	TileFallingLeaves Tile = "falling_leaves"
	TileEmberGlow     Tile = "ember_glow"
)

var blockingTags = map[Tile]bool{
	TileDungeonWall:  true,
	TileCaveWall:     true,
	TileOakTree:      true,
	TilePineTree:     true,
	TileBuildingWall: true,
	TileCastleWall:   true,
	TileCastleTower:  true,
}

var walkableTags = map[Tile]bool{
	TileDungeonFloor:    true,
	TileCaveFloor:       true,
	TileForestGrass:     true,
	TileForestPath:      true,
	TileTownCobblestone: true,
	TileTownGrass:       true,
	TileTownFloor:       true,
	TileCastleCobble:    true,
	TileCastleCourtyard: true,
	TileCastleFloor:     true,
}

// Blocking reports whether a structure tag blocks movement.
func Blocking(t Tile) bool {
	return blockingTags[t]
}

// Walkable reports whether a terrain tag is walkable floor.
func Walkable(t Tile) bool {
	return walkableTags[t]
}
