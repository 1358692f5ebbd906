// Package preview renders a generated level as text, one rune per tile, for
// quick inspection from the command line. The topmost non-empty layer wins;
// colors follow tag families and can be disabled for non-terminal output.
package preview

import (
	"strings"

	"github.com/gookit/color"

	"tileforge/pkg/level"
)

type glyph struct {
	ch    rune
	style color.Style
}

var glyphs = map[level.Tile]glyph{
	// walls and blockers
	level.TileDungeonWall:  {'#', color.Style{color.FgGray}},
	level.TileCaveWall:     {'#', color.Style{color.FgGray}},
	level.TileBuildingWall: {'#', color.Style{color.FgYellow}},
	level.TileCastleWall:   {'#', color.Style{color.FgWhite}},
	level.TileCastleTower:  {'T', color.Style{color.FgWhite, color.OpBold}},
	level.TileOakTree:      {'♣', color.Style{color.FgGreen, color.OpBold}},
	level.TilePineTree:     {'♠', color.Style{color.FgGreen}},

	// floors
	level.TileDungeonFloor:    {'.', color.Style{color.FgGray}},
	level.TileCaveFloor:       {'.', color.Style{color.FgGray}},
	level.TileCaveWater:       {'~', color.Style{color.FgBlue}},
	level.TileForestGrass:     {',', color.Style{color.FgGreen}},
	level.TileForestPath:      {':', color.Style{color.FgYellow}},
	level.TileTownCobblestone: {'=', color.Style{color.FgGray, color.OpBold}},
	level.TileTownGrass:       {',', color.Style{color.FgGreen}},
	level.TileTownFloor:       {'.', color.Style{color.FgYellow}},
	level.TileCastleCobble:    {'=', color.Style{color.FgGray, color.OpBold}},
	level.TileCastleCourtyard: {',', color.Style{color.FgGreen}},
	level.TileCastleFloor:     {'.', color.Style{color.FgWhite}},

	// decorations
	level.TileStalactite:     {'v', color.Style{color.FgCyan}},
	level.TileStalagmite:     {'^', color.Style{color.FgCyan}},
	level.TileCavePillar:     {'|', color.Style{color.FgCyan}},
	level.TileFlowstone:      {'s', color.Style{color.FgCyan}},
	level.TileCrystalCluster: {'*', color.Style{color.FgMagenta, color.OpBold}},
	level.TileCaveMushrooms:  {'m', color.Style{color.FgMagenta}},
	level.TileBerryBush:      {'"', color.Style{color.FgRed}},
	level.TileForestRock:     {'o', color.Style{color.FgGray}},
	level.TileMarketStall:    {'s', color.Style{color.FgYellow, color.OpBold}},
	level.TileTownWell:       {'O', color.Style{color.FgBlue}},
	level.TileTownStatue:     {'&', color.Style{color.FgWhite}},
	level.TileCastleBanner:   {'!', color.Style{color.FgRed, color.OpBold}},
	level.TileCastleFountain: {'O', color.Style{color.FgBlue, color.OpBold}},
	level.TileCastleBench:    {'_', color.Style{color.FgYellow}},

	// interactive
	level.TileDoor:          {'+', color.Style{color.FgYellow, color.OpBold}},
	level.TileTreasureChest: {'$', color.Style{color.FgYellow, color.OpBold}},
	level.TileSpawnPoint:    {'@', color.Style{color.FgGreen, color.OpBold}},
	level.TileExitPoint:     {'>', color.Style{color.FgGreen}},

	// lighting
	level.TileTorch:           {'i', color.Style{color.FgRed, color.OpBold}},
	level.TileGlowingMushroom: {'m', color.Style{color.FgMagenta, color.OpBold}},
	level.TileCrystalLight:    {'*', color.Style{color.FgCyan, color.OpBold}},
	level.TileStreetLamp:      {'i', color.Style{color.FgYellow, color.OpBold}},
	level.TileBrazier:         {'i', color.Style{color.FgRed}},
	level.TileFireflies:       {'\'', color.Style{color.FgYellow}},

	// ambience
	level.TileFog:           {'%', color.Style{color.FgGray}},
	level.TileDustMotes:     {'%', color.Style{color.FgGray}},
	level.TileFallingLeaves: {'%', color.Style{color.FgGreen}},
	level.TileEmberGlow:     {'%', color.Style{color.FgRed}},
}

// Render returns the level as rows of glyphs. Entities draw over tiles;
// unassigned stacks draw as blank space.
func Render(lvl *level.Level, colored bool) string {
	entityAt := make(map[level.Position]level.EntityKind, len(lvl.Entities))
	for _, e := range lvl.Entities {
		entityAt[e.Position] = e.Kind
	}

	var b strings.Builder
	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			if kind, ok := entityAt[level.Position{X: x, Y: y}]; ok {
				b.WriteString(entityGlyph(kind, colored))
				continue
			}
			b.WriteString(tileGlyph(topTile(lvl, x, y), colored))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// topTile picks the topmost assigned tag at (x, y); background is skipped so
// open ground stays readable.
func topTile(lvl *level.Level, x, y int) level.Tile {
	layers := []level.Grid{
		lvl.Layers.Effects,
		lvl.Layers.Lighting,
		lvl.Layers.Interactive,
		lvl.Layers.Structures,
		lvl.Layers.Terrain,
	}
	for _, g := range layers {
		if t := g.At(x, y); t != level.Unassigned {
			return t
		}
	}
	return level.Unassigned
}

func tileGlyph(t level.Tile, colored bool) string {
	g, ok := glyphs[t]
	if !ok {
		return " "
	}
	if !colored {
		return string(g.ch)
	}
	return g.style.Sprint(string(g.ch))
}

func entityGlyph(kind level.EntityKind, colored bool) string {
	ch, style := "e", color.Style{color.FgRed, color.OpBold}
	if kind == level.KindNPC {
		ch, style = "n", color.Style{color.FgCyan, color.OpBold}
	}
	if !colored {
		return ch
	}
	return style.Sprint(ch)
}
