// Package leveltest builds small levels from ASCII maps for tests.
//
//	.  empty            #  ground          B  brick
//	b  breakable brick  -  platform        =  falling platform
//	^  spike            S  spring          I  ice
//	L  lava top         l  lava fill       ?  hidden block
//	U  used block       C  coffee block    H  helmet block
package leveltest

import (
	"fmt"

	"github.com/torbware/fekagaps/internal/domain/entity"
)

var glyphs = map[rune]entity.TileType{
	'.': entity.TileEmpty,
	'#': entity.TileGround,
	'B': entity.TileBrick,
	'b': entity.TileBrickBreakable,
	'-': entity.TilePlatform,
	'=': entity.TilePlatformFalling,
	'^': entity.TileSpike,
	'S': entity.TileSpring,
	'I': entity.TileIce,
	'L': entity.TileLavaTop,
	'l': entity.TileLavaFill,
	'?': entity.TileHiddenBlock,
	'U': entity.TileBlockUsed,
	'C': entity.TilePowerupBlockCoffee,
	'H': entity.TilePowerupBlockHelmet,
}

// Grid returns level data whose tiles are drawn by rows. All rows must have
// the same length. Spawn and goal default to the top-left cell.
func Grid(rows ...string) *entity.LevelData {
	d := &entity.LevelData{
		ID:        "0",
		Name:      "test",
		Height:    len(rows),
		Tiles:     make([][]entity.TileType, len(rows)),
		TimeLimit: 200,
	}
	for r, line := range rows {
		runes := []rune(line)
		if r == 0 {
			d.Width = len(runes)
		} else if len(runes) != d.Width {
			panic(fmt.Sprintf("leveltest: row %d has %d cells, want %d", r, len(runes), d.Width))
		}
		d.Tiles[r] = make([]entity.TileType, len(runes))
		for c, g := range runes {
			t, ok := glyphs[g]
			if !ok {
				panic(fmt.Sprintf("leveltest: unknown glyph %q", g))
			}
			d.Tiles[r][c] = t
		}
	}
	return d
}
