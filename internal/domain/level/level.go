// Package level owns the tile grid of a level in play: static tiles, the
// temporary-removal overlay, falling platforms, and the geometric hazard
// queries built on top of them.
//
// EffectiveTile is the only read path. Out-of-bounds cells are EMPTY, so
// callers never need their own bounds checks.
package level

import (
	"github.com/torbware/fekagaps/internal/domain/entity"
)

// BreakResult reports the outcome of BreakTile
type BreakResult struct {
	Broken  bool
	Removed entity.TileType
}

// Level is a mutable level instance built from a LevelData record
type Level struct {
	data    *entity.LevelData
	timings FallingTimings

	overlays  map[entity.Point]*overlay
	platforms map[entity.Point]*fallingPlatform
	touched   map[entity.Point]struct{}
}

// New creates a level over a private copy of data with default timings
func New(data *entity.LevelData) *Level {
	return NewWithTimings(data, DefaultFallingTimings())
}

// NewWithTimings creates a level with explicit falling-platform timings
func NewWithTimings(data *entity.LevelData, timings FallingTimings) *Level {
	return &Level{
		data:      data.Clone(),
		timings:   timings,
		overlays:  make(map[entity.Point]*overlay),
		platforms: make(map[entity.Point]*fallingPlatform),
		touched:   make(map[entity.Point]struct{}),
	}
}

// Data returns the level record backing the grid
func (l *Level) Data() *entity.LevelData {
	return l.data
}

// Width returns the grid width in tiles
func (l *Level) Width() int { return l.data.Width }

// Height returns the grid height in tiles
func (l *Level) Height() int { return l.data.Height }

// PixelWidth returns the level width in pixels
func (l *Level) PixelWidth() float64 { return float64(l.data.Width * entity.TileSize) }

// PixelHeight returns the level height in pixels
func (l *Level) PixelHeight() float64 { return float64(l.data.Height * entity.TileSize) }

// Bounds returns the level rectangle in pixels
func (l *Level) Bounds() entity.Rect {
	return entity.Rect{W: l.PixelWidth(), H: l.PixelHeight()}
}

func (l *Level) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && row < len(l.data.Tiles) && col < len(l.data.Tiles[row])
}

// StaticTile returns the stored tile without overlays (EMPTY out of bounds)
func (l *Level) StaticTile(col, row int) entity.TileType {
	if !l.inBounds(col, row) {
		return entity.TileEmpty
	}
	return l.data.Tiles[row][col]
}

// EffectiveTile returns what occupies the cell right now
func (l *Level) EffectiveTile(col, row int) entity.TileType {
	if !l.inBounds(col, row) {
		return entity.TileEmpty
	}
	at := entity.Point{Col: col, Row: row}
	if o, ok := l.overlays[at]; ok && o.timer.Active() {
		return entity.TileEmpty
	}
	if fp, ok := l.platforms[at]; ok {
		if fp.phase.solid() {
			return entity.TilePlatformFalling
		}
		return entity.TileEmpty
	}
	return l.data.Tiles[row][col]
}

// TileAt returns the effective tile under a world position
func (l *Level) TileAt(x, y float64) entity.TileType {
	return l.EffectiveTile(entity.ColOf(x), entity.RowOf(y))
}

// SetTile overwrites a static cell. Out-of-bounds writes are ignored.
func (l *Level) SetTile(col, row int, t entity.TileType) {
	if !l.inBounds(col, row) {
		return
	}
	l.data.Tiles[row][col] = t
}

// BreakTile permanently clears a breakable cell. BRICK_BREAKABLE always
// breaks; BRICK needs the helmet. Every other tile refuses.
func (l *Level) BreakTile(col, row int, hasHelmet bool) BreakResult {
	t := l.EffectiveTile(col, row)
	switch {
	case t == entity.TileBrickBreakable:
	case t == entity.TileBrick && hasHelmet:
	default:
		return BreakResult{}
	}
	l.data.Tiles[row][col] = entity.TileEmpty
	return BreakResult{Broken: true, Removed: t}
}

// RevealHiddenBlock turns a hidden block into a used block
func (l *Level) RevealHiddenBlock(col, row int) bool {
	if l.EffectiveTile(col, row) != entity.TileHiddenBlock {
		return false
	}
	l.data.Tiles[row][col] = entity.TileBlockUsed
	return true
}

// LavaTopOffset returns how far the collidable lava surface sits below the
// top of the cell. It is a quarter tile when the cell above is empty and
// zero otherwise (lava above, any other tile above, or the top row).
func (l *Level) LavaTopOffset(col, row int) float64 {
	if !l.StaticTile(col, row).IsLava() || row <= 0 {
		return 0
	}
	if l.StaticTile(col, row-1) == entity.TileEmpty {
		return float64(entity.TileSize / 4)
	}
	return 0
}

// LavaTop returns the collidable lava surface y of a cell
func (l *Level) LavaTop(col, row int) float64 {
	return float64(row*entity.TileSize) + l.LavaTopOffset(col, row)
}

// IsInGap reports whether the rect has fallen below the map
func (l *Level) IsInGap(r entity.Rect) bool {
	return r.Y > l.PixelHeight()
}

// SpikeOverlap reports whether any spike cell touches the rect
func (l *Level) SpikeOverlap(r entity.Rect) bool {
	startCol, endCol := entity.ColOf(r.X), entity.ColOf(r.X+r.W-1)
	startRow, endRow := entity.RowOf(r.Y), entity.RowOf(r.Y+r.H-1)
	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if l.EffectiveTile(col, row) == entity.TileSpike {
				return true
			}
		}
	}
	return false
}

// LavaOverlap reports whether the rect touches a lava body. The lava box of
// each cell is shortened by LavaTopOffset, the same surface the collision
// resolver lands bodies on, and touching edges count as contact.
func (l *Level) LavaOverlap(r entity.Rect) bool {
	startCol, endCol := entity.ColOf(r.X), entity.ColOf(r.X+r.W-1)
	startRow, endRow := entity.RowOf(r.Y), entity.RowOf(r.Y+r.H)
	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if !l.EffectiveTile(col, row).IsLava() {
				continue
			}
			lavaX := float64(col * entity.TileSize)
			lavaY := l.LavaTop(col, row)
			lavaBottom := float64((row + 1) * entity.TileSize)
			if r.X <= lavaX+entity.TileSize && r.Right() >= lavaX &&
				r.Y <= lavaBottom && r.Bottom() >= lavaY {
				return true
			}
		}
	}
	return false
}

// GoalReached reports whether the rect overlaps the goal cell
func (l *Level) GoalReached(r entity.Rect) bool {
	goal := entity.Rect{
		X: float64(l.data.Goal.Col * entity.TileSize),
		Y: float64(l.data.Goal.Row * entity.TileSize),
		W: entity.TileSize,
		H: entity.TileSize,
	}
	return goal.Intersects(r)
}

// NearestCheckpoint returns the right-most checkpoint at or left of playerX,
// or the player spawn when none qualifies.
func (l *Level) NearestCheckpoint(checkpoints []entity.Point, playerX float64) entity.Point {
	best := l.data.PlayerSpawn
	bestX := -1.0
	for _, cp := range checkpoints {
		x := float64(cp.Col * entity.TileSize)
		if x <= playerX && x > bestX {
			best = cp
			bestX = x
		}
	}
	return best
}

// ModifiedTiles returns a copy of the grid as it should be drawn: cells under
// a removal overlay or a falling platform entry read as EMPTY.
func (l *Level) ModifiedTiles() [][]entity.TileType {
	out := make([][]entity.TileType, len(l.data.Tiles))
	for i, row := range l.data.Tiles {
		out[i] = append([]entity.TileType(nil), row...)
	}
	for at := range l.overlays {
		if l.inBounds(at.Col, at.Row) {
			out[at.Row][at.Col] = entity.TileEmpty
		}
	}
	for at := range l.platforms {
		if l.inBounds(at.Col, at.Row) {
			out[at.Row][at.Col] = entity.TileEmpty
		}
	}
	return out
}

// Reset clears all dynamic state. Permanent tile changes are kept.
func (l *Level) Reset() {
	clear(l.overlays)
	clear(l.platforms)
	clear(l.touched)
}
