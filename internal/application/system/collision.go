package system

import (
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
)

// Resolution is the outcome of moving a box through the tile grid
type Resolution struct {
	Pos      entity.Vec2
	Vel      entity.Vec2
	Grounded bool
	Hit      *entity.TileHit
}

// Resolver moves axis-aligned boxes through a level's effective tiles.
// Horizontal motion is resolved first, then vertical motion from the
// corrected x.
type Resolver struct {
	level *level.Level
}

// NewResolver creates a resolver reading from the given level
func NewResolver(l *level.Level) *Resolver {
	return &Resolver{level: l}
}

// Resolve moves rect by vel and returns the corrected position and
// velocity. prev is the box at the start of the tick; one-way platforms and
// lava surfaces only catch a box whose bottom crossed their top since then.
func (r *Resolver) Resolve(rect entity.Rect, vel entity.Vec2, prev *entity.Rect) Resolution {
	res := Resolution{
		Pos: entity.Vec2{X: rect.X + vel.X, Y: rect.Y + vel.Y},
		Vel: vel,
	}

	// Horizontal pass: walls only
	if vel.X != 0 {
		probe := entity.Rect{X: res.Pos.X, Y: rect.Y, W: rect.W, H: rect.H}
		if tile, col, row, ok := r.horizontalHit(probe); ok {
			if vel.X > 0 {
				res.Pos.X = float64(col*entity.TileSize) - rect.W
				res.Hit = &entity.TileHit{Tile: tile, Col: col, Row: row, Side: entity.SideLeft}
			} else {
				res.Pos.X = float64((col + 1) * entity.TileSize)
				res.Hit = &entity.TileHit{Tile: tile, Col: col, Row: row, Side: entity.SideRight}
			}
			res.Vel.X = 0
		}
	}

	// Invisible walls at the level edges
	maxX := r.level.PixelWidth() - rect.W
	if res.Pos.X < 0 {
		res.Pos.X = 0
		res.Vel.X = 0
	} else if res.Pos.X > maxX {
		res.Pos.X = maxX
		res.Vel.X = 0
	}

	probe := entity.Rect{X: res.Pos.X, Y: res.Pos.Y, W: rect.W, H: rect.H}
	switch {
	case vel.Y > 0:
		if tile, col, row, ok := r.floorHit(probe, prev); ok {
			top := float64(row * entity.TileSize)
			if tile.IsLava() {
				top = r.level.LavaTop(col, row)
			}
			res.Pos.Y = top - rect.H
			res.Vel.Y = 0
			res.Grounded = true
			res.Hit = &entity.TileHit{Tile: tile, Col: col, Row: row, Side: entity.SideBottom}
		}
	case vel.Y < 0:
		if tile, col, row, ok := r.ceilingHit(probe); ok {
			res.Pos.Y = float64((row + 1) * entity.TileSize)
			res.Vel.Y = 0
			res.Hit = &entity.TileHit{Tile: tile, Col: col, Row: row, Side: entity.SideTop}
		}
	}

	return res
}

// colSpan returns the columns covered by a box, excluding a right edge
// that sits exactly on a tile boundary.
func colSpan(rect entity.Rect) (int, int) {
	return entity.ColOf(rect.X), entity.ColOf(rect.Right() - 0.1)
}

func (r *Resolver) horizontalHit(rect entity.Rect) (entity.TileType, int, int, bool) {
	startCol, endCol := colSpan(rect)
	startRow := entity.RowOf(rect.Y)
	endRow := entity.RowOf(rect.Bottom() - 0.1)

	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			tile := r.level.EffectiveTile(col, row)
			if !tile.IsWall() {
				continue
			}
			if tile.IsLava() && r.level.LavaTopOffset(col, row) > 0 {
				// The strip above a lava surface is open
				top := r.level.LavaTop(col, row)
				bottom := float64((row + 1) * entity.TileSize)
				if rect.Bottom() <= top || rect.Y >= bottom {
					continue
				}
			}
			return tile, col, row, true
		}
	}
	return entity.TileEmpty, 0, 0, false
}

// crossedFromAbove reports whether the box bottom passed a surface at y
// this tick. Without a previous box any bottom at or below the surface
// counts.
func crossedFromAbove(rect entity.Rect, prev *entity.Rect, y float64) bool {
	bottom := rect.Bottom()
	if prev == nil {
		return bottom >= y-0.1
	}
	return prev.Bottom() <= y+1 && bottom >= y-0.1
}

func (r *Resolver) floorHit(rect entity.Rect, prev *entity.Rect) (entity.TileType, int, int, bool) {
	startCol, endCol := colSpan(rect)
	row := entity.RowOf(rect.Bottom() - 0.1)

	for col := startCol; col <= endCol; col++ {
		tile := r.level.EffectiveTile(col, row)
		switch {
		case tile.IsOneWay():
			if crossedFromAbove(rect, prev, float64(row*entity.TileSize)) {
				return tile, col, row, true
			}
		case tile.IsLava():
			if crossedFromAbove(rect, prev, r.level.LavaTop(col, row)) {
				return tile, col, row, true
			}
		case tile.IsFloor():
			return tile, col, row, true
		}
	}
	return entity.TileEmpty, 0, 0, false
}

func (r *Resolver) ceilingHit(rect entity.Rect) (entity.TileType, int, int, bool) {
	startCol, endCol := colSpan(rect)
	row := entity.RowOf(rect.Y + 0.1)

	for col := startCol; col <= endCol; col++ {
		if tile := r.level.EffectiveTile(col, row); tile.IsCeiling() {
			return tile, col, row, true
		}
	}
	return entity.TileEmpty, 0, 0, false
}

// Support returns the tiles the box is standing on, left to right.
// Only floors, one-way platforms and lava count.
func (r *Resolver) Support(rect entity.Rect) []entity.TileHit {
	startCol, endCol := colSpan(rect)
	row := entity.RowOf(rect.Bottom() + 0.5)

	var hits []entity.TileHit
	for col := startCol; col <= endCol; col++ {
		tile := r.level.EffectiveTile(col, row)
		if tile.IsFloor() || tile.IsOneWay() || tile.IsLava() {
			hits = append(hits, entity.TileHit{Tile: tile, Col: col, Row: row, Side: entity.SideBottom})
		}
	}
	return hits
}
