package entity

import (
	"fmt"
	"math"
)

// TileSize is the edge length of a grid cell in pixels
const TileSize = 16

// TileType is the persisted value of a grid cell
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileBrick
	TilePlatform
	TileSpike
	TileCheckpoint
	TileFlag
	TileCoin
	TilePowerupCoffee // legacy, only appears in old level data
	TilePowerupHelmet // legacy, only appears in old level data
	TileBrickBreakable
	TilePowerupBlockCoffee
	TilePowerupBlockHelmet
	TileBlockUsed
	TileSpring
	TileIce
	TilePlatformFalling
	TileLavaTop
	TileLavaFill
	TileHiddenBlock

	tileTypeCount
)

var tileNames = [...]string{
	TileEmpty:              "Empty",
	TileGround:             "Ground",
	TileBrick:              "Brick",
	TilePlatform:           "Platform",
	TileSpike:              "Spike",
	TileCheckpoint:         "Checkpoint",
	TileFlag:               "Flag",
	TileCoin:               "Coin",
	TilePowerupCoffee:      "PowerupCoffee",
	TilePowerupHelmet:      "PowerupHelmet",
	TileBrickBreakable:     "BrickBreakable",
	TilePowerupBlockCoffee: "PowerupBlockCoffee",
	TilePowerupBlockHelmet: "PowerupBlockHelmet",
	TileBlockUsed:          "BlockUsed",
	TileSpring:             "Spring",
	TileIce:                "Ice",
	TilePlatformFalling:    "PlatformFalling",
	TileLavaTop:            "LavaTop",
	TileLavaFill:           "LavaFill",
	TileHiddenBlock:        "HiddenBlock",
}

// MaxTileType is the largest valid persisted tile value
const MaxTileType = tileTypeCount - 1

// IsValid reports whether t is inside the closed enumeration
func (t TileType) IsValid() bool {
	return t >= TileEmpty && t < tileTypeCount
}

func (t TileType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("TileType(%d)", int(t))
	}
	return tileNames[t]
}

// IsWall reports whether the tile blocks horizontal movement.
// Lava is included; callers apply the lava top offset as a dead zone.
func (t TileType) IsWall() bool {
	switch t {
	case TileGround, TileBrick, TileBrickBreakable, TileBlockUsed,
		TilePowerupBlockCoffee, TilePowerupBlockHelmet,
		TileSpring, TileIce, TileLavaTop, TileLavaFill:
		return true
	}
	return false
}

// IsFloor reports whether the tile always stops a falling body
func (t TileType) IsFloor() bool {
	return t.IsWall() && !t.IsLava()
}

// IsCeiling reports whether the tile stops a rising body
func (t TileType) IsCeiling() bool {
	return t.IsWall() || t == TileHiddenBlock
}

// IsOneWay reports whether the tile is only solid from above
func (t TileType) IsOneWay() bool {
	return t == TilePlatform || t == TilePlatformFalling
}

// IsLava reports whether the tile is part of a lava body
func (t TileType) IsLava() bool {
	return t == TileLavaTop || t == TileLavaFill
}

// IsPowerupBlock reports whether a head bump on the tile releases an item
func (t TileType) IsPowerupBlock() bool {
	return t == TilePowerupBlockCoffee || t == TilePowerupBlockHelmet
}

// IsSurface reports whether a flag can stand on the tile
func (t TileType) IsSurface() bool {
	switch t {
	case TileGround, TileBrick, TileBrickBreakable, TilePowerupBlockCoffee,
		TilePowerupBlockHelmet, TileBlockUsed, TilePlatform:
		return true
	}
	return false
}

// EmbedsItem reports whether a collectible placed on the tile is stuck inside it
func (t TileType) EmbedsItem() bool {
	return t.IsSurface() || t == TileSpike
}

// Point is a tile coordinate
type Point struct {
	Col int `yaml:"col" json:"col"`
	Row int `yaml:"row" json:"row"`
}

// Vec2 is a continuous 2D vector in pixels (or pixels per tick)
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned box in pixel space
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports a strict overlap (touching edges do not count)
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Offset returns the rect moved by (dx, dy)
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Side identifies which face of a tile was touched
type Side int

const (
	// SideTop is a head bump: the body hit the underside of the tile above it
	SideTop Side = iota
	// SideBottom is a landing on the tile below the body
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// TileHit describes the tile a resolved body touched
type TileHit struct {
	Tile TileType
	Col  int
	Row  int
	Side Side
}

// ColOf converts a world x coordinate to a grid column
func ColOf(x float64) int {
	return int(math.Floor(x / TileSize))
}

// RowOf converts a world y coordinate to a grid row
func RowOf(y float64) int {
	return int(math.Floor(y / TileSize))
}
