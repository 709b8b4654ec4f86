package entity

// CollectibleSize is the pickup hitbox edge in pixels
const CollectibleSize = 16

// Collectible is a pickup lying in the level
type Collectible struct {
	Kind      CollectibleKind
	X, Y      float64
	VY        float64
	RestY     float64 // y where a rising item stops
	Active    bool
	Collected bool
}

// NewCollectible places a pickup on a tile
func NewCollectible(kind CollectibleKind, at Point) *Collectible {
	y := float64(at.Row * TileSize)
	return &Collectible{
		Kind:   kind,
		X:      float64(at.Col * TileSize),
		Y:      y,
		RestY:  y,
		Active: true,
	}
}

// NewRisingCollectible spawns a pickup inside a block; it rises one tile
// at rise pixels per tick and then rests on top of the block.
func NewRisingCollectible(kind CollectibleKind, block Point, rise float64) *Collectible {
	y := float64(block.Row * TileSize)
	return &Collectible{
		Kind:   kind,
		X:      float64(block.Col * TileSize),
		Y:      y,
		VY:     -rise,
		RestY:  y - TileSize,
		Active: true,
	}
}

// Update moves a rising item toward its resting height
func (c *Collectible) Update() {
	if c.VY == 0 {
		return
	}
	c.Y += c.VY
	if c.Y <= c.RestY {
		c.Y = c.RestY
		c.VY = 0
	}
}

// Rect returns the pickup hitbox
func (c *Collectible) Rect() Rect {
	return Rect{X: c.X, Y: c.Y, W: CollectibleSize, H: CollectibleSize}
}

// FlagKind distinguishes checkpoints from the level goal
type FlagKind int

const (
	FlagCheckpoint FlagKind = iota
	FlagGoal
)

func (k FlagKind) String() string {
	if k == FlagGoal {
		return "goal"
	}
	return "checkpoint"
}

// FlagState is the lifecycle of a flag
type FlagState int

const (
	FlagInactive FlagState = iota
	FlagActivating
	FlagActive
	FlagClear
)

func (s FlagState) String() string {
	switch s {
	case FlagInactive:
		return "inactive"
	case FlagActivating:
		return "activating"
	case FlagActive:
		return "active"
	case FlagClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Flag is a checkpoint or goal pole anchored to the ground
type Flag struct {
	Kind    FlagKind
	Tile    Point // surface tile the pole stands on
	Anchor  Vec2  // pole base in pixels
	Trigger Rect
	State   FlagState
	Timer   Countdown
	Enabled bool
}
