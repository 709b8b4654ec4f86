package entity

// Body is the physical part shared by the player and enemies.
// Position is the top-left corner of the hitbox in pixels;
// velocity is in pixels per fixed tick.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	OnGround    bool
	FacingRight bool
}

// Rect returns the current hitbox
func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Vel returns the current velocity
func (b *Body) Vel() Vec2 {
	return Vec2{X: b.VX, Y: b.VY}
}

// SetPos moves the body without touching velocity
func (b *Body) SetPos(p Vec2) {
	b.X = p.X
	b.Y = p.Y
}

// SetVel overwrites both velocity components
func (b *Body) SetVel(v Vec2) {
	b.VX = v.X
	b.VY = v.Y
}

// Player hitbox size in pixels
const (
	PlayerWidth  = 14
	PlayerHeight = 24
)

// GroundPoundPhase is the ground pound state
type GroundPoundPhase int

const (
	PoundNone GroundPoundPhase = iota
	PoundWindup
	PoundFall
	PoundRecovery
)

func (p GroundPoundPhase) String() string {
	switch p {
	case PoundNone:
		return "None"
	case PoundWindup:
		return "Windup"
	case PoundFall:
		return "Fall"
	case PoundRecovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// GroundPound is the {phase, remaining} machine for the dive attack
type GroundPound struct {
	Phase GroundPoundPhase
	Timer Countdown
}

// Enter switches phase and restarts the timer
func (g *GroundPound) Enter(phase GroundPoundPhase, ms float64) {
	g.Phase = phase
	g.Timer.Set(ms)
}

// Active reports whether any pound phase is running
func (g GroundPound) Active() bool {
	return g.Phase != PoundNone
}

// Player represents the player entity
type Player struct {
	Body

	// Previous tick snapshot, used for one-way crossing and stomp checks
	PrevRect  Rect
	PrevVel   Vec2
	PrevPound GroundPoundPhase

	// Timers
	Coyote     Countdown
	JumpBuffer Countdown
	JumpHold   float64 // ms the jump button has been held during this jump
	Invincible Countdown
	Coffee     Countdown
	Death      Countdown

	// State
	Jumping    bool
	HasHelmet  bool
	Dead       bool
	Pound      GroundPound
	GroundTile TileType // tile under the feet after the last resolve
}

// NewPlayer creates a player standing on the given spawn tile
func NewPlayer(spawn Point) *Player {
	p := &Player{}
	p.Reset(spawn)
	return p
}

// Reset restores the spawn state; timers and power-ups are cleared
func (p *Player) Reset(spawn Point) {
	*p = Player{
		Body: Body{
			W:           PlayerWidth,
			H:           PlayerHeight,
			FacingRight: true,
		},
	}
	p.PlaceAt(spawn)
	p.PrevRect = p.Rect()
}

// PlaceAt aligns the feet with the top edge of the given tile row
func (p *Player) PlaceAt(spawn Point) {
	p.X = float64(spawn.Col * TileSize)
	p.Y = float64(spawn.Row*TileSize) - p.H
}

// IsInvincible returns true if player is currently invincible
func (p *Player) IsInvincible() bool {
	return p.Invincible.Active()
}

// HasCoffee returns true while the speed boost is running
func (p *Player) HasCoffee() bool {
	return p.Coffee.Active()
}
