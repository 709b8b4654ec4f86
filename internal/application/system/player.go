package system

import (
	"math"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

// GroundPoundImpact is where a ground pound landed. X and Y are the feet
// centre in pixels; Col and Row address the tile just below the feet.
type GroundPoundImpact struct {
	X, Y     float64
	Col, Row int
}

// PlayerStep describes what happened during one player update
type PlayerStep struct {
	TileHit      *entity.TileHit
	Impact       *GroundPoundImpact
	PoundStarted bool
}

// DamageResult is the outcome of a hit on the player
type DamageResult struct {
	Damaged    bool
	HelmetUsed bool
}

// PlayerController runs the player's movement rules for one fixed tick
type PlayerController struct {
	physics  *config.PhysicsConfig
	entities *config.EntitiesConfig
	level    *level.Level
	resolver *Resolver
}

// NewPlayerController creates a controller bound to a level
func NewPlayerController(physics *config.PhysicsConfig, entities *config.EntitiesConfig, l *level.Level) *PlayerController {
	return &PlayerController{
		physics:  physics,
		entities: entities,
		level:    l,
		resolver: NewResolver(l),
	}
}

// Resolver returns the collision resolver the controller moves through
func (c *PlayerController) Resolver() *Resolver {
	return c.resolver
}

// Update advances the player by dt milliseconds
func (c *PlayerController) Update(p *entity.Player, input InputState, dt float64) PlayerStep {
	if p.Dead {
		p.Death.Advance(dt)
		return PlayerStep{}
	}

	// Snapshot for one-way crossings and contact checks
	prevRect := p.Rect()
	p.PrevRect = prevRect
	p.PrevVel = p.Vel()
	p.PrevPound = p.Pound.Phase
	prevGrounded := p.OnGround

	c.updateTimers(p, dt)

	step := PlayerStep{PoundStarted: c.handleGroundPound(p, input, dt)}

	switch p.Pound.Phase {
	case entity.PoundNone, entity.PoundFall:
		c.handleMovement(p, input)
	default:
		p.VX *= c.physics.Movement.PoundDamping
	}

	if p.Pound.Phase == entity.PoundNone {
		c.handleJump(p, input, dt)
	}

	switch p.Pound.Phase {
	case entity.PoundNone, entity.PoundFall:
		c.applyGravity(p)
	case entity.PoundWindup:
		p.VY = 0
	case entity.PoundRecovery:
		p.VX = 0
		p.VY = 0
	}

	res := c.resolver.Resolve(p.Rect(), p.Vel(), &prevRect)
	p.SetPos(res.Pos)
	p.SetVel(res.Vel)
	p.OnGround = res.Grounded
	step.TileHit = res.Hit

	if p.OnGround {
		p.Jumping = false
	}

	if p.OnGround && p.Pound.Phase == entity.PoundFall {
		p.Pound.Enter(entity.PoundRecovery, c.physics.GroundPound.RecoveryMs)
		r := p.Rect()
		step.Impact = &GroundPoundImpact{
			X:   r.CenterX(),
			Y:   r.Bottom(),
			Col: entity.ColOf(r.CenterX()),
			Row: entity.RowOf(r.Bottom() + 2),
		}
		c.updateFooting(p)
		return step
	}

	// Ground snap keeps the player glued to the floor over seams
	if !p.OnGround && prevGrounded && !p.Pound.Active() {
		snap := c.resolver.Resolve(p.Rect(), entity.Vec2{Y: 1}, &prevRect)
		if snap.Grounded && math.Abs(snap.Pos.Y-p.Y) <= c.physics.Jump.SnapDistance {
			p.Y = snap.Pos.Y
			p.OnGround = true
		}
	}

	c.updateFooting(p)

	if p.OnGround && p.Pound.Phase == entity.PoundNone && res.Hit != nil &&
		res.Hit.Side == entity.SideBottom && res.Hit.Tile == entity.TileSpring {
		p.VY = c.physics.Jump.SpringBoost
		p.Jumping = true
		p.JumpHold = c.physics.Jump.MaxHold
		p.OnGround = false
	}

	if c.level.IsInGap(p.Rect()) {
		c.Die(p)
	}

	return step
}

// updateFooting records the tile under the feet and keeps falling
// platforms informed that someone is standing on them.
func (c *PlayerController) updateFooting(p *entity.Player) {
	p.GroundTile = entity.TileEmpty
	if !p.OnGround {
		return
	}
	for i, hit := range c.resolver.Support(p.Rect()) {
		if i == 0 || hit.Tile == entity.TileIce {
			p.GroundTile = hit.Tile
		}
		if hit.Tile == entity.TilePlatformFalling {
			c.level.RegisterFallingPlatformContact(hit.Col, hit.Row)
		}
	}
}

// updateTimers updates the player's countdowns
func (c *PlayerController) updateTimers(p *entity.Player, dt float64) {
	// Coyote time
	if p.OnGround {
		p.Coyote.Set(c.physics.Jump.CoyoteTime)
	} else {
		p.Coyote.Advance(dt)
	}

	p.JumpBuffer.Advance(dt)
	p.Invincible.Advance(dt)
	p.Coffee.Advance(dt)
}

// handleGroundPound starts the dive and steps its timed phases.
// It returns true on the tick the dive starts.
func (c *PlayerController) handleGroundPound(p *entity.Player, input InputState, dt float64) bool {
	started := false
	if p.Pound.Phase == entity.PoundNone && !p.OnGround && input.DownPressed {
		p.Pound.Enter(entity.PoundWindup, c.physics.GroundPound.WindupMs)
		p.VY = 0
		p.Jumping = false
		started = true
	}

	switch p.Pound.Phase {
	case entity.PoundWindup:
		if p.Pound.Timer.Advance(dt) {
			p.Pound.Phase = entity.PoundFall
			p.VY = c.physics.GroundPound.FallSpeed
		}
	case entity.PoundRecovery:
		if p.Pound.Timer.Advance(dt) {
			p.Pound.Phase = entity.PoundNone
		}
	}

	return started
}

// handleMovement handles horizontal movement
func (c *PlayerController) handleMovement(p *entity.Player, input InputState) {
	mv := c.physics.Movement

	maxSpeed := mv.WalkSpeed
	if input.Run {
		maxSpeed = mv.RunSpeed
	}
	if p.HasCoffee() {
		maxSpeed *= mv.CoffeeMultiplier
	}

	targetVX := 0.0
	if input.Left {
		targetVX = -maxSpeed
		p.FacingRight = false
	}
	if input.Right {
		targetVX = maxSpeed
		p.FacingRight = true
	}

	if targetVX != 0 {
		accel := mv.Acceleration
		if p.Pound.Phase == entity.PoundFall {
			accel *= c.physics.GroundPound.HorizontalMult
		}
		if math.Abs(p.VX) < math.Abs(targetVX) {
			p.VX += math.Copysign(accel, targetVX)
		}
		if math.Abs(p.VX) > maxSpeed {
			p.VX = math.Copysign(maxSpeed, p.VX)
		}
		return
	}

	friction := mv.Friction
	if p.GroundTile == entity.TileIce {
		friction = mv.IceFriction
	}
	p.VX *= friction
	if math.Abs(p.VX) < mv.StopThreshold {
		p.VX = 0
	}
}

// handleJump handles buffered, coyote and variable-height jumps
func (c *PlayerController) handleJump(p *entity.Player, input InputState, dt float64) {
	jc := c.physics.Jump

	if input.JumpPressed {
		p.JumpBuffer.Set(jc.JumpBuffer)
	}

	canJump := (p.OnGround || p.Coyote.Active()) && !p.Jumping
	if p.JumpBuffer.Active() && canJump {
		p.VY = jc.Force
		p.Jumping = true
		p.OnGround = false
		p.Coyote.Stop()
		p.JumpBuffer.Stop()
		p.JumpHold = 0
	}

	// Holding the button keeps the climb going for a while
	if p.Jumping && input.Jump && p.JumpHold < jc.MaxHold {
		p.JumpHold += dt
		p.VY = math.Min(p.VY, jc.Force*jc.HoldMultiplier)
	}

	if input.JumpReleased && p.VY < 0 {
		p.VY *= jc.ReleaseMultiplier
		p.Jumping = false
	}

	if p.VY > 0 {
		p.Jumping = false
	}
}

// applyGravity applies gravity and clamps the fall speed
func (c *PlayerController) applyGravity(p *entity.Player) {
	p.VY += c.physics.Physics.Gravity

	maxFall := c.physics.Physics.MaxFallSpeed
	if p.Pound.Phase == entity.PoundFall {
		maxFall = math.Max(maxFall, c.physics.GroundPound.FallSpeed)
	}
	if p.VY > maxFall {
		p.VY = maxFall
	}
}

// TakeDamage applies a hit. A helmet absorbs it and grants a short
// invincibility; otherwise the caller is expected to kill the player.
func (c *PlayerController) TakeDamage(p *entity.Player) DamageResult {
	if p.IsInvincible() || p.Dead {
		return DamageResult{}
	}
	if p.HasHelmet {
		p.HasHelmet = false
		p.Invincible.Set(c.entities.Player.HelmetInvincibilityMs)
		return DamageResult{HelmetUsed: true}
	}
	return DamageResult{Damaged: true}
}

// Die starts the death animation
func (c *PlayerController) Die(p *entity.Player) {
	p.Dead = true
	p.Death.Set(c.entities.Player.DeathTimerMs)
	p.VX = 0
	p.VY = c.entities.Player.DeathBounce
}

// Respawn puts the player back on a tile with temporary invincibility.
// Power-ups survive a respawn.
func (c *PlayerController) Respawn(p *entity.Player, at entity.Point) {
	p.PlaceAt(at)
	p.SetVel(entity.Vec2{})
	p.Dead = false
	p.Death.Stop()
	p.OnGround = false
	p.Jumping = false
	p.Pound = entity.GroundPound{}
	p.PrevRect = p.Rect()
	p.PrevVel = entity.Vec2{}
	p.PrevPound = entity.PoundNone
	p.Invincible.Set(c.entities.Player.RespawnInvincibilityMs)
}

// Bounce launches the player after stomping an enemy
func (c *PlayerController) Bounce(p *entity.Player) {
	p.VY = c.physics.Jump.Force * c.physics.Jump.BounceMultiplier
	p.Jumping = true
}

// CollectCoffee starts the speed boost
func (c *PlayerController) CollectCoffee(p *entity.Player) {
	p.Coffee.Set(c.entities.Player.CoffeeDurationMs)
}

// CollectHelmet gives the player one free hit
func (c *PlayerController) CollectHelmet(p *entity.Player) {
	p.HasHelmet = true
}
