package system

import (
	"math"
	"math/rand"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

// Action durations in milliseconds
const (
	bossAttackMs = 1500
	bossWalkMs   = 2000
	bossJumpMs   = 800
	bossGapMs    = 2000
	bossIdleMs   = 500

	// create_gap runs windup above gapWindupUntil, smashes above
	// gapSmashUntil and recovers for the rest of the action.
	gapWindupUntil = 1500
	gapSmashUntil  = 1200

	bossJumpForce    = -8
	bossKnockbackX   = 3
	bossKnockbackY   = -6
	bossDeathBounce  = -6
	bossSpinRate     = 0.005
	bossAttackPerPhs = 100
)

// BossDamage is the outcome of a hit on the boss
type BossDamage struct {
	Damaged  bool
	Defeated bool
}

// BossStep describes what the boss did to the level during one update
type BossStep struct {
	Broken []entity.Point
	Fired  bool
}

// BossController runs the boss behaviour. Decisions draw from rng so a
// seeded session replays the same fight.
type BossController struct {
	physics  *config.PhysicsConfig
	cfg      config.BossConfig
	level    *level.Level
	resolver *Resolver
	rng      *rand.Rand
}

// NewBossController creates a controller bound to a level
func NewBossController(physics *config.PhysicsConfig, cfg config.BossConfig, l *level.Level, rng *rand.Rand) *BossController {
	return &BossController{
		physics:  physics,
		cfg:      cfg,
		level:    l,
		resolver: NewResolver(l),
		rng:      rng,
	}
}

// Spawn creates the boss standing on the given tile
func (c *BossController) Spawn(at entity.Point) *entity.Boss {
	b := entity.NewBoss(at)
	b.W = c.cfg.Width
	b.H = c.cfg.Height
	b.Y = float64(at.Row*entity.TileSize) - b.H
	b.Health = c.cfg.Health
	return b
}

// Update advances the boss by dt milliseconds. playerX is the player's
// left edge, as the boss aims at it.
func (c *BossController) Update(b *entity.Boss, playerX, dt float64) BossStep {
	var step BossStep
	if !b.Active {
		return step
	}

	if b.Dead {
		c.updateDeath(b, dt)
		return step
	}

	b.AttackTimer.Advance(dt)
	b.HurtTimer.Advance(dt)

	b.ActionTimer.Advance(dt)
	if !b.ActionTimer.Active() {
		c.chooseNextAction(b, playerX)
	}

	step.Fired = c.executeAction(b, playerX)

	b.VY += c.physics.Physics.Gravity * c.cfg.GravityMult
	if b.VY > c.physics.Physics.MaxFallSpeed {
		b.VY = c.physics.Physics.MaxFallSpeed
	}

	prev := b.Rect()
	res := c.resolver.Resolve(prev, b.Vel(), &prev)
	b.SetPos(res.Pos)
	b.VY = res.Vel.Y
	b.OnGround = res.Grounded

	// A head bump breaks bricks across the whole body
	if res.Hit != nil && res.Hit.Side == entity.SideTop {
		left := entity.ColOf(prev.X)
		right := entity.ColOf(prev.Right() - 1)
		for col := left; col <= right; col++ {
			if c.level.BreakTile(col, res.Hit.Row, false).Broken {
				step.Broken = append(step.Broken, entity.Point{Col: col, Row: res.Hit.Row})
			}
		}
	}

	if b.X < c.cfg.ArenaMinX {
		b.X = c.cfg.ArenaMinX
		b.VX = math.Abs(b.VX)
	}
	if b.X > c.cfg.ArenaMaxX {
		b.X = c.cfg.ArenaMaxX
		b.VX = -math.Abs(b.VX)
	}

	c.updateProjectiles(b)

	b.FacingRight = playerX > b.X+b.W/2
	return step
}

// updateDeath spins the body and lets it fall out of the arena
func (c *BossController) updateDeath(b *entity.Boss, dt float64) {
	if b.Rotation < math.Pi/2 {
		b.Rotation = math.Min(math.Pi/2, b.Rotation+dt*bossSpinRate)
	}
	b.VY += c.physics.Physics.Gravity
	b.X += b.VX
	b.Y += b.VY
	if b.Death.Advance(dt) {
		b.Active = false
	}
}

func (c *BossController) chooseNextAction(b *entity.Boss, playerX float64) {
	r := c.rng.Float64()
	dist := math.Abs(playerX - b.X)

	switch {
	case dist < c.cfg.AttackRange && r < 0.4:
		b.Action = entity.BossAttack
		b.ActionTimer.Set(bossAttackMs)
	case r < 0.5:
		b.Action = entity.BossWalk
		b.ActionTimer.Set(bossWalkMs)
		b.TargetX = playerX
	case r < 0.7 && b.OnGround:
		b.Action = entity.BossJump
		b.ActionTimer.Set(bossJumpMs)
	case r < 0.85 && b.Phase >= 2:
		b.Action = entity.BossCreateGap
		b.ActionTimer.Set(bossGapMs)
	default:
		b.Action = entity.BossIdle
		b.ActionTimer.Set(bossIdleMs)
	}
}

// executeAction applies the current action and reports whether a
// projectile was fired.
func (c *BossController) executeAction(b *entity.Boss, playerX float64) bool {
	switch b.Action {
	case entity.BossIdle:
		b.VX *= 0.9

	case entity.BossWalk:
		dir := -1.0
		if b.TargetX > b.X {
			dir = 1
		}
		b.VX = dir * c.cfg.Speed * (1 + float64(b.Phase)*0.2)

	case entity.BossJump:
		if b.OnGround {
			b.VY = bossJumpForce
		}

	case entity.BossAttack:
		b.VX *= 0.5
		if !b.AttackTimer.Active() {
			c.fireProjectile(b, playerX)
			b.AttackTimer.Set(c.cfg.AttackCooldownMs - float64(b.Phase)*bossAttackPerPhs)
			return true
		}

	case entity.BossCreateGap:
		b.VX = 0
		switch remaining := b.ActionTimer.Remaining; {
		case remaining > gapWindupUntil:
			b.HasSmashed = false
		case remaining > gapSmashUntil && !b.HasSmashed:
			c.smash(b, playerX)
		}
	}
	return false
}

// smash opens a three tile gap in the arena floor under the player
func (c *BossController) smash(b *entity.Boss, playerX float64) {
	gapCol := entity.ColOf(playerX)
	for i := -1; i <= 1; i++ {
		c.level.RemoveTileTemporarily(gapCol+i, c.cfg.GapRow, c.cfg.GapDurationMs)
	}
	b.HasSmashed = true
	b.SetImpact(entity.Vec2{
		X: float64(gapCol*entity.TileSize + entity.TileSize/2),
		Y: float64(c.cfg.GapRow * entity.TileSize),
	})
}

func (c *BossController) fireProjectile(b *entity.Boss, playerX float64) {
	dir := -1.0
	if playerX > b.X {
		dir = 1
	}
	r := b.Rect()
	b.Projectiles = append(b.Projectiles, entity.NewProjectile(r.CenterX(), r.CenterY(), dir*c.cfg.ProjectileSpeed))
}

// updateProjectiles moves projectiles and drops spent or escaped ones
func (c *BossController) updateProjectiles(b *entity.Boss) {
	width := c.level.PixelWidth()
	kept := b.Projectiles[:0]
	for _, p := range b.Projectiles {
		if !p.Active {
			continue
		}
		p.Update()
		if p.X < 0 || p.X > width {
			continue
		}
		kept = append(kept, p)
	}
	b.Projectiles = kept
}

// TakeDamage applies one hit. Hits inside the hurt window are ignored.
// The last hit leaves the boss pending death with its actions frozen until
// Die is called.
func (c *BossController) TakeDamage(b *entity.Boss) BossDamage {
	if b.Health <= 0 || b.Dead || b.HurtTimer.Active() {
		return BossDamage{}
	}

	b.HurtTimer.Set(c.cfg.HurtMs)
	b.Health--

	b.VY = bossKnockbackY
	b.VX = bossKnockbackX
	if c.rng.Float64() <= 0.5 {
		b.VX = -bossKnockbackX
	}

	b.Phase = min(3, 4-b.Health)

	if b.Health <= 0 {
		b.PendingDeath = true
		b.HurtTimer.Set(c.cfg.HurtMs)
		b.ActionTimer.Set(math.MaxFloat64)
		b.Action = entity.BossIdle
		return BossDamage{Damaged: true, Defeated: true}
	}
	return BossDamage{Damaged: true}
}

// Die starts the death animation
func (c *BossController) Die(b *entity.Boss) {
	b.Dead = true
	b.PendingDeath = false
	b.Death.Set(c.cfg.DeathMs)
	b.SetVel(entity.Vec2{Y: bossDeathBounce})
	b.Projectiles = nil
	b.Rotation = 0
}
