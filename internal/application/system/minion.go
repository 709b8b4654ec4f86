package system

import (
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

// MinionController walks minions back and forth between walls and ledges
type MinionController struct {
	physics  *config.PhysicsConfig
	cfg      config.MinionConfig
	level    *level.Level
	resolver *Resolver
}

// NewMinionController creates a controller bound to a level
func NewMinionController(physics *config.PhysicsConfig, cfg config.MinionConfig, l *level.Level) *MinionController {
	return &MinionController{
		physics:  physics,
		cfg:      cfg,
		level:    l,
		resolver: NewResolver(l),
	}
}

// Spawn creates a minion standing on the given tile
func (c *MinionController) Spawn(at entity.Point) *entity.Minion {
	m := entity.NewMinion(at, c.cfg.Speed)
	m.W = c.cfg.Width
	m.H = c.cfg.Height
	m.Y = float64(at.Row*entity.TileSize) - m.H
	return m
}

// Update advances a minion by dt milliseconds
func (c *MinionController) Update(m *entity.Minion, dt float64) {
	if !m.Active {
		return
	}

	if m.Dead {
		if m.Death.Advance(dt) {
			m.Active = false
		}
		return
	}

	m.VY += c.physics.Physics.Gravity * c.cfg.GravityMult
	if m.VY > c.physics.Physics.MaxFallSpeed {
		m.VY = c.physics.Physics.MaxFallSpeed
	}

	// Walk freely, then settle vertically from the new x
	m.X += m.VX
	res := c.resolver.Resolve(m.Rect(), entity.Vec2{Y: m.VY}, nil)
	m.Y = res.Pos.Y
	m.VY = res.Vel.Y
	m.OnGround = res.Grounded

	c.checkWalls(m)

	if c.level.IsInGap(m.Rect()) {
		m.Active = false
	}
}

// checkWalls turns the minion around at walls and ledges
func (c *MinionController) checkWalls(m *entity.Minion) {
	probeX := m.X - c.cfg.WallProbe
	if m.FacingRight {
		probeX = m.X + m.W + c.cfg.WallProbe
	}

	if c.wallAt(probeX, m.Y+m.H/2) {
		m.Reverse()
	}

	// The ledge probe keeps the original probe x even after a turn
	ground := c.level.TileAt(probeX, m.Y+m.H+c.cfg.LedgeProbe)
	if ground == entity.TileEmpty && m.VY == 0 {
		m.Reverse()
	}
}

// wallAt reports whether the point is inside a wall tile. The strip above
// a lava surface is open.
func (c *MinionController) wallAt(x, y float64) bool {
	tile := c.level.TileAt(x, y)
	if !tile.IsWall() {
		return false
	}
	if tile.IsLava() {
		return y >= c.level.LavaTop(entity.ColOf(x), entity.RowOf(y))
	}
	return true
}

// Stomp kills the minion; it stays flattened for a moment, then disappears
func (c *MinionController) Stomp(m *entity.Minion) {
	m.Dead = true
	m.Death.Set(c.cfg.DeathMs)
	m.SetVel(entity.Vec2{})
}

