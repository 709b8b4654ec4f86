package entity

// Projectile size in pixels
const ProjectileSize = 8

// Projectile is a straight-flying enemy shot
type Projectile struct {
	X, Y   float64
	VX, VY float64
	Active bool
	Damage int
}

// NewProjectile creates a shot whose top-left corner is at (x, y)
func NewProjectile(x, y, vx float64) *Projectile {
	return &Projectile{
		X:      x,
		Y:      y,
		VX:     vx,
		Active: true,
		Damage: 1,
	}
}

// Update advances the projectile by one tick
func (p *Projectile) Update() {
	p.X += p.VX
	p.Y += p.VY
}

// Rect returns the projectile hitbox
func (p *Projectile) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: ProjectileSize, H: ProjectileSize}
}
