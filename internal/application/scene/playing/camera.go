package playing

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/torbware/fekagaps/internal/domain/entity"
)

// Camera follows the player and applies screen shake
type Camera struct {
	X, Y float64

	screenW   float64
	screenH   float64
	shake     *gween.Tween
	magnitude float64
	elapsed   float64
}

// NewCamera creates a camera for a screen of the given size
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{screenW: float64(screenW), screenH: float64(screenH)}
}

// Follow centres the view on target, kept inside the world
func (c *Camera) Follow(target entity.Rect, worldW, worldH float64) {
	x := target.CenterX() - c.screenW/2
	y := target.CenterY() - c.screenH/2
	c.X = math.Max(0, math.Min(x, worldW-c.screenW))
	c.Y = math.Max(0, math.Min(y, worldH-c.screenH))
}

// Shake starts a shake that decays to zero over durationMs. A weaker shake
// does not cut a stronger one short.
func (c *Camera) Shake(durationMs, magnitude float64) {
	if c.shake != nil && c.magnitude > magnitude {
		return
	}
	c.shake = gween.New(float32(magnitude), 0, float32(durationMs/1000), ease.OutQuad)
	c.magnitude = magnitude
}

// Update advances the shake by dt seconds
func (c *Camera) Update(dt float64) {
	c.elapsed += dt
	if c.shake == nil {
		return
	}
	current, done := c.shake.Update(float32(dt))
	c.magnitude = float64(current)
	if done {
		c.shake = nil
		c.magnitude = 0
	}
}

// Shaking reports whether a shake is running
func (c *Camera) Shaking() bool {
	return c.shake != nil
}

// Magnitude returns the current shake amplitude in pixels
func (c *Camera) Magnitude() float64 {
	return c.magnitude
}

// Offset returns the whole-pixel view origin with the shake applied
func (c *Camera) Offset() (float64, float64) {
	x, y := c.X, c.Y
	if c.magnitude > 0 {
		x += c.magnitude * math.Sin(c.elapsed*90)
		y += c.magnitude * math.Cos(c.elapsed*70)
	}
	return math.Floor(x), math.Floor(y)
}
