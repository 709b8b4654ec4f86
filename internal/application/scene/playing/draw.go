package playing

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{92, 148, 252, 255}
	colorMenuBG     = color.RGBA{26, 26, 46, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorPlayerHurt = color.RGBA{200, 60, 60, 255}
	colorCoffee     = color.RGBA{150, 220, 120, 255}
	colorHelmet     = color.RGBA{180, 180, 190, 255}
	colorMinion     = color.RGBA{200, 100, 100, 255}
	colorBoss       = color.RGBA{130, 60, 160, 255}
	colorBossHurt   = color.RGBA{255, 255, 255, 255}
	colorProjectile = color.RGBA{255, 140, 40, 255}
	colorCoin       = color.RGBA{255, 215, 0, 255}
	colorCoffeeCup  = color.RGBA{110, 70, 40, 255}
	colorPole       = color.RGBA{220, 220, 220, 255}
	colorFlagOff    = color.RGBA{120, 120, 120, 255}
	colorFlagOn     = color.RGBA{60, 200, 80, 255}
	colorFalling    = color.RGBA{170, 120, 200, 255}
)

var tileColors = map[entity.TileType]color.RGBA{
	entity.TileGround:             {136, 84, 40, 255},
	entity.TileBrick:              {180, 70, 40, 255},
	entity.TilePlatform:           {200, 170, 110, 255},
	entity.TileSpike:              {230, 230, 230, 255},
	entity.TileBrickBreakable:     {220, 120, 60, 255},
	entity.TilePowerupBlockCoffee: {250, 200, 40, 255},
	entity.TilePowerupBlockHelmet: {250, 200, 40, 255},
	entity.TileBlockUsed:          {120, 90, 60, 255},
	entity.TileSpring:             {60, 200, 120, 255},
	entity.TileIce:                {170, 220, 250, 255},
	entity.TileLavaTop:            {250, 90, 20, 255},
	entity.TileLavaFill:           {200, 50, 10, 255},
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawWorld renders the level as flat rectangles. camX/camY is the
// top-left of the view in world pixels.
func drawWorld(screen *ebiten.Image, s *session.Session, camX, camY float64, frame int) {
	screen.Fill(colorBG)
	drawTiles(screen, s, camX, camY)
	drawFallingPlatforms(screen, s, camX, camY)
	drawFlags(screen, s, camX, camY)
	drawCollectibles(screen, s, camX, camY)
	drawMinions(screen, s, camX, camY)
	drawBoss(screen, s, camX, camY, frame)
	drawPlayer(screen, s.Player, camX, camY, frame)
}

func drawTiles(screen *ebiten.Image, s *session.Session, camX, camY float64) {
	l := s.Level()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	c0 := max(0, entity.ColOf(camX))
	c1 := min(l.Width()-1, entity.ColOf(camX+float64(w)))
	r0 := max(0, entity.RowOf(camY))
	r1 := min(l.Height()-1, entity.RowOf(camY+float64(h)))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			tile := l.EffectiveTile(col, row)
			clr, ok := tileColors[tile]
			if !ok {
				continue
			}
			x := float64(col*entity.TileSize) - camX
			y := float64(row*entity.TileSize) - camY
			switch tile {
			case entity.TileSpike:
				fillRect(screen, x+2, y+8, entity.TileSize-4, entity.TileSize-8, clr)
			case entity.TilePlatform:
				fillRect(screen, x, y, entity.TileSize, 4, clr)
			case entity.TileLavaTop:
				off := l.LavaTopOffset(col, row)
				fillRect(screen, x, y+off, entity.TileSize, entity.TileSize-off, clr)
			default:
				fillRect(screen, x, y, entity.TileSize, entity.TileSize, clr)
			}
		}
	}
}

func drawFallingPlatforms(screen *ebiten.Image, s *session.Session, camX, camY float64) {
	for _, fp := range s.Level().FallingPlatforms() {
		x := float64(fp.Col*entity.TileSize) - camX
		y := float64(fp.Row*entity.TileSize) - camY + fp.DropOffset
		fillRect(screen, x, y, entity.TileSize, 4, colorFalling)
	}
}

func drawFlags(screen *ebiten.Image, s *session.Session, camX, camY float64) {
	for _, f := range s.Flags {
		if !f.Enabled {
			continue
		}
		x := f.Anchor.X - camX
		y := f.Anchor.Y - camY
		fillRect(screen, x-1, y-2*entity.TileSize, 2, 2*entity.TileSize, colorPole)

		clr := colorFlagOff
		if f.State != entity.FlagInactive {
			clr = colorFlagOn
		}
		fillRect(screen, x+1, y-2*entity.TileSize, 10, 7, clr)
	}
}

func drawCollectibles(screen *ebiten.Image, s *session.Session, camX, camY float64) {
	for _, c := range s.Collectibles {
		if c.Collected {
			continue
		}
		x := c.X - camX
		y := c.Y - camY
		switch c.Kind {
		case entity.CollectibleCoin:
			fillRect(screen, x+4, y+3, 8, 10, colorCoin)
		case entity.CollectibleCoffee:
			fillRect(screen, x+3, y+4, 10, 10, colorCoffeeCup)
		case entity.CollectibleHelmet:
			fillRect(screen, x+2, y+6, 12, 8, colorHelmet)
		}
	}
}

func drawMinions(screen *ebiten.Image, s *session.Session, camX, camY float64) {
	for _, m := range s.Minions {
		if !m.Active {
			continue
		}
		r := m.Rect()
		if m.Dead {
			// squashed
			fillRect(screen, r.X-camX, r.Bottom()-4-camY, r.W, 4, colorMinion)
			continue
		}
		fillRect(screen, r.X-camX, r.Y-camY, r.W, r.H, colorMinion)
	}
}

func drawBoss(screen *ebiten.Image, s *session.Session, camX, camY float64, frame int) {
	b := s.Boss
	if b == nil || !b.Active {
		return
	}
	r := b.Rect()
	clr := colorBoss
	if b.HurtTimer.Active() && frame%6 < 3 {
		clr = colorBossHurt
	}
	if b.Dead {
		// sinks while spinning; the rotation becomes a shrink
		k := math.Abs(math.Cos(b.Rotation))
		fillRect(screen, r.X-camX+r.W*(1-k)/2, r.Y-camY, r.W*k, r.H, clr)
	} else {
		fillRect(screen, r.X-camX, r.Y-camY, r.W, r.H, clr)
	}

	for _, p := range b.Projectiles {
		if !p.Active {
			continue
		}
		pr := p.Rect()
		fillRect(screen, pr.X-camX, pr.Y-camY, pr.W, pr.H, colorProjectile)
	}
}

func drawPlayer(screen *ebiten.Image, p *entity.Player, camX, camY float64, frame int) {
	if p.IsInvincible() && !p.Dead && frame%8 < 4 {
		return
	}
	r := p.Rect()
	clr := colorPlayer
	switch {
	case p.Dead:
		clr = colorPlayerHurt
	case p.HasCoffee():
		clr = colorCoffee
	}
	fillRect(screen, r.X-camX, r.Y-camY, r.W, r.H, clr)
	if p.HasHelmet {
		fillRect(screen, r.X-camX-1, r.Y-camY-2, r.W+2, 6, colorHelmet)
	}
}
