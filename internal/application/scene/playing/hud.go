package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/domain/entity"
)

const (
	glyphW  = 7
	lineH   = 14
	hudPadX = 6
	hudPadY = 4
)

var (
	colorText    = color.RGBA{240, 240, 240, 255}
	colorAccent  = color.RGBA{255, 215, 0, 255}
	colorOverlay = color.RGBA{0, 0, 0, 160}
)

// HUD draws the status bar, screen overlays and short banners
type HUD struct {
	face      text.Face
	banner    string
	bannerFor entity.Countdown
	highScore int
}

// NewHUD creates a HUD using the built-in bitmap font
func NewHUD(highScore int) *HUD {
	return &HUD{
		face:      text.NewGoXFace(basicfont.Face7x13),
		highScore: highScore,
	}
}

// Banner shows msg in the middle of the screen for ms milliseconds
func (h *HUD) Banner(msg string, ms float64) {
	h.banner = msg
	h.bannerFor.Set(ms)
}

// SetHighScore updates the record shown on the menu
func (h *HUD) SetHighScore(score int) {
	h.highScore = max(h.highScore, score)
}

// Update ages the banner by dtMs
func (h *HUD) Update(dtMs float64) {
	if h.bannerFor.Advance(dtMs) {
		h.banner = ""
	}
}

// StatusLine is the text of the top bar while a level is on screen
func StatusLine(c *session.Campaign) string {
	s := c.Session()
	if s == nil {
		return ""
	}
	p := c.Progress()
	return fmt.Sprintf("SCORE %06d  COINS %02d  LIVES %d  TIME %03d  LEVEL %d/%d",
		p.Score, p.Coins, p.Lives, int(math.Ceil(s.TimeLeft())), c.LevelIndex()+1, c.LevelCount())
}

// OverlayLines returns the centred text for the current screen; empty
// while playing
func OverlayLines(c *session.Campaign, highScore int) []string {
	switch c.State() {
	case state.StateBoot:
		return []string{"SUPER FEKA GAPS"}
	case state.StateMenu:
		return []string{
			"SUPER FEKA GAPS",
			"",
			"PRESS ENTER",
			fmt.Sprintf("HIGH SCORE %06d", highScore),
		}
	case state.StatePaused:
		return []string{"PAUSED"}
	case state.StateGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("SCORE %06d", c.Progress().Score)}
		if c.StateTimer() <= 0 {
			lines = append(lines, "PRESS ENTER")
		}
		return lines
	case state.StateLevelClear:
		return []string{"LEVEL CLEAR!", fmt.Sprintf("SCORE %06d", c.Progress().Score)}
	case state.StateBossIntro:
		return []string{"BOSS FIGHT", c.Session().Data().Name}
	case state.StateEnding:
		secs := int(c.RunTimeMs() / 1000)
		return []string{
			"CONGRATULATIONS!",
			fmt.Sprintf("SCORE %06d", c.Progress().Score),
			fmt.Sprintf("TIME %d:%02d", secs/60, secs%60),
		}
	}
	return nil
}

// Draw renders the bar, the overlay of the current screen and the banner
func (h *HUD) Draw(screen *ebiten.Image, c *session.Campaign) {
	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()

	if line := StatusLine(c); line != "" && c.State() != state.StateMenu {
		vector.FillRect(screen, 0, 0, float32(w), lineH+hudPadY, colorOverlay, false)
		h.drawText(screen, line, hudPadX, hudPadY, colorText)
	}

	if lines := OverlayLines(c, h.highScore); len(lines) > 0 {
		if c.State() != state.StateBoot && c.State() != state.StateMenu {
			vector.FillRect(screen, 0, 0, float32(w), float32(hgt), colorOverlay, false)
		}
		y := hgt/2 - len(lines)*lineH/2
		for i, l := range lines {
			clr := colorText
			if i == 0 {
				clr = colorAccent
			}
			h.drawCentered(screen, l, y+i*lineH, w, clr)
		}
	}

	if h.banner != "" {
		h.drawCentered(screen, h.banner, hgt/3, w, colorAccent)
	}
}

func (h *HUD) drawCentered(screen *ebiten.Image, s string, y, screenW int, clr color.Color) {
	h.drawText(screen, s, (screenW-len(s)*glyphW)/2, y, clr)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}
