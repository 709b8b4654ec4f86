package playing

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
)

func createTestCampaign() *session.Campaign {
	return session.NewCampaign(
		[]*entity.LevelData{createTestLevel("0"), createTestLevel("1")}, 1, nil,
		session.Options{Logger: log.New(io.Discard)},
	)
}

func TestStatusLine(t *testing.T) {
	c := createTestCampaign()
	assert.Empty(t, StatusLine(c), "no level loaded yet")

	require.NoError(t, c.StartAt(1))

	assert.Equal(t, "SCORE 000000  COINS 00  LIVES 3  TIME 200  LEVEL 2/2", StatusLine(c))
}

func TestOverlayLines(t *testing.T) {
	c := createTestCampaign()
	assert.Equal(t, []string{"SUPER FEKA GAPS"}, OverlayLines(c, 0))

	for c.State() == state.StateBoot {
		c.Update(system.InputState{})
	}
	assert.Contains(t, OverlayLines(c, 4200), "HIGH SCORE 004200")

	c.Update(system.InputState{Start: true})
	assert.Empty(t, OverlayLines(c, 0))

	c.Update(system.InputState{Pause: true})
	assert.Equal(t, []string{"PAUSED"}, OverlayLines(c, 0))
}

func TestHUD_Banner(t *testing.T) {
	h := NewHUD(0)

	h.Banner("1UP", 100)
	h.Update(50)
	assert.Equal(t, "1UP", h.banner)

	h.Update(60)
	assert.Empty(t, h.banner)
}

func TestHUD_SetHighScore(t *testing.T) {
	h := NewHUD(500)

	h.SetHighScore(300)
	assert.Equal(t, 500, h.highScore)

	h.SetHighScore(900)
	assert.Equal(t, 900, h.highScore)
}
