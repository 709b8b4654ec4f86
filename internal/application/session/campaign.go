package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
	"github.com/torbware/fekagaps/internal/infrastructure/storage"
)

// ScoreRecorder persists finished runs. *storage.ScoreStore satisfies it.
type ScoreRecorder interface {
	RecordRun(run storage.RunResult) (int64, error)
	SaveHighScore(score int) (bool, error)
	SaveBestTime(ms int64) (bool, error)
}

// Campaign walks the player through the level list: menus, level
// transitions, lives and the final score.
type Campaign struct {
	levels   []*entity.LevelData
	opts     Options
	rules    config.RulesConfig
	seed     int64
	recorder ScoreRecorder
	logger   *log.Logger

	state    state.GameState
	timer    entity.Countdown
	elapsed  float64
	index    int
	cleared  int
	progress Progress
	session  *Session
	runMs    float64

	events []Event
}

// NewCampaign creates a campaign in the boot screen. Level i is simulated
// with an RNG seeded from seed+i, so a seed fixes every boss fight.
// recorder may be nil.
func NewCampaign(levels []*entity.LevelData, seed int64, recorder ScoreRecorder, opts Options) *Campaign {
	if opts.Physics == nil {
		opts.Physics = config.DefaultPhysics()
	}
	if opts.Entities == nil {
		opts.Entities = config.DefaultEntities()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	c := &Campaign{
		levels:   levels,
		opts:     opts,
		rules:    opts.Entities.Rules,
		seed:     seed,
		recorder: recorder,
		logger:   opts.Logger,
		state:    state.StateBoot,
	}
	c.timer.Set(c.rules.BootMs)
	return c
}

// State returns the current screen
func (c *Campaign) State() state.GameState { return c.state }

// Session returns the level in play, nil before the first level loads
func (c *Campaign) Session() *Session { return c.session }

// Progress returns a copy of the running tally
func (c *Campaign) Progress() Progress { return c.progress }

// LevelIndex returns the index of the current level
func (c *Campaign) LevelIndex() int { return c.index }

// LevelCount returns the number of levels in the campaign
func (c *Campaign) LevelCount() int { return len(c.levels) }

// LevelsCleared returns how many levels this run has finished
func (c *Campaign) LevelsCleared() int { return c.cleared }

// Seed returns the campaign seed
func (c *Campaign) Seed() int64 { return c.seed }

// RunTimeMs returns the simulated play time of the current run
func (c *Campaign) RunTimeMs() float64 { return c.runMs }

// StateTimer returns the time left on a timed screen
func (c *Campaign) StateTimer() float64 { return c.timer.Remaining }

func (c *Campaign) emit(e Event) {
	c.events = append(c.events, e)
}

func (c *Campaign) changeState(next state.GameState) {
	prev := c.state
	c.state = next
	c.emit(StateChangedEvent{From: prev, To: next})
	c.logger.Debug("state changed", "from", prev, "to", next, "level", c.index)
}

// Update runs one fixed tick of the current screen and returns the events
// it produced, level events included.
func (c *Campaign) Update(input system.InputState) []Event {
	c.events = nil
	dt := c.opts.Physics.Physics.TickMs

	switch c.state {
	case state.StateBoot:
		if c.timer.Advance(dt) {
			c.changeState(state.StateMenu)
		}
	case state.StateMenu:
		if input.Start {
			c.StartNewGame()
		}
	case state.StatePlaying:
		c.updatePlaying(input)
	case state.StatePaused:
		if input.Pause || input.Start {
			c.changeState(state.StatePlaying)
		}
	case state.StateGameOver:
		c.timer.Advance(dt)
		if !c.timer.Active() && input.Start {
			c.changeState(state.StateMenu)
		}
	case state.StateLevelClear:
		c.session.AdvanceFlags(dt)
		if c.timer.Advance(dt) {
			c.NextLevel()
		}
	case state.StateBossIntro:
		if c.timer.Advance(dt) {
			c.changeState(state.StatePlaying)
		}
	case state.StateEnding:
		c.elapsed += dt
		if c.elapsed > c.rules.EndingMs && input.Start {
			c.changeState(state.StateMenu)
		}
	}
	return c.events
}

func (c *Campaign) updatePlaying(input system.InputState) {
	if input.Pause {
		c.changeState(state.StatePaused)
		return
	}

	c.events = append(c.events, c.session.Tick(input)...)
	c.runMs += c.opts.Physics.Physics.TickMs

	switch c.session.Outcome() {
	case OutcomeCleared:
		c.cleared++
		c.timer.Set(c.rules.LevelClearMs)
		c.changeState(state.StateLevelClear)
	case OutcomeGameOver:
		c.timer.Set(c.rules.GameOverMs)
		c.finishRun(false)
		c.changeState(state.StateGameOver)
	}
}

// ErrLevelOutOfRange is returned when a run is asked to start on a level
// the campaign does not have
var ErrLevelOutOfRange = errors.New("level index out of range")

// StartNewGame resets the tally and loads the first level
func (c *Campaign) StartNewGame() {
	if err := c.StartAt(0); err != nil {
		c.logger.Warn("cannot start a new game", "error", err)
	}
}

// StartAt resets the tally and loads level index. An index outside the
// campaign is refused and nothing changes.
func (c *Campaign) StartAt(index int) error {
	if index < 0 || index >= len(c.levels) {
		return fmt.Errorf("level %d of %d: %w", index, len(c.levels), ErrLevelOutOfRange)
	}
	c.progress = Progress{Lives: c.rules.StartingLives}
	c.cleared = 0
	c.runMs = 0
	c.index = index
	c.LoadLevel(index)
	return nil
}

// LoadLevel builds a session for level index. Past the last level the
// campaign ends.
func (c *Campaign) LoadLevel(index int) {
	if index < 0 || index >= len(c.levels) {
		c.completeGame()
		return
	}
	c.index = index

	opts := c.opts
	opts.Rand = rand.New(rand.NewSource(c.seed + int64(index)))
	c.session = New(c.levels[index], &c.progress, opts)

	c.logger.Info("level started", "index", index, "level", c.levels[index].ID, "name", c.levels[index].Name)

	if c.session.Data().BossLevel && c.session.Boss != nil {
		c.timer.Set(c.rules.BossIntroMs)
		c.changeState(state.StateBossIntro)
		return
	}
	c.changeState(state.StatePlaying)
}

// NextLevel moves on after a cleared level
func (c *Campaign) NextLevel() {
	c.LoadLevel(c.index + 1)
}

// RestartLevel reloads the current level keeping the tally. Used after the
// level files change on disk.
func (c *Campaign) RestartLevel() {
	if c.session == nil || (c.state != state.StatePlaying && c.state != state.StatePaused) {
		return
	}
	c.LoadLevel(c.index)
}

// SetLevels swaps the level list; it takes effect on the next load
func (c *Campaign) SetLevels(levels []*entity.LevelData) {
	c.levels = levels
}

func (c *Campaign) completeGame() {
	c.finishRun(true)
	c.elapsed = 0
	c.changeState(state.StateEnding)
}

// finishRun stores the run and reports any new records
func (c *Campaign) finishRun(completed bool) {
	ev := RunFinishedEvent{
		Score:     c.progress.Score,
		TimeMs:    int64(c.runMs),
		Completed: completed,
	}

	if c.recorder != nil {
		run := storage.RunResult{
			Score:         ev.Score,
			TimeMs:        ev.TimeMs,
			LevelsCleared: c.cleared,
			Completed:     completed,
			Seed:          c.seed,
		}
		if _, err := c.recorder.RecordRun(run); err != nil {
			c.logger.Warn("failed to record run", "error", err)
		}
		newHigh, err := c.recorder.SaveHighScore(ev.Score)
		if err != nil {
			c.logger.Warn("failed to save high score", "error", err)
		}
		ev.NewHighScore = newHigh
		if completed {
			newBest, err := c.recorder.SaveBestTime(ev.TimeMs)
			if err != nil {
				c.logger.Warn("failed to save best time", "error", err)
			}
			ev.NewBestTime = newBest
		}
	}

	c.emit(ev)
	c.logger.Info("run finished", "score", ev.Score, "timeMs", ev.TimeMs, "completed", completed, "cleared", c.cleared)
}
