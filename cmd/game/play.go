package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/application/game"
	"github.com/torbware/fekagaps/internal/application/scene/playing"
	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/storage"
	"github.com/torbware/fekagaps/internal/infrastructure/watch"
)

var (
	flagLevel     int
	flagContinue  bool
	flagWatch     bool
	flagRecordDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Open the game window at the title screen.

With --level the menu is skipped and the run starts at that level.
With --continue the run starts at the furthest level reached before.
With --record every run is saved as a replay file in the given directory.
With --watch (needs --config) edited level files are reloaded live.

Examples:
  fekagaps play
  fekagaps play --level 2
  fekagaps play --record replays --seed 42
  fekagaps play --config ./configs --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly at this level index")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Start at the furthest level reached")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload edited level files (needs --config)")
	playCmd.Flags().StringVar(&flagRecordDir, "record", "", "Directory to save replays to")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	if flagWatch && flagConfig == "" {
		return errors.New("--watch needs --config pointing at a config directory")
	}

	loader, err := openLoader()
	if err != nil {
		return err
	}
	cfg, levels, err := loadGame(loader)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Scores are optional; a broken database must not stop the game.
	var recorder session.ScoreRecorder
	highScore := 0
	if store, err := storage.Open(flagDBPath); err != nil {
		logger.Warn("scores disabled", "error", err)
	} else {
		defer store.Close()
		recorder = store
		if highScore, err = store.HighScore(); err != nil {
			logger.Warn("failed to read high score", "error", err)
		}
	}

	display := cfg.Physics.Display
	prefs := storage.Settings{Scale: display.Scale}
	var saver playing.SettingsSaver
	if settings, err := storage.OpenSettings(appName); err != nil {
		logger.Warn("settings disabled", "error", err)
	} else {
		if prefs, err = settings.Load(prefs); err != nil {
			logger.Warn("failed to load settings", "error", err)
		}
		saver = settings
	}

	var reload chan []*entity.LevelData
	if flagWatch {
		dir := filepath.Join(flagConfig, "levels")
		w, err := watch.New([]string{".yaml", ".yml"}, watch.DefaultDebounce, dir)
		if err != nil {
			return fmt.Errorf("failed to watch levels: %w", err)
		}
		defer w.Close()

		reload = make(chan []*entity.LevelData, 1)
		go forwardReloads(w, loader, cfg.Entities.Rules.LevelTimeSeconds, reload, logger)
		logger.Info("watching levels", "dir", dir)
	}

	campaign := session.NewCampaign(levels, seed, recorder, session.Options{
		Physics:  cfg.Physics,
		Entities: cfg.Entities,
		Logger:   logger,
	})

	scene := playing.New(playing.Options{
		Campaign:  campaign,
		Physics:   cfg.Physics,
		Input:     system.NewInputSystem(system.DefaultKeyBindings()),
		Logger:    logger,
		Settings:  saver,
		Prefs:     prefs,
		HighScore: highScore,
		RecordDir: flagRecordDir,
		Reload:    reload,
	})

	switch {
	case cmd.Flags().Changed("level"):
		err = scene.Start(flagLevel)
	case flagContinue:
		err = scene.Start(min(prefs.LastLevel, len(levels)-1))
	}
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	scale := prefs.Scale
	if scale <= 0 {
		scale = display.Scale
	}
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("Super Feka Gaps")
	ebiten.SetTPS(display.Framerate)
	ebiten.SetFullscreen(prefs.Fullscreen)
	ebiten.SetWindowClosingHandled(true)

	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(1.0 / float64(display.Framerate))

	logger.Debug("starting", "seed", seed, "levels", len(levels), "highScore", highScore)
	return ebiten.RunGame(g)
}
