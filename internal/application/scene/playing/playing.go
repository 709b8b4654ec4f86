// Package playing provides the scene that runs the campaign: menus, levels
// and the screens between them.
package playing

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/torbware/fekagaps/internal/application/replay"
	"github.com/torbware/fekagaps/internal/application/scene"
	"github.com/torbware/fekagaps/internal/application/session"
	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
	"github.com/torbware/fekagaps/internal/infrastructure/storage"
)

const bannerMs = 1200

// InputSource samples the controls once per frame.
// *system.InputSystem is the keyboard implementation.
type InputSource interface {
	GetInput() system.InputState
}

// SettingsSaver persists player preferences
type SettingsSaver interface {
	Save(settings storage.Settings) error
}

// Options configures the playing scene. Campaign, Physics and Input are
// required.
type Options struct {
	Campaign  *session.Campaign
	Physics   *config.PhysicsConfig
	Input     InputSource
	Logger    *log.Logger
	Settings  SettingsSaver
	Prefs     storage.Settings
	HighScore int
	RecordDir string                     // empty disables recording
	Reload    <-chan []*entity.LevelData // edited levels from the watcher
}

// Playing is the main gameplay scene
type Playing struct {
	campaign *session.Campaign
	input    InputSource
	stepper  *session.Stepper
	camera   *Camera
	hud      *HUD
	logger   *log.Logger

	settings SettingsSaver
	prefs    storage.Settings

	recordDir string
	recorder  *replay.Recorder
	reload    <-chan []*entity.LevelData

	pending system.InputState
	screenW int
	screenH int
	frame   int
}

// New creates a new Playing scene
func New(opts Options) *Playing {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	phys := opts.Physics.Physics
	display := opts.Physics.Display

	return &Playing{
		campaign:  opts.Campaign,
		input:     opts.Input,
		stepper:   session.NewStepper(phys.TickMs, phys.MaxSteps),
		camera:    NewCamera(display.ScreenWidth, display.ScreenHeight),
		hud:       NewHUD(opts.HighScore),
		logger:    logger,
		settings:  opts.Settings,
		prefs:     opts.Prefs,
		recordDir: opts.RecordDir,
		reload:    opts.Reload,
		screenW:   display.ScreenWidth,
		screenH:   display.ScreenHeight,
	}
}

// Start skips the menu and begins a run at level index
func (p *Playing) Start(index int) error {
	if err := p.campaign.StartAt(index); err != nil {
		return err
	}
	p.startRecording()
	return nil
}

// Update samples input once and runs as many fixed steps as the elapsed
// time allows (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.frame++
	p.pollReload()

	in := p.input.GetInput()
	if in.Mute {
		p.prefs.Muted = !p.prefs.Muted
		p.saveSettings()
	}
	if in.Pause && p.campaign.State() == state.StateMenu {
		return nil, scene.ErrQuit
	}

	p.pending = p.pending.Merge(in)
	steps := p.stepper.Advance(dt * 1000)
	for i := 0; i < steps; i++ {
		p.step(p.pending)
		p.pending = p.pending.Edges()
	}

	if s := p.campaign.Session(); s != nil {
		l := s.Level()
		p.camera.Follow(s.Player.Rect(), l.PixelWidth(), l.PixelHeight())
	}
	p.camera.Update(dt)
	p.hud.Update(dt * 1000)

	return nil, nil
}

// step runs one fixed tick of the campaign
func (p *Playing) step(in system.InputState) {
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	for _, e := range p.campaign.Update(in) {
		p.handleEvent(e)
	}
}

func (p *Playing) handleEvent(e session.Event) {
	switch ev := e.(type) {
	case session.ShakeEvent:
		p.camera.Shake(ev.DurationMs, ev.Magnitude)
	case session.ExtraLifeEvent:
		p.hud.Banner("1UP", bannerMs)
	case session.CheckpointReachedEvent:
		p.hud.Banner("CHECKPOINT", bannerMs)
	case session.HelmetLostEvent:
		p.hud.Banner("HELMET LOST", bannerMs)
	case session.LevelClearedEvent:
		p.prefs.LastLevel = max(p.prefs.LastLevel, p.campaign.LevelIndex()+1)
		p.saveSettings()
	case session.StateChangedEvent:
		if ev.From == state.StateMenu {
			p.startRecording()
		}
	case session.RunFinishedEvent:
		if ev.NewHighScore {
			p.hud.SetHighScore(ev.Score)
			p.hud.Banner("NEW HIGH SCORE", 3*bannerMs)
		}
		p.finishRecording()
	case session.PlayerDiedEvent:
		p.logger.Debug("player died", "cause", ev.Cause, "lives", p.campaign.Progress().Lives)
	}
}

// pollReload swaps in edited levels without blocking
func (p *Playing) pollReload() {
	if p.reload == nil {
		return
	}
	select {
	case levels, ok := <-p.reload:
		if !ok {
			p.reload = nil
			return
		}
		p.campaign.SetLevels(levels)
		p.campaign.RestartLevel()
		if p.recorder != nil {
			// the run no longer matches any level set on disk
			p.recorder.Stop()
			p.recorder = nil
		}
		p.logger.Info("levels reloaded", "count", len(levels), "level", p.campaign.LevelIndex())
	default:
	}
}

func (p *Playing) startRecording() {
	if p.recordDir == "" {
		return
	}
	id := ""
	if s := p.campaign.Session(); s != nil {
		id = s.Data().ID
	}
	p.recorder = replay.NewRecorder(p.campaign.Seed(), p.campaign.LevelIndex(), id)
	p.logger.Debug("recording started", "seed", p.campaign.Seed(), "level", id)
}

// finishRecording saves the current recording, if any
func (p *Playing) finishRecording() {
	if p.recorder == nil {
		return
	}
	rec := p.recorder
	p.recorder = nil
	rec.Stop()

	filename := filepath.Join(p.recordDir, replay.GenerateFilename())
	if err := rec.Save(filename); err != nil {
		p.logger.Warn("failed to save recording", "error", err)
		return
	}
	p.logger.Info("recording saved", "file", filename, "frames", rec.FrameCount())
}

func (p *Playing) saveSettings() {
	if p.settings == nil {
		return
	}
	if err := p.settings.Save(p.prefs); err != nil {
		p.logger.Warn("failed to save settings", "error", err)
	}
}

// Prefs returns the current player preferences
func (p *Playing) Prefs() storage.Settings {
	return p.prefs
}

// Draw renders the world, then the HUD (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	s := p.campaign.Session()
	switch {
	case s == nil, p.campaign.State() == state.StateBoot, p.campaign.State() == state.StateMenu:
		screen.Fill(colorMenuBG)
	default:
		camX, camY := p.camera.Offset()
		drawWorld(screen, s, camX, camY, p.frame)
	}
	p.hud.Draw(screen, p.campaign)
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	p.stepper.Reset()
}

// OnExit saves what is pending (implements scene.Scene)
func (p *Playing) OnExit() {
	p.finishRecording()
	p.saveSettings()
}

// Layout returns the logical screen size
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
