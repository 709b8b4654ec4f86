// Package game hosts scenes inside the ebiten loop.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/torbware/fekagaps/internal/application/scene"
)

// Game implements ebiten.Game. It feeds the current scene a fixed wall-clock
// dt per update and makes sure the scene's OnExit runs however the game
// ends: a scene transition, the quit key or the window close button.
type Game struct {
	scene   scene.Scene
	width   int
	height  int
	dt      float64
	updates int

	windowClosing func() bool
	exited        bool
}

// New creates a Game showing initial; its OnEnter runs immediately.
// The window close button only reaches the game after
// ebiten.SetWindowClosingHandled(true).
func New(initial scene.Scene, width, height int) *Game {
	g := &Game{
		scene:         initial,
		width:         width,
		height:        height,
		dt:            1.0 / float64(ebiten.DefaultTPS),
		windowClosing: ebiten.IsWindowBeingClosed,
	}
	g.scene.OnEnter()
	return g
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	g.updates++
	if g.windowClosing() {
		return g.quit()
	}

	next, err := g.scene.Update(g.dt)
	switch {
	case errors.Is(err, scene.ErrQuit):
		return g.quit()
	case err != nil:
		return err
	case next != nil:
		g.switchTo(next)
	}
	return nil
}

func (g *Game) switchTo(next scene.Scene) {
	g.scene.OnExit()
	g.scene = next
	g.scene.OnEnter()
}

// quit gives the scene its last OnExit and stops the loop
func (g *Game) quit() error {
	if !g.exited {
		g.exited = true
		g.scene.OnExit()
	}
	return ebiten.Termination
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game; the logical screen never changes size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// SetDT sets the wall time passed to scenes per update, in seconds.
// It must match the TPS the loop runs at.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Scene returns the active scene
func (g *Game) Scene() scene.Scene {
	return g.scene
}

// Updates returns how many updates have run
func (g *Game) Updates() int {
	return g.updates
}
