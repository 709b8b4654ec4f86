// Package scene defines the Scene interface for game screens.
//
// The playing scene runs the whole campaign (menus included) because the
// campaign state machine lives in the simulation; other scenes can wrap it,
// for example a level preview.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update when the player asks to leave the game
var ErrQuit = errors.New("quit")

// Scene represents a game screen
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by dt seconds of wall time.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns ErrQuit to close the window, any other error to abort.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, and once more when the
	// game closes.
	OnExit()
}
