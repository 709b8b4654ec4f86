package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the input sampled once per fixed step
type InputState struct {
	Left         bool
	Right        bool
	Jump         bool
	JumpPressed  bool
	JumpReleased bool
	Run          bool
	Down         bool
	DownPressed  bool
	Start        bool
	Pause        bool
	Mute         bool
}

// Merge folds edge-triggered presses from a later sample into s, so that a
// press seen on a frame without a fixed step is not lost.
func (s InputState) Merge(next InputState) InputState {
	next.JumpPressed = next.JumpPressed || s.JumpPressed
	next.JumpReleased = next.JumpReleased || s.JumpReleased
	next.DownPressed = next.DownPressed || s.DownPressed
	next.Start = next.Start || s.Start
	next.Pause = next.Pause || s.Pause
	next.Mute = next.Mute || s.Mute
	return next
}

// Edges returns the state with every one-shot press cleared
func (s InputState) Edges() InputState {
	s.JumpPressed = false
	s.JumpReleased = false
	s.DownPressed = false
	s.Start = false
	s.Pause = false
	s.Mute = false
	return s
}

// KeyBindings maps game actions to keyboard keys
type KeyBindings struct {
	Left  []ebiten.Key
	Right []ebiten.Key
	Jump  []ebiten.Key
	Run   []ebiten.Key
	Down  []ebiten.Key
	Start []ebiten.Key
	Pause []ebiten.Key
	Mute  []ebiten.Key
}

// DefaultKeyBindings returns arrows/WASD movement with Z/Space to jump
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Left:  []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Jump:  []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
		Run:   []ebiten.Key{ebiten.KeyX, ebiten.KeyShiftLeft},
		Down:  []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Start: []ebiten.Key{ebiten.KeyEnter},
		Pause: []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape},
		Mute:  []ebiten.Key{ebiten.KeyM},
	}
}

// InputSystem reads the keyboard
type InputSystem struct {
	keys KeyBindings
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyBindings) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:         anyPressed(s.keys.Left),
		Right:        anyPressed(s.keys.Right),
		Jump:         anyPressed(s.keys.Jump),
		JumpPressed:  anyJustPressed(s.keys.Jump),
		JumpReleased: anyJustReleased(s.keys.Jump),
		Run:          anyPressed(s.keys.Run),
		Down:         anyPressed(s.keys.Down),
		DownPressed:  anyJustPressed(s.keys.Down),
		Start:        anyJustPressed(s.keys.Start),
		Pause:        anyJustPressed(s.keys.Pause),
		Mute:         anyJustPressed(s.keys.Mute),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}
