package state

// GameState is the campaign screen the game is showing
type GameState int

const (
	StateBoot GameState = iota
	StateMenu
	StatePlaying
	StatePaused
	StateGameOver
	StateLevelClear
	StateBossIntro
	StateEnding
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateBoot:
		return "Boot"
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateLevelClear:
		return "LevelClear"
	case StateBossIntro:
		return "BossIntro"
	case StateEnding:
		return "Ending"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the level simulation advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}

// Timed reports whether the state ends on its own after a delay
func (s GameState) Timed() bool {
	switch s {
	case StateBoot, StateGameOver, StateLevelClear, StateBossIntro:
		return true
	}
	return false
}
