package replay

import "github.com/torbware/fekagaps/internal/application/system"

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single fixed step
type FrameInput struct {
	F  int  `json:"f"`            // Step number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	J  bool `json:"j,omitempty"`  // Jump
	JP bool `json:"jp,omitempty"` // JumpPressed
	JR bool `json:"jr,omitempty"` // JumpReleased
	Rn bool `json:"rn,omitempty"` // Run
	D  bool `json:"d,omitempty"`  // Down
	DP bool `json:"dp,omitempty"` // DownPressed
	St bool `json:"st,omitempty"` // Start
	P  bool `json:"p,omitempty"`  // Pause
}

// FrameOf packs the input of step n. Mute is not recorded; it never
// reaches the simulation.
func FrameOf(n int, in system.InputState) FrameInput {
	return FrameInput{
		F:  n,
		L:  in.Left,
		R:  in.Right,
		J:  in.Jump,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
		Rn: in.Run,
		D:  in.Down,
		DP: in.DownPressed,
		St: in.Start,
		P:  in.Pause,
	}
}

// Input unpacks the frame
func (f FrameInput) Input() system.InputState {
	return system.InputState{
		Left:         f.L,
		Right:        f.R,
		Jump:         f.J,
		JumpPressed:  f.JP,
		JumpReleased: f.JR,
		Run:          f.Rn,
		Down:         f.D,
		DownPressed:  f.DP,
		Start:        f.St,
		Pause:        f.P,
	}
}

// ReplayData contains all data needed to replay a run. The run starts at
// campaign index Level with a fresh tally.
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     int          `json:"level"`
	LevelID   string       `json:"levelId"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
