package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/torbware/fekagaps/internal/application/system"
)

// LoadReplay reads and checks a replay file
func LoadReplay(filename string) (*ReplayData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	var data ReplayData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if err := data.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &data, nil
}

// check rejects other versions and hand-edited files whose steps are out
// of order, which would replay differently from how they were recorded.
func (d *ReplayData) check() error {
	if d.Version != Version {
		return fmt.Errorf("unsupported replay version %q (want %q)", d.Version, Version)
	}
	if d.Level < 0 {
		return fmt.Errorf("negative start level %d", d.Level)
	}
	for i, f := range d.Frames {
		if f.F != i {
			return fmt.Errorf("step %d is numbered %d", i, f.F)
		}
	}
	return nil
}

// Replayer feeds recorded steps back one at a time
type Replayer struct {
	frames []FrameInput
	pos    int
}

// NewReplayer starts at the first recorded step
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{frames: data.Frames}
}

// Next returns the input of the next step; ok is false once every step has
// been played.
func (r *Replayer) Next() (in system.InputState, ok bool) {
	if r.pos >= len(r.frames) {
		return system.InputState{}, false
	}
	in = r.frames[r.pos].Input()
	r.pos++
	return in, true
}

// Position is the number of steps played so far
func (r *Replayer) Position() int { return r.pos }

// Len is the number of recorded steps
func (r *Replayer) Len() int { return len(r.frames) }

// Rewind goes back to the first step
func (r *Replayer) Rewind() { r.pos = 0 }

// CreateTestReplayData builds a recording in which every step holds in
func CreateTestReplayData(frames int, in system.InputState) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		LevelID:   "0",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i] = FrameOf(i, in)
	}
	return data
}
