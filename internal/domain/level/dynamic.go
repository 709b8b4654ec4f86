package level

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/torbware/fekagaps/internal/domain/entity"
)

// FallingPhase is the lifecycle of a falling platform entry
type FallingPhase int

const (
	PhaseContact FallingPhase = iota
	PhaseArming
	PhaseFalling
	PhaseCooldown
)

func (p FallingPhase) String() string {
	switch p {
	case PhaseContact:
		return "contact"
	case PhaseArming:
		return "arming"
	case PhaseFalling:
		return "falling"
	case PhaseCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// solid reports whether the platform still carries weight in this phase
func (p FallingPhase) solid() bool {
	return p == PhaseContact || p == PhaseArming
}

// FallingTimings holds the falling platform durations in milliseconds
type FallingTimings struct {
	MinContact   float64 `json:"minContactMs"`
	Arm          float64 `json:"armMs"`
	Fall         float64 `json:"fallMs"`
	Respawn      float64 `json:"respawnMs"`
	FallDistance float64 `json:"fallDistance"` // pixels the sprite sinks while falling
}

// DefaultFallingTimings returns the stock falling platform timings
func DefaultFallingTimings() FallingTimings {
	return FallingTimings{
		MinContact:   150,
		Arm:          250,
		Fall:         300,
		Respawn:      1200,
		FallDistance: 12,
	}
}

type overlay struct {
	original entity.TileType
	timer    entity.Countdown
}

type fallingPlatform struct {
	phase   FallingPhase
	timer   entity.Countdown
	contact float64
}

// RemoveTileTemporarily makes a non-empty cell read as EMPTY for durationMs.
// A second call on the same cell restarts the timer.
func (l *Level) RemoveTileTemporarily(col, row int, durationMs float64) {
	if !l.inBounds(col, row) {
		return
	}
	original := l.data.Tiles[row][col]
	if original == entity.TileEmpty {
		return
	}
	l.overlays[entity.Point{Col: col, Row: row}] = &overlay{
		original: original,
		timer:    entity.NewCountdown(durationMs),
	}
}

// RegisterFallingPlatformContact records that a body stood on the cell this
// tick. It returns false when the static cell is not a falling platform.
func (l *Level) RegisterFallingPlatformContact(col, row int) bool {
	if l.StaticTile(col, row) != entity.TilePlatformFalling {
		return false
	}
	at := entity.Point{Col: col, Row: row}
	l.touched[at] = struct{}{}
	if _, ok := l.platforms[at]; !ok {
		l.platforms[at] = &fallingPlatform{phase: PhaseContact}
	}
	return true
}

// AdvanceDynamicState ages overlays and falling platforms by dtMs.
// Call it exactly once per tick, after every entity has moved.
func (l *Level) AdvanceDynamicState(dtMs float64) {
	for at, o := range l.overlays {
		if !o.timer.Active() || o.timer.Advance(dtMs) {
			delete(l.overlays, at)
		}
	}

	for at, fp := range l.platforms {
		_, touched := l.touched[at]
		switch fp.phase {
		case PhaseContact:
			if !touched {
				delete(l.platforms, at)
				continue
			}
			fp.contact += dtMs
			if fp.contact >= l.timings.MinContact {
				fp.phase = PhaseArming
				fp.timer.Set(l.timings.Arm)
			}
		case PhaseArming:
			if fp.timer.Advance(dtMs) {
				fp.phase = PhaseFalling
				fp.timer.Set(l.timings.Fall)
			}
		case PhaseFalling:
			if fp.timer.Advance(dtMs) {
				fp.phase = PhaseCooldown
				fp.timer.Set(l.timings.Respawn)
			}
		case PhaseCooldown:
			if fp.timer.Advance(dtMs) {
				delete(l.platforms, at)
			}
		}
	}

	clear(l.touched)
}

// FallingPlatformView is the render snapshot of one falling platform
type FallingPlatformView struct {
	Col, Row   int
	Phase      FallingPhase
	Remaining  float64
	Contact    float64
	DropOffset float64 // pixels the sprite has sunk
}

// FallingPlatforms lists live falling platforms sorted by position.
// Entries in cooldown are hidden.
func (l *Level) FallingPlatforms() []FallingPlatformView {
	out := make([]FallingPlatformView, 0, len(l.platforms))
	for at, fp := range l.platforms {
		if fp.phase == PhaseCooldown {
			continue
		}
		v := FallingPlatformView{
			Col:       at.Col,
			Row:       at.Row,
			Phase:     fp.phase,
			Remaining: fp.timer.Remaining,
			Contact:   fp.contact,
		}
		if fp.phase == PhaseFalling {
			v.DropOffset = l.dropOffset(l.timings.Fall - fp.timer.Remaining)
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (l *Level) dropOffset(elapsed float64) float64 {
	tw := gween.New(0, float32(l.timings.FallDistance), float32(l.timings.Fall), ease.InQuad)
	current, _ := tw.Update(float32(elapsed))
	return float64(current)
}

// TemporaryRemovals returns the cells currently hidden by an overlay
func (l *Level) TemporaryRemovals() []entity.Point {
	out := make([]entity.Point, 0, len(l.overlays))
	for at := range l.overlays {
		out = append(out, at)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
