package level

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/torbware/fekagaps/internal/domain/entity"
)

// Validation failure kinds, usable with errors.Is
var (
	ErrLevelID     = errors.New("level id is not its index")
	ErrDimensions  = errors.New("tile grid does not match declared size")
	ErrTileRange   = errors.New("tile value outside the enumeration")
	ErrOutOfBounds = errors.New("coordinate outside the grid")
)

// Validate checks a campaign of levels and returns every problem found,
// joined into one error. IDs must equal the level's index ("0", "1", ...).
func Validate(levels []*entity.LevelData) error {
	var errs []error
	for i, d := range levels {
		if d.ID != strconv.Itoa(i) {
			errs = append(errs, fmt.Errorf("level %d: expected id %q, found %q: %w", i, strconv.Itoa(i), d.ID, ErrLevelID))
		}
		if err := ValidateLevel(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateLevel checks one level: grid rectangularity, tile range, and that
// every placed marker lies on the grid.
func ValidateLevel(d *entity.LevelData) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("level %s: "+format, append([]any{d.ID}, args...)...))
	}

	if len(d.Tiles) != d.Height {
		fail("height=%d but %d rows: %w", d.Height, len(d.Tiles), ErrDimensions)
	}
	for r, row := range d.Tiles {
		if len(row) != d.Width {
			fail("width=%d but row %d has %d tiles: %w", d.Width, r, len(row), ErrDimensions)
		}
		for c, t := range row {
			if !t.IsValid() {
				fail("invalid tile %d at [%d, %d]: %w", int(t), r, c, ErrTileRange)
			}
		}
	}

	if !d.InBounds(d.PlayerSpawn) {
		fail("player spawn (%d, %d): %w", d.PlayerSpawn.Col, d.PlayerSpawn.Row, ErrOutOfBounds)
	}
	if !d.InBounds(d.Goal) {
		fail("goal (%d, %d): %w", d.Goal.Col, d.Goal.Row, ErrOutOfBounds)
	}
	for i, cp := range d.Checkpoints {
		if !d.InBounds(cp) {
			fail("checkpoint[%d] (%d, %d): %w", i, cp.Col, cp.Row, ErrOutOfBounds)
		}
	}
	for i, e := range d.Enemies {
		if !d.InBounds(e.Pos) {
			fail("enemy[%d] (%d, %d): %w", i, e.Pos.Col, e.Pos.Row, ErrOutOfBounds)
		}
	}
	for i, c := range d.Collectibles {
		if !d.InBounds(c.Pos) {
			fail("collectible[%d] (%d, %d): %w", i, c.Pos.Col, c.Pos.Row, ErrOutOfBounds)
		}
	}

	return errors.Join(errs...)
}
