package session

import (
	"github.com/torbware/fekagaps/internal/application/state"
	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
)

// Event describes something that happened during a tick. Audio, particles
// and the camera react to events; the simulation never calls back into them.
type Event interface {
	isEvent()
}

// TileHitEvent reports the first tile the player collided with
type TileHitEvent struct {
	Hit entity.TileHit
}

func (TileHitEvent) isEvent() {}

// GroundPoundStartedEvent fires when the windup begins
type GroundPoundStartedEvent struct{}

func (GroundPoundStartedEvent) isEvent() {}

// GroundPoundImpactEvent fires when a pound lands
type GroundPoundImpactEvent struct {
	Impact system.GroundPoundImpact
}

func (GroundPoundImpactEvent) isEvent() {}

// BossSmashEvent fires when the boss slams the floor open
type BossSmashEvent struct {
	At entity.Vec2
}

func (BossSmashEvent) isEvent() {}

// EnemyStompedEvent fires when an enemy is killed or hurt by the player
type EnemyStompedEvent struct {
	Kind    entity.EnemyKind
	X, Y    float64 // enemy centre
	ByPound bool
}

func (EnemyStompedEvent) isEvent() {}

// BossHitEvent fires when the boss loses health
type BossHitEvent struct {
	Health int
}

func (BossHitEvent) isEvent() {}

// PlayerDamagedEvent fires when a hit gets through to the player
type PlayerDamagedEvent struct{}

func (PlayerDamagedEvent) isEvent() {}

// HelmetLostEvent fires when the helmet absorbs a hit
type HelmetLostEvent struct {
	X, Y float64
}

func (HelmetLostEvent) isEvent() {}

// Death causes
const (
	CauseHit  = "hit"
	CauseGap  = "gap"
	CauseTime = "time"
)

// PlayerDiedEvent fires when the death animation starts
type PlayerDiedEvent struct {
	Cause string
}

func (PlayerDiedEvent) isEvent() {}

// PlayerRespawnedEvent fires after a lost life when lives remain
type PlayerRespawnedEvent struct {
	At    entity.Point
	Lives int
}

func (PlayerRespawnedEvent) isEvent() {}

// CheckpointReachedEvent fires when a checkpoint starts activating
type CheckpointReachedEvent struct {
	Tile entity.Point
}

func (CheckpointReachedEvent) isEvent() {}

// CollectedEvent fires when the player picks an item up
type CollectedEvent struct {
	Kind entity.CollectibleKind
	X, Y float64
}

func (CollectedEvent) isEvent() {}

// BlockBrokenEvent fires for every tile removed from the grid for good
type BlockBrokenEvent struct {
	Col, Row int
	Tile     entity.TileType
}

func (BlockBrokenEvent) isEvent() {}

// PowerupReleasedEvent fires when a block releases a collectible
type PowerupReleasedEvent struct {
	Kind entity.CollectibleKind
	Col  int
	Row  int
}

func (PowerupReleasedEvent) isEvent() {}

// ExtraLifeEvent fires when enough coins buy a life
type ExtraLifeEvent struct {
	Lives int
}

func (ExtraLifeEvent) isEvent() {}

// ShakeEvent asks the camera to shake
type ShakeEvent struct {
	DurationMs float64
	Magnitude  float64
}

func (ShakeEvent) isEvent() {}

// LevelClearedEvent fires once when the level is finished
type LevelClearedEvent struct {
	TimeBonus int
}

func (LevelClearedEvent) isEvent() {}

// BossDefeatPendingEvent fires when the last hit lands. The boss starts
// dying on the following tick, leaving room for a voice line.
type BossDefeatPendingEvent struct{}

func (BossDefeatPendingEvent) isEvent() {}

// GameOverEvent fires when the last life is lost
type GameOverEvent struct{}

func (GameOverEvent) isEvent() {}

// StateChangedEvent fires on every campaign screen change
type StateChangedEvent struct {
	From, To state.GameState
}

func (StateChangedEvent) isEvent() {}

// RunFinishedEvent fires when a run ends in a game over or the ending
type RunFinishedEvent struct {
	Score        int
	TimeMs       int64
	Completed    bool
	NewHighScore bool
	NewBestTime  bool
}

func (RunFinishedEvent) isEvent() {}
