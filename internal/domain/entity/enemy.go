package entity

// Enemy holds the state shared by every enemy kind
type Enemy struct {
	Body
	Kind   EnemyKind
	Active bool
	Dead   bool
	Death  Countdown
}

// Contact is the result of a player-versus-enemy overlap test
type Contact struct {
	Hit       bool
	FromAbove bool
}

// checkPlayerCollision tests the player box against the enemy.
// Without a previous rect, a stomp is any overlap whose bottom lies in the
// upper stompBand fraction of the enemy. With one, the player must have
// crossed the enemy's top edge while moving down.
func (e *Enemy) checkPlayerCollision(cur Rect, prev *Rect, stompBand float64) Contact {
	if !e.Active || e.Dead {
		return Contact{}
	}
	me := e.Rect()
	if !me.Intersects(cur) {
		return Contact{}
	}

	top := me.Y
	bottom := cur.Bottom()
	fromAbove := bottom < top+me.H*stompBand
	if prev != nil {
		prevBottom := prev.Bottom()
		crossed := prevBottom <= top+1 && bottom >= top-0.1
		fromAbove = crossed && bottom >= prevBottom
	}
	return Contact{Hit: true, FromAbove: fromAbove}
}

// Minion size in pixels
const (
	MinionWidth  = 16
	MinionHeight = 19
)

// Minion is the patrolling enemy
type Minion struct {
	Enemy
	Speed float64
}

// NewMinion spawns a minion standing on the given tile row, walking left
func NewMinion(at Point, speed float64) *Minion {
	return &Minion{
		Enemy: Enemy{
			Body: Body{
				X:  float64(at.Col * TileSize),
				Y:  float64(at.Row*TileSize) - MinionHeight,
				W:  MinionWidth,
				H:  MinionHeight,
				VX: -speed,
			},
			Kind:   EnemyMinion,
			Active: true,
		},
		Speed: speed,
	}
}

// CheckPlayerCollision tests the player box against the minion
func (m *Minion) CheckPlayerCollision(cur Rect, prev *Rect) Contact {
	return m.checkPlayerCollision(cur, prev, 0.4)
}

// Reverse flips the walking direction
func (m *Minion) Reverse() {
	m.FacingRight = !m.FacingRight
	if m.FacingRight {
		m.VX = m.Speed
	} else {
		m.VX = -m.Speed
	}
}

// BossAction is the behaviour the boss is currently executing
type BossAction int

const (
	BossIdle BossAction = iota
	BossWalk
	BossJump
	BossAttack
	BossCreateGap
)

func (a BossAction) String() string {
	switch a {
	case BossIdle:
		return "idle"
	case BossWalk:
		return "walk"
	case BossJump:
		return "jump"
	case BossAttack:
		return "attack"
	case BossCreateGap:
		return "create_gap"
	default:
		return "unknown"
	}
}

// Boss size and stats
const (
	BossWidth  = 32
	BossHeight = 40
	BossHealth = 3
)

// Boss is the multi-phase arena enemy
type Boss struct {
	Enemy

	Health       int
	Phase        int
	Action       BossAction
	ActionTimer  Countdown
	AttackTimer  Countdown
	HurtTimer    Countdown
	TargetX      float64
	HasSmashed   bool
	PendingDeath bool
	Rotation     float64 // death spin in radians, for rendering

	Projectiles []*Projectile

	pendingImpact *Vec2
}

// NewBoss spawns the boss standing on the given tile row
func NewBoss(at Point) *Boss {
	return &Boss{
		Enemy: Enemy{
			Body: Body{
				X: float64(at.Col * TileSize),
				Y: float64(at.Row*TileSize) - BossHeight,
				W: BossWidth,
				H: BossHeight,
			},
			Kind:   EnemyBoss,
			Active: true,
		},
		Health: BossHealth,
		Phase:  1,
		Action: BossIdle,
	}
}

// CheckPlayerCollision tests the player box against the boss
func (b *Boss) CheckPlayerCollision(cur Rect, prev *Rect) Contact {
	return b.checkPlayerCollision(cur, prev, 0.3)
}

// CheckProjectileCollision reports whether a live projectile overlaps rect
// and deactivates the first one that does.
func (b *Boss) CheckProjectileCollision(rect Rect) bool {
	for _, p := range b.Projectiles {
		if p.Active && p.Rect().Intersects(rect) {
			p.Active = false
			return true
		}
	}
	return false
}

// SetImpact records a ground slam for the orchestrator to pick up
func (b *Boss) SetImpact(at Vec2) {
	b.pendingImpact = &at
}

// ConsumeImpact returns the pending slam position once, then clears it
func (b *Boss) ConsumeImpact() (Vec2, bool) {
	if b.pendingImpact == nil {
		return Vec2{}, false
	}
	at := *b.pendingImpact
	b.pendingImpact = nil
	return at, true
}

// IsDefeated reports whether the death animation has finished
func (b *Boss) IsDefeated() bool {
	return b.Dead && !b.Death.Active()
}
