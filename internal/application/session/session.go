// Package session runs one level of play on a fixed tick and reports what
// happened as events.
package session

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

const (
	checkpointShakeMs  = 80
	checkpointShakeMag = 1

	// Boss stomp response
	bossStompRecoilY      = -4
	bossStompInvincibleMs = 300

	// Pound impact reach on enemies, measured between centres
	minionPoundMaxDY = 2 * entity.TileSize
	bossPoundReach   = 1.5
	bossPoundMaxDY   = 3 * entity.TileSize
)

// Outcome is how the level currently stands
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCleared
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCleared:
		return "cleared"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Progress is the campaign tally a session adds to
type Progress struct {
	Score int
	Lives int
	Coins int
}

// Options carries the collaborators of a session
type Options struct {
	Physics  *config.PhysicsConfig
	Entities *config.EntitiesConfig
	Rand     *rand.Rand
	Logger   *log.Logger
}

// Session is one level in play
type Session struct {
	physics  *config.PhysicsConfig
	entities *config.EntitiesConfig
	logger   *log.Logger

	data  *entity.LevelData
	level *level.Level

	players *system.PlayerController
	minions *system.MinionController
	bosses  *system.BossController

	Player       *entity.Player
	Minions      []*entity.Minion
	Boss         *entity.Boss
	Collectibles []*entity.Collectible
	Flags        []*entity.Flag

	pickups          *pickupSpace
	progress         *Progress
	timeLeft         float64
	deathTimer       entity.Countdown
	activeCheckpoint *entity.Point
	outcome          Outcome
	ticks            int

	events  []Event
	damaged map[*entity.Enemy]bool
}

// New builds a session over a copy of data. Marker tiles are converted into
// flags and collectibles first.
func New(data *entity.LevelData, progress *Progress, opts Options) *Session {
	if opts.Physics == nil {
		opts.Physics = config.DefaultPhysics()
	}
	if opts.Entities == nil {
		opts.Entities = config.DefaultEntities()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	d := system.NormalizeLevelData(data)
	fp := opts.Physics.FallingPlatform
	l := level.NewWithTimings(d, level.FallingTimings{
		MinContact:   fp.MinContactMs,
		Arm:          fp.ArmMs,
		Fall:         fp.FallMs,
		Respawn:      fp.RespawnMs,
		FallDistance: fp.FallDistance,
	})

	bossCfg := opts.Entities.Boss
	if limit := l.PixelWidth() - bossCfg.Width; bossCfg.ArenaMaxX <= 0 || bossCfg.ArenaMaxX > limit {
		bossCfg.ArenaMaxX = limit
	}

	s := &Session{
		physics:  opts.Physics,
		entities: opts.Entities,
		logger:   opts.Logger,
		data:     l.Data(),
		level:    l,
		players:  system.NewPlayerController(opts.Physics, opts.Entities, l),
		minions:  system.NewMinionController(opts.Physics, opts.Entities.Minion, l),
		bosses:   system.NewBossController(opts.Physics, bossCfg, l, opts.Rand),
		progress: progress,
		timeLeft: d.TimeLimit,
		damaged:  make(map[*entity.Enemy]bool),
	}

	s.Player = entity.NewPlayer(d.PlayerSpawn)
	s.pickups = newPickupSpace(l.PixelWidth(), l.PixelHeight(), s.Player.Rect())

	for _, e := range d.Enemies {
		switch e.Kind {
		case entity.EnemyMinion:
			s.Minions = append(s.Minions, s.minions.Spawn(e.Pos))
		case entity.EnemyBoss:
			s.Boss = s.bosses.Spawn(e.Pos)
		}
	}

	for _, c := range system.ValidateCollectibles(d, s.logger) {
		s.addCollectible(entity.NewCollectible(c.Kind, c.Pos))
	}

	s.Flags = system.BuildFlags(d)

	s.logger.Debug("level loaded",
		"level", d.ID,
		"name", d.Name,
		"minions", len(s.Minions),
		"boss", s.Boss != nil,
		"collectibles", len(s.Collectibles),
		"flags", len(s.Flags),
	)
	return s
}

// Data returns the normalized level record
func (s *Session) Data() *entity.LevelData { return s.data }

// Level returns the live grid
func (s *Session) Level() *level.Level { return s.level }

// Progress returns the shared campaign tally
func (s *Session) Progress() *Progress { return s.progress }

// TimeLeft returns the level timer in seconds
func (s *Session) TimeLeft() float64 { return s.timeLeft }

// Outcome reports whether the level is still running
func (s *Session) Outcome() Outcome { return s.outcome }

// Ticks returns the number of ticks simulated so far
func (s *Session) Ticks() int { return s.ticks }

// ActiveCheckpoint returns the respawn tile, if a checkpoint was reached
func (s *Session) ActiveCheckpoint() (entity.Point, bool) {
	if s.activeCheckpoint == nil {
		return entity.Point{}, false
	}
	return *s.activeCheckpoint, true
}

func (s *Session) dt() float64 {
	return s.physics.Physics.TickMs
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) shake(durationMs, magnitude float64) {
	if !s.physics.Feedback.ScreenShake.Enabled {
		return
	}
	s.emit(ShakeEvent{DurationMs: durationMs, Magnitude: magnitude})
}

func (s *Session) addCollectible(c *entity.Collectible) {
	s.Collectibles = append(s.Collectibles, c)
	s.pickups.Add(c)
}

// Tick advances the level by one fixed step and returns what happened.
// Once the level is cleared or lost, Tick does nothing.
func (s *Session) Tick(input system.InputState) []Event {
	s.events = nil
	if s.outcome != OutcomeRunning {
		return nil
	}
	dt := s.dt()
	s.ticks++
	clear(s.damaged)

	// The killing blow was reported last tick; start the death now
	if s.Boss != nil && s.Boss.PendingDeath {
		s.bosses.Die(s.Boss)
	}

	p := s.Player
	if p.Dead {
		s.players.Update(p, input, dt)
		if s.deathTimer.Advance(dt) {
			s.handlePlayerDeath()
		}
		s.level.AdvanceDynamicState(dt)
		return s.events
	}

	s.timeLeft -= dt / 1000
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.killPlayer(CauseTime)
		s.level.AdvanceDynamicState(dt)
		return s.events
	}

	s.stepPlayer(input, dt)

	for _, m := range s.Minions {
		s.minions.Update(m, dt)
	}
	s.stepBoss(dt)

	if !p.Dead {
		s.checkMinions()
		s.checkBoss()
		s.checkHazards()
		s.checkCollectibles()
		s.checkFlags()
	}
	s.AdvanceFlags(dt)

	if s.Boss != nil && s.Boss.IsDefeated() && s.outcome == OutcomeRunning {
		s.completeLevel()
	}

	s.level.AdvanceDynamicState(dt)
	return s.events
}

func (s *Session) stepPlayer(input system.InputState, dt float64) {
	p := s.Player
	step := s.players.Update(p, input, dt)

	if step.PoundStarted {
		s.emit(GroundPoundStartedEvent{})
	}
	if step.Impact != nil {
		s.emit(GroundPoundImpactEvent{Impact: *step.Impact})
		s.handlePoundImpact(*step.Impact)
	}
	if step.TileHit != nil {
		s.emit(TileHitEvent{Hit: *step.TileHit})
		if step.TileHit.Side == entity.SideTop {
			s.handleHeadBump(*step.TileHit)
		}
	}

	if p.Dead {
		s.killPlayer(CauseGap)
	}
}

// handleHeadBump applies what a tile does when hit from below
func (s *Session) handleHeadBump(hit entity.TileHit) {
	col, row := hit.Col, hit.Row
	tile := s.level.EffectiveTile(col, row)
	rules := s.entities.Rules

	switch {
	case tile == entity.TileBrickBreakable || tile == entity.TileBrick:
		if s.level.BreakTile(col, row, s.Player.HasHelmet).Broken {
			s.progress.Score += rules.BlockScore
			s.emit(BlockBrokenEvent{Col: col, Row: row, Tile: tile})
		}
	case tile.IsPowerupBlock():
		kind := entity.CollectibleCoffee
		if tile == entity.TilePowerupBlockHelmet {
			kind = entity.CollectibleHelmet
		}
		s.level.SetTile(col, row, entity.TileBlockUsed)
		s.releaseFromBlock(kind, col, row)
	case tile == entity.TileHiddenBlock:
		if s.level.RevealHiddenBlock(col, row) {
			s.releaseFromBlock(entity.CollectibleCoin, col, row)
		}
	}
}

func (s *Session) releaseFromBlock(kind entity.CollectibleKind, col, row int) {
	block := entity.Point{Col: col, Row: row}
	s.addCollectible(entity.NewRisingCollectible(kind, block, s.entities.Rules.CollectibleRise))
	s.emit(PowerupReleasedEvent{Kind: kind, Col: col, Row: row})
}

// handlePoundImpact breaks the floor around the landing point and hurts
// every enemy close enough to it.
func (s *Session) handlePoundImpact(impact system.GroundPoundImpact) {
	gp := s.physics.GroundPound
	s.shake(s.physics.Feedback.ScreenShake.DurationMs, s.physics.Feedback.ScreenShake.Magnitude)

	for dc := -1; dc <= 1; dc++ {
		col := impact.Col + dc
		res := s.level.BreakTile(col, impact.Row, s.Player.HasHelmet)
		if res.Broken {
			s.progress.Score += s.entities.Rules.BlockScore
			s.emit(BlockBrokenEvent{Col: col, Row: impact.Row, Tile: res.Removed})
		}
	}

	for _, m := range s.Minions {
		if !m.Active || m.Dead {
			continue
		}
		r := m.Rect()
		dx := r.CenterX() - impact.X
		dy := r.CenterY() - impact.Y
		if math.Hypot(dx, dy) < gp.ImpactRadius && math.Abs(dy) < minionPoundMaxDY {
			s.stompMinion(m, true)
		}
	}

	if b := s.Boss; b != nil && b.Active && !b.Dead {
		r := b.Rect()
		dx := r.CenterX() - impact.X
		dy := r.CenterY() - impact.Y
		if math.Hypot(dx, dy) < gp.ImpactRadius*bossPoundReach && math.Abs(dy) < bossPoundMaxDY {
			s.damageBoss()
		}
	}
}

func (s *Session) stepBoss(dt float64) {
	b := s.Boss
	if b == nil {
		return
	}
	step := s.bosses.Update(b, s.Player.X, dt)
	for _, at := range step.Broken {
		s.emit(BlockBrokenEvent{Col: at.Col, Row: at.Row, Tile: entity.TileBrickBreakable})
	}
	if at, ok := b.ConsumeImpact(); ok {
		s.emit(BossSmashEvent{At: at})
		s.shake(s.physics.Feedback.ScreenShake.DurationMs, s.physics.Feedback.ScreenShake.Magnitude)
	}
}

// stompMinion kills a minion, at most once per tick
func (s *Session) stompMinion(m *entity.Minion, byPound bool) {
	if s.damaged[&m.Enemy] {
		return
	}
	s.damaged[&m.Enemy] = true
	s.minions.Stomp(m)
	s.progress.Score += s.entities.Rules.EnemyScore
	r := m.Rect()
	s.emit(EnemyStompedEvent{Kind: entity.EnemyMinion, X: r.CenterX(), Y: r.CenterY(), ByPound: byPound})
}

// damageBoss applies one hit to the boss, at most once per tick
func (s *Session) damageBoss() bool {
	b := s.Boss
	if s.damaged[&b.Enemy] {
		return false
	}
	res := s.bosses.TakeDamage(b)
	if !res.Damaged {
		return false
	}
	s.damaged[&b.Enemy] = true
	rules := s.entities.Rules
	s.progress.Score += rules.EnemyScore
	s.emit(BossHitEvent{Health: b.Health})
	if res.Defeated {
		s.progress.Score += rules.BossScore
		s.emit(BossDefeatPendingEvent{})
		s.logger.Debug("boss defeated", "level", s.data.ID, "tick", s.ticks)
	}
	return true
}

// checkMinions reconciles player and minion boxes. A stomp needs the
// player to have been falling without a pound; a pound fall kills without
// a bounce; anything else hurts the player.
func (s *Session) checkMinions() {
	p := s.Player
	for _, m := range s.Minions {
		if p.Dead {
			return
		}
		contact := m.CheckPlayerCollision(p.Rect(), &p.PrevRect)
		if !contact.Hit {
			continue
		}
		switch {
		case contact.FromAbove && p.PrevPound == entity.PoundNone && p.PrevVel.Y > 0:
			s.stompMinion(m, false)
			s.players.Bounce(p)
		case contact.FromAbove && p.PrevPound == entity.PoundFall:
			s.stompMinion(m, true)
			p.Jumping = false
		default:
			s.hitPlayer()
		}
	}
}

// checkBoss reconciles the player against the boss body and its
// projectiles. Projectiles only count when the bodies do not touch.
func (s *Session) checkBoss() {
	b := s.Boss
	p := s.Player
	if b == nil || p.Dead {
		return
	}

	contact := b.CheckPlayerCollision(p.Rect(), &p.PrevRect)
	if !contact.Hit {
		if b.CheckProjectileCollision(p.Rect()) {
			s.hitPlayer()
		}
		return
	}

	poundFalling := p.Pound.Phase == entity.PoundFall || p.PrevPound == entity.PoundFall
	stomp := p.PrevPound == entity.PoundNone && p.PrevVel.Y > 0
	if !contact.FromAbove || !(stomp || poundFalling) {
		if !p.IsInvincible() {
			s.hitPlayer()
		}
		return
	}

	s.damageBoss()
	p.Y = b.Y - p.H - 1
	if poundFalling {
		p.VY = bossStompRecoilY
		p.Pound.Enter(entity.PoundRecovery, s.physics.GroundPound.RecoveryMs)
		p.Jumping = false
	} else {
		s.players.Bounce(p)
	}
	if p.Invincible.Remaining < bossStompInvincibleMs {
		p.Invincible.Set(bossStompInvincibleMs)
	}
}

func (s *Session) checkHazards() {
	p := s.Player
	if p.Dead {
		return
	}
	r := p.Rect()
	if s.level.SpikeOverlap(r) || s.level.LavaOverlap(r) {
		s.hitPlayer()
	}
}

func (s *Session) checkCollectibles() {
	for _, c := range s.Collectibles {
		if c.Collected || c.VY == 0 {
			continue
		}
		c.Update()
		s.pickups.Sync(c)
	}

	p := s.Player
	if p.Dead {
		return
	}
	rules := s.entities.Rules
	for _, c := range s.pickups.Touching(p.Rect()) {
		c.Collected = true
		s.pickups.Remove(c)

		switch c.Kind {
		case entity.CollectibleCoin:
			s.progress.Score += rules.CoinScore
			s.progress.Coins++
			if rules.CoinsPerLife > 0 && s.progress.Coins%rules.CoinsPerLife == 0 {
				s.progress.Lives++
				s.emit(ExtraLifeEvent{Lives: s.progress.Lives})
			}
		case entity.CollectibleCoffee:
			s.players.CollectCoffee(p)
		case entity.CollectibleHelmet:
			s.players.CollectHelmet(p)
		}
		s.emit(CollectedEvent{Kind: c.Kind, X: c.X, Y: c.Y})
	}
}

func (s *Session) checkFlags() {
	r := s.Player.Rect()
	for _, f := range s.Flags {
		if !f.Enabled || !f.Trigger.Intersects(r) {
			continue
		}
		switch f.Kind {
		case entity.FlagCheckpoint:
			if f.State != entity.FlagInactive {
				continue
			}
			f.State = entity.FlagActivating
			f.Timer.Set(s.entities.Rules.FlagActivatingMs)
			at := entity.Point{Col: entity.ColOf(f.Anchor.X), Row: entity.RowOf(f.Anchor.Y)}
			s.activeCheckpoint = &at
			s.shake(checkpointShakeMs, checkpointShakeMag)
			s.emit(CheckpointReachedEvent{Tile: at})
		case entity.FlagGoal:
			if f.State != entity.FlagClear && s.outcome == OutcomeRunning {
				s.completeLevel()
			}
		}
	}
}

// AdvanceFlags runs the flag animations. It keeps running while the level
// clear screen is up.
func (s *Session) AdvanceFlags(dt float64) {
	for _, f := range s.Flags {
		if !f.Enabled {
			continue
		}
		if f.State == entity.FlagActivating && f.Timer.Advance(dt) {
			f.State = entity.FlagActive
		}
	}
}

func (s *Session) goalFlag() *entity.Flag {
	for _, f := range s.Flags {
		if f.Kind == entity.FlagGoal {
			return f
		}
	}
	return nil
}

// completeLevel awards the time bonus and raises the goal flag
func (s *Session) completeLevel() {
	rules := s.entities.Rules
	bonus := int(math.Floor(s.timeLeft)) * rules.TimeBonusPerSec
	s.progress.Score += bonus

	if f := s.goalFlag(); f != nil {
		f.Enabled = true
		f.State = entity.FlagClear
		f.Timer.Stop()
	}

	s.outcome = OutcomeCleared
	s.emit(LevelClearedEvent{TimeBonus: bonus})
	s.logger.Info("level cleared", "level", s.data.ID, "bonus", bonus, "score", s.progress.Score)
}

// hitPlayer routes every source of damage through the helmet and
// invincibility rules
func (s *Session) hitPlayer() {
	p := s.Player
	if p.Dead || p.IsInvincible() {
		return
	}
	res := s.players.TakeDamage(p)
	if res.HelmetUsed {
		r := p.Rect()
		s.emit(HelmetLostEvent{X: r.CenterX(), Y: r.CenterY()})
	}
	if res.Damaged {
		s.emit(PlayerDamagedEvent{})
		s.killPlayer(CauseHit)
	}
}

func (s *Session) killPlayer(cause string) {
	if !s.Player.Dead {
		s.players.Die(s.Player)
	}
	s.deathTimer.Set(s.entities.Rules.DeathDelayMs)
	s.emit(PlayerDiedEvent{Cause: cause})
	s.logger.Debug("player died", "level", s.data.ID, "cause", cause, "tick", s.ticks)
}

// handlePlayerDeath spends a life once the death delay is over
func (s *Session) handlePlayerDeath() {
	s.progress.Lives--
	if s.progress.Lives <= 0 {
		s.outcome = OutcomeGameOver
		s.emit(GameOverEvent{})
		s.logger.Info("game over", "level", s.data.ID, "score", s.progress.Score)
		return
	}

	at := s.data.PlayerSpawn
	if s.activeCheckpoint != nil {
		at = *s.activeCheckpoint
	}
	s.players.Respawn(s.Player, at)
	s.timeLeft = s.data.TimeLimit
	s.emit(PlayerRespawnedEvent{At: at, Lives: s.progress.Lives})
}
