package session

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/domain/level/leveltest"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

func createTestOptions() Options {
	return Options{
		Physics:  config.DefaultPhysics(),
		Entities: config.DefaultEntities(),
		Logger:   log.New(io.Discard),
	}
}

// createTestSession builds a session over d with three lives
func createTestSession(d *entity.LevelData) *Session {
	return New(d, &Progress{Lives: 3}, createTestOptions())
}

// createTestFlatLevel is a 12x4 level with ground on row 3 and the spawn
// at column 1
func createTestFlatLevel() *entity.LevelData {
	d := leveltest.Grid(
		"............",
		"............",
		"............",
		"############",
	)
	d.PlayerSpawn = entity.Point{Col: 1, Row: 3}
	d.Goal = entity.Point{Col: 11, Row: 3}
	return d
}

// createTestBossLevel is a 20x6 arena with the boss at column 10
func createTestBossLevel() *entity.LevelData {
	d := leveltest.Grid(
		"....................",
		"....................",
		"....................",
		"....................",
		"....................",
		"####################",
	)
	d.BossLevel = true
	d.PlayerSpawn = entity.Point{Col: 2, Row: 5}
	d.Goal = entity.Point{Col: 18, Row: 5}
	d.Enemies = []entity.EnemySpawn{{Kind: entity.EnemyBoss, Pos: entity.Point{Col: 10, Row: 5}}}
	return d
}

func runTicks(s *Session, input system.InputState, n int) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, s.Tick(input)...)
	}
	return all
}

func findEvent[T Event](events []Event) (T, bool) {
	for _, e := range events {
		if ev, ok := e.(T); ok {
			return ev, true
		}
	}
	var zero T
	return zero, false
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

// holdBoss keeps the boss idle for the rest of a test
func holdBoss(b *entity.Boss) {
	b.Action = entity.BossIdle
	b.ActionTimer.Set(1e9)
}

func TestSession_New(t *testing.T) {
	d := createTestFlatLevel()
	d.Checkpoints = []entity.Point{{Col: 6, Row: 2}}
	d.Enemies = []entity.EnemySpawn{{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 8, Row: 3}}}
	d.Collectibles = []entity.CollectibleSpawn{
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 3, Row: 2}},
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 4, Row: 3}},
	}
	d.Tiles[1][5] = entity.TileCoin

	s := createTestSession(d)

	assert.Len(t, s.Minions, 1)
	assert.Nil(t, s.Boss)
	require.Len(t, s.Collectibles, 3)
	assert.Equal(t, 3, s.pickups.Len())
	assert.Equal(t, 64.0, s.Collectibles[1].X)
	assert.Equal(t, 32.0, s.Collectibles[1].Y, "coin in the ground moves up a row")
	assert.Equal(t, entity.TileEmpty, s.Level().EffectiveTile(5, 1), "coin tile becomes a pickup")
	require.Len(t, s.Flags, 2)
	assert.Equal(t, entity.FlagCheckpoint, s.Flags[0].Kind)
	assert.Equal(t, entity.FlagGoal, s.Flags[1].Kind)
	assert.Equal(t, 200.0, s.TimeLeft())
	assert.Equal(t, OutcomeRunning, s.Outcome())
	assert.Equal(t, 24.0, s.Player.Y)
	assert.Equal(t, entity.TileCoin, d.Tiles[1][5], "input data is not modified")
}

func TestSession_New_ShortGrid(t *testing.T) {
	d := createTestFlatLevel()
	d.Tiles = d.Tiles[:3]
	d.Tiles[2] = d.Tiles[2][:5]
	d.Checkpoints = []entity.Point{{Col: 8, Row: 2}}
	d.Collectibles = []entity.CollectibleSpawn{{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 9, Row: 3}}}

	var s *Session
	require.NotPanics(t, func() { s = createTestSession(d) })

	assert.Len(t, s.Flags, 2)
	assert.Len(t, s.Collectibles, 1)
	assert.Equal(t, entity.TileEmpty, s.Level().EffectiveTile(9, 3))
}

func TestSession_CollectCoin(t *testing.T) {
	d := createTestFlatLevel()
	d.Collectibles = []entity.CollectibleSpawn{{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 2, Row: 2}}}
	s := createTestSession(d)

	events := runTicks(s, system.InputState{Right: true}, 10)

	ev, ok := findEvent[CollectedEvent](events)
	require.True(t, ok)
	assert.Equal(t, entity.CollectibleCoin, ev.Kind)
	assert.Equal(t, 100, s.Progress().Score)
	assert.Equal(t, 1, s.Progress().Coins)
	assert.True(t, s.Collectibles[0].Collected)
	assert.Equal(t, 0, s.pickups.Len())

	events = runTicks(s, system.InputState{Left: true}, 10)
	assert.Equal(t, 0, countEvents[CollectedEvent](events), "a coin is collected once")
}

func TestSession_CoinsBuyLives(t *testing.T) {
	d := createTestFlatLevel()
	d.Collectibles = []entity.CollectibleSpawn{{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 1, Row: 2}}}
	opts := createTestOptions()
	opts.Entities.Rules.CoinsPerLife = 1
	s := New(d, &Progress{Lives: 3}, opts)

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[ExtraLifeEvent](events)
	require.True(t, ok)
	assert.Equal(t, 4, ev.Lives)
	assert.Equal(t, 4, s.Progress().Lives)
}

func TestSession_Powerups(t *testing.T) {
	tests := []struct {
		kind   entity.CollectibleKind
		verify func(t *testing.T, p *entity.Player)
	}{
		{entity.CollectibleCoffee, func(t *testing.T, p *entity.Player) { assert.True(t, p.HasCoffee()) }},
		{entity.CollectibleHelmet, func(t *testing.T, p *entity.Player) { assert.True(t, p.HasHelmet) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d := createTestFlatLevel()
			d.Collectibles = []entity.CollectibleSpawn{{Kind: tt.kind, Pos: entity.Point{Col: 1, Row: 2}}}
			s := createTestSession(d)

			s.Tick(system.InputState{})

			tt.verify(t, s.Player)
			assert.Equal(t, 0, s.Progress().Score)
		})
	}
}

func TestSession_StompMinion(t *testing.T) {
	d := createTestFlatLevel()
	d.Enemies = []entity.EnemySpawn{{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 5, Row: 3}}}
	s := createTestSession(d)
	m := s.Minions[0]
	p := s.Player
	p.X = 80
	p.Y = m.Y - p.H - 2
	p.VY = 2

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[EnemyStompedEvent](events)
	require.True(t, ok)
	assert.False(t, ev.ByPound)
	assert.Equal(t, entity.EnemyMinion, ev.Kind)
	assert.True(t, m.Dead)
	assert.False(t, p.Dead)
	assert.InDelta(t, -4.8, p.VY, 1e-9, "stomp bounces")
	assert.Equal(t, 200, s.Progress().Score)
}

func TestSession_PoundFallKillsWithoutBounce(t *testing.T) {
	d := createTestFlatLevel()
	d.Enemies = []entity.EnemySpawn{{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 5, Row: 3}}}
	s := createTestSession(d)
	m := s.Minions[0]
	p := s.Player
	p.X = 80
	p.Y = m.Y - p.H - 2
	p.VY = 2
	p.Pound.Phase = entity.PoundFall

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[EnemyStompedEvent](events)
	require.True(t, ok)
	assert.True(t, ev.ByPound)
	assert.True(t, m.Dead)
	assert.False(t, p.Dead)
	assert.Greater(t, p.VY, 0.0)
	assert.False(t, p.Jumping)
}

func TestSession_MinionHurtsPlayer(t *testing.T) {
	newSession := func() *Session {
		d := createTestFlatLevel()
		d.Enemies = []entity.EnemySpawn{{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 5, Row: 3}}}
		s := createTestSession(d)
		s.Player.X = 64
		return s
	}

	t.Run("kills without a helmet", func(t *testing.T) {
		s := newSession()

		events := runTicks(s, system.InputState{}, 10)

		died, ok := findEvent[PlayerDiedEvent](events)
		require.True(t, ok)
		assert.Equal(t, CauseHit, died.Cause)
		assert.Equal(t, 1, countEvents[PlayerDamagedEvent](events))
		assert.True(t, s.Player.Dead)
	})

	t.Run("helmet absorbs the hit", func(t *testing.T) {
		s := newSession()
		s.Player.HasHelmet = true

		events := runTicks(s, system.InputState{}, 10)

		_, ok := findEvent[HelmetLostEvent](events)
		assert.True(t, ok)
		_, died := findEvent[PlayerDiedEvent](events)
		assert.False(t, died)
		assert.False(t, s.Player.HasHelmet)
		assert.True(t, s.Player.IsInvincible())
	})
}

func TestSession_DeathAndRespawn(t *testing.T) {
	s := createTestSession(createTestFlatLevel())
	s.Player.X = 100
	s.hitPlayer()
	require.True(t, s.Player.Dead)

	// 1500 ms at 60 Hz is 90 ticks
	events := runTicks(s, system.InputState{}, 89)
	_, respawned := findEvent[PlayerRespawnedEvent](events)
	assert.False(t, respawned)

	events = runTicks(s, system.InputState{}, 2)
	ev, ok := findEvent[PlayerRespawnedEvent](events)
	require.True(t, ok)
	assert.Equal(t, entity.Point{Col: 1, Row: 3}, ev.At)
	assert.Equal(t, 2, ev.Lives)
	assert.False(t, s.Player.Dead)
	assert.Equal(t, 16.0, s.Player.X)
	assert.True(t, s.Player.IsInvincible())
	assert.InDelta(t, 200.0, s.TimeLeft(), 0.05, "timer restarts")
	assert.Equal(t, OutcomeRunning, s.Outcome())
}

func TestSession_GameOver(t *testing.T) {
	s := New(createTestFlatLevel(), &Progress{Lives: 1}, createTestOptions())
	s.hitPlayer()

	events := runTicks(s, system.InputState{}, 100)

	_, ok := findEvent[GameOverEvent](events)
	assert.True(t, ok)
	assert.Equal(t, OutcomeGameOver, s.Outcome())
	assert.Equal(t, 0, s.Progress().Lives)
	assert.Nil(t, s.Tick(system.InputState{}), "a finished level no longer ticks")
}

func TestSession_TimeRunsOut(t *testing.T) {
	d := createTestFlatLevel()
	d.TimeLimit = 0.05
	s := createTestSession(d)

	events := runTicks(s, system.InputState{}, 4)

	ev, ok := findEvent[PlayerDiedEvent](events)
	require.True(t, ok)
	assert.Equal(t, CauseTime, ev.Cause)
	assert.Equal(t, 0.0, s.TimeLeft())
}

func TestSession_FallIntoGap(t *testing.T) {
	d := leveltest.Grid(
		"....",
		"....",
		"....",
	)
	d.PlayerSpawn = entity.Point{Col: 1, Row: 2}
	s := createTestSession(d)

	events := runTicks(s, system.InputState{}, 60)

	ev, ok := findEvent[PlayerDiedEvent](events)
	require.True(t, ok)
	assert.Equal(t, CauseGap, ev.Cause)
	assert.Equal(t, 1, countEvents[PlayerDiedEvent](events))
}

func TestSession_Hazards(t *testing.T) {
	tests := []struct {
		name string
		row  int
		tile entity.TileType
	}{
		{"spike", 2, entity.TileSpike},
		{"lava", 3, entity.TileLavaTop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := createTestFlatLevel()
			d.Tiles[tt.row][4] = tt.tile
			s := createTestSession(d)
			s.Player.X = 64

			events := runTicks(s, system.InputState{}, 10)

			ev, ok := findEvent[PlayerDiedEvent](events)
			require.True(t, ok)
			assert.Equal(t, CauseHit, ev.Cause)
		})
	}
}

func TestSession_HeadBump(t *testing.T) {
	tests := []struct {
		name     string
		tile     entity.TileType
		helmet   bool
		wantTile entity.TileType
		score    int
		release  entity.CollectibleKind
	}{
		{"breakable brick", entity.TileBrickBreakable, false, entity.TileEmpty, 50, ""},
		{"brick without helmet", entity.TileBrick, false, entity.TileBrick, 0, ""},
		{"brick with helmet", entity.TileBrick, true, entity.TileEmpty, 50, ""},
		{"coffee block", entity.TilePowerupBlockCoffee, false, entity.TileBlockUsed, 0, entity.CollectibleCoffee},
		{"helmet block", entity.TilePowerupBlockHelmet, false, entity.TileBlockUsed, 0, entity.CollectibleHelmet},
		{"hidden block", entity.TileHiddenBlock, false, entity.TileBlockUsed, 0, entity.CollectibleCoin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := leveltest.Grid(
				"......",
				"......",
				"......",
				"......",
				"######",
			)
			d.Tiles[1][2] = tt.tile
			d.PlayerSpawn = entity.Point{Col: 2, Row: 4}
			s := createTestSession(d)
			s.Player.HasHelmet = tt.helmet

			var events []Event
			events = append(events, runTicks(s, system.InputState{}, 2)...)
			events = append(events, s.Tick(system.InputState{Jump: true, JumpPressed: true})...)
			events = append(events, runTicks(s, system.InputState{Jump: true}, 20)...)

			var bump *entity.TileHit
			for _, e := range events {
				if ev, ok := e.(TileHitEvent); ok && ev.Hit.Side == entity.SideTop {
					bump = &ev.Hit
					break
				}
			}
			require.NotNil(t, bump)
			assert.Equal(t, entity.Point{Col: 2, Row: 1}, entity.Point{Col: bump.Col, Row: bump.Row})
			assert.Equal(t, tt.wantTile, s.Level().EffectiveTile(2, 1))
			assert.Equal(t, tt.score, s.Progress().Score)

			if tt.release == "" {
				assert.Empty(t, s.Collectibles)
				return
			}
			rel, ok := findEvent[PowerupReleasedEvent](events)
			require.True(t, ok)
			assert.Equal(t, tt.release, rel.Kind)
			require.Len(t, s.Collectibles, 1)
			assert.Equal(t, tt.release, s.Collectibles[0].Kind)
			assert.Equal(t, 32.0, s.Collectibles[0].X)
		})
	}
}

func TestSession_PoundImpact(t *testing.T) {
	d := leveltest.Grid(
		"........",
		"........",
		"........",
		"bbbbbbbb",
		"########",
	)
	d.PlayerSpawn = entity.Point{Col: 2, Row: 3}
	d.Enemies = []entity.EnemySpawn{
		{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 4, Row: 3}},
		{Kind: entity.EnemyMinion, Pos: entity.Point{Col: 7, Row: 3}},
	}
	s := createTestSession(d)

	s.handlePoundImpact(system.GroundPoundImpact{X: 40, Y: 48, Col: 2, Row: 3})

	for col := 1; col <= 3; col++ {
		assert.Equal(t, entity.TileEmpty, s.Level().EffectiveTile(col, 3), "col %d", col)
	}
	assert.Equal(t, entity.TileBrickBreakable, s.Level().EffectiveTile(4, 3))
	assert.True(t, s.Minions[0].Dead, "close minion")
	assert.False(t, s.Minions[1].Dead, "far minion")
	assert.Equal(t, 3*50+200, s.Progress().Score)
	assert.Equal(t, 3, countEvents[BlockBrokenEvent](s.events))

	shake, ok := findEvent[ShakeEvent](s.events)
	require.True(t, ok)
	assert.Equal(t, ShakeEvent{DurationMs: 150, Magnitude: 4}, shake)
}

func TestSession_GroundPoundFlow(t *testing.T) {
	d := leveltest.Grid(
		"........",
		"........",
		"........",
		"........",
		"..bbb...",
		"########",
	)
	d.PlayerSpawn = entity.Point{Col: 3, Row: 1}
	s := createTestSession(d)

	events := s.Tick(system.InputState{Down: true, DownPressed: true})
	_, ok := findEvent[GroundPoundStartedEvent](events)
	require.True(t, ok)

	events = runTicks(s, system.InputState{}, 30)
	impact, ok := findEvent[GroundPoundImpactEvent](events)
	require.True(t, ok)
	assert.Equal(t, 4, impact.Impact.Row)
	assert.Equal(t, 3, countEvents[BlockBrokenEvent](events))
	assert.Equal(t, 150, s.Progress().Score)
}

func TestSession_ShakeDisabled(t *testing.T) {
	opts := createTestOptions()
	opts.Physics.Feedback.ScreenShake.Enabled = false
	s := New(createTestFlatLevel(), &Progress{Lives: 3}, opts)

	s.handlePoundImpact(system.GroundPoundImpact{X: 40, Y: 48, Col: 2, Row: 3})

	_, ok := findEvent[ShakeEvent](s.events)
	assert.False(t, ok)
}

func TestSession_Checkpoint(t *testing.T) {
	d := createTestFlatLevel()
	d.Checkpoints = []entity.Point{{Col: 3, Row: 2}}
	s := createTestSession(d)
	s.Player.X = 48

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[CheckpointReachedEvent](events)
	require.True(t, ok)
	assert.Equal(t, entity.Point{Col: 3, Row: 3}, ev.Tile)
	cp, ok := s.ActiveCheckpoint()
	require.True(t, ok)
	assert.Equal(t, entity.Point{Col: 3, Row: 3}, cp)
	assert.Equal(t, entity.FlagActivating, s.Flags[0].State)

	events = runTicks(s, system.InputState{}, 30)
	assert.Equal(t, 0, countEvents[CheckpointReachedEvent](events), "checkpoint fires once")
	assert.Equal(t, entity.FlagActive, s.Flags[0].State)

	s.Player.X = 150
	s.hitPlayer()
	events = runTicks(s, system.InputState{}, 91)
	respawn, ok := findEvent[PlayerRespawnedEvent](events)
	require.True(t, ok)
	assert.Equal(t, entity.Point{Col: 3, Row: 3}, respawn.At)
	assert.Equal(t, 48.0, s.Player.X)
}

func TestSession_Goal(t *testing.T) {
	d := createTestFlatLevel()
	d.Goal = entity.Point{Col: 1, Row: 3}
	s := createTestSession(d)

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[LevelClearedEvent](events)
	require.True(t, ok)
	assert.Equal(t, 1990, ev.TimeBonus)
	assert.Equal(t, 1990, s.Progress().Score)
	assert.Equal(t, OutcomeCleared, s.Outcome())
	assert.Equal(t, entity.FlagClear, s.Flags[len(s.Flags)-1].State)
}

func TestSession_BossStomp(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	b := s.Boss
	require.NotNil(t, b)
	holdBoss(b)
	assert.False(t, s.Flags[len(s.Flags)-1].Enabled, "boss levels have no goal pole")

	p := s.Player
	p.X = 168
	p.Y = b.Y - p.H - 2
	p.VY = 2

	events := s.Tick(system.InputState{})

	hit, ok := findEvent[BossHitEvent](events)
	require.True(t, ok)
	assert.Equal(t, 2, hit.Health)
	assert.Equal(t, 200, s.Progress().Score)
	assert.False(t, p.Dead)
	assert.Equal(t, b.Y-p.H-1, p.Y)
	assert.InDelta(t, -4.8, p.VY, 1e-9)
	assert.GreaterOrEqual(t, p.Invincible.Remaining, 300.0)
}

func TestSession_BossPoundStompRecovers(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	b := s.Boss
	holdBoss(b)

	p := s.Player
	p.X = 168
	p.Y = b.Y - p.H - 2
	p.VY = 2
	p.Pound.Phase = entity.PoundFall

	s.Tick(system.InputState{})

	assert.Equal(t, 2, b.Health)
	assert.Equal(t, entity.PoundRecovery, p.Pound.Phase)
	assert.Equal(t, -4.0, p.VY)
}

func TestSession_BossSideContactHurts(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	holdBoss(s.Boss)
	s.Player.X = s.Boss.X - 10

	events := runTicks(s, system.InputState{}, 3)

	_, ok := findEvent[PlayerDiedEvent](events)
	assert.True(t, ok)
	assert.Equal(t, 3, s.Boss.Health)
}

func TestSession_BossProjectile(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	holdBoss(s.Boss)
	runTicks(s, system.InputState{}, 2)
	p := s.Player
	s.Boss.Projectiles = []*entity.Projectile{{X: p.X + 2, Y: p.Y + 4, Active: true}}

	events := s.Tick(system.InputState{})

	ev, ok := findEvent[PlayerDiedEvent](events)
	require.True(t, ok)
	assert.Equal(t, CauseHit, ev.Cause)
}

func TestSession_BossDefeat(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	b := s.Boss
	holdBoss(b)
	b.Health = 1

	p := s.Player
	p.X = 168
	p.Y = b.Y - p.H - 2
	p.VY = 2

	events := s.Tick(system.InputState{})
	_, ok := findEvent[BossDefeatPendingEvent](events)
	require.True(t, ok)
	assert.Equal(t, 1200, s.Progress().Score)
	assert.True(t, b.PendingDeath)
	assert.False(t, b.Dead)

	s.Tick(system.InputState{})
	assert.True(t, b.Dead, "death starts on the next tick")

	var cleared *LevelClearedEvent
	for i := 0; i < 600 && cleared == nil; i++ {
		if ev, ok := findEvent[LevelClearedEvent](s.Tick(system.InputState{})); ok {
			cleared = &ev
		}
	}
	require.NotNil(t, cleared)
	assert.True(t, b.IsDefeated())
	assert.Equal(t, OutcomeCleared, s.Outcome())
	assert.Equal(t, int(math.Floor(s.TimeLeft()))*10, cleared.TimeBonus)
	goal := s.Flags[len(s.Flags)-1]
	assert.True(t, goal.Enabled)
	assert.Equal(t, entity.FlagClear, goal.State)
}

func TestSession_OneHitPerTick(t *testing.T) {
	s := createTestSession(createTestBossLevel())
	b := s.Boss
	holdBoss(b)
	c := b.Rect()

	assert.True(t, s.damageBoss())
	b.HurtTimer.Stop()
	assert.False(t, s.damageBoss(), "already hit this tick")

	s.handlePoundImpact(system.GroundPoundImpact{X: c.CenterX(), Y: c.Bottom(), Col: 10, Row: 5})
	assert.Equal(t, 2, b.Health)
}

func TestSession_FallingPlatformAdvancesOncePerTick(t *testing.T) {
	d := leveltest.Grid(
		"......",
		"......",
		"..==..",
		"......",
	)
	d.PlayerSpawn = entity.Point{Col: 2, Row: 2}
	s := createTestSession(d)

	runTicks(s, system.InputState{}, 6)

	views := s.Level().FallingPlatforms()
	require.Len(t, views, 1)
	assert.Equal(t, level.PhaseContact, views[0].Phase)
	assert.InDelta(t, 6*s.dt(), views[0].Contact, 1e-6)
}
