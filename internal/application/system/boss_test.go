package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/domain/level/leveltest"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

// createTestBossController builds a 20x6 arena with a breakable pair at
// (10,1) and (11,1) and the floor on row 5.
func createTestBossController(seed int64) (*BossController, *level.Level) {
	l := level.New(leveltest.Grid(
		"....................",
		"..........bb........",
		"....................",
		"....................",
		"....................",
		"####################",
	))
	cfg := config.DefaultEntities().Boss
	cfg.GapRow = 5
	cfg.ArenaMinX = 16
	cfg.ArenaMaxX = 272
	return NewBossController(config.DefaultPhysics(), cfg, l, rand.New(rand.NewSource(seed))), l
}

// holdAction pins the boss on one action for the rest of a test
func holdAction(b *entity.Boss, action entity.BossAction, ms float64) {
	b.Action = action
	b.ActionTimer.Set(ms)
}

func TestBossController_Spawn(t *testing.T) {
	c, _ := createTestBossController(1)

	b := c.Spawn(entity.Point{Col: 10, Row: 5})

	assert.Equal(t, 160.0, b.X)
	assert.Equal(t, 40.0, b.Y)
	assert.Equal(t, 3, b.Health)
	assert.Equal(t, 1, b.Phase)
	assert.Equal(t, entity.BossIdle, b.Action)
}

func TestBossController_StandsOnFloor(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 4, Row: 5})
	holdAction(b, entity.BossIdle, 10000)

	for i := 0; i < 5; i++ {
		c.Update(b, 0, testDt)
	}

	assert.True(t, b.OnGround)
	assert.Equal(t, 40.0, b.Y)
	assert.False(t, b.FacingRight)
}

func TestBossController_Walk(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 4, Row: 5})
	holdAction(b, entity.BossWalk, 10000)
	b.TargetX = 250

	c.Update(b, 250, testDt)

	assert.InDelta(t, 1.2*1.2, b.VX, 1e-9)
	assert.InDelta(t, 64+1.44, b.X, 1e-9)
	assert.True(t, b.FacingRight)
}

func TestBossController_Attack(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	holdAction(b, entity.BossAttack, bossAttackMs)

	step := c.Update(b, 40, testDt)

	assert.True(t, step.Fired)
	require.Len(t, b.Projectiles, 1)
	assert.Equal(t, -3.0, b.Projectiles[0].VX)
	assert.Equal(t, 700.0, b.AttackTimer.Remaining)

	step = c.Update(b, 40, testDt)
	assert.False(t, step.Fired, "cooldown blocks the next shot")
	assert.Len(t, b.Projectiles, 1)
}

func TestBossController_ProjectilesLeaveTheLevel(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	holdAction(b, entity.BossIdle, 10000)
	b.Projectiles = []*entity.Projectile{
		entity.NewProjectile(318, 50, 3),
		entity.NewProjectile(100, 50, 3),
		{X: 120, Y: 50, VX: 3},
	}

	c.Update(b, 0, testDt)

	require.Len(t, b.Projectiles, 1)
	assert.Equal(t, 103.0, b.Projectiles[0].X)
}

func TestBossController_CreateGap(t *testing.T) {
	c, l := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	b.Phase = 2
	holdAction(b, entity.BossCreateGap, 1300)

	c.Update(b, 48, testDt)

	assert.True(t, b.HasSmashed)
	assert.Equal(t, 0.0, b.VX)
	for col := 2; col <= 4; col++ {
		assert.Equal(t, entity.TileEmpty, l.EffectiveTile(col, 5), "col %d", col)
	}
	assert.Equal(t, entity.TileGround, l.EffectiveTile(5, 5))

	at, ok := b.ConsumeImpact()
	require.True(t, ok)
	assert.Equal(t, entity.Vec2{X: 56, Y: 80}, at)

	c.Update(b, 200, testDt)
	_, ok = b.ConsumeImpact()
	assert.False(t, ok, "one smash per action")
}

func TestBossController_HeadBumpBreaksBricks(t *testing.T) {
	c, l := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	holdAction(b, entity.BossIdle, 10000)
	b.VY = -10

	step := c.Update(b, 0, testDt)

	assert.ElementsMatch(t, []entity.Point{{Col: 10, Row: 1}, {Col: 11, Row: 1}}, step.Broken)
	assert.Equal(t, entity.TileEmpty, l.EffectiveTile(10, 1))
	assert.Equal(t, 32.0, b.Y)
}

func TestBossController_ArenaClamp(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 16, Row: 5})
	holdAction(b, entity.BossIdle, 10000)
	b.X = 270
	b.VX = 4

	c.Update(b, 0, testDt)

	assert.Equal(t, 272.0, b.X)
	assert.Less(t, b.VX, 0.0)
}

func TestBossController_TakeDamage(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})

	got := c.TakeDamage(b)
	assert.Equal(t, BossDamage{Damaged: true}, got)
	assert.Equal(t, 2, b.Health)
	assert.Equal(t, 2, b.Phase)
	assert.True(t, b.HurtTimer.Active())
	assert.Equal(t, -6.0, b.VY)
	assert.Equal(t, 3.0, math.Abs(b.VX))

	assert.Equal(t, BossDamage{}, c.TakeDamage(b), "hurt window ignores hits")
	assert.Equal(t, 2, b.Health)

	b.HurtTimer.Stop()
	assert.Equal(t, BossDamage{Damaged: true}, c.TakeDamage(b))
	assert.Equal(t, 3, b.Phase)

	b.HurtTimer.Stop()
	got = c.TakeDamage(b)
	assert.Equal(t, BossDamage{Damaged: true, Defeated: true}, got)
	assert.Equal(t, 0, b.Health)
	assert.True(t, b.PendingDeath)
	assert.False(t, b.Dead)

	b.HurtTimer.Stop()
	assert.Equal(t, BossDamage{}, c.TakeDamage(b))
}

func TestBossController_PendingDeathFreezesActions(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	b.Health = 1
	c.TakeDamage(b)

	for i := 0; i < 30; i++ {
		step := c.Update(b, 40, testDt)
		assert.False(t, step.Fired)
	}
	assert.Equal(t, entity.BossIdle, b.Action)
}

func TestBossController_Die(t *testing.T) {
	c, _ := createTestBossController(1)
	b := c.Spawn(entity.Point{Col: 10, Row: 5})
	b.Projectiles = []*entity.Projectile{entity.NewProjectile(0, 0, 1)}
	b.PendingDeath = true

	c.Die(b)

	assert.True(t, b.Dead)
	assert.False(t, b.PendingDeath)
	assert.Nil(t, b.Projectiles)
	assert.Equal(t, -6.0, b.VY)
	assert.False(t, b.IsDefeated())

	c.Update(b, 0, testDt)
	assert.Greater(t, b.Rotation, 0.0)

	for i := 0; i < 200; i++ {
		c.Update(b, 0, testDt)
	}
	assert.InDelta(t, math.Pi/2, b.Rotation, 1e-9)
	assert.False(t, b.Active)
	assert.True(t, b.IsDefeated())
}

func TestBossController_SeededDecisionsRepeat(t *testing.T) {
	run := func() []entity.BossAction {
		c, _ := createTestBossController(42)
		b := c.Spawn(entity.Point{Col: 10, Row: 5})
		b.Phase = 3

		var actions []entity.BossAction
		for i := 0; i < 40; i++ {
			c.chooseNextAction(b, 120)
			actions = append(actions, b.Action)
		}
		return actions
	}

	first := run()
	assert.Equal(t, first, run())

	seen := make(map[entity.BossAction]bool)
	for _, a := range first {
		seen[a] = true
	}
	assert.Greater(t, len(seen), 1)
}
