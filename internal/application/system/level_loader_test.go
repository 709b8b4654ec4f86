package system

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level/leveltest"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

func createTestLevelConfig() *config.LevelConfig {
	return &config.LevelConfig{
		ID:   "0",
		Name: "test",
		Rows: []string{
			".....",
			"..-o.",
			"#####",
		},
		Spawn:       config.PointConfig{Col: 0, Row: 2},
		Goal:        config.PointConfig{Col: 4, Row: 2},
		Checkpoints: []config.PointConfig{{Col: 2, Row: 2}},
		Enemies:     []config.SpawnConfig{{Kind: "minion", Col: 3, Row: 2}},
		Collectibles: []config.SpawnConfig{
			{Kind: "coffee", Col: 1, Row: 1},
		},
	}
}

func TestLoadLevel(t *testing.T) {
	t.Run("loads basic level", func(t *testing.T) {
		d, err := LoadLevel(createTestLevelConfig(), 200)

		require.NoError(t, err)
		assert.Equal(t, 5, d.Width)
		assert.Equal(t, 3, d.Height)
		assert.Equal(t, entity.Point{Col: 0, Row: 2}, d.PlayerSpawn)
		assert.Equal(t, entity.Point{Col: 4, Row: 2}, d.Goal)
		assert.Equal(t, []entity.Point{{Col: 2, Row: 2}}, d.Checkpoints)
		assert.Equal(t, 200.0, d.TimeLimit)
		require.Len(t, d.Enemies, 1)
		assert.Equal(t, entity.EnemyMinion, d.Enemies[0].Kind)
		require.Len(t, d.Collectibles, 1)
		assert.Equal(t, entity.CollectibleCoffee, d.Collectibles[0].Kind)
	})

	t.Run("maps glyphs through the default legend", func(t *testing.T) {
		d, err := LoadLevel(createTestLevelConfig(), 200)

		require.NoError(t, err)
		assert.Equal(t, entity.TilePlatform, d.Tiles[1][2])
		assert.Equal(t, entity.TileCoin, d.Tiles[1][3])
		assert.Equal(t, entity.TileGround, d.Tiles[2][0])
		assert.Equal(t, entity.TileEmpty, d.Tiles[0][0])
	})

	t.Run("level legend overrides defaults", func(t *testing.T) {
		cfg := createTestLevelConfig()
		cfg.Legend = map[string]string{"#": "ice", "*": "spring"}
		cfg.Rows[0] = "*...."

		d, err := LoadLevel(cfg, 200)

		require.NoError(t, err)
		assert.Equal(t, entity.TileIce, d.Tiles[2][0])
		assert.Equal(t, entity.TileSpring, d.Tiles[0][0])
	})

	t.Run("level time limit wins over the default", func(t *testing.T) {
		cfg := createTestLevelConfig()
		cfg.TimeLimit = 90

		d, err := LoadLevel(cfg, 200)

		require.NoError(t, err)
		assert.Equal(t, 90.0, d.TimeLimit)
	})

	t.Run("ragged rows are kept for validation", func(t *testing.T) {
		cfg := createTestLevelConfig()
		cfg.Rows[1] = "..."

		d, err := LoadLevel(cfg, 200)

		require.NoError(t, err)
		assert.Equal(t, 5, d.Width)
		assert.Len(t, d.Tiles[1], 3)
	})
}

func TestLoadLevel_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.LevelConfig)
		want   string
	}{
		{
			name:   "unknown glyph",
			modify: func(cfg *config.LevelConfig) { cfg.Rows[0] = "..%.." },
			want:   "unknown glyph",
		},
		{
			name:   "unknown tile name",
			modify: func(cfg *config.LevelConfig) { cfg.Legend = map[string]string{"#": "marble"} },
			want:   `unknown tile "marble"`,
		},
		{
			name:   "unknown enemy",
			modify: func(cfg *config.LevelConfig) { cfg.Enemies[0].Kind = "dragon" },
			want:   `unknown enemy "dragon"`,
		},
		{
			name:   "unknown collectible",
			modify: func(cfg *config.LevelConfig) { cfg.Collectibles[0].Kind = "gem" },
			want:   `unknown collectible "gem"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestLevelConfig()
			tt.modify(cfg)

			_, err := LoadLevel(cfg, 200)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLevelConfigOf_RoundTrip(t *testing.T) {
	cfg := createTestLevelConfig()
	d, err := LoadLevel(cfg, 200)
	require.NoError(t, err)

	back := LevelConfigOf(d)
	assert.Equal(t, cfg.Rows, back.Rows)
	assert.Equal(t, cfg.Spawn, back.Spawn)
	assert.Equal(t, cfg.Goal, back.Goal)
	assert.Equal(t, cfg.Checkpoints, back.Checkpoints)
	assert.Equal(t, cfg.Enemies, back.Enemies)
	assert.Equal(t, cfg.Collectibles, back.Collectibles)

	again, err := LoadLevel(back, 200)
	require.NoError(t, err)
	assert.Equal(t, d.Tiles, again.Tiles)
}

func TestTileByName(t *testing.T) {
	for glyph, name := range config.DefaultLegend {
		_, ok := TileByName(name)
		assert.True(t, ok, "glyph %q names unknown tile %q", glyph, name)
	}
	_, ok := TileByName("marble")
	assert.False(t, ok)
}

func TestNormalizeLevelData(t *testing.T) {
	d := leveltest.Grid(
		"......",
		"......",
		"######",
	)
	d.Tiles[1][1] = entity.TileCheckpoint
	d.Tiles[1][3] = entity.TileCheckpoint
	d.Tiles[1][5] = entity.TileFlag
	d.Tiles[0][2] = entity.TileCoin
	d.Tiles[0][4] = entity.TilePowerupHelmet
	d.Checkpoints = []entity.Point{{Col: 0, Row: 0}}
	d.Goal = entity.Point{Col: 0, Row: 0}

	out := NormalizeLevelData(d)

	t.Run("markers replace records", func(t *testing.T) {
		assert.Equal(t, []entity.Point{{Col: 1, Row: 1}, {Col: 3, Row: 1}}, out.Checkpoints)
		assert.Equal(t, entity.Point{Col: 5, Row: 1}, out.Goal)
	})

	t.Run("legacy item tiles become collectibles", func(t *testing.T) {
		assert.ElementsMatch(t, []entity.CollectibleSpawn{
			{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 2, Row: 0}},
			{Kind: entity.CollectibleHelmet, Pos: entity.Point{Col: 4, Row: 0}},
		}, out.Collectibles)
	})

	t.Run("marker cells become empty", func(t *testing.T) {
		for _, p := range []entity.Point{{Col: 1, Row: 1}, {Col: 3, Row: 1}, {Col: 5, Row: 1}, {Col: 2, Row: 0}, {Col: 4, Row: 0}} {
			assert.Equal(t, entity.TileEmpty, out.Tiles[p.Row][p.Col], "cell %v", p)
		}
		assert.Equal(t, entity.TileGround, out.Tiles[2][0])
	})

	t.Run("input is untouched", func(t *testing.T) {
		assert.Equal(t, entity.TileCheckpoint, d.Tiles[1][1])
		assert.Equal(t, []entity.Point{{Col: 0, Row: 0}}, d.Checkpoints)
	})

	t.Run("records survive when there are no markers", func(t *testing.T) {
		plain := leveltest.Grid("...", "###")
		plain.Checkpoints = []entity.Point{{Col: 1, Row: 1}}
		plain.Goal = entity.Point{Col: 2, Row: 1}

		got := NormalizeLevelData(plain)

		assert.Equal(t, plain.Checkpoints, got.Checkpoints)
		assert.Equal(t, plain.Goal, got.Goal)
	})
}

func TestValidateCollectibles(t *testing.T) {
	d := leveltest.Grid(
		"....",
		".#..",
		"####",
	)
	d.Collectibles = []entity.CollectibleSpawn{
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 0, Row: 1}},  // free
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 3, Row: 2}},  // embedded, room above
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 1, Row: 2}},  // embedded, wall above
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 9, Row: 0}},  // out of bounds
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 1, Row: -1}}, // out of bounds
	}

	var buf bytes.Buffer
	out := ValidateCollectibles(d, log.New(&buf))

	require.Len(t, out, 5)
	assert.Equal(t, entity.Point{Col: 0, Row: 1}, out[0].Pos)
	assert.Equal(t, entity.Point{Col: 3, Row: 1}, out[1].Pos)
	assert.Equal(t, entity.Point{Col: 1, Row: 2}, out[2].Pos)
	assert.Equal(t, entity.Point{Col: 9, Row: 0}, out[3].Pos)
	assert.Equal(t, entity.Point{Col: 1, Row: -1}, out[4].Pos)

	assert.Contains(t, buf.String(), "collectible inside solid tile")
	assert.Contains(t, buf.String(), "collectible out of bounds")
	assert.Equal(t, entity.Point{Col: 3, Row: 2}, d.Collectibles[1].Pos, "input must not change")
}

func TestValidateCollectibles_TopRow(t *testing.T) {
	d := leveltest.Grid("#", ".")
	d.Collectibles = []entity.CollectibleSpawn{{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 0, Row: 0}}}

	out := ValidateCollectibles(d, log.New(io.Discard))

	assert.Equal(t, entity.Point{Col: 0, Row: 0}, out[0].Pos)
}

func TestLevelHelpers_ShortGrid(t *testing.T) {
	d := leveltest.Grid(
		"....",
		"####",
	)
	d.Height = 3
	d.Checkpoints = []entity.Point{{Col: 1, Row: 2}}
	d.Goal = entity.Point{Col: 3, Row: 2}
	d.Collectibles = []entity.CollectibleSpawn{
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 0, Row: 2}},
		{Kind: entity.CollectibleCoin, Pos: entity.Point{Col: 2, Row: 1}},
	}

	var flags []*entity.Flag
	var out []entity.CollectibleSpawn
	require.NotPanics(t, func() {
		flags = BuildFlags(d)
		out = ValidateCollectibles(d, log.New(io.Discard))
	})

	require.Len(t, flags, 2)
	assert.Equal(t, entity.Point{Col: 1, Row: 2}, flags[0].Tile)
	assert.Equal(t, entity.Point{Col: 3, Row: 2}, flags[1].Tile)
	assert.Equal(t, entity.Point{Col: 0, Row: 2}, out[0].Pos)
	assert.Equal(t, entity.Point{Col: 2, Row: 0}, out[1].Pos)
}

func TestBuildFlags(t *testing.T) {
	d := leveltest.Grid(
		"........",
		"........",
		"........",
		"########",
	)
	d.Checkpoints = []entity.Point{{Col: 5, Row: 1}, {Col: 2, Row: 0}}
	d.Goal = entity.Point{Col: 7, Row: 3}

	flags := BuildFlags(d)
	require.Len(t, flags, 3)

	t.Run("checkpoints sorted and anchored to the surface", func(t *testing.T) {
		first := flags[0]
		assert.Equal(t, entity.FlagCheckpoint, first.Kind)
		assert.Equal(t, entity.Point{Col: 2, Row: 3}, first.Tile)
		assert.Equal(t, entity.Vec2{X: 40, Y: 48}, first.Anchor)
		assert.Equal(t, entity.Rect{X: 34, Y: 32, W: 12, H: 16}, first.Trigger)
		assert.Equal(t, entity.FlagInactive, first.State)
		assert.True(t, first.Enabled)

		assert.Equal(t, 5, flags[1].Tile.Col)
	})

	t.Run("goal", func(t *testing.T) {
		goal := flags[2]
		assert.Equal(t, entity.FlagGoal, goal.Kind)
		assert.Equal(t, entity.Point{Col: 7, Row: 3}, goal.Tile)
		assert.Equal(t, entity.Vec2{X: 120, Y: 48}, goal.Anchor)
		assert.Equal(t, entity.Rect{X: 112, Y: 16, W: 16, H: 32}, goal.Trigger)
		assert.True(t, goal.Enabled)
	})

	t.Run("goal disabled on boss levels", func(t *testing.T) {
		d.BossLevel = true
		flags := BuildFlags(d)
		assert.False(t, flags[len(flags)-1].Enabled)
	})

	t.Run("marker below the grid is clamped", func(t *testing.T) {
		gapped := leveltest.Grid(
			"....",
			"....",
		)
		gapped.Goal = entity.Point{Col: 1, Row: 9}

		flags := BuildFlags(gapped)

		assert.Equal(t, entity.Point{Col: 1, Row: 1}, flags[0].Tile)
		assert.Equal(t, entity.Rect{X: 16, Y: 0, W: 16, H: 32}, flags[0].Trigger)
	})
}
