package system

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

var tilesByName = map[string]entity.TileType{
	"empty":                entity.TileEmpty,
	"ground":               entity.TileGround,
	"brick":                entity.TileBrick,
	"platform":             entity.TilePlatform,
	"spike":                entity.TileSpike,
	"checkpoint":           entity.TileCheckpoint,
	"flag":                 entity.TileFlag,
	"coin":                 entity.TileCoin,
	"powerup_coffee":       entity.TilePowerupCoffee,
	"powerup_helmet":       entity.TilePowerupHelmet,
	"brick_breakable":      entity.TileBrickBreakable,
	"powerup_block_coffee": entity.TilePowerupBlockCoffee,
	"powerup_block_helmet": entity.TilePowerupBlockHelmet,
	"block_used":           entity.TileBlockUsed,
	"spring":               entity.TileSpring,
	"ice":                  entity.TileIce,
	"platform_falling":     entity.TilePlatformFalling,
	"lava_top":             entity.TileLavaTop,
	"lava_fill":            entity.TileLavaFill,
	"hidden_block":         entity.TileHiddenBlock,
}

// TileByName resolves a level file tile name
func TileByName(name string) (entity.TileType, bool) {
	t, ok := tilesByName[name]
	return t, ok
}

// LoadLevel converts a LevelConfig into level data. Rows keep their own
// length so that level.Validate can report ragged maps; an unknown glyph
// or tile name is an error. defaultTime applies when the file sets none.
func LoadLevel(cfg *config.LevelConfig, defaultTime float64) (*entity.LevelData, error) {
	legend := cfg.LegendFor()

	var errs []error
	tiles := make([][]entity.TileType, len(cfg.Rows))
	for row, line := range cfg.Rows {
		runes := []rune(line)
		tiles[row] = make([]entity.TileType, len(runes))
		for col, r := range runes {
			name, ok := legend[string(r)]
			if !ok {
				errs = append(errs, fmt.Errorf("level %s: unknown glyph %q at (%d,%d)", cfg.ID, r, col, row))
				continue
			}
			tile, ok := tilesByName[name]
			if !ok {
				errs = append(errs, fmt.Errorf("level %s: unknown tile %q for glyph %q", cfg.ID, name, r))
				continue
			}
			tiles[row][col] = tile
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	width := 0
	if len(tiles) > 0 {
		width = len(tiles[0])
	}

	timeLimit := cfg.TimeLimit
	if timeLimit <= 0 {
		timeLimit = defaultTime
	}

	d := &entity.LevelData{
		ID:          cfg.ID,
		Name:        cfg.Name,
		Width:       width,
		Height:      len(tiles),
		Tiles:       tiles,
		PlayerSpawn: pointOf(cfg.Spawn),
		Goal:        pointOf(cfg.Goal),
		TimeLimit:   timeLimit,
		BossLevel:   cfg.Boss,
		Theme:       cfg.Theme,
	}
	for _, cp := range cfg.Checkpoints {
		d.Checkpoints = append(d.Checkpoints, pointOf(cp))
	}
	for _, e := range cfg.Enemies {
		kind := entity.EnemyKind(e.Kind)
		if kind != entity.EnemyMinion && kind != entity.EnemyBoss {
			return nil, fmt.Errorf("level %s: unknown enemy %q", cfg.ID, e.Kind)
		}
		d.Enemies = append(d.Enemies, entity.EnemySpawn{Kind: kind, Pos: entity.Point{Col: e.Col, Row: e.Row}})
	}
	for _, c := range cfg.Collectibles {
		kind := entity.CollectibleKind(c.Kind)
		switch kind {
		case entity.CollectibleCoin, entity.CollectibleCoffee, entity.CollectibleHelmet:
		default:
			return nil, fmt.Errorf("level %s: unknown collectible %q", cfg.ID, c.Kind)
		}
		d.Collectibles = append(d.Collectibles, entity.CollectibleSpawn{Kind: kind, Pos: entity.Point{Col: c.Col, Row: c.Row}})
	}

	return d, nil
}

// LevelConfigOf converts level data back into its file form using the
// default legend.
func LevelConfigOf(d *entity.LevelData) *config.LevelConfig {
	glyphs := make(map[string]string, len(config.DefaultLegend))
	for g, name := range config.DefaultLegend {
		glyphs[name] = g
	}
	names := make(map[entity.TileType]string, len(tilesByName))
	for name, t := range tilesByName {
		names[t] = name
	}

	cfg := &config.LevelConfig{
		ID:        d.ID,
		Name:      d.Name,
		TimeLimit: d.TimeLimit,
		Boss:      d.BossLevel,
		Theme:     d.Theme,
		Spawn:     configPoint(d.PlayerSpawn),
		Goal:      configPoint(d.Goal),
	}
	for _, row := range d.Tiles {
		line := make([]byte, 0, len(row))
		for _, t := range row {
			line = append(line, glyphs[names[t]]...)
		}
		cfg.Rows = append(cfg.Rows, string(line))
	}
	for _, cp := range d.Checkpoints {
		cfg.Checkpoints = append(cfg.Checkpoints, configPoint(cp))
	}
	for _, e := range d.Enemies {
		cfg.Enemies = append(cfg.Enemies, config.SpawnConfig{Kind: string(e.Kind), Col: e.Pos.Col, Row: e.Pos.Row})
	}
	for _, c := range d.Collectibles {
		cfg.Collectibles = append(cfg.Collectibles, config.SpawnConfig{Kind: string(c.Kind), Col: c.Pos.Col, Row: c.Pos.Row})
	}
	return cfg
}

func pointOf(p config.PointConfig) entity.Point {
	return entity.Point{Col: p.Col, Row: p.Row}
}

func configPoint(p entity.Point) config.PointConfig {
	return config.PointConfig{Col: p.Col, Row: p.Row}
}

// NormalizeLevelData returns a copy of d with marker tiles turned into
// level records: CHECKPOINT tiles replace the checkpoint list, the first
// FLAG tile becomes the goal, and legacy COIN and power-up tiles become
// collectibles. Every converted cell is left EMPTY.
func NormalizeLevelData(d *entity.LevelData) *entity.LevelData {
	out := d.Clone()

	var checkpoints, goals []entity.Point
	for row, line := range out.Tiles {
		for col, tile := range line {
			at := entity.Point{Col: col, Row: row}
			switch tile {
			case entity.TileCheckpoint:
				checkpoints = append(checkpoints, at)
			case entity.TileFlag:
				goals = append(goals, at)
			case entity.TileCoin:
				out.Collectibles = append(out.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleCoin, Pos: at})
			case entity.TilePowerupCoffee:
				out.Collectibles = append(out.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleCoffee, Pos: at})
			case entity.TilePowerupHelmet:
				out.Collectibles = append(out.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleHelmet, Pos: at})
			default:
				continue
			}
			line[col] = entity.TileEmpty
		}
	}

	if len(checkpoints) > 0 {
		out.Checkpoints = checkpoints
	}
	if len(goals) > 0 {
		out.Goal = goals[0]
	}
	return out
}

// ValidateCollectibles returns the collectible list with items that sit
// inside solid tiles moved one row up when that row is free.
func ValidateCollectibles(d *entity.LevelData, logger *log.Logger) []entity.CollectibleSpawn {
	out := make([]entity.CollectibleSpawn, len(d.Collectibles))
	for i, c := range d.Collectibles {
		out[i] = c
		if !d.InBounds(c.Pos) {
			logger.Warn("collectible out of bounds", "level", d.ID, "col", c.Pos.Col, "row", c.Pos.Row, "kind", c.Kind)
			continue
		}

		tile := d.TileAt(c.Pos)
		if !tile.EmbedsItem() {
			continue
		}
		logger.Warn("collectible inside solid tile", "level", d.ID, "col", c.Pos.Col, "row", c.Pos.Row, "tile", tile, "kind", c.Kind)

		above := entity.Point{Col: c.Pos.Col, Row: c.Pos.Row - 1}
		if d.InBounds(above) && !d.TileAt(above).EmbedsItem() {
			out[i].Pos = above
			logger.Warn("collectible moved", "level", d.ID, "col", above.Col, "row", above.Row, "kind", c.Kind)
		}
	}
	return out
}

// BuildFlags anchors checkpoint and goal flags to the first surface at or
// below their marker. Goals are disabled on boss levels, where beating
// the boss ends the level instead.
func BuildFlags(d *entity.LevelData) []*entity.Flag {
	flags := make([]*entity.Flag, 0, len(d.Checkpoints)+1)

	checkpoints := append([]entity.Point(nil), d.Checkpoints...)
	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].Col < checkpoints[j].Col
	})

	for _, cp := range checkpoints {
		row := surfaceRow(d, cp.Col, cp.Row)
		flags = append(flags, &entity.Flag{
			Kind:   entity.FlagCheckpoint,
			Tile:   entity.Point{Col: cp.Col, Row: row},
			Anchor: flagAnchor(cp.Col, row),
			Trigger: entity.Rect{
				X: float64(cp.Col*entity.TileSize + 2),
				Y: float64(max(0, (row-1)*entity.TileSize)),
				W: entity.TileSize - 4,
				H: entity.TileSize,
			},
			State:   entity.FlagInactive,
			Enabled: true,
		})
	}

	row := surfaceRow(d, d.Goal.Col, d.Goal.Row)
	flags = append(flags, &entity.Flag{
		Kind:   entity.FlagGoal,
		Tile:   entity.Point{Col: d.Goal.Col, Row: row},
		Anchor: flagAnchor(d.Goal.Col, row),
		Trigger: entity.Rect{
			X: float64(d.Goal.Col * entity.TileSize),
			Y: float64(max(0, (row-2)*entity.TileSize)),
			W: entity.TileSize,
			H: entity.TileSize * 2,
		},
		State:   entity.FlagInactive,
		Enabled: !d.BossLevel,
	})

	return flags
}

func flagAnchor(col, row int) entity.Vec2 {
	return entity.Vec2{
		X: float64(col*entity.TileSize + entity.TileSize/2),
		Y: float64(row * entity.TileSize),
	}
}

// surfaceRow finds the first surface tile at or below start in col,
// falling back to start clamped to the grid.
func surfaceRow(d *entity.LevelData, col, start int) int {
	if d.Height == 0 {
		return 0
	}
	start = max(0, min(start, d.Height-1))
	for row := start; row < d.Height; row++ {
		if d.TileAt(entity.Point{Col: col, Row: row}).IsSurface() {
			return row
		}
	}
	return start
}
