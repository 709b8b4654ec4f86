package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

var paintCmd = &cobra.Command{
	Use:   "paint <level.yaml> <col> <row> <tool>",
	Short: "Edit one tile of a level file",
	Long: `Apply a paint tool at a tile and save the level.

Tools:
  <tile name>            - set the tile (ground, brick, spike, ice, ...)
  minion, boss           - place an enemy (replacing one already there)
  coin, coffee, helmet   - place an item
  spawn                  - move the player spawn
  erase                  - clear the tile and anything placed on it

Examples:
  fekagaps paint configs/levels/level_0.yaml 12 8 spike
  fekagaps paint configs/levels/level_0.yaml 3 9 spawn`,
	Args: cobra.ExactArgs(4),
	RunE: runPaint,
}

func runPaint(cmd *cobra.Command, args []string) error {
	path := args[0]
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid column %q", args[1])
	}
	row, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid row %q", args[2])
	}
	tool, err := parseTool(args[3])
	if err != nil {
		return err
	}

	cfg, err := config.ReadLevelFile(path)
	if err != nil {
		return err
	}
	d, err := system.LoadLevel(cfg, 0)
	if err != nil {
		return err
	}

	at := entity.Point{Col: col, Row: row}
	if !tool.Apply(d, at) {
		return fmt.Errorf("(%d,%d) is outside the %dx%d level", col, row, d.Width, d.Height)
	}
	if err := level.ValidateLevel(d); err != nil {
		return fmt.Errorf("edit leaves the level invalid: %w", err)
	}

	if err := config.SaveLevel(path, paintedConfig(cfg, d)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("painted %s at (%d,%d)", args[3], col, row)))
	return nil
}

// paintedConfig keeps what the edit cannot change from the original file:
// an unset time limit stays unset.
func paintedConfig(orig *config.LevelConfig, d *entity.LevelData) *config.LevelConfig {
	out := system.LevelConfigOf(d)
	out.TimeLimit = orig.TimeLimit
	return out
}

// parseTool maps a tool name to its paint tool. Anything that is not an
// entity or a special tool is read as a tile name.
func parseTool(name string) (entity.PaintTool, error) {
	switch name = strings.ToLower(name); name {
	case "spawn":
		return entity.PaintSpawn{}, nil
	case "erase", "eraser":
		return entity.PaintEraser{}, nil
	case string(entity.EnemyMinion), string(entity.EnemyBoss):
		return entity.PaintEnemy{Kind: entity.EnemyKind(name)}, nil
	case string(entity.CollectibleCoin), string(entity.CollectibleCoffee), string(entity.CollectibleHelmet):
		return entity.PaintCollectible{Kind: entity.CollectibleKind(name)}, nil
	}

	t, ok := system.TileByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown paint tool %q", name)
	}
	return entity.PaintTile{Tile: t}, nil
}
