package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

var flagImportID string

var importCmd = &cobra.Command{
	Use:   "import <map.tmx> <level.yaml>",
	Short: "Convert a Tiled map into a level file",
	Long: `Read a Tiled map and write it out as a level YAML file. Tiles come
from the "tiles" layer; spawn, goal, checkpoints, enemies and items
come from objects in the "entities" group.

Examples:
  fekagaps import maps/castle.tmx configs/levels/level_3.yaml --id 3`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportID, "id", "0", "Level ID (its campaign index)")
}

func runImport(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	cfg, err := config.LoadTMX(os.DirFS(filepath.Dir(src)), filepath.Base(src), flagImportID)
	if err != nil {
		return err
	}

	// refuse to write a level the game could not load
	d, err := system.LoadLevel(cfg, config.DefaultEntities().Rules.LevelTimeSeconds)
	if err != nil {
		return err
	}
	if err := level.ValidateLevel(d); err != nil {
		return fmt.Errorf("imported level is invalid: %w", err)
	}

	if err := config.SaveLevel(dst, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(
		fmt.Sprintf("imported %s (%dx%d) to %s", src, d.Width, d.Height, dst)))
	return nil
}
