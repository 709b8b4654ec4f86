package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [level.yaml|map.tmx ...]",
	Short: "Check level files",
	Long: `Check that level files load and form a playable campaign: every
row the same width, known tiles only, markers on the grid and IDs that
follow the campaign order.

Without arguments the levels from the config manifest are checked.

Examples:
  fekagaps validate
  fekagaps validate --config ./configs
  fekagaps validate level_0.yaml maps/level_1.tmx`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		cfgs        []*config.LevelConfig
		defaultTime = config.DefaultEntities().Rules.LevelTimeSeconds
	)
	if len(args) == 0 {
		loader, err := openLoader()
		if err != nil {
			return err
		}
		entities, err := loader.LoadEntities()
		if err != nil {
			return err
		}
		defaultTime = entities.Rules.LevelTimeSeconds
		if cfgs, err = loader.LoadLevels(); err != nil {
			return err
		}
	} else {
		for i, path := range args {
			c, err := readLevelArg(path, i)
			if err != nil {
				return err
			}
			cfgs = append(cfgs, c)
		}
	}

	levels, err := validateLevels(cfgs, defaultTime)
	printLevels(cmd.OutOrStdout(), levels)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), errStyle.Render(err.Error()))
		return errors.New("validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("all %d levels valid", len(levels))))
	return nil
}

func printLevels(w io.Writer, levels []*entity.LevelData) {
	rows := make([][]string, 0, len(levels))
	for _, d := range levels {
		rows = append(rows, []string{
			d.ID,
			d.Name,
			fmt.Sprintf("%dx%d", d.Width, d.Height),
			strconv.Itoa(len(d.Enemies)),
			strconv.Itoa(len(d.Collectibles)),
			strconv.Itoa(len(d.Checkpoints)),
			strconv.FormatFloat(d.TimeLimit, 'f', -1, 64),
			yesNo(d.BossLevel),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Name", "Size", "Enemies", "Items", "Checkpoints", "Time", "Boss"},
		rows,
	))
}
