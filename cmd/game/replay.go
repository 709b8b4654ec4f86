package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/application/replay"
	"github.com/torbware/fekagaps/internal/application/session"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded run without a window",
	Long: `Play a replay file back against the current levels and print where
the run ends up. The same levels, seed and inputs always give the same
result, so a changed result means the game logic or the levels changed.

Examples:
  fekagaps replay replays/replay_20260101_120000.json
  fekagaps replay --config ./configs run.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}

	loader, err := openLoader()
	if err != nil {
		return err
	}
	cfg, levels, err := loadGame(loader)
	if err != nil {
		return err
	}
	if data.Level < 0 || data.Level >= len(levels) {
		return fmt.Errorf("replay starts at level %d, but only %d levels are loaded", data.Level, len(levels))
	}
	if id := levels[data.Level].ID; id != data.LevelID {
		logger.Warn("replay was recorded on a different level", "recorded", data.LevelID, "loaded", id)
	}

	res, err := replay.Run(levels, *data, session.Options{
		Physics:  cfg.Physics,
		Entities: cfg.Entities,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	printReplayResult(cmd.OutOrStdout(), args[0], data, res)
	return nil
}

func printReplayResult(w io.Writer, name string, data *replay.ReplayData, res replay.Result) {
	fmt.Fprintln(w, titleStyle.Render("Replay - "+name))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("seed %d, recorded %s", data.Seed, data.StartTime)))

	rows := [][]string{
		{"Frames", strconv.Itoa(res.Frames)},
		{"Final state", res.State.String()},
		{"Level", strconv.Itoa(res.LevelIndex)},
		{"Levels cleared", strconv.Itoa(res.LevelsCleared)},
		{"Score", strconv.Itoa(res.Score)},
		{"Coins", strconv.Itoa(res.Coins)},
		{"Lives", strconv.Itoa(res.Lives)},
		{"Deaths", strconv.Itoa(res.Deaths)},
		{"Run time", formatMs(int64(res.RunTimeMs))},
	}
	fmt.Fprintln(w, renderTable([]string{"", "Result"}, rows))
}
