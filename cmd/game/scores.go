package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/torbware/fekagaps/internal/infrastructure/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the top runs from the score database, with the high score
and the fastest completed run.

Examples:
  fekagaps scores
  fekagaps scores --limit 25 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	return printScores(cmd.OutOrStdout(), store, flagScoresLimit)
}

func printScores(w io.Writer, store *storage.ScoreStore, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintln(w, titleStyle.Render("High Scores - Super Feka Gaps"))
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w, dimStyle.Render("Run 'fekagaps play' to set the first high score!"))
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for i, run := range runs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(run.Score),
			formatMs(run.TimeMs),
			strconv.Itoa(run.LevelsCleared),
			yesNo(run.Completed),
			run.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Rank", "Score", "Time", "Levels", "Completed", "Date"}, rows))

	high, err := store.HighScore()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Best: %d\n", high)

	best, ok, err := store.BestTime()
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(w, "Fastest clear: %s\n", formatMs(best))
	}
	return nil
}
