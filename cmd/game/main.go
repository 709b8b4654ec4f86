// fekagaps is a side-scrolling platformer: run, stomp and pound your way
// through the levels and beat the boss in the last arena.
//
// Usage:
//
//	fekagaps play                      - Play the campaign
//	fekagaps replay <file>             - Re-simulate a recorded run headless
//	fekagaps validate [level ...]      - Check level files
//	fekagaps import <map.tmx> <out>    - Convert a Tiled map to a level file
//	fekagaps paint <level> <c> <r> <tool> - Edit one tile of a level file
//	fekagaps scores                    - Show the best runs
//
// Global flags:
//
//	--config <dir>  - Load configs from a directory instead of the built-in set
//	--seed <value>  - RNG seed for reproducible runs
//	--db <path>     - Score database path (default: ~/.fekagaps/scores.db)
//	--debug         - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "fekagaps"

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Super Feka Gaps - a side-scrolling platformer",
	Long: `Super Feka Gaps is a side-scrolling platformer with stompable
minions, falling platforms, power-ups and a boss arena.

Examples:
  fekagaps play
  fekagaps play --level 2 --record replays
  fekagaps play --config ./configs --watch
  fekagaps replay replays/replay_20260101_120000.json
  fekagaps validate
  fekagaps scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config directory (empty = built-in configs)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fekagaps/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(paintCmd)
	rootCmd.AddCommand(scoresCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
