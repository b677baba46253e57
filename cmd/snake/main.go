// snake is a terminal Snake game on a wrap-around board where the snake
// periodically leaves hazards behind.
//
// Usage:
//
//	snake list               - List available variants
//	snake play [variant]     - Play a variant, or pick one from the menu
//	snake scores <variant>   - Show high scores for a variant
//	snake serve              - Start SSH server for remote play
//	snake web                - Serve the leaderboard as JSON over HTTP
//	snake sim [variant]      - Run a headless game driven by the autopilot
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/poopy-snake/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake on a torus, with hazards",
	Long: `Snake is played on a square board whose edges wrap around.
Eat the reward (*) to grow and score. Every few dozen moves the snake
sheds its last two segments and leaves a hazard (%) where they were:
stepping on it costs points, or the game in the hard variant.

Available commands:
  list     - Show all variants
  play     - Play a variant directly or via the menu
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Serve the leaderboard over HTTP
  sim      - Headless autopilot run

Examples:
  snake play
  snake play snake_hard --difficulty easy
  snake serve --ssh :2222
  snake web --addr :8080
  snake sim --ticks 2000 --seed 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS < 1 {
			return fmt.Errorf("--fps must be at least 1, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger for the given component.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
