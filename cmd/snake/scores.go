package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/poopy-snake/internal/platform/tui"
	"github.com/vovakirdan/poopy-snake/internal/registry"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores and run statistics for a variant.

Examples:
  snake scores snake
  snake scores snake_hard --limit 20
  snake scores snake --interactive
  snake scores snake --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a TUI table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'snake list' to see them)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s.\n", gameID)
		return nil
	}

	if flagInteractive {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	return printScores(cmd, store, gameID)
}

func printScores(cmd *cobra.Command, store *storage.Store, gameID string) error {
	out := cmd.OutOrStdout()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'snake play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %s\n", "Rank", "Points", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %s\n", "----", "------", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d\n", scores[0].Score)
	if stats.RunCount > 0 {
		fmt.Fprintf(out, "Runs: %d (won %d), average %.1f points, longest snake %d\n",
			stats.RunCount, stats.Wins, stats.AvgScore, stats.LongestRun)
	}
	return nil
}
