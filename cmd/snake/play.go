package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/games/snake"
	"github.com/vovakirdan/poopy-snake/internal/platform/tui"
	"github.com/vovakirdan/poopy-snake/internal/registry"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing. Without a variant, a menu lets you pick one and
returns there after every game.

Controls:
  Arrows/WASD  - Steer
  Enter/Space  - Start
  P            - Pause
  R            - Restart (after a win or loss)
  Esc          - Back to the menu (when paused or over)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot to ~/.snake/screenshots

Difficulty options (asked interactively when not given):
  easy   - Slow, hazards every 80 moves, soft hazards
  normal - Speeds up as you score
  hard   - Fast, hazards every 30 moves, hazards end the game
  fixed  - No speed-up

Examples:
  snake play
  snake play snake --difficulty easy
  snake play snake_hard --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	// Fail before entering the alt screen if the config is broken.
	if _, err := config.LoadSnake(flagConfig); err != nil {
		return err
	}
	snake.SetConfigPath(flagConfig)

	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown variant %q (run 'snake list' to see them)", args[0])
	}

	logger, err := newLogger("snake")
	if err != nil {
		return err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := terminalConfig()
	if len(args) == 1 {
		_, err := playOne(args[0], preset, store, cfg, false)
		return err
	}
	return menuLoop(preset, store, cfg)
}

// terminalConfig sizes the runtime config to the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playOne asks for a difficulty unless one was given and runs the game.
// It reports whether the player wants the menu back.
func playOne(gameID string, preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig, fromMenu bool) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}

	if preset == "" {
		chosen, err := tui.RunDifficultySelector(game.Title(), cfg)
		if err != nil {
			return false, err
		}
		if chosen == nil {
			return fromMenu, nil
		}
		preset = *chosen
	}
	snake.SetDifficultyPreset(preset)

	opts := []tui.ModelOption{tui.WithPlayer(os.Getenv("USER"))}
	if fromMenu {
		opts = append(opts, tui.WithMenuBack())
	}
	return tui.Run(game, store, cfg, opts...)
}
