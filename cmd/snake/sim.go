package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/games/snake"
	"github.com/vovakirdan/poopy-snake/internal/registry"
	"github.com/vovakirdan/poopy-snake/internal/storage"
	"github.com/vovakirdan/poopy-snake/internal/world"
)

var (
	flagSimTicks      int
	flagSimWidth      int
	flagSimConfig     string
	flagSimDifficulty string
	flagSimSave       bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a headless game driven by the autopilot",
	Long: `Play a game without a terminal UI. A greedy autopilot steers the
snake one move per tick until the game ends or --ticks run out.

Examples:
  snake sim
  snake sim snake_hard --seed 7 --ticks 5000
  snake sim --width 8 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 2000, "Maximum number of moves")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 0, "Board width (0 keeps the configured width)")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom snake config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
}

func runSim(cmd *cobra.Command, args []string) error {
	gameID := snake.IDSoft
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'snake list' to see them)", gameID)
	}

	preset, err := config.ParsePreset(flagSimDifficulty)
	if err != nil {
		return err
	}
	cfg, err := config.LoadSnake(flagSimConfig)
	if err != nil {
		return err
	}
	config.ApplySnakePreset(&cfg, preset)
	if flagSimWidth > 0 {
		cfg.Grid.Width = flagSimWidth
		cfg.Grid.SpawnIndex = -1
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := simulate(gameID == snake.IDHard, cfg, seed, flagSimTicks)
	if err != nil {
		return err
	}
	summary := g.Summary()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (seed %d)\n", g.Title(), seed)
	fmt.Fprintf(out, "  Status: %s\n", g.World().GameStatusText())
	fmt.Fprintf(out, "  Points: %d\n", summary.Points)
	fmt.Fprintf(out, "  Length: %d\n", summary.Length)
	fmt.Fprintf(out, "  Moves:  %d\n", summary.Steps)

	if !flagSimSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunResult{
		GameID:  gameID,
		Player:  "autopilot",
		Points:  summary.Points,
		Length:  summary.Length,
		Steps:   summary.Steps,
		Outcome: summary.Outcome,
		Width:   summary.Width,
		Seed:    summary.Seed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  Saved run %s\n", id)
	return nil
}

// simulate plays one autopilot game. Every tick moves the snake once.
func simulate(hard bool, cfg config.SnakeConfig, seed int64, maxMoves int) (*snake.Game, error) {
	cfg.Speed.MoveEveryTicks = 1
	cfg.Difficulty.Enabled = false

	g := snake.NewWithConfig(hard, cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 1 << 12, ScreenH: 1 << 12, Seed: seed})
	if g.World() == nil {
		return nil, fmt.Errorf("sim: could not build the board")
	}

	start := core.NewInputFrame()
	start.Set(core.ActionConfirm)
	g.Step(start)

	for g.Summary().Steps < maxMoves && !g.State().GameOver {
		in := core.NewInputFrame()
		in.Set(actionFor(snake.Autopilot(g.World())))
		g.Step(in)
	}
	return g, nil
}

func actionFor(d world.Direction) core.Action {
	switch d {
	case world.Up:
		return core.ActionUp
	case world.Down:
		return core.ActionDown
	case world.Left:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}
