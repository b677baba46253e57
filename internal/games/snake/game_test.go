package snake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/registry"
	"github.com/vovakirdan/poopy-snake/internal/world"
)

// testConfig is an 8x8 board with the head at cell 10, one world step per
// host tick and no hazards.
func testConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 8
	cfg.Grid.SpawnIndex = 10
	cfg.Hazard.Iterations = 0
	cfg.Speed.MoveEveryTicks = 1
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.SnakeConfig) *Game {
	t.Helper()
	g := NewWithConfig(false, cfg)
	g.Reset(core.RuntimeConfig{Seed: 7, ScreenW: 80, ScreenH: 24})
	if g.World() == nil {
		t.Fatalf("Reset() left no world: %v", g.cfgErr)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func head(t *testing.T, g *Game) int {
	t.Helper()
	h, ok := g.World().SnakeHeadIndex()
	if !ok {
		t.Fatal("snake has no head")
	}
	return h
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDSoft, IDHard} {
		if !registry.Exists(id) {
			t.Errorf("variant %q is not registered", id)
		}
	}
	g, err := registry.Create(IDHard)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", IDHard, err)
	}
	if g.ID() != IDHard {
		t.Errorf("ID() = %q, expected %q", g.ID(), IDHard)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.SpawnIndex = -1
	cfg.Hazard.Iterations = 9
	rc := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24}

	g1 := NewWithConfig(false, cfg)
	g1.Reset(rc)
	g2 := NewWithConfig(false, cfg)
	g2.Reset(rc)

	script := map[int]core.Action{
		0:  core.ActionConfirm,
		5:  core.ActionDown,
		11: core.ActionLeft,
		17: core.ActionUp,
		30: core.ActionRight,
	}
	for i := 0; i < 60; i++ {
		in := core.NewInputFrame()
		if a, ok := script[i]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestConfirmStartsGame(t *testing.T) {
	g := newTestGame(t, testConfig())

	for i := 0; i < 5; i++ {
		g.Step(frame())
	}
	if head(t, g) != 10 {
		t.Fatalf("snake moved before the game started: head %d", head(t, g))
	}
	if g.World().GameStatus() != world.StatusNone {
		t.Fatalf("status = %v, expected none", g.World().GameStatus())
	}

	g.Step(frame(core.ActionConfirm))
	if g.World().GameStatus() != world.StatusPlayed {
		t.Fatalf("status = %v, expected played", g.World().GameStatus())
	}
	if head(t, g) != 11 {
		t.Errorf("head = %d, expected 11 after the first step", head(t, g))
	}
}

func TestDirectionInput(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(frame(core.ActionConfirm)) // head 11

	g.Step(frame(core.ActionDown))
	if head(t, g) != 19 {
		t.Errorf("head = %d, expected 19 after turning down", head(t, g))
	}

	// Reversing onto the neck is dropped; the snake keeps going down.
	g.Step(frame(core.ActionUp))
	if head(t, g) != 27 {
		t.Errorf("head = %d, expected 27 after an ignored reversal", head(t, g))
	}

	// The last accepted request in a frame wins.
	g.Step(frame(core.ActionLeft, core.ActionRight))
	if head(t, g) != 28 {
		t.Errorf("head = %d, expected 28", head(t, g))
	}
}

func TestMoveInterval(t *testing.T) {
	cfg := testConfig()
	cfg.Speed.MoveEveryTicks = 4
	g := newTestGame(t, cfg)

	g.Step(frame(core.ActionConfirm))
	for i := 0; i < 7; i++ {
		g.Step(frame())
	}
	if s := g.Snapshot(); s.Steps != 2 || s.Head != 12 {
		t.Errorf("after 8 ticks: steps %d head %d, expected 2 and 12", s.Steps, s.Head)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := head(t, g)
	for i := 0; i < 3; i++ {
		g.Step(frame())
	}
	if head(t, g) != before {
		t.Error("snake moved while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused || head(t, g) == before {
		t.Error("unpausing should resume movement")
	}
}

func TestPauseIgnoredBeforeStart(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should only toggle while playing")
	}
}

func TestLossAndRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Hazard.Iterations = 1
	g := newTestGame(t, cfg)

	// A three-segment snake sheds two segments on the first step and has
	// nothing left to shed on the second.
	g.Step(frame(core.ActionConfirm))
	g.Step(frame())

	st := g.State()
	if !st.GameOver || st.Won || st.Status != "You have lost!" {
		t.Fatalf("State() = %+v, expected a loss", st)
	}
	if sum := g.Summary(); sum.Outcome != "lost" || sum.Steps != 2 || sum.Width != 8 {
		t.Errorf("Summary() = %+v", sum)
	}

	g.Step(frame(core.ActionRestart))
	if g.World().GameStatus() != world.StatusNone || g.Snapshot().Steps != 0 {
		t.Errorf("restart should build a fresh world, got %+v", g.Snapshot())
	}
	if g.State().GameOver {
		t.Error("restarted game should not be over")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionRestart))
	if g.Snapshot().Steps != 2 {
		t.Errorf("restart during play should be ignored, steps = %d", g.Snapshot().Steps)
	}
}

func TestHardVariantForcesHardHazards(t *testing.T) {
	g := NewWithConfig(true, testConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if g.World().HazardMode() != world.HazardHard {
		t.Errorf("HazardMode() = %v, expected hard", g.World().HazardMode())
	}
	if g.ID() != IDHard {
		t.Errorf("ID() = %q, expected %q", g.ID(), IDHard)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewWithConfig(false, testConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 10, ScreenH: 10})

	if !g.Snapshot().TooSmall {
		t.Fatal("10x10 terminal should be too small for an 8x8 board")
	}
	g.Step(frame(core.ActionConfirm))
	if g.World().GameStatus() != world.StatusNone {
		t.Error("game should not start while the window is too small")
	}

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small overlay")
	}

	g.Resize(80, 24)
	if g.Snapshot().TooSmall {
		t.Error("resizing up should clear the too-small state")
	}
}

func TestResizeKeepsWorld(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Step(frame(core.ActionConfirm))
	w := g.World()

	g.Resize(100, 40)
	if g.World() != w || head(t, g) != 11 {
		t.Error("Resize() should not rebuild the world")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Board is 19 columns wide, centered: x = 30, y = 2. Cell 10 is row 1,
	// column 2.
	if r := screen.Get(30+2+2*cellW, 2+1+1); r != glyphHead {
		t.Errorf("head glyph = %q, expected %q", r, glyphHead)
	}
	if r := screen.Get(30+2+1*cellW, 2+1+1); r != glyphBody {
		t.Errorf("body glyph = %q, expected %q", r, glyphBody)
	}
	// Rows from y = 9 down sit under the start overlay.
	if cell, ok := g.World().RewardCell(); ok && 2+1+cell/8 < 9 {
		x := 30 + 2 + (cell%8)*cellW
		y := 2 + 1 + cell/8
		if r := screen.Get(x, y); r != glyphReward {
			t.Errorf("reward glyph = %q, expected %q", r, glyphReward)
		}
	}

	out := screen.String()
	for _, want := range []string{"Points: 0", "Length: 3", "Press Enter to start"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestConfigError(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Width = 1
	g := NewWithConfig(false, cfg)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if g.World() != nil {
		t.Fatal("invalid config should not build a world")
	}
	g.Step(frame(core.ActionConfirm))
	if st := g.State(); st.GameOver || st.Status != "No status" {
		t.Errorf("State() = %+v", st)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Configuration error") {
		t.Error("expected the configuration error overlay")
	}
}

func TestPackageSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  width: 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset(config.DifficultyHard)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24})
	if g.World() == nil {
		t.Fatalf("Reset() failed: %v", g.cfgErr)
	}
	if g.World().Width() != 6 {
		t.Errorf("Width() = %d, expected 6 from the config file", g.World().Width())
	}
	if g.World().HazardMode() != world.HazardHard {
		t.Error("hard preset should switch to hard hazards")
	}
	if g.Config().Speed.MoveEveryTicks != 5 {
		t.Errorf("MoveEveryTicks = %d, expected the hard preset's 5", g.Config().Speed.MoveEveryTicks)
	}
}
