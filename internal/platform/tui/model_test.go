package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/games/snake"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('s'), core.ActionDown},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()
	if got := keys.MenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, expected scoreboard", got)
	}
	if got := keys.MenuAction(runeKey('j')); got != MenuActionDown {
		t.Errorf("j = %v, expected down", got)
	}
}

// shortGame loses on its second world step: a three-segment snake sheds
// two segments on every hazard drop.
func shortGame() *snake.Game {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 8
	cfg.Grid.SpawnIndex = 10
	cfg.Hazard.Iterations = 1
	cfg.Speed.MoveEveryTicks = 1
	cfg.Difficulty.Enabled = false
	return snake.NewWithConfig(false, cfg)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := NewModel(shortGame(), store, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 5}, WithPlayer("tester"))
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 4; i++ {
		m, _ = update(t, m, TickMsg{Loop: m.loop})
	}

	if !m.GameState().GameOver {
		t.Fatalf("GameState() = %+v, expected game over", m.GameState())
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	if runs[0].Outcome != "lost" || runs[0].Player != "tester" || runs[0].GameID != snake.IDSoft {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := shortGame()
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 5})
	m.Init()

	m, cmd := update(t, m, TickMsg{Loop: m.loop + 1})
	if cmd != nil {
		t.Error("a stale tick should not schedule another")
	}
	if game.Snapshot().Tick != 0 {
		t.Error("a stale tick should not step the game")
	}

	_, cmd = update(t, m, TickMsg{Loop: m.loop})
	if cmd == nil || game.Snapshot().Tick != 1 {
		t.Error("a current tick should step the game and reschedule")
	}
}

func TestModelBack(t *testing.T) {
	m := NewModel(shortGame(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 5}, WithMenuBack())
	m.Init()
	m, _ = update(t, m, TickMsg{Loop: m.loop})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("esc before the game starts should return to the menu")
	}

	standalone := NewModel(shortGame(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 5})
	standalone.Init()
	standalone, cmd := update(t, standalone, tea.KeyMsg{Type: tea.KeyEsc})
	if !standalone.IsQuitting() || cmd == nil {
		t.Error("esc without a menu should quit")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(shortGame(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 5})
	m.Init()

	view := m.View()
	for _, want := range []string{"Press Enter to start", "Points: 0", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 25 {
		t.Errorf("View() has %d lines, expected 25", lines)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorGreen)
	s.DrawText(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestMenuModel(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) < 2 {
		t.Fatalf("menu lists %d variants, expected both snake variants", len(m.items))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().GameID != snake.IDHard || cmd == nil {
		t.Errorf("Selected() = %+v, expected %q", menu.Selected(), snake.IDHard)
	}
}

func TestDifficultyModel(t *testing.T) {
	m := NewDifficultyModel("Snake", 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(DifficultyModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(DifficultyModel).Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := next.(DifficultyModel).Selected()
	if got == nil || *got != config.DifficultyHard {
		t.Errorf("Selected() = %v, expected hard", got)
	}
}

func TestScoreboardModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(snake.IDHard, 9); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(storage.RunResult{GameID: snake.IDHard, Points: 9, Length: 12, Outcome: "lost"}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, snake.IDHard, 100, 30)
	if m.games[m.gameCursor].ID != snake.IDHard {
		t.Fatalf("scoreboard opened on %q, expected %q", m.games[m.gameCursor].ID, snake.IDHard)
	}
	if len(m.scores) != 1 {
		t.Fatalf("loaded %d scores, expected 1", len(m.scores))
	}
	view := m.View()
	for _, want := range []string{"Snake (Hard Hazards)", "1 runs", "longest snake 12"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID == snake.IDHard || len(m.scores) != 0 {
		t.Errorf("tab should switch to the other variant, got %q with %d scores",
			m.games[m.gameCursor].ID, len(m.scores))
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should leave the scoreboard")
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
	var m tea.Model = NewSessionModel(nil, cfg, "tester", log.New(io.Discard))

	send := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		return cmd
	}
	screen := func() sessionScreen {
		return m.(SessionModel).current
	}

	send(tea.KeyMsg{Type: tea.KeyEnter})
	if screen() != screenGame {
		t.Fatalf("enter on the menu should start a game, screen = %d", screen())
	}

	send(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("esc before starting should return to the menu, screen = %d", screen())
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if screen() != screenScores {
		t.Fatalf("tab should open the scoreboard, screen = %d", screen())
	}
	send(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("esc should leave the scoreboard, screen = %d", screen())
	}

	if cmd := send(runeKey('q')); cmd == nil || m.View() != "" {
		t.Error("q on the menu should end the session")
	}
}
