// Package snake adapts the world engine to the game registry: it maps
// input actions to headings, paces world steps against the host tick
// rate and draws the torus into a core.Screen.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/registry"
	"github.com/vovakirdan/poopy-snake/internal/world"
)

// Variant IDs.
const (
	IDSoft = "snake"
	IDHard = "snake_hard"
)

const (
	hudHeight = 2
	cellW     = 2 // screen columns per grid cell
)

// Glyphs.
const (
	glyphHead   = '@'
	glyphBody   = 'o'
	glyphReward = '*'
	glyphHazard = '%'
	glyphEmpty  = '·'
)

// Package-level settings chosen by the CLI before a game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML file LoadSnake reads. Empty means the
// default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset applied on every Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements registry.Game over a *world.World.
type Game struct {
	hard  bool
	fixed *config.SnakeConfig // bypasses file loading when set

	cfg      config.SnakeConfig
	cfgErr   error
	world    *world.World
	rng      *rand.Rand
	seed     int64
	tick     uint64
	steps    int
	moveTick int

	screenW  int
	screenH  int
	gridX    int
	gridY    int
	paused   bool
	tooSmall bool
}

// New creates the soft-hazard variant.
func New() *Game {
	return &Game{}
}

// NewHard creates the variant where stepping on a hazard ends the game.
func NewHard() *Game {
	return &Game{hard: true}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// the configuration from disk.
func NewWithConfig(hard bool, cfg config.SnakeConfig) *Game {
	return &Game{hard: hard, fixed: &cfg}
}

func init() {
	registry.Register(IDSoft, func() registry.Game {
		return New()
	})
	registry.Register(IDHard, func() registry.Game {
		return NewHard()
	})
}

var (
	_ registry.Game       = (*Game)(nil)
	_ registry.Resizer    = (*Game)(nil)
	_ registry.Summarizer = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.hard {
		return IDHard
	}
	return IDSoft
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.hard {
		return "Snake (Hard Hazards)"
	}
	return "Snake"
}

// Reset loads the configuration and builds a fresh world.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.steps = 0
	g.moveTick = 0
	g.paused = false
	g.tooSmall = false
	g.world = nil

	g.cfg, g.cfgErr = g.loadConfig()
	if g.cfgErr != nil {
		return
	}

	spawn := g.cfg.Grid.SpawnIndex
	if spawn < 0 {
		spawn = world.SpawnIndex(g.cfg.Grid.Width, g.cfg.Grid.InitialLength, g.rng.Int())
	}

	w, err := world.New(g.cfg.Grid.Width, spawn, g.rng,
		world.WithInitialLength(g.cfg.Grid.InitialLength),
		world.WithPoopIterations(g.cfg.Hazard.Iterations),
		world.WithHazardPenalty(g.cfg.Hazard.Penalty),
		world.WithHazardMode(g.hazardMode()),
	)
	if err != nil {
		g.cfgErr = err
		return
	}
	g.world = w
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) loadConfig() (config.SnakeConfig, error) {
	var cfg config.SnakeConfig
	if g.fixed != nil {
		cfg = *g.fixed
	} else {
		loaded, err := config.LoadSnake(configPath)
		if err != nil {
			return config.SnakeConfig{}, err
		}
		cfg = loaded
	}
	config.ApplySnakePreset(&cfg, difficultyPreset)
	if g.hard {
		cfg.Hazard.Mode = config.HazardModeHard
	}
	return cfg, cfg.Validate()
}

func (g *Game) hazardMode() world.HazardMode {
	if g.cfg.Hazard.Mode == config.HazardModeHard {
		return world.HazardHard
	}
	return world.HazardSoft
}

// Resize recomputes the layout for a new terminal size without touching
// the world.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.world == nil {
		return
	}

	boxW, boxH := g.boardSize()
	g.tooSmall = w < boxW || h < hudHeight+boxH+1
	g.gridX = (w - boxW) / 2
	g.gridY = hudHeight
}

// boardSize returns the bordered board dimensions in screen cells.
func (g *Game) boardSize() (int, int) {
	width := g.world.Width()
	return width*cellW + 3, width + 2
}

// Step advances the game by one host tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && (g.world == nil || g.world.GameStatus().Terminal()) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if g.world == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionConfirm) {
		g.world.StartGame()
	}
	if input.Has(core.ActionPause) && g.world.GameStatus() == world.StatusPlayed {
		g.paused = !g.paused
	}
	if g.paused || g.world.GameStatus() != world.StatusPlayed {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Sequence() {
		if d, ok := directionFor(a); ok {
			g.world.SetSnakeDirection(d)
		}
	}

	g.moveTick++
	if g.moveTick >= g.cfg.MoveInterval(g.world.Points()) {
		g.moveTick = 0
		g.world.Step()
		g.steps++
	}

	return core.StepResult{State: g.State()}
}

func directionFor(a core.Action) (world.Direction, bool) {
	switch a {
	case core.ActionUp:
		return world.Up, true
	case core.ActionDown:
		return world.Down, true
	case core.ActionLeft:
		return world.Left, true
	case core.ActionRight:
		return world.Right, true
	}
	return 0, false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		g.renderOverlay(dst, "Configuration error", g.errorLine())
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		boxW, boxH := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boxW, hudHeight+boxH+1))
		return
	}

	g.renderBoard(dst)

	switch st := g.world.GameStatus(); {
	case st == world.StatusNone:
		g.renderOverlay(dst, g.Title(), "Press Enter to start")
	case st == world.StatusWon:
		g.renderOverlay(dst, g.world.GameStatusText(), fmt.Sprintf("Points: %d  R to restart", g.world.Points()))
	case st == world.StatusLost:
		g.renderOverlay(dst, g.world.GameStatusText(), fmt.Sprintf("Points: %d  R to restart", g.world.Points()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) errorLine() string {
	if g.cfgErr == nil {
		return "unknown"
	}
	msg := g.cfgErr.Error()
	if limit := g.screenW - 6; limit > 3 && len(msg) > limit {
		msg = msg[:limit-3] + "..."
	}
	return msg
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Points: %d  Length: %d  %s",
		g.Title(), g.world.Points(), g.world.SnakeLength(), g.world.GameStatusText())
	dst.DrawText(0, 0, hud, core.ColorWhite)

	if every := g.cfg.Hazard.Iterations; every > 0 {
		countdown := fmt.Sprintf("Hazard in %d ", every-g.world.Ticks())
		dst.DrawText(dst.Width()-len(countdown), 0, countdown, core.ColorOrange)
	}

	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws the border, the empty cells and every occupant.
func (g *Game) renderBoard(dst *core.Screen) {
	boxW, boxH := g.boardSize()
	dst.DrawBox(core.NewRect(g.gridX, g.gridY, boxW, boxH), core.ColorCyan)

	for i := range g.world.Size() {
		g.drawCell(dst, i, glyphEmpty, core.ColorGray)
	}
	if cell, ok := g.world.PoopCell(); ok {
		g.drawCell(dst, cell, glyphHazard, core.ColorOrange)
	}
	if cell, ok := g.world.RewardCell(); ok {
		g.drawCell(dst, cell, glyphReward, core.ColorBrightYellow)
	}

	cells := g.world.SnakeCells()
	for i := len(cells) - 1; i >= 0; i-- {
		if i == 0 {
			g.drawCell(dst, cells[i], glyphHead, core.ColorBrightGreen)
		} else {
			g.drawCell(dst, cells[i], glyphBody, core.ColorGreen)
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, cell int, r rune, c core.Color) {
	width := g.world.Width()
	x := g.gridX + 2 + (cell%width)*cellW
	y := g.gridY + 1 + cell/width
	dst.SetColor(x, y, r, c)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Status: "No status"}
	}
	st := g.world.GameStatus()
	return core.GameState{
		Score:    g.world.Points(),
		Started:  st != world.StatusNone,
		GameOver: st.Terminal(),
		Won:      st == world.StatusWon,
		Paused:   g.paused,
		Status:   g.world.GameStatusText(),
	}
}

// Summary describes the current run for the scoreboard.
func (g *Game) Summary() core.RunSummary {
	s := core.RunSummary{Steps: g.steps, Seed: g.seed, Outcome: "abandoned"}
	if g.world == nil {
		return s
	}
	s.Points = g.world.Points()
	s.Length = g.world.SnakeLength()
	s.Width = g.world.Width()
	switch g.world.GameStatus() {
	case world.StatusWon:
		s.Outcome = "won"
	case world.StatusLost:
		s.Outcome = "lost"
	}
	return s
}

// World exposes the engine for headless drivers and tests.
func (g *Game) World() *world.World {
	return g.world
}

// Config returns the configuration the current world was built from.
func (g *Game) Config() config.SnakeConfig {
	return g.cfg
}
