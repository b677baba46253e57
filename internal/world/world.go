// Package world implements the Snake simulation on a square torus grid.
// It holds no rendering, input or timing code: a host creates a World,
// feeds it direction changes and calls Step once per simulation tick.
package world

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned by New when the grid or spawn
// parameters cannot produce a valid starting snake.
var ErrInvalidConfiguration = errors.New("world: invalid configuration")

// Defaults used when no Option overrides them.
const (
	DefaultInitialLength  = 3
	DefaultPoopIterations = 50
	DefaultHazardPenalty  = 2
)

// RandomSource supplies uniform integers in [0, n).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Direction is the snake's heading.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Status is the game's lifecycle state. The zero value means the game
// has not been started yet.
type Status int

const (
	StatusNone Status = iota
	StatusPlayed
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlayed:
		return "played"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "none"
	}
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// HazardMode selects what happens when the head lands on the hazard cell.
type HazardMode int

const (
	// HazardSoft deducts points and restarts the hazard cadence.
	HazardSoft HazardMode = iota
	// HazardHard deducts points and ends the game.
	HazardHard
)

func (m HazardMode) String() string {
	if m == HazardHard {
		return "hard"
	}
	return "soft"
}

// Option customizes a World at construction time.
type Option func(*options)

type options struct {
	initialLength  int
	poopIterations int
	hazardMode     HazardMode
	hazardPenalty  int
}

// WithInitialLength sets the number of body segments at spawn.
func WithInitialLength(n int) Option {
	return func(o *options) { o.initialLength = n }
}

// WithPoopIterations sets how many ticks pass between hazard drops.
// Zero disables hazards.
func WithPoopIterations(n int) Option {
	return func(o *options) { o.poopIterations = n }
}

// WithHazardMode chooses soft or hard hazard collisions.
func WithHazardMode(m HazardMode) Option {
	return func(o *options) { o.hazardMode = m }
}

// WithHazardPenalty sets the points deducted on a hazard collision.
func WithHazardPenalty(n int) Option {
	return func(o *options) { o.hazardPenalty = n }
}

// World owns the grid geometry, the snake, the reward and hazard cells,
// the score and the game status. It is not safe for concurrent use.
type World struct {
	width int
	size  int
	rng   RandomSource

	body      []int // head at index 0
	direction Direction
	next      int // pending head cell, valid when hasNext
	hasNext   bool

	reward    int
	hasReward bool
	poop      int
	hasPoop   bool

	status Status
	points int
	ticks  int // ticks since the last hazard event

	poopIterations int
	hazardMode     HazardMode
	hazardPenalty  int
}

// New creates a World of width*width cells with the snake's head at
// spawnIndex and the rest of the body laid out to its left.
func New(width, spawnIndex int, rng RandomSource, opts ...Option) (*World, error) {
	o := options{
		initialLength:  DefaultInitialLength,
		poopIterations: DefaultPoopIterations,
		hazardMode:     HazardSoft,
		hazardPenalty:  DefaultHazardPenalty,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if width < 2 {
		return nil, fmt.Errorf("world: width %d must be at least 2: %w", width, ErrInvalidConfiguration)
	}
	if rng == nil {
		return nil, fmt.Errorf("world: nil random source: %w", ErrInvalidConfiguration)
	}
	size := width * width
	if o.initialLength < 1 || o.initialLength > size {
		return nil, fmt.Errorf("world: initial length %d outside [1, %d]: %w", o.initialLength, size, ErrInvalidConfiguration)
	}
	if spawnIndex < 0 || spawnIndex >= size {
		return nil, fmt.Errorf("world: spawn index %d outside [0, %d): %w", spawnIndex, size, ErrInvalidConfiguration)
	}
	if spawnIndex < o.initialLength-1 {
		return nil, fmt.Errorf("world: spawn index %d too small for a body of %d: %w", spawnIndex, o.initialLength, ErrInvalidConfiguration)
	}
	if o.poopIterations < 0 {
		return nil, fmt.Errorf("world: negative hazard cadence %d: %w", o.poopIterations, ErrInvalidConfiguration)
	}
	if o.hazardPenalty < 0 {
		return nil, fmt.Errorf("world: negative hazard penalty %d: %w", o.hazardPenalty, ErrInvalidConfiguration)
	}

	body := make([]int, o.initialLength)
	for i := range body {
		body[i] = spawnIndex - i
	}

	w := &World{
		width:          width,
		size:           size,
		rng:            rng,
		body:           body,
		direction:      Right,
		poopIterations: o.poopIterations,
		hazardMode:     o.hazardMode,
		hazardPenalty:  o.hazardPenalty,
	}
	w.placeReward()
	return w, nil
}

// SpawnIndex maps an arbitrary integer (a seed, a timestamp) onto a spawn
// index that New accepts for the given width and body length.
func SpawnIndex(width, length, n int) int {
	if length < 1 {
		length = 1
	}
	size := width * width
	span := size - (length - 1)
	if span <= 0 {
		return size - 1
	}
	if n < 0 {
		n = -n
		if n < 0 { // math.MinInt
			n = 0
		}
	}
	return length - 1 + n%span
}

// Width returns the side length of the grid.
func (w *World) Width() int {
	return w.width
}

// Size returns the number of cells in the grid.
func (w *World) Size() int {
	return w.size
}

// SnakeHeadIndex returns the head cell, or false if the snake is empty.
func (w *World) SnakeHeadIndex() (int, bool) {
	if len(w.body) == 0 {
		return 0, false
	}
	return w.body[0], true
}

// SnakeLength returns the number of body segments.
func (w *World) SnakeLength() int {
	return len(w.body)
}

// SnakeCells returns a copy of the body, head first.
func (w *World) SnakeCells() []int {
	cells := make([]int, len(w.body))
	copy(cells, w.body)
	return cells
}

// RewardCell returns the reward cell, or false when none is placed.
func (w *World) RewardCell() (int, bool) {
	return w.reward, w.hasReward
}

// PoopCell returns the hazard cell, or false when none is placed.
func (w *World) PoopCell() (int, bool) {
	return w.poop, w.hasPoop
}

// Points returns the current score. It can go negative.
func (w *World) Points() int {
	return w.points
}

// GameStatus returns the current status. StatusNone means not started.
func (w *World) GameStatus() Status {
	return w.status
}

// GameStatusText returns the player-facing label for the status.
func (w *World) GameStatusText() string {
	switch w.status {
	case StatusPlayed:
		return "Playing"
	case StatusWon:
		return "You have won!"
	case StatusLost:
		return "You have lost!"
	default:
		return "No status"
	}
}

// Direction returns the committed heading.
func (w *World) Direction() Direction {
	return w.direction
}

// Ticks returns the number of ticks since the last hazard event.
func (w *World) Ticks() int {
	return w.ticks
}

// HazardMode returns the configured hazard behavior.
func (w *World) HazardMode() HazardMode {
	return w.hazardMode
}

// StartGame moves a fresh World into the played state.
func (w *World) StartGame() {
	if w.status == StatusNone {
		w.status = StatusPlayed
	}
}

// SetSnakeDirection queues a heading change for the next Step.
// Requests that would turn the head back onto the neck are dropped.
func (w *World) SetSnakeDirection(d Direction) {
	if w.status != StatusPlayed || len(w.body) < 2 {
		return
	}
	cell, ok := w.NextCell(d)
	if !ok || cell == w.body[1] {
		return
	}
	w.next = cell
	w.hasNext = true
	w.direction = d
}

// NextCell returns the cell the head would enter moving in d,
// wrapping around the edges of its row or column.
func (w *World) NextCell(d Direction) (int, bool) {
	if len(w.body) == 0 {
		return 0, false
	}
	h := w.body[0]
	row := h / w.width
	rowStart := row * w.width

	switch d {
	case Right:
		if h+1 == rowStart+w.width {
			return rowStart, true
		}
		return h + 1, true
	case Left:
		if h == rowStart {
			return rowStart + w.width - 1, true
		}
		return h - 1, true
	case Up:
		if row == 0 {
			return w.size - w.width + h, true
		}
		return h - w.width, true
	case Down:
		if h+w.width >= w.size {
			return h + w.width - w.size, true
		}
		return h + w.width, true
	}
	return 0, false
}

// Step advances the simulation by one tick. It does nothing unless the
// game is being played.
func (w *World) Step() {
	if w.status != StatusPlayed {
		return
	}
	if len(w.body) == 0 {
		w.status = StatusLost
		return
	}

	for i := len(w.body) - 1; i > 0; i-- {
		w.body[i] = w.body[i-1]
	}

	if w.hasNext {
		w.body[0] = w.next
		w.hasNext = false
	} else {
		w.body[0], _ = w.NextCell(w.direction)
	}
	head := w.body[0]

	for _, seg := range w.body[1:] {
		if seg == head {
			w.status = StatusLost
			return
		}
	}

	if w.hasReward && w.reward == head {
		w.consumeReward()
		if w.status != StatusPlayed {
			return
		}
	}

	w.ticks++
	if w.hasPoop && w.poop == head {
		w.points -= w.hazardPenalty
		w.hasPoop = false
		w.ticks = 0
		if w.hazardMode == HazardHard {
			w.status = StatusLost
			return
		}
	}

	if w.poopIterations > 0 && w.ticks >= w.poopIterations {
		w.ticks = 0
		w.dropPoop()
	}
}

// consumeReward scores the reward under the head and grows the snake.
func (w *World) consumeReward() {
	if len(w.body) >= w.size {
		w.hasReward = false
		w.status = StatusWon
		return
	}
	w.points++
	// The copy of the tail stays put for one tick, so growth never
	// opens a gap in the body.
	w.body = append(w.body, w.body[len(w.body)-1])
	w.placeReward()
	if !w.hasReward {
		w.status = StatusWon
	}
}

// dropPoop detaches the two last segments and leaves the hazard where
// the second of them was.
func (w *World) dropPoop() {
	if len(w.body)-1 < 2 {
		w.status = StatusLost
		return
	}
	w.body = w.body[:len(w.body)-1]
	w.poop = w.body[len(w.body)-1]
	w.hasPoop = true
	w.body = w.body[:len(w.body)-1]
}

// placeReward samples a new reward cell, leaving it absent when every
// cell is taken by the snake.
func (w *World) placeReward() {
	occupied := make(map[int]struct{}, len(w.body)+1)
	for _, c := range w.body {
		occupied[c] = struct{}{}
	}
	free := w.size - len(occupied)
	if free <= 0 {
		w.hasReward = false
		return
	}

	blocked := w.body
	if w.hasPoop {
		if _, onSnake := occupied[w.poop]; !onSnake && free > 1 {
			blocked = append(w.SnakeCells(), w.poop)
		}
	}
	w.reward = GenerateRewardCell(w.rng, w.size, blocked)
	w.hasReward = true
}

// GenerateRewardCell draws cells in [0, max) until one is not in taken.
// It never returns if taken covers every cell; callers check first.
func GenerateRewardCell(rng RandomSource, max int, taken []int) int {
	for {
		cell := rng.Intn(max)
		if !contains(taken, cell) {
			return cell
		}
	}
}

func contains(cells []int, c int) bool {
	for _, v := range cells {
		if v == c {
			return true
		}
	}
	return false
}
