package snake

import "github.com/vovakirdan/poopy-snake/internal/world"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Steps        int
	Points       int
	SnakeLen     int
	Head         int
	Reward       int // -1 when absent
	Hazard       int // -1 when absent
	Dir          world.Direction
	Status       world.Status
	MoveInterval int
	Paused       bool
	TooSmall     bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Steps:    g.steps,
		Paused:   g.paused,
		TooSmall: g.tooSmall,
		Head:     -1,
		Reward:   -1,
		Hazard:   -1,
	}
	if g.world == nil {
		return s
	}

	s.Points = g.world.Points()
	s.SnakeLen = g.world.SnakeLength()
	s.Dir = g.world.Direction()
	s.Status = g.world.GameStatus()
	s.MoveInterval = g.cfg.MoveInterval(s.Points)
	if h, ok := g.world.SnakeHeadIndex(); ok {
		s.Head = h
	}
	if r, ok := g.world.RewardCell(); ok {
		s.Reward = r
	}
	if p, ok := g.world.PoopCell(); ok {
		s.Hazard = p
	}
	return s
}
