package main

import (
	"testing"

	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/world"
)

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 10
	cfg.Grid.SpawnIndex = -1

	a, err := simulate(false, cfg, 7, 300)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(false, cfg, 7, 300)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a.Summary() != b.Summary() {
		t.Errorf("same seed gave %+v and %+v", a.Summary(), b.Summary())
	}
	if a.Snapshot() != b.Snapshot() {
		t.Errorf("same seed gave snapshots %+v and %+v", a.Snapshot(), b.Snapshot())
	}
}

func TestSimulateRespectsMoveLimit(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width = 16

	g, err := simulate(false, cfg, 3, 25)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	s := g.Summary()
	if s.Steps > 25 {
		t.Errorf("Steps = %d, expected at most 25", s.Steps)
	}
	if s.Steps < 25 && !g.State().GameOver {
		t.Errorf("stopped after %d moves without the game ending", s.Steps)
	}
	if g.World().GameStatus() == world.StatusNone {
		t.Error("simulate() never started the game")
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		dir      world.Direction
		expected core.Action
	}{
		{world.Up, core.ActionUp},
		{world.Down, core.ActionDown},
		{world.Left, core.ActionLeft},
		{world.Right, core.ActionRight},
	}
	for _, tc := range tests {
		if got := actionFor(tc.dir); got != tc.expected {
			t.Errorf("actionFor(%v) = %v, expected %v", tc.dir, got, tc.expected)
		}
	}
}
