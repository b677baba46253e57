// Package config loads the YAML game configuration and applies
// difficulty presets.
package config

import (
	"fmt"
	"strings"
)

// SnakeConfig contains all tunables for a game of Snake.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Hazard     HazardConfig     `yaml:"hazard"`
	Speed      SpeedConfig      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board and the starting snake.
type GridConfig struct {
	Width         int `yaml:"width"`
	InitialLength int `yaml:"initial_length"`
	SpawnIndex    int `yaml:"spawn_index"` // negative means derive from seed
}

// HazardConfig defines the poop mechanic.
type HazardConfig struct {
	Iterations int    `yaml:"iterations"`
	Penalty    int    `yaml:"penalty"`
	Mode       string `yaml:"mode"` // "soft" or "hard"
}

// SpeedConfig defines how often the world advances.
type SpeedConfig struct {
	MoveEveryTicks int `yaml:"move_every_ticks"`
}

// DifficultyConfig defines the speed-up as the score grows.
type DifficultyConfig struct {
	Enabled           bool `yaml:"enabled"`
	MinMoveEveryTicks int  `yaml:"min_move_every_ticks"`
	MaxAt             int  `yaml:"max_at"` // points at which full speed is reached
}

// Hazard modes accepted in HazardConfig.Mode.
const (
	HazardModeSoft = "soft"
	HazardModeHard = "hard"
)

// Validate reports the first setting that cannot produce a playable game.
func (c SnakeConfig) Validate() error {
	if c.Grid.Width < 2 {
		return fmt.Errorf("config: grid.width %d must be at least 2", c.Grid.Width)
	}
	if c.Grid.InitialLength < 1 || c.Grid.InitialLength > c.Grid.Width*c.Grid.Width {
		return fmt.Errorf("config: grid.initial_length %d does not fit a %dx%d grid",
			c.Grid.InitialLength, c.Grid.Width, c.Grid.Width)
	}
	if c.Grid.SpawnIndex >= c.Grid.Width*c.Grid.Width {
		return fmt.Errorf("config: grid.spawn_index %d is outside the grid", c.Grid.SpawnIndex)
	}
	if c.Grid.SpawnIndex >= 0 && c.Grid.SpawnIndex < c.Grid.InitialLength-1 {
		return fmt.Errorf("config: grid.spawn_index %d leaves no room for %d segments",
			c.Grid.SpawnIndex, c.Grid.InitialLength)
	}
	if c.Hazard.Iterations < 0 {
		return fmt.Errorf("config: hazard.iterations %d is negative", c.Hazard.Iterations)
	}
	if c.Hazard.Penalty < 0 {
		return fmt.Errorf("config: hazard.penalty %d is negative", c.Hazard.Penalty)
	}
	switch strings.ToLower(c.Hazard.Mode) {
	case HazardModeSoft, HazardModeHard:
	default:
		return fmt.Errorf("config: hazard.mode %q must be %q or %q", c.Hazard.Mode, HazardModeSoft, HazardModeHard)
	}
	if c.Speed.MoveEveryTicks < 1 {
		return fmt.Errorf("config: speed.move_every_ticks %d must be at least 1", c.Speed.MoveEveryTicks)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset accepts a preset name; the empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}
