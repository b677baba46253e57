package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It mirrors
// defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:         16,
			InitialLength: 3,
			SpawnIndex:    -1,
		},
		Hazard: HazardConfig{
			Iterations: 50,
			Penalty:    2,
			Mode:       HazardModeSoft,
		},
		Speed: SpeedConfig{
			MoveEveryTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			MinMoveEveryTicks: 3,
			MaxAt:             40,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
