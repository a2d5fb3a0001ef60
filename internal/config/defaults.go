package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  tetris.DefaultWidth,
			Height: tetris.DefaultHeight,
		},
		Timing: TimingConfig{
			BaseIntervalMs:      500,
			DecrementPerLevelMs: 50,
			MinIntervalMs:       50,
		},
		Scoring: ScoringConfig{
			LineBase:      100,
			LinesPerLevel: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
