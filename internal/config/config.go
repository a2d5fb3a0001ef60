// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty presets.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width" env:"TETRIS_BOARD_WIDTH"`
	Height int `yaml:"height" env:"TETRIS_BOARD_HEIGHT"`
}

// TimingConfig defines the gravity curve in milliseconds.
type TimingConfig struct {
	BaseIntervalMs      int `yaml:"base_interval_ms" env:"TETRIS_BASE_INTERVAL_MS"`
	DecrementPerLevelMs int `yaml:"decrement_per_level_ms" env:"TETRIS_DECREMENT_MS"`
	MinIntervalMs       int `yaml:"min_interval_ms" env:"TETRIS_MIN_INTERVAL_MS"`
}

// ScoringConfig defines line clear rewards and level pacing.
type ScoringConfig struct {
	LineBase      int `yaml:"line_base"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// Engine converts the file representation into engine settings.
func (c TetrisConfig) Engine() tetris.Config {
	return tetris.Config{
		Width:             c.Board.Width,
		Height:            c.Board.Height,
		BaseInterval:      c.Timing.BaseIntervalMs,
		DecrementPerLevel: c.Timing.DecrementPerLevelMs,
		MinInterval:       c.Timing.MinIntervalMs,
		LineBase:          c.Scoring.LineBase,
		LinesPerLevel:     c.Scoring.LinesPerLevel,
	}
}

// Validate reports whether the engine can be built from this config.
func (c TetrisConfig) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // No speed-up between levels
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseIntervalMs = 800
	case DifficultyHard:
		cfg.Timing.BaseIntervalMs = 300
	case DifficultyFixed:
		cfg.Timing.DecrementPerLevelMs = 0
	}

	if cfg.Timing.MinIntervalMs > cfg.Timing.BaseIntervalMs {
		cfg.Timing.MinIntervalMs = cfg.Timing.BaseIntervalMs
	}
}
