package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// isolate points the home and working directories at empty temp dirs so
// Load only sees files created by the test.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.Equal(t, tetris.DefaultConfig(), cfg.Engine())
}

func TestLoadEmbedded(t *testing.T) {
	isolate(t)

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "tetris.yaml"), "board:\n  width: 12\n")
	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", "tetris.yaml"), source)
	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height, "missing keys keep defaults")

	userPath := filepath.Join(home, ".tetris", "configs", "tetris.yaml")
	writeFile(t, userPath, "board:\n  width: 14\n")
	cfg, source, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, userPath, source)
	assert.Equal(t, 14, cfg.Board.Width)

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "timing:\n  base_interval_ms: 700\n")
	cfg, source, err = Load(custom)
	require.NoError(t, err)
	assert.Equal(t, custom, source)
	assert.Equal(t, 10, cfg.Board.Width)
	assert.Equal(t, 700, cfg.Timing.BaseIntervalMs)
}

func TestLoadSkipsMalformedUserFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "board: [not, a, map")

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "board: [oops")
	_, _, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "board:\n  width: 0\n")
	_, _, err = Load(invalid)
	assert.ErrorIs(t, err, tetris.ErrInvalidDimensions)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TETRIS_BOARD_WIDTH", "8")
	t.Setenv("TETRIS_BASE_INTERVAL_MS", "900")
	t.Setenv("TETRIS_MIN_INTERVAL_MS", "100")

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Width)
	assert.Equal(t, 20, cfg.Board.Height)
	assert.Equal(t, 900, cfg.Timing.BaseIntervalMs)
	assert.Equal(t, 50, cfg.Timing.DecrementPerLevelMs)
	assert.Equal(t, 100, cfg.Timing.MinIntervalMs)
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	isolate(t)
	t.Setenv("TETRIS_BOARD_HEIGHT", "tall")

	_, _, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		base      int
		decrement int
	}{
		{DifficultyEasy, 800, 50},
		{DifficultyNormal, 500, 50},
		{DifficultyHard, 300, 50},
		{DifficultyFixed, 500, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyPreset(&cfg, tt.preset)
			assert.Equal(t, tt.base, cfg.Timing.BaseIntervalMs)
			assert.Equal(t, tt.decrement, cfg.Timing.DecrementPerLevelMs)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestApplyPresetClampsMinInterval(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Timing.MinIntervalMs = 400

	ApplyPreset(&cfg, DifficultyHard)
	assert.Equal(t, 300, cfg.Timing.MinIntervalMs)
	assert.NoError(t, cfg.Validate())
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Board.Width = 16

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "width: 16")
	assert.Contains(t, string(data), "base_interval_ms: 500")
}
