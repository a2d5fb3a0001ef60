package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right  - Move
  Up          - Rotate clockwise
  Down/Space  - Soft drop
  P/Esc       - Pause
  R           - Restart (after game over)
  Tab         - Session scores
  Ctrl+S      - Screenshot to ~/.tetris/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower start (800ms per row)
  normal - Config values unchanged
  hard   - Faster start (300ms per row)
  fixed  - No speed-up between levels

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml --log-file /tmp/tetris.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	// The alt screen owns stdout, so logs go to a file or nowhere.
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	gameCfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "source", source, "difficulty", flagDifficulty)

	game, err := tetris.New(gameCfg.Engine())
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// The scoreboard only lives for this run
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("scoreboard unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	if err := tui.Run(game, cfg, tui.Options{
		Store:  store,
		Logger: logger,
		Player: os.Getenv("USER"),
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
