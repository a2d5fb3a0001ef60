package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Game is the contract the model drives. *tetris.Game implements it.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Resize(width, height int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// footerRows is reserved under the game screen for the help bar.
const footerRows = 1

// Options carries the optional collaborators of a Model.
type Options struct {
	Store         *storage.Store // Session scoreboard; nil disables it
	Logger        *log.Logger    // Nil discards log output
	Player        string         // Name recorded with results
	ScreenshotDir string         // Defaults to ~/.tetris/screenshots
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	shotDir    string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	scores     Scoreboard
	showScores bool
	status     string
	quitting   bool
	scoreSaved bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	player := opts.Player
	if player == "" {
		player = storage.DefaultPlayer
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = defaultScreenshotDir()
	}

	gameW, gameH := gameArea(cfg.ScreenW, cfg.ScreenH)
	cfg.ScreenW, cfg.ScreenH = gameW, gameH

	h := help.New()
	h.Width = gameW

	return Model{
		game:       game,
		screen:     core.NewScreen(gameW, gameH),
		store:      opts.Store,
		logger:     logger,
		player:     player,
		shotDir:    shotDir,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		scores:     NewScoreboard(opts.Store, player, gameW, gameH+footerRows),
	}
}

// gameArea returns the screen size left for the game once the footer is reserved.
func gameArea(width, height int) (int, int) {
	return max(0, width), max(0, height-footerRows)
}

// defaultScreenshotDir returns ~/.tetris/screenshots, or a relative
// directory when the home directory is unknown.
func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".tetris", "screenshots")
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.Title(), "player", m.player, "seed", m.config.Seed)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if m.showScores {
		back, quit, cmd := m.scores.Update(msg)
		switch {
		case quit:
			m.quitting = true
			return m, tea.Quit
		case back:
			m.showScores = false
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.status = "screenshot failed"
		} else {
			m.status = "saved " + path
		}
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		m.openScores()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// openScores shows the scoreboard. The simulation is frozen while it is
// open and keys queued before it opened are dropped.
func (m *Model) openScores() {
	m.inputFrame.Clear()
	if err := m.scores.Refresh(); err != nil {
		m.logger.Warn("could not load scores", "error", err)
	}
	m.showScores = true
}

// handleResize processes window resize events. The session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	gameW, gameH := gameArea(msg.Width, msg.Height)
	m.config.ScreenW = gameW
	m.config.ScreenH = gameH
	m.screen.Resize(gameW, gameH)
	m.game.Resize(gameW, gameH)
	m.help.Width = gameW
	m.scores.Resize(msg.Width, msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.showScores {
		return m, tickCmd(m.config.TickRate)
	}

	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.LinesCleared > 0 {
		m.logger.Debug("lines cleared", "player", m.player, "count", result.LinesCleared, "total", m.gameState.Lines)
	}

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.recordResult()
		m.scoreSaved = true
	case wasOver && !m.gameState.GameOver:
		m.logger.Info("game restarted", "player", m.player)
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordResult logs the finished game and stores it on the scoreboard.
func (m *Model) recordResult() {
	s := m.gameState
	m.logger.Info("game over",
		"player", m.player,
		"score", s.Score,
		"level", s.Level,
		"lines", s.Lines,
	)

	if m.store == nil {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		Player: m.player,
		Score:  s.Score,
		Level:  s.Level,
		Lines:  s.Lines,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Error("could not save result", "error", err)
		return
	}

	best, err := m.store.HighScore()
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	if s.Score >= best {
		m.status = fmt.Sprintf("new session best: %d", s.Score)
	} else {
		m.status = fmt.Sprintf("score %d, session best %d", s.Score, best)
	}
}

// saveScreenshot writes the current screen as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showScores {
		return m.scores.View()
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MaxWidth(max(1, m.screen.Width()))

	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
