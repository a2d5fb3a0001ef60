package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// GameID is the identifier used for score records and screenshots.
const GameID = "tetris"

// Game adapts the Engine to the platform's fixed-tick game contract:
// it maps input actions to engine commands, converts ticks into elapsed
// milliseconds and renders into a core.Screen.
type Game struct {
	cfg    Config
	engine *Engine
	rng    *rand.Rand
	tick   uint64

	tickDur time.Duration // Wall time represented by one Step
	carry   time.Duration // Sub-millisecond remainder not yet fed to gravity

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game with the given engine configuration.
// The configuration is validated here so Reset cannot fail later.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{cfg: cfg}, nil
}

// NewDefault creates a standard 10x20 game.
func NewDefault() *Game {
	return &Game{cfg: DefaultConfig()}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Engine exposes the underlying state machine for read-only queries.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Reset starts a fresh session seeded from cfg.Seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.engine = newEngine(g.cfg, g.rng)
	g.tick = 0
	g.carry = 0
	g.paused = false

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.tickDur = time.Second / time.Duration(tickRate)

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()
}

// Resize updates the screen dimensions without restarting the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can fit the board and the info panel.
func (g *Game) checkScreenSize() {
	minW, minH := g.layoutSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick: queued actions are applied in arrival
// order, then gravity receives the tick's elapsed time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	cleared := 0
	for _, action := range in.Events {
		cleared += g.apply(action)
	}

	if !g.paused {
		elapsed := g.elapsedMs()
		cleared += g.clearedBy(func() { g.engine.Update(elapsed) })
	}

	return core.StepResult{
		State:        g.State(),
		LinesCleared: cleared,
	}
}

// clearedBy runs fn and returns the rows removed if fn locked a piece.
func (g *Game) clearedBy(fn func()) int {
	before := g.engine.Locks()
	fn()
	if g.engine.Locks() > before {
		return g.engine.LastCleared()
	}
	return 0
}

// apply routes one input action to the engine and returns the rows it
// cleared. A restart clears nothing.
func (g *Game) apply(action core.Action) int {
	switch action {
	case core.ActionPause:
		if !g.engine.IsGameOver() {
			g.paused = !g.paused
		}
		return 0
	case core.ActionRestart:
		if g.engine.Restart() {
			g.paused = false
			g.carry = 0
		}
		return 0
	}

	if g.paused {
		return 0
	}

	switch action {
	case core.ActionLeft:
		g.engine.MoveLeft()
	case core.ActionRight:
		g.engine.MoveRight()
	case core.ActionSoftDrop:
		return g.clearedBy(func() { g.engine.SoftDrop() })
	case core.ActionRotate:
		g.engine.Rotate()
	}
	return 0
}

// elapsedMs converts one tick into whole milliseconds, carrying the rest.
func (g *Game) elapsedMs() int {
	g.carry += g.tickDur
	ms := g.carry / time.Millisecond
	g.carry -= ms * time.Millisecond
	return int(ms)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Level:    g.engine.Level(),
		Lines:    g.engine.Lines(),
		GameOver: g.engine.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
