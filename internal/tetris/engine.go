package tetris

import (
	"errors"
	"fmt"
)

// ErrInvalidTiming is returned when the gravity intervals are not positive
// or the minimum exceeds the base interval.
var ErrInvalidTiming = errors.New("tetris: invalid fall interval settings")

// Phase is the engine's position in the spawn → fall → lock cycle.
type Phase int

const (
	// PhaseSpawning promotes the next piece; never observable between calls.
	PhaseSpawning Phase = iota
	// PhaseActive means a piece is falling under player control.
	PhaseActive
	// PhaseLocking writes the piece into the board and clears rows; never
	// observable between calls.
	PhaseLocking
	// PhaseGameOver is terminal until Restart.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseActive:
		return "active"
	case PhaseLocking:
		return "locking"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Command is a discrete player input consumed by Handle.
type Command int

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandSoftDrop
	CommandRotate
	CommandRestart
)

// Config holds the board size and the gravity/scoring parameters.
// All durations are in milliseconds.
type Config struct {
	Width  int
	Height int

	BaseInterval      int // Fall interval at level 1
	DecrementPerLevel int // Interval reduction per level gained
	MinInterval       int // Floor for the fall interval

	LineBase      int // Points per cleared line before the n² and level factors
	LinesPerLevel int // Lines needed to gain a level
}

// DefaultConfig returns the standard 10x20 game with 500/50/50 ms gravity.
func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		BaseInterval:      500,
		DecrementPerLevel: 50,
		MinInterval:       50,
		LineBase:          100,
		LinesPerLevel:     10,
	}
}

// Validate checks that the configuration can build a playable engine.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.BaseInterval <= 0 || c.MinInterval <= 0 || c.DecrementPerLevel < 0 {
		return fmt.Errorf("%w: base=%d decrement=%d min=%d",
			ErrInvalidTiming, c.BaseInterval, c.DecrementPerLevel, c.MinInterval)
	}
	if c.MinInterval > c.BaseInterval {
		return fmt.Errorf("%w: min %d exceeds base %d", ErrInvalidTiming, c.MinInterval, c.BaseInterval)
	}
	if c.LineBase < 0 || c.LinesPerLevel <= 0 {
		return fmt.Errorf("tetris: invalid scoring settings: line_base=%d lines_per_level=%d",
			c.LineBase, c.LinesPerLevel)
	}
	return nil
}

// ActivePiece is the falling piece and its anchor (top-left) on the board.
type ActivePiece struct {
	Piece
	X int
	Y int
}

// Engine is the game state machine. It owns the board and both piece slots;
// all mutation goes through its commands and Update.
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg     Config
	board   *Board
	catalog *Catalog

	active ActivePiece
	next   Piece
	phase  Phase

	score        int
	level        int
	lines        int
	fallAccum    int
	fallInterval int

	locks       int // Pieces locked this game
	lastCleared int // Rows removed by the most recent lock
}

// NewEngine validates cfg, builds the board and spawns the first piece.
func NewEngine(cfg Config, rng RandomSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newEngine(cfg, rng), nil
}

// newEngine builds an engine from an already validated config.
func newEngine(cfg Config, rng RandomSource) *Engine {
	e := &Engine{
		cfg:     cfg,
		board:   newBoard(cfg.Width, cfg.Height),
		catalog: NewCatalog(rng),
	}
	e.resetCounters()
	e.initialize()
	return e
}

// resetCounters puts score, level, lines and timing back to their start values.
func (e *Engine) resetCounters() {
	e.score = 0
	e.level = 1
	e.lines = 0
	e.fallAccum = 0
	e.fallInterval = e.cfg.BaseInterval
	e.locks = 0
	e.lastCleared = 0
}

// initialize generates the preview piece and spawns from it.
func (e *Engine) initialize() {
	e.next = e.catalog.Random()
	e.spawn()
}

// spawn promotes the next piece to active, centered on row 0.
// If the spawn position is blocked the game is over.
func (e *Engine) spawn() {
	e.phase = PhaseSpawning

	e.active = ActivePiece{
		Piece: e.next,
		X:     e.board.Width()/2 - e.next.Shape.Width()/2,
		Y:     0,
	}
	e.next = e.catalog.Random()

	if !e.board.CanPlace(e.active.Shape, e.active.X, e.active.Y) {
		e.phase = PhaseGameOver
		return
	}
	e.phase = PhaseActive
}

// lock writes the active piece into the board, clears rows, updates score,
// level and speed, then spawns the next piece.
func (e *Engine) lock() {
	e.phase = PhaseLocking

	e.board.Place(e.active.Shape, e.active.X, e.active.Y, e.active.Type.Cell())
	cleared := e.board.ClearLines()
	e.locks++
	e.lastCleared = cleared

	if cleared > 0 {
		e.lines += cleared
		e.score += LineClearScore(e.cfg.LineBase, cleared, e.level)
		e.level = e.lines/e.cfg.LinesPerLevel + 1
		e.fallInterval = IntervalForLevel(e.cfg, e.level)
	}

	e.spawn()
}

// LineClearScore returns the points for clearing n rows at once at level:
// base * n² * level.
func LineClearScore(base, n, level int) int {
	return base * n * n * level
}

// IntervalForLevel returns the gravity interval in milliseconds for level.
func IntervalForLevel(cfg Config, level int) int {
	return max(cfg.MinInterval, cfg.BaseInterval-(level-1)*cfg.DecrementPerLevel)
}

// try commits the active piece to shape at (x, y) if it fits.
func (e *Engine) try(shape Shape, x, y int) bool {
	if !e.board.CanPlace(shape, x, y) {
		return false
	}
	e.active.Shape = shape
	e.active.X = x
	e.active.Y = y
	return true
}

// MoveLeft shifts the active piece one column left if it fits.
func (e *Engine) MoveLeft() bool {
	if e.phase != PhaseActive {
		return false
	}
	return e.try(e.active.Shape, e.active.X-1, e.active.Y)
}

// MoveRight shifts the active piece one column right if it fits.
func (e *Engine) MoveRight() bool {
	if e.phase != PhaseActive {
		return false
	}
	return e.try(e.active.Shape, e.active.X+1, e.active.Y)
}

// SoftDrop moves the active piece down one row. When the piece cannot move
// it locks in place and false is returned.
func (e *Engine) SoftDrop() bool {
	if e.phase != PhaseActive {
		return false
	}
	if e.try(e.active.Shape, e.active.X, e.active.Y+1) {
		return true
	}
	e.lock()
	return false
}

// Rotate turns the active piece clockwise about its anchor if the result fits.
func (e *Engine) Rotate() bool {
	if e.phase != PhaseActive {
		return false
	}
	return e.try(RotateClockwise(e.active.Shape), e.active.X, e.active.Y)
}

// Restart starts a new game. It only has an effect after game over.
func (e *Engine) Restart() bool {
	if e.phase != PhaseGameOver {
		return false
	}
	e.board.Reset()
	e.resetCounters()
	e.initialize()
	return true
}

// Handle dispatches a discrete command and reports whether it was accepted.
func (e *Engine) Handle(cmd Command) bool {
	switch cmd {
	case CommandMoveLeft:
		return e.MoveLeft()
	case CommandMoveRight:
		return e.MoveRight()
	case CommandSoftDrop:
		return e.SoftDrop()
	case CommandRotate:
		return e.Rotate()
	case CommandRestart:
		return e.Restart()
	default:
		return false
	}
}

// Update advances gravity by elapsedMs milliseconds. Once the accumulated
// time reaches the fall interval the piece drops one row (or locks) and the
// accumulator restarts from zero; time beyond the threshold is discarded.
func (e *Engine) Update(elapsedMs int) {
	if e.phase != PhaseActive {
		return
	}
	if elapsedMs > 0 {
		e.fallAccum += elapsedMs
	}
	if e.fallAccum < e.fallInterval {
		return
	}

	e.SoftDrop()
	e.fallAccum = 0
}

// Board returns a copy of the locked cells, row 0 first.
func (e *Engine) Board() [][]Cell {
	return e.board.Rows()
}

// Width returns the board width in columns.
func (e *Engine) Width() int {
	return e.board.Width()
}

// Height returns the board height in rows.
func (e *Engine) Height() int {
	return e.board.Height()
}

// Active returns a copy of the falling piece. ok is false after game over.
func (e *Engine) Active() (piece ActivePiece, ok bool) {
	if e.phase == PhaseGameOver {
		return ActivePiece{}, false
	}
	p := e.active
	p.Shape = p.Shape.Clone()
	return p, true
}

// Next returns a copy of the preview piece.
func (e *Engine) Next() Piece {
	n := e.next
	n.Shape = n.Shape.Clone()
	return n
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current level, starting at 1.
func (e *Engine) Level() int {
	return e.level
}

// Lines returns the total number of rows cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// LastCleared returns the rows removed by the most recent lock.
func (e *Engine) LastCleared() int {
	return e.lastCleared
}

// Locks returns the number of pieces locked in the current game.
// Comparing it before and after a call tells whether that call locked.
func (e *Engine) Locks() int {
	return e.locks
}

// FallInterval returns the current gravity interval in milliseconds.
func (e *Engine) FallInterval() int {
	return e.fallInterval
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// IsGameOver reports whether the spawn position has been blocked.
func (e *Engine) IsGameOver() bool {
	return e.phase == PhaseGameOver
}
