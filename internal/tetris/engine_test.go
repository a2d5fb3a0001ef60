package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, seq ...PieceType) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), &fixedSource{seq: seq})
	require.NoError(t, err)
	return e
}

// dropToFloor soft-drops until the active piece locks.
func dropToFloor(e *Engine) {
	for e.SoftDrop() {
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidDimensions},
		{"zero base interval", func(c *Config) { c.BaseInterval = 0 }, ErrInvalidTiming},
		{"negative decrement", func(c *Config) { c.DecrementPerLevel = -10 }, ErrInvalidTiming},
		{"min above base", func(c *Config) { c.MinInterval = 600 }, ErrInvalidTiming},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.target)

			e, err := NewEngine(cfg, &fixedSource{seq: []PieceType{PieceO}})
			assert.Nil(t, e)
			assert.Error(t, err)
		})
	}

	cfg := DefaultConfig()
	cfg.LinesPerLevel = 0
	assert.Error(t, cfg.Validate())
	assert.NoError(t, DefaultConfig().Validate())
}

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine(t, PieceT, PieceO)

	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, PieceT, active.Type)
	assert.Equal(t, 4, active.X, "5 - 3/2")
	assert.Equal(t, 0, active.Y)
	assert.Equal(t, PieceO, e.Next().Type)

	assert.Equal(t, PhaseActive, e.Phase())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 0, e.Lines())
	assert.Equal(t, 500, e.FallInterval())
	assert.False(t, e.IsGameOver())
}

func TestSpawnCentersPiece(t *testing.T) {
	tests := []struct {
		piece PieceType
		x     int
	}{
		{PieceI, 3},
		{PieceO, 4},
		{PieceT, 4},
		{PieceS, 4},
		{PieceL, 4},
	}

	for _, tc := range tests {
		t.Run(tc.piece.String(), func(t *testing.T) {
			e := newTestEngine(t, tc.piece)
			active, ok := e.Active()
			require.True(t, ok)
			assert.Equal(t, tc.x, active.X)
			assert.Equal(t, 0, active.Y)
		})
	}
}

func TestMoveLeftRejectedAtWall(t *testing.T) {
	e := newTestEngine(t, PieceO)

	for i := 0; i < 4; i++ {
		require.True(t, e.MoveLeft())
	}
	active, _ := e.Active()
	require.Equal(t, 0, active.X)

	assert.False(t, e.MoveLeft())
	active, _ = e.Active()
	assert.Equal(t, 0, active.X, "anchor unchanged after rejected move")
	assert.Equal(t, 0, active.Y, "rejected move never locks")
}

func TestMoveRightRejectedAtWall(t *testing.T) {
	e := newTestEngine(t, PieceO)

	for i := 0; i < 4; i++ {
		require.True(t, e.MoveRight())
	}
	assert.False(t, e.MoveRight())

	active, _ := e.Active()
	assert.Equal(t, 8, active.X)
}

func TestMoveBlockedByStack(t *testing.T) {
	e := newTestEngine(t, PieceO)
	e.board.grid[0][3] = PieceZ.Cell()

	assert.False(t, e.MoveLeft())
	assert.True(t, e.MoveRight())
}

func TestSoftDropLocksOnFloor(t *testing.T) {
	e := newTestEngine(t, PieceO, PieceT, PieceS)

	for i := 0; i < 18; i++ {
		require.True(t, e.SoftDrop(), "drop %d", i)
	}
	active, _ := e.Active()
	require.Equal(t, 18, active.Y)

	assert.False(t, e.SoftDrop(), "blocked drop locks the piece")

	for _, p := range [][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.Equal(t, PieceO.Cell(), e.board.At(p[0], p[1]))
	}

	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, PieceT, active.Type, "next piece promoted")
	assert.Equal(t, 0, active.Y)
	assert.Equal(t, PieceS, e.Next().Type, "fresh preview generated")
}

func TestLockLeavesOtherCellsUntouched(t *testing.T) {
	e := newTestEngine(t, PieceT)
	e.board.grid[19][0] = PieceI.Cell()
	before := e.Board()

	require.True(t, e.MoveRight())
	dropToFloor(e)

	after := e.Board()
	changed := 0
	for y := range after {
		for x := range after[y] {
			if after[y][x] != before[y][x] {
				changed++
				assert.Equal(t, PieceT.Cell(), after[y][x])
			}
		}
	}
	assert.Equal(t, 4, changed)
	assert.Equal(t, PieceT.Cell(), e.board.At(6, 18))
	assert.Equal(t, PieceT.Cell(), e.board.At(5, 19))
	assert.Equal(t, PieceT.Cell(), e.board.At(7, 19))
}

func TestRotateAcceptedAndRejected(t *testing.T) {
	e := newTestEngine(t, PieceI)

	require.True(t, e.Rotate())
	active, _ := e.Active()
	require.Equal(t, 4, active.Shape.Height(), "I is vertical")
	require.Equal(t, 3, active.X, "rotation keeps the anchor")

	for i := 0; i < 6; i++ {
		require.True(t, e.MoveRight())
	}
	require.False(t, e.MoveRight())

	assert.False(t, e.Rotate(), "no wall kick against the right wall")
	active, _ = e.Active()
	assert.Equal(t, 4, active.Shape.Height(), "shape unchanged after rejected rotation")
	assert.Equal(t, 9, active.X)
}

func TestRotateRejectedByStack(t *testing.T) {
	e := newTestEngine(t, PieceI)
	e.board.grid[2][3] = PieceO.Cell()

	assert.False(t, e.Rotate())
	active, _ := e.Active()
	assert.Equal(t, 1, active.Shape.Height())
}

func TestGravityTick(t *testing.T) {
	e := newTestEngine(t, PieceO)

	e.Update(499)
	active, _ := e.Active()
	assert.Equal(t, 0, active.Y, "below the interval nothing moves")

	e.Update(1)
	active, _ = e.Active()
	assert.Equal(t, 1, active.Y)

	e.Update(10_000)
	active, _ = e.Active()
	assert.Equal(t, 2, active.Y, "at most one row per update, excess discarded")

	e.Update(499)
	active, _ = e.Active()
	assert.Equal(t, 2, active.Y, "accumulator restarted after the previous step")

	e.Update(-100)
	active, _ = e.Active()
	assert.Equal(t, 2, active.Y)
}

func TestGravityLocksPiece(t *testing.T) {
	e := newTestEngine(t, PieceO, PieceJ)
	for i := 0; i < 18; i++ {
		require.True(t, e.SoftDrop())
	}

	e.Update(500)

	assert.Equal(t, PieceO.Cell(), e.board.At(4, 19))
	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, PieceJ, active.Type)
	assert.Equal(t, 0, active.Y)
}

// setupClear fills the bottom n rows except column 0 and places a vertical I
// in column 0 resting on the floor, ready to lock.
func setupClear(e *Engine, n int) {
	for y := DefaultHeight - n; y < DefaultHeight; y++ {
		fillRow(e.board, y, PieceL.Cell(), 0)
	}
	e.active = ActivePiece{
		Piece: Piece{Type: PieceI, Shape: RotateClockwise(PieceI.Shape())},
		X:     0,
		Y:     DefaultHeight - 4,
	}
}

func TestScoringPerSimultaneousClear(t *testing.T) {
	tests := []struct {
		lines int
		score int
	}{
		{1, 100},
		{2, 400},
		{3, 900},
		{4, 1600},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			e := newTestEngine(t, PieceO)
			setupClear(e, tc.lines)

			e.lock()

			assert.Equal(t, tc.lines, e.LastCleared())
			assert.Equal(t, tc.lines, e.Lines())
			assert.Equal(t, tc.score, e.Score())
			assert.Equal(t, 1, e.Level())
			assert.Equal(t, tc.score, LineClearScore(100, tc.lines, 1))
		})
	}
}

func TestLevelProgression(t *testing.T) {
	e := newTestEngine(t, PieceO)
	e.lines = 9

	setupClear(e, 1)
	e.lock()

	assert.Equal(t, 10, e.Lines())
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 100, e.Score(), "points use the level before the clear")
	assert.Equal(t, 450, e.FallInterval())

	e.board.Reset()
	setupClear(e, 4)
	e.lock()

	assert.Equal(t, 14, e.Lines())
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 100+1600*2, e.Score())
}

func TestIntervalForLevel(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		level    int
		interval int
	}{
		{1, 500},
		{2, 450},
		{9, 100},
		{10, 50},
		{25, 50},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.interval, IntervalForLevel(cfg, tc.level), "level %d", tc.level)
	}
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	e := newTestEngine(t, PieceO)

	locks := 0
	for !e.IsGameOver() {
		dropToFloor(e)
		locks++
		require.Less(t, locks, 50, "stack should reach the top")
	}
	assert.Equal(t, 10, locks, "ten 2-row squares fill the 20-row column")
	assert.Equal(t, PhaseGameOver, e.Phase())

	_, ok := e.Active()
	assert.False(t, ok)

	before := e.Board()
	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	assert.False(t, e.SoftDrop())
	assert.False(t, e.Rotate())
	e.Update(10_000)
	assert.Equal(t, before, e.Board())
	assert.True(t, e.IsGameOver())
}

func TestRestart(t *testing.T) {
	e := newTestEngine(t, PieceO, PieceT)

	assert.False(t, e.Restart(), "restart is ignored while playing")

	e.score = 1234
	e.lines = 25
	e.level = 3
	e.fallInterval = 400
	for !e.IsGameOver() {
		dropToFloor(e)
	}
	assert.Positive(t, e.Locks())

	require.True(t, e.Restart())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, 0, e.Locks())
	assert.Equal(t, 0, e.LastCleared())
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 0, e.Lines())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 500, e.FallInterval())
	for _, row := range e.Board() {
		for _, c := range row {
			assert.Equal(t, Empty, c)
		}
	}

	active, ok := e.Active()
	require.True(t, ok)
	assert.Equal(t, 0, active.Y)
}

func TestHandleDispatch(t *testing.T) {
	e := newTestEngine(t, PieceO)

	assert.True(t, e.Handle(CommandMoveLeft))
	assert.True(t, e.Handle(CommandMoveRight))
	assert.True(t, e.Handle(CommandSoftDrop))
	assert.True(t, e.Handle(CommandRotate))
	assert.False(t, e.Handle(CommandRestart))
	assert.False(t, e.Handle(Command(42)))

	active, _ := e.Active()
	assert.Equal(t, 4, active.X)
	assert.Equal(t, 1, active.Y)
}

func TestAccessorsReturnCopies(t *testing.T) {
	e := newTestEngine(t, PieceT, PieceL)

	active, _ := e.Active()
	active.Shape[0][0] = 1
	next := e.Next()
	next.Shape[0][0] = 1

	fresh, _ := e.Active()
	assert.Equal(t, PieceT.Shape(), fresh.Shape)
	assert.Equal(t, PieceL.Shape(), e.Next().Shape)
}
