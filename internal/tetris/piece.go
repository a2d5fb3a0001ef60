// Package tetris implements the falling-block puzzle: the piece catalog, the
// board of locked cells and the engine that drives spawn, gravity, locking,
// line clears and game over.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceType identifies one of the seven standard pieces.
// The zero value is not a piece; valid types are 1..NumPieceTypes and double
// as the Cell value written into the board when a piece locks.
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// NumPieceTypes is the number of distinct pieces in the catalog.
const NumPieceTypes = 7

// Shape is a binary occupancy matrix anchored at its top-left corner.
type Shape [][]uint8

var shapes = [NumPieceTypes + 1]Shape{
	PieceI: {
		{1, 1, 1, 1},
	},
	PieceO: {
		{1, 1},
		{1, 1},
	},
	PieceT: {
		{0, 1, 0},
		{1, 1, 1},
	},
	PieceS: {
		{0, 1, 1},
		{1, 1, 0},
	},
	PieceZ: {
		{1, 1, 0},
		{0, 1, 1},
	},
	PieceJ: {
		{1, 0, 0},
		{1, 1, 1},
	},
	PieceL: {
		{0, 0, 1},
		{1, 1, 1},
	},
}

var pieceColors = [NumPieceTypes + 1]core.Color{
	0:      core.ColorDefault,
	PieceI: core.ColorCyan,
	PieceO: core.ColorYellow,
	PieceT: core.ColorMagenta,
	PieceS: core.ColorGreen,
	PieceZ: core.ColorRed,
	PieceJ: core.ColorBlue,
	PieceL: core.ColorOrange,
}

var pieceNames = [NumPieceTypes + 1]string{"?", "I", "O", "T", "S", "Z", "J", "L"}

// Valid reports whether t names a catalog piece.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

// String returns the single-letter piece name.
func (t PieceType) String() string {
	if !t.Valid() {
		return pieceNames[0]
	}
	return pieceNames[t]
}

// Color returns the display color for the piece.
func (t PieceType) Color() core.Color {
	if !t.Valid() {
		return core.ColorDefault
	}
	return pieceColors[t]
}

// Shape returns a fresh copy of the piece's spawn orientation.
func (t PieceType) Shape() Shape {
	if !t.Valid() {
		return nil
	}
	return shapes[t].Clone()
}

// Cell returns the board value a locked piece of this type leaves behind.
func (t PieceType) Cell() Cell {
	return Cell(t)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]uint8(nil), row...)
	}
	return out
}

// Width returns the number of columns of the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows of the shape.
func (s Shape) Height() int {
	return len(s)
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(other[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// RotateClockwise returns the shape turned 90 degrees clockwise.
// A rows×cols input becomes cols×rows with out[i][j] = in[rows-1-j][i].
// The turn is about the top-left anchor with no recentering and no wall
// kicks, so a rotation next to a wall or the stack can be impossible.
// Empty input is returned unchanged.
func RotateClockwise(s Shape) Shape {
	if len(s) == 0 || len(s[0]) == 0 {
		return s
	}

	rows := len(s)
	cols := len(s[0])

	out := make(Shape, cols)
	for i := range cols {
		out[i] = make([]uint8, rows)
		for j := range rows {
			out[i][j] = s[rows-1-j][i]
		}
	}
	return out
}

// Piece is a catalog entry: identity plus its current shape.
type Piece struct {
	Type  PieceType
	Shape Shape
}

// NewPiece returns the piece of the given type in spawn orientation.
func NewPiece(t PieceType) Piece {
	return Piece{Type: t, Shape: t.Shape()}
}

// Color returns the display color of the piece.
func (p Piece) Color() core.Color {
	return p.Type.Color()
}

// RandomSource supplies uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Catalog hands out random pieces drawn from an injected source.
type Catalog struct {
	rng RandomSource
}

// NewCatalog creates a catalog backed by rng.
func NewCatalog(rng RandomSource) *Catalog {
	return &Catalog{rng: rng}
}

// Random returns a uniformly chosen piece in spawn orientation.
func (c *Catalog) Random() Piece {
	return NewPiece(PieceType(c.rng.Intn(NumPieceTypes) + 1))
}
