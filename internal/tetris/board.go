package tetris

import (
	"errors"
	"fmt"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// ErrInvalidDimensions is returned when a board is built with a non-positive
// width or height.
var ErrInvalidDimensions = errors.New("tetris: board dimensions must be positive")

// Cell is the content of one board position: 0 for empty, otherwise the
// PieceType of the piece that locked there.
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Filled reports whether the cell holds a locked block.
func (c Cell) Filled() bool {
	return c != Empty
}

// Piece returns the type of the piece that left this cell.
func (c Cell) Piece() PieceType {
	return PieceType(c)
}

// Board is the grid of locked cells. Row 0 is the top.
// Its dimensions never change after construction.
type Board struct {
	width  int
	height int
	grid   [][]Cell
}

// NewBoard creates an empty board of width columns and height rows.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return newBoard(width, height), nil
}

func newBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.grid = make([][]Cell, height)
	for y := range b.grid {
		b.grid[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// At returns the cell at column x, row y. Out-of-range positions read as Empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Empty
	}
	return b.grid[y][x]
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y, row := range b.grid {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range b.grid {
		clear(b.grid[y])
	}
}

// CanPlace reports whether shape fits with its top-left corner at (x, y).
// Every occupied cell must lie within the side walls and above the floor.
// Cells above the top edge are allowed and are not checked against the grid.
func (b *Board) CanPlace(shape Shape, x, y int) bool {
	for r, row := range shape {
		for c, v := range row {
			if v == 0 {
				continue
			}
			bx := x + c
			by := y + r

			if bx < 0 || bx >= b.width || by >= b.height {
				return false
			}
			if by >= 0 && b.grid[by][bx] != Empty {
				return false
			}
		}
	}
	return true
}

// Place writes cell into every on-board position covered by shape.
// Positions outside the grid are skipped; callers validate with CanPlace.
func (b *Board) Place(shape Shape, x, y int, cell Cell) {
	for r, row := range shape {
		for c, v := range row {
			if v == 0 {
				continue
			}
			bx := x + c
			by := y + r
			if bx >= 0 && bx < b.width && by >= 0 && by < b.height {
				b.grid[by][bx] = cell
			}
		}
	}
}

// rowFull reports whether every cell of row y is occupied.
func (b *Board) rowFull(y int) bool {
	for _, c := range b.grid[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearLines removes every full row at once and returns how many were removed.
// Remaining rows keep their order and settle to the bottom; the freed rows
// reappear empty at the top.
func (b *Board) ClearLines() int {
	full := make([]bool, b.height)
	cleared := 0
	for y := range b.height {
		if b.rowFull(y) {
			full[y] = true
			cleared++
		}
	}
	if cleared == 0 {
		return 0
	}

	// Compact survivors from the bottom up, reusing the removed row slices.
	removed := make([][]Cell, 0, cleared)
	write := b.height - 1
	for y := b.height - 1; y >= 0; y-- {
		if full[y] {
			removed = append(removed, b.grid[y])
			continue
		}
		b.grid[write] = b.grid[y]
		write--
	}
	for i, row := range removed {
		clear(row)
		b.grid[i] = row
	}

	return cleared
}
