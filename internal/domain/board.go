package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Board geometry.
const (
	Size      = 5
	Cells     = Size * Size
	Seats     = 4
	RunLength = 3
)

// Seat identifies one of the four player slots (0..3).
type Seat uint8

var symbols = [Seats]string{"X", "O", "❤️", "⭐"}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool { return s < Seats }

// Symbol returns the mark drawn for the seat.
func (s Seat) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return symbols[s]
}

// String returns the 1-based player label.
func (s Seat) String() string { return fmt.Sprintf("Player %d", int(s)+1) }

// Next returns the seat that moves after s.
func (s Seat) Next() Seat { return (s + 1) % Seats }

// Cell represents a board cell state. The zero value is empty; otherwise it
// holds the occupying seat plus one.
type Cell uint8

// Empty is an unoccupied cell.
const Empty Cell = 0

// CellOf returns the cell state occupied by s.
func CellOf(s Seat) Cell { return Cell(s) + 1 }

// Seat returns the occupant, if any.
func (c Cell) Seat() (Seat, bool) {
	if c == Empty {
		return 0, false
	}
	return Seat(c - 1), true
}

// Board is a fixed 5x5 board stored row-major.
type Board [Cells]Cell

// Errors returned by domain operations. Every rejection of a move wraps
// ErrInvalidMove.
var (
	ErrInvalidMove = errors.New("invalid move")
	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrInvalidMove)
	ErrOccupied    = fmt.Errorf("%w: cell occupied", ErrInvalidMove)
	ErrGameOver    = fmt.Errorf("%w: game over", ErrInvalidMove)
	ErrInvalidSeat = fmt.Errorf("%w: no such seat", ErrInvalidMove)
)

// RowCol maps a position to its grid coordinates.
func RowCol(pos int) (row, col int) { return pos / Size, pos % Size }

// Position maps grid coordinates to a position.
func Position(row, col int) int { return row*Size + col }

// InBounds reports whether pos addresses a cell.
func InBounds(pos int) bool { return pos >= 0 && pos < Cells }

// PlaceAt puts s into the empty cell at pos. The board is left unchanged on
// error.
func (b *Board) PlaceAt(pos int, s Seat) error {
	if !InBounds(pos) {
		return ErrOutOfBounds
	}
	if !s.Valid() {
		return ErrInvalidSeat
	}
	if b[pos] != Empty {
		return ErrOccupied
	}
	b[pos] = CellOf(s)
	return nil
}

// IsEmpty reports whether pos is in bounds and unoccupied.
func (b Board) IsEmpty(pos int) bool { return InBounds(pos) && b[pos] == Empty }

// Occupant returns the seat at pos, if any.
func (b Board) Occupant(pos int) (Seat, bool) {
	if !InBounds(pos) {
		return 0, false
	}
	return b[pos].Seat()
}

// IsFull reports whether every cell is occupied.
func (b Board) IsFull() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Empties lists the unoccupied positions in ascending order.
func (b Board) Empties() []int {
	out := make([]int, 0, Cells)
	for i, c := range b {
		if c == Empty {
			out = append(out, i)
		}
	}
	return out
}

// String renders the board as five rows, '-' for empty cells and the
// 1-based seat number otherwise.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if s, ok := b[Position(r, c)].Seat(); ok {
				sb.WriteByte(byte('1' + s))
			} else {
				sb.WriteByte('-')
			}
		}
		if r < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
