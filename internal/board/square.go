// Package board implements an 8x8 grid chess board, per-piece move rules,
// and simulation-based legality, check and checkmate detection.
package board

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Square identifies a board cell by row and column.
// Row 0 is black's back rank and row 7 is white's; column 0 is the
// a-file as seen from white's side.
type Square struct {
	Row int
	Col int
}

// NoSquare is returned where no square applies.
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// String returns the coordinate name of the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '8'-sq.Row)
}

// ParseSquare parses a coordinate name (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	sq := NewSquare(row, col)
	if !sq.IsValid() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// offset returns the square shifted by the given deltas. The result may
// be off the board.
func (sq Square) offset(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign[T constraints.Signed](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
