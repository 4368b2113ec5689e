package board

import "fmt"

// Move relocates the piece on From to To. Capture is implied when To
// holds an opposing piece.
type Move struct {
	From Square
	To   Square
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move from row/column coordinates.
func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: NewSquare(fromRow, fromCol), To: NewSquare(toRow, toCol)}
}

// IsValid returns true if both squares lie on the board.
func (m Move) IsValid() bool {
	return m.From.IsValid() && m.To.IsValid()
}

// IsCapture returns true if the destination holds an opposing piece.
func (m Move) IsCapture(b *Board) bool {
	target := b.At(m.To)
	return target != NoPiece && !IsSameSide(b.At(m.From), target)
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move string such as "e2e4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	return Move{From: from, To: to}, nil
}

// MoveList is an ordered list of moves.
type MoveList []Move

// Contains returns true if the list contains the move.
func (ml MoveList) Contains(m Move) bool {
	for _, mv := range ml {
		if mv == m {
			return true
		}
	}
	return false
}

// Strings returns the coordinate form of every move.
func (ml MoveList) Strings() []string {
	out := make([]string, len(ml))
	for i, m := range ml {
		out[i] = m.String()
	}
	return out
}
