package board

import "fmt"

// InCheck reports whether the king of color c standing on king is attacked:
// true iff some opposing piece can move onto king by its movement rule.
func InCheck(b *Board, king Square, c Color) bool {
	them := c.Other()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := NewSquare(row, col)
			if b.At(from).Color() != them {
				continue
			}
			if IsLegalMove(b, from, king, true) {
				return true
			}
		}
	}
	return false
}

// IsCheckmate reports whether side c is in check with no way out: no king
// escape square and no friendly move that resolves the check. It returns
// an error only when c has no king on the board.
func IsCheckmate(b *Board, c Color) (bool, error) {
	ksq, err := b.KingPosition(c)
	if err != nil {
		return false, fmt.Errorf("checkmate test: %w", err)
	}

	if !InCheck(b, ksq, c) {
		return false, nil
	}

	// Escape squares first; the full king rule re-tests the destination.
	for _, off := range kingOffsets {
		to := ksq.offset(off[0], off[1])
		if to.IsValid() && validateKingMove(b, ksq, to, c) {
			return false, nil
		}
	}

	// Any block or capture by any friendly piece.
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := NewSquare(row, col)
			if b.At(from).Color() != c {
				continue
			}
			for _, to := range GenerateMoves(b, from, c) {
				if !leavesKingInCheck(b, Move{From: from, To: to}, c) {
					return false, nil
				}
			}
		}
	}

	return true, nil
}

// Status is the state of one side after a move has been committed.
type Status uint8

const (
	Normal Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Normal:
		return "normal"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// IsTerminal returns true for checkmate and stalemate.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// StatusOf classifies side c: checkmate and stalemate are told apart by
// whether c is in check when it has no legal move.
func StatusOf(b *Board, c Color) (Status, error) {
	ksq, err := b.KingPosition(c)
	if err != nil {
		return Normal, fmt.Errorf("status: %w", err)
	}

	inCheck := InCheck(b, ksq, c)
	if HasLegalMove(b, c) {
		if inCheck {
			return Check, nil
		}
		return Normal, nil
	}

	if inCheck {
		return Checkmate, nil
	}
	return Stalemate, nil
}
