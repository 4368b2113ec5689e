package board

// Per-piece movement rules. Each rule decides whether relocating the piece
// on from to to fits the piece's pattern on the current board, without
// asking whether the mover's own king ends up exposed. The callers
// guarantee both squares are on the board and from is occupied.

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {0, -1}, {1, -1},
	{-1, 1}, {1, 1}, {1, 0}, {0, 1},
}

// followsRule dispatches to the rule for the piece on from. With
// skipSafety set the king rule drops its own destination-safety test.
func followsRule(b *Board, from, to Square, skipSafety bool) bool {
	piece := b.At(from)
	switch piece.Type() {
	case Pawn:
		return validatePawnMove(b, from, to, piece.Color())
	case Knight:
		return validateKnightMove(b, from, to)
	case Bishop:
		return validateBishopMove(b, from, to)
	case Rook:
		return validateRookMove(b, from, to)
	case Queen:
		return validateQueenMove(b, from, to)
	case King:
		if skipSafety {
			return kingStep(b, from, to)
		}
		return validateKingMove(b, from, to, piece.Color())
	default:
		return false
	}
}

// destinationOpen reports whether to is empty or holds an opposing piece.
func destinationOpen(b *Board, from, to Square) bool {
	return !IsSameSide(b.At(from), b.At(to))
}

// validatePawnMove: one step forward onto an empty square, two steps from
// the home row through empty squares, or a one-step diagonal capture.
func validatePawnMove(b *Board, from, to Square, c Color) bool {
	dir := c.forward()
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	target := b.At(to)

	// Diagonal capture
	if abs(dc) == 1 && dr == dir {
		return target != NoPiece && !IsSameSide(b.At(from), target)
	}

	if dc != 0 || target != NoPiece {
		return false
	}

	if dr == dir {
		return true
	}

	return from.Row == c.pawnRow() && dr == 2*dir && b.IsEmpty(from.offset(dir, 0))
}

// clearPath reports whether every square strictly between from and to is
// empty. from and to must share a row, column or diagonal.
func clearPath(b *Board, from, to Square) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)

	for sq := from.offset(dr, dc); sq != to; sq = sq.offset(dr, dc) {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func validateRookMove(b *Board, from, to Square) bool {
	if from == to || (from.Row != to.Row && from.Col != to.Col) {
		return false
	}
	return clearPath(b, from, to) && destinationOpen(b, from, to)
}

func validateBishopMove(b *Board, from, to Square) bool {
	dr := abs(to.Row - from.Row)
	if dr == 0 || dr != abs(to.Col-from.Col) {
		return false
	}
	return clearPath(b, from, to) && destinationOpen(b, from, to)
}

func validateQueenMove(b *Board, from, to Square) bool {
	return validateBishopMove(b, from, to) || validateRookMove(b, from, to)
}

func validateKnightMove(b *Board, from, to Square) bool {
	for _, off := range knightOffsets {
		if from.offset(off[0], off[1]) == to {
			return destinationOpen(b, from, to)
		}
	}
	return false
}

// kingStep is the structural part of the king rule: one square in any
// direction onto a square not held by a friendly piece.
func kingStep(b *Board, from, to Square) bool {
	dr := abs(to.Row - from.Row)
	dc := abs(to.Col - from.Col)
	if dr > 1 || dc > 1 || (dr == 0 && dc == 0) {
		return false
	}
	return destinationOpen(b, from, to)
}

// validateKingMove is the full king rule: a king step whose destination is
// not attacked once the king stands on it.
func validateKingMove(b *Board, from, to Square, c Color) bool {
	if !kingStep(b, from, to) {
		return false
	}

	m := Move{From: from, To: to}
	captured := b.Apply(m)
	attacked := InCheck(b, to, c)
	b.Undo(m, captured)

	return !attacked
}
