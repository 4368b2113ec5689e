package board

// IsLegalMove reports whether the piece on from may move to to.
//
// The move is rejected when from is empty, when either square is off the
// board, when to holds a friendly piece, or when it breaks the piece's
// movement rule. Unless skipSafety is set, the move is also simulated and
// rejected if it leaves the mover's own king in check.
//
// skipSafety is what InCheck uses to ask "can this piece reach that
// square": an attacker's own exposure does not matter there, and testing
// it would recurse through InCheck forever.
func IsLegalMove(b *Board, from, to Square, skipSafety bool) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}

	piece := b.At(from)
	if piece == NoPiece {
		return false
	}
	if IsSameSide(piece, b.At(to)) {
		return false
	}

	if !followsRule(b, from, to, skipSafety) {
		return false
	}

	if skipSafety {
		return true
	}
	return !leavesKingInCheck(b, Move{From: from, To: to}, piece.Color())
}

// leavesKingInCheck simulates m and tests the mover's king. A board with no
// king of color c has nothing to expose.
func leavesKingInCheck(b *Board, m Move, c Color) bool {
	captured := b.Apply(m)
	defer b.Undo(m, captured)

	ksq, err := b.KingPosition(c)
	if err != nil {
		return false
	}
	return InCheck(b, ksq, c)
}

// GenerateMoves returns every destination the piece on from can reach by
// its movement rule, scanning all 64 squares in row-major order. Moves that
// expose the mover's king are included; this is the attack/defense source
// used by check and checkmate detection. The piece must belong to c.
func GenerateMoves(b *Board, from Square, c Color) []Square {
	if b.At(from).Color() != c {
		return nil
	}

	var dests []Square
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			to := NewSquare(row, col)
			if IsLegalMove(b, from, to, true) {
				dests = append(dests, to)
			}
		}
	}
	return dests
}

// LegalDestinations returns the destinations from which the piece on from
// can move without exposing its own king.
func LegalDestinations(b *Board, from Square) []Square {
	c := b.At(from).Color()
	if c == NoColor {
		return nil
	}

	var dests []Square
	for _, to := range GenerateMoves(b, from, c) {
		if !leavesKingInCheck(b, Move{From: from, To: to}, c) {
			dests = append(dests, to)
		}
	}
	return dests
}

// PseudoLegalMoves returns all moves of side c that follow the piece rules,
// in row-major order of origin then destination.
func PseudoLegalMoves(b *Board, c Color) MoveList {
	var ml MoveList
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := NewSquare(row, col)
			if b.At(from).Color() != c {
				continue
			}
			for _, to := range GenerateMoves(b, from, c) {
				ml = append(ml, Move{From: from, To: to})
			}
		}
	}
	return ml
}

// LegalMoves returns all moves of side c that do not leave its king in
// check, in row-major order of origin then destination.
func LegalMoves(b *Board, c Color) MoveList {
	var ml MoveList
	for _, m := range PseudoLegalMoves(b, c) {
		if !leavesKingInCheck(b, m, c) {
			ml = append(ml, m)
		}
	}
	return ml
}

// HasLegalMove returns true if side c has at least one legal move.
func HasLegalMove(b *Board, c Color) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := NewSquare(row, col)
			if b.At(from).Color() != c {
				continue
			}
			for _, to := range GenerateMoves(b, from, c) {
				if !leavesKingInCheck(b, Move{From: from, To: to}, c) {
					return true
				}
			}
		}
	}
	return false
}
