package engine

import "github.com/hailam/chesscore/internal/board"

// Evaluate returns the material balance of the position from white's point
// of view: pawn 1, knight 3, bishop 3, rook 5, queen 9, king 100.
func Evaluate(b *board.Board) int {
	return b.Material()
}

// terminalScore scores a node where side has no legal move. A mated side
// loses by MateScore minus the distance to the mate so that shorter mates
// are preferred; stalemate is a draw.
func terminalScore(b *board.Board, side board.Color, ply int) int {
	ksq, err := b.KingPosition(side)
	if err != nil {
		// Nothing left to mate.
		return Evaluate(b)
	}
	if !board.InCheck(b, ksq, side) {
		return 0
	}
	if side == board.White {
		return -(MateScore - ply)
	}
	return MateScore - ply
}

// IsMateScore returns true if score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > MateScore-MaxPly || score < -MateScore+MaxPly
}
