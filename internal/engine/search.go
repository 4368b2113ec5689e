package engine

import "github.com/hailam/chesscore/internal/board"

// Search constants
const (
	Infinity     = 30000
	MateScore    = 29000
	MaxPly       = 64
	DefaultDepth = 3
)

// Searcher performs the minimax search with alpha-beta pruning.
// It mutates the board while searching and restores it before returning,
// so a board must not be shared with another goroutine during a search.
type Searcher struct {
	nodes uint64
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Reset resets the searcher for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of nodes searched since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search returns the best move for side and its score at the given depth.
// White maximizes, black minimizes. Depths below 1 are searched as 1.
// If side has no legal move the result is NoMove and the terminal score.
func (s *Searcher) Search(b *board.Board, depth int, side board.Color) (board.Move, int) {
	if depth < 1 {
		depth = 1
	}
	if depth > MaxPly {
		depth = MaxPly
	}

	s.nodes++
	moves := board.LegalMoves(b, side)
	if len(moves) == 0 {
		return board.NoMove, terminalScore(b, side, 0)
	}

	maximizing := side == board.White
	alpha, beta := -Infinity, Infinity
	best := worstScore(maximizing)
	bestMove := board.NoMove

	for _, m := range moves {
		captured := b.Apply(m)
		score := s.minimax(b, depth-1, 1, alpha, beta, side.Other())
		b.Undo(m, captured)

		if maximizing {
			if score > best {
				best, bestMove = score, m
			}
			alpha = max(alpha, best)
		} else {
			if score < best {
				best, bestMove = score, m
			}
			beta = min(beta, best)
		}
	}

	// Every score is strictly inside the window, so the first move
	// always improves on the initial bound.
	return bestMove, best
}

func (s *Searcher) minimax(b *board.Board, depth, ply, alpha, beta int, side board.Color) int {
	s.nodes++

	if depth == 0 {
		return Evaluate(b)
	}

	moves := board.LegalMoves(b, side)
	if len(moves) == 0 {
		return terminalScore(b, side, ply)
	}

	maximizing := side == board.White
	best := worstScore(maximizing)

	for _, m := range moves {
		captured := b.Apply(m)
		score := s.minimax(b, depth-1, ply+1, alpha, beta, side.Other())
		b.Undo(m, captured)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if beta <= alpha {
			break
		}
	}

	return best
}

func worstScore(maximizing bool) int {
	if maximizing {
		return -Infinity
	}
	return Infinity
}

// BestMove searches depth plies ahead and returns the best move for side.
// The second result is false only when side has no legal move; the caller
// tells checkmate from stalemate with board.InCheck or board.StatusOf.
// The board is restored before BestMove returns.
func BestMove(b *board.Board, depth int, side board.Color) (board.Move, bool) {
	m, _ := NewSearcher().Search(b, depth, side)
	return m, m != board.NoMove
}
