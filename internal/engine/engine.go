package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/hailam/chesscore/internal/board"
)

// SearchInfo contains information about a completed search iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int // Maximum depth in plies (0 = DefaultDepth)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2},
	Medium: {Depth: DefaultDepth},
	Hard:   {Depth: 4},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for search summaries.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithDifficulty sets the initial difficulty.
func WithDifficulty(d Difficulty) Option {
	return func(e *Engine) {
		e.difficulty = d
	}
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
	log        zerolog.Logger

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine. Without options it searches at
// Medium difficulty and logs nothing.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		searcher:   NewSearcher(),
		difficulty: Medium,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds the best move for side at the current difficulty.
func (e *Engine) Search(b *board.Board, side board.Color) board.Move {
	limits, ok := DifficultySettings[e.difficulty]
	if !ok {
		limits = SearchLimits{Depth: DefaultDepth}
	}
	return e.SearchWithLimits(b, side, limits)
}

// SearchWithLimits finds the best move for side with specific limits.
//
// Depths are searched one after another up to the limit so OnInfo can
// report progress; the move from the deepest iteration is returned. A
// forced mate ends the iteration early. NoMove means side has no legal
// move.
func (e *Engine) SearchWithLimits(b *board.Board, side board.Color, limits SearchLimits) board.Move {
	e.searcher.Reset()

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}

	startTime := time.Now()
	bestMove := board.NoMove
	bestScore := 0
	depth := 0

	for depth = 1; depth <= maxDepth; depth++ {
		move, score := e.searcher.Search(b, depth, side)
		if move == board.NoMove {
			bestScore = score
			break
		}
		bestMove, bestScore = move, score

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(startTime),
				Move:  move,
			})
		}

		if IsMateScore(score) {
			break
		}
	}

	e.log.Debug().
		Str("side", side.String()).
		Int("depth", min(depth, maxDepth)).
		Str("move", bestMove.String()).
		Str("score", ScoreToString(bestScore)).
		Str("nodes", humanize.Comma(int64(e.searcher.Nodes()))).
		Dur("elapsed", time.Since(startTime)).
		Msg("search finished")

	return bestMove
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Perft counts the leaf nodes of the legal move tree of the given depth.
func (e *Engine) Perft(b *board.Board, side board.Color, depth int) uint64 {
	return Perft(b, side, depth)
}

// Perft counts the leaf nodes of the legal move tree of the given depth
// (for debugging move generation). The board is restored on return.
func Perft(b *board.Board, side board.Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := board.LegalMoves(b, side)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		captured := b.Apply(m)
		nodes += Perft(b, side.Other(), depth-1)
		b.Undo(m, captured)
	}
	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b)
}

// ScoreToString converts a score to a human-readable string. Scores are
// in pawns from white's point of view.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return fmt.Sprintf("Mate in %d", (MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return fmt.Sprintf("Mated in %d", (MateScore+score+1)/2)
	}
	return fmt.Sprintf("%+d", score)
}
