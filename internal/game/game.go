// Package game tracks a single game: whose turn it is, the committed
// moves, and whether the game has ended.
package game

import (
	"errors"
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoHistory   = errors.New("no move to take back")
)

// Results in PGN notation.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultOngoing   = "*"
)

// Ply is one committed move and what it captured.
type Ply struct {
	Move     board.Move
	Piece    board.Piece
	Captured board.Piece
}

// State is a game in progress. The board belongs to the state; callers
// may read it but should only change it through Commit and Undo.
// A State is not safe for concurrent use.
type State struct {
	Board   *board.Board
	Turn    board.Color
	Status  board.Status
	Winner  board.Color
	History []Ply

	startFEN string
	cache    *StatusCache
}

// Option configures a State.
type Option func(*State)

// WithStatusCache makes the state look up status through c.
func WithStatusCache(c *StatusCache) Option {
	return func(s *State) {
		s.cache = c
	}
}

// New starts a game from the standard starting position.
func New(opts ...Option) *State {
	s, err := FromFEN(board.StartFEN, opts...)
	if err != nil {
		// The start position always has both kings.
		panic(err)
	}
	return s
}

// FromFEN starts a game from a FEN position. The position may already be
// over, in which case Commit reports ErrGameOver.
func FromFEN(fen string, opts ...Option) (*State, error) {
	b, side, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	s := &State{
		Board:  b,
		Turn:   side,
		Winner: board.NoColor,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startFEN = b.ToFEN(side)

	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) statusOf(side board.Color) (board.Status, error) {
	if s.cache != nil {
		return s.cache.Status(s.Board, side)
	}
	return board.StatusOf(s.Board, side)
}

// refresh recomputes Status and Winner for the side to move.
func (s *State) refresh() error {
	st, err := s.statusOf(s.Turn)
	if err != nil {
		return err
	}
	s.Status = st
	s.Winner = board.NoColor
	if st == board.Checkmate {
		s.Winner = s.Turn.Other()
	}
	return nil
}

// Commit plays m for the side to move. The move must be fully legal; on
// any error the state is unchanged.
func (s *State) Commit(m board.Move) error {
	if s.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, s.Status)
	}

	piece := s.Board.At(m.From)
	if piece == board.NoPiece {
		return fmt.Errorf("%w: %s: no piece on %s", ErrIllegalMove, m, m.From)
	}
	if piece.Color() != s.Turn {
		return fmt.Errorf("%w: %s moves a %v piece", ErrNotYourTurn, m, piece.Color())
	}
	if !board.IsLegalMove(s.Board, m.From, m.To, false) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	captured := s.Board.Apply(m)
	prevTurn, prevStatus, prevWinner := s.Turn, s.Status, s.Winner
	s.Turn = s.Turn.Other()

	if err := s.refresh(); err != nil {
		s.Board.Undo(m, captured)
		s.Turn, s.Status, s.Winner = prevTurn, prevStatus, prevWinner
		return fmt.Errorf("commit %s: %w", m, err)
	}

	s.History = append(s.History, Ply{Move: m, Piece: piece, Captured: captured})
	return nil
}

// CommitString parses a coordinate move such as "e2e4" and commits it.
func (s *State) CommitString(move string) error {
	m, err := board.ParseMove(move)
	if err != nil {
		return err
	}
	return s.Commit(m)
}

// Undo takes back the last committed move.
func (s *State) Undo() error {
	if len(s.History) == 0 {
		return ErrNoHistory
	}

	last := s.History[len(s.History)-1]
	s.Board.Undo(last.Move, last.Captured)
	s.History = s.History[:len(s.History)-1]
	s.Turn = s.Turn.Other()
	return s.refresh()
}

// LegalMoves returns the legal moves of the side to move, or nothing once
// the game is over.
func (s *State) LegalMoves() board.MoveList {
	if s.Status.IsTerminal() {
		return nil
	}
	return board.LegalMoves(s.Board, s.Turn)
}

// IsOver returns true after checkmate or stalemate.
func (s *State) IsOver() bool {
	return s.Status.IsTerminal()
}

// Result returns the game result in PGN notation.
func (s *State) Result() string {
	switch s.Status {
	case board.Checkmate:
		if s.Winner == board.White {
			return ResultWhiteWins
		}
		return ResultBlackWins
	case board.Stalemate:
		return ResultDraw
	default:
		return ResultOngoing
	}
}

// Moves returns the committed moves in coordinate notation.
func (s *State) Moves() []string {
	moves := make([]string, len(s.History))
	for i, p := range s.History {
		moves[i] = p.Move.String()
	}
	return moves
}

// StartFEN returns the position the game started from.
func (s *State) StartFEN() string {
	return s.startFEN
}

// FEN returns the current position.
func (s *State) FEN() string {
	return s.Board.ToFEN(s.Turn)
}
