package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// StartFEN is the FEN string for the starting position. Castling rights
// are omitted because castling is not part of the move model.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN parses a FEN string into a board and the side to move.
// Only the placement and side fields are used; castling, en passant and
// move counters are accepted and ignored. The side defaults to white.
func ParseFEN(fen string) (*Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, NoColor, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}

	b := &Board{}
	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, NoColor, err
	}

	side := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			side = White
		case "b":
			side = Black
		default:
			return nil, NoColor, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
		}
	}

	if err := validateKings(b); err != nil {
		return nil, NoColor, err
	}

	return b, side, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// FEN lists rank 8 first, which is row 0.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for row, rankStr := range ranks {
		col := 0
		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, Size-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			if c >= utf8.RuneSelf {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			b[row][col] = piece
			col++
		}

		if col != Size {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, Size-row, col)
		}
	}

	return nil
}

// validateKings checks that each side has exactly one king.
func validateKings(b *Board) error {
	for _, c := range []Color{White, Black} {
		king := NewPiece(King, c)
		n := 0
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if b[row][col] == king {
					n++
				}
			}
		}
		if n == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidFEN, &KingNotFoundError{Color: c})
		}
		if n > 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidFEN, c, n)
		}
	}
	return nil
}

// ToFEN returns the FEN representation of the board with the given side
// to move.
func (b *Board) ToFEN(side Color) string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if side == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
