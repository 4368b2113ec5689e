package board

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Board is an 8x8 grid of piece tokens indexed [row][col]. The zero value
// is an empty board. Boards are not safe for concurrent use.
type Board [Size][Size]Piece

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	for col := 0; col < Size; col++ {
		b[0][col] = NewPiece(backRank[col], Black)
		b[1][col] = BlackPawn
		b[6][col] = WhitePawn
		b[7][col] = NewPiece(backRank[col], White)
	}
	return b
}

// Copy creates a copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// At returns the piece on sq, or NoPiece if the square is empty or off
// the board.
func (b *Board) At(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if !sq.IsValid() {
		return
	}
	b[sq.Row][sq.Col] = p
}

// IsEmpty returns true if sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == NoPiece
}

// Apply moves the piece on m.From to m.To without any legality checks and
// returns whatever was captured. Pass the result to Undo to revert.
func (b *Board) Apply(m Move) Piece {
	captured := b[m.To.Row][m.To.Col]
	b[m.To.Row][m.To.Col] = b[m.From.Row][m.From.Col]
	b[m.From.Row][m.From.Col] = NoPiece
	return captured
}

// Undo reverts a move made with Apply.
func (b *Board) Undo(m Move, captured Piece) {
	b[m.From.Row][m.From.Col] = b[m.To.Row][m.To.Col]
	b[m.To.Row][m.To.Col] = captured
}

// KingPosition returns the square of the king of color c. The scan is
// row-major and returns the first king found.
func (b *Board) KingPosition(c Color) (Square, error) {
	king := NewPiece(King, c)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == king {
				return NewSquare(row, col), nil
			}
		}
	}
	return NoSquare, &KingNotFoundError{Color: c}
}

// Material returns the material balance (positive favors white).
func (b *Board) Material() int {
	score := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			score += b[row][col].SignedValue()
		}
	}
	return score
}

// Count returns the number of occupied squares.
func (b *Board) Count() int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] != NoPiece {
				n++
			}
		}
	}
	return n
}

// Key returns a 64-bit hash of the piece placement and side to move.
func (b *Board) Key(side Color) uint64 {
	var buf [Size*Size + 1]byte
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			buf[row*Size+col] = byte(b[row][col])
		}
	}
	buf[Size*Size] = byte(side)
	return xxhash.Sum64(buf[:])
}

// String returns a visual representation of the board from white's side.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < Size; row++ {
		sb.WriteByte(byte('8' - row))
		sb.WriteString("  ")
		for col := 0; col < Size; col++ {
			p := b[row][col]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String())
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
