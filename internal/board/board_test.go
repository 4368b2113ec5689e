package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		{"black rook a8", "a8", BlackRook},
		{"black queen d8", "d8", BlackQueen},
		{"black king e8", "e8", BlackKing},
		{"black pawn e7", "e7", BlackPawn},
		{"white pawn e2", "e2", WhitePawn},
		{"white king e1", "e1", WhiteKing},
		{"white queen d1", "d1", WhiteQueen},
		{"white knight g1", "g1", WhiteKnight},
		{"empty e4", "e4", NoPiece},
		{"empty d5", "d5", NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := ParseSquare(tt.sq)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", tt.sq, err)
			}
			if got := b.At(sq); got != tt.piece {
				t.Errorf("At(%s) = %q; want %q", tt.sq, got, tt.piece)
			}
		})
	}

	if got := b.Count(); got != 32 {
		t.Errorf("Count() = %d; want 32", got)
	}
	if got := b.Material(); got != 0 {
		t.Errorf("Material() = %d; want 0", got)
	}
}

func TestZeroBoardIsEmpty(t *testing.T) {
	var b Board
	if got := b.Count(); got != 0 {
		t.Errorf("zero Board has %d pieces; want 0", got)
	}
}

func TestKingPosition(t *testing.T) {
	b := NewBoard()

	sq, err := b.KingPosition(White)
	if err != nil {
		t.Fatalf("KingPosition(White): %v", err)
	}
	if sq != NewSquare(7, 4) {
		t.Errorf("white king at %v; want (7,4)", sq)
	}

	sq, err = b.KingPosition(Black)
	if err != nil {
		t.Fatalf("KingPosition(Black): %v", err)
	}
	if sq != NewSquare(0, 4) {
		t.Errorf("black king at %v; want (0,4)", sq)
	}

	b.Set(NewSquare(0, 4), NoPiece)
	_, err = b.KingPosition(Black)
	if !errors.Is(err, ErrKingNotFound) {
		t.Fatalf("KingPosition on kingless board: err = %v; want ErrKingNotFound", err)
	}
	var knf *KingNotFoundError
	if !errors.As(err, &knf) || knf.Color != Black {
		t.Errorf("error %v does not carry Black", err)
	}
}

func TestApplyUndo(t *testing.T) {
	b := NewBoard()
	before := *b

	m := NewMove(6, 4, 4, 4)
	captured := b.Apply(m)
	if captured != NoPiece {
		t.Errorf("Apply captured %q; want nothing", captured)
	}
	if b.At(m.To) != WhitePawn || !b.IsEmpty(m.From) {
		t.Fatalf("Apply did not relocate the pawn:%s", b)
	}

	b.Undo(m, captured)
	if diff := cmp.Diff(before, *b); diff != "" {
		t.Errorf("board changed after Undo (-before +after):\n%s", diff)
	}
}

func TestApplyCapture(t *testing.T) {
	b, _, err := ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := *b

	m, _ := ParseMove("e4d5")
	captured := b.Apply(m)
	if captured != BlackPawn {
		t.Errorf("captured %q; want black pawn", captured)
	}
	if got := b.Material(); got != 1 {
		t.Errorf("Material() after capture = %d; want 1", got)
	}

	b.Undo(m, captured)
	if diff := cmp.Diff(before, *b); diff != "" {
		t.Errorf("board changed after Undo (-before +after):\n%s", diff)
	}
}

func TestKey(t *testing.T) {
	a := NewBoard()
	b := NewBoard()

	if a.Key(White) != b.Key(White) {
		t.Error("equal boards have different keys")
	}
	if a.Key(White) == a.Key(Black) {
		t.Error("side to move does not change the key")
	}

	b.Apply(NewMove(6, 4, 4, 4))
	if a.Key(White) == b.Key(White) {
		t.Error("different placements share a key")
	}
}

func TestPieceEncoding(t *testing.T) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			if p == NoPiece {
				t.Fatalf("NewPiece(%v, %v) = NoPiece", pt, c)
			}
			if p.Type() != pt || p.Color() != c {
				t.Errorf("NewPiece(%v, %v) decodes as (%v, %v)", pt, c, p.Type(), p.Color())
			}
			if got := PieceFromChar(p.String()[0]); got != p {
				t.Errorf("PieceFromChar(%q) = %q; want %q", p.String(), got, p)
			}
		}
	}

	if NoPiece.Color() != NoColor || NoPiece.Type() != NoPieceType {
		t.Error("NoPiece has a color or type")
	}
	if NewPiece(NoPieceType, White) != NoPiece {
		t.Error("NewPiece with no type is not NoPiece")
	}
}

func TestSignedValue(t *testing.T) {
	tests := []struct {
		piece Piece
		want  int
	}{
		{WhitePawn, 1},
		{WhiteKnight, 3},
		{WhiteBishop, 3},
		{WhiteRook, 5},
		{WhiteQueen, 9},
		{WhiteKing, 100},
		{BlackPawn, -1},
		{BlackKnight, -3},
		{BlackBishop, -3},
		{BlackRook, -5},
		{BlackQueen, -9},
		{BlackKing, -100},
		{NoPiece, 0},
	}
	for _, tt := range tests {
		if got := tt.piece.SignedValue(); got != tt.want {
			t.Errorf("%q.SignedValue() = %d; want %d", tt.piece, got, tt.want)
		}
	}
}

func TestIsSameSide(t *testing.T) {
	tests := []struct {
		a, b Piece
		want bool
	}{
		{WhitePawn, WhiteKing, true},
		{BlackQueen, BlackKnight, true},
		{WhitePawn, BlackPawn, false},
		{BlackKing, WhiteRook, false},
		{WhitePawn, NoPiece, false},
		{NoPiece, NoPiece, false},
	}
	for _, tt := range tests {
		if got := IsSameSide(tt.a, tt.b); got != tt.want {
			t.Errorf("IsSameSide(%q, %q) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{"a8", NewSquare(0, 0), false},
		{"h1", NewSquare(7, 7), false},
		{"e2", NewSquare(6, 4), false},
		{"e4", NewSquare(4, 4), false},
		{"i1", NoSquare, true},
		{"a9", NoSquare, true},
		{"a0", NoSquare, true},
		{"e", NoSquare, true},
		{"e44", NoSquare, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSquare) {
					t.Errorf("ParseSquare(%q) err = %v; want ErrInvalidSquare", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSquare(%q) = %+v; want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q; want %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if m != NewMove(6, 4, 4, 4) {
		t.Errorf("ParseMove(e2e4) = %+v", m)
	}
	if m.String() != "e2e4" {
		t.Errorf("String() = %q", m.String())
	}

	for _, bad := range []string{"", "e2", "e2e9", "e2e4q", "z1a1"} {
		if _, err := ParseMove(bad); err == nil {
			t.Errorf("ParseMove(%q) succeeded", bad)
		}
	}

	if NoMove.String() != "0000" {
		t.Errorf("NoMove.String() = %q; want 0000", NoMove.String())
	}
}
