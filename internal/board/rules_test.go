package board

import "testing"

func mustFEN(t *testing.T, fen string) (*Board, Color) {
	t.Helper()
	b, side, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b, side
}

func mustMove(t *testing.T, s string) Move {
	t.Helper()
	m, err := ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

type ruleCase struct {
	name string
	fen  string
	move string
	want bool
}

func runRuleCases(t *testing.T, cases []ruleCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mustFEN(t, tt.fen)
			m := mustMove(t, tt.move)
			if got := IsLegalMove(b, m.From, m.To, false); got != tt.want {
				t.Errorf("IsLegalMove(%s) = %v; want %v%s", tt.move, got, tt.want, b)
			}
		})
	}
}

func TestPawnRule(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{"white single push", StartFEN, "e2e3", true},
		{"white double push", StartFEN, "e2e4", true},
		{"white triple push", StartFEN, "e2e5", false},
		{"white backwards", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4e3", false},
		{"white sideways", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4d4", false},
		{"black single push", StartFEN, "d7d6", true},
		{"black double push", StartFEN, "d7d5", true},
		{"double push off home row", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3e5", false},
		{"push into piece", "4k3/8/8/8/4p3/4P3/8/4K3 w - - 0 1", "e3e4", false},
		{"double push blocked midway", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2e4", false},
		{"double push blocked at end", "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", "e2e4", false},
		{"diagonal capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", true},
		{"black diagonal capture", "4k3/8/8/3p4/4P3/8/8/4K3 b - - 0 1", "d5e4", true},
		{"diagonal onto empty", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4d5", false},
		{"diagonal onto friend", "4k3/8/8/3N4/4P3/8/8/4K3 w - - 0 1", "e4d5", false},
		{"diagonal backwards capture", "4k3/8/8/8/4P3/3p4/8/4K3 w - - 0 1", "e4d3", false},
		{"forward capture", "4k3/8/8/4p3/4P3/8/8/4K3 w - - 0 1", "e4e5", false},
	})
}

func TestRookRule(t *testing.T) {
	const open = "4k3/8/8/8/3R4/8/8/4K3 w - - 0 1"
	runRuleCases(t, []ruleCase{
		{"along file", open, "d4d8", true},
		{"along rank", open, "d4a4", true},
		{"diagonal", open, "d4e5", false},
		{"knight jump", open, "d4e6", false},
		{"blocked", "4k3/8/3p4/8/3R4/8/8/4K3 w - - 0 1", "d4d8", false},
		{"capture blocker", "4k3/8/3p4/8/3R4/8/8/4K3 w - - 0 1", "d4d6", true},
		{"onto friend", "4k3/8/3N4/8/3R4/8/8/4K3 w - - 0 1", "d4d6", false},
		{"start position blocked", StartFEN, "a1a3", false},
	})
}

func TestBishopRule(t *testing.T) {
	const open = "4k3/8/8/8/3B4/8/8/4K3 w - - 0 1"
	runRuleCases(t, []ruleCase{
		{"long diagonal", open, "d4h8", true},
		{"back diagonal", open, "d4a1", true},
		{"straight", open, "d4d6", false},
		{"uneven", open, "d4f5", false},
		{"blocked", "4k3/8/5p2/8/3B4/8/8/4K3 w - - 0 1", "d4g7", false},
		{"capture blocker", "4k3/8/5p2/8/3B4/8/8/4K3 w - - 0 1", "d4f6", true},
		{"start position blocked", StartFEN, "c1e3", false},
	})
}

func TestQueenRule(t *testing.T) {
	const open = "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1"
	runRuleCases(t, []ruleCase{
		{"as rook", open, "d4d8", true},
		{"as bishop", open, "d4g7", true},
		{"knight jump", open, "d4e6", false},
		{"blocked", "4k3/8/8/8/3Q4/4P3/8/4K3 w - - 0 1", "d4f2", false},
	})
}

func TestKnightRule(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{"jump from start", StartFEN, "g1f3", true},
		{"jump over pawns", StartFEN, "b1c3", true},
		{"onto friend", StartFEN, "g1e2", false},
		{"straight", StartFEN, "g1g3", false},
		{"capture", "4k3/8/8/4p3/8/5N2/8/4K3 w - - 0 1", "f3e5", true},
		{"black jump", StartFEN, "b8c6", true},
	})
}

func TestKingRule(t *testing.T) {
	runRuleCases(t, []ruleCase{
		{"step", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1d2", true},
		{"two squares", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1e3", false},
		{"onto friend", StartFEN, "e1e2", false},
		{"into rook file", "3rk3/8/8/8/8/8/8/4K3 w - - 0 1", "e1d1", false},
		{"capture undefended", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", "e1d2", true},
		{"capture defended", "3rk3/8/8/8/8/8/3r4/4K3 w - - 0 1", "e1d2", false},
		{"next to enemy king", "8/8/8/3k4/8/3K4/8/8 w - - 0 1", "d3d4", false},
		{"away from enemy king", "8/8/8/3k4/8/3K4/8/8 w - - 0 1", "d3d2", true},
		{"along checking line", "4k3/8/8/8/4r3/8/8/4K3 w - - 0 1", "e1e2", false},
	})
}

// An enemy king next to a square attacks it even when capturing there
// would be suicidal for that king.
func TestAdjacentKingsAttackDefendedSquares(t *testing.T) {
	b, _ := mustFEN(t, "8/8/8/4R3/3k4/8/8/4K3 w - - 0 1")

	// d4 is two rows away from e2.
	m := mustMove(t, "e1e2")
	if !IsLegalMove(b, m.From, m.To, false) {
		t.Error("Ke2 rejected")
	}

	b, _ = mustFEN(t, "8/8/8/4R3/3k4/8/4K3/8 w - - 0 1")
	m = mustMove(t, "e2e3")
	if IsLegalMove(b, m.From, m.To, false) {
		t.Errorf("Ke3 next to the black king accepted%s", b)
	}
}
