package board

import "testing"

func TestLoadStartingPosition(t *testing.T) {
	b := New()
	if n := b.Load(StartFEN); n != 32 {
		t.Fatalf("Load placed %d pieces, want 32", n)
	}

	counts := map[Color]map[Kind]int{White: {}, Black: {}}
	for _, p := range b.Pieces() {
		counts[p.Color][p.Kind]++
		if b.PieceAt(p.Square) != p {
			t.Errorf("%v does not own its square", p)
		}
	}

	want := map[Kind]int{King: 1, Queen: 1, Rook: 2, Bishop: 2, Knight: 2, Pawn: 8}
	for _, c := range []Color{White, Black} {
		total := 0
		for k, n := range want {
			if counts[c][k] != n {
				t.Errorf("%v %v count = %d, want %d", c, k, counts[c][k], n)
			}
			total += counts[c][k]
		}
		if total != 16 {
			t.Errorf("%v has %d pieces, want 16", c, total)
		}
	}

	canonical := map[string]struct {
		c Color
		k Kind
	}{
		"e1": {White, King}, "d1": {White, Queen}, "a1": {White, Rook}, "h1": {White, Rook},
		"b1": {White, Knight}, "g1": {White, Knight}, "c1": {White, Bishop}, "f1": {White, Bishop},
		"e8": {Black, King}, "d8": {Black, Queen}, "a8": {Black, Rook}, "h8": {Black, Rook},
		"b8": {Black, Knight}, "g8": {Black, Knight}, "c8": {Black, Bishop}, "f8": {Black, Bishop},
		"a2": {White, Pawn}, "h2": {White, Pawn}, "a7": {Black, Pawn}, "h7": {Black, Pawn},
	}
	for name, w := range canonical {
		p := b.PieceAt(MustSquare(name))
		if p == nil || p.Color != w.c || p.Kind != w.k {
			t.Errorf("%s: got %v, want %v %v", name, p, w.c, w.k)
		}
	}
}

func TestLoadEmptyIsNoop(t *testing.T) {
	b := NewFromFEN(StartFEN)
	if n := b.Load(""); n != 0 {
		t.Errorf("Load(\"\") placed %d pieces", n)
	}
	if len(b.Pieces()) != 32 {
		t.Errorf("Load(\"\") changed the board: %d pieces", len(b.Pieces()))
	}
}

func TestLoadTolerant(t *testing.T) {
	b := New()
	// Ninth file and unknown characters are dropped without panicking.
	n := b.Load("8/8/8/8/8/8/8/8x9K")
	if n != 0 {
		t.Errorf("expected no pieces placed, got %d", n)
	}
	if n := b.Load("k7/8/8/8/8/8/8/7K w - - 0 1"); n != 2 {
		t.Errorf("expected 2 pieces, got %d", n)
	}
	if p := b.PieceAt(H1); p == nil || p.Kind != King || p.Color != White {
		t.Errorf("h1 = %v, want White King", p)
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		b := NewFromFEN(fen)
		if got := b.Placement(); got != PlacementField(fen) {
			t.Errorf("Placement() = %q, want %q", got, PlacementField(fen))
		}
		if !b.InSync() {
			t.Errorf("board loaded from %q is not in sync", fen)
		}
	}
}
