package board

import (
	"errors"
	"testing"
)

func TestPlaceAndRemove(t *testing.T) {
	b := New()
	p := NewPiece(White, Knight, NoSquare)
	b.PlacePiece(F3, p)
	if b.PieceAt(F3) != p || p.Square != F3 {
		t.Fatalf("PlacePiece did not take: %v", b.PieceAt(F3))
	}

	got := b.RemovePiece(F3)
	if got != p {
		t.Errorf("RemovePiece returned %v, want %v", got, p)
	}
	if b.PieceAt(F3) != nil {
		t.Error("square still occupied after RemovePiece")
	}
	if p.Destroyed() {
		t.Error("RemovePiece must not destroy the piece")
	}
	if b.PieceAt(NoSquare) != nil || b.RemovePiece(NoSquare) != nil {
		t.Error("NoSquare must never hold a piece")
	}
}

func TestPositionIdempotent(t *testing.T) {
	b := NewFromFEN(StartFEN)
	if b.Position() != b.Position() {
		t.Error("Position() changed between calls")
	}
	b.SetPosition("8/8/8/8/8/8/8/8 w - - 0 1")
	if len(b.Pieces()) != 32 {
		t.Error("SetPosition must not parse")
	}
}

func TestCommitCastling(t *testing.T) {
	b := NewFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	king, rook := b.PieceAt(E1), b.PieceAt(H1)

	after := "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1"
	err := b.Begin().Move(E1, G1).Move(H1, F1).Commit(after)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if b.PieceAt(G1) != king || b.PieceAt(F1) != rook {
		t.Errorf("expected king g1 and rook f1, got %v and %v", b.PieceAt(G1), b.PieceAt(F1))
	}
	if b.PieceAt(E1) != nil || b.PieceAt(H1) != nil {
		t.Error("e1 and h1 should be empty")
	}
	if king.Square != G1 || rook.Square != F1 {
		t.Errorf("piece squares not updated: %v %v", king, rook)
	}
	if b.Position() != after {
		t.Errorf("Position() = %q", b.Position())
	}
}

func TestCommitCaptureDestroysVictim(t *testing.T) {
	b := NewFromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	pawn, victim := b.PieceAt(E4), b.PieceAt(D5)

	if err := b.Begin().Move(E4, D5).Commit("4k3/8/8/3P4/8/8/8/4K3 b - - 0 1"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if !victim.Destroyed() {
		t.Error("captured pawn should be destroyed")
	}
	if pawn.Destroyed() || b.PieceAt(D5) != pawn {
		t.Error("capturing pawn should stand on d5")
	}
}

func TestCommitMismatchResyncs(t *testing.T) {
	b := NewFromFEN(StartFEN)
	// Staged e2-e4 but the position says e2-e3.
	fen := "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	err := b.Begin().Move(E2, E4).Commit(fen)
	if !errors.Is(err, ErrOutOfSync) {
		t.Fatalf("Commit error = %v, want ErrOutOfSync", err)
	}
	if !b.InSync() {
		t.Error("board should be rebuilt from the position")
	}
	if b.PieceAt(E3) == nil || b.PieceAt(E4) != nil {
		t.Error("grid should follow the position")
	}
}

func TestCommitEmptySquare(t *testing.T) {
	b := NewFromFEN(StartFEN)
	err := b.Begin().Move(E4, E5).Commit(StartFEN)
	if !errors.Is(err, ErrOutOfSync) || !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("Commit error = %v, want ErrOutOfSync wrapping ErrEmptySquare", err)
	}
}

func TestDiscardAndReuse(t *testing.T) {
	b := NewFromFEN(StartFEN)
	before := b.Placement()
	tx := b.Begin().Move(E2, E4)
	tx.Discard()
	if b.Placement() != before {
		t.Error("Discard must not touch the grid")
	}
	if err := tx.Commit(StartFEN); !errors.Is(err, ErrTxDone) {
		t.Errorf("reused transaction error = %v, want ErrTxDone", err)
	}
}

func TestPieceSymbols(t *testing.T) {
	for _, c := range []byte("PNBRQKpnbrqk") {
		color, kind, ok := PieceFromSymbol(c)
		if !ok {
			t.Fatalf("PieceFromSymbol(%q) failed", c)
		}
		if got := NewPiece(color, kind, A1).Symbol(); got != c {
			t.Errorf("symbol round trip %q -> %q", c, got)
		}
	}
	if _, _, ok := PieceFromSymbol('x'); ok {
		t.Error("'x' is not a piece symbol")
	}
}
