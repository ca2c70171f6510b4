package board

import (
	"errors"
	"testing"
)

func TestParseSquareRoundTrip(t *testing.T) {
	seen := make(map[Square]bool)
	for file := 'a'; file <= 'h'; file++ {
		for rank := '1'; rank <= '8'; rank++ {
			name := string([]rune{file, rank})
			sq, err := ParseSquare(name)
			if err != nil {
				t.Fatalf("ParseSquare(%q) failed: %v", name, err)
			}
			if sq.Index() < 0 || sq.Index() > 63 {
				t.Fatalf("ParseSquare(%q) = %d, out of range", name, sq)
			}
			if seen[sq] {
				t.Fatalf("ParseSquare(%q) = %d, already used", name, sq)
			}
			seen[sq] = true
			if got := sq.String(); got != name {
				t.Errorf("round trip %q -> %d -> %q", name, sq, got)
			}
		}
	}
	if len(seen) != NumSquares {
		t.Errorf("expected %d distinct squares, got %d", NumSquares, len(seen))
	}
}

func TestParseSquareIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"a8", 0},
		{"h8", 7},
		{"a1", 56},
		{"h1", 63},
		{"e4", 36},
		{"g1", 62},
		{"c8", 2},
	}
	for _, tt := range tests {
		sq, err := ParseSquare(tt.name)
		if err != nil {
			t.Fatalf("ParseSquare(%q) failed: %v", tt.name, err)
		}
		if sq.Index() != tt.want {
			t.Errorf("ParseSquare(%q) = %d, want %d", tt.name, sq.Index(), tt.want)
		}
	}
}

func TestParseSquareRejectsMalformed(t *testing.T) {
	for _, name := range []string{"", "e", "e9", "i1", "a0", "E4", "e44", "4e"} {
		sq, err := ParseSquare(name)
		if !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", name, err)
		}
		if sq != NoSquare {
			t.Errorf("ParseSquare(%q) = %d, want NoSquare", name, sq)
		}
	}
}

func TestSquareGeometry(t *testing.T) {
	if E4.File() != 4 || E4.Rank() != 4 || E4.Row() != 4 {
		t.Errorf("E4 geometry: file=%d rank=%d row=%d", E4.File(), E4.Rank(), E4.Row())
	}
	if got := G1.Offset(-1, 0); got != F1 {
		t.Errorf("G1.Offset(-1,0) = %v, want f1", got)
	}
	if got := H1.Offset(1, 0); got != NoSquare {
		t.Errorf("H1.Offset(1,0) = %v, want NoSquare", got)
	}
	if got := E2.Mirror(); got != E7 {
		t.Errorf("E2.Mirror() = %v, want e7", got)
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
}
