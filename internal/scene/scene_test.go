package scene

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
)

const (
	castleFEN       = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	castleBlackFEN  = "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1"
	promotionFEN    = "8/4P3/8/8/8/8/k7/4K3 w - - 0 1"
	capturePromoFEN = "3r4/4P3/8/8/8/8/k7/4K3 w - - 0 1"
	enPassantFEN    = "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"
)

// newTestController builds a controller over a notnil engine at fen.
func newTestController(t *testing.T, fen string, opts Options) *Controller {
	t.Helper()
	e, err := rules.New(rules.BackendNotnil, fen)
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	if opts.Logger == nil {
		opts.Logger = zaptest.NewLogger(t)
	}
	return NewController(board.NewFromFEN(e.FEN()), e, opts)
}

// stubEngine serves canned candidates and positions.
type stubEngine struct {
	moves   map[board.Square][]rules.Candidate
	sans    map[board.Square][]string
	fen     string
	after   string
	reject  bool
	applied []string
}

func (s *stubEngine) Moves(sq board.Square) []rules.Candidate { return s.moves[sq] }
func (s *stubEngine) Notations(sq board.Square) []string      { return s.sans[sq] }
func (s *stubEngine) FEN() string                             { return s.fen }

func (s *stubEngine) Apply(san string) error {
	if s.reject {
		return rules.ErrEngineRejected
	}
	s.applied = append(s.applied, san)
	s.fen = s.after
	return nil
}

// snapshot captures everything a move may change.
type snapshot struct {
	placement string
	fen       string
	pieces    map[board.Square]*board.Piece
}

func takeSnapshot(b *board.Board) snapshot {
	s := snapshot{placement: b.Placement(), fen: b.Position(), pieces: map[board.Square]*board.Piece{}}
	for _, p := range b.Pieces() {
		s.pieces[p.Square] = p
	}
	return s
}

func assertUnchanged(t *testing.T, b *board.Board, before snapshot) {
	t.Helper()
	after := takeSnapshot(b)
	if after.placement != before.placement {
		t.Errorf("placement changed: %q -> %q", before.placement, after.placement)
	}
	if after.fen != before.fen {
		t.Errorf("position changed: %q -> %q", before.fen, after.fen)
	}
	for sq, p := range before.pieces {
		if after.pieces[sq] != p {
			t.Errorf("piece on %s replaced", sq)
		}
		if p.Destroyed() {
			t.Errorf("piece %v destroyed", p)
		}
	}
}
