package scene

import (
	"errors"
	"testing"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
)

func TestDragStartMarksDropZones(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	if err := c.DragStart(board.G1); err != nil {
		t.Fatalf("DragStart: %v", err)
	}
	if c.State() != Armed {
		t.Fatalf("state = %v, want armed", c.State())
	}
	if !c.View(board.G1).Tint {
		t.Error("origin should be tinted")
	}
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		want := sq == board.F3 || sq == board.H3
		v := c.View(sq)
		if v.DropZone != want || v.Marker != want {
			t.Errorf("%s: drop zone %v marker %v, want %v", sq, v.DropZone, v.Marker, want)
		}
	}
	if c.Dragged() != c.Board().PieceAt(board.G1) {
		t.Error("Dragged() should be the g1 knight")
	}
}

func TestDragStartEmptySquare(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	if err := c.DragStart(board.E4); !errors.Is(err, board.ErrEmptySquare) {
		t.Errorf("DragStart(e4) = %v, want ErrEmptySquare", err)
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestHideMarkers(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{HideMarkers: true})
	if err := c.DragStart(board.E2); err != nil {
		t.Fatal(err)
	}
	if v := c.View(board.E4); !v.DropZone || v.Marker {
		t.Errorf("e4 view = %+v, want drop zone without marker", v)
	}
}

func TestEnterLeaveOnlyActiveZones(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	if err := c.DragStart(board.E2); err != nil {
		t.Fatal(err)
	}

	c.DragEnter(board.E4)
	if !c.View(board.E4).Border {
		t.Error("entering an active zone should show the border")
	}
	c.DragLeave(board.E4)
	if c.View(board.E4).Border {
		t.Error("leaving should clear the border")
	}

	c.DragEnter(board.E5)
	if c.View(board.E5).Border {
		t.Error("inactive square must not get a border")
	}
}

func TestDragMoveClamps(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{Layout: Layout{SquareSize: 10}})
	pawn := c.Board().PieceAt(board.E2)
	if err := c.DragStart(board.E2); err != nil {
		t.Fatal(err)
	}

	c.DragMove(Point{X: 30, Y: 30})
	c.DragMove(Point{X: 200, Y: 50})
	if pos, _ := c.SpritePos(pawn); pos != (Point{X: 30, Y: 50}) {
		t.Errorf("sprite at %v, want x held at 30", pos)
	}
}

func TestDragEndWithoutDropReverts(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	b := c.Board()
	pawn := b.PieceAt(board.E2)
	start, _ := c.SpritePos(pawn)
	before := takeSnapshot(b)

	if err := c.DragStart(board.E2); err != nil {
		t.Fatal(err)
	}
	c.DragMove(c.Layout().Center(board.E4))
	c.DragEnter(board.E4)
	if err := c.DragEnd(); err != nil {
		t.Fatal(err)
	}

	assertUnchanged(t, b, before)
	if pos, _ := c.SpritePos(pawn); pos != start {
		t.Errorf("sprite at %v, want %v", pos, start)
	}
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if c.View(sq) != (SquareView{}) {
			t.Errorf("%s view not cleared: %+v", sq, c.View(sq))
		}
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestDropOffLegalSetDoesNotMutate(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	b := c.Board()
	before := takeSnapshot(b)

	for _, sq := range []board.Square{board.E5, board.D3, board.E2, board.NoSquare} {
		if err := c.DragStart(board.E2); err != nil {
			t.Fatal(err)
		}
		if err := c.Drop(sq); err != nil {
			t.Errorf("Drop(%s) = %v", sq, err)
		}
		assertUnchanged(t, b, before)
		if c.View(board.E2).Tint {
			t.Error("origin tint should revert")
		}
	}
}

func TestDropSimpleMove(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	b := c.Board()
	pawn := b.PieceAt(board.E2)

	var events []Event
	c.Subscribe(func(ev Event) { events = append(events, ev) })

	if err := c.DragStart(board.E2); err != nil {
		t.Fatal(err)
	}
	if err := c.Drop(board.E4); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	if b.PieceAt(board.E4) != pawn || b.PieceAt(board.E2) != nil {
		t.Error("pawn should stand on e4")
	}
	if !b.InSync() {
		t.Errorf("board %q out of sync with %q", b.Placement(), b.Position())
	}
	if pos, _ := c.SpritePos(pawn); pos != c.Layout().Center(board.E4) {
		t.Errorf("sprite at %v, want e4 center", pos)
	}
	if c.LastSAN() != "e4" {
		t.Errorf("LastSAN = %q", c.LastSAN())
	}
	if len(events) != 1 || events[0].Kind != EventMoved || events[0].SAN != "e4" || events[0].FEN != b.Position() {
		t.Errorf("events = %+v", events)
	}
	if !events[0].Committed() {
		t.Error("a move event is committed")
	}
}

func TestCaptureDestroysVictim(t *testing.T) {
	c := newTestController(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", Options{})
	b := c.Board()
	victim := b.PieceAt(board.D5)

	var captured bool
	c.Subscribe(func(ev Event) { captured = ev.Capture })

	c.DragStart(board.E4)
	if err := c.Drop(board.D5); err != nil {
		t.Fatal(err)
	}
	if !victim.Destroyed() || !captured {
		t.Error("d5 pawn should be captured")
	}
	if _, ok := c.SpritePos(victim); ok {
		t.Error("captured sprite should be gone")
	}
}

func TestWhiteKingsideCastle(t *testing.T) {
	c := newTestController(t, castleFEN, Options{})
	b := c.Board()
	king, rook := b.PieceAt(board.E1), b.PieceAt(board.H1)

	var kind EventKind
	c.Subscribe(func(ev Event) { kind = ev.Kind })

	c.DragStart(board.E1)
	if err := c.Drop(board.G1); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if b.PieceAt(board.G1) != king || b.PieceAt(board.F1) != rook {
		t.Errorf("g1=%v f1=%v", b.PieceAt(board.G1), b.PieceAt(board.F1))
	}
	if b.PieceAt(board.E1) != nil || b.PieceAt(board.H1) != nil {
		t.Error("e1 and h1 should be empty")
	}
	if got := board.PlacementField(b.Position()); got != "r3k2r/8/8/8/8/8/8/R4RK1" {
		t.Errorf("position placement = %q", got)
	}
	if pos, _ := c.SpritePos(rook); pos != c.Layout().Center(board.F1) {
		t.Error("rook sprite should follow to f1")
	}
	if kind != EventCastled {
		t.Errorf("event = %v, want castled", kind)
	}
}

func TestBlackQueensideCastle(t *testing.T) {
	c := newTestController(t, castleBlackFEN, Options{})
	b := c.Board()
	king, rook := b.PieceAt(board.E8), b.PieceAt(board.A8)

	c.DragStart(board.E8)
	if err := c.Drop(board.C8); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if b.PieceAt(board.C8) != king || b.PieceAt(board.D8) != rook {
		t.Errorf("c8=%v d8=%v", b.PieceAt(board.C8), b.PieceAt(board.D8))
	}
	if b.PieceAt(board.E8) != nil || b.PieceAt(board.A8) != nil {
		t.Error("e8 and a8 should be empty")
	}
	if got := board.PlacementField(b.Position()); got != "2kr3r/8/8/8/8/8/8/R3K2R" {
		t.Errorf("position placement = %q", got)
	}
}

func TestEnPassantRemovesTakenPawn(t *testing.T) {
	c := newTestController(t, enPassantFEN, Options{})
	b := c.Board()
	taken := b.PieceAt(board.D5)

	c.DragStart(board.E5)
	if err := c.Drop(board.D6); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if !taken.Destroyed() || b.PieceAt(board.D5) != nil {
		t.Error("d5 pawn should be taken")
	}
	if !b.InSync() {
		t.Errorf("board %q out of sync with %q", b.Placement(), b.Position())
	}
}

func TestPromotionSuspends(t *testing.T) {
	var presented []PromotionRequest
	c := newTestController(t, promotionFEN, Options{
		Presenter: PresenterFunc(func(req PromotionRequest) { presented = append(presented, req) }),
	})
	b := c.Board()
	pawn := b.PieceAt(board.E7)
	start, _ := c.SpritePos(pawn)
	before := takeSnapshot(b)

	c.DragStart(board.E7)
	c.DragMove(c.Layout().Center(board.E8))
	if err := c.Drop(board.E8); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	if c.State() != AwaitingPromotion {
		t.Fatalf("state = %v, want awaiting-promotion", c.State())
	}
	assertUnchanged(t, b, before)
	if pos, _ := c.SpritePos(pawn); pos != start {
		t.Errorf("pawn sprite at %v, want drag start %v", pos, start)
	}
	if len(presented) != 1 {
		t.Fatalf("presenter called %d times", len(presented))
	}
	req := presented[0]
	if req.From != board.E7 || req.To != board.E8 || req.Color != board.White || len(req.Options) != 4 {
		t.Errorf("request = %+v", req)
	}
	if req.Anchor != c.Layout().SquareRect(board.E8) {
		t.Errorf("anchor = %v", req.Anchor)
	}
	if got, ok := c.Pending(); !ok || got.To != board.E8 {
		t.Errorf("Pending() = %+v, %v", got, ok)
	}

	// Gestures are refused while suspended.
	checks := map[string]error{
		"DragStart": c.DragStart(board.E1),
		"DragMove":  c.DragMove(Point{}),
		"DragEnter": c.DragEnter(board.E8),
		"DragLeave": c.DragLeave(board.E8),
		"DragEnd":   c.DragEnd(),
		"Drop":      c.Drop(board.E8),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrSuspended) {
			t.Errorf("%s while suspended = %v, want ErrSuspended", name, err)
		}
	}
	assertUnchanged(t, b, before)
}

func suspendPromotion(t *testing.T, fen string, to board.Square) (*Controller, PromotionRequest) {
	t.Helper()
	c := newTestController(t, fen, Options{})
	if err := c.DragStart(board.E7); err != nil {
		t.Fatal(err)
	}
	if err := c.Drop(to); err != nil {
		t.Fatal(err)
	}
	req, ok := c.Pending()
	if !ok {
		t.Fatal("no promotion pending")
	}
	return c, req
}

func TestResumePromotionQueen(t *testing.T) {
	c, req := suspendPromotion(t, promotionFEN, board.E8)
	b := c.Board()
	pawn := b.PieceAt(board.E7)

	var ev Event
	c.Subscribe(func(e Event) { ev = e })

	if err := c.ResumePromotion(req.Choose(board.Queen)); err != nil {
		t.Fatalf("ResumePromotion: %v", err)
	}
	queen := b.PieceAt(board.E8)
	if queen == nil || queen.Kind != board.Queen || queen.Color != board.White {
		t.Fatalf("e8 holds %v, want a white queen", queen)
	}
	if b.PieceAt(board.E7) != nil {
		t.Error("e7 should be empty")
	}
	if !pawn.Destroyed() || b.Find(pawn) != board.NoSquare {
		t.Error("old pawn should be destroyed and gone from the board")
	}
	if _, ok := c.SpritePos(pawn); ok {
		t.Error("old pawn sprite should be gone")
	}
	if pos, ok := c.SpritePos(queen); !ok || pos != c.Layout().Center(board.E8) {
		t.Errorf("queen sprite at %v", pos)
	}
	if got := board.PlacementField(b.Position()); got != "4Q3/8/8/8/8/8/k7/4K3" {
		t.Errorf("position placement = %q", got)
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if ev.Kind != EventPromoted || ev.Promotion != board.Queen || ev.SAN != c.LastSAN() {
		t.Errorf("event = %+v", ev)
	}
}

func TestResumePromotionKnightCapture(t *testing.T) {
	c, req := suspendPromotion(t, capturePromoFEN, board.D8)
	b := c.Board()
	rook := b.PieceAt(board.D8)

	if err := c.ResumePromotion(req.Choose(board.Knight)); err != nil {
		t.Fatalf("ResumePromotion: %v", err)
	}
	if p := b.PieceAt(board.D8); p == nil || p.Kind != board.Knight {
		t.Errorf("d8 holds %v, want a knight", p)
	}
	if !rook.Destroyed() {
		t.Error("captured rook should be destroyed")
	}
	if c.LastSAN() != "exd8=N" {
		t.Errorf("LastSAN = %q, want exd8=N", c.LastSAN())
	}
}

func TestResumePromotionCancelled(t *testing.T) {
	c := newTestController(t, promotionFEN, Options{})
	b := c.Board()
	before := takeSnapshot(b)

	c.DragStart(board.E7)
	c.Drop(board.E8)
	req, _ := c.Pending()

	var kind EventKind
	c.Subscribe(func(ev Event) { kind = ev.Kind })

	if err := c.ResumePromotion(req.Cancel()); err != nil {
		t.Fatalf("ResumePromotion: %v", err)
	}
	assertUnchanged(t, b, before)
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if kind != EventPromotionCancelled {
		t.Errorf("event = %v", kind)
	}

	// The same pawn can be dragged again.
	if err := c.DragStart(board.E7); err != nil {
		t.Errorf("DragStart after cancel: %v", err)
	}
}

func TestResumePromotionErrors(t *testing.T) {
	c := newTestController(t, promotionFEN, Options{})
	if err := c.ResumePromotion(PromotionResult{Cancelled: true}); !errors.Is(err, ErrNoPromotion) {
		t.Errorf("resume with nothing pending = %v, want ErrNoPromotion", err)
	}

	c.DragStart(board.E7)
	c.Drop(board.E8)
	req, _ := c.Pending()

	other := req
	other.To = board.D8
	if err := c.ResumePromotion(other.Choose(board.Queen)); !errors.Is(err, ErrNoPromotion) {
		t.Errorf("mismatched result = %v, want ErrNoPromotion", err)
	}
	if err := c.ResumePromotion(req.Choose(board.King)); !errors.Is(err, ErrInvalidPromotion) {
		t.Errorf("king promotion = %v, want ErrInvalidPromotion", err)
	}
	if c.State() != AwaitingPromotion {
		t.Error("bad results must leave the promotion pending")
	}
}

func TestResetCancelsPromotion(t *testing.T) {
	c := newTestController(t, promotionFEN, Options{})
	c.DragStart(board.E7)
	c.Drop(board.E8)

	e, err := rules.New(rules.BackendNotnil, board.StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	c.Reset(e)

	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if _, ok := c.Pending(); ok {
		t.Error("promotion should be dropped")
	}
	if len(c.Board().Pieces()) != 32 || !c.Board().InSync() {
		t.Error("board should hold the new game")
	}
	if err := c.DragStart(board.E2); err != nil {
		t.Errorf("DragStart after reset: %v", err)
	}
}

func TestEngineRejectionRevertsSprite(t *testing.T) {
	b := board.NewFromFEN(board.StartFEN)
	stub := &stubEngine{
		moves: map[board.Square][]rules.Candidate{
			board.E2: {{From: board.E2, To: board.E4, Kind: board.Pawn}},
		},
		sans:   map[board.Square][]string{board.E2: {"e4"}},
		fen:    board.StartFEN,
		reject: true,
	}
	c := NewController(b, stub, Options{})
	pawn := b.PieceAt(board.E2)
	start, _ := c.SpritePos(pawn)
	before := takeSnapshot(b)

	c.DragStart(board.E2)
	c.DragMove(c.Layout().Center(board.E4))
	if err := c.Drop(board.E4); !errors.Is(err, rules.ErrEngineRejected) {
		t.Fatalf("Drop = %v, want ErrEngineRejected", err)
	}
	assertUnchanged(t, b, before)
	if pos, _ := c.SpritePos(pawn); pos != start {
		t.Errorf("sprite at %v, want %v", pos, start)
	}
}

func TestOutOfSyncResyncs(t *testing.T) {
	b := board.NewFromFEN(board.StartFEN)
	stub := &stubEngine{
		moves: map[board.Square][]rules.Candidate{
			board.E2: {{From: board.E2, To: board.E4, Kind: board.Pawn}},
		},
		sans: map[board.Square][]string{board.E2: {"e4"}},
		fen:  board.StartFEN,
		// The engine claims e3 was played.
		after: "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
	}
	c := NewController(b, stub, Options{})

	var kind EventKind
	c.Subscribe(func(ev Event) { kind = ev.Kind })

	c.DragStart(board.E2)
	if err := c.Drop(board.E4); !errors.Is(err, board.ErrOutOfSync) {
		t.Fatalf("Drop = %v, want ErrOutOfSync", err)
	}
	if !b.InSync() || b.PieceAt(board.E3) == nil {
		t.Error("board should follow the engine")
	}
	p := b.PieceAt(board.E3)
	if pos, ok := c.SpritePos(p); !ok || pos != c.Layout().Center(board.E3) {
		t.Errorf("resynced sprite at %v", pos)
	}
	if kind != EventResynced {
		t.Errorf("event = %v, want resynced", kind)
	}
}

func TestPositionIdempotent(t *testing.T) {
	c := newTestController(t, board.StartFEN, Options{})
	if c.Position() != c.Position() {
		t.Error("Position() changed between calls")
	}
}
