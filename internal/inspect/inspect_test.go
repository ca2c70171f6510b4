package inspect

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
	"github.com/hailam/chessdrop/internal/scene"
)

func newController(t *testing.T, fen string) *scene.Controller {
	t.Helper()
	e, err := rules.New(rules.BackendNotnil, fen)
	if err != nil {
		t.Fatal(err)
	}
	return scene.NewController(board.NewFromFEN(e.FEN()), e, scene.Options{Logger: zaptest.NewLogger(t)})
}

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub(zaptest.NewLogger(t))
	updates, cancel := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d", h.Subscribers())
	}

	h.Publish(Snapshot{FEN: "a"})
	h.Publish(Snapshot{FEN: "b"})

	// The slow subscriber only sees the newest snapshot.
	got := <-updates
	if got.FEN != "b" || got.Seq != 2 {
		t.Errorf("received %+v, want FEN b seq 2", got)
	}
	if h.Latest().FEN != "b" {
		t.Errorf("Latest() = %+v", h.Latest())
	}

	cancel()
	cancel()
	if _, ok := <-updates; ok {
		t.Error("channel should be closed after cancel")
	}
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after cancel", h.Subscribers())
	}
	h.Publish(Snapshot{FEN: "c"})
}

func TestObserveController(t *testing.T) {
	c := newController(t, board.StartFEN)
	h := NewHub(nil)
	h.Observe(c)

	first := h.Latest()
	if first.FEN != c.Position() || len(first.Pieces) != 32 {
		t.Fatalf("initial snapshot = %+v", first)
	}

	if err := c.DragStart(board.G1); err != nil {
		t.Fatal(err)
	}
	if err := c.Drop(board.F3); err != nil {
		t.Fatal(err)
	}
	snap := h.Latest()
	if snap.LastSAN != "Nf3" || snap.FEN != c.Position() || snap.Seq <= first.Seq {
		t.Errorf("snapshot after Nf3 = %+v", snap)
	}
	found := false
	for _, p := range snap.Pieces {
		if p.Square == "f3" && p.Kind == "Knight" && p.Color == "White" {
			found = true
		}
	}
	if !found {
		t.Error("knight on f3 missing from snapshot")
	}
}

func TestObservePromotionPending(t *testing.T) {
	c := newController(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	h := NewHub(nil)
	h.Observe(c)

	c.DragStart(board.E7)
	c.Drop(board.E8)
	if !h.Latest().Awaiting {
		t.Error("snapshot should show the pending promotion")
	}
}

func TestPositionRoute(t *testing.T) {
	h := NewHub(nil)
	h.Observe(newController(t, board.StartFEN))
	s := NewServer(h, zaptest.NewLogger(t))

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/position", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.FEN != board.StartFEN || len(snap.Pieces) != 32 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestBoardSVGRoute(t *testing.T) {
	h := NewHub(nil)
	h.Observe(newController(t, board.StartFEN))
	s := NewServer(h, nil)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/board.svg?size=480&flip=true", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `width="480"`) {
		t.Error("size parameter ignored")
	}

	resp, err = s.App().Test(httptest.NewRequest("GET", "/board.svg?size=0", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("size=0 status = %d, want 400", resp.StatusCode)
	}
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	s := NewServer(NewHub(nil), nil)
	resp, err := s.App().Test(httptest.NewRequest("GET", "/ws", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", resp.StatusCode)
	}
}
