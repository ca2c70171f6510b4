package scene

import "github.com/hailam/chessdrop/internal/board"

// EventKind identifies what happened.
type EventKind uint8

const (
	EventMoved EventKind = iota
	EventCastled
	EventPromoted
	EventPromotionRequested
	EventPromotionCancelled
	EventRejected
	EventResynced
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventCastled:
		return "castled"
	case EventPromoted:
		return "promoted"
	case EventPromotionRequested:
		return "promotion-requested"
	case EventPromotionCancelled:
		return "promotion-cancelled"
	case EventRejected:
		return "rejected"
	case EventResynced:
		return "resynced"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes a completed controller transition. FEN is the position
// after it.
type Event struct {
	Kind      EventKind
	SAN       string
	From, To  board.Square
	Color     board.Color
	Piece     board.Kind
	Promotion board.Kind
	Capture   bool
	FEN       string
	Err       error
}

// Committed reports whether the event changed the position.
func (e Event) Committed() bool {
	switch e.Kind {
	case EventMoved, EventCastled, EventPromoted, EventResynced, EventReset:
		return true
	}
	return false
}
