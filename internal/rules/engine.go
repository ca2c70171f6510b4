// Package rules adapts chess rules engines to the narrow interface the board
// controller consults: legal candidates per square, their SAN spelling,
// applying a SAN move and reading back the position.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/chessdrop/internal/board"
)

var (
	// ErrEngineRejected is returned when Apply is handed text the engine does
	// not recognize as a legal move.
	ErrEngineRejected = errors.New("engine rejected move")

	// ErrInvalidFEN is returned by constructors for unparsable positions.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrUnknownBackend is returned by New for unknown backend names.
	ErrUnknownBackend = errors.New("unknown rules backend")
)

// Special tags moves with side effects beyond origin and destination.
type Special uint8

const (
	SpecialNone Special = iota
	CastleKingside
	CastleQueenside
	EnPassant
)

// String returns the tag name.
func (s Special) String() string {
	switch s {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	case EnPassant:
		return "e.p."
	default:
		return "none"
	}
}

// IsCastle reports whether the tag is either castling variant.
func (s Special) IsCastle() bool {
	return s == CastleKingside || s == CastleQueenside
}

// Candidate is one legal move in structured ("verbose") form. Squares use
// the board grid numbering.
type Candidate struct {
	From      board.Square
	To        board.Square
	Kind      board.Kind // moving piece
	Promotion board.Kind // NoKind unless a promotion
	Capture   bool
	Special   Special
}

// String returns the move in UCI form (e.g. "e7e8q").
func (c Candidate) String() string {
	s := c.From.String() + c.To.String()
	if c.Promotion != board.NoKind {
		s += strings.ToLower(string(c.Promotion.Letter()))
	}
	return s
}

// Engine is the rules engine as seen by the board controller. It is trusted
// to be correct; the controller never invents moves.
type Engine interface {
	// Moves returns the structured legal moves of the piece on sq.
	Moves(sq board.Square) []Candidate
	// Notations returns the SAN text of the legal moves of the piece on sq.
	Notations(sq board.Square) []string
	// Apply plays a SAN move.
	Apply(san string) error
	// FEN returns the current position.
	FEN() string
}

// Backend names accepted by New.
const (
	BackendNotnil      = "notnil"
	BackendDragontooth = "dragontooth"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendNotnil, BackendDragontooth}

// New builds the named backend at the given position.
func New(backend, fen string) (Engine, error) {
	switch backend {
	case BackendNotnil, "":
		return NewNotnil(fen)
	case BackendDragontooth:
		return NewDragontooth(fen)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Targets returns the set of destinations reachable from sq.
func Targets(e Engine, sq board.Square) map[board.Square]bool {
	targets := make(map[board.Square]bool)
	for _, c := range e.Moves(sq) {
		targets[c.To] = true
	}
	return targets
}

// StripAnnotations removes check, mate and evaluation marks from SAN text.
func StripAnnotations(san string) string {
	return strings.TrimRight(san, "+#!?")
}

// padFEN fills in missing clock fields. Both libraries insist on six fields
// while positions in the wild often carry four.
func padFEN(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0")
	}
	if len(fields) == 5 {
		fields = append(fields, "1")
	}
	return strings.Join(fields, " ")
}

// validPlacement does the cheap structural check both adapters need before
// handing a FEN to a library that may panic on garbage.
func validPlacement(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	kings := [2]int{}
	for i, rank := range ranks {
		files := 0
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '1' && c <= '8' {
				files += int(c - '0')
				continue
			}
			color, kind, ok := board.PieceFromSymbol(c)
			if !ok {
				return fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, c)
			}
			if kind == board.King {
				kings[color]++
			}
			files++
		}
		if files != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-i, files)
		}
	}
	if kings[board.White] != 1 || kings[board.Black] != 1 {
		return fmt.Errorf("%w: need one king per side", ErrInvalidFEN)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}
	return nil
}
