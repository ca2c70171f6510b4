package rules

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/chessdrop/internal/board"
)

// Dragontooth adapts github.com/dylhunn/dragontoothmg. The library only
// speaks UCI, so SAN is produced here.
type Dragontooth struct {
	b dragontoothmg.Board
}

// NewDragontooth starts a game at fen.
func NewDragontooth(fen string) (*Dragontooth, error) {
	if err := validPlacement(fen); err != nil {
		return nil, err
	}
	return &Dragontooth{b: dragontoothmg.ParseFen(padFEN(fen))}, nil
}

// Moves returns the structured legal moves of the piece on sq.
func (d *Dragontooth) Moves(sq board.Square) []Candidate {
	from := uint8(sq.Mirror())
	var out []Candidate
	for _, m := range d.b.GenerateLegalMoves() {
		if m.From() != from {
			continue
		}
		out = append(out, d.candidate(m))
	}
	return out
}

// Notations returns the SAN text of the legal moves of the piece on sq.
func (d *Dragontooth) Notations(sq board.Square) []string {
	from := uint8(sq.Mirror())
	legal := d.b.GenerateLegalMoves()
	var out []string
	for _, m := range legal {
		if m.From() != from {
			continue
		}
		out = append(out, d.toSAN(legal, m))
	}
	return out
}

// Apply plays a SAN move. Check and mate marks are optional.
func (d *Dragontooth) Apply(san string) error {
	want := StripAnnotations(strings.TrimSpace(san))
	legal := d.b.GenerateLegalMoves()
	for _, m := range legal {
		if StripAnnotations(d.toSAN(legal, m)) == want {
			d.b.Apply(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrEngineRejected, san)
}

// FEN returns the current position.
func (d *Dragontooth) FEN() string {
	return d.b.ToFen()
}

func (d *Dragontooth) sides() (us, them *dragontoothmg.Bitboards) {
	if d.b.Wtomove {
		return &d.b.White, &d.b.Black
	}
	return &d.b.Black, &d.b.White
}

func (d *Dragontooth) candidate(m dragontoothmg.Move) Candidate {
	us, them := d.sides()
	from, to := m.From(), m.To()
	c := Candidate{
		From:      board.Square(from).Mirror(),
		To:        board.Square(to).Mirror(),
		Kind:      kindOn(us, from),
		Promotion: fromDragontoothKind(m.Promote()),
		Capture:   them.All&(1<<to) != 0,
	}
	switch {
	case c.Kind == board.King && to == from+2:
		c.Special = CastleKingside
	case c.Kind == board.King && from == to+2:
		c.Special = CastleQueenside
	case c.Kind == board.Pawn && !c.Capture && from%8 != to%8:
		c.Special = EnPassant
		c.Capture = true
	}
	return c
}

// toSAN spells m in Standard Algebraic Notation. legal must be the legal
// move list of the current position; it is used for disambiguation.
func (d *Dragontooth) toSAN(legal []dragontoothmg.Move, m dragontoothmg.Move) string {
	c := d.candidate(m)

	var sb strings.Builder
	switch c.Special {
	case CastleKingside:
		sb.WriteString("O-O")
	case CastleQueenside:
		sb.WriteString("O-O-O")
	default:
		if c.Kind != board.Pawn {
			sb.WriteByte(c.Kind.Letter())
			sb.WriteString(d.disambiguation(legal, m, c.Kind))
		}
		if c.Capture {
			if c.Kind == board.Pawn {
				sb.WriteByte(byte('a' + c.From.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(c.To.String())
		if c.Promotion != board.NoKind {
			sb.WriteByte('=')
			sb.WriteByte(c.Promotion.Letter())
		}
	}

	// Play the move to see whether it checks or mates.
	unapply := d.b.Apply(m)
	if d.b.OurKingInCheck() {
		if len(d.b.GenerateLegalMoves()) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	unapply()

	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other moves of the same kind to the same destination.
func (d *Dragontooth) disambiguation(legal []dragontoothmg.Move, m dragontoothmg.Move, kind board.Kind) string {
	us, _ := d.sides()
	from, to := m.From(), m.To()

	var others []uint8
	for _, o := range legal {
		if o.To() != to || o.From() == from {
			continue
		}
		if kindOn(us, o.From()) == kind {
			others = append(others, o.From())
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		if sq%8 == from%8 {
			sameFile = true
		}
		if sq/8 == from/8 {
			sameRank = true
		}
	}

	origin := board.Square(from).Mirror()
	if !sameFile {
		return string(rune('a' + origin.File()))
	}
	if !sameRank {
		return string(rune('0' + origin.Rank()))
	}
	return origin.String()
}

func kindOn(bb *dragontoothmg.Bitboards, sq uint8) board.Kind {
	mask := uint64(1) << sq
	switch {
	case bb.Pawns&mask != 0:
		return board.Pawn
	case bb.Knights&mask != 0:
		return board.Knight
	case bb.Bishops&mask != 0:
		return board.Bishop
	case bb.Rooks&mask != 0:
		return board.Rook
	case bb.Queens&mask != 0:
		return board.Queen
	case bb.Kings&mask != 0:
		return board.King
	default:
		return board.NoKind
	}
}

func fromDragontoothKind(p dragontoothmg.Piece) board.Kind {
	switch p {
	case dragontoothmg.Knight:
		return board.Knight
	case dragontoothmg.Bishop:
		return board.Bishop
	case dragontoothmg.Rook:
		return board.Rook
	case dragontoothmg.Queen:
		return board.Queen
	default:
		return board.NoKind
	}
}
