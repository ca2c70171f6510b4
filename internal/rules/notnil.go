package rules

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/hailam/chessdrop/internal/board"
)

// Notnil adapts github.com/notnil/chess.
type Notnil struct {
	game *chess.Game
}

// NewNotnil starts a game at fen.
func NewNotnil(fen string) (*Notnil, error) {
	if err := validPlacement(fen); err != nil {
		return nil, err
	}
	opt, err := chess.FEN(padFEN(fen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return &Notnil{game: chess.NewGame(opt)}, nil
}

// Moves returns the structured legal moves of the piece on sq.
func (n *Notnil) Moves(sq board.Square) []Candidate {
	from := toNotnilSquare(sq)
	pos := n.game.Position()

	var out []Candidate
	for _, m := range n.game.ValidMoves() {
		if m.S1() != from {
			continue
		}
		out = append(out, n.candidate(pos, m))
	}
	return out
}

// Notations returns the SAN text of the legal moves of the piece on sq.
func (n *Notnil) Notations(sq board.Square) []string {
	from := toNotnilSquare(sq)
	pos := n.game.Position()

	var out []string
	for _, m := range n.game.ValidMoves() {
		if m.S1() != from {
			continue
		}
		out = append(out, chess.AlgebraicNotation{}.Encode(pos, m))
	}
	return out
}

// Apply plays a SAN move.
func (n *Notnil) Apply(san string) error {
	if err := n.game.MoveStr(san); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrEngineRejected, san, err)
	}
	return nil
}

// FEN returns the current position.
func (n *Notnil) FEN() string {
	return n.game.FEN()
}

func (n *Notnil) candidate(pos *chess.Position, m *chess.Move) Candidate {
	c := Candidate{
		From:      fromNotnilSquare(m.S1()),
		To:        fromNotnilSquare(m.S2()),
		Kind:      fromNotnilKind(pos.Board().Piece(m.S1()).Type()),
		Promotion: fromNotnilKind(m.Promo()),
		Capture:   m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant),
	}
	switch {
	case m.HasTag(chess.KingSideCastle):
		c.Special = CastleKingside
	case m.HasTag(chess.QueenSideCastle):
		c.Special = CastleQueenside
	case m.HasTag(chess.EnPassant):
		c.Special = EnPassant
	}
	return c
}

// notnil numbers a1=0; the board grid numbers a8=0.
func toNotnilSquare(sq board.Square) chess.Square {
	return chess.Square(sq.Mirror())
}

func fromNotnilSquare(sq chess.Square) board.Square {
	return board.Square(sq).Mirror()
}

func fromNotnilKind(pt chess.PieceType) board.Kind {
	switch pt {
	case chess.Pawn:
		return board.Pawn
	case chess.Knight:
		return board.Knight
	case chess.Bishop:
		return board.Bishop
	case chess.Rook:
		return board.Rook
	case chess.Queen:
		return board.Queen
	case chess.King:
		return board.King
	default:
		return board.NoKind
	}
}
