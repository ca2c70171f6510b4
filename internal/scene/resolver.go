package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
)

var (
	// ErrIllegalDestination is returned when no legal move of the dragged
	// piece ends on the drop square.
	ErrIllegalDestination = errors.New("no legal move to square")

	// ErrAmbiguousMove is returned when the engine's candidates cannot be
	// narrowed to one move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrInvalidPromotion is returned for promotion kinds other than queen,
	// rook, bishop or knight.
	ErrInvalidPromotion = errors.New("invalid promotion kind")
)

// PlanKind classifies a resolved drop.
type PlanKind uint8

const (
	PlanSimple PlanKind = iota
	PlanCastle
	PlanEnPassant
	PlanPromotion
)

func (k PlanKind) String() string {
	switch k {
	case PlanCastle:
		return "castle"
	case PlanEnPassant:
		return "en-passant"
	case PlanPromotion:
		return "promotion"
	default:
		return "simple"
	}
}

// Plan is what a drop resolves to. Promotion plans carry no SAN; the
// submission text is only known once a kind is chosen.
type Plan struct {
	Kind     PlanKind
	SAN      string
	From, To board.Square
	Piece    *board.Piece
	Capture  bool

	// Castling only.
	RookFrom, RookTo board.Square

	// En passant only: the square of the pawn taken.
	Taken board.Square

	// Promotion only.
	Options []board.Kind
}

// Resolver turns drops into engine moves and applies them to the board.
type Resolver struct {
	engine rules.Engine
}

// NewResolver creates a resolver consulting e.
func NewResolver(e rules.Engine) *Resolver {
	return &Resolver{engine: e}
}

// Resolve decides what dropping the piece on from onto to means. Nothing is
// mutated.
func (r *Resolver) Resolve(b *board.Board, from, to board.Square) (Plan, error) {
	p := b.PieceAt(from)
	if p == nil {
		return Plan{}, fmt.Errorf("resolve %s-%s: %w", from, to, board.ErrEmptySquare)
	}

	var cands []rules.Candidate
	for _, c := range r.engine.Moves(from) {
		if c.To == to {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return Plan{}, fmt.Errorf("%w: %s-%s", ErrIllegalDestination, from, to)
	}

	plan := Plan{From: from, To: to, Piece: p, Capture: cands[0].Capture}

	// Promotions come as one candidate per kind.
	if cands[0].Promotion != board.NoKind {
		plan.Kind = PlanPromotion
		for _, c := range cands {
			if c.Promotion == board.NoKind {
				return Plan{}, fmt.Errorf("%w: %s-%s mixes promotions and plain moves", ErrAmbiguousMove, from, to)
			}
			plan.Options = append(plan.Options, c.Promotion)
		}
		return plan, nil
	}
	if len(cands) > 1 {
		return Plan{}, fmt.Errorf("%w: %d candidates for %s-%s", ErrAmbiguousMove, len(cands), from, to)
	}

	c := cands[0]
	switch {
	case c.Special.IsCastle():
		return r.castle(plan, c)
	case c.Special == rules.EnPassant:
		plan.Kind = PlanEnPassant
		plan.Taken = board.NewSquare(to.File(), from.Rank())
	}

	san, err := r.notation(from, to)
	if err != nil {
		return Plan{}, err
	}
	plan.SAN = san
	return plan, nil
}

// castle fills in the rook relocation. Only the standard king targets are
// understood; the rook sits beside the corner on the back rank.
func (r *Resolver) castle(plan Plan, c rules.Candidate) (Plan, error) {
	if plan.Piece.Kind != board.King {
		return Plan{}, fmt.Errorf("%w: castle by %v", ErrAmbiguousMove, plan.Piece)
	}
	to := plan.To
	switch {
	case c.Special == rules.CastleKingside && (to == board.G1 || to == board.G8):
		plan.RookFrom, plan.RookTo = to+1, to-1
	case c.Special == rules.CastleQueenside && (to == board.C1 || to == board.C8):
		plan.RookFrom, plan.RookTo = to-2, to+1
	default:
		return Plan{}, fmt.Errorf("%w: %v to %s", ErrAmbiguousMove, c.Special, to)
	}
	plan.Kind = PlanCastle
	plan.SAN = c.Special.String()

	// Prefer the engine's own spelling.
	for _, san := range r.engine.Notations(plan.From) {
		if rules.StripAnnotations(san) == c.Special.String() {
			plan.SAN = san
			break
		}
	}
	return plan, nil
}

// notation picks the single SAN text of a move from from naming to.
func (r *Resolver) notation(from, to board.Square) (string, error) {
	var matches []string
	for _, san := range r.engine.Notations(from) {
		if strings.Contains(san, to.String()) {
			matches = append(matches, san)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: no notation names %s", ErrAmbiguousMove, to)
	default:
		return "", fmt.Errorf("%w: %v all name %s", ErrAmbiguousMove, matches, to)
	}
}

// Commit submits a non-promotion plan to the engine and applies it to the
// board. The board is untouched when the engine refuses the move.
func (r *Resolver) Commit(b *board.Board, plan Plan) error {
	if plan.Kind == PlanPromotion {
		return fmt.Errorf("commit %s-%s: promotion needs a kind", plan.From, plan.To)
	}

	tx := b.Begin().Move(plan.From, plan.To)
	switch plan.Kind {
	case PlanCastle:
		tx.Move(plan.RookFrom, plan.RookTo)
	case PlanEnPassant:
		tx.Capture(plan.Taken)
	}

	if err := r.engine.Apply(plan.SAN); err != nil {
		tx.Discard()
		return err
	}
	return tx.Commit(r.engine.FEN())
}

// Promote finishes a promotion: the pawn on from is destroyed together with
// any piece on to, and a new piece of kind appears on to. It returns the new
// piece and the SAN submitted.
func (r *Resolver) Promote(b *board.Board, from, to board.Square, kind board.Kind) (*board.Piece, string, error) {
	if !isPromotionKind(kind) {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPromotion, kind)
	}
	pawn := b.PieceAt(from)
	if pawn == nil {
		return nil, "", fmt.Errorf("promote %s-%s: %w", from, to, board.ErrEmptySquare)
	}

	// Capturing promotions spell the origin file too ("dxe8=Q"), so the
	// longest text containing the target wins.
	target := fmt.Sprintf("%s=%c", to, kind.Letter())
	san := ""
	for _, s := range r.engine.Notations(from) {
		if strings.Contains(s, target) && len(s) > len(san) {
			san = s
		}
	}
	if san == "" {
		return nil, "", fmt.Errorf("%w: %s", ErrIllegalDestination, target)
	}

	if err := r.engine.Apply(san); err != nil {
		return nil, "", err
	}

	promoted := board.NewPiece(pawn.Color, kind, to)
	err := b.Begin().Capture(from).Place(to, promoted).Commit(r.engine.FEN())
	if err != nil {
		return nil, san, err
	}
	return promoted, san, nil
}

func isPromotionKind(k board.Kind) bool {
	for _, p := range board.PromotionKinds {
		if k == p {
			return true
		}
	}
	return false
}
