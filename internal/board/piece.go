package board

import "github.com/google/uuid"

// Color represents the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// BackRank returns the rank the color's king starts on.
func (c Color) BackRank() int {
	if c == White {
		return 1
	}
	return 8
}

// Kind is the type of a chess piece.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists the six piece kinds.
var Kinds = [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionKinds lists the kinds a pawn may become, strongest first.
var PromotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the uppercase SAN letter (P for pawns, 0 for NoKind).
func (k Kind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return 0
	}
}

// KindFromLetter converts a SAN/FEN letter of either case to a Kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoKind
	}
}

// Piece is a single piece on the board. Pieces are compared by pointer or ID;
// a promoted pawn is destroyed and replaced by a new Piece.
type Piece struct {
	ID     uuid.UUID
	Color  Color
	Kind   Kind
	Square Square

	destroyed bool
}

// NewPiece creates a piece standing on sq.
func NewPiece(c Color, k Kind, sq Square) *Piece {
	return &Piece{
		ID:     uuid.New(),
		Color:  c,
		Kind:   k,
		Square: sq,
	}
}

// Symbol returns the FEN character (uppercase for white).
func (p *Piece) Symbol() byte {
	l := p.Kind.Letter()
	if l == 0 {
		return ' '
	}
	if p.Color == Black {
		return l + ('a' - 'A')
	}
	return l
}

// Destroyed reports whether the piece was captured or promoted away.
func (p *Piece) Destroyed() bool {
	return p.destroyed
}

// destroy marks the piece dead and detaches it from its square.
func (p *Piece) destroy() {
	p.destroyed = true
	p.Square = NoSquare
}

// String returns e.g. "White Knight@g1".
func (p *Piece) String() string {
	return p.Color.String() + " " + p.Kind.String() + "@" + p.Square.String()
}

// PieceFromSymbol decodes a FEN character.
func PieceFromSymbol(c byte) (Color, Kind, bool) {
	k := KindFromLetter(c)
	if k == NoKind {
		return White, NoKind, false
	}
	if c >= 'a' && c <= 'z' {
		return Black, k, true
	}
	return White, k, true
}
