package board

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfSync means a committed FEN did not reproduce the grid. The grid
	// has been rebuilt from the FEN when this is returned.
	ErrOutOfSync = errors.New("board out of sync with position")

	// ErrEmptySquare is returned when a transaction moves a piece that is not there.
	ErrEmptySquare = errors.New("no piece on square")

	// ErrTxDone is returned when a transaction is reused.
	ErrTxDone = errors.New("transaction already finished")
)

// Board owns the 64 squares and the authoritative position string.
// The grid is a projection of the FEN; Commit keeps the two paired.
type Board struct {
	squares [NumSquares]*Piece
	fen     string
}

// New returns an empty board with no position.
func New() *Board {
	return &Board{}
}

// NewFromFEN returns a board loaded with the placement of fen.
func NewFromFEN(fen string) *Board {
	b := New()
	b.Load(fen)
	b.SetPosition(fen)
	return b
}

// PieceAt returns the occupant of sq, or nil.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	return b.squares[sq]
}

// PlacePiece puts p on sq. Any previous occupant is overwritten without being
// destroyed; callers capture it first.
func (b *Board) PlacePiece(sq Square, p *Piece) {
	if !sq.IsValid() || p == nil {
		return
	}
	b.squares[sq] = p
	p.Square = sq
}

// RemovePiece clears sq and returns what stood there. The piece is not
// destroyed so it can be placed elsewhere.
func (b *Board) RemovePiece(sq Square) *Piece {
	if !sq.IsValid() {
		return nil
	}
	p := b.squares[sq]
	b.squares[sq] = nil
	return p
}

// Position returns the authoritative FEN.
func (b *Board) Position() string {
	return b.fen
}

// SetPosition replaces the authoritative FEN without touching the grid.
func (b *Board) SetPosition(fen string) {
	b.fen = fen
}

// Pieces returns the live pieces in grid order.
func (b *Board) Pieces() []*Piece {
	pieces := make([]*Piece, 0, 32)
	for _, p := range b.squares {
		if p != nil {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Find returns the square holding the piece with the given pointer, or NoSquare.
func (b *Board) Find(p *Piece) Square {
	for sq, q := range b.squares {
		if q != nil && q == p {
			return Square(sq)
		}
	}
	return NoSquare
}

// Clear destroys every piece on the board.
func (b *Board) Clear() {
	for sq, p := range b.squares {
		if p != nil {
			p.destroy()
			b.squares[sq] = nil
		}
	}
}

// InSync reports whether the FEN placement matches the grid.
func (b *Board) InSync() bool {
	return PlacementField(b.fen) == b.Placement()
}

// Begin starts a transaction. Operations are staged and applied together
// with the new FEN on Commit.
func (b *Board) Begin() *Tx {
	return &Tx{b: b}
}

type opKind uint8

const (
	opMove opKind = iota
	opCapture
	opPlace
)

type op struct {
	kind  opKind
	from  Square
	to    Square
	piece *Piece
}

// Tx is a staged set of occupancy changes for one logical move.
type Tx struct {
	b    *Board
	ops  []op
	done bool
}

// Move relocates the occupant of from to to, capturing whatever stood on to.
func (tx *Tx) Move(from, to Square) *Tx {
	tx.ops = append(tx.ops, op{kind: opMove, from: from, to: to})
	return tx
}

// Capture removes and destroys the occupant of sq, if any.
func (tx *Tx) Capture(sq Square) *Tx {
	tx.ops = append(tx.ops, op{kind: opCapture, from: sq})
	return tx
}

// Place puts a new piece on sq, capturing whatever stood there.
func (tx *Tx) Place(sq Square, p *Piece) *Tx {
	tx.ops = append(tx.ops, op{kind: opPlace, to: sq, piece: p})
	return tx
}

// Discard abandons the transaction. Nothing was applied.
func (tx *Tx) Discard() {
	tx.done = true
}

// Commit applies the staged operations and sets fen as the new position.
// If an operation is invalid or the resulting grid disagrees with fen, the
// grid is rebuilt from fen and the error wraps ErrOutOfSync.
func (tx *Tx) Commit(fen string) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	grid := tx.b.squares
	var dead []*Piece
	var err error
	for _, o := range tx.ops {
		if err = stage(&grid, o, &dead); err != nil {
			break
		}
	}
	if err == nil && placementOf(&grid) != PlacementField(fen) {
		err = fmt.Errorf("grid %q, position %q", placementOf(&grid), PlacementField(fen))
	}
	if err != nil {
		tx.b.Load(fen)
		tx.b.SetPosition(fen)
		return fmt.Errorf("%w: %w", ErrOutOfSync, err)
	}

	for _, p := range dead {
		p.destroy()
	}
	tx.b.squares = grid
	for sq, p := range grid {
		if p != nil {
			p.Square = Square(sq)
		}
	}
	tx.b.SetPosition(fen)
	return nil
}

func stage(grid *[NumSquares]*Piece, o op, dead *[]*Piece) error {
	switch o.kind {
	case opMove:
		if !o.from.IsValid() || !o.to.IsValid() {
			return fmt.Errorf("move %s-%s: %w", o.from, o.to, ErrInvalidSquare)
		}
		p := grid[o.from]
		if p == nil {
			return fmt.Errorf("move %s-%s: %w", o.from, o.to, ErrEmptySquare)
		}
		if victim := grid[o.to]; victim != nil && victim != p {
			*dead = append(*dead, victim)
		}
		grid[o.from] = nil
		grid[o.to] = p
	case opCapture:
		if !o.from.IsValid() {
			return fmt.Errorf("capture %s: %w", o.from, ErrInvalidSquare)
		}
		if victim := grid[o.from]; victim != nil {
			*dead = append(*dead, victim)
			grid[o.from] = nil
		}
	case opPlace:
		if !o.to.IsValid() || o.piece == nil {
			return fmt.Errorf("place %s: %w", o.to, ErrInvalidSquare)
		}
		if victim := grid[o.to]; victim != nil {
			*dead = append(*dead, victim)
		}
		grid[o.to] = o.piece
	}
	return nil
}
