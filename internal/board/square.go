// Package board holds the visual board model: 64 squares, the pieces that
// occupy them and the authoritative FEN handed to and from the rules engine.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned for coordinate names outside a1..h8.
var ErrInvalidSquare = errors.New("invalid square")

// Square is an index into the 8x8 grid (0-63).
// Rank-major from the black side: A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants in grid order.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// NumSquares is the size of the grid.
const NumSquares = 64

// NewSquare creates a square from a file (0=a) and a rank (1-8).
func NewSquare(file, rank int) Square {
	return Square((8-rank)*8 + file)
}

// ParseSquare maps a coordinate name such as "e4" to its grid index.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	file := int(name[0]) - 'a'
	rank := int(name[1]) - '0'
	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return NewSquare(file, rank), nil
}

// MustSquare is ParseSquare for names known at compile time.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}

// Index returns the grid index.
func (sq Square) Index() int {
	return int(sq)
}

// File returns the file (0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the chess rank (1-8).
func (sq Square) Rank() int {
	return 8 - int(sq)>>3
}

// Row returns the grid row counted from the top (0 = rank 8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// IsValid returns true for grid squares.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square df files and dr ranks away, or NoSquare when
// that leaves the board.
func (sq Square) Offset(df, dr int) Square {
	if !sq.IsValid() {
		return NoSquare
	}
	file, rank := sq.File()+df, sq.Rank()+dr
	if file < 0 || file > 7 || rank < 1 || rank > 8 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// Mirror flips the square vertically. Engines that number a1=0 use this to
// translate to and from grid indices.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// String returns the coordinate name (e.g. "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('0' + sq.Rank())})
}
