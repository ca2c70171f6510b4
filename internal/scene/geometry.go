package scene

import (
	"math"

	"github.com/hailam/chessdrop/internal/board"
)

// Point is a position in screen space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Point
}

// W returns the width.
func (r Rect) W() float64 { return r.Max.X - r.Min.X }

// H returns the height.
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Layout places the 8x8 grid on screen.
type Layout struct {
	Origin     Point   // top-left corner of the board
	SquareSize float64 // side of one square
	Flipped    bool    // black at the bottom
}

// DefaultLayout is an 80px board at the origin.
var DefaultLayout = Layout{SquareSize: 80}

// Bounds returns the board rectangle.
func (l Layout) Bounds() Rect {
	side := l.SquareSize * 8
	return Rect{Min: l.Origin, Max: Point{X: l.Origin.X + side, Y: l.Origin.Y + side}}
}

// SquareRect returns the screen rectangle of sq.
func (l Layout) SquareRect(sq board.Square) Rect {
	col, row := sq.File(), sq.Row()
	if l.Flipped {
		col, row = 7-col, 7-row
	}
	min := Point{
		X: l.Origin.X + float64(col)*l.SquareSize,
		Y: l.Origin.Y + float64(row)*l.SquareSize,
	}
	return Rect{Min: min, Max: Point{X: min.X + l.SquareSize, Y: min.Y + l.SquareSize}}
}

// Center returns the midpoint of sq, where its sprite rests.
func (l Layout) Center(sq board.Square) Point {
	return l.SquareRect(sq).Center()
}

// SquareAt returns the square under p, or NoSquare off the board.
func (l Layout) SquareAt(p Point) board.Square {
	if l.SquareSize <= 0 || !l.Bounds().Contains(p) {
		return board.NoSquare
	}
	col := int(math.Floor((p.X - l.Origin.X) / l.SquareSize))
	row := int(math.Floor((p.Y - l.Origin.Y) / l.SquareSize))
	if l.Flipped {
		col, row = 7-col, 7-row
	}
	return board.NewSquare(col, 8-row)
}

// Clamp moves a dragged sprite from cur towards next, one axis at a time:
// an axis only follows the pointer while the pointer stays within the
// board on that axis.
func (l Layout) Clamp(cur, next Point) Point {
	b := l.Bounds()
	if next.X >= b.Min.X && next.X <= b.Max.X {
		cur.X = next.X
	}
	if next.Y >= b.Min.Y && next.Y <= b.Max.Y {
		cur.Y = next.Y
	}
	return cur
}
