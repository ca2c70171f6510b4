package scene

import (
	"testing"

	"github.com/hailam/chessdrop/internal/board"
)

func TestLayoutSquareAtCenter(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		l := Layout{Origin: Point{X: 20, Y: 40}, SquareSize: 64, Flipped: flipped}
		for sq := board.Square(0); sq < board.NumSquares; sq++ {
			if got := l.SquareAt(l.Center(sq)); got != sq {
				t.Errorf("flipped=%v: SquareAt(Center(%s)) = %s", flipped, sq, got)
			}
		}
	}
}

func TestLayoutCorners(t *testing.T) {
	l := Layout{SquareSize: 10}
	tests := []struct {
		p    Point
		want board.Square
	}{
		{Point{X: 0, Y: 0}, board.A8},
		{Point{X: 79.9, Y: 0}, board.H8},
		{Point{X: 0, Y: 79.9}, board.A1},
		{Point{X: 79.9, Y: 79.9}, board.H1},
		{Point{X: 80, Y: 10}, board.NoSquare},
		{Point{X: -1, Y: 10}, board.NoSquare},
		{Point{X: 10, Y: 80}, board.NoSquare},
	}
	for _, tt := range tests {
		if got := l.SquareAt(tt.p); got != tt.want {
			t.Errorf("SquareAt(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}

	l.Flipped = true
	if got := l.SquareAt(Point{X: 0, Y: 0}); got != board.H1 {
		t.Errorf("flipped top-left = %s, want h1", got)
	}
}

func TestLayoutClampPerAxis(t *testing.T) {
	l := Layout{SquareSize: 10} // bounds 0..80
	cur := Point{X: 40, Y: 40}

	tests := []struct {
		name string
		next Point
		want Point
	}{
		{"inside", Point{X: 10, Y: 70}, Point{X: 10, Y: 70}},
		{"x out", Point{X: 95, Y: 70}, Point{X: 40, Y: 70}},
		{"y out", Point{X: 10, Y: -5}, Point{X: 10, Y: 40}},
		{"both out", Point{X: -5, Y: 100}, Point{X: 40, Y: 40}},
		{"edge", Point{X: 80, Y: 0}, Point{X: 80, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Clamp(cur, tt.next); got != tt.want {
				t.Errorf("Clamp(%v, %v) = %v, want %v", cur, tt.next, got, tt.want)
			}
		})
	}
}

func TestSquareRect(t *testing.T) {
	l := Layout{Origin: Point{X: 5, Y: 5}, SquareSize: 10}
	r := l.SquareRect(board.E4)
	want := Rect{Min: Point{X: 45, Y: 45}, Max: Point{X: 55, Y: 55}}
	if r != want {
		t.Errorf("SquareRect(e4) = %v, want %v", r, want)
	}
	if r.W() != 10 || r.H() != 10 {
		t.Errorf("square is %vx%v", r.W(), r.H())
	}
}
