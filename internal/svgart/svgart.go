// Package svgart draws piece glyphs and whole boards as SVG.
//
// Glyphs are laid out on a 45x45 grid. The ui package rasterizes them into
// sprites; the inspection server serves whole boards.
package svgart

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chessdrop/internal/board"
)

// GlyphSize is the side of the glyph grid.
const GlyphSize = 45

// Palette colors one side's pieces.
type Palette struct {
	Fill   string
	Stroke string
	Detail string // eye, slit and band lines
}

var (
	WhitePalette = Palette{Fill: "#ffffff", Stroke: "#000000", Detail: "#000000"}
	BlackPalette = Palette{Fill: "#262421", Stroke: "#000000", Detail: "#e8e8e8"}
)

// PaletteFor returns the palette of c.
func PaletteFor(c board.Color) Palette {
	if c == board.Black {
		return BlackPalette
	}
	return WhitePalette
}

// Piece writes a standalone SVG document of the glyph for c and k.
func Piece(w io.Writer, c board.Color, k board.Kind) error {
	if k == board.NoKind {
		return fmt.Errorf("svgart: no glyph for %v", k)
	}
	canvas := svg.New(w)
	canvas.Startview(GlyphSize, GlyphSize, 0, 0, GlyphSize, GlyphSize)
	drawGlyph(canvas, PaletteFor(c), k)
	canvas.End()
	return nil
}

// PieceBytes returns the glyph document for c and k.
func PieceBytes(c board.Color, k board.Kind) ([]byte, error) {
	var buf bytes.Buffer
	if err := Piece(&buf, c, k); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func style(p Palette) string {
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5;stroke-linejoin:round", p.Fill, p.Stroke)
}

func detail(p Palette) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5;stroke-linecap:round", p.Detail)
}

// drawGlyph draws k in glyph coordinates at the canvas origin.
func drawGlyph(canvas *svg.SVG, p Palette, k board.Kind) {
	s := style(p)
	switch k {
	case board.Pawn:
		canvas.Polygon([]int{16, 29, 32, 13}, []int{22, 22, 35, 35}, s)
		canvas.Ellipse(22, 22, 7, 3, s)
		canvas.Circle(22, 14, 6, s)
	case board.Knight:
		canvas.Polygon(
			[]int{14, 31, 31, 28, 22, 20, 18, 12, 10, 13, 18, 21, 15},
			[]int{35, 35, 24, 12, 9, 5, 10, 16, 22, 25, 21, 22, 30},
			s)
		canvas.Circle(18, 14, 1, "fill:"+p.Detail)
	case board.Bishop:
		canvas.Polygon([]int{17, 28, 30, 15}, []int{28, 28, 35, 35}, s)
		canvas.Ellipse(22, 19, 7, 10, s)
		canvas.Circle(22, 7, 3, s)
		canvas.Line(19, 16, 25, 22, detail(p))
	case board.Rook:
		canvas.Polygon([]int{14, 31, 30, 15}, []int{15, 15, 32, 32}, s)
		canvas.Polygon(
			[]int{11, 15, 15, 19, 19, 26, 26, 30, 30, 34, 34, 11},
			[]int{9, 9, 12, 12, 9, 9, 12, 12, 9, 9, 15, 15},
			s)
		canvas.Rect(12, 31, 21, 4, s)
	case board.Queen:
		canvas.Polygon(
			[]int{9, 13, 16, 19, 22, 25, 29, 32, 36, 32, 13},
			[]int{13, 24, 11, 24, 10, 24, 11, 24, 13, 34, 34},
			s)
		for _, x := range []int{9, 16, 22, 29, 36} {
			y := 11
			switch x {
			case 9, 36:
				y = 13
			case 22:
				y = 9
			}
			canvas.Circle(x, y, 2, s)
		}
	case board.King:
		canvas.Polygon([]int{11, 22, 34, 31, 14}, []int{18, 14, 18, 34, 34}, s)
		canvas.Rect(21, 3, 3, 11, s)
		canvas.Rect(18, 6, 9, 3, s)
		canvas.Line(14, 28, 31, 28, detail(p))
	}
	canvas.Roundrect(9, 34, 27, 5, 2, 2, s)
}
