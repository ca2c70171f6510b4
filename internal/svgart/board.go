package svgart

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/chessdrop/internal/board"
)

// BoardOptions controls board rendering.
type BoardOptions struct {
	Size        int    // output width and height in pixels
	Light, Dark string // square colors
	Highlight   string // color of highlighted squares
	Flipped     bool
	Coordinates bool
	Highlights  []board.Square
}

// DefaultBoardOptions matches the desktop theme.
func DefaultBoardOptions() BoardOptions {
	return BoardOptions{
		Size:        360,
		Light:       "#f0d9b5",
		Dark:        "#b58863",
		Highlight:   "#f7f769",
		Coordinates: true,
	}
}

// Board writes an SVG document of the pieces on b. One square is one glyph.
func Board(w io.Writer, b *board.Board, opts BoardOptions) error {
	if opts.Size <= 0 {
		return fmt.Errorf("svgart: bad board size %d", opts.Size)
	}
	side := 8 * GlyphSize
	canvas := svg.New(w)
	canvas.Startview(opts.Size, opts.Size, 0, 0, side, side)

	highlighted := make(map[board.Square]bool, len(opts.Highlights))
	for _, sq := range opts.Highlights {
		highlighted[sq] = true
	}

	canvas.Gid("squares")
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		x, y := origin(sq, opts.Flipped)
		fill := opts.Light
		if (sq.File()+sq.Row())%2 == 1 {
			fill = opts.Dark
		}
		if highlighted[sq] {
			fill = opts.Highlight
		}
		canvas.Rect(x, y, GlyphSize, GlyphSize, "fill:"+fill)
	}
	canvas.Gend()

	if opts.Coordinates {
		drawCoordinates(canvas, opts)
	}

	canvas.Gid("pieces")
	for _, p := range b.Pieces() {
		x, y := origin(p.Square, opts.Flipped)
		canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", x, y))
		drawGlyph(canvas, PaletteFor(p.Color), p.Kind)
		canvas.Gend()
	}
	canvas.Gend()

	canvas.End()
	return nil
}

// origin returns the top-left corner of sq in board coordinates.
func origin(sq board.Square, flipped bool) (int, int) {
	col, row := sq.File(), sq.Row()
	if flipped {
		col, row = 7-col, 7-row
	}
	return col * GlyphSize, row * GlyphSize
}

func drawCoordinates(canvas *svg.SVG, opts BoardOptions) {
	canvas.Gstyle("font-family:sans-serif;font-size:7px")
	for i := 0; i < 8; i++ {
		// File letters along the bottom row, rank digits down the left column.
		file, rank := i, 8-i
		if opts.Flipped {
			file, rank = 7-i, i+1
		}
		fileColor, rankColor := opts.Dark, opts.Light
		if i%2 == 1 {
			fileColor, rankColor = opts.Light, opts.Dark
		}
		canvas.Text(i*GlyphSize+GlyphSize-6, 8*GlyphSize-2, string(rune('a'+file)), "fill:"+fileColor)
		canvas.Text(2, i*GlyphSize+8, fmt.Sprint(rank), "fill:"+rankColor)
	}
	canvas.Gend()
}
