package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/scene"
	"github.com/hailam/chessdrop/internal/storage"
)

// Theme defines the board colors.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	OriginTint  color.RGBA // drag origin
	LastMove    color.RGBA
	Marker      color.RGBA // legal destination dot or ring
	Border      color.RGBA // hovered drop zone
	Background  color.RGBA
	Coordinate  color.RGBA
}

var themes = map[storage.Theme]*Theme{
	storage.ThemeClassic: {
		LightSquare: color.RGBA{240, 217, 181, 255},
		DarkSquare:  color.RGBA{181, 136, 99, 255},
		OriginTint:  color.RGBA{247, 247, 105, 180},
		LastMove:    color.RGBA{180, 190, 100, 90},
		Marker:      color.RGBA{60, 70, 40, 90},
		Border:      color.RGBA{255, 255, 255, 200},
		Background:  color.RGBA{40, 44, 52, 255},
		Coordinate:  color.RGBA{90, 70, 50, 255},
	},
	storage.ThemeGreen: {
		LightSquare: color.RGBA{238, 238, 210, 255},
		DarkSquare:  color.RGBA{118, 150, 86, 255},
		OriginTint:  color.RGBA{246, 246, 130, 170},
		LastMove:    color.RGBA{186, 202, 68, 110},
		Marker:      color.RGBA{20, 50, 20, 80},
		Border:      color.RGBA{255, 255, 255, 200},
		Background:  color.RGBA{38, 42, 38, 255},
		Coordinate:  color.RGBA{60, 80, 45, 255},
	},
	storage.ThemeBlue: {
		LightSquare: color.RGBA{222, 227, 230, 255},
		DarkSquare:  color.RGBA{140, 162, 173, 255},
		OriginTint:  color.RGBA{155, 199, 0, 150},
		LastMove:    color.RGBA{120, 170, 210, 100},
		Marker:      color.RGBA{20, 40, 60, 80},
		Border:      color.RGBA{255, 255, 255, 210},
		Background:  color.RGBA{36, 42, 50, 255},
		Coordinate:  color.RGBA{70, 90, 105, 255},
	},
}

// ThemeFor returns the colors of t, falling back to classic.
func ThemeFor(t storage.Theme) *Theme {
	if th, ok := themes[t]; ok {
		return th
	}
	return themes[storage.ThemeClassic]
}

// Renderer draws the board, its overlays and the pieces.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
}

// NewRenderer creates a renderer with pieces sized for one square. A
// sprite error is returned alongside a usable renderer.
func NewRenderer(theme storage.Theme) (*Renderer, error) {
	sprites, err := NewSpriteManager(SquareSize)
	return &Renderer{sprites: sprites, theme: ThemeFor(theme)}, err
}

// SetTheme switches the board colors.
func (r *Renderer) SetTheme(t storage.Theme) {
	r.theme = ThemeFor(t)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// screenRect returns sq's rectangle in screen pixels.
func screenRect(l scene.Layout, sq board.Square) (x, y, size float32) {
	rect := l.SquareRect(sq)
	return float32(rect.Min.X * UIScale), float32(rect.Min.Y * UIScale), float32(rect.W() * UIScale)
}

// DrawBoard draws the squares and the controller's per-square state. from
// and to mark the last move and may be NoSquare.
func (r *Renderer) DrawBoard(screen *ebiten.Image, c *scene.Controller, from, to board.Square) {
	l := c.Layout()
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		x, y, size := screenRect(l, sq)

		fill := r.theme.LightSquare
		if (sq.File()+sq.Row())%2 == 1 {
			fill = r.theme.DarkSquare
		}
		vector.DrawFilledRect(screen, x, y, size, size, fill, false)

		if sq == from || sq == to {
			vector.DrawFilledRect(screen, x, y, size, size, r.theme.LastMove, false)
		}

		view := c.View(sq)
		if view.Tint {
			vector.DrawFilledRect(screen, x, y, size, size, r.theme.OriginTint, false)
		}
		if view.Marker {
			r.drawMarker(screen, x, y, size, c.Board().PieceAt(sq) != nil)
		}
		if view.Border {
			w := size * 0.06
			vector.StrokeRect(screen, x+w/2, y+w/2, size-w, size-w, w, r.theme.Border, false)
		}
	}
	r.drawCoordinates(screen, l)
}

// drawMarker draws a dot on empty destinations and a ring around captures.
func (r *Renderer) drawMarker(screen *ebiten.Image, x, y, size float32, occupied bool) {
	cx, cy := x+size/2, y+size/2
	if occupied {
		vector.StrokeCircle(screen, cx, cy, size*0.46, size*0.08, r.theme.Marker, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.Marker, true)
}

// drawCoordinates labels files along the bottom edge and ranks along the
// left edge, whichever way the board is turned.
func (r *Renderer) drawCoordinates(screen *ebiten.Image, l scene.Layout) {
	face := GetFaceWithSize(coordinateFontSize)
	if face == nil {
		return
	}
	bottomRank, leftFile := 1, 0
	if l.Flipped {
		bottomRank, leftFile = 8, 7
	}
	for i := 0; i < 8; i++ {
		label := string(rune('a' + i))
		rect := l.SquareRect(board.NewSquare(i, bottomRank))
		w, h := MeasureText(label, face)
		drawLabel(screen, label, face,
			int(rect.Max.X-3-w/UIScale), int(rect.Max.Y-2-h/UIScale), r.theme.Coordinate)

		label = string(rune('1' + i))
		rect = l.SquareRect(board.NewSquare(leftFile, i+1))
		drawLabel(screen, label, face, int(rect.Min.X+3), int(rect.Min.Y+2), r.theme.Coordinate)
	}
}

// DrawPieces draws every piece at its sprite position, the dragged piece
// last so it floats above the rest. A pawn awaiting promotion is dimmed.
func (r *Renderer) DrawPieces(screen *ebiten.Image, c *scene.Controller, anims *AnimationManager) {
	dragged := c.Dragged()
	pending, awaiting := c.Pending()

	for _, p := range c.Board().Pieces() {
		if p == dragged {
			continue
		}
		pos, ok := c.SpritePos(p)
		if !ok {
			continue
		}
		alpha := float32(1)
		if awaiting && p.Square == pending.From {
			alpha = 0.4
		}
		dx := 0.0
		if anims != nil {
			dx = anims.ShakeOffset(p.Square)
		}
		r.sprites.DrawCentered(screen, p.Color, p.Kind, (pos.X+dx)*UIScale, pos.Y*UIScale, alpha)
	}

	if dragged != nil {
		if pos, ok := c.SpritePos(dragged); ok {
			r.sprites.DrawCentered(screen, dragged.Color, dragged.Kind, pos.X*UIScale, pos.Y*UIScale, 1)
		}
	}
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
