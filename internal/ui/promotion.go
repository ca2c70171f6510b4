package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/scene"
)

var (
	promotionBg      = color.RGBA{250, 250, 250, 240}
	promotionHover   = color.RGBA{255, 200, 120, 255}
	promotionClose   = color.RGBA{200, 200, 200, 240}
	promotionCloseFg = color.RGBA{90, 90, 90, 255}
)

// promotionKeys lets the keyboard pick a piece.
var promotionKeys = map[ebiten.Key]board.Kind{
	ebiten.KeyQ: board.Queen,
	ebiten.KeyR: board.Rook,
	ebiten.KeyB: board.Bishop,
	ebiten.KeyN: board.Knight,
}

// PromotionDialog is the piece picker shown when a pawn reaches the last
// rank. It implements scene.Presenter; the chosen result is returned from
// Update on a later frame.
type PromotionDialog struct {
	sprites *SpriteManager
	visible bool
	req     scene.PromotionRequest
	slots   []scene.Rect // one per option
	close   scene.Rect
	hovered int // slot index, len(slots) for close, -1 for none
}

// NewPromotionDialog creates a hidden dialog drawing glyphs from sprites.
func NewPromotionDialog(sprites *SpriteManager) *PromotionDialog {
	return &PromotionDialog{sprites: sprites, hovered: -1}
}

// PresentPromotion opens the dialog over the destination square.
func (d *PromotionDialog) PresentPromotion(req scene.PromotionRequest) {
	d.req = req
	d.slots, d.close = promotionLayout(req.Anchor, len(req.Options), BoardSize)
	d.visible = true
	d.hovered = -1
}

// promotionLayout stacks n square slots from the anchor towards the middle
// of the board, followed by a half-height close slot.
func promotionLayout(anchor scene.Rect, n int, boardH float64) ([]scene.Rect, scene.Rect) {
	size := anchor.H()
	dir := 1.0
	if anchor.Min.Y+size*float64(n)+size/2 > boardH {
		dir = -1
	}
	slots := make([]scene.Rect, n)
	y := anchor.Min.Y
	for i := range slots {
		slots[i] = scene.Rect{
			Min: scene.Point{X: anchor.Min.X, Y: y},
			Max: scene.Point{X: anchor.Max.X, Y: y + size},
		}
		y += dir * size
	}
	closeMin := y
	if dir < 0 {
		closeMin = y + size/2
	}
	return slots, scene.Rect{
		Min: scene.Point{X: anchor.Min.X, Y: closeMin},
		Max: scene.Point{X: anchor.Max.X, Y: closeMin + size/2},
	}
}

// IsVisible reports whether the dialog is open.
func (d *PromotionDialog) IsVisible() bool { return d.visible }

// Hide closes the dialog without answering.
func (d *PromotionDialog) Hide() { d.visible = false }

// AnyButtonHovered reports whether the pointer is over a slot.
func (d *PromotionDialog) AnyButtonHovered() bool { return d.visible && d.hovered >= 0 }

// Update handles input. It returns the dialog's answer once the player
// picks a piece, presses Q/R/B/N, clicks close or outside, or hits Escape.
func (d *PromotionDialog) Update(input *InputHandler) (scene.PromotionResult, bool) {
	if !d.visible {
		return scene.PromotionResult{}, false
	}

	for key, kind := range promotionKeys {
		if IsKeyJustPressed(key) && d.offers(kind) {
			return d.answer(d.req.Choose(kind))
		}
	}
	if IsKeyJustPressed(ebiten.KeyEscape) {
		return d.answer(d.req.Cancel())
	}

	pt := input.Point()
	d.hovered = -1
	for i, r := range d.slots {
		if r.Contains(pt) {
			d.hovered = i
		}
	}
	if d.close.Contains(pt) {
		d.hovered = len(d.slots)
	}

	if !input.IsLeftJustPressed() {
		return scene.PromotionResult{}, false
	}
	if d.hovered >= 0 && d.hovered < len(d.slots) {
		return d.answer(d.req.Choose(d.req.Options[d.hovered]))
	}
	return d.answer(d.req.Cancel())
}

func (d *PromotionDialog) offers(kind board.Kind) bool {
	for _, k := range d.req.Options {
		if k == kind {
			return true
		}
	}
	return false
}

func (d *PromotionDialog) answer(res scene.PromotionResult) (scene.PromotionResult, bool) {
	d.visible = false
	d.hovered = -1
	return res, true
}

// Draw renders the picker over the board.
func (d *PromotionDialog) Draw(screen *ebiten.Image) {
	if !d.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, scaleF(BoardSize), scaleF(BoardSize), color.RGBA{0, 0, 0, 90}, false)

	for i, r := range d.slots {
		x, y, w, h := float32(r.Min.X*UIScale), float32(r.Min.Y*UIScale), float32(r.W()*UIScale), float32(r.H()*UIScale)
		bg := promotionBg
		if i == d.hovered {
			bg = promotionHover
		}
		vector.DrawFilledCircle(screen, x+w/2, y+h/2, w*0.48, bg, true)
		c := r.Center()
		d.sprites.DrawCentered(screen, d.req.Color, d.req.Options[i], c.X*UIScale, c.Y*UIScale, 1)
	}

	x, y, w, h := float32(d.close.Min.X*UIScale), float32(d.close.Min.Y*UIScale), float32(d.close.W()*UIScale), float32(d.close.H()*UIScale)
	bg := promotionClose
	if d.hovered == len(d.slots) {
		bg = promotionHover
	}
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	c := d.close.Center()
	drawCentered(screen, "×", GetBoldFace(), int(c.X), int(c.Y), promotionCloseFg)
}
