package ui

import (
	"bytes"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/multierr"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/svgart"
)

type spriteKey struct {
	color board.Color
	kind  board.Kind
}

// SpriteManager rasterizes the svgart glyphs into ebiten images.
type SpriteManager struct {
	pieces      map[spriteKey]*ebiten.Image
	size        int     // logical display size
	renderScale float64 // oversampling for sharp downscaling
}

// NewSpriteManager renders every piece at the given logical size. Glyphs
// that fail to render are reported together; the rest stay usable.
func NewSpriteManager(size int) (*SpriteManager, error) {
	sm := &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	return sm, sm.loadPieces()
}

func (sm *SpriteManager) loadPieces() error {
	renderSize := int(float64(sm.size) * sm.renderScale)

	var errs error
	for _, c := range []board.Color{board.White, board.Black} {
		for _, k := range board.Kinds {
			img, err := rasterize(c, k, renderSize)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%v %v: %w", c, k, err))
				continue
			}
			sm.pieces[spriteKey{c, k}] = ebiten.NewImageFromImage(img)
		}
	}
	return errs
}

func rasterize(c board.Color, k board.Kind, size int) (*image.RGBA, error) {
	data, err := svgart.PieceBytes(c, k)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return rgba, nil
}

// DrawCentered draws the glyph for a c k piece centered on screen pixel (cx, cy) at the
// current UI scale.
func (sm *SpriteManager) DrawCentered(screen *ebiten.Image, c board.Color, k board.Kind, cx, cy float64, alpha float32) {
	sprite := sm.pieces[spriteKey{c, k}]
	if sprite == nil {
		return
	}
	scale := UIScale / sm.renderScale
	half := float64(sprite.Bounds().Dx()) * scale / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-half, cy-half)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the logical sprite size.
func (sm *SpriteManager) Size() int {
	return sm.size
}
