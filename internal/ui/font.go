package ui

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize    = 14.0
	titleFontSize      = 16.0
	coordinateFontSize = 11.0
)

var (
	fontsOnce sync.Once
	fontsErr  error

	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

// loadFonts parses the embedded Go fonts once. Faces stay nil if it fails
// and text is simply not drawn.
func loadFonts() error {
	fontsOnce.Do(func() {
		regularSource, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if fontsErr != nil {
			fontsErr = fmt.Errorf("regular font: %w", fontsErr)
			return
		}
		boldSource, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if fontsErr != nil {
			fontsErr = fmt.Errorf("bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

func face(src *text.GoTextFaceSource, size float64) *text.GoTextFace {
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size * UIScale}
}

// GetRegularFace returns the body face at the current UI scale.
func GetRegularFace() *text.GoTextFace {
	return face(regularSource, defaultFontSize)
}

// GetBoldFace returns the title face at the current UI scale.
func GetBoldFace() *text.GoTextFace {
	return face(boldSource, titleFontSize)
}

// GetFaceWithSize returns a regular face of the given logical size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	return face(regularSource, size)
}

// MeasureText returns the drawn width and height of s in screen pixels.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
