package scene

import (
	"errors"
	"math"

	"github.com/hailam/chessdrop/internal/board"
)

// Pointer turns raw pointer samples into controller gestures. A press only
// becomes a drag once the pointer has travelled Threshold pixels; hover
// changes are reported as DragLeave/DragEnter pairs.
type Pointer struct {
	c         *Controller
	threshold float64

	down     bool
	ignored  bool // press that cannot start a drag
	dragging bool
	origin   board.Square
	pressAt  Point
	hover    board.Square
}

// NewPointer creates a tracker feeding c. A threshold of zero starts the
// drag on press.
func NewPointer(c *Controller, threshold float64) *Pointer {
	return &Pointer{c: c, threshold: math.Max(threshold, 0), hover: board.NoSquare}
}

// SetThreshold changes the drag distance for later presses.
func (p *Pointer) SetThreshold(px float64) { p.threshold = math.Max(px, 0) }

// Dragging reports whether a drag is in progress.
func (p *Pointer) Dragging() bool { return p.dragging }

// Update feeds one sample: whether the button is held and where the
// pointer is. It returns the error of the gesture it produced, if any.
// Presses on empty squares and presses during a pending promotion are
// swallowed until the button is released.
func (p *Pointer) Update(pressed bool, pos Point) error {
	switch {
	case pressed && !p.down:
		p.press(pos)
		if p.threshold == 0 {
			return p.start(pos)
		}
		return nil

	case pressed && p.ignored:
		return nil

	case pressed && !p.dragging:
		if math.Hypot(pos.X-p.pressAt.X, pos.Y-p.pressAt.Y) < p.threshold {
			return nil
		}
		return p.start(pos)

	case pressed:
		return p.move(pos)

	case p.down:
		return p.release(pos)
	}
	return nil
}

// Cancel abandons the current press, ending any drag without a drop.
func (p *Pointer) Cancel() error {
	dragging := p.dragging
	p.reset()
	if dragging {
		return p.c.DragEnd()
	}
	return nil
}

func (p *Pointer) press(pos Point) {
	p.reset()
	p.down = true
	p.pressAt = pos
	p.origin = p.c.Layout().SquareAt(pos)
	p.ignored = !p.origin.IsValid()
}

func (p *Pointer) start(pos Point) error {
	if p.ignored {
		return nil
	}
	if err := p.c.DragStart(p.origin); err != nil {
		p.ignored = true
		if errors.Is(err, board.ErrEmptySquare) {
			return nil
		}
		return err
	}
	p.dragging = true
	return p.move(pos)
}

func (p *Pointer) move(pos Point) error {
	if err := p.c.DragMove(pos); err != nil {
		return err
	}
	sq := p.c.Layout().SquareAt(pos)
	if sq == p.hover {
		return nil
	}
	if p.hover.IsValid() {
		if err := p.c.DragLeave(p.hover); err != nil {
			return err
		}
	}
	p.hover = sq
	if sq.IsValid() {
		return p.c.DragEnter(sq)
	}
	return nil
}

func (p *Pointer) release(pos Point) error {
	dragging := p.dragging
	p.reset()
	if !dragging {
		return nil
	}
	sq := p.c.Layout().SquareAt(pos)
	if !sq.IsValid() {
		return p.c.DragEnd()
	}
	return p.c.Drop(sq)
}

func (p *Pointer) reset() {
	p.down = false
	p.ignored = false
	p.dragging = false
	p.origin = board.NoSquare
	p.hover = board.NoSquare
}
