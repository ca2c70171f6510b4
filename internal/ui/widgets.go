package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Chrome colors shared by the status bar, widgets and modals.
var (
	chromeBg          = color.RGBA{38, 40, 45, 255}
	buttonBg          = color.RGBA{50, 54, 60, 255}
	buttonHoverBg     = color.RGBA{65, 70, 78, 255}
	buttonPressedBg   = color.RGBA{40, 44, 50, 255}
	accentColor       = color.RGBA{76, 175, 120, 255}
	accentHover       = color.RGBA{96, 195, 140, 255}
	accentPressed     = color.RGBA{56, 155, 100, 255}
	textPrimary       = color.RGBA{240, 240, 245, 255}
	textSecondary     = color.RGBA{160, 165, 175, 255}
	textMuted         = color.RGBA{120, 125, 135, 255}
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	widgetHoverBg     = color.RGBA{65, 70, 78, 255}
	radioInactive     = color.RGBA{70, 75, 82, 255}
	inputPlaceholder  = color.RGBA{120, 125, 135, 255}
	tabActive         = color.RGBA{76, 132, 96, 255}
	modalOverlay      = color.RGBA{0, 0, 0, 180}
	modalBg           = color.RGBA{38, 40, 45, 255}
	modalHeader       = color.RGBA{48, 52, 58, 255}
	modalBorder       = color.RGBA{58, 62, 68, 255}
)

func inside(mx, my, x, y, w, h int) bool {
	return mx >= x && mx < x+w && my >= y && my < y+h
}

// drawLabel draws s with its top-left corner at logical (x, y).
func drawLabel(screen *ebiten.Image, s string, face *text.GoTextFace, x, y int, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(x), scaleD(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawCentered draws s centered on logical (cx, cy).
func drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy int, c color.Color) {
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(scaleD(cx)-w/2, scaleD(cy)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// TextInput is an editable single-line field.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	cursorBlink int
}

// NewTextInput creates a text input.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{
		X: x, Y: y, W: w, H: h,
		Placeholder: placeholder,
		MaxLength:   maxLen,
	}
}

// Update handles typing. It returns true while the field has focus.
func (ti *TextInput) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	ti.hovered = inside(mx, my, ti.X, ti.Y, ti.W, ti.H)

	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}

	ti.cursorBlink = (ti.cursorBlink + 1) % 60

	for _, c := range ebiten.AppendInputChars(nil) {
		if ti.MaxLength == 0 || utf8.RuneCountInString(ti.Value) < ti.MaxLength {
			ti.Value += string(c)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(ti.Value) > 0 {
		_, size := utf8.DecodeLastRuneInString(ti.Value)
		ti.Value = ti.Value[:len(ti.Value)-size]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.focused = false
	}
	return true
}

// Draw renders the field, clipping long values from the left.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	bg := widgetBg
	if ti.hovered && !ti.focused {
		bg = color.RGBA{52, 56, 62, 255}
	}
	vector.DrawFilledRect(screen, scaleF(ti.X), scaleF(ti.Y), scaleF(ti.W), scaleF(ti.H), bg, false)

	border := widgetBorder
	if ti.focused {
		border = widgetFocusBorder
	} else if ti.hovered {
		border = accentColor
	}
	vector.StrokeRect(screen, scaleF(ti.X), scaleF(ti.Y), scaleF(ti.W), scaleF(ti.H), float32(UIScale*2), border, false)

	face := GetRegularFace()
	if face == nil {
		return
	}
	textX := ti.X + 10
	textY := ti.Y + ti.H/2

	s, c := ti.Value, color.Color(textPrimary)
	if s == "" {
		s, c = ti.Placeholder, inputPlaceholder
	}
	for s != "" {
		if w, _ := MeasureText(s, face); w <= scaleD(ti.W-24) {
			break
		}
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	_, h := MeasureText("Mg", face)
	drawLabel(screen, s, face, textX, textY-int(h/2/UIScale), c)

	if ti.focused && ti.cursorBlink < 30 {
		w := 0.0
		if ti.Value != "" {
			w, _ = MeasureText(s, face)
		}
		cursorX := scaleF(textX) + float32(w) + 2
		vector.DrawFilledRect(screen, cursorX, scaleF(ti.Y+8), scaleF(2), scaleF(ti.H-16), textPrimary, false)
	}
}

// IsFocused returns true if the field has keyboard focus.
func (ti *TextInput) IsFocused() bool { return ti.focused }

// SetFocused sets the focus state.
func (ti *TextInput) SetFocused(focused bool) { ti.focused = focused }

// RadioOption is one entry of a RadioGroup.
type RadioOption struct {
	Label string
	Value string
}

// RadioGroup is a vertical list of mutually exclusive options.
type RadioGroup struct {
	X, Y     int
	Options  []RadioOption
	Selected int
	ItemH    int
	hovered  int
}

// NewRadioGroup creates a radio group.
func NewRadioGroup(x, y int, options []RadioOption, selected int) *RadioGroup {
	return &RadioGroup{X: x, Y: y, Options: options, Selected: selected, ItemH: 28, hovered: -1}
}

// Value returns the selected option's value.
func (rg *RadioGroup) Value() string {
	if rg.Selected < 0 || rg.Selected >= len(rg.Options) {
		return ""
	}
	return rg.Options[rg.Selected].Value
}

// Select picks the option with value v, if present.
func (rg *RadioGroup) Select(v string) {
	for i, o := range rg.Options {
		if o.Value == v {
			rg.Selected = i
		}
	}
}

// Update handles clicks. It returns true when the selection changed.
func (rg *RadioGroup) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	rg.hovered = -1
	for i := range rg.Options {
		itemY := rg.Y + i*rg.ItemH
		if inside(mx, my, rg.X, itemY, 240, rg.ItemH) {
			rg.hovered = i
			if input.IsLeftJustPressed() && rg.Selected != i {
				rg.Selected = i
				return true
			}
		}
	}
	return false
}

// Draw renders the group.
func (rg *RadioGroup) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	for i, opt := range rg.Options {
		itemY := rg.Y + i*rg.ItemH
		selected := i == rg.Selected
		hovered := i == rg.hovered

		cx, cy := scaleF(rg.X+10), scaleF(itemY+rg.ItemH/2)
		c := radioInactive
		if selected {
			c = accentColor
		} else if hovered {
			c = accentHover
		}
		vector.DrawFilledCircle(screen, cx, cy, scaleF(8), c, false)
		if selected {
			vector.DrawFilledCircle(screen, cx, cy, scaleF(4), textPrimary, false)
		}

		tc := textSecondary
		if selected || hovered {
			tc = textPrimary
		}
		_, h := MeasureText(opt.Label, face)
		drawLabel(screen, opt.Label, face, rg.X+30, itemY+rg.ItemH/2-int(h/2/UIScale), tc)
	}
}

// Checkbox is a labelled toggle.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

// Update toggles on click and reports whether it did.
func (cb *Checkbox) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	cb.hovered = inside(mx, my, cb.X, cb.Y, 240, 24)
	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	x, y, size := scaleF(cb.X), scaleF(cb.Y), scaleF(20)

	bg := widgetBg
	if cb.hovered {
		bg = widgetHoverBg
	}
	vector.DrawFilledRect(screen, x, y, size, size, bg, false)

	border := widgetBorder
	if cb.hovered {
		border = accentHover
	} else if cb.Checked {
		border = accentColor
	}
	vector.StrokeRect(screen, x, y, size, size, float32(UIScale*2), border, false)

	if cb.Checked {
		w := float32(UIScale * 2)
		vector.StrokeLine(screen, x+scaleF(4), y+scaleF(10), x+scaleF(8), y+scaleF(14), w, accentColor, false)
		vector.StrokeLine(screen, x+scaleF(8), y+scaleF(14), x+scaleF(16), y+scaleF(6), w, accentColor, false)
	}

	face := GetRegularFace()
	tc := textSecondary
	if cb.Checked || cb.hovered {
		tc = textPrimary
	}
	_, h := MeasureText(cb.Label, face)
	drawLabel(screen, cb.Label, face, cb.X+30, cb.Y+10-int(h/2/UIScale), tc)
}

// ButtonGroup is a row of toggle buttons with one selected.
type ButtonGroup struct {
	X, Y     int
	Options  []string
	Selected int
	ButtonW  int
	ButtonH  int
	hovered  int
	pressed  int
}

// NewButtonGroup creates a button group.
func NewButtonGroup(x, y int, options []string, selected int, buttonW, buttonH int) *ButtonGroup {
	return &ButtonGroup{
		X: x, Y: y,
		Options:  options,
		Selected: selected,
		ButtonW:  buttonW,
		ButtonH:  buttonH,
		hovered:  -1,
		pressed:  -1,
	}
}

// Update handles clicks and reports a selection change.
func (bg *ButtonGroup) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	bg.hovered, bg.pressed = -1, -1
	for i := range bg.Options {
		btnX := bg.X + i*bg.ButtonW
		if !inside(mx, my, btnX, bg.Y, bg.ButtonW, bg.ButtonH) {
			continue
		}
		bg.hovered = i
		if input.IsLeftPressed() {
			bg.pressed = i
		}
		if input.IsLeftJustPressed() && bg.Selected != i {
			bg.Selected = i
			return true
		}
	}
	return false
}

// Draw renders the group.
func (bg *ButtonGroup) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	for i, label := range bg.Options {
		btnX := bg.X + i*bg.ButtonW
		selected := i == bg.Selected

		fill := buttonBg
		switch {
		case selected:
			fill = tabActive
		case i == bg.pressed:
			fill = buttonPressedBg
		case i == bg.hovered:
			fill = buttonHoverBg
		}
		vector.DrawFilledRect(screen, scaleF(btnX), scaleF(bg.Y), scaleF(bg.ButtonW), scaleF(bg.ButtonH), fill, false)

		border := widgetBorder
		if selected {
			border = tabActive
		} else if i == bg.hovered {
			border = accentColor
		}
		vector.StrokeRect(screen, scaleF(btnX), scaleF(bg.Y), scaleF(bg.ButtonW), scaleF(bg.ButtonH), float32(UIScale), border, false)

		tc := textSecondary
		if selected {
			tc = textPrimary
		}
		drawCentered(screen, label, face, btnX+bg.ButtonW/2, bg.Y+bg.ButtonH/2, tc)
	}
}

// ModalButton is a push button for dialogs.
type ModalButton struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	OnClick    func()
	hovered    bool
	pressed    bool
}

// NewModalButton creates a button.
func NewModalButton(x, y, w, h int, label string, primary bool, onClick func()) *ModalButton {
	return &ModalButton{X: x, Y: y, W: w, H: h, Label: label, Primary: primary, OnClick: onClick}
}

// IsHovered returns true if the pointer is over the button.
func (mb *ModalButton) IsHovered() bool { return mb.hovered }

// Update fires OnClick on press.
func (mb *ModalButton) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	mb.hovered = inside(mx, my, mb.X, mb.Y, mb.W, mb.H)
	mb.pressed = input.IsLeftPressed() && mb.hovered
	if input.IsLeftJustPressed() && mb.hovered && mb.OnClick != nil {
		mb.OnClick()
		return true
	}
	return false
}

// Draw renders the button.
func (mb *ModalButton) Draw(screen *ebiten.Image) {
	fill, border := buttonBg, widgetBorder
	if mb.Primary {
		fill, border = accentColor, accentPressed
		if mb.pressed {
			fill = accentPressed
		} else if mb.hovered {
			fill = accentHover
		}
	} else if mb.pressed {
		fill = buttonPressedBg
	} else if mb.hovered {
		fill, border = buttonHoverBg, accentColor
	}
	vector.DrawFilledRect(screen, scaleF(mb.X), scaleF(mb.Y), scaleF(mb.W), scaleF(mb.H), fill, false)
	vector.StrokeRect(screen, scaleF(mb.X), scaleF(mb.Y), scaleF(mb.W), scaleF(mb.H), float32(UIScale), border, false)
	drawCentered(screen, mb.Label, GetRegularFace(), mb.X+mb.W/2, mb.Y+mb.H/2, textPrimary)
}

// drawModalFrame dims the screen and draws a dialog box with a titled header.
func drawModalFrame(screen *ebiten.Image, x, y, w, h int, title string) {
	vector.DrawFilledRect(screen, 0, 0, scaleF(ScreenWidth), scaleF(ScreenHeight), modalOverlay, false)
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), modalBg, false)
	vector.StrokeRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(h), float32(UIScale*2), modalBorder, false)
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), scaleF(44), modalHeader, false)
	drawCentered(screen, title, GetBoldFace(), x+w/2, y+22, textPrimary)
}
