package ui

import (
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessdrop/internal/storage"
)

// Settings modal dimensions
const (
	SettingsWidth  = 420
	SettingsHeight = 540
	SettingsPadX   = 24
	SettingsPadY   = 20
)

// dragThresholds are the choices offered for the drag distance.
var dragThresholds = []int{0, 4, 8, 12}

// Settings is what the settings modal edits.
type Settings struct {
	Theme         storage.Theme
	Rules         string
	DragThreshold int
	Sound         bool
	ShowMarkers   bool
	Flipped       bool
	StartFEN      string
}

// SettingsModal edits Settings. Saving hands them to a callback which may
// refuse them with an error; the modal then stays open showing it.
type SettingsModal struct {
	visible bool
	x, y    int

	themeBtns     *ButtonGroup
	rulesRadio    *RadioGroup
	thresholdBtns *ButtonGroup
	soundCheckbox *Checkbox
	markerCheck   *Checkbox
	flipCheck     *Checkbox
	fenInput      *TextInput
	saveBtn       *ModalButton
	cancelBtn     *ModalButton
	errText       string

	onSave func(Settings) error
}

// NewSettingsModal creates a hidden settings modal.
func NewSettingsModal() *SettingsModal {
	sm := &SettingsModal{
		x: (ScreenWidth - SettingsWidth) / 2,
		y: (ScreenHeight - SettingsHeight) / 2,
	}
	sm.createWidgets()
	return sm
}

func (sm *SettingsModal) createWidgets() {
	contentX := sm.x + SettingsPadX
	contentW := SettingsWidth - SettingsPadX*2

	themes := make([]string, len(storage.Themes))
	for i, t := range storage.Themes {
		themes[i] = strings.ToUpper(string(t[:1])) + string(t[1:])
	}
	sm.themeBtns = NewButtonGroup(contentX, sm.y+76, themes, 0, contentW/len(themes), 34)

	sm.rulesRadio = NewRadioGroup(contentX, sm.y+146, []RadioOption{
		{Label: "notnil/chess", Value: "notnil"},
		{Label: "dragontoothmg", Value: "dragontooth"},
	}, 0)

	labels := make([]string, len(dragThresholds))
	for i, px := range dragThresholds {
		labels[i] = strconv.Itoa(px) + " px"
	}
	sm.thresholdBtns = NewButtonGroup(contentX, sm.y+234, labels, 1, contentW/len(labels), 30)

	sm.soundCheckbox = NewCheckbox(contentX, sm.y+284, "Sound effects", true)
	sm.markerCheck = NewCheckbox(contentX, sm.y+314, "Mark legal destinations", true)
	sm.flipCheck = NewCheckbox(contentX, sm.y+344, "Black at the bottom", false)

	sm.fenInput = NewTextInput(contentX, sm.y+404, contentW, 34, "Standard starting position", 100)

	btnW, btnH := 100, 38
	btnY := sm.y + SettingsHeight - SettingsPadY - btnH
	sm.cancelBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW*2-12, btnY, btnW, btnH, "Cancel", false, nil)
	sm.saveBtn = NewModalButton(sm.x+SettingsWidth-SettingsPadX-btnW, btnY, btnW, btnH, "Save", true, nil)
}

// Show opens the modal on s.
func (sm *SettingsModal) Show(s Settings, onSave func(Settings) error) {
	sm.visible = true
	sm.onSave = onSave
	sm.errText = ""

	sm.themeBtns.Selected = max(slices.Index(storage.Themes, s.Theme), 0)
	sm.rulesRadio.Select(s.Rules)
	sm.thresholdBtns.Selected = nearestThreshold(s.DragThreshold)
	sm.soundCheckbox.Checked = s.Sound
	sm.markerCheck.Checked = s.ShowMarkers
	sm.flipCheck.Checked = s.Flipped
	sm.fenInput.Value = s.StartFEN

	sm.saveBtn.OnClick = sm.handleSave
	sm.cancelBtn.OnClick = sm.Hide
}

func nearestThreshold(px int) int {
	best := 0
	for i, t := range dragThresholds {
		if abs(t-px) < abs(dragThresholds[best]-px) {
			best = i
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Hide closes the modal.
func (sm *SettingsModal) Hide() {
	sm.visible = false
	sm.fenInput.SetFocused(false)
}

// IsVisible returns true while the modal is open.
func (sm *SettingsModal) IsVisible() bool {
	return sm.visible
}

// settings reads the widgets.
func (sm *SettingsModal) settings() Settings {
	return Settings{
		Theme:         storage.Themes[sm.themeBtns.Selected],
		Rules:         sm.rulesRadio.Value(),
		DragThreshold: dragThresholds[sm.thresholdBtns.Selected],
		Sound:         sm.soundCheckbox.Checked,
		ShowMarkers:   sm.markerCheck.Checked,
		Flipped:       sm.flipCheck.Checked,
		StartFEN:      strings.TrimSpace(sm.fenInput.Value),
	}
}

func (sm *SettingsModal) handleSave() {
	if sm.onSave != nil {
		if err := sm.onSave(sm.settings()); err != nil {
			sm.errText = err.Error()
			return
		}
	}
	sm.Hide()
}

// Update handles input. The modal consumes all input while open.
func (sm *SettingsModal) Update(input *InputHandler) bool {
	if !sm.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEscape) && !sm.fenInput.IsFocused() {
		sm.Hide()
		return true
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		sm.handleSave()
		return true
	}

	sm.themeBtns.Update(input)
	sm.rulesRadio.Update(input)
	sm.thresholdBtns.Update(input)
	sm.soundCheckbox.Update(input)
	sm.markerCheck.Update(input)
	sm.flipCheck.Update(input)
	sm.fenInput.Update(input)
	sm.saveBtn.Update(input)
	sm.cancelBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if a clickable widget is hovered.
func (sm *SettingsModal) AnyButtonHovered() bool {
	if !sm.visible {
		return false
	}
	return sm.saveBtn.IsHovered() || sm.cancelBtn.IsHovered() ||
		sm.themeBtns.hovered >= 0 || sm.thresholdBtns.hovered >= 0 || sm.rulesRadio.hovered >= 0 ||
		sm.soundCheckbox.hovered || sm.markerCheck.hovered || sm.flipCheck.hovered
}

// Draw renders the modal.
func (sm *SettingsModal) Draw(screen *ebiten.Image) {
	if !sm.visible {
		return
	}
	drawModalFrame(screen, sm.x, sm.y, SettingsWidth, SettingsHeight, "Settings")

	face := GetRegularFace()
	contentX := sm.x + SettingsPadX
	drawLabel(screen, "Board theme", face, contentX, sm.y+54, textMuted)
	drawLabel(screen, "Rules", face, contentX, sm.y+124, textMuted)
	drawLabel(screen, "Drag threshold", face, contentX, sm.y+212, textMuted)
	drawLabel(screen, "Start position (FEN, used by new games)", face, contentX, sm.y+382, textMuted)

	sm.themeBtns.Draw(screen)
	sm.rulesRadio.Draw(screen)
	sm.thresholdBtns.Draw(screen)
	sm.soundCheckbox.Draw(screen)
	sm.markerCheck.Draw(screen)
	sm.flipCheck.Draw(screen)
	sm.fenInput.Draw(screen)

	if sm.errText != "" {
		drawLabel(screen, sm.errText, face, contentX, sm.fenInput.Y+sm.fenInput.H+8, color.RGBA{235, 110, 110, 255})
	}

	sm.saveBtn.Draw(screen)
	sm.cancelBtn.Draw(screen)
}
