package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessdrop/internal/board"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 400
	WelcomeHeight = 360
	WelcomePadX   = 32
	WelcomePadY   = 24
)

var welcomeLines = []string{
	"Drag a piece to move it.",
	"Legal squares are marked while you drag.",
	"",
	"N  new game        F  flip board",
	"S  settings        Esc  drop the piece",
}

// WelcomeScreen is shown on first launch.
type WelcomeScreen struct {
	visible  bool
	x, y     int
	sprites  *SpriteManager
	startBtn *ModalButton

	onComplete func()
}

// NewWelcomeScreen creates a hidden welcome screen.
func NewWelcomeScreen(sprites *SpriteManager) *WelcomeScreen {
	ws := &WelcomeScreen{
		x:       (ScreenWidth - WelcomeWidth) / 2,
		y:       (ScreenHeight - WelcomeHeight) / 2,
		sprites: sprites,
	}
	btnW, btnH := 160, 44
	ws.startBtn = NewModalButton(ws.x+(WelcomeWidth-btnW)/2, ws.y+WelcomeHeight-WelcomePadY-btnH,
		btnW, btnH, "Start Playing", true, nil)
	return ws
}

// Show opens the screen; onComplete runs when it is dismissed.
func (ws *WelcomeScreen) Show(onComplete func()) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.startBtn.OnClick = ws.handleStart
}

// IsVisible returns true while the screen is open.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

func (ws *WelcomeScreen) handleStart() {
	ws.visible = false
	if ws.onComplete != nil {
		ws.onComplete()
	}
}

// Update handles input; the screen consumes all of it.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEnter) || IsKeyJustPressed(ebiten.KeyEscape) {
		ws.handleStart()
		return true
	}
	ws.startBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if the start button is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	return ws.visible && ws.startBtn.IsHovered()
}

// Draw renders the screen.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image) {
	if !ws.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, scaleF(ScreenWidth), scaleF(ScreenHeight), modalOverlay, false)
	vector.DrawFilledRect(screen, scaleF(ws.x), scaleF(ws.y), scaleF(WelcomeWidth), scaleF(WelcomeHeight), modalBg, false)
	vector.StrokeRect(screen, scaleF(ws.x), scaleF(ws.y), scaleF(WelcomeWidth), scaleF(WelcomeHeight), float32(UIScale*2), modalBorder, false)

	cx := ws.x + WelcomeWidth/2
	if ws.sprites != nil {
		ws.sprites.DrawCentered(screen, board.White, board.Knight, scaleD(cx-40), scaleD(ws.y+48), 1)
		ws.sprites.DrawCentered(screen, board.Black, board.Knight, scaleD(cx+40), scaleD(ws.y+48), 1)
	}
	drawCentered(screen, "CHESSDROP", GetFaceWithSize(24), cx, ws.y+108, textPrimary)

	face := GetRegularFace()
	y := ws.y + 150
	for _, line := range welcomeLines {
		drawCentered(screen, line, face, cx, y, textSecondary)
		y += 24
	}

	ws.startBtn.Draw(screen)
}
