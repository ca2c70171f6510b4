// Package ui is the Ebitengine front end: it samples the mouse, feeds the
// board controller, and draws the board, pieces, dialogs and toasts.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/config"
	"github.com/hailam/chessdrop/internal/rules"
	"github.com/hailam/chessdrop/internal/scene"
	"github.com/hailam/chessdrop/internal/storage"
)

// UI Constants
const (
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	StatusHeight = 32
	ScreenWidth  = BoardSize
	ScreenHeight = BoardSize + StatusHeight
)

// UIScale is the HiDPI factor. Set by Game.Layout and read by everything
// that draws.
var UIScale = 1.0

func scaleF(v int) float32 { return float32(float64(v) * UIScale) }
func scaleD(v int) float64 { return float64(v) * UIScale }

// Game implements ebiten.Game on top of a scene.Controller.
type Game struct {
	controller *scene.Controller
	pointer    *scene.Pointer
	logger     *zap.Logger

	cfg     config.Config
	storage *storage.Storage // nil when preferences are not persisted
	prefs   *storage.UserPreferences

	renderer      *Renderer
	input         *InputHandler
	feedback      *FeedbackManager
	promotion     *PromotionDialog
	settingsModal *SettingsModal
	welcomeScreen *WelcomeScreen

	// a press consumed by a dialog; the board ignores it until release
	swallow bool

	lastFrom, lastTo board.Square
	scale            float64
}

// NewGame wires the front end to c. store may be nil.
func NewGame(c *scene.Controller, cfg config.Config, store *storage.Storage, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	if err := loadFonts(); err != nil {
		logger.Warn("fonts unavailable, text disabled", zap.Error(err))
	}
	renderer, err := NewRenderer(cfg.Theme)
	if err != nil {
		logger.Warn("some piece sprites failed to render", zap.Error(err))
	}

	g := &Game{
		controller:    c,
		pointer:       scene.NewPointer(c, float64(cfg.DragThreshold)),
		logger:        logger,
		cfg:           cfg,
		storage:       store,
		prefs:         storage.DefaultPreferences(),
		renderer:      renderer,
		input:         NewInputHandler(),
		feedback:      NewFeedbackManager(cfg.Sound),
		promotion:     NewPromotionDialog(renderer.Sprites()),
		settingsModal: NewSettingsModal(),
		welcomeScreen: NewWelcomeScreen(renderer.Sprites()),
		lastFrom:      board.NoSquare,
		lastTo:        board.NoSquare,
		scale:         1,
	}

	c.SetLayout(scene.Layout{SquareSize: SquareSize, Flipped: cfg.Flipped})
	c.SetShowMarkers(cfg.ShowMarkers)
	c.SetPresenter(g.promotion)
	c.Subscribe(g.onEvent)

	g.loadPreferences()
	g.checkFirstLaunch()
	return g
}

// Controller returns the board controller.
func (g *Game) Controller() *scene.Controller { return g.controller }

// loadPreferences keeps the stored record around so fields the config does
// not cover survive a save.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		return
	}
	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		g.logger.Warn("failed to load preferences", zap.Error(err))
		return
	}
	g.prefs = prefs
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	g.cfg.Preferences(g.prefs)
	g.prefs.LastPlayed = time.Now()
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		g.logger.Warn("failed to save preferences", zap.Error(err))
	}
}

func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		g.logger.Warn("failed to check first launch", zap.Error(err))
		return
	}
	if !first {
		return
	}
	g.welcomeScreen.Show(func() {
		if err := g.storage.MarkFirstLaunchComplete(); err != nil {
			g.logger.Warn("failed to mark first launch complete", zap.Error(err))
		}
		g.savePreferences()
	})
}

// onEvent tracks the last move and forwards the event to feedback.
func (g *Game) onEvent(ev scene.Event) {
	switch ev.Kind {
	case scene.EventMoved, scene.EventCastled, scene.EventPromoted, scene.EventResynced:
		g.lastFrom, g.lastTo = ev.From, ev.To
	case scene.EventReset:
		g.lastFrom, g.lastTo = board.NoSquare, board.NoSquare
	}
	g.feedback.OnEvent(ev)
}

// Update handles one frame of input.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	defer g.updateCursor()

	if g.input.IsLeftJustReleased() || !g.input.IsLeftPressed() {
		g.swallow = false
	}

	if g.welcomeScreen.Update(g.input) || g.settingsModal.Update(g.input) {
		g.consumePress()
		return nil
	}

	if g.promotion.IsVisible() {
		if res, ok := g.promotion.Update(g.input); ok {
			if err := g.controller.ResumePromotion(res); err != nil {
				g.logger.Warn("promotion not applied", zap.Error(err))
			}
		}
		g.consumePress()
		return nil
	}

	g.handleKeys()
	if g.swallow {
		return nil
	}
	if err := g.pointer.Update(g.input.IsLeftPressed(), g.input.Point()); err != nil {
		g.logger.Debug("gesture refused", zap.Error(err))
	}
	return nil
}

// consumePress keeps a press that landed on a dialog from reaching the
// board once the dialog closes.
func (g *Game) consumePress() {
	if g.input.IsLeftPressed() {
		g.swallow = true
	}
}

func (g *Game) handleKeys() {
	switch {
	case IsKeyJustPressed(ebiten.KeyEscape):
		if err := g.pointer.Cancel(); err != nil {
			g.logger.Debug("cancel drag", zap.Error(err))
		}
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.setFlipped(!g.cfg.Flipped)
		g.savePreferences()
	case IsKeyJustPressed(ebiten.KeyS):
		g.ShowSettings()
	}
}

// NewGameAction starts over from the configured position.
func (g *Game) NewGameAction() {
	e, err := rules.New(g.cfg.Rules, g.cfg.StartFEN)
	if err != nil {
		g.logger.Error("cannot start new game", zap.Error(err))
		g.feedback.Toast("Cannot start: "+err.Error(), ToastError)
		return
	}
	g.pointer.Cancel()
	g.promotion.Hide()
	g.controller.Reset(e)
}

func (g *Game) setFlipped(flipped bool) {
	g.cfg.Flipped = flipped
	l := g.controller.Layout()
	l.Flipped = flipped
	g.controller.SetLayout(l)
	if req, ok := g.controller.Pending(); ok {
		req.Anchor = l.SquareRect(req.To)
		g.promotion.PresentPromotion(req)
	}
}

// ShowSettings opens the settings modal.
func (g *Game) ShowSettings() {
	s := Settings{
		Theme:         g.cfg.Theme,
		Rules:         g.cfg.Rules,
		DragThreshold: g.cfg.DragThreshold,
		Sound:         g.cfg.Sound,
		ShowMarkers:   g.cfg.ShowMarkers,
		Flipped:       g.cfg.Flipped,
	}
	if g.cfg.StartFEN != board.StartFEN {
		s.StartFEN = g.cfg.StartFEN
	}
	g.pointer.Cancel()
	g.settingsModal.Show(s, g.applySettings)
}

// applySettings validates and applies s. A new rules backend or starting
// position starts a new game.
func (g *Game) applySettings(s Settings) error {
	next := g.cfg
	next.Theme = s.Theme
	next.Rules = s.Rules
	next.DragThreshold = s.DragThreshold
	next.Sound = s.Sound
	next.ShowMarkers = s.ShowMarkers
	next.StartFEN = s.StartFEN
	if next.StartFEN == "" {
		next.StartFEN = board.StartFEN
	}
	if err := next.Validate(); err != nil {
		return err
	}

	restart := next.Rules != g.cfg.Rules || next.StartFEN != g.cfg.StartFEN
	g.cfg = next

	g.renderer.SetTheme(next.Theme)
	g.feedback.Audio().SetEnabled(next.Sound)
	g.controller.SetShowMarkers(next.ShowMarkers)
	g.pointer.SetThreshold(float64(next.DragThreshold))
	if s.Flipped != g.cfg.Flipped {
		g.setFlipped(s.Flipped)
	}
	g.savePreferences()

	g.logger.Info("settings applied",
		zap.String("theme", string(next.Theme)),
		zap.String("rules", next.Rules),
		zap.Bool("restart", restart))
	if restart {
		g.NewGameAction()
	}
	return nil
}

func (g *Game) updateCursor() {
	hovered := false
	switch {
	case g.welcomeScreen.IsVisible():
		hovered = g.welcomeScreen.AnyButtonHovered()
	case g.settingsModal.IsVisible():
		hovered = g.settingsModal.AnyButtonHovered()
	case g.promotion.IsVisible():
		hovered = g.promotion.AnyButtonHovered()
	default:
		sq := g.controller.Layout().SquareAt(g.input.Point())
		hovered = g.pointer.Dragging() || (sq.IsValid() && g.controller.Board().PieceAt(sq) != nil)
	}
	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen, g.controller, g.lastFrom, g.lastTo)
	g.renderer.DrawPieces(screen, g.controller, g.feedback.Animations())
	g.drawStatusBar(screen)
	g.feedback.Draw(screen, g.controller.Layout())

	g.promotion.Draw(screen)
	g.settingsModal.Draw(screen)
	g.welcomeScreen.Draw(screen)
}

func (g *Game) drawStatusBar(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, scaleF(BoardSize), scaleF(ScreenWidth), scaleF(StatusHeight), chromeBg, false)
	face := GetRegularFace()
	_, h := MeasureText("Mg", face)
	y := BoardSize + StatusHeight/2 - int(h/2/UIScale)

	status := sideToMove(g.controller.Position()) + " to move"
	if g.controller.State() == scene.AwaitingPromotion {
		status = "Choose a promotion piece"
	}
	if san := g.controller.LastSAN(); san != "" {
		status = fmt.Sprintf("%s   ·   last: %s", status, san)
	}
	drawLabel(screen, status, face, 12, y, textPrimary)

	hint := "N new   F flip   S settings"
	w, _ := MeasureText(hint, face)
	drawLabel(screen, hint, face, ScreenWidth-12-int(w/UIScale), y, textSecondary)
}

func sideToMove(fen string) string {
	if f := strings.Fields(fen); len(f) > 1 && f[1] == "b" {
		return board.Black.String()
	}
	return board.White.String()
}

// Layout returns the screen size in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = max(ebiten.Monitor().DeviceScaleFactor(), 1.0)
	UIScale = g.scale
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// Close saves preferences. The caller owns the storage.
func (g *Game) Close() {
	g.savePreferences()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("chessdrop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.Close()
	return ebiten.RunGame(g)
}
