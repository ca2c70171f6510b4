package ui

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
	"github.com/hailam/chessdrop/internal/scene"
)

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast is one notification.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager stacks a few short-lived notifications over the board.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show adds a toast, dropping the oldest beyond the stack limit.
func (tm *ToastManager) Show(message string, typ ToastType, d time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{Message: message, Type: typ, StartTime: time.Now(), Duration: d})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update drops expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

func toastColors(typ ToastType, alpha float64) (bg, fg color.RGBA) {
	a := func(v float64) uint8 { return uint8(v * alpha) }
	switch typ {
	case ToastWarning:
		return color.RGBA{180, 140, 20, a(220)}, color.RGBA{40, 30, 0, a(255)}
	case ToastError:
		return color.RGBA{180, 50, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	case ToastSuccess:
		return color.RGBA{50, 150, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	default:
		return color.RGBA{50, 100, 150, a(220)}, color.RGBA{255, 255, 255, a(255)}
	}
}

// Draw renders the toasts centered over the board, fading in and out.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	const fade = 0.2
	y := scaleD(24)
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		total := t.Duration.Seconds()
		alpha := 1.0
		if elapsed < fade {
			alpha = elapsed / fade
		} else if elapsed > total-fade {
			alpha = math.Max(0, (total-elapsed)/fade)
		}
		bg, fg := toastColors(t.Type, alpha)

		w, h := MeasureText(t.Message, face)
		pad := scaleD(12)
		boxW, boxH := w+pad*2, h+pad*2
		x := scaleD(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)
		drawLabel(screen, t.Message, face, int((x+pad)/UIScale), int((y+pad)/UIScale), fg)

		y += boxH + scaleD(8)
	}
}

// ShakeAnimation jiggles the piece on a square after a refused drop.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation briefly colors a square.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager runs shakes and flashes.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates an animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake shakes the piece on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8,
	})
}

// StartFlash flashes sq in c.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Clear stops every animation.
func (am *AnimationManager) Clear() {
	am.shakes, am.flashes = nil, nil
}

// Update drops finished animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the horizontal logical offset for the piece on sq.
func (am *AnimationManager) ShakeOffset(sq board.Square) float64 {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1 {
			return 0
		}
		// damped sine
		return s.Intensity * math.Exp(-5*progress) * math.Sin(40*progress)
	}
	return 0
}

// DrawFlashes renders the flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, l scene.Layout) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1 - progress))
		x, y, size := screenRect(l, f.Square)
		vector.DrawFilledRect(screen, x, y, size, size, c, false)
	}
}

// FeedbackManager turns controller events into toasts, animations and
// sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a feedback manager.
func NewFeedbackManager(sound bool) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(sound),
	}
}

// Update advances toasts and animations.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes and toasts.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, l scene.Layout) {
	fm.animations.DrawFlashes(screen, l)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager.
func (fm *FeedbackManager) Animations() *AnimationManager { return fm.animations }

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager { return fm.audio }

// Toast shows a message.
func (fm *FeedbackManager) Toast(message string, typ ToastType) {
	fm.toasts.Show(message, typ, 2*time.Second)
}

// OnEvent reacts to one controller event.
func (fm *FeedbackManager) OnEvent(ev scene.Event) {
	switch ev.Kind {
	case scene.EventMoved:
		if ev.Capture {
			fm.audio.Play(SoundCapture)
		} else {
			fm.audio.Play(SoundMove)
		}
	case scene.EventCastled:
		fm.audio.Play(SoundCastle)
	case scene.EventPromoted:
		fm.audio.Play(SoundPromote)
		fm.Toast(ev.SAN, ToastSuccess)
	case scene.EventPromotionCancelled:
		fm.audio.Play(SoundCancel)
	case scene.EventRejected:
		fm.Toast(rejectMessage(ev.Err), ToastWarning)
		fm.animations.StartShake(ev.From)
		if ev.To.IsValid() {
			fm.animations.StartFlash(ev.To, color.RGBA{255, 80, 80, 150})
		}
		fm.audio.Play(SoundInvalid)
	case scene.EventResynced:
		fm.Toast("Board resynchronised from position", ToastError)
	case scene.EventReset:
		fm.animations.Clear()
		fm.Toast("New game", ToastInfo)
	}
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, scene.ErrIllegalDestination):
		return "Illegal move"
	case errors.Is(err, scene.ErrAmbiguousMove):
		return "Move is ambiguous"
	case errors.Is(err, rules.ErrEngineRejected):
		return "Move refused"
	case err != nil:
		return fmt.Sprintf("Move failed: %v", err)
	}
	return "Invalid move"
}
