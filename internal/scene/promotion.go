package scene

import "github.com/hailam/chessdrop/internal/board"

// PromotionRequest describes a suspended promotion. It lives only until
// the matching result is handed to ResumePromotion.
type PromotionRequest struct {
	From, To board.Square
	Color    board.Color
	Options  []board.Kind // legal kinds, strongest first
	Anchor   Rect         // screen rectangle of the destination square
	Capture  bool
}

// PromotionResult is the outcome of the promotion dialog.
type PromotionResult struct {
	Request   PromotionRequest
	Kind      board.Kind
	Cancelled bool
}

// Choose returns the result selecting kind.
func (r PromotionRequest) Choose(kind board.Kind) PromotionResult {
	return PromotionResult{Request: r, Kind: kind}
}

// Cancel returns the result abandoning the move.
func (r PromotionRequest) Cancel() PromotionResult {
	return PromotionResult{Request: r, Cancelled: true}
}

// Presenter shows the promotion choice. The answer comes back later through
// Controller.ResumePromotion; PresentPromotion must not call it directly.
type Presenter interface {
	PresentPromotion(req PromotionRequest)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(req PromotionRequest)

// PresentPromotion calls f(req).
func (f PresenterFunc) PresentPromotion(req PromotionRequest) { f(req) }
