// Package scene turns pointer gestures on a chessboard into engine moves.
//
// A Controller owns the per-square visual state (tint, drop zone, marker,
// border) and sprite positions, routes drag gestures, and hands drops to a
// Resolver which consults the rules engine and updates the board. Promotion
// suspends the controller until ResumePromotion is called with the
// dialog's answer.
//
// Everything runs on the caller's goroutine; the controller is not safe for
// concurrent use.
package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
)

var (
	// ErrSuspended is returned for gestures while a promotion is pending.
	ErrSuspended = errors.New("awaiting promotion choice")

	// ErrNoPromotion is returned by ResumePromotion when nothing is pending
	// or the result answers a different request.
	ErrNoPromotion = errors.New("no matching promotion pending")
)

// State is the controller's interaction state.
type State uint8

const (
	Idle State = iota
	Armed
	AwaitingPromotion
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case AwaitingPromotion:
		return "awaiting-promotion"
	default:
		return "idle"
	}
}

// SquareView is the visual state of one square.
type SquareView struct {
	Tint     bool // drag origin
	DropZone bool // accepts the dragged piece
	Marker   bool // legal destination dot
	Border   bool // pointer hovering an active drop zone
}

// Options configures a Controller.
type Options struct {
	Layout      Layout
	Presenter   Presenter
	Logger      *zap.Logger
	HideMarkers bool
}

type dragState struct {
	piece *board.Piece
	from  board.Square
	start Point
}

// Controller routes drag gestures and keeps sprites in step with the board.
type Controller struct {
	board     *board.Board
	engine    rules.Engine
	resolver  *Resolver
	layout    Layout
	presenter Presenter
	logger    *zap.Logger
	markers   bool

	state   State
	views   [board.NumSquares]SquareView
	sprites map[uuid.UUID]Point
	drag    dragState
	pending *PromotionRequest
	lastSAN string

	observers []func(Event)
}

// NewController creates a controller for b, backed by e. The board should
// hold e's position.
func NewController(b *board.Board, e rules.Engine, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	layout := opts.Layout
	if layout.SquareSize <= 0 {
		layout = DefaultLayout
	}
	c := &Controller{
		board:     b,
		engine:    e,
		resolver:  NewResolver(e),
		layout:    layout,
		presenter: opts.Presenter,
		logger:    logger.Named("scene"),
		markers:   !opts.HideMarkers,
		sprites:   make(map[uuid.UUID]Point),
	}
	c.syncSprites()
	return c
}

// Board returns the board model.
func (c *Controller) Board() *board.Board { return c.board }

// Position returns the authoritative FEN.
func (c *Controller) Position() string { return c.board.Position() }

// State returns the interaction state.
func (c *Controller) State() State { return c.state }

// LastSAN returns the last move played, or "".
func (c *Controller) LastSAN() string { return c.lastSAN }

// Layout returns the screen layout.
func (c *Controller) Layout() Layout { return c.layout }

// SetLayout changes the screen layout and snaps resting sprites to it.
func (c *Controller) SetLayout(l Layout) {
	if l.SquareSize <= 0 {
		return
	}
	c.layout = l
	c.syncSprites()
	if c.state == Armed {
		c.drag.start = c.layout.Center(c.drag.from)
		c.sprites[c.drag.piece.ID] = c.drag.start
	}
}

// SetPresenter installs the promotion dialog.
func (c *Controller) SetPresenter(p Presenter) { c.presenter = p }

// SetShowMarkers toggles legal destination markers for later drags.
func (c *Controller) SetShowMarkers(show bool) { c.markers = show }

// View returns the visual state of sq.
func (c *Controller) View(sq board.Square) SquareView {
	if !sq.IsValid() {
		return SquareView{}
	}
	return c.views[sq]
}

// SpritePos returns where the sprite of p is drawn.
func (c *Controller) SpritePos(p *board.Piece) (Point, bool) {
	if p == nil {
		return Point{}, false
	}
	pos, ok := c.sprites[p.ID]
	return pos, ok
}

// Dragged returns the piece being dragged, or nil.
func (c *Controller) Dragged() *board.Piece {
	if c.state != Armed {
		return nil
	}
	return c.drag.piece
}

// Pending returns the suspended promotion, if any.
func (c *Controller) Pending() (PromotionRequest, bool) {
	if c.pending == nil {
		return PromotionRequest{}, false
	}
	return *c.pending, true
}

// Subscribe registers fn to receive events. Events are delivered
// synchronously after the state change they describe.
func (c *Controller) Subscribe(fn func(Event)) {
	c.observers = append(c.observers, fn)
}

func (c *Controller) emit(ev Event) {
	ev.FEN = c.board.Position()
	for _, fn := range c.observers {
		fn(ev)
	}
}

// DragStart picks up the piece on sq. The origin is tinted and every legal
// destination becomes a drop zone.
func (c *Controller) DragStart(sq board.Square) error {
	if c.state == AwaitingPromotion {
		return ErrSuspended
	}
	if c.state == Armed {
		c.cancelDrag()
	}
	p := c.board.PieceAt(sq)
	if p == nil {
		return fmt.Errorf("drag %s: %w", sq, board.ErrEmptySquare)
	}

	c.state = Armed
	c.drag = dragState{piece: p, from: sq, start: c.spriteOrCenter(p)}
	c.views[sq].Tint = true

	targets := rules.Targets(c.engine, sq)
	for to := range targets {
		c.views[to].DropZone = true
		c.views[to].Marker = c.markers
	}

	c.logger.Debug("drag start",
		zap.Stringer("piece", p),
		zap.Int("targets", len(targets)))
	return nil
}

// DragMove follows the pointer, clamped to the board per axis.
func (c *Controller) DragMove(pos Point) error {
	switch c.state {
	case AwaitingPromotion:
		return ErrSuspended
	case Idle:
		return nil
	}
	id := c.drag.piece.ID
	c.sprites[id] = c.layout.Clamp(c.sprites[id], pos)
	return nil
}

// DragEnter highlights sq if it is an active drop zone.
func (c *Controller) DragEnter(sq board.Square) error {
	return c.hover(sq, true)
}

// DragLeave clears the highlight on sq if it is an active drop zone.
func (c *Controller) DragLeave(sq board.Square) error {
	return c.hover(sq, false)
}

func (c *Controller) hover(sq board.Square, on bool) error {
	if c.state == AwaitingPromotion {
		return ErrSuspended
	}
	if !sq.IsValid() || !c.views[sq].DropZone {
		return nil
	}
	c.views[sq].Border = on
	return nil
}

// DragEnd ends a drag that was not dropped on a square. The sprite and
// origin tint revert; the board is untouched.
func (c *Controller) DragEnd() error {
	if c.state == AwaitingPromotion {
		return ErrSuspended
	}
	if c.state == Armed {
		c.cancelDrag()
	}
	return nil
}

// Drop releases the dragged piece on sq. Drops outside the drop zones act
// like DragEnd. A promotion suspends the controller and returns nil.
func (c *Controller) Drop(sq board.Square) error {
	switch c.state {
	case AwaitingPromotion:
		return ErrSuspended
	case Idle:
		return nil
	}
	if !sq.IsValid() || !c.views[sq].DropZone {
		c.logger.Debug("drop outside drop zones", zap.Stringer("square", sq))
		c.cancelDrag()
		return nil
	}

	drag := c.drag
	c.clearViews()
	c.state = Idle

	plan, err := c.resolver.Resolve(c.board, drag.from, sq)
	if err != nil {
		c.sprites[drag.piece.ID] = drag.start
		c.logger.Warn("drop not resolved", zap.Error(err))
		c.emit(Event{Kind: EventRejected, From: drag.from, To: sq, Color: drag.piece.Color, Piece: drag.piece.Kind, Err: err})
		return err
	}

	if plan.Kind == PlanPromotion {
		c.suspend(plan, drag)
		return nil
	}

	if err := c.resolver.Commit(c.board, plan); err != nil {
		return c.commitFailed(err, drag, plan.From, plan.To)
	}
	c.syncSprites()
	c.lastSAN = plan.SAN

	kind := EventMoved
	if plan.Kind == PlanCastle {
		kind = EventCastled
	}
	c.logger.Info("move",
		zap.String("san", plan.SAN),
		zap.Stringer("plan", plan.Kind),
		zap.String("fen", c.board.Position()))
	c.emit(Event{
		Kind:    kind,
		SAN:     plan.SAN,
		From:    plan.From,
		To:      plan.To,
		Color:   plan.Piece.Color,
		Piece:   plan.Piece.Kind,
		Capture: plan.Capture,
	})
	return nil
}

func (c *Controller) suspend(plan Plan, drag dragState) {
	req := PromotionRequest{
		From:    plan.From,
		To:      plan.To,
		Color:   plan.Piece.Color,
		Options: plan.Options,
		Anchor:  c.layout.SquareRect(plan.To),
		Capture: plan.Capture,
	}
	c.state = AwaitingPromotion
	c.pending = &req
	c.sprites[drag.piece.ID] = drag.start

	c.logger.Debug("promotion pending",
		zap.Stringer("from", req.From),
		zap.Stringer("to", req.To))
	c.emit(Event{Kind: EventPromotionRequested, From: req.From, To: req.To, Color: req.Color, Piece: board.Pawn, Capture: req.Capture})
	if c.presenter != nil {
		c.presenter.PresentPromotion(req)
	}
}

// ResumePromotion finishes or abandons the pending promotion. A cancelled
// result leaves board and position exactly as before the drop.
func (c *Controller) ResumePromotion(res PromotionResult) error {
	if c.state != AwaitingPromotion || c.pending == nil {
		return ErrNoPromotion
	}
	req := *c.pending
	if res.Request.From != req.From || res.Request.To != req.To {
		return fmt.Errorf("%w: got %s-%s, pending %s-%s", ErrNoPromotion,
			res.Request.From, res.Request.To, req.From, req.To)
	}
	if !res.Cancelled && !isPromotionKind(res.Kind) {
		return fmt.Errorf("%w: %v", ErrInvalidPromotion, res.Kind)
	}

	c.state = Idle
	c.pending = nil

	if res.Cancelled {
		c.logger.Debug("promotion cancelled", zap.Stringer("to", req.To))
		c.emit(Event{Kind: EventPromotionCancelled, From: req.From, To: req.To, Color: req.Color, Piece: board.Pawn})
		return nil
	}

	piece, san, err := c.resolver.Promote(c.board, req.From, req.To, res.Kind)
	if err != nil {
		return c.commitFailed(err, dragState{}, req.From, req.To)
	}
	c.syncSprites()
	c.lastSAN = san

	c.logger.Info("promotion",
		zap.String("san", san),
		zap.Stringer("piece", piece),
		zap.String("fen", c.board.Position()))
	c.emit(Event{
		Kind:      EventPromoted,
		SAN:       san,
		From:      req.From,
		To:        req.To,
		Color:     req.Color,
		Piece:     board.Pawn,
		Promotion: res.Kind,
		Capture:   req.Capture,
	})
	return nil
}

// commitFailed handles an engine refusal or a board resync after a move.
func (c *Controller) commitFailed(err error, drag dragState, from, to board.Square) error {
	if errors.Is(err, board.ErrOutOfSync) {
		// The board was rebuilt from the engine's position; the move happened.
		c.syncSprites()
		c.logger.Error("board resynced from position", zap.Error(err))
		c.emit(Event{Kind: EventResynced, From: from, To: to, Err: err})
		return err
	}
	if drag.piece != nil {
		c.sprites[drag.piece.ID] = drag.start
	}
	c.logger.Error("engine refused move", zap.Error(err))
	c.emit(Event{Kind: EventRejected, From: from, To: to, Err: err})
	return err
}

// Reset abandons any drag or pending promotion and loads the position of e,
// which becomes the controller's engine.
func (c *Controller) Reset(e rules.Engine) {
	c.clearViews()
	c.state = Idle
	c.drag = dragState{}
	c.pending = nil
	c.lastSAN = ""

	c.engine = e
	c.resolver = NewResolver(e)
	c.board.Clear()
	c.board.Load(e.FEN())
	c.board.SetPosition(e.FEN())
	c.syncSprites()

	c.logger.Info("reset", zap.String("fen", e.FEN()))
	c.emit(Event{Kind: EventReset})
}

func (c *Controller) cancelDrag() {
	if c.drag.piece != nil {
		c.sprites[c.drag.piece.ID] = c.drag.start
	}
	c.clearViews()
	c.drag = dragState{}
	c.state = Idle
}

func (c *Controller) clearViews() {
	c.views = [board.NumSquares]SquareView{}
}

func (c *Controller) spriteOrCenter(p *board.Piece) Point {
	if pos, ok := c.sprites[p.ID]; ok {
		return pos
	}
	return c.layout.Center(p.Square)
}

// syncSprites snaps every live piece to its square and forgets the rest.
func (c *Controller) syncSprites() {
	live := make(map[uuid.UUID]Point, len(c.sprites))
	for _, p := range c.board.Pieces() {
		live[p.ID] = c.layout.Center(p.Square)
	}
	c.sprites = live
}
