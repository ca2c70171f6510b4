package inspect

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/svgart"
)

// MessageType tags websocket messages.
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeError    MessageType = "error"
)

// Message is one websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Server serves the hub's snapshots.
type Server struct {
	app    *fiber.App
	hub    *Hub
	logger *zap.Logger
}

// NewServer wires the routes:
//
//	GET /api/position  latest snapshot as JSON
//	GET /board.svg     latest position as an SVG image (?flip=true&size=N)
//	GET /ws            websocket stream of snapshots
func NewServer(hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "chessdrop",
			DisableStartupMessage: true,
		}),
		hub:    hub,
		logger: logger.Named("inspect"),
	}

	s.app.Get("/api/position", s.position)
	s.app.Get("/board.svg", s.boardSVG)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws", websocket.New(s.stream))

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("inspection server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) position(c *fiber.Ctx) error {
	return c.JSON(s.hub.Latest())
}

func (s *Server) boardSVG(c *fiber.Ctx) error {
	snap := s.hub.Latest()

	opts := svgart.DefaultBoardOptions()
	opts.Flipped = c.QueryBool("flip", false)
	opts.Size = c.QueryInt("size", opts.Size)
	if opts.Size <= 0 || opts.Size > 4096 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "size must be between 1 and 4096",
		})
	}

	var buf bytes.Buffer
	if err := svgart.Board(&buf, board.NewFromFEN(snap.FEN), opts); err != nil {
		s.logger.Warn("failed to render board", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render board",
		})
	}
	c.Type("svg")
	return c.Send(buf.Bytes())
}

// stream pushes the latest snapshot and then every new one. Incoming
// frames are answered with an error; the feed is read-only.
func (s *Server) stream(conn *websocket.Conn) {
	updates, cancel := s.hub.Subscribe()
	defer cancel()

	incoming := make(chan struct{}, 1)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			select {
			case incoming <- struct{}{}:
			default:
			}
		}
	}()

	if err := s.send(conn, MessageTypeSnapshot, s.hub.Latest()); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-incoming:
			if err := s.send(conn, MessageTypeError, "read-only feed"); err != nil {
				return
			}
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := s.send(conn, MessageTypeSnapshot, snap); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(conn *websocket.Conn, typ MessageType, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(Message{Type: typ, Payload: data}); err != nil {
		s.logger.Debug("websocket write failed", zap.Error(err))
		return err
	}
	return nil
}
