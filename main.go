// ChessDrop - a drag-and-drop chessboard built with Ebitengine
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/config"
	"github.com/hailam/chessdrop/internal/inspect"
	"github.com/hailam/chessdrop/internal/rules"
	"github.com/hailam/chessdrop/internal/scene"
	"github.com/hailam/chessdrop/internal/storage"
	"github.com/hailam/chessdrop/internal/ui"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("chessdrop stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	store := openStorage(cfg, logger)
	if store != nil {
		defer store.Close()
		if prefs, err := store.LoadPreferences(); err != nil {
			logger.Warn("failed to load preferences", zap.Error(err))
		} else {
			cfg.ApplyPreferences(prefs)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e, err := rules.New(cfg.Rules, cfg.StartFEN)
	if err != nil {
		return err
	}
	c := scene.NewController(board.NewFromFEN(e.FEN()), e, scene.Options{Logger: logger})

	if cfg.InspectAddr != "" {
		hub := inspect.NewHub(logger)
		hub.Observe(c)
		srv := inspect.NewServer(hub, logger)
		go func() {
			if err := srv.Listen(cfg.InspectAddr); err != nil {
				logger.Error("inspection server stopped", zap.Error(err))
			}
		}()
		defer srv.Shutdown()
		logger.Info("inspection server listening", zap.String("addr", cfg.InspectAddr))
	}

	logger.Info("starting",
		zap.String("rules", cfg.Rules),
		zap.String("fen", cfg.StartFEN),
		zap.Int("drag_threshold", cfg.DragThreshold))
	return ui.Run(ui.NewGame(c, cfg, store, logger))
}

// openStorage opens the preferences database. A failure is logged and the
// game runs without persistence.
func openStorage(cfg config.Config, logger *zap.Logger) *storage.Storage {
	var (
		store *storage.Storage
		err   error
	)
	switch {
	case cfg.Ephemeral:
		store, err = storage.OpenInMemory(logger)
	case cfg.DataDir != "":
		var dir string
		if dir, err = storage.DatabaseDirIn(cfg.DataDir); err == nil {
			store, err = storage.Open(dir, logger)
		}
	default:
		store, err = storage.NewStorage(logger)
	}
	if err != nil {
		logger.Warn("preferences will not be saved", zap.Error(err))
		return nil
	}
	return store
}
