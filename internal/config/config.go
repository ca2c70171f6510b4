// Package config resolves runtime settings: built-in defaults, overridden by
// stored preferences, overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hailam/chessdrop/internal/board"
	"github.com/hailam/chessdrop/internal/rules"
	"github.com/hailam/chessdrop/internal/storage"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings.
type Config struct {
	StartFEN      string
	Rules         string
	Theme         storage.Theme
	DragThreshold int
	InspectAddr   string // empty disables the inspection server
	DataDir       string // empty means the platform data directory
	Ephemeral     bool   // keep preferences in memory only
	Sound         bool
	ShowMarkers   bool
	Flipped       bool
	LogLevel      string

	// flags given explicitly on the command line
	set map[string]bool
}

// Default returns the built-in settings.
func Default() Config {
	prefs := storage.DefaultPreferences()
	return Config{
		StartFEN:      board.StartFEN,
		Rules:         prefs.Rules,
		Theme:         prefs.Theme,
		DragThreshold: prefs.DragThreshold,
		Sound:         prefs.SoundEnabled,
		ShowMarkers:   prefs.ShowMarkers,
		LogLevel:      "info",
	}
}

// Parse applies command-line flags over Default. Usage errors go to out.
func Parse(args []string, out io.Writer) (Config, error) {
	cfg := Default()
	var theme string

	fs := flag.NewFlagSet("chessdrop", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&cfg.StartFEN, "fen", cfg.StartFEN, "starting position")
	fs.StringVar(&cfg.Rules, "rules", cfg.Rules, fmt.Sprintf("rules backend %v", rules.Backends))
	fs.StringVar(&theme, "theme", string(cfg.Theme), fmt.Sprintf("board theme %v", storage.Themes))
	fs.IntVar(&cfg.DragThreshold, "drag-threshold", cfg.DragThreshold, "pixels the pointer travels before a press becomes a drag")
	fs.StringVar(&cfg.InspectAddr, "inspect", cfg.InspectAddr, "listen address of the read-only inspection server (e.g. :8080)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "preferences directory")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "do not persist preferences")
	fs.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play move sounds")
	fs.BoolVar(&cfg.ShowMarkers, "markers", cfg.ShowMarkers, "mark legal destinations while dragging")
	fs.BoolVar(&cfg.Flipped, "flip", cfg.Flipped, "draw the board from black's side")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Theme = storage.Theme(theme)

	cfg.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })
	return cfg, nil
}

// ApplyPreferences fills in stored preferences for every setting not given
// on the command line.
func (c *Config) ApplyPreferences(p *storage.UserPreferences) {
	if p == nil {
		return
	}
	if !c.set["rules"] && p.Rules != "" {
		c.Rules = p.Rules
	}
	if !c.set["theme"] && p.Theme != "" {
		c.Theme = p.Theme
	}
	if !c.set["drag-threshold"] && p.DragThreshold > 0 {
		c.DragThreshold = p.DragThreshold
	}
	if !c.set["sound"] {
		c.Sound = p.SoundEnabled
	}
	if !c.set["markers"] {
		c.ShowMarkers = p.ShowMarkers
	}
	if !c.set["flip"] {
		c.Flipped = p.Flipped
	}
}

// Preferences copies the persistable settings into p.
func (c Config) Preferences(p *storage.UserPreferences) {
	p.Rules = c.Rules
	p.Theme = c.Theme
	p.DragThreshold = c.DragThreshold
	p.SoundEnabled = c.Sound
	p.ShowMarkers = c.ShowMarkers
	p.Flipped = c.Flipped
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !slices.Contains(rules.Backends, c.Rules) {
		return fmt.Errorf("%w: unknown rules backend %q", ErrInvalid, c.Rules)
	}
	if _, err := rules.New(c.Rules, c.StartFEN); err != nil {
		return fmt.Errorf("%w: starting position: %w", ErrInvalid, err)
	}
	if !slices.Contains(storage.Themes, c.Theme) {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Theme)
	}
	if c.DragThreshold < 0 || c.DragThreshold > 64 {
		return fmt.Errorf("%w: drag threshold %d out of range 0-64", ErrInvalid, c.DragThreshold)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// NewLogger builds the process logger. Debug level gets the development
// encoder; everything else the production one.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
