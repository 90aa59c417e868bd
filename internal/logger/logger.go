package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fightstation/backend/internal/config"
)

// Options controls the global logger.
type Options struct {
	Level      string
	JSON       bool
	Component  string
	WithSource bool
}

var (
	mu   sync.RWMutex
	base *slog.Logger
)

// InitFromConfig initializes the global logger from app config.
func InitFromConfig(c *config.Config) {
	if c == nil {
		Init(Options{})
		return
	}
	Init(Options{
		Level:      c.Log.Level,
		JSON:       strings.EqualFold(c.Log.Format, "json"),
		Component:  c.Log.Component,
		WithSource: c.Log.Source,
	})
}

// Init sets up the global logger. Safe to call more than once.
func Init(o Options) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(o.Level),
		AddSource: o.WithSource,
	}

	var handler slog.Handler
	if o.JSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	l := slog.New(handler)
	if o.Component != "" {
		l = l.With("component", o.Component)
	}

	mu.Lock()
	base = l
	mu.Unlock()
}

// L returns the global logger, initializing a default one if needed.
func L() *slog.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(Options{})
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Named returns a child logger tagged with a subsystem name.
func Named(name string) *slog.Logger { return L().With("subsystem", name) }

// With creates a child logger with additional attributes.
func With(args ...any) *slog.Logger { return L().With(args...) }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
