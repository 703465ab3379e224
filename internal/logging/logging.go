// Package logging sets up the process-wide slog logger and hands out
// component-tagged loggers for the storage backends, the dispatch layer and
// the server.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// level backs every handler; SetLevel changes it at runtime.
var level = new(slog.LevelVar)

// Init installs the global logger. level accepts debug, info, warn/warning
// and error (anything else means info); format is "json" or "text".
func Init(levelStr, format string) {
	level.Set(ParseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// ParseLevel maps a config-file level name to a slog level, defaulting to
// info for anything it does not recognize.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// SetLevel changes the global level at runtime.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// For returns a logger that tags every record with the component name.
// Records resolve against slog.Default() at call time, not at For() time, so
// package-level loggers pick up a handler swapped in later (Init after
// package init, or a test capture).
func For(component string) *slog.Logger {
	return slog.New(componentHandler(component))
}

// componentHandler defers to the current default handler per call and adds
// the component attribute.
type componentHandler string

func (c componentHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return slog.Default().Handler().Enabled(ctx, l)
}

func (c componentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("component", string(c)))
	return slog.Default().Handler().Handle(ctx, r)
}

func (c componentHandler) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c componentHandler) WithGroup(string) slog.Handler { return c }
