package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// handler builds the [slog.Handler] the config describes, with opts
// applied as overrides that do not survive in the config itself. A config
// that never saw [WithDefaults] still yields a working handler.
func (c config) handler(opts ...Option) slog.Handler {
	cfg := applyOptions(c, opts...)

	if cfg.output == nil {
		cfg.output = io.Discard
	}

	if cfg.stamp == nil {
		cfg.stamp = newTimeFormatter(DefaultTimeLayout)
	}

	hopts := &slog.HandlerOptions{
		AddSource:   cfg.caller,
		Level:       slog.Level(cfg.level),
		ReplaceAttr: cfg.rewriteAttr,
	}

	switch {
	case cfg.pretty && cfg.format == FormatText:
		return newColorTextHandler(cfg.output, hopts, cfg.stamp)

	case cfg.pretty && cfg.format == FormatJSON:
		return newColorJSONHandler(cfg.output, hopts, cfg.stamp)

	case cfg.format == FormatText:
		return slog.NewTextHandler(cfg.output, hopts)

	case cfg.format == FormatJSON:
		return slog.NewJSONHandler(cfg.output, hopts)

	default:
		return slog.DiscardHandler
	}
}

// rewriteAttr renders timestamps with the configured layout, dropping the
// attribute outright when the layout is disabled, and names levels itself
// so that trace prints as "TRACE" rather than slog's "DEBUG-4".
func (c config) rewriteAttr(groups []string, a slog.Attr) slog.Attr {
	// Grouped attrs are user data even when they share a builtin key.
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			stamped := c.stamp(t)
			if stamped == "" {
				return slog.Attr{}
			}

			a.Value = slog.StringValue(stamped)
		}

	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(level))
		}
	}

	return a
}

// levelName spells out a level the way records print it.
func levelName(level slog.Level) string {
	return strings.ToUpper(Level(level).String())
}
