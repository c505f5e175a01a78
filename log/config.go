package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message. It widens the [slog.Level] scale
// downward with [LevelTrace] for the build pipeline's most verbose output.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug) - 4 // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the minimum level of new loggers.
const DefaultLevel = LevelInfo

// Levels returns an iterator over the names of all levels, most verbose
// first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for level := LevelTrace; level <= LevelError; level += 4 {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s, which is matched
// case-insensitively and may carry an integer offset such as "warn+2"
// (see [slog.Level.UnmarshalText]). Unrecognized input yields
// [DefaultLevel].
func ParseLevel(s string) Level {
	// slog's parser predates the trace level and rejects its name.
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(level)
}

// Format selects the encoding of log records.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the encoding of new loggers.
const DefaultFormat = FormatJSON

// Formats returns an iterator over the names of all formats, default first.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatJSON, FormatText} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, matched case-insensitively
// with surrounding whitespace ignored. Unrecognized input yields
// [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatText.String():
		return FormatText
	case FormatJSON.String():
		return FormatJSON
	default:
		return DefaultFormat
	}
}

// FormatTime renders a record timestamp. An empty result omits the
// timestamp from the record entirely.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the timestamp layout of new loggers.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether new loggers record call sites.
const DefaultCaller = false

// DefaultPretty reports whether new loggers colorize their output.
const DefaultPretty = true

// config is the complete state of a [Logger] apart from its handler.
// Copies made by fork get their own mutex so wrapped loggers never
// contend with their parent.
type config struct {
	mutex  *sync.RWMutex
	output io.Writer
	stamp  FormatTime
	level  Level
	format Format
	caller bool
	pretty bool
}

// newConfig returns a config with every default applied to it, then opts
// layered on top.
func newConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: new(sync.RWMutex)}

	return applyOptions(WithDefaults(w)(c), opts...)
}

// fork copies the config under a fresh mutex and applies opts to the copy
// before anything else can reference it.
func (c config) fork(opts ...Option) config {
	c.mutex = new(sync.RWMutex)

	return applyOptions(c, opts...)
}

// layouts maps spelled-out layout names, lowered and stripped of
// punctuation, to their [time] package constants. The entry for "none"
// disables timestamps.
var layouts = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"none":        "",

	"stampmilli": time.StampMilli,
	"milli":      time.StampMilli,
	"millis":     time.StampMilli,
	"ms":         time.StampMilli,

	"stampmicro": time.StampMicro,
	"micro":      time.StampMicro,
	"micros":     time.StampMicro,
	"us":         time.StampMicro,

	"stampnano": time.StampNano,
	"nano":      time.StampNano,
	"nanos":     time.StampNano,
	"ns":        time.StampNano,
}

// newTimeFormatter resolves layout against the named [layouts] and returns
// the formatter for it. Names are normalized before lookup, but a layout
// that resolves to no name is handed to [time.Time.Format] verbatim,
// whitespace and all. A blank layout disables timestamps.
func newTimeFormatter(layout string) FormatTime {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, strings.ToLower(layout))

	if name == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := layouts[name]; ok {
		layout = std
	}

	return func(t time.Time) string { return t.Format(layout) }
}
