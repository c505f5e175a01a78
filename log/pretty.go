package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ansi is an ANSI terminal escape sequence.
type ansi string

const (
	ansiReset   ansi = "\033[0m"
	ansiGray    ansi = "\033[90m"
	ansiRed     ansi = "\033[31m"
	ansiGreen   ansi = "\033[32m"
	ansiYellow  ansi = "\033[33m"
	ansiBlue    ansi = "\033[34m"
	ansiMagenta ansi = "\033[35m"
	ansiCyan    ansi = "\033[36m"
)

// tint writes s wrapped in color and its reset.
func tint(buf *bytes.Buffer, color ansi, s string) {
	buf.WriteString(string(color))
	buf.WriteString(s)
	buf.WriteString(string(ansiReset))
}

// levelColor grades severity for both colorized handlers.
func levelColor(level slog.Level) ansi {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiBlue
	}
}

// qualifyKey prefixes key with the dotted path of open groups.
func qualifyKey(groups []string, key string) string {
	if len(groups) == 0 {
		return key
	}

	return strings.Join(groups, ".") + "." + key
}

// qualifyAttrs returns attrs with their keys qualified by groups. Attrs
// bound before a group opens must keep their unqualified keys, so the
// qualification happens when the handler receives them, not when it
// renders them.
func qualifyAttrs(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(groups) == 0 {
		return attrs
	}

	qualified := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		qualified[i] = slog.Attr{Key: qualifyKey(groups, a.Key), Value: a.Value}
	}

	return qualified
}

// colorTextHandler renders each record as one line of space-separated
// key=value pairs, keys in gray and values colored by type, with no
// quoting. Records are serialized under a mutex and written whole.
type colorTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	stamp  FormatTime
	attrs  []slog.Attr
	groups []string
}

func newColorTextHandler(w io.Writer, opts *slog.HandlerOptions, stamp FormatTime) *colorTextHandler {
	return &colorTextHandler{
		opts:  *opts,
		mu:    new(sync.Mutex),
		w:     w,
		stamp: stamp,
	}
}

func (h *colorTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if stamped := h.stamp(r.Time); stamped != "" {
			h.field(buf, slog.TimeKey, ansiBlue, stamped)
		}
	}

	h.field(buf, slog.LevelKey, levelColor(r.Level), levelName(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.field(buf, slog.SourceKey, ansiCyan, src.File+":"+strconv.Itoa(src.Line))
		}
	}

	h.field(buf, slog.MessageKey, ansiCyan, r.Message)

	for _, a := range h.attrs {
		h.attr(buf, a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.attr(buf, qualifyKey(h.groups, a.Key), a.Value)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)],
		qualifyAttrs(h.groups, attrs)...)

	return &next
}

func (h *colorTextHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &next
}

// field writes a built-in record field with a fixed value color.
func (h *colorTextHandler) field(buf *bytes.Buffer, key string, color ansi, text string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	tint(buf, ansiGray, key)
	buf.WriteByte('=')
	tint(buf, color, text)
}

// attr writes one attribute, coloring the value by its kind.
func (h *colorTextHandler) attr(buf *bytes.Buffer, key string, v slog.Value) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	tint(buf, ansiGray, key)
	buf.WriteByte('=')
	h.value(buf, v)
}

func (h *colorTextHandler) value(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		tint(buf, ansiCyan, v.String())

	case slog.KindInt64:
		tint(buf, ansiYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		tint(buf, ansiYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		tint(buf, ansiYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			tint(buf, ansiGreen, "true")
		} else {
			tint(buf, ansiRed, "false")
		}

	case slog.KindDuration:
		tint(buf, ansiMagenta, v.Duration().String())

	case slog.KindTime:
		tint(buf, ansiBlue, v.Time().String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			tint(buf, levelColor(level), levelName(level))

			return
		}

		tint(buf, ansiCyan, v.String())

	default:
		tint(buf, ansiCyan, v.String())
	}
}

// colorJSONHandler renders each record as a braced multiline block with
// two-space indentation, keys in gray and values colored by type, without
// the quoting of real JSON. Records are serialized under a mutex and
// written whole.
type colorJSONHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	stamp  FormatTime
	attrs  []slog.Attr
	groups []string
}

func newColorJSONHandler(w io.Writer, opts *slog.HandlerOptions, stamp FormatTime) *colorJSONHandler {
	return &colorJSONHandler{
		opts:  *opts,
		mu:    new(sync.Mutex),
		w:     w,
		stamp: stamp,
	}
}

func (h *colorJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *colorJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	var n int

	if !r.Time.IsZero() {
		if stamped := h.stamp(r.Time); stamped != "" {
			h.field(buf, &n, slog.TimeKey, stamped)
		}
	}

	h.field(buf, &n, slog.LevelKey, levelName(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.field(buf, &n, slog.SourceKey, src.File+":"+strconv.Itoa(src.Line))
		}
	}

	h.field(buf, &n, slog.MessageKey, r.Message)

	for _, a := range h.attrs {
		h.field(buf, &n, a.Key, a.Value.Any())
	}

	r.Attrs(func(a slog.Attr) bool {
		h.field(buf, &n, qualifyKey(h.groups, a.Key), a.Value.Any())

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *colorJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)],
		qualifyAttrs(h.groups, attrs)...)

	return &next
}

func (h *colorJSONHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &next
}

// field writes one key and value, preceded by a separator for every field
// after the first.
func (h *colorJSONHandler) field(buf *bytes.Buffer, n *int, key string, v any) {
	if *n > 0 {
		buf.WriteString(",\n")
	}

	*n++

	buf.WriteString("  ")
	tint(buf, ansiGray, key)
	buf.WriteString(": ")
	h.value(buf, v)
}

func (h *colorJSONHandler) value(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		tint(buf, ansiCyan, val)

	case bool:
		if val {
			tint(buf, ansiGreen, "true")
		} else {
			tint(buf, ansiRed, "false")
		}

	case nil:
		tint(buf, ansiGray, "null")

	case time.Duration:
		tint(buf, ansiMagenta, val.String())

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		tint(buf, ansiYellow, fmt.Sprint(val))

	default:
		tint(buf, ansiCyan, fmt.Sprint(val))
	}
}
