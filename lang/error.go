package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput = NewError("failed to read input")
)

// Error is a lexing, parsing, or caching failure that carries structured
// logging attributes. It implements both error and slog.LogValuer
// interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// WrapError adapts err into an Error, returning err itself when it
// already is one.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface. The message and the wrapped
// error are joined with ": ", with either side omitted when unset.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer, grouping the message, the wrapped
// cause, and any attached attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of the error wrapping err as its cause. The
// receiver, typically a sentinel, is left unmodified.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of the error carrying the additional attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	combined := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(combined, e.attrs)
	copy(combined[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: combined,
	}
}

// ParseError is a lexing or parsing failure at a location in the source.
//
// Message describes the failure without location. Error appends the span
// when one is known, and Context renders the offending source line with a
// caret under the failing column when the source is available.
type ParseError struct {
	Message string
	Source  string // The original source input, attached by ParseString
	Span    Span
}

// NewParseError creates a ParseError at the given span.
func NewParseError(message string, span Span) *ParseError {
	return &ParseError{Message: message, Span: span}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Span.IsZero() {
		return e.Message
	}

	return e.Message + " at " + e.Span.String()
}

// Context formats the offending source line with a column marker.
// It returns an empty string when no source or span is attached.
func (e *ParseError) Context() string {
	return SourceContext(e.Source, e.Span)
}

// SourceContext formats the source line a span begins on with a column
// marker underneath. It returns an empty string when the source is empty,
// the span is zero, or the span falls outside the source.
func SourceContext(source string, span Span) string {
	if source == "" || span.IsZero() {
		return ""
	}

	lines := strings.Split(source, "\n")
	if span.Begin.Line < 1 || span.Begin.Line > len(lines) {
		return ""
	}

	line := strings.TrimSuffix(lines[span.Begin.Line-1], "\r")
	number := strconv.Itoa(span.Begin.Line)

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(number)
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// Pad past the line number gutter, then out to the failing column.
	padding := strings.Repeat(" ", len(number)+5)
	if span.Begin.Column > 0 {
		padding += strings.Repeat(" ", span.Begin.Column-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}
