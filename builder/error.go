package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Vallentin/textmation/lang"
)

// Error is a scene construction failure that carries structured
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

// Common error values.
var (
	ErrReadScene = NewError("failed to read scene file")
)

// BuildError reports a failure while constructing the element tree from a
// parsed scene. Message describes the failure, Span locates it in the
// source, and After carries optional elaboration printed on the following
// lines. File and Source identify the scene text the span refers to, which
// for included scenes differs from the text the build started from.
type BuildError struct {
	Message string
	After   string
	File    string
	Source  string
	Span    lang.Span
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	msg := e.Message

	if !e.Span.IsZero() {
		msg += " at " + e.Span.String()
	}

	if e.After != "" {
		msg += "\n" + e.After
	}

	return msg
}

// Context formats the offending source line with a column marker.
// It returns an empty string when no source or span is attached.
func (e *BuildError) Context() string {
	return lang.SourceContext(e.Source, e.Span)
}

// failAt creates a BuildError at the given span.
func failAt(span lang.Span, format string, args ...any) *BuildError {
	return &BuildError{
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// failAfter creates a BuildError at the given span with elaboration lines
// appended after the message.
func failAfter(span lang.Span, after, format string, args ...any) *BuildError {
	return &BuildError{
		Message: fmt.Sprintf(format, args...),
		After:   after,
		Span:    span,
	}
}

// attachSource fills in the source text and filename of a BuildError that
// does not carry them yet. Errors raised inside an included scene keep the
// included file's text, so the innermost attachment wins.
func attachSource(err error, source, file string) error {
	be := &BuildError{}
	if !errors.As(err, &be) {
		return err
	}

	if be.Source == "" {
		be.Source = source
	}

	if be.File == "" {
		be.File = file
	}

	return err
}
