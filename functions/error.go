package functions

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error is a function lookup or invocation failure that carries structured
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
