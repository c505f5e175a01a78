package element

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Vallentin/textmation/value"
)

// Error is an element or property failure that carries structured
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

// DefinedError reports a second definition of a property name on the same
// element.
type DefinedError struct {
	Name string
}

func (e *DefinedError) Error() string {
	return fmt.Sprintf("Property %q is already defined", e.Name)
}

// UndefinedError reports a reference to a property name that does not
// exist on the element under consideration.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("Undefined property %q", e.Name)
}

// ReadonlyError reports an assignment to a read-only property.
type ReadonlyError struct {
	Name string
}

func (e *ReadonlyError) Error() string {
	return fmt.Sprintf("Cannot set value of readonly property %q", e.Name)
}

// ConstantError reports an assignment of a non-constant value, or a
// keyframed assignment, to a property declared constant.
type ConstantError struct {
	Name string
}

func (e *ConstantError) Error() string {
	return fmt.Sprintf("Cannot assign non-constant value to property %q", e.Name)
}

// TypeError reports a value whose type is not among the property's
// declared types.
type TypeError struct {
	Expected []value.Type
	Received value.Type
}

func (e *TypeError) Error() string {
	names := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		names[i] = t.Name()
	}

	return fmt.Sprintf("Expected type of %s, received %s", strings.Join(names, ", "), e.Received.Name())
}

// CycleError reports that storing a value introduced one or more circular
// property dependencies. Each path starts and ends with the property the
// value was stored under.
type CycleError struct {
	Paths [][]*Property
}

func (e *CycleError) Error() string {
	return "Circular dependency encountered"
}

// PathStrings renders each cycle as property names joined by arrows.
func (e *CycleError) PathStrings() []string {
	lines := make([]string, len(e.Paths))

	for i, path := range e.Paths {
		names := make([]string, len(path))
		for j, p := range path {
			names[j] = p.name
		}

		lines[i] = strings.Join(names, " -> ")
	}

	return lines
}

// ContainmentError reports an attempt to attach a child to a parent that
// rejects it by kind.
type ContainmentError struct {
	Parent string
	Child  string
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("Cannot add %s to %s", e.Child, e.Parent)
}
