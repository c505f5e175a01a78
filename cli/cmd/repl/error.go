package repl

import "errors"

// Sentinel errors shared by the element cursor and the history store.
var (
	ErrOutOfBounds  = errors.New("index out of bounds")
	ErrEditDeclined = errors.New("edit declined")
)
