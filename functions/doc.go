// Package functions provides the builtin function registry available to
// scene expressions: numeric helpers (mod, min, max, floor, ceil, round)
// and color constructors (rgb, rgba, hsl, hsla).
//
// Functions are looked up by name when a call expression is constructed
// and validate their arguments twice: statically against the declared
// parameter types when the call is built, and again when the evaluated
// arguments are applied.
package functions
