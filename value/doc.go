// Package value implements the typed value and expression model of the
// scene description language.
//
// Values are unit-tagged literals: plain numbers, percentages that resolve
// against a named dimension of the enclosing element, angles, durations,
// strings, RGBA vectors, and enum or flag members. Expressions combine
// values with unary and binary operators, function calls, and references to
// element properties.
//
// Evaluation is pure, lazy, and pull-based: nothing is computed until a
// value is read, and nothing is cached between reads. An evaluation carries
// a Context holding the stack of property bindings currently being resolved,
// which both supplies the relative dimension for percentages and detects
// circular property references.
//
// The unit rules are an explicit matrix: combinations not listed are type
// errors, checked once when an expression is constructed (binaryType) and
// enforced again on the literals produced during evaluation (binaryEval).
package value
