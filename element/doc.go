// Package element implements the typed element tree of the scene
// language: a registry of element definitions (scene, drawables, layout
// boxes, animations and keyframes), each owning a table of named, typed
// properties.
//
// Properties hold values or unevaluated expressions from package value
// and are themselves expression nodes, so one property may reference
// another directly. Mutation is constrained by per-property read-only and
// constant flags and by define-once semantics; storing a value that would
// close a reference loop fails immediately with the offending paths.
//
// Elements are built in a fixed lifecycle: allocated from their
// Definition, attached to a parent, readied (the type declares its
// default properties, possibly relative to the parent), populated with
// children, and finally created, where types validate and complete
// themselves: animations sort and fill their keyframe tracks, layout
// boxes distribute their children, and the scene derives its duration.
package element
