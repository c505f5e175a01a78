// Package builder turns parsed scenes into element trees. It walks the
// syntax tree from package lang and drives package element: includes pull
// in the templates of other scene files, template statements register
// reusable element bodies, and create statements instantiate elements,
// apply their template chain base first, and populate them from their
// body in source order.
//
// Expressions build into values from package value. Bare names resolve
// to members of the enum or flag type an assignment expects, or to live
// property references found by walking the enclosing element's ancestor
// chain; member accesses resolve the same way against the element the
// left-hand side evaluates to.
//
// Every build failure is reported as a [BuildError] carrying a message,
// the source span of the failing statement, and, for cycle and include
// failures, an elaboration listing the offending paths.
package builder
