//go:build !pprof

package profile

// Modes returns nothing without the pprof build tag.
func Modes() []string { return nil }

// start ignores its parameters without the pprof build tag.
func start(string, string, bool) interface{ Stop() } { return noop{} }
