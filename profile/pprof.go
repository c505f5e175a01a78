//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the selectable profiling modes in sorted order. The
// "quiet" entry only silences the profiler's own logging rather than
// selecting a profile, so it is excluded.
var Modes = sync.OnceValue(func() []string {
	m := maps.Clone(profilers)
	delete(m, "quiet")

	return slices.Sorted(maps.Keys(m))
})

// profilers maps mode names onto their [github.com/pkg/profile]
// selectors.
var profilers = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
	"quiet":     profile.Quiet,
}

// start translates the parameters into [github.com/pkg/profile] options
// and launches the profiler. An unknown mode profiles nothing.
func start(mode, path string, quiet bool) interface{ Stop() } {
	selector, ok := profilers[mode]
	if !ok {
		return noop{}
	}

	opts := []func(*profile.Profile){selector}

	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}

	if quiet {
		opts = append(opts, profile.Quiet)
	}

	return profile.Start(opts...)
}
