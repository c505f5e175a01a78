// Package profile provides optional runtime profiling for the textmation
// application.
//
// Profiling support is compiled in only when the "pprof" build tag is set.
// Without the tag every operation in this package is a no-op, so release
// builds carry no profiling overhead and no extra dependencies at runtime.
// With the tag, the package drives [github.com/pkg/profile] and also imports
// [net/http/pprof] so an HTTP server started by the host process serves live
// profiles under /debug/pprof/.
//
// # Modes
//
// A profiling run captures one profile kind, selected by name:
//
//	allocs     every memory allocation
//	block      blocking on synchronization primitives
//	clock      wall-clock time
//	cpu        CPU time
//	goroutine  goroutine stacks
//	heap       live heap memory
//	mem        general memory usage
//	mutex      mutex contention
//	thread     OS thread creation
//	trace      full execution trace
//
// [Modes] returns the names recognized by the current build, which is empty
// when the tag is absent.
//
// # Capturing a Profile
//
// A profiler is assembled with [New] and started with [Config.Start]. The
// returned control is stopped to flush the profile to disk:
//
//	ctrl := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	).Start()
//	defer ctrl.Stop()
//
// The output file is named after the mode, e.g. cpu.pprof or mem.pprof,
// inside the configured directory.
//
// The textmation command exposes the same controls as flags when built with
// the tag:
//
//	./textmation --pprof-mode cpu scene demo.anim
//	./textmation --pprof-mode heap --pprof-dir ./profiles check demo.anim
//
// When --pprof-dir is not given, profiles land in the pprof subdirectory of
// the user cache directory, e.g. $XDG_CACHE_HOME/textmation/pprof on Linux.
//
// # Reading the Output
//
// Profiles are ordinary pprof files:
//
//	go tool pprof ./textmation /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// Block and mutex profiling sample at rates set through
// [runtime.SetBlockProfileRate] and [runtime.SetMutexProfileFraction]; the
// trace mode records everything and is best kept to short runs.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
