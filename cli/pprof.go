//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/pkg"
	"github.com/Vallentin/textmation/profile"
)

// pprofConfig exposes the profiler flags. It exists in this form only
// with the pprof build tag; the default build compiles an empty struct
// so the flags disappear from help output entirely.
type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Write a profile of the run." placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Directory profiles are written to."                            type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling options"

	return group
}

// start launches the profiler when a mode was selected and returns the
// function that stops it. Without a mode the returned stop does nothing.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	mode := slog.String("mode", f.Mode)
	dir := slog.String("dir", f.Dir)

	log.DebugContext(ctx, "profiler started", mode, dir)

	profiler := profile.New(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(true),
	).Start()

	return func() {
		log.DebugContext(ctx, "profiler stopped", mode, dir)
		profiler.Stop()
	}
}
