package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/cli/cmd/repl"
	"github.com/Vallentin/textmation/log"
)

// Repl starts the interactive prompt, evaluating expressions against a
// built scene.
type Repl struct {
	Source string `arg:"" help:"Scene file to load, or an empty scene when omitted." optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	paths := slices.Clone(searchPathsFrom(ctx))

	var source, file string

	if r.Source != "" {
		data, err := os.ReadFile(r.Source)
		if err != nil {
			return ErrReadSource.
				With(slog.String("file", r.Source)).
				Wrap(err)
		}

		source, file = string(data), r.Source

		// The scene file's own directory is searched first, matching how
		// includes resolve when building from a file.
		if abs, err := filepath.Abs(r.Source); err == nil {
			file = abs
			paths = append(paths, filepath.Dir(abs))
		}
	}

	log.DebugContext(ctx, "starting repl",
		slog.String("file", file),
		slog.String("cache", cacheDir))

	b := builder.New(
		builder.WithLogger(log.Default()),
		builder.WithSearchPaths(paths...),
	)

	return repl.Run(ctx,
		repl.WithBuilder(b),
		repl.WithScene(source, file),
		repl.WithHistoryDir(cacheDir),
		repl.WithLogger(log.Default()),
	)
}
