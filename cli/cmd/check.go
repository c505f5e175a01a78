package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/lang"
	"github.com/Vallentin/textmation/log"
)

// Check parses and builds scene files, reporting every diagnostic instead
// of stopping at the first broken file.
type Check struct {
	Sources []string `arg:"" help:"Scene files to check, or '-' for stdin." name:"sources" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	sources := c.Sources
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	sources = uniqueSources(sources)

	failed := 0

	for _, src := range sources {
		if err := checkSource(ctx, src); err != nil {
			failed++
		}
	}

	log.DebugContext(ctx, "check finished",
		slog.Int("checked", len(sources)),
		slog.Int("failed", failed))

	if failed > 0 {
		return ErrCheckFailed.
			With(
				slog.Int("checked", len(sources)),
				slog.Int("failed", failed)).
			Wrap(NewErrorf("%d of %d scenes failed", failed, len(sources)))
	}

	return nil
}

// checkSource builds a single scene and prints its diagnostics to stderr.
func checkSource(ctx context.Context, path string) error {
	source, name, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)

		return err
	}

	// The scene file's own directory is searched first, matching how
	// includes resolve when building from a file.
	paths := slices.Clone(searchPathsFrom(ctx))

	if path != stdinSource {
		if abs, err := filepath.Abs(path); err == nil {
			paths = append(paths, filepath.Dir(abs))
		}
	}

	b := builder.New(
		builder.WithLogger(log.Default()),
		builder.WithSearchPaths(paths...),
	)

	if _, err := b.Build(ctx, source); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)

		if snippet := diagnosticContext(err); snippet != "" {
			fmt.Fprint(os.Stderr, snippet)
		}

		return err
	}

	fmt.Printf("%s: ok\n", name)

	return nil
}

// diagnosticContext extracts the caret-marked source snippet from a parse
// or build failure, or returns an empty string when the error carries no
// location.
func diagnosticContext(err error) string {
	pe := &lang.ParseError{}
	if errors.As(err, &pe) {
		return pe.Context()
	}

	be := &builder.BuildError{}
	if errors.As(err, &be) {
		return be.Context()
	}

	return ""
}
