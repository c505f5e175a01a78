package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Vallentin/textmation/lang"
	"github.com/Vallentin/textmation/pkg"
)

// buildInclude resolves an include path against the search paths and
// builds the included scene's templates.
func (b *Builder) buildInclude(ctx context.Context, include *lang.Include) error {
	filename, tried := b.findSceneFile(include.Path)
	if filename == "" {
		lines := make([]string, len(tried))
		for i, t := range tried {
			lines[i] = "- " + t
		}

		after := "Tried...\n" + strings.Join(lines, "\n")

		return failAfter(include.Span(), after,
			"Failed including %s", strings.Join(include.Path, "."))
	}

	return b.include(ctx, filename)
}

// findSceneFile resolves dotted include path segments to an existing
// scene file, trying the search paths most recent first. It returns the
// resolved filename, or an empty string and every candidate tried.
func (b *Builder) findSceneFile(path []string) (string, []string) {
	rel := filepath.Join(path...) + pkg.Ext

	tried := make([]string, 0, len(b.searchPaths))

	for _, dir := range slices.Backward(b.searchPaths) {
		filename := filepath.Join(dir, rel)

		if info, err := os.Stat(filename); err == nil && !info.IsDir() {
			return filename, nil
		}

		tried = append(tried, filename)
	}

	return "", tried
}

// include parses a scene file and builds its templates. A file is
// included at most once per build, and a file including itself through
// any chain is skipped. The file's directory joins the search paths
// while its body builds, so its own includes resolve relative to it.
func (b *Builder) include(ctx context.Context, filename string) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return ErrReadScene.Wrap(err)
	}

	if slices.Contains(b.including, abs) {
		return nil
	}

	if _, ok := b.included[abs]; ok {
		return nil
	}

	b.logger.DebugContext(ctx, "including scene file", slog.String("path", abs))

	data, err := os.ReadFile(abs)
	if err != nil {
		return ErrReadScene.Wrap(err)
	}

	b.searchPaths = append(b.searchPaths, filepath.Dir(abs))
	b.including = append(b.including, abs)

	defer func() {
		b.including = b.including[:len(b.including)-1]
		b.searchPaths = b.searchPaths[:len(b.searchPaths)-1]
	}()

	ast, err := lang.ParseCached(ctx, string(data), lang.WithLogger(b.logger))
	if err != nil {
		return err
	}

	source, file := b.source, b.file
	b.source, b.file = ast.Source, abs

	defer func() { b.source, b.file = source, file }()

	if err := b.buildIncluded(ctx, ast.Root); err != nil {
		return attachSource(err, ast.Source, abs)
	}

	b.included[abs] = struct{}{}

	return nil
}

// buildIncluded builds only the include and template statements of an
// included scene. Element creation and property statements of included
// files are ignored.
func (b *Builder) buildIncluded(ctx context.Context, root *lang.Create) error {
	for _, child := range root.Body {
		switch child.(type) {
		case *lang.Include, *lang.Template:
			if err := b.buildStmt(ctx, child); err != nil {
				return err
			}
		}
	}

	return nil
}
