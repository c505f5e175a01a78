package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// searchPathsKey is used to store the include search paths in
// [context.Context].
type searchPathsKey struct{}

// WithSearchPaths returns a new context.Context containing the directories
// searched when resolving include statements.
func WithSearchPaths(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, searchPathsKey{}, paths)
}

func searchPathsFrom(ctx context.Context) []string {
	paths, _ := ctx.Value(searchPathsKey{}).([]string)

	return paths
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName is the display name used for diagnostics when reading from stdin.
const stdinName = "stdin"

// readSource reads the entire scene source at path, or from stdin when path
// is "-". The returned name identifies the source in diagnostics.
func readSource(path string) (source, name string, err error) {
	if path == stdinSource {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", stdinName, ErrReadSource.Wrap(err)
		}

		return string(data), stdinName, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", path, ErrReadSource.Wrap(err)
	}

	return string(data), path, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources removes duplicate paths from sources while preserving order.
// Paths naming the same file are detected by resolving symlinks and comparing
// device/inode pairs. All occurrences of "-" collapse into a single entry.
// Paths that cannot be resolved are kept as-is so the caller can report the
// failure when it tries to read them.
func uniqueSources(sources []string) []string {
	unique := make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{}, len(sources))
	hasStdin := false

	for _, src := range sources {
		if src == stdinSource {
			if hasStdin {
				continue
			}

			hasStdin = true
			unique = append(unique, src)

			continue
		}

		key, ok := makeSourceKey(src)
		if ok {
			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, src)
	}

	return unique
}

// makeSourceKey resolves path to a fileKey.
// Returns false if the path cannot be resolved or the underlying Sys() data
// is not of type *syscall.Stat_t.
func makeSourceKey(path string) (key fileKey, ok bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return key, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return key, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
