package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable
// identifiers.
//
// By default, Prefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

	for rex, rep := range map[*regexp.Regexp]string{
		regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
		regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
	} {
		id = rex.ReplaceAllString(id, rep)
	}

	if id == "" {
		return Name
	}

	return id
})

// ConfigDir returns the per-user configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
})

// CacheDir returns the per-user cache directory path used for transient
// files such as profiling output.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
})

// userDir resolves a per-user base directory, falling back to a dot
// directory under the user's home, and finally to the working directory.
func userDir(lookup func() (string, error), dot string) string {
	if dir, err := lookup(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, dot)
	}

	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}

	return "."
}
