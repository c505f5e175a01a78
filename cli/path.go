package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/Vallentin/textmation/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// pathEnv is the environment variable holding extra scene search
// directories, delimited like PATH.
const pathEnv = "TEXTMATION_PATH"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by
// joining the configuration directory path with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// scenesDir is the directory of shared scene files under the config
// directory. It is always the last include directory searched.
func scenesDir() string {
	return configPath("scenes")
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir(), scenesDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// includeConfig holds the scene include directories given on the command
// line.
type includeConfig struct {
	Path []string `help:"Add a directory to the scene include path. Directories from $TEXTMATION_PATH and the scenes directory beside ${config} are searched after flags." name:"path" placeholder:"DIR" short:"I" type:"existingdir"`
}

func (*includeConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*includeConfig) group() kong.Group {
	var group kong.Group

	group.Key = "include"
	group.Title = "Include options"

	return group
}

// searchPaths composes the include directories for a build: flag
// directories first, then TEXTMATION_PATH entries left to right, then the
// config scenes directory. The returned slice is ordered for
// [builder.WithSearchPaths], which searches later entries first.
func (f *includeConfig) searchPaths() []string {
	composed := mung.Make(
		mung.WithSubjectItems(os.Getenv(pathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(f.Path...),
		mung.WithFilter(func(dir string) bool {
			return strings.TrimSpace(dir) != ""
		}),
	).String()

	list := filepath.SplitList(composed)

	paths := make([]string, 0, len(list)+1)
	paths = append(paths, scenesDir())

	for i := len(list) - 1; i >= 0; i-- {
		paths = append(paths, list[i])
	}

	return paths
}
