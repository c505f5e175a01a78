package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values
// from a YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config")
//
// Keys are matched against flag names in three forms:
//   - the flag name itself (e.g. "log-level")
//   - the flag name with underscores (e.g. "log_level")
//   - a nested section keyed by the flag group prefix
//
// Grouped flags can therefore be written as a mapping:
//
//	log:
//	  level: debug
//	  format: text
//	path: [~/scenes]
//
// A config file that cannot be read or parsed applies no values, leaving
// flag defaults in place. Command-line flags override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return config{}, nil
		}

		var raw map[string]any
		if err := yaml.UnmarshalContext(ctx, data, &raw); err != nil {
			return config{}, nil
		}

		return config(raw), nil
	}
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := r.lookup(flag.Name); ok {
		return kongValue(v), nil
	}

	// Not found, let Kong use defaults.
	return nil, nil
}

// lookup resolves a flag name against flat keys, underscore variants,
// and nested sections keyed by the flag's group prefix.
func (r config) lookup(name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}

	if v, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return v, true
	}

	if section, rest, ok := strings.Cut(name, "-"); ok {
		if sub, ok := r[section].(map[string]any); ok {
			return config(sub).lookup(rest)
		}
	}

	return nil, false
}

// kongValue renders numbers as strings, which Kong requires when mapping
// resolver values onto flags.
func kongValue(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	return v
}
