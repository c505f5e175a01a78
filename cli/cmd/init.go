package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/profile"
)

// defaultConfigIndent is the indentation width of the generated
// configuration file.
const defaultConfigIndent = 2

// Init writes a configuration file seeded with the values of the current
// invocation, so a run with the desired flags followed by init makes
// those flags the defaults.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// An existing file survives unless --force was given.
	if _, err = os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, i.buildConfig(ctx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o644); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig collects current flag values into the nested map shape the
// configuration resolver reads back. A flag named "log-level" becomes key
// "level" inside section "log"; flags without a hyphen stay top-level.
func (i *Init) buildConfig(ctx context.Context) map[string]any {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	conf := make(map[string]any)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := configValue(ktx.FlagValue(flag))
		if val == nil {
			continue
		}

		section, rest, found := strings.Cut(flag.Name, "-")
		if !found {
			conf[flag.Name] = val

			continue
		}

		sub, ok := conf[section].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			conf[section] = sub
		}

		sub[rest] = val
	}

	return conf
}

// configValue converts a resolved flag value into a YAML-friendly value,
// or nil if the flag is unset and should be omitted.
func configValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		// Flag types with a string representation, such as the log level
		// and format enums.
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}
