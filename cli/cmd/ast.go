package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/Vallentin/textmation/lang"
)

// AST parses a scene file and prints its syntax tree in the chosen format.
type AST struct {
	Native Native `cmd:"" default:"withargs" help:"Print as native scene syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Print as JSON."`
	YAML   YAML   `cmd:""                    help:"Print as YAML."`
}

// Native prints the parsed scene as native scene syntax.
type Native struct {
	Indent int `default:"0" help:"Indent width for formatted output (0 uses tabs)" short:"i"`

	Source string `arg:"" default:"-" help:"Scene file or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (f *Native) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	var file *os.File
	if f.Source == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(f.Source)
		if err != nil {
			return ErrReadSource.Wrap(err)
		}
		defer file.Close()
	}

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "native"))
	}

	return ast.Format(ctx, os.Stdout, f.Indent)
}

// JSON prints the parsed scene as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Scene file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	var file *os.File
	if j.Source == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(j.Source)
		if err != nil {
			return ErrReadSource.Wrap(err)
		}
		defer file.Close()
	}

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "json"))
	}

	return ast.FormatJSON(ctx, os.Stdout, j.Indent)
}

// YAML prints the parsed scene as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Scene file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	var file *os.File
	if y.Source == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(y.Source)
		if err != nil {
			return ErrReadSource.Wrap(err)
		}
		defer file.Close()
	}

	ast, err := lang.ParseReader(ctx, bufio.NewReader(file))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return ast.FormatYAML(ctx, os.Stdout, y.Indent)
}
