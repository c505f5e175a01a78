package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/value"
)

// Scene builds a scene file into its element tree and prints the tree with
// all property expressions evaluated.
type Scene struct {
	Format string `default:"tree" enum:"tree,yaml,json" help:"Output format (tree, yaml, json)" short:"f"`
	Indent int    `default:"2"                          help:"Indent width for structured output" short:"i"`

	Source string `arg:"" default:"-" help:"Scene file or '-' for stdin." name:"source"`
}

// Run executes the scene command.
func (s *Scene) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	b := builder.New(
		builder.WithLogger(log.Default()),
		builder.WithSearchPaths(searchPathsFrom(ctx)...),
	)

	var scene *element.Element

	if s.Source == stdinSource {
		source, _, err := readSource(s.Source)
		if err != nil {
			return err
		}

		scene, err = b.Build(ctx, source)
		if err != nil {
			return err
		}
	} else {
		scene, err = b.BuildFile(ctx, s.Source)
		if err != nil {
			return err
		}
	}

	switch s.Format {
	case "yaml":
		m, err := sceneMap(scene)
		if err != nil {
			return err
		}

		data, err := yaml.MarshalContext(ctx, m, yaml.Indent(s.Indent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = os.Stdout.Write(data)

		return err

	case "json":
		m, err := sceneMap(scene)
		if err != nil {
			return err
		}

		var data []byte
		if s.Indent > 0 {
			data, err = json.MarshalIndent(m, "", strings.Repeat(" ", s.Indent))
		} else {
			data, err = json.Marshal(m)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(os.Stdout, string(data))

		return err

	default:
		return writeTree(os.Stdout, scene, s.Indent, 0)
	}
}

// writeTree prints an element and its descendants as an indented tree.
// Each element line names its type, followed by one line per property with
// the property's evaluated value.
func writeTree(w io.Writer, e *element.Element, indent, depth int) error {
	unit := strings.Repeat(" ", max(indent, 1))
	prefix := strings.Repeat(unit, depth)

	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, e.TypeName()); err != nil {
		return err
	}

	for p := range e.Properties() {
		v, err := value.Eval(p)
		if err != nil {
			return builder.WrapError(err).
				With(slog.String("property", p.Name()))
		}

		if _, err := fmt.Fprintf(w, "%s%s%s = %s\n", prefix, unit, p.Name(), v); err != nil {
			return err
		}
	}

	for child := range e.Children() {
		if err := writeTree(w, child, indent, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// sceneMap converts an element tree into nested maps for YAML and JSON
// output. Properties are evaluated; dimensioned values keep their unit
// suffix, plain numbers stay numeric, and colors become component lists.
func sceneMap(e *element.Element) (map[string]any, error) {
	props := make(map[string]any)

	for p := range e.Properties() {
		v, err := value.Eval(p)
		if err != nil {
			return nil, builder.WrapError(err).
				With(slog.String("property", p.Name()))
		}

		props[p.Name()] = valueData(v)
	}

	m := map[string]any{
		"element":    e.TypeName(),
		"properties": props,
	}

	children := make([]any, 0)
	for child := range e.Children() {
		cm, err := sceneMap(child)
		if err != nil {
			return nil, err
		}

		children = append(children, cm)
	}

	if len(children) > 0 {
		m["children"] = children
	}

	return m, nil
}

func valueData(v value.Value) any {
	switch v := v.(type) {
	case value.Number:
		return float64(v)
	case value.String:
		return string(v)
	case value.Vec4:
		return []float64{v.X, v.Y, v.Z, v.W}
	default:
		return v.String()
	}
}
