package builder

import (
	"context"
	"log/slog"

	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/lang"
	"github.com/Vallentin/textmation/value"
)

// Eval parses source as a single expression, resolves names against el
// and its ancestors the way assignment right-hand sides do, and reduces
// the result to a literal. el may be nil, in which case only literals,
// operators, and function calls can evaluate.
func (b *Builder) Eval(ctx context.Context, el *element.Element, source string) (value.Value, error) {
	expr, err := lang.ParseExpr(source)
	if err != nil {
		return nil, err
	}

	// Resolution runs with el as the innermost element and no expected
	// type, so bare names are always properties, never enum members.
	b.elements = append(b.elements[:0], el)
	b.types = b.types[:0]
	b.source, b.file = source, ""

	v, err := b.buildExpr(expr)
	if err != nil {
		return nil, attachSource(err, source, "")
	}

	result, err := value.Eval(v)
	if err != nil {
		return nil, attachSource(failAt(expr.Span(), "%s", err), source, "")
	}

	b.logger.TraceContext(ctx, "expression evaluated",
		slog.String("source", source),
		slog.String("result", result.String()),
	)

	return result, nil
}
