package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the AST back out as scene source to the writer. The
// implicit Scene root is not printed, only its body. A positive indent
// selects that many spaces per nesting level, otherwise tabs are used.
func (ast *AST) Format(_ context.Context, w io.Writer, indent int) error {
	if ast.Root == nil {
		return nil
	}

	unit := "\t"
	if indent > 0 {
		unit = strings.Repeat(" ", indent)
	}

	return formatBody(w, ast.Root.Body, unit, 0)
}

// FormatJSON writes the AST as JSON to the writer.
func (ast *AST) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ast, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ast)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the AST as YAML to the writer.
func (ast *AST) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(
		ctx,
		ast.ToMap(),
		opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// formatBody formats a statement block, separating nested statements
// from their plain siblings with blank lines.
func formatBody(w io.Writer, body []Stmt, unit string, depth int) error {
	for i, stmt := range body {
		if i > 0 && (hasBody(stmt) || hasBody(body[i-1])) {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if err := formatStmt(w, stmt, unit, depth); err != nil {
			return err
		}
	}

	return nil
}

func hasBody(stmt Stmt) bool {
	switch n := stmt.(type) {
	case *Create:
		return len(n.Body) > 0
	case *Template:
		return len(n.Body) > 0
	}

	return false
}

// formatStmt formats one statement line and, for create and template
// statements, the indented block under it.
func formatStmt(w io.Writer, stmt Stmt, unit string, depth int) error {
	prefix := strings.Repeat(unit, depth)

	switch n := stmt.(type) {
	case *Include:
		_, err := fmt.Fprintf(w, "%sinclude %s\n", prefix, strings.Join(n.Path, "."))

		return err

	case *Create:
		head := "create " + n.Type
		if n.Name != "" {
			head += " as " + n.Name
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, head); err != nil {
			return err
		}

		return formatBody(w, n.Body, unit, depth+1)

	case *Template:
		head := "template " + n.Name
		if n.Inherit != "" {
			head += " inherit " + n.Inherit
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, head); err != nil {
			return err
		}

		return formatBody(w, n.Body, unit, depth+1)

	case *Define:
		_, err := fmt.Fprintf(w, "%s%s := %s\n", prefix, n.Name.Name, exprString(n.Value))

		return err

	case *Assign:
		_, err := fmt.Fprintf(w, "%s%s = %s\n", prefix, n.Name.Name, exprString(n.Value))

		return err
	}

	return nil
}

// Operator precedence levels, lowest binds loosest. Atoms never need
// parentheses.
const (
	precOr = iota + 1
	precAdditive
	precMultiplicative
	precUnary
	precAtom
)

func exprPrec(expr Expr) int {
	switch n := expr.(type) {
	case *Binary:
		switch n.Op {
		case "|":
			return precOr
		case "+", "-":
			return precAdditive
		default:
			return precMultiplicative
		}

	case *Unary:
		return precUnary
	}

	return precAtom
}

// exprString renders an expression in source syntax, parenthesizing
// operands whose precedence would otherwise rebind them. The right
// operand of a binary operator keeps parentheses at equal precedence
// since the grammar is left associative.
func exprString(expr Expr) string {
	switch n := expr.(type) {
	case *Name:
		return n.Name

	case *Number:
		return numberString(n)

	case *String:
		return quoteString(n.Value)

	case *Unary:
		operand := exprString(n.Operand)
		if exprPrec(n.Operand) < precUnary {
			operand = "(" + operand + ")"
		}

		return n.Op + operand

	case *Binary:
		lhs := exprString(n.LHS)
		if exprPrec(n.LHS) < exprPrec(n) {
			lhs = "(" + lhs + ")"
		}

		rhs := exprString(n.RHS)
		if exprPrec(n.RHS) <= exprPrec(n) {
			rhs = "(" + rhs + ")"
		}

		return lhs + " " + n.Op + " " + rhs

	case *Call:
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			args[i] = exprString(arg)
		}

		return n.Name + "(" + strings.Join(args, ", ") + ")"

	case *Member:
		return exprString(n.Value) + "." + n.Name.Name
	}

	return ""
}

// numberString renders a numeric literal without an exponent so the
// result lexes as a single number token.
func numberString(n *Number) string {
	if math.IsInf(n.Value, 1) {
		return "infinite"
	}

	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

// quoteString quotes a string literal using only the escape sequences
// the lexer accepts.
func quoteString(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(ch)
		}
	}

	b.WriteByte('"')

	return b.String()
}
