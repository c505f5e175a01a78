package lang

import (
	"encoding/json"
	"math"
	"strings"
)

// MarshalJSON implements json.Marshaler for AST.
func (ast *AST) MarshalJSON() ([]byte, error) {
	return json.Marshal(ast.ToMap())
}

// MarshalYAML implements yaml.InterfaceMarshaler for AST.
func (ast *AST) MarshalYAML() (any, error) {
	return ast.ToMap(), nil
}

// ToMap converts the AST to a native Go map structure suitable for
// marshaling. Statements become maps keyed by their statement kind and
// expressions become nested maps, with string and plain number literals
// reduced to their values.
func (ast *AST) ToMap() map[string]any {
	if ast.Root == nil {
		return map[string]any{}
	}

	return stmtToNative(ast.Root)
}

func stmtToNative(stmt Stmt) map[string]any {
	switch n := stmt.(type) {
	case *Include:
		return map[string]any{"include": strings.Join(n.Path, ".")}

	case *Create:
		result := map[string]any{"create": n.Type}
		if n.Name != "" {
			result["as"] = n.Name
		}

		if len(n.Body) > 0 {
			result["body"] = bodyToNative(n.Body)
		}

		return result

	case *Template:
		result := map[string]any{"template": n.Name}
		if n.Inherit != "" {
			result["inherit"] = n.Inherit
		}

		if len(n.Body) > 0 {
			result["body"] = bodyToNative(n.Body)
		}

		return result

	case *Define:
		return map[string]any{"define": n.Name.Name, "value": exprToNative(n.Value)}

	case *Assign:
		return map[string]any{"assign": n.Name.Name, "value": exprToNative(n.Value)}
	}

	return map[string]any{}
}

func bodyToNative(body []Stmt) []any {
	result := make([]any, len(body))
	for i, stmt := range body {
		result[i] = stmtToNative(stmt)
	}

	return result
}

func exprToNative(expr Expr) any {
	switch n := expr.(type) {
	case *Name:
		return map[string]any{"name": n.Name}

	case *Number:
		return numberToNative(n)

	case *String:
		return n.Value

	case *Unary:
		return map[string]any{"op": n.Op, "operand": exprToNative(n.Operand)}

	case *Binary:
		return map[string]any{
			"op":  n.Op,
			"lhs": exprToNative(n.LHS),
			"rhs": exprToNative(n.RHS),
		}

	case *Call:
		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = exprToNative(arg)
		}

		return map[string]any{"call": n.Name, "args": args}

	case *Member:
		return map[string]any{"member": n.Name.Name, "of": exprToNative(n.Value)}
	}

	return nil
}

// numberToNative renders a numeric literal. Infinity has no JSON
// representation and renders as the literal word instead.
func numberToNative(n *Number) any {
	var value any = n.Value
	if math.IsInf(n.Value, 0) {
		value = "infinite"
	}

	if n.Unit == "" {
		return value
	}

	return map[string]any{"value": value, "unit": n.Unit}
}
