package lang

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func mustParse(t *testing.T, source string) *AST {
	t.Helper()

	ast, err := ParseString(context.Background(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return ast
}

func asBinary(t *testing.T, expr Expr, op string) *Binary {
	t.Helper()

	bin, ok := expr.(*Binary)
	if !ok {
		t.Fatalf("expected *Binary, got %T", expr)
	}

	if bin.Op != op {
		t.Fatalf("expected operator %q, got %q", op, bin.Op)
	}

	return bin
}

func checkNumber(t *testing.T, expr Expr, want float64) *Number {
	t.Helper()

	num, ok := expr.(*Number)
	if !ok {
		t.Fatalf("expected *Number, got %T", expr)
	}

	if num.Value != want {
		t.Fatalf("expected value %v, got %v", want, num.Value)
	}

	return num
}

func TestParseEmptySource(t *testing.T) {
	ast := mustParse(t, "")

	if ast.Root == nil {
		t.Fatal("expected implicit scene root")
	}

	if ast.Root.Type != "Scene" {
		t.Errorf("expected root type Scene, got %q", ast.Root.Type)
	}

	if len(ast.Root.Body) != 0 {
		t.Errorf("expected empty body, got %d statements", len(ast.Root.Body))
	}

	if !ast.Root.Span().IsZero() {
		t.Errorf("expected zero span on implicit root, got %s", ast.Root.Span())
	}
}

func TestParseSceneBody(t *testing.T) {
	ast := mustParse(t, "width = 100\nheight := 50%\ncreate Rectangle\n")

	if len(ast.Root.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(ast.Root.Body))
	}

	assign, ok := ast.Root.Body[0].(*Assign)
	if !ok {
		t.Fatalf("expected *Assign, got %T", ast.Root.Body[0])
	}

	if assign.Name.Name != "width" {
		t.Errorf("expected assignment to width, got %q", assign.Name.Name)
	}

	checkNumber(t, assign.Value, 100)

	define, ok := ast.Root.Body[1].(*Define)
	if !ok {
		t.Fatalf("expected *Define, got %T", ast.Root.Body[1])
	}

	if define.Name.Name != "height" {
		t.Errorf("expected definition of height, got %q", define.Name.Name)
	}

	if num := checkNumber(t, define.Value, 50); num.Unit != "%" {
		t.Errorf("expected unit %%, got %q", num.Unit)
	}

	create, ok := ast.Root.Body[2].(*Create)
	if !ok {
		t.Fatalf("expected *Create, got %T", ast.Root.Body[2])
	}

	if create.Type != "Rectangle" {
		t.Errorf("expected Rectangle, got %q", create.Type)
	}
}

func TestParseCreate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantType string
		wantName string
		wantBody int
	}{
		{
			name:     "with body",
			source:   "create Rectangle\n\tx = 1\n\ty = 2\n",
			wantType: "Rectangle",
			wantBody: 2,
		},
		{
			name:     "empty body",
			source:   "create Rectangle\n",
			wantType: "Rectangle",
			wantBody: 0,
		},
		{
			name:     "named",
			source:   "create Rectangle as box\n\tx = 1\n",
			wantType: "Rectangle",
			wantName: "box",
			wantBody: 1,
		},
		{
			name:     "nested",
			source:   "create HBox\n\tcreate Rectangle\n\t\tx = 1\n",
			wantType: "HBox",
			wantBody: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := mustParse(t, tt.source)

			create, ok := ast.Root.Body[0].(*Create)
			if !ok {
				t.Fatalf("expected *Create, got %T", ast.Root.Body[0])
			}

			if create.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, create.Type)
			}

			if create.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, create.Name)
			}

			if len(create.Body) != tt.wantBody {
				t.Errorf("expected %d body statements, got %d", tt.wantBody, len(create.Body))
			}
		})
	}
}

func TestParseTemplate(t *testing.T) {
	ast := mustParse(t, "template Card inherit Rectangle\n\twidth = 10\n\ntemplate Plain\n\tx = 1\n")

	card, ok := ast.Root.Body[0].(*Template)
	if !ok {
		t.Fatalf("expected *Template, got %T", ast.Root.Body[0])
	}

	if card.Name != "Card" || card.Inherit != "Rectangle" {
		t.Errorf("unexpected template %q inherit %q", card.Name, card.Inherit)
	}

	plain, ok := ast.Root.Body[1].(*Template)
	if !ok {
		t.Fatalf("expected *Template, got %T", ast.Root.Body[1])
	}

	if plain.Inherit != "" {
		t.Errorf("expected no inherit, got %q", plain.Inherit)
	}
}

func TestParseInclude(t *testing.T) {
	ast := mustParse(t, "include lib.colors.bright\n")

	include, ok := ast.Root.Body[0].(*Include)
	if !ok {
		t.Fatalf("expected *Include, got %T", ast.Root.Body[0])
	}

	want := []string{"lib", "colors", "bright"}
	if len(include.Path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, include.Path)
	}

	for i, segment := range want {
		if include.Path[i] != segment {
			t.Errorf("path segment %d: expected %q, got %q", i, segment, include.Path[i])
		}
	}
}

func TestParseTopLevelOnly(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "nested template",
			source: "create A\n\ttemplate T\n\t\tx = 1\n",
			want:   "Template not allowed",
		},
		{
			name:   "nested include",
			source: "create A\n\tinclude lib\n",
			want:   "Include not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.source)
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	t.Run("multiplication binds tighter", func(t *testing.T) {
		ast := mustParse(t, "x = 1 + 2 * 3\n")
		assign := ast.Root.Body[0].(*Assign)

		sum := asBinary(t, assign.Value, "+")
		checkNumber(t, sum.LHS, 1)

		product := asBinary(t, sum.RHS, "*")
		checkNumber(t, product.LHS, 2)
		checkNumber(t, product.RHS, 3)
	})

	t.Run("or binds loosest", func(t *testing.T) {
		ast := mustParse(t, "x = 1 + 2 | 3 * 4\n")
		assign := ast.Root.Body[0].(*Assign)

		or := asBinary(t, assign.Value, "|")
		asBinary(t, or.LHS, "+")
		asBinary(t, or.RHS, "*")
	})

	t.Run("parentheses group", func(t *testing.T) {
		ast := mustParse(t, "x = (1 + 2) * 3\n")
		assign := ast.Root.Body[0].(*Assign)

		product := asBinary(t, assign.Value, "*")
		asBinary(t, product.LHS, "+")
		checkNumber(t, product.RHS, 3)
	})

	t.Run("left associative", func(t *testing.T) {
		ast := mustParse(t, "x = 1 - 2 - 3\n")
		assign := ast.Root.Body[0].(*Assign)

		outer := asBinary(t, assign.Value, "-")
		checkNumber(t, outer.RHS, 3)

		inner := asBinary(t, outer.LHS, "-")
		checkNumber(t, inner.LHS, 1)
		checkNumber(t, inner.RHS, 2)
	})
}

func TestParseParenLineJoin(t *testing.T) {
	t.Run("operator before break", func(t *testing.T) {
		ast := mustParse(t, "x = (1 +\n2) * 3\n")
		assign := ast.Root.Body[0].(*Assign)

		product := asBinary(t, assign.Value, "*")
		sum := asBinary(t, product.LHS, "+")
		checkNumber(t, sum.LHS, 1)
		checkNumber(t, sum.RHS, 2)
	})

	t.Run("operator after break", func(t *testing.T) {
		ast := mustParse(t, "x = (1\n\t+ 2)\n")
		assign := ast.Root.Body[0].(*Assign)

		sum := asBinary(t, assign.Value, "+")
		checkNumber(t, sum.LHS, 1)
		checkNumber(t, sum.RHS, 2)
	})

	t.Run("break before close", func(t *testing.T) {
		ast := mustParse(t, "x = (1 + 2\n)\n")
		assign := ast.Root.Body[0].(*Assign)

		asBinary(t, assign.Value, "+")
	})

	t.Run("statement keeps terminator", func(t *testing.T) {
		ast := mustParse(t, "x = (1 +\n2)\ny = 3\n")

		if len(ast.Root.Body) != 2 {
			t.Fatalf("expected 2 statements, got %d", len(ast.Root.Body))
		}
	})
}

func TestParseUnary(t *testing.T) {
	t.Run("negation", func(t *testing.T) {
		ast := mustParse(t, "x = -2\n")
		assign := ast.Root.Body[0].(*Assign)

		unary, ok := assign.Value.(*Unary)
		if !ok {
			t.Fatalf("expected *Unary, got %T", assign.Value)
		}

		if unary.Op != "-" {
			t.Errorf("expected operator -, got %q", unary.Op)
		}

		checkNumber(t, unary.Operand, 2)
	})

	t.Run("identity", func(t *testing.T) {
		ast := mustParse(t, "x = +y\n")
		assign := ast.Root.Body[0].(*Assign)

		unary, ok := assign.Value.(*Unary)
		if !ok {
			t.Fatalf("expected *Unary, got %T", assign.Value)
		}

		if unary.Op != "+" {
			t.Errorf("expected operator +, got %q", unary.Op)
		}
	})

	t.Run("nested", func(t *testing.T) {
		ast := mustParse(t, "x = --2\n")
		assign := ast.Root.Body[0].(*Assign)

		outer := assign.Value.(*Unary)
		inner, ok := outer.Operand.(*Unary)
		if !ok {
			t.Fatalf("expected nested *Unary, got %T", outer.Operand)
		}

		checkNumber(t, inner.Operand, 2)
	})

	t.Run("after binary operator", func(t *testing.T) {
		ast := mustParse(t, "x = 1 - -2\n")
		assign := ast.Root.Body[0].(*Assign)

		diff := asBinary(t, assign.Value, "-")
		if _, ok := diff.RHS.(*Unary); !ok {
			t.Fatalf("expected *Unary on right, got %T", diff.RHS)
		}
	})
}

func TestParseLiteralWords(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{name: "true", source: "x = true\n", want: 1},
		{name: "false", source: "x = false\n", want: 0},
		{name: "infinite", source: "x = infinite\n", want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := mustParse(t, tt.source)
			assign := ast.Root.Body[0].(*Assign)

			num, ok := assign.Value.(*Number)
			if !ok {
				t.Fatalf("expected *Number, got %T", assign.Value)
			}

			if math.IsInf(tt.want, 1) {
				if !math.IsInf(num.Value, 1) {
					t.Errorf("expected +Inf, got %v", num.Value)
				}
			} else if num.Value != tt.want {
				t.Errorf("expected %v, got %v", tt.want, num.Value)
			}

			if num.Span().IsZero() {
				t.Error("expected literal to carry its source span")
			}
		})
	}
}

func TestParseCall(t *testing.T) {
	t.Run("arguments", func(t *testing.T) {
		ast := mustParse(t, "fill = rgb(255, 128, 0)\n")
		assign := ast.Root.Body[0].(*Assign)

		call, ok := assign.Value.(*Call)
		if !ok {
			t.Fatalf("expected *Call, got %T", assign.Value)
		}

		if call.Name != "rgb" {
			t.Errorf("expected call to rgb, got %q", call.Name)
		}

		if len(call.Args) != 3 {
			t.Fatalf("expected 3 arguments, got %d", len(call.Args))
		}

		checkNumber(t, call.Args[0], 255)
		checkNumber(t, call.Args[1], 128)
		checkNumber(t, call.Args[2], 0)
	})

	t.Run("empty", func(t *testing.T) {
		ast := mustParse(t, "x = now()\n")
		assign := ast.Root.Body[0].(*Assign)

		call := assign.Value.(*Call)
		if len(call.Args) != 0 {
			t.Errorf("expected no arguments, got %d", len(call.Args))
		}
	})

	t.Run("multiline", func(t *testing.T) {
		ast := mustParse(t, "fill = rgb(\n\t255,\n\t128,\n\t0)\n")
		assign := ast.Root.Body[0].(*Assign)

		call := assign.Value.(*Call)
		if len(call.Args) != 3 {
			t.Fatalf("expected 3 arguments, got %d", len(call.Args))
		}
	})

	t.Run("nested", func(t *testing.T) {
		ast := mustParse(t, "x = max(1, min(2, 3))\n")
		assign := ast.Root.Body[0].(*Assign)

		outer := assign.Value.(*Call)
		if len(outer.Args) != 2 {
			t.Fatalf("expected 2 arguments, got %d", len(outer.Args))
		}

		inner, ok := outer.Args[1].(*Call)
		if !ok {
			t.Fatalf("expected nested *Call, got %T", outer.Args[1])
		}

		if inner.Name != "min" {
			t.Errorf("expected call to min, got %q", inner.Name)
		}
	})

	t.Run("expression argument", func(t *testing.T) {
		ast := mustParse(t, "x = max(width / 2, 10)\n")
		assign := ast.Root.Body[0].(*Assign)

		call := assign.Value.(*Call)
		asBinary(t, call.Args[0], "/")
	})
}

func TestParseMember(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		ast := mustParse(t, "anchor = TextAnchor.Center\n")
		assign := ast.Root.Body[0].(*Assign)

		member, ok := assign.Value.(*Member)
		if !ok {
			t.Fatalf("expected *Member, got %T", assign.Value)
		}

		if member.Name.Name != "Center" {
			t.Errorf("expected member Center, got %q", member.Name.Name)
		}

		base, ok := member.Value.(*Name)
		if !ok {
			t.Fatalf("expected *Name base, got %T", member.Value)
		}

		if base.Name != "TextAnchor" {
			t.Errorf("expected base TextAnchor, got %q", base.Name)
		}
	})

	t.Run("chain is left associative", func(t *testing.T) {
		ast := mustParse(t, "x = a.b.c\n")
		assign := ast.Root.Body[0].(*Assign)

		outer := assign.Value.(*Member)
		if outer.Name.Name != "c" {
			t.Errorf("expected outer member c, got %q", outer.Name.Name)
		}

		inner, ok := outer.Value.(*Member)
		if !ok {
			t.Fatalf("expected inner *Member, got %T", outer.Value)
		}

		if inner.Name.Name != "b" {
			t.Errorf("expected inner member b, got %q", inner.Name.Name)
		}
	})
}

func TestParseNumberUnits(t *testing.T) {
	tests := []struct {
		name   string
		source string
		value  float64
		unit   string
	}{
		{name: "bare", source: "x = 42\n", value: 42, unit: ""},
		{name: "percent", source: "x = 50%\n", value: 50, unit: "%"},
		{name: "pixels", source: "x = 12px\n", value: 12, unit: "px"},
		{name: "seconds", source: "x = 2.5s\n", value: 2.5, unit: "s"},
		{name: "milliseconds", source: "x = 250ms\n", value: 250, unit: "ms"},
		{name: "degrees", source: "x = 90deg\n", value: 90, unit: "deg"},
		{name: "radians", source: "x = 2rad\n", value: 2, unit: "rad"},
		{name: "turns", source: "x = 0.25turn\n", value: 0.25, unit: "turn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := mustParse(t, tt.source)
			assign := ast.Root.Body[0].(*Assign)

			num := checkNumber(t, assign.Value, tt.value)
			if num.Unit != tt.unit {
				t.Errorf("expected unit %q, got %q", tt.unit, num.Unit)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "keyword as element name",
			source: "create create\n",
			want:   `Unexpected keyword "create"`,
		},
		{
			name:   "keyword as value",
			source: "x = create\n",
			want:   `Unexpected keyword "create"`,
		},
		{
			name:   "literal as assignment target",
			source: "true = 1\n",
			want:   `Unexpected literal "true", expected Identifier`,
		},
		{
			name:   "literal as member",
			source: "x = a.true\n",
			want:   `Unexpected literal "true", expected Identifier`,
		},
		{
			name:   "missing assignment operator",
			source: "x + 1\n",
			want:   `Unexpected "+", expected "=" or ":="`,
		},
		{
			name:   "missing value",
			source: "x = )\n",
			want:   `Unexpected Symbol ")"`,
		},
		{
			name:   "unclosed parenthesis",
			source: "x = (1 + 2\n",
			want:   `Unexpected EndOfStream, expected ")"`,
		},
		{
			name:   "empty right hand side",
			source: "x =\n",
			want:   "Unexpected Newline",
		},
		{
			name:   "statement after value on same line",
			source: "x = 1 y\n",
			want:   `Unexpected Newline, expected "=" or ":="`,
		},
		{
			name:   "unclosed call",
			source: "x = rgb(1, 2\n",
			want:   `Unexpected EndOfStream, expected ")" or ","`,
		},
		{
			name:   "spurious indent",
			source: "create A\n\tx = 1\n\t\ty = 2\n",
			want:   "Unexpected Indent, expected Dedent",
		},
		{
			name:   "indented first statement",
			source: "\tx = 1\n",
			want:   "Unexpected Indent, expected EndOfStream",
		},
		{
			name:   "trailing garbage",
			source: "x = 1\n) = 2\n",
			want:   `Unexpected ")", expected EndOfStream`,
		},
		{
			name:   "unknown unit",
			source: "x = 3q\n",
			want:   `Unexpected unit "q", expected any of "%", "px", "s", "ms", "deg", "rad", "turn"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.source)
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestParseErrorContext(t *testing.T) {
	source := "x = @\n"

	_, err := ParseString(context.Background(), source)
	if err == nil {
		t.Fatal("expected error")
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if pe.Source != source {
		t.Errorf("expected source attached to error")
	}

	if want := "at 1:5 to 1:6"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected %q in error, got %v", want, err)
	}

	snippet := pe.Context()

	if !strings.Contains(snippet, "1 | x = @") {
		t.Errorf("expected offending line in context, got %q", snippet)
	}

	caret := strings.Repeat(" ", 6) + strings.Repeat(" ", 4) + "^"
	if !strings.Contains(snippet, caret+"\n") {
		t.Errorf("expected caret under column 5, got %q", snippet)
	}
}

func TestParseSpans(t *testing.T) {
	ast := mustParse(t, "include lib\ncreate Rect\n\tx = 1 + 2\n")

	include := ast.Root.Body[0].(*Include)
	if got := include.Span().String(); got != "1:1 to 1:8" {
		t.Errorf("include span: expected 1:1 to 1:8, got %s", got)
	}

	create := ast.Root.Body[1].(*Create)
	if got := create.Span().String(); got != "2:8 to 2:12" {
		t.Errorf("create span: expected 2:8 to 2:12, got %s", got)
	}

	assign := create.Body[0].(*Assign)
	if got := assign.Span().String(); got != "3:4 to 3:5" {
		t.Errorf("assign span: expected 3:4 to 3:5, got %s", got)
	}

	sum := assign.Value.(*Binary)
	if got := sum.Span().String(); got != "3:8 to 3:9" {
		t.Errorf("binary span: expected 3:8 to 3:9, got %s", got)
	}
}

func TestParseComments(t *testing.T) {
	source := "# header\nx = 1 # trailing\n# footer\n"

	ast := mustParse(t, source)

	if len(ast.Root.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(ast.Root.Body))
	}
}
