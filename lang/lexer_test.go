package lang

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func mustTokenize(t *testing.T, source string) []Token {
	t.Helper()

	tokens, err := tokenize(source)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	return tokens
}

func tokenKinds(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestTokenizeSimple(t *testing.T) {
	tokens := mustTokenize(t, "x = 1\n")

	want := []Kind{TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline, TokenEndOfStream}
	if got := tokenKinds(tokens); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}

	if tokens[0].Text != "x" || tokens[1].Text != "=" || tokens[2].Text != "1" {
		t.Errorf("unexpected token texts: %q %q %q",
			tokens[0].Text, tokens[1].Text, tokens[2].Text)
	}
}

func TestTokenizeSpans(t *testing.T) {
	tokens := mustTokenize(t, "create Rect\n")

	tests := []struct {
		want  string
		index int
	}{
		{index: 0, want: "1:1 to 1:7"},
		{index: 1, want: "1:8 to 1:12"},
		{index: 2, want: "1:12 to 2:1"},
		{index: 3, want: "2:1 to 2:1"},
	}

	for _, tt := range tests {
		if got := tokens[tt.index].Span.String(); got != tt.want {
			t.Errorf("token %d: expected span %s, got %s", tt.index, tt.want, got)
		}
	}
}

func TestTokenizeIndentation(t *testing.T) {
	source := "create Scene\n\twidth = 100\n\theight = 50\ncreate Other\n"

	want := []Kind{
		TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenIndent, TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenDedent, TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenEndOfStream,
	}

	if got := tokenKinds(mustTokenize(t, source)); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}
}

func TestTokenizeNestedBlocks(t *testing.T) {
	source := "create A\n\tcreate B\n\t\tb = 2\nc = 3\n"

	want := []Kind{
		TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenIndent, TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenIndent, TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenDedent, TokenDedent, TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenEndOfStream,
	}

	if got := tokenKinds(mustTokenize(t, source)); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}
}

func TestTokenizeDedentAtEndOfInput(t *testing.T) {
	tokens := mustTokenize(t, "create A\n\tx = 1")

	want := []Kind{
		TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenIndent, TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenDedent, TokenEndOfStream,
	}

	if got := tokenKinds(tokens); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}
}

func TestTokenizeDedentMismatch(t *testing.T) {
	_, err := tokenize("create A\n\t\tx = 1\n\ty = 2\n")
	if err == nil {
		t.Fatal("expected error for mismatched unindent")
	}

	if !strings.Contains(err.Error(), "Unindent does not match any outer indentation level") {
		t.Errorf("unexpected error: %v", err)
	}

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}

	if pe.Span.Begin.Line != 3 {
		t.Errorf("expected error on line 3, got %d", pe.Span.Begin.Line)
	}
}

func TestTokenizeBlankAndCommentLines(t *testing.T) {
	source := "create A\n\n# note\n\tx = 1\n"

	want := []Kind{
		TokenIdentifier, TokenIdentifier, TokenNewline,
		TokenComment, TokenNewline,
		TokenIndent, TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenDedent, TokenEndOfStream,
	}

	tokens := mustTokenize(t, source)
	if got := tokenKinds(tokens); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}

	if tokens[3].Text != "# note" {
		t.Errorf("expected comment text %q, got %q", "# note", tokens[3].Text)
	}
}

func TestTokenizeTrailingComment(t *testing.T) {
	tokens := mustTokenize(t, "x = 1 # answer\n")

	want := []Kind{
		TokenIdentifier, TokenSymbol, TokenNumber,
		TokenComment, TokenNewline, TokenEndOfStream,
	}

	if got := tokenKinds(tokens); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}

	if tokens[3].Text != "# answer" {
		t.Errorf("expected comment text %q, got %q", "# answer", tokens[3].Text)
	}
}

func findToken(tokens []Token, kind Kind) (Token, bool) {
	for _, tok := range tokens {
		if tok.Kind == kind {
			return tok, true
		}
	}

	return Token{}, false
}

func TestTokenizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `s = "hello"`, want: "hello"},
		{name: "empty", input: `s = ""`, want: ""},
		{name: "escaped quote", input: `s = "a\"b"`, want: `a"b`},
		{name: "escaped backslash", input: `s = "a\\b"`, want: `a\b`},
		{name: "newline", input: `s = "a\nb"`, want: "a\nb"},
		{name: "tab", input: `s = "a\tb"`, want: "a\tb"},
		{name: "carriage return", input: `s = "a\rb"`, want: "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := findToken(mustTokenize(t, tt.input), TokenString)
			if !ok {
				t.Fatal("no string token produced")
			}

			if tok.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tok.Text)
			}
		})
	}
}

func TestTokenizeStringErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unterminated at end", input: `s = "abc`, want: "Unterminated string"},
		{name: "unterminated at newline", input: "s = \"abc\nt = 1\n", want: "Unterminated string"},
		{name: "invalid escape", input: `s = "a\qb"`, want: `Invalid escape sequence '\q'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenize(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer", input: "n = 42", want: "42"},
		{name: "fraction", input: "n = 2.5", want: "2.5"},
		{name: "percent", input: "n = 100%", want: "100%"},
		{name: "seconds", input: "n = 2.5s", want: "2.5s"},
		{name: "pixels", input: "n = 12px", want: "12px"},
		{name: "turns", input: "n = 0.25turn", want: "0.25turn"},
		{name: "unknown unit glued", input: "n = 3q", want: "3q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := findToken(mustTokenize(t, tt.input), TokenNumber)
			if !ok {
				t.Fatal("no number token produced")
			}

			if tok.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tok.Text)
			}
		})
	}
}

func TestTokenizeSymbols(t *testing.T) {
	tokens := mustTokenize(t, "a := b | c + d\n")

	var symbols []string

	for _, tok := range tokens {
		if tok.Kind == TokenSymbol {
			symbols = append(symbols, tok.Text)
		}
	}

	want := []string{":=", "|", "+"}
	if !slices.Equal(symbols, want) {
		t.Fatalf("expected symbols %v, got %v", want, symbols)
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lone colon", input: "a : b", want: "Unexpected character ':'"},
		{name: "at sign", input: "a = @", want: "Unexpected character '@'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenize(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestTokenizeParenthesesJoinLines(t *testing.T) {
	source := "fill = rgb(\n\t255,\n\t128,\n\t0)\n"

	tokens := mustTokenize(t, source)

	for _, tok := range tokens {
		if tok.Kind == TokenIndent || tok.Kind == TokenDedent {
			t.Fatalf("unexpected %s inside parentheses", tok.Kind)
		}
	}

	var numbers []string

	for _, tok := range tokens {
		if tok.Kind == TokenNumber {
			numbers = append(numbers, tok.Text)
		}
	}

	want := []string{"255", "128", "0"}
	if !slices.Equal(numbers, want) {
		t.Fatalf("expected numbers %v, got %v", want, numbers)
	}
}

func TestTokenizeCRLF(t *testing.T) {
	tokens := mustTokenize(t, "a = 1\r\nb = 2\r\n")

	want := []Kind{
		TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenIdentifier, TokenSymbol, TokenNumber, TokenNewline,
		TokenEndOfStream,
	}

	if got := tokenKinds(tokens); !slices.Equal(got, want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}

	if line := tokens[4].Span.Begin.Line; line != 2 {
		t.Errorf("expected second statement on line 2, got %d", line)
	}
}
