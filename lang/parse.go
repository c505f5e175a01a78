package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ParseString parses source text into an AST.
//
// Any returned error unwraps to a *ParseError carrying the failing span
// and the source for context rendering.
func ParseString(ctx context.Context, source string, opts ...Option) (*AST, error) {
	ast := new(AST)

	applyDefaults(ast)
	applyOptions(ast, opts...)

	ast.Source = source

	tokens, err := tokenize(source)
	if err != nil {
		return nil, attachSource(err, source)
	}

	ast.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("source_bytes", len(source)),
		slog.Int("token_count", len(tokens)))

	p := &parser{tokens: tokens}

	root, err := p.parseScene()
	if err != nil {
		return nil, attachSource(err, source)
	}

	ast.Root = root

	ast.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(root.Body)))

	return ast, nil
}

// ParseExpr parses source text as a single expression. Leading and
// trailing whitespace is ignored, and anything left over after the
// expression is an error.
func ParseExpr(source string) (Expr, error) {
	source = strings.TrimSpace(source)

	tokens, err := tokenize(source)
	if err != nil {
		return nil, attachSource(err, source)
	}

	p := &parser{tokens: tokens}

	p.skipNewlines()

	expr, err := p.parseRValue()
	if err != nil {
		return nil, attachSource(err, source)
	}

	p.skipNewlines()

	if _, err := p.expect(TokenEndOfStream); err != nil {
		return nil, attachSource(err, source)
	}

	return expr, nil
}

// attachSource stores the source on the ParseError in err's chain so that
// Context can render the offending line.
func attachSource(err error, source string) error {
	pe := &ParseError{}
	if errors.As(err, &pe) {
		pe.Source = source
	}

	return err
}

// parser consumes a token stream produced by tokenize. Comment tokens are
// skipped wherever they appear.
type parser struct {
	tokens []Token
	pos    int
	depth  int // open parenthesis depth
}

// invisible reports whether the grammar never sees the token: comments
// always, and newlines inside parentheses, where lines join implicitly.
func (p *parser) invisible(tok Token) bool {
	if tok.Kind == TokenComment {
		return true
	}

	return p.depth > 0 && tok.Kind == TokenNewline
}

func (p *parser) peek() Token {
	for i := p.pos; i < len(p.tokens); i++ {
		if !p.invisible(p.tokens[i]) {
			return p.tokens[i]
		}
	}

	return p.tokens[len(p.tokens)-1]
}

func (p *parser) next() Token {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		if !p.invisible(tok) {
			return tok
		}
	}

	return p.tokens[len(p.tokens)-1]
}

func (p *parser) peekIs(kind Kind, texts ...string) bool {
	tok := p.peek()
	if tok.Kind != kind {
		return false
	}

	return len(texts) == 0 || slices.Contains(texts, tok.Text)
}

func (p *parser) nextIf(kind Kind, texts ...string) bool {
	if p.peekIs(kind, texts...) {
		p.next()
		return true
	}

	return false
}

func (p *parser) skipNewlines() {
	for p.pos < len(p.tokens) {
		switch p.tokens[p.pos].Kind {
		case TokenNewline, TokenComment:
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) fail(tok Token, format string, args ...any) error {
	return NewParseError(fmt.Sprintf(format, args...), tok.Span)
}

// expect consumes the next token and verifies its kind. When texts are
// given the token text must also match one of them.
func (p *parser) expect(kind Kind, texts ...string) (Token, error) {
	tok := p.next()

	if tok.Kind != kind {
		if len(texts) > 0 {
			return tok, p.fail(tok, "Unexpected %s, expected %s",
				describe(tok), quoteJoin(texts, " or "))
		}

		return tok, p.fail(tok, "Unexpected %s, expected %s", describe(tok), kind)
	}

	if len(texts) > 0 && !slices.Contains(texts, tok.Text) {
		return tok, p.fail(tok, "Unexpected %q, expected %s", tok.Text, quoteJoin(texts, " or "))
	}

	return tok, nil
}

// name consumes an identifier token, rejecting keywords.
func (p *parser) name() (Token, error) {
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return tok, err
	}

	if isKeyword(tok.Text) {
		return tok, p.fail(tok, "Unexpected keyword %q", tok.Text)
	}

	return tok, nil
}

func (p *parser) unexpected() error {
	tok := p.next()
	return p.fail(tok, "Unexpected %s", tok)
}

// describe renders a token's text for an expectation message, falling
// back to the kind name for tokens without text.
func describe(tok Token) string {
	if tok.Text == "" {
		return tok.Kind.String()
	}

	return strconv.Quote(tok.Text)
}

func quoteJoin(texts []string, sep string) string {
	quoted := make([]string, len(texts))
	for i, text := range texts {
		quoted[i] = strconv.Quote(text)
	}

	return strings.Join(quoted, sep)
}

// parseScene parses the whole source as the body of an implicit
// top-level Scene element.
func (p *parser) parseScene() (*Create, error) {
	body, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}

	p.skipNewlines()

	if _, err := p.expect(TokenEndOfStream); err != nil {
		return nil, err
	}

	return &Create{Type: "Scene", Body: body}, nil
}

// parseStatements parses statements until a token that cannot begin one.
// Template and include statements are only allowed at the top level.
func (p *parser) parseStatements(topLevel bool) ([]Stmt, error) {
	var body []Stmt

	for {
		p.skipNewlines()

		var (
			stmt Stmt
			err  error
		)

		switch {
		case p.peekIs(TokenIdentifier, "create"):
			stmt, err = p.parseCreate()

		case p.peekIs(TokenIdentifier, "template"):
			if !topLevel {
				return nil, p.fail(p.peek(), "Template not allowed")
			}

			stmt, err = p.parseTemplate()

		case p.peekIs(TokenIdentifier, "include"):
			if !topLevel {
				return nil, p.fail(p.peek(), "Include not allowed")
			}

			stmt, err = p.parseInclude()

		case p.peekIs(TokenIdentifier):
			stmt, err = p.parseAssignment()

		default:
			return body, nil
		}

		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}
}

func (p *parser) parseInclude() (*Include, error) {
	keyword, err := p.expect(TokenIdentifier, "include")
	if err != nil {
		return nil, err
	}

	tok, err := p.name()
	if err != nil {
		return nil, err
	}

	path := []string{tok.Text}

	for p.nextIf(TokenSymbol, ".") {
		tok, err = p.name()
		if err != nil {
			return nil, err
		}

		path = append(path, tok.Text)
	}

	return &Include{Path: path, span: keyword.Span}, nil
}

func (p *parser) parseCreate() (*Create, error) {
	if _, err := p.expect(TokenIdentifier, "create"); err != nil {
		return nil, err
	}

	typeTok, err := p.name()
	if err != nil {
		return nil, err
	}

	var name string

	if p.nextIf(TokenIdentifier, "as") {
		nameTok, err := p.name()
		if err != nil {
			return nil, err
		}

		name = nameTok.Text
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &Create{Type: typeTok.Text, Name: name, Body: body, span: typeTok.Span}, nil
}

func (p *parser) parseTemplate() (*Template, error) {
	if _, err := p.expect(TokenIdentifier, "template"); err != nil {
		return nil, err
	}

	nameTok, err := p.name()
	if err != nil {
		return nil, err
	}

	var inherit string

	if p.nextIf(TokenIdentifier, "inherit") {
		inheritTok, err := p.name()
		if err != nil {
			return nil, err
		}

		inherit = inheritTok.Text
	}

	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &Template{Name: nameTok.Text, Inherit: inherit, Body: body, span: nameTok.Span}, nil
}

// parseBody parses an optional indented statement block. A statement
// without one has an empty body.
func (p *parser) parseBody() ([]Stmt, error) {
	p.skipNewlines()

	if !p.peekIs(TokenIndent) {
		return nil, nil
	}

	p.next()

	body, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}

	p.skipNewlines()

	if _, err := p.expect(TokenDedent); err != nil {
		return nil, err
	}

	return body, nil
}

func (p *parser) parseAssignment() (Stmt, error) {
	name, err := p.parseLValue()
	if err != nil {
		return nil, err
	}

	op, err := p.expect(TokenSymbol, "=", ":=")
	if err != nil {
		return nil, err
	}

	value, err := p.parseRValue()
	if err != nil {
		return nil, err
	}

	if op.Text == ":=" {
		return &Define{Name: name, Value: value, span: op.Span}, nil
	}

	return &Assign{Name: name, Value: value, span: op.Span}, nil
}

func (p *parser) parseLValue() (*Name, error) {
	tok, err := p.name()
	if err != nil {
		return nil, err
	}

	if isLiteral(tok.Text) {
		return nil, p.fail(tok, "Unexpected literal %q, expected %s", tok.Text, TokenIdentifier)
	}

	return &Name{Name: tok.Text, span: tok.Span}, nil
}

func (p *parser) parseRValue() (Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, error) {
	result, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for p.peekIs(TokenSymbol, "|") {
		op := p.next()

		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}

		result = &Binary{Op: op.Text, LHS: result, RHS: rhs, span: op.Span}
	}

	return result, nil
}

func (p *parser) parseAdditive() (Expr, error) {
	result, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.peekIs(TokenSymbol, "+", "-") {
		op := p.next()

		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		result = &Binary{Op: op.Text, LHS: result, RHS: rhs, span: op.Span}
	}

	return result, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	result, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peekIs(TokenSymbol, "*", "/") {
		op := p.next()

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		result = &Binary{Op: op.Text, LHS: result, RHS: rhs, span: op.Span}
	}

	return result, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peekIs(TokenSymbol, "-", "+") {
		op := p.next()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &Unary{Op: op.Text, Operand: operand, span: op.Span}, nil
	}

	return p.parseValue()
}

func (p *parser) parseValue() (Expr, error) {
	switch {
	case p.peekIs(TokenIdentifier):
		return p.parseNameValue()

	case p.peekIs(TokenNumber):
		return p.parseNumber(p.next())

	case p.peekIs(TokenString):
		tok := p.next()
		return &String{Value: tok.Text, span: tok.Span}, nil

	case p.peekIs(TokenSymbol, "("):
		p.next()
		p.depth++

		value, err := p.parseRValue()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenSymbol, ")"); err != nil {
			return nil, err
		}

		p.depth--

		return value, nil

	default:
		return nil, p.unexpected()
	}
}

// parseNameValue parses an expression beginning with an identifier: a
// literal word, a function call, or a property reference with optional
// member accesses.
func (p *parser) parseNameValue() (Expr, error) {
	tok, err := p.name()
	if err != nil {
		return nil, err
	}

	switch tok.Text {
	case "true":
		return &Number{Value: 1, span: tok.Span}, nil
	case "false":
		return &Number{Value: 0, span: tok.Span}, nil
	case "infinite":
		return &Number{Value: math.Inf(1), span: tok.Span}, nil
	}

	if p.nextIf(TokenSymbol, "(") {
		p.depth++

		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		p.depth--

		return &Call{Name: tok.Text, Args: args, span: tok.Span}, nil
	}

	var result Expr = &Name{Name: tok.Text, span: tok.Span}

	for {
		dot := p.peek()
		if !p.nextIf(TokenSymbol, ".") {
			break
		}

		memberTok, err := p.name()
		if err != nil {
			return nil, err
		}

		if isLiteral(memberTok.Text) {
			return nil, p.fail(memberTok,
				"Unexpected literal %q, expected %s", memberTok.Text, TokenIdentifier)
		}

		member := &Name{Name: memberTok.Text, span: memberTok.Span}
		result = &Member{Value: result, Name: member, span: dot.Span}
	}

	return result, nil
}

// parseArgs parses a call argument list after the opening parenthesis.
// Arguments may span lines; the caller holds the parenthesis depth open
// so newlines join implicitly.
func (p *parser) parseArgs() ([]Expr, error) {
	var args []Expr

	if p.nextIf(TokenSymbol, ")") {
		return args, nil
	}

	for {
		arg, err := p.parseRValue()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		tok, err := p.expect(TokenSymbol, ")", ",")
		if err != nil {
			return nil, err
		}

		if tok.Text == ")" {
			return args, nil
		}
	}
}

// parseNumber splits a number token into its numeric part and unit
// suffix, validating both.
func (p *parser) parseNumber(tok Token) (*Number, error) {
	numeric, unit := splitNumber(tok.Text)
	if numeric == "" {
		return nil, p.fail(tok, "Invalid number format %q", tok.Text)
	}

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return nil, p.fail(tok, "Invalid number format %q", tok.Text)
	}

	if unit != "" && !isUnit(unit) {
		return nil, p.fail(tok, "Unexpected unit %q, expected any of %s",
			unit, quoteJoin(Units, ", "))
	}

	return &Number{Value: value, Unit: unit, span: tok.Span}, nil
}

// splitNumber separates leading digits with an optional fraction from
// whatever trails them.
func splitNumber(text string) (numeric, unit string) {
	i := 0
	for i < len(text) && isDigit(text[i]) {
		i++
	}

	if i == 0 {
		return "", text
	}

	if i < len(text) && text[i] == '.' {
		j := i + 1
		for j < len(text) && isDigit(text[j]) {
			j++
		}

		if j > i+1 {
			i = j
		}
	}

	return text[:i], text[i:]
}
