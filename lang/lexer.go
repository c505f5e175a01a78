package lang

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lexer tokenizes source text line by line, translating indentation
// changes into Indent and Dedent tokens.
type lexer struct {
	src     string
	indents []string // indentation stack, root entry ""
	tokens  []Token
	pos     int // byte offset into src
	line    int // 1-based line of pos
	col     int // 1-based column of pos
	depth   int // open parenthesis depth
}

// tokenize converts source text into a token stream ending in
// TokenEndOfStream. The returned error is always a *ParseError.
func tokenize(src string) ([]Token, error) {
	l := &lexer{
		src:     src,
		indents: []string{""},
		tokens:  make([]Token, 0, len(src)/4),
		line:    1,
		col:     1,
	}

	if err := l.run(); err != nil {
		return nil, err
	}

	return l.tokens, nil
}

func (l *lexer) run() error {
	for !l.eof() {
		indent := l.scanIndent()

		if l.eof() {
			break
		}

		switch l.src[l.pos] {
		case '\n', '\r':
			// Blank line, no tokens and no indentation change.
			l.consumeLineBreak()

		case '#':
			// A line holding only a comment keeps the enclosing block
			// open regardless of how it is indented.
			l.scanComment()
			l.endLine()

		default:
			// Inside parentheses lines join implicitly, so indentation
			// changes are not tracked.
			if l.depth == 0 {
				if err := l.applyIndent(indent); err != nil {
					return err
				}
			}

			if err := l.scanTokens(); err != nil {
				return err
			}

			l.endLine()
		}
	}

	end := l.position()
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TokenDedent, "", Span{Begin: end, End: end})
	}

	l.emit(TokenEndOfStream, "", Span{Begin: end, End: end})

	return nil
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) position() Position { return Position{Line: l.line, Column: l.col} }

// advance consumes one byte, keeping line and column in sync.
func (l *lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++

	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return ch
}

func (l *lexer) emit(kind Kind, text string, span Span) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Span: span})
}

func (l *lexer) fail(span Span, format string, args ...any) error {
	return NewParseError(fmt.Sprintf(format, args...), span)
}

// scanIndent consumes the leading whitespace of the current line and
// returns it verbatim.
func (l *lexer) scanIndent() string {
	start := l.pos

	for !l.eof() {
		if ch := l.src[l.pos]; ch != ' ' && ch != '\t' {
			break
		}

		l.advance()
	}

	return l.src[start:l.pos]
}

// applyIndent compares the indentation of a new line of tokens against the
// indentation stack, emitting Indent or Dedent tokens for any change.
// Indentation is matched textually: a deeper block must extend the exact
// whitespace of its enclosing level.
func (l *lexer) applyIndent(indent string) error {
	top := l.indents[len(l.indents)-1]
	if indent == top {
		return nil
	}

	span := Span{
		Begin: Position{Line: l.line, Column: 1},
		End:   Position{Line: l.line, Column: len(indent) + 1},
	}

	if strings.HasPrefix(indent, top) {
		l.indents = append(l.indents, indent)
		l.emit(TokenIndent, "", span)

		return nil
	}

	at := Span{Begin: span.Begin, End: span.Begin}
	for len(l.indents) > 1 && l.indents[len(l.indents)-1] != indent {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(TokenDedent, "", at)
	}

	if l.indents[len(l.indents)-1] != indent {
		return l.fail(span, "Unindent does not match any outer indentation level")
	}

	return nil
}

// scanTokens consumes the remainder of the current line.
func (l *lexer) scanTokens() error {
	for !l.eof() {
		switch ch := l.src[l.pos]; {
		case ch == ' ' || ch == '\t':
			l.advance()

		case ch == '\n' || ch == '\r':
			return nil

		case ch == '#':
			l.scanComment()
			return nil

		case isNameStart(ch):
			l.scanIdentifier()

		case isDigit(ch):
			l.scanNumber()

		case ch == '"':
			if err := l.scanString(); err != nil {
				return err
			}

		default:
			if err := l.scanSymbol(); err != nil {
				return err
			}
		}
	}

	return nil
}

// endLine emits the Newline token terminating the current line and
// consumes the line break. At the end of input the token is synthesized
// with an empty span.
func (l *lexer) endLine() {
	begin := l.position()
	l.consumeLineBreak()
	l.emit(TokenNewline, "", Span{Begin: begin, End: l.position()})
}

func (l *lexer) consumeLineBreak() {
	if !l.eof() && l.src[l.pos] == '\r' {
		l.advance()
	}

	if !l.eof() && l.src[l.pos] == '\n' {
		l.advance()
	}
}

func (l *lexer) scanComment() {
	begin := l.position()
	start := l.pos

	for !l.eof() {
		if ch := l.src[l.pos]; ch == '\n' || ch == '\r' {
			break
		}

		l.advance()
	}

	l.emit(TokenComment, l.src[start:l.pos], Span{Begin: begin, End: l.position()})
}

func (l *lexer) scanIdentifier() {
	begin := l.position()
	start := l.pos

	for !l.eof() && isNameChar(l.src[l.pos]) {
		l.advance()
	}

	l.emit(TokenIdentifier, l.src[start:l.pos], Span{Begin: begin, End: l.position()})
}

// scanNumber consumes digits, an optional fraction, and any glued unit
// suffix. The parser splits and validates the unit.
func (l *lexer) scanNumber() {
	begin := l.position()
	start := l.pos

	for !l.eof() && isDigit(l.src[l.pos]) {
		l.advance()
	}

	if !l.eof() && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance()

		for !l.eof() && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}

	for !l.eof() && isUnitChar(l.src[l.pos]) {
		l.advance()
	}

	l.emit(TokenNumber, l.src[start:l.pos], Span{Begin: begin, End: l.position()})
}

func (l *lexer) scanString() error {
	begin := l.position()

	l.advance() // opening quote

	var text strings.Builder

	for {
		if l.eof() {
			return l.fail(Span{Begin: begin, End: l.position()}, "Unterminated string")
		}

		ch := l.src[l.pos]
		if ch == '\n' || ch == '\r' {
			return l.fail(Span{Begin: begin, End: l.position()}, "Unterminated string")
		}

		l.advance()

		switch ch {
		case '"':
			l.emit(TokenString, text.String(), Span{Begin: begin, End: l.position()})
			return nil

		case '\\':
			if l.eof() {
				return l.fail(Span{Begin: begin, End: l.position()}, "Unterminated string")
			}

			escBegin := Position{Line: l.line, Column: l.col - 1}
			esc := l.advance()

			switch esc {
			case '\\':
				text.WriteByte('\\')
			case '"':
				text.WriteByte('"')
			case 'n':
				text.WriteByte('\n')
			case 't':
				text.WriteByte('\t')
			case 'r':
				text.WriteByte('\r')
			default:
				return l.fail(Span{Begin: escBegin, End: l.position()},
					`Invalid escape sequence '\%c'`, esc)
			}

		default:
			text.WriteByte(ch)
		}
	}
}

func (l *lexer) scanSymbol() error {
	begin := l.position()

	switch ch := l.src[l.pos]; ch {
	case '=', '+', '-', '*', '/', '|', '(', ')', ',', '.':
		if ch == '(' {
			l.depth++
		} else if ch == ')' && l.depth > 0 {
			l.depth--
		}

		l.advance()
		l.emit(TokenSymbol, string(ch), Span{Begin: begin, End: l.position()})

		return nil

	case ':':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '=' {
			l.advance()
			l.advance()
			l.emit(TokenSymbol, ":=", Span{Begin: begin, End: l.position()})

			return nil
		}
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	end := Position{Line: l.line, Column: l.col + size}

	return l.fail(Span{Begin: begin, End: end}, "Unexpected character %q", r)
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isNameChar(ch byte) bool { return isNameStart(ch) || isDigit(ch) }

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isUnitChar(ch byte) bool {
	return ch == '%' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
