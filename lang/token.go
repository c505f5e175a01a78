package lang

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	// TokenEndOfStream is the final token of every stream.
	TokenEndOfStream Kind = iota

	// TokenNewline terminates a line holding tokens.
	TokenNewline

	// TokenIndent opens a block indented deeper than the line above it.
	TokenIndent

	// TokenDedent closes a block opened by a matching TokenIndent.
	TokenDedent

	// TokenComment spans from '#' to the end of its line.
	TokenComment

	// TokenIdentifier is a name: a letter or underscore followed by
	// letters, digits, and underscores. Keywords are identifiers.
	TokenIdentifier

	// TokenNumber is a numeric literal with an optional glued unit suffix.
	TokenNumber

	// TokenString is a double-quoted string literal. The token text holds
	// the decoded contents without the quotes.
	TokenString

	// TokenSymbol is an operator or punctuation token.
	TokenSymbol
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case TokenEndOfStream:
		return "EndOfStream"
	case TokenNewline:
		return "Newline"
	case TokenIndent:
		return "Indent"
	case TokenDedent:
		return "Dedent"
	case TokenComment:
		return "Comment"
	case TokenIdentifier:
		return "Identifier"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenSymbol:
		return "Symbol"
	}

	return "Unknown"
}

// Position is a 1-based line and column location in source text.
type Position struct {
	Line   int
	Column int
}

// Span covers source text from Begin up to but not including End.
type Span struct {
	Begin Position
	End   Position
}

// String formats the span the way diagnostics embed it.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d to %d:%d",
		s.Begin.Line, s.Begin.Column, s.End.Line, s.End.Column)
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool { return s == Span{} }

// Token is a single lexical token with its source span.
type Token struct {
	Text string
	Span Span
	Kind Kind
}

// String renders the token for diagnostics. Tokens without meaningful text
// render as their kind alone.
func (t Token) String() string {
	switch t.Kind {
	case TokenEndOfStream, TokenNewline, TokenIndent, TokenDedent:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s %s", t.Kind, strconv.Quote(t.Text))
	}
}

// Keywords are the identifiers reserved by the statement grammar.
// They cannot name elements, templates, or properties.
var Keywords = []string{"create", "as", "template", "inherit", "include"}

// Literals are the identifiers that parse as numeric constants.
var Literals = []string{"true", "false", "infinite"}

// Units are the unit suffixes accepted on numeric literals.
var Units = []string{"%", "px", "s", "ms", "deg", "rad", "turn"}

func isKeyword(name string) bool { return slices.Contains(Keywords, name) }

func isLiteral(name string) bool { return slices.Contains(Literals, name) }

func isUnit(unit string) bool { return slices.Contains(Units, unit) }
