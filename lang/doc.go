// Package lang provides lexing and parsing for the textmation scene
// description language. Source text is tokenized with an offside rule,
// so statement nesting follows indentation rather than braces, and parsed
// with a hand-written recursive descent parser into an [AST] of statement
// and expression nodes.
//
// The package knows nothing about elements, templates, or property
// semantics. It produces a faithful syntax tree with source spans on every
// node; the builder package gives the tree meaning.
//
// # Grammar
//
// Informal EBNF:
//
//	Scene       → Statement* EOF
//	Statement   → Include | Template | Create | Define | Assign
//	Include     → 'include' Name ('.' Name)*
//	Template    → 'template' Name ['inherit' Name] Body
//	Create      → 'create' Name ['as' Name] Body
//	Define      → Name ':=' RValue
//	Assign      → Name '=' RValue
//	Body        → Newline Indent Statement* Dedent | ε
//	RValue      → Or
//	Or          → Additive ('|' Additive)*
//	Additive    → Multiplicative (('+' | '-') Multiplicative)*
//	Multiplicative → Unary (('*' | '/') Unary)*
//	Unary       → ('-' | '+') Unary | Value
//	Value       → Name ['(' [RValue (',' RValue)*] ')'] ('.' Name)*
//	            | Number | String | '(' RValue ')'
//	Number      → Digits ['.' Digits] [Unit]
//	Unit        → '%' | 'px' | 's' | 'ms' | 'deg' | 'rad' | 'turn'
//
// 'include' and 'template' statements are only permitted at the top level.
// The words true, false, and infinite parse as the numbers 1, 0, and +Inf.
//
// # Indentation
//
// A statement body is the block of statements indented one level deeper
// than its header. Indentation is matched textually: a nested block must
// repeat the exact leading whitespace of its enclosing line before its own
// additional whitespace, so tabs and spaces cannot be mixed across levels.
// Blank lines and lines holding only a comment never open or close a
// block, and lines join implicitly inside parentheses, so call arguments
// may be split across lines. Comments run from '#' to the end of the line.
//
// # Example
//
//	create Scene
//		width = 200
//		height = 200
//
//		create Rectangle
//			size := 50%
//			width = size
//			height = size
//			fill = rgb(255, 128, 0)
//
//			create Animation
//				create Keyframe
//					time = 0s
//					x = 0
//				create Keyframe
//					time = 2s
//					x = 100
//
// # Parsing and caching
//
// [ParseString] parses a source string. [ParseReader] drains a reader and
// caches the resulting tree keyed by a hash of its contents, so repeated
// parses of an unchanged file are free. [ClearCache] discards all cached
// trees.
package lang
