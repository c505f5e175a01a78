package lang

import (
	"github.com/Vallentin/textmation/log"
)

// AST is the parsed syntax tree of one scene source.
//
// Root is the implicit top-level Scene element: every statement of the
// source is part of its body. Source holds the original input for
// diagnostics.
type AST struct {
	Root   *Create
	Source string
	logger log.Logger
}

// Option configures an AST during parsing.
type Option func(*AST)

// WithLogger sets the logger used for parse tracing.
func WithLogger(logger log.Logger) Option {
	return func(ast *AST) { ast.logger = logger }
}

// applyDefaults sets default option values on an AST.
func applyDefaults(ast *AST) {
	ast.logger = log.Make(nil)
}

// applyOptions applies functional options to an AST.
func applyOptions(ast *AST, opts ...Option) {
	for _, opt := range opts {
		opt(ast)
	}
}

// Node is a syntax tree node with a source span.
type Node interface {
	Span() Span
}

// Stmt is a statement node: one line of a scene source, possibly with a
// nested body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node: the right-hand side of an assignment or a
// part of one.
type Expr interface {
	Node
	exprNode()
}

// Include imports the templates of another scene file. Path holds the
// dotted path segments in order.
type Include struct {
	Path []string
	span Span
}

func (n *Include) Span() Span { return n.span }
func (n *Include) stmtNode()  {}

// Create instantiates an element or template. Name holds the optional
// name the instance was created as, or the empty string.
//
// The root of every AST is a Create of type "Scene" with a zero span.
type Create struct {
	Type string
	Name string
	Body []Stmt
	span Span
}

func (n *Create) Span() Span { return n.span }
func (n *Create) stmtNode()  {}

// Template declares a reusable element body. Inherit names the template
// it extends, or is empty for the default base.
type Template struct {
	Name    string
	Inherit string
	Body    []Stmt
	span    Span
}

func (n *Template) Span() Span { return n.span }
func (n *Template) stmtNode()  {}

// Define declares a new property on the enclosing element.
type Define struct {
	Name  *Name
	Value Expr
	span  Span
}

func (n *Define) Span() Span { return n.span }
func (n *Define) stmtNode()  {}

// Assign sets an existing property of the enclosing element or one of
// its ancestors.
type Assign struct {
	Name  *Name
	Value Expr
	span  Span
}

func (n *Assign) Span() Span { return n.span }
func (n *Assign) stmtNode()  {}

// Name references a property or element by name.
type Name struct {
	Name string
	span Span
}

func (n *Name) Span() Span { return n.span }
func (n *Name) exprNode()  {}

// Number is a numeric literal with an optional unit suffix. The literals
// true, false, and infinite parse as Numbers with values 1, 0, and +Inf.
type Number struct {
	Unit  string
	Value float64
	span  Span
}

func (n *Number) Span() Span { return n.span }
func (n *Number) exprNode()  {}

// String is a string literal holding its decoded value.
type String struct {
	Value string
	span  Span
}

func (n *String) Span() Span { return n.span }
func (n *String) exprNode()  {}

// Unary applies a prefix operator, "-" or "+", to its operand.
type Unary struct {
	Op      string
	Operand Expr
	span    Span
}

func (n *Unary) Span() Span { return n.span }
func (n *Unary) exprNode()  {}

// Binary applies an infix operator, one of "+", "-", "*", "/", or "|",
// to its operands.
type Binary struct {
	Op   string
	LHS  Expr
	RHS  Expr
	span Span
}

func (n *Binary) Span() Span { return n.span }
func (n *Binary) exprNode()  {}

// Call invokes a builtin function.
type Call struct {
	Name string
	Args []Expr
	span Span
}

func (n *Call) Span() Span { return n.span }
func (n *Call) exprNode()  {}

// Member accesses a member of a value, as in TextAnchor.Center or
// other.width. The span anchors on the dot.
type Member struct {
	Value Expr
	Name  *Name
	span  Span
}

func (n *Member) Span() Span { return n.span }
func (n *Member) exprNode()  {}
