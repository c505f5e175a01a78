package value

import (
	"iter"
	"slices"
	"strings"
)

// Binding is a named value slot that expressions can reference: an element
// property. Bindings participate in evaluation through the Context so that
// re-entrant chains are detected, and they carry the relative dimension
// that percentages stored under them resolve against.
type Binding interface {
	Value
	// BindingName reports the property name, used in cycle reports.
	BindingName() string
	// BindingOwner reports the owning element's type name, used in cycle
	// reports.
	BindingOwner() string
	// Relative returns the binding a Percent stored under this binding
	// resolves against, or nil when the binding has no relative dimension.
	Relative() Binding
}

// Context carries the stack of bindings currently being evaluated. The
// zero value is ready to use. A Context must not be shared across
// concurrent evaluations.
type Context struct {
	frames []Binding
}

// Enter pushes b onto the evaluation stack. It fails with a *CycleError
// when b is already being evaluated.
func (c *Context) Enter(b Binding) error {
	if i := slices.Index(c.frames, b); i >= 0 {
		return &CycleError{Path: append(slices.Clone(c.frames[i:]), b)}
	}

	c.frames = append(c.frames, b)

	return nil
}

// Leave pops the innermost binding off the evaluation stack.
func (c *Context) Leave() {
	c.frames = c.frames[:len(c.frames)-1]
}

// Current returns the innermost binding being evaluated, or nil when the
// stack is empty.
func (c *Context) Current() Binding {
	if len(c.frames) == 0 {
		return nil
	}

	return c.frames[len(c.frames)-1]
}

// Eval reduces v to a literal under a fresh evaluation context.
func Eval(v Value) (Value, error) {
	var ctx Context

	return v.Eval(&ctx)
}

// UnaryOp applies a sign operator to an operand expression. The result
// type is computed once at construction.
type UnaryOp struct {
	op      Op
	operand Value
	typ     Type
}

// NewUnaryOp constructs a unary expression, failing when the operand's
// type does not support the operator.
func NewUnaryOp(op Op, operand Value) (*UnaryOp, error) {
	typ, err := unaryType(op, operand.Type())
	if err != nil {
		return nil, err
	}

	return &UnaryOp{op: op, operand: operand, typ: typ}, nil
}

func (u *UnaryOp) Type() Type { return u.typ }

func (u *UnaryOp) Eval(ctx *Context) (Value, error) {
	operand, err := u.operand.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return unaryEval(u.op, operand)
}

func (u *UnaryOp) Constant() bool { return u.operand.Constant() }

func (u *UnaryOp) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		yield(u.operand)
	}
}

func (u *UnaryOp) String() string {
	return string(u.op) + u.operand.String()
}

// BinOp combines two operand expressions with a binary operator. The
// result type is computed once at construction from the operands' static
// types; evaluation applies the operator to the evaluated literals.
type BinOp struct {
	op       Op
	lhs, rhs Value
	typ      Type
}

// NewBinOp constructs a binary expression, failing when the operand types
// are not in the unit matrix for the operator.
func NewBinOp(op Op, lhs, rhs Value) (*BinOp, error) {
	typ, err := binaryType(op, lhs.Type(), rhs.Type())
	if err != nil {
		return nil, err
	}

	return &BinOp{op: op, lhs: lhs, rhs: rhs, typ: typ}, nil
}

func (b *BinOp) Type() Type { return b.typ }

func (b *BinOp) Eval(ctx *Context) (Value, error) {
	lhs, err := b.lhs.Eval(ctx)
	if err != nil {
		return nil, err
	}

	rhs, err := b.rhs.Eval(ctx)
	if err != nil {
		return nil, err
	}

	return binaryEval(b.op, lhs, rhs)
}

func (b *BinOp) Constant() bool { return b.lhs.Constant() && b.rhs.Constant() }

func (b *BinOp) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if !yield(b.lhs) {
			return
		}

		yield(b.rhs)
	}
}

func (b *BinOp) String() string {
	return "(" + b.lhs.String() + " " + string(b.op) + " " + b.rhs.String() + ")"
}

// Func is a callable consumed by Call expressions: a builtin from the
// function registry.
type Func interface {
	// Name reports the function name as written in source.
	Name() string
	// ReturnType reports the type every call to the function yields.
	ReturnType() Type
	// Check validates argument count and static types, reporting the
	// registry's own diagnostics on mismatch.
	Check(args []Value) error
	// Call applies the function to evaluated literal arguments.
	Call(args []Value) (Value, error)
}

// Call invokes a registered function with argument expressions. Argument
// arity and static types are checked at construction; evaluation reduces
// the arguments left to right before dispatch.
type Call struct {
	fn   Func
	args []Value
}

// NewCall constructs a call expression, failing when the arguments do not
// match the function's signature.
func NewCall(fn Func, args []Value) (*Call, error) {
	if err := fn.Check(args); err != nil {
		return nil, err
	}

	return &Call{fn: fn, args: args}, nil
}

func (c *Call) Type() Type { return c.fn.ReturnType() }

func (c *Call) Eval(ctx *Context) (Value, error) {
	args := make([]Value, len(c.args))

	for i, arg := range c.args {
		v, err := arg.Eval(ctx)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return c.fn.Call(args)
}

func (c *Call) Constant() bool {
	for _, arg := range c.args {
		if !arg.Constant() {
			return false
		}
	}

	return true
}

func (c *Call) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, arg := range c.args {
			if !yield(arg) {
				return
			}
		}
	}
}

func (c *Call) String() string {
	args := make([]string, len(c.args))
	for i, arg := range c.args {
		args[i] = arg.String()
	}

	return c.fn.Name() + "(" + strings.Join(args, ", ") + ")"
}
