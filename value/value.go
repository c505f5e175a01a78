package value

import (
	"iter"
	"math"
	"strconv"
)

// Value is a literal or an expression in the scene language. Literals
// evaluate to themselves; expressions reduce to a literal under a Context.
type Value interface {
	// Type reports the static unit category of the value. For expressions
	// this is the type computed from the operand types at construction;
	// for property references it is the referenced property's current type.
	Type() Type
	// Eval reduces the value to a literal. Percentages resolve against the
	// innermost property binding of ctx; property references re-enter their
	// binding through ctx so that circular chains are detected.
	Eval(ctx *Context) (Value, error)
	// Constant reports whether the value contains no property references
	// and no dynamically assigned (keyframed) bindings.
	Constant() bool
	// Values iterates over the direct sub-values of the receiver. Literals
	// yield nothing.
	Values() iter.Seq[Value]
	// String renders the value as it would be written in source, and is
	// also the form used by string concatenation.
	String() string
}

func noValues() iter.Seq[Value] {
	return func(func(Value) bool) {}
}

// FormatFloat renders a magnitude without an exponent and without
// superfluous zeros. Infinities render as the language literal.
func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "infinite"
	}

	if math.IsInf(f, -1) {
		return "-infinite"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Number is a dimensionless numeric value.
type Number float64

func (Number) Type() Type { return TypeNumber }

func (n Number) Eval(*Context) (Value, error) { return n, nil }

func (Number) Constant() bool { return true }

func (Number) Values() iter.Seq[Value] { return noValues() }

func (n Number) String() string { return FormatFloat(float64(n)) }

// Percent is a magnitude relative to a named dimension of the parent
// element. It only becomes a concrete Number during evaluation, by scaling
// the relative property of the innermost binding on the evaluation stack.
type Percent float64

func (Percent) Type() Type { return TypePercent }

func (p Percent) Eval(ctx *Context) (Value, error) {
	owner := ctx.Current()
	if owner == nil {
		return nil, ErrNoBinding
	}

	rel := owner.Relative()
	if rel == nil {
		return nil, NewErrorf("Cannot resolve percentage in property %q without a relative dimension", owner.BindingName())
	}

	base, err := rel.Eval(ctx)
	if err != nil {
		return nil, err
	}

	n, ok := base.(Number)
	if !ok {
		return nil, NewErrorf("Relative dimension %q of %q is not a Number", rel.BindingName(), owner.BindingName())
	}

	return n * Number(p) / 100, nil
}

func (Percent) Constant() bool { return true }

func (Percent) Values() iter.Seq[Value] { return noValues() }

func (p Percent) String() string { return FormatFloat(float64(p)) + "%" }

// AngleUnit is the unit an angle magnitude is expressed in.
type AngleUnit string

// Angle units.
const (
	Degrees AngleUnit = "deg"
	Radians AngleUnit = "rad"
	Turns   AngleUnit = "turn"
)

// Angle is a rotation with an explicit unit. Addition and subtraction
// canonicalize to degrees; scaling by a Number preserves the unit.
type Angle struct {
	Value float64
	Unit  AngleUnit
}

// Degrees reports the angle magnitude converted to degrees.
func (a Angle) Degrees() float64 {
	switch a.Unit {
	case Radians:
		return a.Value * 180 / math.Pi
	case Turns:
		return a.Value * 360
	default:
		return a.Value
	}
}

// Radians reports the angle magnitude converted to radians.
func (a Angle) Radians() float64 {
	switch a.Unit {
	case Radians:
		return a.Value
	case Turns:
		return a.Value * 2 * math.Pi
	default:
		return a.Value * math.Pi / 180
	}
}

func (Angle) Type() Type { return TypeAngle }

func (a Angle) Eval(*Context) (Value, error) { return a, nil }

func (Angle) Constant() bool { return true }

func (Angle) Values() iter.Seq[Value] { return noValues() }

func (a Angle) String() string { return FormatFloat(a.Value) + string(a.Unit) }

// TimeUnit is the unit a duration magnitude is expressed in.
type TimeUnit string

// Time units.
const (
	Seconds      TimeUnit = "s"
	Milliseconds TimeUnit = "ms"
)

// Time is a duration with an explicit unit. Addition and subtraction
// canonicalize to milliseconds; scaling by a Number preserves the unit.
type Time struct {
	Value float64
	Unit  TimeUnit
}

// Seconds reports the duration converted to seconds.
func (t Time) Seconds() float64 {
	if t.Unit == Milliseconds {
		return t.Value / 1000
	}

	return t.Value
}

// Milliseconds reports the duration converted to milliseconds.
func (t Time) Milliseconds() float64 {
	if t.Unit == Milliseconds {
		return t.Value
	}

	return t.Value * 1000
}

func (Time) Type() Type { return TypeTime }

func (t Time) Eval(*Context) (Value, error) { return t, nil }

func (Time) Constant() bool { return true }

func (Time) Values() iter.Seq[Value] { return noValues() }

func (t Time) String() string { return FormatFloat(t.Value) + string(t.Unit) }

// String is a text value. Concatenation with + stringifies the other
// operand.
type String string

func (String) Type() Type { return TypeString }

func (s String) Eval(*Context) (Value, error) { return s, nil }

func (String) Constant() bool { return true }

func (String) Values() iter.Seq[Value] { return noValues() }

func (s String) String() string { return string(s) }

// Vec4 is a four-component vector used as an RGBA color. Arithmetic with
// another Vec4 is elementwise; arithmetic with a Number broadcasts the
// scalar across all four components.
type Vec4 struct {
	X, Y, Z, W float64
}

// RGBA constructs a Vec4 color from the given channels.
func RGBA(r, g, b, a float64) Vec4 {
	return Vec4{X: r, Y: g, Z: b, W: a}
}

func (Vec4) Type() Type { return TypeVec4 }

func (v Vec4) Eval(*Context) (Value, error) { return v, nil }

func (Vec4) Constant() bool { return true }

func (Vec4) Values() iter.Seq[Value] { return noValues() }

func (v Vec4) String() string {
	return "Vec4(" + FormatFloat(v.X) + ", " + FormatFloat(v.Y) + ", " + FormatFloat(v.Z) + ", " + FormatFloat(v.W) + ")"
}

func (v Vec4) splat(f func(a, b float64) float64, o Vec4) Vec4 {
	return Vec4{X: f(v.X, o.X), Y: f(v.Y, o.Y), Z: f(v.Z, o.Z), W: f(v.W, o.W)}
}

func vec4Of(f float64) Vec4 {
	return Vec4{X: f, Y: f, Z: f, W: f}
}

// binaryEval applies op to two evaluated literals. Percentages never reach
// this point: they resolve to Numbers during evaluation.
func binaryEval(op Op, lhs, rhs Value) (Value, error) {
	if op == OpAdd {
		if s, ok := lhs.(String); ok {
			return s + String(rhs.String()), nil
		}

		if s, ok := rhs.(String); ok {
			return String(lhs.String()) + s, nil
		}
	}

	switch l := lhs.(type) {
	case Number:
		switch r := rhs.(type) {
		case Number:
			return numberEval(op, l, r)
		case Vec4:
			return vec4Eval(op, vec4Of(float64(l)), r)
		case Angle:
			if op == OpMul {
				return Angle{Value: r.Value * float64(l), Unit: r.Unit}, nil
			}
		case Time:
			if op == OpMul {
				return Time{Value: r.Value * float64(l), Unit: r.Unit}, nil
			}
		}

	case Angle:
		switch r := rhs.(type) {
		case Angle:
			switch op {
			case OpAdd:
				return Angle{Value: l.Degrees() + r.Degrees(), Unit: Degrees}, nil
			case OpSub:
				return Angle{Value: l.Degrees() - r.Degrees(), Unit: Degrees}, nil
			}
		case Number:
			switch op {
			case OpMul:
				return Angle{Value: l.Value * float64(r), Unit: l.Unit}, nil
			case OpDiv:
				if r == 0 {
					return nil, ErrDivisionByZero
				}

				return Angle{Value: l.Value / float64(r), Unit: l.Unit}, nil
			}
		}

	case Time:
		switch r := rhs.(type) {
		case Time:
			switch op {
			case OpAdd:
				return Time{Value: l.Milliseconds() + r.Milliseconds(), Unit: Milliseconds}, nil
			case OpSub:
				return Time{Value: l.Milliseconds() - r.Milliseconds(), Unit: Milliseconds}, nil
			}
		case Number:
			switch op {
			case OpMul:
				return Time{Value: l.Value * float64(r), Unit: l.Unit}, nil
			case OpDiv:
				if r == 0 {
					return nil, ErrDivisionByZero
				}

				return Time{Value: l.Value / float64(r), Unit: l.Unit}, nil
			}
		}

	case Vec4:
		switch r := rhs.(type) {
		case Vec4:
			return vec4Eval(op, l, r)
		case Number:
			return vec4Eval(op, l, vec4Of(float64(r)))
		}

	case FlagMember:
		if r, ok := rhs.(FlagMember); ok && op == OpOr && l.typ == r.typ {
			return l.typ.bits(l.bits | r.bits), nil
		}
	}

	return nil, NewErrorf("Incompatible operand types %s and %s for %q", lhs.Type().Name(), rhs.Type().Name(), string(op))
}

func numberEval(op Op, l, r Number) (Value, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, ErrDivisionByZero
		}

		return l / r, nil
	}

	return nil, NewErrorf("Incompatible operand types %s and %s for %q", TypeNumber.Name(), TypeNumber.Name(), string(op))
}

func vec4Eval(op Op, l, r Vec4) (Value, error) {
	switch op {
	case OpAdd:
		return l.splat(func(a, b float64) float64 { return a + b }, r), nil
	case OpSub:
		return l.splat(func(a, b float64) float64 { return a - b }, r), nil
	case OpMul:
		return l.splat(func(a, b float64) float64 { return a * b }, r), nil
	case OpDiv:
		if r.X == 0 || r.Y == 0 || r.Z == 0 || r.W == 0 {
			return nil, ErrDivisionByZero
		}

		return l.splat(func(a, b float64) float64 { return a / b }, r), nil
	}

	return nil, NewErrorf("Incompatible operand types %s and %s for %q", TypeVec4.Name(), TypeVec4.Name(), string(op))
}

// unaryEval applies op to an evaluated literal.
func unaryEval(op Op, operand Value) (Value, error) {
	if op == OpNeg {
		switch v := operand.(type) {
		case Number:
			return -v, nil
		case Angle:
			return Angle{Value: -v.Value, Unit: v.Unit}, nil
		case Time:
			return Time{Value: -v.Value, Unit: v.Unit}, nil
		case Vec4:
			return Vec4{X: -v.X, Y: -v.Y, Z: -v.Z, W: -v.W}, nil
		}
	}

	if op == OpPos {
		switch operand.(type) {
		case Number, Angle, Time, Vec4:
			return operand, nil
		}
	}

	return nil, NewErrorf("Incompatible operand type %s for unary %q", operand.Type().Name(), string(op))
}
