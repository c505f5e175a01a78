package functions

import (
	"iter"
	"math"

	"github.com/Vallentin/textmation/value"
)

// Function is one builtin of the registry. It satisfies value.Func, so a
// looked-up Function plugs directly into call expressions. Arguments are
// matched against the declared parameter types by identity, in order.
type Function struct {
	name   string
	params []value.Type
	ret    value.Type
	impl   func(args []value.Value) (value.Value, error)
}

// Name reports the function name as written in source.
func (f *Function) Name() string { return f.name }

// ReturnType reports the type every call to the function yields.
func (f *Function) ReturnType() value.Type { return f.ret }

// Params yields the declared parameter types in order.
func (f *Function) Params() iter.Seq[value.Type] {
	return func(yield func(value.Type) bool) {
		for _, p := range f.params {
			if !yield(p) {
				return
			}
		}
	}
}

// Check validates argument count and types against the declaration.
func (f *Function) Check(args []value.Value) error {
	if len(args) != len(f.params) {
		return NewErrorf("%s expected %d arguments, received %d", f.name, len(f.params), len(args))
	}

	for i, arg := range args {
		if arg.Type() != f.params[i] {
			return NewErrorf("%s expected parameter %d as %s, received %s",
				f.name, i+1, f.params[i].Name(), arg.Type().Name())
		}
	}

	return nil
}

// Call validates the evaluated arguments and applies the function.
func (f *Function) Call(args []value.Value) (value.Value, error) {
	if err := f.Check(args); err != nil {
		return nil, err
	}

	return f.impl(args)
}

// Registry maps builtin names to functions.
type Registry struct {
	names []string
	funcs map[string]*Function
}

// NewRegistry returns a registry holding all builtins.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*Function)}

	two := []value.Type{value.TypeNumber, value.TypeNumber}
	one := []value.Type{value.TypeNumber}
	three := []value.Type{value.TypeNumber, value.TypeNumber, value.TypeNumber}
	four := []value.Type{value.TypeNumber, value.TypeNumber, value.TypeNumber, value.TypeNumber}

	r.register("mod", two, value.TypeNumber, mod)
	r.register("min", two, value.TypeNumber, minOf)
	r.register("max", two, value.TypeNumber, maxOf)
	r.register("floor", one, value.TypeNumber, floor)
	r.register("ceil", one, value.TypeNumber, ceil)
	r.register("round", one, value.TypeNumber, round)
	r.register("rgb", three, value.TypeVec4, rgb)
	r.register("rgba", four, value.TypeVec4, rgba)
	r.register("hsl", three, value.TypeVec4, hsl)
	r.register("hsla", four, value.TypeVec4, hsla)

	return r
}

func (r *Registry) register(name string, params []value.Type, ret value.Type, impl func([]value.Value) (value.Value, error)) {
	r.names = append(r.names, name)
	r.funcs[name] = &Function{name: name, params: params, ret: ret, impl: impl}
}

// Lookup resolves a builtin by name.
func (r *Registry) Lookup(name string) (*Function, bool) {
	f, ok := r.funcs[name]

	return f, ok
}

// Names yields the builtin names in registration order.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range r.names {
			if !yield(n) {
				return
			}
		}
	}
}

// number unwraps an argument the type check already proved to be a
// Number.
func number(v value.Value) float64 {
	return float64(v.(value.Number))
}

// mod folds a into the divisor's period. The result takes the sign of
// the divisor.
func mod(args []value.Value) (value.Value, error) {
	a, b := number(args[0]), number(args[1])
	if b == 0 {
		return nil, value.ErrDivisionByZero
	}

	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return value.Number(m), nil
}

func minOf(args []value.Value) (value.Value, error) {
	return value.Number(min(number(args[0]), number(args[1]))), nil
}

func maxOf(args []value.Value) (value.Value, error) {
	return value.Number(max(number(args[0]), number(args[1]))), nil
}

func floor(args []value.Value) (value.Value, error) {
	return value.Number(math.Floor(number(args[0]))), nil
}

func ceil(args []value.Value) (value.Value, error) {
	return value.Number(math.Ceil(number(args[0]))), nil
}

// round rounds half-way values to the nearest even integer.
func round(args []value.Value) (value.Value, error) {
	return value.Number(math.RoundToEven(number(args[0]))), nil
}
