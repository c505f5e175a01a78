package element

import (
	"iter"
	"slices"

	"github.com/Vallentin/textmation/value"
)

// Property is a named, typed slot on an element. It holds a value or an
// unevaluated expression, and participates in other properties'
// expressions directly: a Property is itself a value.Value, and the
// value.Binding it implements carries the identity that evaluation-time
// cycle detection and percentage resolution depend on.
type Property struct {
	owner     *Element
	name      string
	types     []value.Type
	value     value.Value
	relative  *Property
	readonly  bool
	constant  bool
	assigned  bool
	keyframes []*Element
}

// newProperty validates and stores the initial value. The read-only flag
// is raised only afterwards so that the definition itself is exempt from
// it; the constant flag applies to the initial value too.
func newProperty(owner *Element, name string, v value.Value, types []value.Type, relative *Property, readonly, constant bool) (*Property, error) {
	if len(types) == 0 {
		types = []value.Type{v.Type()}
	}

	p := &Property{
		owner:    owner,
		name:     name,
		types:    types,
		relative: relative,
		constant: constant,
	}

	if err := p.store(v); err != nil {
		return nil, err
	}

	p.readonly = readonly

	return p, nil
}

// Name reports the property name.
func (p *Property) Name() string { return p.name }

// Owner reports the element the property belongs to.
func (p *Property) Owner() *Element { return p.owner }

// Readonly reports whether the property rejects all assignment.
func (p *Property) Readonly() bool { return p.readonly }

// Get returns the stored value or expression without evaluating it.
func (p *Property) Get() value.Value { return p.value }

// Types reports the declared types assignable to the property.
func (p *Property) Types() iter.Seq[value.Type] {
	return func(yield func(value.Type) bool) {
		for _, t := range p.types {
			if !yield(t) {
				return
			}
		}
	}
}

// Set replaces the stored value or expression. It fails when the property
// is read-only, when a non-constant value is assigned to a constant
// property, when the value's type is not declared, or when the stored
// value would introduce a circular dependency.
func (p *Property) Set(v value.Value) error {
	if err := p.store(v); err != nil {
		return err
	}

	p.assigned = true

	return nil
}

func (p *Property) store(v value.Value) error {
	if err := p.checkAssignable(v, false); err != nil {
		return err
	}

	if err := p.checkValue(v); err != nil {
		return err
	}

	p.value = v

	if paths := p.findCycles(); len(paths) > 0 {
		return &CycleError{Paths: paths}
	}

	return nil
}

// checkAssignable reports whether the property accepts an assignment at
// all. A nil value skips the constant-value test; dynamic marks a
// keyframed assignment, which a constant property always rejects.
func (p *Property) checkAssignable(v value.Value, dynamic bool) error {
	if p.readonly {
		return &ReadonlyError{Name: p.name}
	}

	if p.constant && (dynamic || v != nil && !v.Constant()) {
		return &ConstantError{Name: p.name}
	}

	return nil
}

// checkValue reports whether the value's type is among the declared
// types. Types compare by identity.
func (p *Property) checkValue(v value.Value) error {
	if !slices.Contains(p.types, v.Type()) {
		return &TypeError{Expected: slices.Clone(p.types), Received: v.Type()}
	}

	return nil
}

// findCycles walks the stored expression graph looking for chains that
// return to this property. Property references and the relative-dimension
// edge of percentages both count as dependencies. Each reported path
// starts and ends with this property; duplicate paths are dropped.
func (p *Property) findCycles() [][]*Property {
	var paths [][]*Property

	var visit func(owner *Property, v value.Value, path []*Property)
	visit = func(owner *Property, v value.Value, path []*Property) {
		enter := func(ref *Property) {
			next := append(slices.Clone(path), ref)

			switch {
			case ref == p:
				paths = append(paths, next)
			case slices.Contains(path, ref):
			default:
				visit(ref, ref.value, next)
			}
		}

		switch x := v.(type) {
		case *Property:
			enter(x)
		case value.Percent:
			if rel := owner.relative; rel != nil {
				enter(rel)
			}
		default:
			for sub := range v.Values() {
				visit(owner, sub, path)
			}
		}
	}

	visit(p, p.value, []*Property{p})

	return dedupePaths(paths)
}

func dedupePaths(paths [][]*Property) [][]*Property {
	var out [][]*Property

	for _, path := range paths {
		dup := slices.ContainsFunc(out, func(seen []*Property) bool {
			return slices.Equal(seen, path)
		})

		if !dup {
			out = append(out, path)
		}
	}

	return out
}

// Type reports the type of the currently stored value.
func (p *Property) Type() value.Type { return p.value.Type() }

// Eval reduces the stored value under ctx, re-entering this property's
// binding so that circular chains are detected.
func (p *Property) Eval(ctx *value.Context) (value.Value, error) {
	if err := ctx.Enter(p); err != nil {
		return nil, err
	}
	defer ctx.Leave()

	return p.value.Eval(ctx)
}

// Constant reports whether the property's value can no longer change:
// declared constant, or holding a constant value with no keyframes.
func (p *Property) Constant() bool {
	if p.constant {
		return true
	}

	if !p.value.Constant() {
		return false
	}

	return len(p.keyframes) == 0
}

// Values yields the stored value, making the property a traversable node
// of the expression graph.
func (p *Property) Values() iter.Seq[value.Value] {
	return func(yield func(value.Value) bool) {
		yield(p.value)
	}
}

// String renders the property as it appears in expressions: by name.
func (p *Property) String() string { return p.name }

// BindingName implements value.Binding.
func (p *Property) BindingName() string { return p.name }

// BindingOwner implements value.Binding.
func (p *Property) BindingOwner() string { return p.owner.TypeName() }

// Relative implements value.Binding: the parent dimension percentages
// stored under this property resolve against.
func (p *Property) Relative() value.Binding {
	if p.relative == nil {
		return nil
	}

	return p.relative
}
