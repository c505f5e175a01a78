package element

import (
	"fmt"
	"iter"

	"github.com/Vallentin/textmation/value"
)

// Definition describes one element type: its name, the type it derives
// from, lifecycle hooks and containment rules. Hooks of the whole
// derivation chain run base-first. Definitions are immutable after
// registration and shared by every element of the type.
type Definition struct {
	name string
	base *Definition

	// ready declares the type's default properties. It runs once the
	// element is attached to its parent, so defaults may reference parent
	// properties.
	ready func(*Element) error

	// attached runs on the parent for every child added to it.
	attached func(parent, child *Element) error

	// created runs after the element's children have all been built.
	created func(*Element) error

	// accept decides containment. The most derived non-nil predicate in
	// the chain wins; a chain without one accepts anything.
	accept func(parent, child *Element) bool

	// get and set reroute property access. The most derived non-nil
	// override in the chain wins.
	get func(*Element, string) (*Property, bool)
	set func(*Element, string, value.Value) error
}

// Name reports the element type name.
func (d *Definition) Name() string { return d.name }

// Base reports the definition the type derives from, or nil for the root.
func (d *Definition) Base() *Definition { return d.base }

// New allocates an element of this type with an empty property table.
func (d *Definition) New() *Element {
	return &Element{def: d, properties: make(map[string]*Property)}
}

func (d *Definition) runReady(e *Element) error {
	if d.base != nil {
		if err := d.base.runReady(e); err != nil {
			return err
		}
	}

	if d.ready != nil {
		return d.ready(e)
	}

	return nil
}

func (d *Definition) runAttached(parent, child *Element) error {
	if d.base != nil {
		if err := d.base.runAttached(parent, child); err != nil {
			return err
		}
	}

	if d.attached != nil {
		return d.attached(parent, child)
	}

	return nil
}

func (d *Definition) runCreated(e *Element) error {
	if d.base != nil {
		if err := d.base.runCreated(e); err != nil {
			return err
		}
	}

	if d.created != nil {
		return d.created(e)
	}

	return nil
}

func (d *Definition) accepts(parent, child *Element) bool {
	for cur := d; cur != nil; cur = cur.base {
		if cur.accept != nil {
			return cur.accept(parent, child)
		}
	}

	return true
}

// Element is one node of the scene tree: a property table plus ordered
// children, behaving per its Definition. An Element is also a value.Value
// of type Element, so properties can hold references to elements.
type Element struct {
	def        *Definition
	parent     *Element
	children   []*Element
	properties map[string]*Property
	order      []string

	drawables  []*Element
	animations []*Element
	keyframes  []*Element

	// animated is the union of keyframed property names of an Animation;
	// keyframed is the locally keyframed names of a Keyframe. Both are in
	// first-seen order.
	animated  []string
	keyframed []string
}

// TypeName reports the element's type name.
func (e *Element) TypeName() string { return e.def.name }

// Definition reports the element's type definition.
func (e *Element) Definition() *Definition { return e.def }

// Parent reports the containing element, or nil for the root.
func (e *Element) Parent() *Element { return e.parent }

// Is reports whether the element's type derives from (or is) the named
// type.
func (e *Element) Is(name string) bool {
	for d := e.def; d != nil; d = d.base {
		if d.name == name {
			return true
		}
	}

	return false
}

// Children yields the direct children in attachment order.
func (e *Element) Children() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, c := range e.children {
			if !yield(c) {
				return
			}
		}
	}
}

// Drawables yields the direct children that are drawables.
func (e *Element) Drawables() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, c := range e.drawables {
			if !yield(c) {
				return
			}
		}
	}
}

// Animations yields the direct children that are animations.
func (e *Element) Animations() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, c := range e.animations {
			if !yield(c) {
				return
			}
		}
	}
}

// Traverse yields the element and every descendant, depth first in
// attachment order.
func (e *Element) Traverse() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		e.traverse(yield)
	}
}

func (e *Element) traverse(yield func(*Element) bool) bool {
	if !yield(e) {
		return false
	}

	for _, c := range e.children {
		if !c.traverse(yield) {
			return false
		}
	}

	return true
}

// Add attaches child to the element. It fails when the element rejects
// the child's kind, and runs the chain's attachment hooks, which may
// define bookkeeping properties on the child.
func (e *Element) Add(child *Element) error {
	if child.parent != nil {
		return NewErrorf("%s is already attached to %s", child.TypeName(), child.parent.TypeName())
	}

	if !e.def.accepts(e, child) {
		return &ContainmentError{Parent: e.TypeName(), Child: child.TypeName()}
	}

	child.parent = e
	e.children = append(e.children, child)

	switch {
	case child.Is(drawableName):
		e.drawables = append(e.drawables, child)
	case child.Is(animationName):
		e.animations = append(e.animations, child)
	case child.Is(keyframeName):
		e.keyframes = append(e.keyframes, child)
	}

	return e.def.runAttached(e, child)
}

// Ready runs the chain's ready hooks, declaring the type's default
// properties. It must run after Add when the element has a parent.
func (e *Element) Ready() error { return e.def.runReady(e) }

// Created runs the chain's created hooks after the element's children
// have been built.
func (e *Element) Created() error { return e.def.runCreated(e) }

// Define declares a new property holding v, typed by v's own type. It
// fails when the name is already defined on this element.
func (e *Element) Define(name string, v value.Value) error {
	_, err := e.defineProperty(name, v, nil, nil, false, false)

	return err
}

func (e *Element) defineProperty(name string, v value.Value, types []value.Type, relative *Property, readonly, constant bool) (*Property, error) {
	if _, ok := e.properties[name]; ok {
		return nil, &DefinedError{Name: name}
	}

	p, err := newProperty(e, name, v, types, relative, readonly, constant)
	if err != nil {
		return nil, err
	}

	e.properties[name] = p
	e.order = append(e.order, name)

	return p, nil
}

// Get resolves a property by name on this element alone, honoring the
// type's access overrides. It does not search ancestors.
func (e *Element) Get(name string) (*Property, bool) {
	for d := e.def; d != nil; d = d.base {
		if d.get != nil {
			return d.get(e, name)
		}
	}

	return e.getLocal(name)
}

func (e *Element) getLocal(name string) (*Property, bool) {
	p, ok := e.properties[name]

	return p, ok
}

// Set assigns v to the named property, honoring the type's access
// overrides.
func (e *Element) Set(name string, v value.Value) error {
	for d := e.def; d != nil; d = d.base {
		if d.set != nil {
			return d.set(e, name, v)
		}
	}

	return e.setLocal(name, v)
}

func (e *Element) setLocal(name string, v value.Value) error {
	p, ok := e.getLocal(name)
	if !ok {
		return &UndefinedError{Name: name}
	}

	return p.Set(v)
}

// Properties yields the element's properties in definition order.
func (e *Element) Properties() iter.Seq[*Property] {
	return func(yield func(*Property) bool) {
		for _, name := range e.order {
			if !yield(e.properties[name]) {
				return
			}
		}
	}
}

// Type implements value.Value.
func (e *Element) Type() value.Type { return value.TypeElement }

// Eval implements value.Value; an element evaluates to itself.
func (e *Element) Eval(*value.Context) (value.Value, error) { return e, nil }

// Constant implements value.Value.
func (e *Element) Constant() bool { return true }

// Values implements value.Value; elements have no sub-values, so the
// cycle walk does not descend through element references.
func (e *Element) Values() iter.Seq[value.Value] {
	return func(func(value.Value) bool) {}
}

// String implements value.Value.
func (e *Element) String() string {
	return fmt.Sprintf("<%s: %p>", e.def.name, e)
}

// defs collects property definitions and assignments for a lifecycle
// hook, keeping the first error and turning later calls into no-ops so
// the hook body reads like a declaration list.
type defs struct {
	e   *Element
	err error
}

func (d *defs) define(name string, v value.Value, types ...value.Type) *Property {
	return d.add(name, v, types, nil, false, false)
}

func (d *defs) defineRel(name string, v value.Value, rel string, types ...value.Type) *Property {
	if d.err != nil {
		return nil
	}

	return d.add(name, v, types, d.parentProperty(rel), false, false)
}

func (d *defs) defineConst(name string, v value.Value, types ...value.Type) *Property {
	return d.add(name, v, types, nil, false, true)
}

// defineFixed declares a property that is both read-only and constant,
// used for bookkeeping values the type computes itself.
func (d *defs) defineFixed(name string, v value.Value) *Property {
	return d.add(name, v, nil, nil, true, true)
}

func (d *defs) add(name string, v value.Value, types []value.Type, rel *Property, readonly, constant bool) *Property {
	if d.err != nil {
		return nil
	}

	p, err := d.e.defineProperty(name, v, types, rel, readonly, constant)
	if err != nil {
		d.err = err

		return nil
	}

	return p
}

func (d *defs) parentProperty(name string) *Property {
	if d.err != nil {
		return nil
	}

	parent := d.e.parent
	if parent == nil {
		d.err = NewErrorf("%s has no parent to resolve %q against", d.e.TypeName(), name)

		return nil
	}

	p, ok := parent.Get(name)
	if !ok {
		d.err = &UndefinedError{Name: name}

		return nil
	}

	return p
}

func (d *defs) get(name string) *Property {
	if d.err != nil {
		return nil
	}

	p, ok := d.e.getLocal(name)
	if !ok {
		d.err = &UndefinedError{Name: name}

		return nil
	}

	return p
}

func (d *defs) set(name string, v value.Value) {
	if d.err != nil {
		return
	}

	d.err = d.e.setLocal(name, v)
}

func (d *defs) binop(op value.Op, lhs, rhs value.Value) value.Value {
	if d.err != nil {
		return value.Number(0)
	}

	v, err := value.NewBinOp(op, lhs, rhs)
	if err != nil {
		d.err = err

		return value.Number(0)
	}

	return v
}
