package builder

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/functions"
	"github.com/Vallentin/textmation/lang"
	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/value"
)

// sceneType names the element type every scene root must create.
const sceneType = "Scene"

// template binds a declared name to what creating it instantiates: a
// builtin element definition, or a template declaration whose body is
// replayed onto the created element. Declared templates remember the
// source they came from, since their bodies fail only when applied,
// possibly far from where they were declared.
type template struct {
	def    *element.Definition
	decl   *lang.Template
	source string
	file   string
}

// Builder constructs element trees from parsed scenes.
//
// A Builder may be reused across builds but is not safe for concurrent
// use. Declared templates and include bookkeeping reset on every build;
// the configured search paths persist.
type Builder struct {
	registry  *element.Registry
	functions *functions.Registry

	templates map[string]template
	elements  []*element.Element
	types     []value.Type

	searchPaths []string
	including   []string
	included    map[string]struct{}

	// source and file identify the scene text currently being walked,
	// which switches while an included file builds.
	source string
	file   string

	baseType string
	logger   log.Logger
}

// New creates a Builder with the builtin element types and functions
// registered.
func New(opts ...Option) *Builder {
	b := &Builder{
		registry:  element.NewRegistry(),
		functions: functions.NewRegistry(),
	}

	applyDefaults(b)
	applyOptions(b, opts...)

	return b
}

// Build parses a scene source and constructs its element tree.
func (b *Builder) Build(ctx context.Context, source string) (*element.Element, error) {
	ast, err := lang.ParseString(ctx, source, lang.WithLogger(b.logger))
	if err != nil {
		return nil, err
	}

	return b.BuildAST(ctx, ast)
}

// BuildFile reads the scene file at path and constructs its element tree.
// The file's directory joins the search paths for the duration of the
// build, so includes resolve relative to the scene file.
func (b *Builder) BuildFile(ctx context.Context, path string) (*element.Element, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrReadScene.Wrap(err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, ErrReadScene.Wrap(err)
	}

	b.searchPaths = append(b.searchPaths, filepath.Dir(abs))
	defer func() { b.searchPaths = b.searchPaths[:len(b.searchPaths)-1] }()

	ast, err := lang.ParseCached(ctx, string(data), lang.WithLogger(b.logger))
	if err != nil {
		return nil, err
	}

	scene, err := b.BuildAST(ctx, ast)
	if err != nil {
		return nil, attachSource(err, ast.Source, abs)
	}

	return scene, nil
}

// BuildAST constructs the element tree of a parsed scene. The root of the
// tree must create a Scene.
func (b *Builder) BuildAST(ctx context.Context, ast *lang.AST) (*element.Element, error) {
	root := ast.Root
	if root == nil || root.Type != sceneType {
		return nil, failAt(lang.Span{}, "Expected Scene")
	}

	b.templates = make(map[string]template)
	for name := range b.registry.Names() {
		def, _ := b.registry.Lookup(name)
		b.templates[name] = template{def: def}
	}

	b.elements = b.elements[:0]
	b.types = b.types[:0]
	b.included = make(map[string]struct{})
	b.source, b.file = ast.Source, ""

	scene, err := b.buildCreate(ctx, root)
	if err != nil {
		return nil, attachSource(err, ast.Source, "")
	}

	b.logger.DebugContext(ctx, "scene built",
		slog.Int("elements", countElements(scene)),
	)

	return scene, nil
}

func (b *Builder) element() *element.Element {
	if len(b.elements) == 0 {
		return nil
	}

	return b.elements[len(b.elements)-1]
}

func (b *Builder) pushElement(e *element.Element) { b.elements = append(b.elements, e) }

func (b *Builder) popElement() { b.elements = b.elements[:len(b.elements)-1] }

func (b *Builder) currentType() value.Type {
	if len(b.types) == 0 {
		return nil
	}

	return b.types[len(b.types)-1]
}

func (b *Builder) pushType(t value.Type) { b.types = append(b.types, t) }

func (b *Builder) popType() { b.types = b.types[:len(b.types)-1] }

func (b *Builder) buildStmt(ctx context.Context, stmt lang.Stmt) error {
	switch s := stmt.(type) {
	case *lang.Include:
		return b.buildInclude(ctx, s)
	case *lang.Create:
		_, err := b.buildCreate(ctx, s)
		return err
	case *lang.Template:
		return b.buildTemplate(ctx, s)
	case *lang.Define:
		return b.buildDefine(s)
	case *lang.Assign:
		return b.buildAssign(s)
	}

	return NewErrorf("unsupported statement %T", stmt)
}

// buildCreate instantiates an element, attaches it to the enclosing
// element, applies its template chain, and builds its body.
func (b *Builder) buildCreate(ctx context.Context, create *lang.Create) (*element.Element, error) {
	if create.Name != "" {
		return nil, failAt(create.Span(), "Creating named elements is not supported")
	}

	def, err := b.elementType(create.Type, create.Span())
	if err != nil {
		return nil, err
	}

	el := def.New()

	if parent := b.element(); parent != nil {
		if err := parent.Add(el); err != nil {
			return nil, failAt(create.Span(), "%s", err)
		}
	}

	if err := b.applyTemplate(ctx, el, create.Type, create.Span()); err != nil {
		return nil, err
	}

	b.pushElement(el)
	for _, child := range create.Body {
		if err := b.buildStmt(ctx, child); err != nil {
			b.popElement()
			return nil, err
		}
	}
	b.popElement()

	if err := el.Created(); err != nil {
		return nil, failAt(create.Span(), "%s in %s", err, el.TypeName())
	}

	b.logger.TraceContext(ctx, "element created",
		slog.String("type", el.TypeName()),
	)

	return el, nil
}

// elementType resolves a declared name to the builtin definition it
// ultimately creates, following the template inheritance chain.
func (b *Builder) elementType(name string, span lang.Span) (*element.Definition, error) {
	var seen []string

	for {
		t, ok := b.templates[name]
		if !ok {
			return nil, failAt(span, "Creating undefined %q template", name)
		}

		if t.def != nil {
			return t.def, nil
		}

		if slices.Contains(seen, name) {
			return nil, failAt(span, "Circular template inheritance %q", name)
		}
		seen = append(seen, name)

		if name = t.decl.Inherit; name == "" {
			name = b.baseType
		}
	}
}

// applyTemplate readies an element as the named template. Builtin types
// run their definition's ready hooks; declared templates apply their base
// first and then replay their body onto the element.
func (b *Builder) applyTemplate(ctx context.Context, el *element.Element, name string, span lang.Span) error {
	t, ok := b.templates[name]
	if !ok {
		return failAt(span, "Creating undefined %q template", name)
	}

	if t.def != nil {
		if err := el.Ready(); err != nil {
			return failAt(span, "%s in %s", err, el.TypeName())
		}

		return nil
	}

	base := t.decl.Inherit
	if base == "" {
		base = b.baseType
	}

	b.pushElement(el)
	defer b.popElement()

	if err := b.applyTemplate(ctx, el, base, span); err != nil {
		return err
	}

	for _, child := range t.decl.Body {
		if err := b.buildStmt(ctx, child); err != nil {
			// The body may have been declared in another file.
			return attachSource(err, t.source, t.file)
		}
	}

	return nil
}

func (b *Builder) buildTemplate(ctx context.Context, decl *lang.Template) error {
	if _, ok := b.templates[decl.Name]; ok {
		return failAt(decl.Span(), "Redeclaration of %q", decl.Name)
	}

	b.templates[decl.Name] = template{decl: decl, source: b.source, file: b.file}

	b.logger.TraceContext(ctx, "template declared",
		slog.String("name", decl.Name),
	)

	return nil
}

func (b *Builder) buildDefine(define *lang.Define) error {
	v, err := b.buildExpr(define.Value)
	if err != nil {
		return err
	}

	el := b.element()
	if err := el.Define(define.Name.Name, v); err != nil {
		return failAt(define.Span(), "%s in %s", err, el.TypeName())
	}

	return nil
}

func (b *Builder) buildAssign(assign *lang.Assign) error {
	el := b.element()
	name := assign.Name.Name

	p, ok := el.Get(name)
	if !ok {
		return failAt(assign.Span(), "Assigning value to undefined property %q in %s", name, el.TypeName())
	}

	// The property's first declared type scopes enum and flag member
	// names on the right-hand side.
	b.pushType(declaredType(p))
	v, err := b.buildExpr(assign.Value)
	b.popType()

	if err != nil {
		return err
	}

	if err := el.Set(name, v); err != nil {
		return assignError(assign.Span(), name, el, err)
	}

	return nil
}

// assignError maps a property assignment failure onto its diagnostic.
func assignError(span lang.Span, name string, el *element.Element, err error) error {
	var (
		readonly *element.ReadonlyError
		cycle    *element.CycleError
	)

	switch {
	case errors.As(err, &readonly):
		return failAt(span, "Cannot assign to readonly property %q in %s", name, el.TypeName())
	case errors.As(err, &cycle):
		after := "Paths:\n" + strings.Join(cycle.PathStrings(), "\n")
		return failAfter(span, after, "%s in %s", cycle, el.TypeName())
	}

	return failAt(span, "%s in %s", err, el.TypeName())
}

func declaredType(p *element.Property) value.Type {
	for t := range p.Types() {
		return t
	}

	return nil
}

func (b *Builder) buildExpr(expr lang.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *lang.Name:
		return b.buildName(e)
	case *lang.Number:
		return b.buildNumber(e)
	case *lang.String:
		return value.String(e.Value), nil
	case *lang.Unary:
		return b.buildUnary(e)
	case *lang.Binary:
		return b.buildBinary(e)
	case *lang.Call:
		return b.buildCall(e)
	case *lang.Member:
		return b.buildMember(e)
	}

	return nil, NewErrorf("unsupported expression %T", expr)
}

// buildName resolves a bare name: a member of the enum or flag type the
// assignment expects, or else a property of the enclosing element or one
// of its ancestors.
func (b *Builder) buildName(name *lang.Name) (value.Value, error) {
	if t := b.currentType(); t != nil {
		if m, ok := value.MemberOf(t, name.Name); ok {
			return m, nil
		}
	}

	return b.property(b.element(), name.Name, name.Span())
}

// property resolves a name against an element and its ancestors. It
// returns the property itself rather than its value, so later reads
// observe reassignment and keyframe animation.
func (b *Builder) property(el *element.Element, name string, span lang.Span) (value.Value, error) {
	for e := el; e != nil; e = e.Parent() {
		if p, ok := e.Get(name); ok {
			return p, nil
		}
	}

	return nil, failAt(span, "Undefined property %q", name)
}

func (b *Builder) buildNumber(num *lang.Number) (value.Value, error) {
	switch num.Unit {
	case "":
		return value.Number(num.Value), nil
	case "%":
		return value.Percent(num.Value), nil
	case "px":
		// Pixels are the implicit unit of bare numbers.
		return value.Number(num.Value), nil
	case "deg", "rad", "turn":
		return value.Angle{Value: num.Value, Unit: value.AngleUnit(num.Unit)}, nil
	case "s", "ms":
		return value.Time{Value: num.Value, Unit: value.TimeUnit(num.Unit)}, nil
	}

	quoted := make([]string, len(lang.Units))
	for i, u := range lang.Units {
		quoted[i] = strconv.Quote(u)
	}

	return nil, failAt(num.Span(), "Unexpected unit %q, expected any of %s",
		num.Unit, strings.Join(quoted, ", "))
}

func (b *Builder) buildUnary(unary *lang.Unary) (value.Value, error) {
	operand, err := b.buildExpr(unary.Operand)
	if err != nil {
		return nil, err
	}

	v, err := value.NewUnaryOp(value.Op(unary.Op), operand)
	if err != nil {
		return nil, failAt(unary.Span(), "%s", err)
	}

	return v, nil
}

func (b *Builder) buildBinary(binary *lang.Binary) (value.Value, error) {
	lhs, err := b.buildExpr(binary.LHS)
	if err != nil {
		return nil, err
	}

	rhs, err := b.buildExpr(binary.RHS)
	if err != nil {
		return nil, err
	}

	v, err := value.NewBinOp(value.Op(binary.Op), lhs, rhs)
	if err != nil {
		return nil, failAt(binary.Span(), "%s", err)
	}

	return v, nil
}

func (b *Builder) buildCall(call *lang.Call) (value.Value, error) {
	fn, ok := b.functions.Lookup(call.Name)
	if !ok {
		return nil, failAt(call.Span(), "Undefined function %q", call.Name)
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		v, err := b.buildExpr(arg)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	v, err := value.NewCall(fn, args)
	if err != nil {
		return nil, failAt(call.Span(), "%s", err)
	}

	return v, nil
}

// buildMember resolves a member access. The left-hand side must evaluate
// to an element, as the parent property does; the member then resolves
// like a bare name against that element and its ancestors.
func (b *Builder) buildMember(member *lang.Member) (value.Value, error) {
	base, err := b.buildExpr(member.Value)
	if err != nil {
		return nil, err
	}

	v, err := value.Eval(base)
	if err != nil {
		return nil, failAt(member.Span(), "%s", err)
	}

	el, ok := v.(*element.Element)
	if !ok {
		return nil, failAt(member.Span(), "Cannot access property %q of %s",
			member.Name.Name, v.Type().Name())
	}

	return b.property(el, member.Name.Name, member.Span())
}

func countElements(root *element.Element) int {
	n := 0
	for range root.Traverse() {
		n++
	}

	return n
}
