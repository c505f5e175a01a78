package element

import "iter"

// Built-in element type names.
const (
	sceneName     = "Scene"
	drawableName  = "Drawable"
	rectangleName = "Rectangle"
	circleName    = "Circle"
	ellipseName   = "Ellipse"
	arcName       = "Arc"
	lineName      = "Line"
	imageName     = "Image"
	textName      = "Text"
	hboxName      = "HBox"
	vboxName      = "VBox"
	animationName = "Animation"
	keyframeName  = "Keyframe"
)

// elementDef is the root of every definition chain. It attaches the
// read-only "parent" back-reference to each child added anywhere in the
// tree.
//
//nolint:gochecknoglobals
var elementDef = &Definition{
	name: "Element",
	attached: func(parent, child *Element) error {
		_, err := child.defineProperty("parent", parent, nil, nil, true, true)

		return err
	},
}

// baseDrawableDef is the shared base of Scene and Drawable: a container
// accepting drawable and animation children. It is not creatable from
// scripts.
//
//nolint:gochecknoglobals
var baseDrawableDef = &Definition{
	name: "BaseDrawable",
	base: elementDef,
	accept: func(_, child *Element) bool {
		return child.Is(drawableName) || child.Is(animationName)
	},
}

// Registry holds the creatable element types by name, in registration
// order. The registry is fixed after construction; script-level templates
// layer on top of it in the builder.
type Registry struct {
	names []string
	defs  map[string]*Definition
}

// NewRegistry returns the registry of built-in element types.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]*Definition)}

	for _, d := range []*Definition{
		sceneDef,
		drawableDef,
		rectangleDef,
		circleDef,
		ellipseDef,
		arcDef,
		lineDef,
		imageDef,
		textDef,
		hboxDef,
		vboxDef,
		animationDef,
		keyframeDef,
	} {
		r.names = append(r.names, d.name)
		r.defs[d.name] = d
	}

	return r
}

// Lookup resolves a built-in type by name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	d, ok := r.defs[name]

	return d, ok
}

// Names yields the registered type names in registration order.
func (r *Registry) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range r.names {
			if !yield(n) {
				return
			}
		}
	}
}
