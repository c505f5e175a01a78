package element

import (
	"slices"

	"github.com/Vallentin/textmation/value"
)

// TextAnchor positions a text element relative to its x/y point. The
// horizontal and vertical flags may be combined with |.
//
//nolint:gochecknoglobals
var TextAnchor = value.NewFlagType("TextAnchor",
	value.MemberSpec{Name: "Left", Value: 1},
	value.MemberSpec{Name: "CenterX", Value: 2},
	value.MemberSpec{Name: "Right", Value: 4},
	value.MemberSpec{Name: "Top", Value: 8},
	value.MemberSpec{Name: "CenterY", Value: 16},
	value.MemberSpec{Name: "Bottom", Value: 32},
	value.MemberSpec{Name: "Center", Value: 2 | 16},
	value.MemberSpec{Name: "Default", Value: 2 | 16},
)

// TextAlignment selects how multi-line text lines up.
//
//nolint:gochecknoglobals
var TextAlignment = value.NewEnumType("TextAlignment",
	value.MemberSpec{Name: "Left", Value: 1},
	value.MemberSpec{Name: "Center", Value: 2},
	value.MemberSpec{Name: "Right", Value: 3},
	value.MemberSpec{Name: "Default", Value: 1},
)

func enumDefault(t *value.EnumType) value.EnumMember {
	m, _ := t.Member("Default")

	return m
}

func flagDefault(t *value.FlagType) value.FlagMember {
	m, _ := t.Member("Default")

	return m
}

// dimensionTypes are the declared types of every position and size
// property: plain numbers or percentages of the parent dimension.
//
//nolint:gochecknoglobals
var dimensionTypes = []value.Type{value.TypeNumber, value.TypePercent}

// drawableDef declares the geometry every visible element shares. The
// defaults fill the parent: x/y at the origin and width/height at 100%,
// all relative to the parent's dimensions.
//
//nolint:gochecknoglobals
var drawableDef = &Definition{
	name: drawableName,
	base: baseDrawableDef,
	ready: func(e *Element) error {
		if e.parent == nil {
			return NewErrorf("%s requires a parent", e.TypeName())
		}

		d := defs{e: e}

		d.defineFixed("index", value.Number(slices.Index(e.parent.children, e)))

		d.defineRel("x", value.Number(0), "width", dimensionTypes...)
		d.defineRel("y", value.Number(0), "height", dimensionTypes...)
		d.defineRel("width", value.Percent(100), "width", dimensionTypes...)
		d.defineRel("height", value.Percent(100), "height", dimensionTypes...)

		return d.err
	},
}

// fillStyle declares the shared paint properties: a color, a fill that
// follows it by reference, and an outline.
func fillStyle(d *defs) {
	d.define("color", value.RGBA(255, 255, 255, 255))
	d.define("fill", d.get("color"))

	d.define("outline", value.RGBA(0, 0, 0, 0), value.TypeVec4)
	d.define("outline_width", value.Number(1))
}

//nolint:gochecknoglobals
var rectangleDef = &Definition{
	name: rectangleName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		fillStyle(&d)

		return d.err
	},
}

// roundGeometry declares the center/diameter/radius properties of circles
// and ellipses and rewires x/y/width/height to follow them, so assigning
// either view of the geometry moves the shape.
func roundGeometry(d *defs) {
	half := func(name string) value.Value {
		return d.binop(value.OpDiv, d.get(name), value.Number(2))
	}

	d.defineRel("center_x", d.binop(value.OpSub, value.Percent(50), half("width")), "width", dimensionTypes...)
	d.defineRel("center_y", d.binop(value.OpSub, value.Percent(50), half("height")), "height", dimensionTypes...)

	d.defineRel("diameter", value.Percent(100), "width", dimensionTypes...)
	d.defineRel("radius", half("diameter"), "width", dimensionTypes...)
}

//nolint:gochecknoglobals
var circleDef = &Definition{
	name: circleName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		roundGeometry(&d)

		half := func(name string) value.Value {
			return d.binop(value.OpDiv, d.get(name), value.Number(2))
		}

		d.set("x", d.binop(value.OpSub, d.get("center_x"), half("width")))
		d.set("y", d.binop(value.OpSub, d.get("center_y"), half("height")))

		d.set("width", d.binop(value.OpMul, d.get("radius"), value.Number(2)))
		d.set("height", d.binop(value.OpMul, d.get("radius"), value.Number(2)))

		fillStyle(&d)

		return d.err
	},
}

//nolint:gochecknoglobals
var ellipseDef = &Definition{
	name: ellipseName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		roundGeometry(&d)

		half := func(name string) value.Value {
			return d.binop(value.OpDiv, d.get(name), value.Number(2))
		}

		d.defineRel("diameter_x", d.get("diameter"), "width", dimensionTypes...)
		d.defineRel("diameter_y", d.get("diameter"), "height", dimensionTypes...)
		d.defineRel("radius_x", half("diameter_x"), "width", dimensionTypes...)
		d.defineRel("radius_y", half("diameter_y"), "height", dimensionTypes...)

		d.set("x", d.binop(value.OpSub, d.get("center_x"), half("width")))
		d.set("y", d.binop(value.OpSub, d.get("center_y"), half("height")))

		d.set("width", d.binop(value.OpMul, d.get("radius_x"), value.Number(2)))
		d.set("height", d.binop(value.OpMul, d.get("radius_y"), value.Number(2)))

		fillStyle(&d)

		return d.err
	},
}

//nolint:gochecknoglobals
var arcDef = &Definition{
	name: arcName,
	base: ellipseDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		d.define("start_angle", value.Angle{Value: 0, Unit: value.Degrees})
		d.define("end_angle", value.Angle{Value: 360, Unit: value.Degrees})

		return d.err
	},
}

//nolint:gochecknoglobals
var lineDef = &Definition{
	name: lineName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		d.defineRel("x1", value.Number(0), "width", dimensionTypes...)
		d.defineRel("y1", value.Number(0), "height", dimensionTypes...)

		d.defineRel("x2", value.Number(0), "width", dimensionTypes...)
		d.defineRel("y2", value.Number(0), "height", dimensionTypes...)

		d.set("x", d.get("x1"))
		d.set("y", d.get("y1"))

		d.define("color", value.RGBA(255, 255, 255, 255))
		d.define("fill", d.get("color"))

		// A line's width is its stroke thickness, not a box dimension.
		d.set("width", value.Number(1))

		return d.err
	},
}

//nolint:gochecknoglobals
var imageDef = &Definition{
	name: imageName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		d.defineConst("filename", value.String(""))

		return d.err
	},
}

//nolint:gochecknoglobals
var textDef = &Definition{
	name: textName,
	base: drawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		d.set("x", value.Percent(50))
		d.set("y", value.Percent(50))

		d.defineConst("text", value.String(""))

		d.defineConst("font", value.String("arial"))
		d.define("font_size", value.Number(32))

		d.defineConst("anchor", flagDefault(TextAnchor))
		d.defineConst("alignment", enumDefault(TextAlignment))

		d.define("color", value.RGBA(255, 255, 255, 255))
		d.define("fill", d.get("color"))

		return d.err
	},
}
