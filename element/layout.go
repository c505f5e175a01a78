package element

import "github.com/Vallentin/textmation/value"

// hboxDef lays its drawable children out in a row. Each child receives a
// read-only "ix" with its slot on attachment; once the box is created,
// the children's geometry is overwritten with an even horizontal split.
//
//nolint:gochecknoglobals
var hboxDef = &Definition{
	name: hboxName,
	base: drawableDef,
	attached: func(parent, child *Element) error {
		_, err := child.defineProperty("ix", value.Number(len(parent.drawables)-1), nil, nil, true, true)

		return err
	},
	created: func(e *Element) error {
		count := len(e.drawables)

		for i, child := range e.drawables {
			if err := child.Set("x", value.Percent(float64(i)/float64(count)*100)); err != nil {
				return err
			}

			if err := child.Set("y", value.Number(0)); err != nil {
				return err
			}

			if err := child.Set("width", value.Percent(100/float64(count))); err != nil {
				return err
			}

			if err := child.Set("height", value.Percent(100)); err != nil {
				return err
			}
		}

		return nil
	},
}

// vboxDef is the column counterpart of hboxDef, slotting children under
// "iy" and splitting the height evenly.
//
//nolint:gochecknoglobals
var vboxDef = &Definition{
	name: vboxName,
	base: drawableDef,
	attached: func(parent, child *Element) error {
		_, err := child.defineProperty("iy", value.Number(len(parent.drawables)-1), nil, nil, true, true)

		return err
	},
	created: func(e *Element) error {
		count := len(e.drawables)

		for i, child := range e.drawables {
			if err := child.Set("x", value.Number(0)); err != nil {
				return err
			}

			if err := child.Set("y", value.Percent(float64(i)/float64(count)*100)); err != nil {
				return err
			}

			if err := child.Set("width", value.Percent(100)); err != nil {
				return err
			}

			if err := child.Set("height", value.Percent(100/float64(count))); err != nil {
				return err
			}
		}

		return nil
	},
}
