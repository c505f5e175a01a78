package element

import "github.com/Vallentin/textmation/value"

// sceneDef is the root canvas: concrete width and height, a frame rate
// and a duration. All of those are constant, so scripts may still assign
// them literal values. The duration is computed from the animations in
// the tree unless a script assigned it.
//
//nolint:gochecknoglobals
var sceneDef = &Definition{
	name: sceneName,
	base: baseDrawableDef,
	ready: func(e *Element) error {
		d := defs{e: e}

		d.defineConst("width", value.Number(100), value.TypeNumber)
		d.defineConst("height", value.Number(100), value.TypeNumber)

		d.define("background", value.RGBA(0, 0, 0, 255))

		d.defineConst("frame_rate", value.Number(20), value.TypeNumber)

		d.defineConst("duration", value.Time{Value: 0, Unit: value.Seconds})

		d.defineConst("inclusive", value.Number(1), value.TypeNumber)

		return d.err
	},
	created: func(e *Element) error {
		duration, ok := e.getLocal("duration")
		if !ok || duration.assigned {
			return nil
		}

		total := 0.0

		for el := range e.Traverse() {
			a, ok := AsAnimation(el)
			if !ok {
				continue
			}

			end, err := a.EndTime()
			if err != nil {
				return err
			}

			total = max(total, end)
		}

		return duration.Set(value.Time{Value: total, Unit: value.Seconds})
	},
}
