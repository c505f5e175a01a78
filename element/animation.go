package element

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/Vallentin/textmation/value"
)

// AnimationDirection selects whether iterations play forward, backward or
// alternating.
//
//nolint:gochecknoglobals
var AnimationDirection = value.NewEnumType("AnimationDirection",
	value.MemberSpec{Name: "Normal", Value: 1},
	value.MemberSpec{Name: "Reverse", Value: 2},
	value.MemberSpec{Name: "Alternate", Value: 3},
	value.MemberSpec{Name: "AlternateReverse", Value: 4},
	value.MemberSpec{Name: "Default", Value: 1},
)

// AnimationFillMode selects whether the animation holds its boundary
// keyframes outside its active interval.
//
//nolint:gochecknoglobals
var AnimationFillMode = value.NewEnumType("AnimationFillMode",
	value.MemberSpec{Name: "Never", Value: 1},
	value.MemberSpec{Name: "After", Value: 2},
	value.MemberSpec{Name: "Before", Value: 3},
	value.MemberSpec{Name: "Always", Value: 4},
	value.MemberSpec{Name: "Default", Value: 1},
)

// animationDef holds a sorted keyframe track animating properties of its
// parent element. Its timing properties are constant; the track itself is
// validated and completed once the element is created.
//
//nolint:gochecknoglobals
var animationDef = &Definition{
	name: animationName,
	base: elementDef,
	accept: func(_, child *Element) bool {
		return child.Is(keyframeName)
	},
	ready: func(e *Element) error {
		d := defs{e: e}

		d.defineConst("delay", value.Time{Value: 0, Unit: value.Seconds})

		d.defineConst("iterations", value.Number(1))

		d.defineConst("direction", enumDefault(AnimationDirection))
		d.defineConst("fill_mode", enumDefault(AnimationFillMode))

		return d.err
	},
	created: animationCreated,
}

// animationCreated sorts the keyframes by time, requires at least one, and
// completes the track: every property keyframed anywhere in the track is
// given a keyframe entry everywhere, defaulting to the target element's
// current value.
func animationCreated(e *Element) error {
	if len(e.keyframes) < 1 {
		return NewErrorf("%s requires at least one keyframe", e.TypeName())
	}

	target := e.parent
	if target == nil {
		return NewErrorf("%s requires a parent to animate", e.TypeName())
	}

	seconds := make(map[*Element]float64, len(e.keyframes))

	for _, kf := range e.keyframes {
		t, err := (Keyframe{e: kf}).Time()
		if err != nil {
			return err
		}

		seconds[kf] = t.Seconds()
	}

	slices.SortStableFunc(e.keyframes, func(a, b *Element) int {
		return cmp.Compare(seconds[a], seconds[b])
	})

	var names []string

	for _, kf := range e.keyframes {
		for _, name := range kf.keyframed {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	e.animated = names

	for _, kf := range e.keyframes {
		for _, name := range names {
			if slices.Contains(kf.keyframed, name) {
				continue
			}

			p, ok := target.Get(name)
			if !ok {
				return &UndefinedError{Name: name}
			}

			if err := kf.Set(name, p.Get()); err != nil {
				return err
			}
		}
	}

	return nil
}

// keyframeDef pins property values at one point of an animation's
// timeline. Property access is transparent: names the keyframe does not
// hold locally are routed to the animated element, and assigning one
// records the keyframe against the element's property before shadowing it
// locally.
//
//nolint:gochecknoglobals
var keyframeDef = &Definition{
	name: keyframeName,
	base: elementDef,
	accept: func(_, _ *Element) bool {
		return false
	},
	ready: func(e *Element) error {
		d := defs{e: e}

		d.defineConst("time", value.Time{Value: 0, Unit: value.Seconds})

		return d.err
	},
	get: keyframeGet,
	set: keyframeSet,
}

func keyframeTarget(e *Element) *Element {
	if e.parent == nil {
		return nil
	}

	return e.parent.parent
}

func keyframeGet(e *Element, name string) (*Property, bool) {
	if p, ok := e.getLocal(name); ok {
		return p, true
	}

	target := keyframeTarget(e)
	if target == nil {
		return nil, false
	}

	return target.Get(name)
}

func keyframeSet(e *Element, name string, v value.Value) error {
	if _, ok := e.getLocal(name); ok {
		return e.setLocal(name, v)
	}

	target := keyframeTarget(e)
	if target == nil {
		return &UndefinedError{Name: name}
	}

	p, ok := target.Get(name)
	if !ok {
		return &UndefinedError{Name: name}
	}

	// The value's type is validated against the element's declaration
	// first, then the property must accept dynamic assignment at all.
	if err := p.checkValue(v); err != nil {
		return err
	}

	if err := p.checkAssignable(nil, true); err != nil {
		return err
	}

	p.keyframes = append(p.keyframes, e)

	if _, err := e.defineProperty(name, v, nil, p.relative, false, false); err != nil {
		return err
	}

	e.keyframed = append(e.keyframed, name)

	return nil
}

// Animation is a view over an element of type Animation exposing the
// track's timing queries. All times are in seconds on the scene timeline
// unless stated otherwise.
type Animation struct {
	e *Element
}

// AsAnimation wraps e when its type derives from Animation.
func AsAnimation(e *Element) (Animation, bool) {
	if e == nil || !e.Is(animationName) {
		return Animation{}, false
	}

	return Animation{e: e}, true
}

// Element returns the underlying element.
func (a Animation) Element() *Element { return a.e }

// Target returns the element the track animates.
func (a Animation) Target() *Element { return a.e.parent }

// Keyframes yields the track's keyframes in time order once the element
// is created, in attachment order before that.
func (a Animation) Keyframes() iter.Seq[Keyframe] {
	return func(yield func(Keyframe) bool) {
		for _, kf := range a.e.keyframes {
			if !yield(Keyframe{e: kf}) {
				return
			}
		}
	}
}

// AnimatedProperties yields the names of the target's properties this
// track animates.
func (a Animation) AnimatedProperties() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range a.e.animated {
			if !yield(name) {
				return
			}
		}
	}
}

// Delay reports the evaluated delay before the first iteration.
func (a Animation) Delay() (value.Time, error) {
	return a.evalTime("delay")
}

// Iterations reports the evaluated iteration count, possibly infinite.
func (a Animation) Iterations() (float64, error) {
	v, err := a.evalProperty("iterations")
	if err != nil {
		return 0, err
	}

	n, ok := v.(value.Number)
	if !ok {
		return 0, NewErrorf("Property %q of %s is not a Number", "iterations", a.e.TypeName())
	}

	return float64(n), nil
}

// Direction reports the evaluated playback direction.
func (a Animation) Direction() (value.EnumMember, error) {
	return a.evalEnum("direction")
}

// FillMode reports the evaluated fill mode.
func (a Animation) FillMode() (value.EnumMember, error) {
	return a.evalEnum("fill_mode")
}

// BeginTime reports when the first iteration starts: the first keyframe's
// time plus the delay.
func (a Animation) BeginTime() (float64, error) {
	first, _, err := a.boundary()
	if err != nil {
		return 0, err
	}

	t, err := first.Time()
	if err != nil {
		return 0, err
	}

	delay, err := a.Delay()
	if err != nil {
		return 0, err
	}

	sum := value.Time{Value: t.Milliseconds() + delay.Milliseconds(), Unit: value.Milliseconds}

	return sum.Seconds(), nil
}

// EndTime reports when the last iteration ends. A track with infinite
// iterations never ends; its end time equals its begin time.
func (a Animation) EndTime() (float64, error) {
	begin, err := a.BeginTime()
	if err != nil {
		return 0, err
	}

	iterations, err := a.Iterations()
	if err != nil {
		return 0, err
	}

	if math.IsInf(iterations, 0) {
		return begin, nil
	}

	single, err := a.IterationDuration()
	if err != nil {
		return 0, err
	}

	return begin + single*iterations, nil
}

// IterationDuration reports the length of one iteration: the span between
// the first and last keyframe.
func (a Animation) IterationDuration() (float64, error) {
	first, last, err := a.boundary()
	if err != nil {
		return 0, err
	}

	ft, err := first.Time()
	if err != nil {
		return 0, err
	}

	lt, err := last.Time()
	if err != nil {
		return 0, err
	}

	return lt.Seconds() - ft.Seconds(), nil
}

// Duration reports the total active length across all iterations.
func (a Animation) Duration() (float64, error) {
	begin, err := a.BeginTime()
	if err != nil {
		return 0, err
	}

	end, err := a.EndTime()
	if err != nil {
		return 0, err
	}

	return end - begin, nil
}

// LocalTime maps a scene time to a position inside one iteration,
// folding in the delay, the iteration count and the playback direction.
func (a Animation) LocalTime(t float64) (float64, error) {
	delay, err := a.Delay()
	if err != nil {
		return 0, err
	}

	t = max(t-delay.Seconds(), 0)

	iterations, err := a.Iterations()
	if err != nil {
		return 0, err
	}

	if !math.IsInf(iterations, 0) {
		total, err := a.Duration()
		if err != nil {
			return 0, err
		}

		t = min(t, total)
	}

	single, err := a.IterationDuration()
	if err != nil {
		return 0, err
	}

	if single == 0 {
		return 0, nil
	}

	direction, err := a.Direction()
	if err != nil {
		return 0, err
	}

	normal, _ := AnimationDirection.Member("Normal")
	reverse, _ := AnimationDirection.Member("Reverse")
	alternate, _ := AnimationDirection.Member("Alternate")
	alternateReverse, _ := AnimationDirection.Member("AlternateReverse")

	switch direction {
	case normal, reverse:
		t = math.Mod(t, single)
		if direction == reverse {
			t = single - t
		}
	case alternate:
		t = pingPong(t, 0, single)
	case alternateReverse:
		t = pingPong(t+single, 0, single)
	}

	return t, nil
}

// Between returns the keyframes straddling a local time: equal boundary
// keyframes when the time falls outside the track.
func (a Animation) Between(t float64) (Keyframe, Keyframe, error) {
	first, last, err := a.boundary()
	if err != nil {
		return Keyframe{}, Keyframe{}, err
	}

	ft, err := first.Time()
	if err != nil {
		return Keyframe{}, Keyframe{}, err
	}

	if t < ft.Seconds() {
		return first, first, nil
	}

	lt, err := last.Time()
	if err != nil {
		return Keyframe{}, Keyframe{}, err
	}

	if t >= lt.Seconds() {
		return last, last, nil
	}

	for i := 1; i < len(a.e.keyframes); i++ {
		kf := Keyframe{e: a.e.keyframes[i]}

		kt, err := kf.Time()
		if err != nil {
			return Keyframe{}, Keyframe{}, err
		}

		if t < kt.Seconds() {
			return Keyframe{e: a.e.keyframes[i-1]}, kf, nil
		}
	}

	return last, last, nil
}

// IsAffecting reports whether the track influences its target at a scene
// time, per its fill mode.
func (a Animation) IsAffecting(t float64) (bool, error) {
	fill, err := a.FillMode()
	if err != nil {
		return false, err
	}

	always, _ := AnimationFillMode.Member("Always")
	if fill == always {
		return true, nil
	}

	begin, err := a.BeginTime()
	if err != nil {
		return false, err
	}

	iterations, err := a.Iterations()
	if err != nil {
		return false, err
	}

	if math.IsInf(iterations, 0) {
		return t >= begin, nil
	}

	end, err := a.EndTime()
	if err != nil {
		return false, err
	}

	never, _ := AnimationFillMode.Member("Never")
	after, _ := AnimationFillMode.Member("After")
	before, _ := AnimationFillMode.Member("Before")

	switch fill {
	case never:
		return begin <= t && t <= end, nil
	case after:
		return t >= begin, nil
	case before:
		return t <= end, nil
	}

	return false, nil
}

func (a Animation) boundary() (Keyframe, Keyframe, error) {
	kfs := a.e.keyframes
	if len(kfs) == 0 {
		return Keyframe{}, Keyframe{}, NewErrorf("%s has no keyframes", a.e.TypeName())
	}

	return Keyframe{e: kfs[0]}, Keyframe{e: kfs[len(kfs)-1]}, nil
}

func (a Animation) evalProperty(name string) (value.Value, error) {
	p, ok := a.e.getLocal(name)
	if !ok {
		return nil, &UndefinedError{Name: name}
	}

	return value.Eval(p)
}

func (a Animation) evalTime(name string) (value.Time, error) {
	v, err := a.evalProperty(name)
	if err != nil {
		return value.Time{}, err
	}

	t, ok := v.(value.Time)
	if !ok {
		return value.Time{}, NewErrorf("Property %q of %s is not a Time", name, a.e.TypeName())
	}

	return t, nil
}

func (a Animation) evalEnum(name string) (value.EnumMember, error) {
	v, err := a.evalProperty(name)
	if err != nil {
		return value.EnumMember{}, err
	}

	m, ok := v.(value.EnumMember)
	if !ok {
		return value.EnumMember{}, NewErrorf("Property %q of %s is not an enum member", name, a.e.TypeName())
	}

	return m, nil
}

// pingPong folds v into [lower, upper], bouncing off both ends.
func pingPong(v, lower, upper float64) float64 {
	length := upper - lower
	length2 := length * 2

	folded := math.Mod(v, length2)
	if folded < 0 {
		folded = -folded
	}

	if folded >= length {
		return lower + length2 - folded
	}

	return lower + folded
}

// Keyframe is a view over an element of type Keyframe.
type Keyframe struct {
	e *Element
}

// AsKeyframe wraps e when its type derives from Keyframe.
func AsKeyframe(e *Element) (Keyframe, bool) {
	if e == nil || !e.Is(keyframeName) {
		return Keyframe{}, false
	}

	return Keyframe{e: e}, true
}

// Element returns the underlying element.
func (k Keyframe) Element() *Element { return k.e }

// Time reports the keyframe's evaluated position on the track.
func (k Keyframe) Time() (value.Time, error) {
	p, ok := k.e.getLocal("time")
	if !ok {
		return value.Time{}, &UndefinedError{Name: "time"}
	}

	v, err := value.Eval(p)
	if err != nil {
		return value.Time{}, err
	}

	t, ok := v.(value.Time)
	if !ok {
		return value.Time{}, NewErrorf("Property %q of %s is not a Time", "time", k.e.TypeName())
	}

	return t, nil
}

// Names yields the property names the keyframe pins, in assignment order.
func (k Keyframe) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range k.e.keyframed {
			if !yield(name) {
				return
			}
		}
	}
}

// Value evaluates the pinned value of a property the keyframe holds.
func (k Keyframe) Value(name string) (value.Value, error) {
	p, ok := k.e.getLocal(name)
	if !ok {
		return nil, &UndefinedError{Name: name}
	}

	return value.Eval(p)
}
