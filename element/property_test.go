package element

import (
	"errors"
	"strings"
	"testing"

	"github.com/Vallentin/textmation/value"
)

func property(t *testing.T, e *Element, name string) *Property {
	t.Helper()

	p, ok := e.Get(name)
	if !ok {
		t.Fatalf("Get(%q) failed", name)
	}

	return p
}

func TestSetWrongType(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	tests := []struct {
		name  string
		value value.Value
		want  string
	}{
		{"width", value.String("wide"), "Expected type of Number, Percentage, received String"},
		{"outline", value.Number(0), "Expected type of Vec4, received Number"},
		{"outline_width", value.Percent(10), "Expected type of Number, received Percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rect.Set(tt.name, tt.value)

			var typeErr *TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("Expected *TypeError, got %v", err)
			}

			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err, tt.want)
			}
		})
	}
}

func TestSceneWidthRejectsPercent(t *testing.T) {
	_, scene := newScene(t, 100, 100)

	err := scene.Set("width", value.Percent(50))

	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Expected *TypeError, got %v", err)
	}

	if !strings.Contains(err.Error(), "received Percentage") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestConstantAcceptsConstantExpr(t *testing.T) {
	_, scene := newScene(t, 100, 100)

	// frame_rate is constant but a fully constant expression is fine.
	expr, err := value.NewBinOp(value.OpMul, value.Number(12), value.Number(2))
	if err != nil {
		t.Fatalf("NewBinOp failed: %v", err)
	}

	if err := scene.Set("frame_rate", expr); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := evalNumber(t, scene, "frame_rate"); got != 24 {
		t.Errorf("frame_rate = %v, want 24", got)
	}
}

func TestConstantRejectsKeyframedReference(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)
	anim := create(t, r, "Animation", rect)
	kf := create(t, r, "Keyframe", anim)

	if err := kf.Set("x", value.Number(10)); err != nil {
		t.Fatalf("Keyframe set failed: %v", err)
	}

	x := property(t, rect, "x")
	if x.Constant() {
		t.Fatal("A keyframed property should not be constant")
	}

	err := scene.Set("frame_rate", x)

	var constant *ConstantError
	if !errors.As(err, &constant) {
		t.Fatalf("Expected *ConstantError, got %v", err)
	}

	if !strings.Contains(err.Error(), `Cannot assign non-constant value to property "frame_rate"`) {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestConstantReferenceStaysConstant(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	// fill defaults to a reference to color, which is constant, so the
	// reference itself is constant too.
	fill := property(t, rect, "fill")
	if !fill.Constant() {
		t.Error("A reference to a constant property should be constant")
	}
}

func TestCycleSelf(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	err := rect.Set("x", property(t, rect, "x"))

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expected *CycleError, got %v", err)
	}

	if !strings.Contains(err.Error(), "Circular dependency encountered") {
		t.Errorf("Unexpected error: %v", err)
	}

	paths := cycle.PathStrings()
	if len(paths) != 1 || paths[0] != "x -> x" {
		t.Errorf("PathStrings() = %q", paths)
	}
}

func TestCycleIndirect(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	if err := rect.Set("x", property(t, rect, "y")); err != nil {
		t.Fatalf("Set(x) failed: %v", err)
	}

	err := rect.Set("y", property(t, rect, "x"))

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expected *CycleError, got %v", err)
	}

	paths := cycle.PathStrings()
	if len(paths) != 1 || paths[0] != "y -> x -> y" {
		t.Errorf("PathStrings() = %q", paths)
	}
}

func TestCycleAcrossElements(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	a := create(t, r, "Rectangle", scene)
	b := create(t, r, "Rectangle", scene)

	if err := a.Set("x", property(t, b, "x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	err := b.Set("x", property(t, a, "x"))

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expected *CycleError, got %v", err)
	}

	paths := cycle.PathStrings()
	if len(paths) != 1 || paths[0] != "x -> x -> x" {
		t.Errorf("PathStrings() = %q", paths)
	}
}

func TestCycleThroughExpression(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	sum, err := value.NewBinOp(value.OpAdd, property(t, rect, "y"), value.Number(10))
	if err != nil {
		t.Fatalf("NewBinOp failed: %v", err)
	}

	if err := rect.Set("x", sum); err != nil {
		t.Fatalf("Set(x) failed: %v", err)
	}

	err = rect.Set("y", property(t, rect, "x"))

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expected *CycleError, got %v", err)
	}

	paths := cycle.PathStrings()
	if len(paths) != 1 || paths[0] != "y -> x -> y" {
		t.Errorf("PathStrings() = %q", paths)
	}
}

func TestCycleThroughPercent(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	outer := create(t, r, "Rectangle", scene)
	inner := create(t, r, "Rectangle", outer)

	// inner.width is a percentage resolved against outer.width, so
	// referencing it back from outer.width closes a loop.
	err := outer.Set("width", property(t, inner, "width"))

	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Expected *CycleError, got %v", err)
	}

	paths := cycle.PathStrings()
	if len(paths) != 1 || paths[0] != "width -> width -> width" {
		t.Errorf("PathStrings() = %q", paths)
	}
}

func TestNoFalseCycle(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	// Diamond-shaped sharing is not a cycle.
	width := property(t, rect, "width")

	left, err := value.NewBinOp(value.OpDiv, width, value.Number(2))
	if err != nil {
		t.Fatalf("NewBinOp failed: %v", err)
	}

	right, err := value.NewBinOp(value.OpDiv, width, value.Number(4))
	if err != nil {
		t.Fatalf("NewBinOp failed: %v", err)
	}

	both, err := value.NewBinOp(value.OpAdd, left, right)
	if err != nil {
		t.Fatalf("NewBinOp failed: %v", err)
	}

	if err := rect.Set("x", both); err != nil {
		t.Fatalf("Set(x) failed: %v", err)
	}

	if got := evalNumber(t, rect, "x"); got != 75 {
		t.Errorf("x = %v, want 75", got)
	}
}

func TestReadonlyIndex(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	err := rect.Set("index", value.Number(5))

	var readonly *ReadonlyError
	if !errors.As(err, &readonly) {
		t.Fatalf("Expected *ReadonlyError, got %v", err)
	}

	if readonly.Name != "index" {
		t.Errorf("Name = %q, want index", readonly.Name)
	}
}

func TestPropertyTypes(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	var got []value.Type
	for typ := range property(t, rect, "width").Types() {
		got = append(got, typ)
	}

	if len(got) != 2 || got[0] != value.TypeNumber || got[1] != value.TypePercent {
		t.Errorf("Types() = %v", got)
	}
}
