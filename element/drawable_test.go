package element

import (
	"errors"
	"testing"

	"github.com/Vallentin/textmation/value"
)

func TestDrawableRequiresParent(t *testing.T) {
	r := NewRegistry()

	def, _ := r.Lookup("Rectangle")
	rect := def.New()

	if err := rect.Ready(); err == nil {
		t.Error("Expected an error readying a detached drawable")
	}
}

func TestRectangleDefaults(t *testing.T) {
	r, scene := newScene(t, 200, 100)
	rect := create(t, r, "Rectangle", scene)

	for name, want := range map[string]float64{
		"index":         0,
		"x":             0,
		"y":             0,
		"width":         200,
		"height":        100,
		"outline_width": 1,
	} {
		if got := evalNumber(t, rect, name); !near(got, want) {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	if got := eval(t, rect, "color"); got != value.RGBA(255, 255, 255, 255) {
		t.Errorf("color = %s", got)
	}

	if got := eval(t, rect, "fill"); got != value.RGBA(255, 255, 255, 255) {
		t.Errorf("fill = %s", got)
	}

	if got := eval(t, rect, "outline"); got != value.RGBA(0, 0, 0, 0) {
		t.Errorf("outline = %s", got)
	}
}

func TestRectanglePercentWidth(t *testing.T) {
	r, scene := newScene(t, 200, 100)
	rect := create(t, r, "Rectangle", scene)

	if err := rect.Set("width", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := evalNumber(t, rect, "width"); !near(got, 100) {
		t.Errorf("width = %v, want 100", got)
	}

	// Percentages resolve against the parent dimension on every
	// evaluation, so resizing the scene resizes the rectangle.
	if err := scene.Set("width", value.Number(300)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := evalNumber(t, rect, "width"); !near(got, 150) {
		t.Errorf("width = %v, want 150", got)
	}
}

func TestNestedPercentResolution(t *testing.T) {
	r, scene := newScene(t, 400, 400)
	outer := create(t, r, "Rectangle", scene)
	inner := create(t, r, "Rectangle", outer)

	if err := outer.Set("width", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := inner.Set("width", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Each percentage resolves against its own parent: 50% of 50% of 400.
	if got := evalNumber(t, inner, "width"); !near(got, 100) {
		t.Errorf("width = %v, want 100", got)
	}
}

func TestFillFollowsColor(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	rect := create(t, r, "Rectangle", scene)

	if err := rect.Set("color", value.RGBA(255, 0, 0, 255)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := eval(t, rect, "fill"); got != value.RGBA(255, 0, 0, 255) {
		t.Errorf("fill = %s, want the new color", got)
	}

	// An explicit fill detaches it from color.
	if err := rect.Set("fill", value.RGBA(0, 255, 0, 255)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := rect.Set("color", value.RGBA(0, 0, 255, 255)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := eval(t, rect, "fill"); got != value.RGBA(0, 255, 0, 255) {
		t.Errorf("fill = %s, want the explicit fill", got)
	}
}

func TestCircleGeometry(t *testing.T) {
	r, scene := newScene(t, 300, 300)
	circle := create(t, r, "Circle", scene)

	if err := circle.Set("diameter", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	for name, want := range map[string]float64{
		"diameter": 150,
		"radius":   75,
		"width":    150,
		"height":   150,
		"center_x": 75,
		"center_y": 75,
		"x":        0,
		"y":        0,
	} {
		if got := evalNumber(t, circle, name); !near(got, want) {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestCircleCentering(t *testing.T) {
	r, scene := newScene(t, 300, 300)
	circle := create(t, r, "Circle", scene)

	if err := circle.Set("diameter", value.Number(100)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := circle.Set("center_x", value.Number(150)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// x positions the bounding box so the center lands on center_x.
	if got := evalNumber(t, circle, "x"); !near(got, 100) {
		t.Errorf("x = %v, want 100", got)
	}
}

func TestEllipseAxes(t *testing.T) {
	r, scene := newScene(t, 400, 200)
	ellipse := create(t, r, "Ellipse", scene)

	// Both axes follow diameter until split apart, and diameter is a
	// percentage of the parent width.
	if got := evalNumber(t, ellipse, "diameter_x"); !near(got, 400) {
		t.Errorf("diameter_x = %v, want 400", got)
	}

	if got := evalNumber(t, ellipse, "diameter_y"); !near(got, 400) {
		t.Errorf("diameter_y = %v, want 400", got)
	}

	if err := ellipse.Set("diameter_y", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A percentage assigned to diameter_y resolves against the parent
	// height instead.
	if got := evalNumber(t, ellipse, "diameter_y"); !near(got, 100) {
		t.Errorf("diameter_y = %v, want 100", got)
	}

	if got := evalNumber(t, ellipse, "radius_y"); !near(got, 50) {
		t.Errorf("radius_y = %v, want 50", got)
	}

	if got := evalNumber(t, ellipse, "height"); !near(got, 100) {
		t.Errorf("height = %v, want 100", got)
	}

	if got := evalNumber(t, ellipse, "radius_x"); !near(got, 200) {
		t.Errorf("radius_x = %v, want 200", got)
	}
}

func TestArcDefaults(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	arc := create(t, r, "Arc", scene)

	start, ok := eval(t, arc, "start_angle").(value.Angle)
	if !ok || start != (value.Angle{Value: 0, Unit: value.Degrees}) {
		t.Errorf("start_angle = %v", start)
	}

	end, ok := eval(t, arc, "end_angle").(value.Angle)
	if !ok || end != (value.Angle{Value: 360, Unit: value.Degrees}) {
		t.Errorf("end_angle = %v", end)
	}

	// Arcs carry the full ellipse geometry.
	if got := evalNumber(t, arc, "radius_x"); !near(got, 50) {
		t.Errorf("radius_x = %v, want 50", got)
	}
}

func TestLineEndpoints(t *testing.T) {
	r, scene := newScene(t, 200, 200)
	line := create(t, r, "Line", scene)

	if got := evalNumber(t, line, "width"); got != 1 {
		t.Errorf("width = %v, want 1", got)
	}

	if err := line.Set("x1", value.Number(10)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := line.Set("y1", value.Percent(50)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// The bounding-box origin follows the first endpoint.
	if got := evalNumber(t, line, "x"); !near(got, 10) {
		t.Errorf("x = %v, want 10", got)
	}

	if got := evalNumber(t, line, "y"); !near(got, 100) {
		t.Errorf("y = %v, want 100", got)
	}

	if got := evalNumber(t, line, "x2"); got != 0 {
		t.Errorf("x2 = %v, want 0", got)
	}
}

func TestTextDefaults(t *testing.T) {
	r, scene := newScene(t, 200, 100)
	text := create(t, r, "Text", scene)

	if got := evalNumber(t, text, "x"); !near(got, 100) {
		t.Errorf("x = %v, want 100", got)
	}

	if got := evalNumber(t, text, "y"); !near(got, 50) {
		t.Errorf("y = %v, want 50", got)
	}

	if got := eval(t, text, "font"); got != value.String("arial") {
		t.Errorf("font = %v", got)
	}

	if got := evalNumber(t, text, "font_size"); got != 32 {
		t.Errorf("font_size = %v, want 32", got)
	}

	anchor, ok := eval(t, text, "anchor").(value.FlagMember)
	if !ok || anchor.String() != "TextAnchor.Center" {
		t.Errorf("anchor = %v", anchor)
	}

	alignment, ok := eval(t, text, "alignment").(value.EnumMember)
	if !ok || alignment.String() != "TextAlignment.Left" {
		t.Errorf("alignment = %v", alignment)
	}

	// Constant properties still accept constant values.
	if err := text.Set("text", value.String("Hello")); err != nil {
		t.Fatalf("Set(text) failed: %v", err)
	}

	top, ok := TextAnchor.Member("Top")
	if !ok {
		t.Fatal("Member(Top) failed")
	}

	if err := text.Set("anchor", top); err != nil {
		t.Fatalf("Set(anchor) failed: %v", err)
	}
}

func TestImageFilename(t *testing.T) {
	r, scene := newScene(t, 100, 100)
	img := create(t, r, "Image", scene)

	if got := eval(t, img, "filename"); got != value.String("") {
		t.Errorf("filename = %v", got)
	}

	if err := img.Set("filename", value.String("logo.png")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := eval(t, img, "filename"); got != value.String("logo.png") {
		t.Errorf("filename = %v", got)
	}

	err := img.Set("filename", value.Number(1))

	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Expected *TypeError, got %v", err)
	}
}
