package repl

import (
	"errors"
	"strings"
	"testing"
)

const treeScene = "width = 320\n" +
	"height = 180\n" +
	"\n" +
	"create Rectangle\n" +
	"\twidth = 50%\n" +
	"\n" +
	"\tcreate Rectangle\n" +
	"\t\twidth = 25%\n" +
	"\n" +
	"create Circle\n" +
	"\tradius = 20\n"

func TestElementPath(t *testing.T) {
	scene := buildScene(t, treeScene)

	if got := elementPath(scene); got != "/Scene" {
		t.Errorf("elementPath(scene) = %q, want %q", got, "/Scene")
	}

	var children []string

	for child := range scene.Children() {
		children = append(children, elementPath(child))
	}

	want := []string{"/Scene/Rectangle[0]", "/Scene/Circle[1]"}

	if len(children) != len(want) {
		t.Fatalf("scene has %d children, want %d", len(children), len(want))
	}

	for i, w := range want {
		if children[i] != w {
			t.Errorf("child %d path = %q, want %q", i, children[i], w)
		}
	}

	outer := firstChild(t, scene)
	inner := firstChild(t, outer)

	if got := elementPath(inner); got != "/Scene/Rectangle[0]/Rectangle[0]" {
		t.Errorf("elementPath(inner) = %q, want %q", got, "/Scene/Rectangle[0]/Rectangle[0]")
	}
}

func TestChangeDir(t *testing.T) {
	scene := buildScene(t, treeScene)

	m := model{scene: scene, current: scene}

	if err := m.changeDir("0"); err != nil {
		t.Fatalf("changeDir(0) error = %v", err)
	}

	if got := m.current.TypeName(); got != "Rectangle" {
		t.Errorf("current = %s, want Rectangle", got)
	}

	if err := m.changeDir(".."); err != nil {
		t.Fatalf("changeDir(..) error = %v", err)
	}

	if m.current != scene {
		t.Errorf("current = %s, want the scene", m.current.TypeName())
	}

	// Parent of the root stays at the root.
	if err := m.changeDir(".."); err != nil {
		t.Fatalf("changeDir(..) at root error = %v", err)
	}

	if m.current != scene {
		t.Errorf("current = %s, want the scene", m.current.TypeName())
	}

	if err := m.changeDir("1"); err != nil {
		t.Fatalf("changeDir(1) error = %v", err)
	}

	if got := m.current.TypeName(); got != "Circle" {
		t.Errorf("current = %s, want Circle", got)
	}

	if err := m.changeDir("/"); err != nil {
		t.Fatalf("changeDir(/) error = %v", err)
	}

	if m.current != scene {
		t.Errorf("current = %s, want the scene", m.current.TypeName())
	}

	if err := m.changeDir("7"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("changeDir(7) error = %v, want ErrOutOfBounds", err)
	}

	if err := m.changeDir("abc"); err == nil || !strings.Contains(err.Error(), "cd expects") {
		t.Errorf("changeDir(abc) error = %v, want usage error", err)
	}
}

func TestRenderTree(t *testing.T) {
	scene := buildScene(t, treeScene)

	got := renderTree(scene)

	for _, want := range []string{"Scene", "Rectangle", "Circle", "[0] ", "[1] "} {
		if !strings.Contains(got, want) {
			t.Errorf("renderTree() = %q, missing %q", got, want)
		}
	}

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Errorf("renderTree() has %d lines, want 4", len(lines))
	}
}

func TestRenderProps(t *testing.T) {
	scene := buildScene(t, treeScene)
	rect := firstChild(t, scene)

	got := renderProps(rect)

	for _, want := range []string{"/Scene/Rectangle[0]", "width", "height", "fill"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderProps() = %q, missing %q", got, want)
		}
	}
}

func TestToggleModePreservesInput(t *testing.T) {
	scene := buildScene(t, treeScene)
	rect := firstChild(t, scene)

	m := testModel(rect, modeEval, "width + ")

	m, _ = m.toggleMode()

	if m.mode != modeCtrl {
		t.Fatalf("mode = %v, want modeCtrl", m.mode)
	}

	if got := m.input.Value(); got != "" {
		t.Errorf("ctrl input = %q, want empty", got)
	}

	m.input.SetValue("tre")

	m, _ = m.toggleMode()

	if m.mode != modeEval {
		t.Fatalf("mode = %v, want modeEval", m.mode)
	}

	if got := m.input.Value(); got != "width + " {
		t.Errorf("eval input = %q, want %q", got, "width + ")
	}

	m, _ = m.toggleMode()

	if got := m.input.Value(); got != "tre" {
		t.Errorf("ctrl input = %q, want %q", got, "tre")
	}
}

func TestHelpMessage(t *testing.T) {
	got := helpMessage()

	for _, want := range []string{"help", "tree", "props", "cd", "edit", "reload", "quit", "Esc"} {
		if !strings.Contains(got, want) {
			t.Errorf("helpMessage() missing %q", want)
		}
	}
}

func TestFormatCommand(t *testing.T) {
	if got := formatCommand("width + 10"); !strings.Contains(got, "width + 10") {
		t.Errorf("formatCommand() = %q, missing input", got)
	}

	if got := formatCtrlCommand("tree"); !strings.Contains(got, "tree") {
		t.Errorf("formatCtrlCommand() = %q, missing input", got)
	}
}
