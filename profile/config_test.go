package profile

import "testing"

func TestNewEmpty(t *testing.T) {
	c := New()

	mode, path, quiet := c()
	if mode != "" || path != "" || quiet {
		t.Errorf("New() = (%q, %q, %v), want empty", mode, path, quiet)
	}
}

func TestNewComposesOptions(t *testing.T) {
	c := New(
		WithMode("cpu"),
		WithPath("/tmp/profiles"),
		WithQuiet(true),
	)

	mode, path, quiet := c()

	if mode != "cpu" {
		t.Errorf("mode = %q, want %q", mode, "cpu")
	}

	if path != "/tmp/profiles" {
		t.Errorf("path = %q, want %q", path, "/tmp/profiles")
	}

	if !quiet {
		t.Error("quiet not set")
	}
}

func TestOptionsReplaceOneParameter(t *testing.T) {
	c := New(WithMode("heap"), WithPath("a"))
	c = WithPath("b")(c)

	mode, path, _ := c()

	if mode != "heap" {
		t.Errorf("mode = %q, want %q after replacing path", mode, "heap")
	}

	if path != "b" {
		t.Errorf("path = %q, want %q", path, "b")
	}
}

func TestOptionsOnNilConfig(t *testing.T) {
	var c Config

	c = WithMode("mutex")(c)

	mode, path, quiet := c()
	if mode != "mutex" || path != "" || quiet {
		t.Errorf("got (%q, %q, %v), want mode only", mode, path, quiet)
	}
}

func TestStartWithoutMode(t *testing.T) {
	handle := New().Start()

	// Stop on the empty configuration must always be callable.
	handle.Stop()
	handle.Stop()
}

func TestStartOnNilConfig(t *testing.T) {
	var c Config

	c.Start().Stop()
}
