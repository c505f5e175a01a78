//go:build !pprof

package profile

import "testing"

func TestModesEmptyWithoutTag(t *testing.T) {
	if modes := Modes(); len(modes) != 0 {
		t.Errorf("Modes() = %v, want none without the pprof tag", modes)
	}
}

func TestStartInertWithoutTag(t *testing.T) {
	handle := New(WithMode("cpu"), WithQuiet(true)).Start()

	handle.Stop()
}
