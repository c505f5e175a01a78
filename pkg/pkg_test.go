package pkg

import (
	"os"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "textmation"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestExt(t *testing.T) {
	if !strings.HasPrefix(Ext, ".") {
		t.Errorf("Expected Ext to start with a dot, got %q", Ext)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from the VERSION file next to this package.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := string(buf); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Expected Author to have at least one entry")
	}

	for _, a := range Author {
		if a.Name == "" {
			t.Error("Expected author entries to carry a name")
		}
	}
}

func TestPrefix(t *testing.T) {
	if Prefix() == "" {
		t.Error("Expected Prefix to be non-empty")
	}
}

func TestConfigDirContainsPrefix(t *testing.T) {
	if dir := ConfigDir(); !strings.Contains(dir, Prefix()) {
		t.Errorf("Expected ConfigDir %q to contain prefix %q", dir, Prefix())
	}
}
