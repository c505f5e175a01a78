package log

import (
	"bytes"
	"strings"
	"testing"

	"log/slog"
)

// swapDefault redirects the package logger into a buffer for the duration
// of a test.
func swapDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	defaultLog = Make(&buf, opts...)

	return &buf
}

func TestPackageFunctions(t *testing.T) {
	tests := []struct {
		name  string
		log   func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := swapDefault(t, WithLevel(LevelDebug), WithPretty(false))

			tt.log("package message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, "package message") {
				t.Errorf("message missing from output: %s", output)
			}

			if !strings.Contains(output, tt.level) {
				t.Errorf("level %q missing from output: %s", tt.level, output)
			}

			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("attribute missing from output: %s", output)
			}
		})
	}
}

func TestConfigReshapesDefault(t *testing.T) {
	buf := swapDefault(t)

	Config(WithLevel(LevelError), WithPretty(false))

	Info("filtered out")

	if buf.Len() > 0 {
		t.Errorf("info logged after raising the default level: %s", buf.String())
	}

	Error("kept")

	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("error missing from output: %s", buf.String())
	}
}

func TestDefaultReflectsConfig(t *testing.T) {
	swapDefault(t)

	Config(WithLevel(LevelWarn), WithFormat(FormatText))

	logger := Default()

	if logger.Level() != LevelWarn {
		t.Errorf("Default().Level() = %v, want %v", logger.Level(), LevelWarn)
	}

	if logger.Format() != FormatText {
		t.Errorf("Default().Format() = %v, want %v", logger.Format(), FormatText)
	}
}

func TestPackageWith(t *testing.T) {
	buf := swapDefault(t, WithPretty(false))

	With(slog.String("scene", "intro")).Info("scoped")

	output := buf.String()
	if !strings.Contains(output, `"scene":"intro"`) {
		t.Errorf("bound attribute missing from output: %s", output)
	}
}
