package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/Vallentin/textmation/functions"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   functionCall
	}{
		{
			name:   "no call",
			input:  "width",
			cursor: 5,
			want:   functionCall{},
		},
		{
			name:   "open paren",
			input:  "rgb(",
			cursor: 4,
			want:   functionCall{name: "rgb", argIndex: 0, inCall: true},
		},
		{
			name:   "first arg",
			input:  "rgb(25",
			cursor: 6,
			want:   functionCall{name: "rgb", argIndex: 0, inCall: true},
		},
		{
			name:   "second arg",
			input:  "rgb(255,",
			cursor: 8,
			want:   functionCall{name: "rgb", argIndex: 1, inCall: true},
		},
		{
			name:   "third arg",
			input:  "rgb(255, 0,",
			cursor: 11,
			want:   functionCall{name: "rgb", argIndex: 2, inCall: true},
		},
		{
			name:   "nested call closed",
			input:  "min(max(1, 2),",
			cursor: 14,
			want:   functionCall{name: "min", argIndex: 1, inCall: true},
		},
		{
			name:   "cursor inside nested call",
			input:  "min(max(1,",
			cursor: 10,
			want:   functionCall{name: "max", argIndex: 1, inCall: true},
		},
		{
			name:   "call fully closed",
			input:  "rgb(1, 2, 3)",
			cursor: 12,
			want:   functionCall{},
		},
		{
			name:   "paren without name",
			input:  "(1,",
			cursor: 3,
			want:   functionCall{},
		},
		{
			name:   "cursor before paren",
			input:  "rgb(",
			cursor: 3,
			want:   functionCall{},
		},
		{
			name:   "call in larger expression",
			input:  "width + rgb(20",
			cursor: 14,
			want:   functionCall{name: "rgb", argIndex: 0, inCall: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFunctionCall(tt.input, tt.cursor); got != tt.want {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want %+v",
					tt.input, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestLookupSignature(t *testing.T) {
	reg := functions.NewRegistry()

	tests := []struct {
		name       string
		funcName   string
		wantOK     bool
		wantParams []string
		wantString string
	}{
		{
			name:       "rgb",
			funcName:   "rgb",
			wantOK:     true,
			wantParams: []string{"Number", "Number", "Number"},
			wantString: "rgb(Number, Number, Number) -> Vec4",
		},
		{
			name:       "rgba",
			funcName:   "rgba",
			wantOK:     true,
			wantParams: []string{"Number", "Number", "Number", "Number"},
			wantString: "rgba(Number, Number, Number, Number) -> Vec4",
		},
		{
			name:       "floor",
			funcName:   "floor",
			wantOK:     true,
			wantParams: []string{"Number"},
			wantString: "floor(Number) -> Number",
		},
		{
			name:     "unknown",
			funcName: "nope",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := lookupSignature(reg, tt.funcName)
			if ok != tt.wantOK {
				t.Fatalf("lookupSignature(%q) ok = %v, want %v", tt.funcName, ok, tt.wantOK)
			}

			if !ok {
				return
			}

			if !slices.Equal(sig.params, tt.wantParams) {
				t.Errorf("lookupSignature(%q).params = %v, want %v",
					tt.funcName, sig.params, tt.wantParams)
			}

			if got := sig.String(); got != tt.wantString {
				t.Errorf("signature.String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	reg := functions.NewRegistry()

	sig, ok := lookupSignature(reg, "rgb")
	if !ok {
		t.Fatalf("lookupSignature(rgb) not found")
	}

	for _, arg := range []int{0, 1, 2, 5} {
		got := renderSignatureHint(sig, arg)
		if got == "" {
			t.Fatalf("renderSignatureHint(arg=%d) returned empty string", arg)
		}

		for _, want := range []string{"rgb", "Number", "Vec4"} {
			if !strings.Contains(got, want) {
				t.Errorf("renderSignatureHint(arg=%d) = %q, missing %q", arg, got, want)
			}
		}
	}
}
