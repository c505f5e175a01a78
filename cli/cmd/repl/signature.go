package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Vallentin/textmation/functions"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes a call expression the cursor sits inside.
type functionCall struct {
	name     string // function name before the opening paren
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if the cursor is inside an argument list
}

// detectFunctionCall reports whether the cursor is inside a call's
// argument list, which call it is, and which argument the cursor is on.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Find the innermost unclosed paren before the cursor. Parens and
	// separators are ASCII, so byte scanning is safe.
	depth := 0
	open := -1

scan:
	for i := cursor - 1; i >= 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	// The identifier immediately before the paren names the function.
	start := open
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}

	name := input[start:open]
	if name == "" {
		return functionCall{}
	}

	// The argument index is the comma count at depth zero between the
	// paren and the cursor.
	arg := 0
	depth = 0

	for i := open + 1; i < cursor; i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				arg++
			}
		}
	}

	return functionCall{name: name, argIndex: arg, inCall: true}
}

// isIdentByte reports whether b can appear in a scene identifier.
func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// signature describes a builtin function for the hint line.
type signature struct {
	name   string
	params []string
	ret    string
}

// lookupSignature resolves a builtin function into its display signature,
// with parameter and return types by name.
func lookupSignature(reg *functions.Registry, name string) (signature, bool) {
	fn, ok := reg.Lookup(name)
	if !ok {
		return signature{}, false
	}

	sig := signature{name: fn.Name(), ret: fn.ReturnType().Name()}

	for t := range fn.Params() {
		sig.params = append(sig.params, t.Name())
	}

	return sig, true
}

// String formats the signature without styling.
func (s signature) String() string {
	return s.name + "(" + strings.Join(s.params, ", ") + ") -> " + s.ret
}

// renderSignatureHint renders the signature with the current parameter
// highlighted. Arguments beyond the declared parameters highlight
// nothing; the arity error surfaces on evaluation.
func renderSignatureHint(sig signature, currentArg int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(sig.name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range sig.params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == currentArg {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(") -> " + sig.ret))

	return b.String()
}
