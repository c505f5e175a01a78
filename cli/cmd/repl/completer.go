package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/functions"
	"github.com/Vallentin/textmation/value"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "tree", "props", "cd", "edit", "reload", "clear", "quit",
}

// isWordBoundary reports whether the rune delimits a word for completion
// purposes: whitespace, the member-access dot, and scene-expression
// operator and punctuation characters. Scene identifiers are letters,
// digits, and underscores, so a hyphen is the subtraction operator and
// always a boundary.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', ',',
		'+', '-', '*', '/', '%',
		'=', '"':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary (after a space, between dots, start of line).
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = 0
	if i := strings.LastIndexFunc(input[:cursor], isWordBoundary); i >= 0 {
		_, size := utf8.DecodeRuneInString(input[i:])
		start = i + size
	}

	end = len(input)
	if i := strings.IndexFunc(input[cursor:], isWordBoundary); i >= 0 {
		end = cursor + i
	}

	return input[start:end], start, end
}

// parentPath returns the dot-separated member-access chain leading up to
// the current word. For input "x + parent.wi" with the word "wi", the
// parent path is "parent". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := strings.TrimRight(input[:wordStart], ".")
	if prefix == "" {
		return ""
	}

	// The chain reaches back to the nearest boundary that is not a dot.
	chain := func(r rune) bool { return r != '.' && isWordBoundary(r) }

	pos := 0
	if i := strings.LastIndexFunc(prefix, chain); i >= 0 {
		_, size := utf8.DecodeRuneInString(prefix[i:])
		pos = i + size
	}

	return prefix[pos:]
}

// visibleNames returns the property names resolvable as bare names from
// el: its own properties and those of its ancestors, in definition order,
// innermost first, without duplicates.
func visibleNames(el *element.Element) []string {
	var names []string

	seen := make(map[string]struct{})

	for e := el; e != nil; e = e.Parent() {
		for p := range e.Properties() {
			if _, ok := seen[p.Name()]; ok {
				continue
			}

			seen[p.Name()] = struct{}{}
			names = append(names, p.Name())
		}
	}

	return names
}

// resolvePath resolves a dot-separated property chain from el. Every
// segment must name a visible property whose value evaluates to an
// element, as member access requires. Returns nil when any segment fails
// to resolve.
func resolvePath(el *element.Element, path string) *element.Element {
	current := el

	for _, seg := range strings.Split(path, ".") {
		p := lookupVisible(current, seg)
		if p == nil {
			return nil
		}

		v, err := value.Eval(p)
		if err != nil {
			return nil
		}

		next, ok := v.(*element.Element)
		if !ok {
			return nil
		}

		current = next
	}

	return current
}

// lookupVisible resolves a property name against el and its ancestors.
func lookupVisible(el *element.Element, name string) *element.Property {
	for e := el; e != nil; e = e.Parent() {
		if p, ok := e.Get(name); ok {
			return p
		}
	}

	return nil
}

// candidatesFor returns the names that complete a word with the given
// parent path, relative to el. For an empty parent these are the visible
// property names plus the builtin function names; for a member access
// they are the names visible from the resolved element.
func candidatesFor(el *element.Element, reg *functions.Registry, parent string) []string {
	if parent != "" {
		target := resolvePath(el, parent)
		if target == nil {
			return nil
		}

		return visibleNames(target)
	}

	names := visibleNames(el)

	for name := range reg.Names() {
		names = append(names, name)
	}

	return names
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. An empty word at the top level yields no matches so the hint
// line stays visible; an empty word after a dot yields every member of
// the resolved element so the user can browse.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		parent := parentPath(input, wordStart)
		candidates = candidatesFor(m.current, m.registry, parent)

		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit the terminal width. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	reg *functions.Registry,
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")

	// Room reserved so the ellipsis always fits after a shown entry.
	room := width - lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		entry := renderCandidate(reg, match, tabActive && i == suggIdx)

		w := lipgloss.Width(entry)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w > room {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(entry)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Builtin functions display with a "()" suffix, which is not
// part of the completion itself.
func renderCandidate(reg *functions.Registry, match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	highlight := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		base = selectedStyle
		highlight = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	var b strings.Builder

	// MatchedIndexes are ascending byte offsets into Str.
	next := 0

	for i, r := range match.Str {
		style := base
		if next < len(match.MatchedIndexes) && match.MatchedIndexes[next] == i {
			style = highlight
			next++
		}

		b.WriteString(style.Render(string(r)))
	}

	if _, ok := reg.Lookup(match.Str); ok {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
