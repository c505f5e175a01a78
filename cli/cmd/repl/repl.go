// Package repl implements the interactive scene prompt: expressions
// evaluate against a position in a built element tree, with fuzzy
// completion over visible property and function names, builtin signature
// hints, mode-tagged history, and an external-editor rebuild loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/functions"
	"github.com/Vallentin/textmation/lang"
	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/value"
)

// editSceneMsg is sent when editing rebuilt the scene successfully.
type editSceneMsg struct {
	scene  *element.Element
	source string
}

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editAbandonedMsg is sent when the user declined to re-edit after a
// failed rebuild.
type editAbandonedMsg struct{}

// editErrorMsg is sent when the edit process fails outside the rebuild.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help           Show this help
  tree           Print the element tree at the current element
  props          Print the current element's properties
  cd N | .. | /  Move to child N, the parent, or the scene root
  edit           Edit the scene source in $EDITOR and rebuild
  reload         Rebuild the scene from its file
  clear          Clear screen
  quit           Exit

Usage:
  Type an expression to evaluate it against the current element
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between expression and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the expression echo line with prompt and input
// styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and
// input styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the prompt.
type model struct {
	ctxFunc  func() context.Context
	input    textinput.Model
	builder  *builder.Builder
	registry *functions.Registry
	logger   log.Logger

	// scene is the tree root; current is the element expressions resolve
	// against, moved by the cd command. source is the scene text edit
	// starts from, and file is where reload reads it again.
	scene   *element.Element
	current *element.Element
	source  string
	file    string

	history    *History
	historyIdx int

	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began

	width    int // terminal width for ellipsization
	quitting bool
	mode     inputMode

	evalText   string
	evalCursor int
	ctrlText   string
	ctrlCursor int
}

// Run builds the configured scene and starts the prompt over it.
func Run(ctx context.Context, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var c config

	applyDefaults(&c)
	applyOptions(&c, opts...)

	c.logger.TraceContext(ctx, "repl start",
		slog.String("file", c.file),
		slog.Bool("has_history", c.histDir != ""),
	)

	scene, err := c.builder.Build(ctx, c.source)
	if err != nil {
		return err
	}

	histPath := ""
	if c.histDir != "" {
		histPath = filepath.Join(c.histDir, baseHistory)
	}

	history := NewHistory(histPath)
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	c.logger.TraceContext(ctx, "repl scene ready",
		slog.Int("history_entries", history.Len()),
	)

	m := newModel(ctx, c, scene, history)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, c config, scene *element.Element, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		builder:    c.builder,
		registry:   functions.NewRegistry(),
		logger:     c.logger,
		scene:      scene,
		current:    scene,
		source:     c.source,
		file:       c.file,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editSceneMsg:
		m.scene, m.current, m.source = msg.scene, msg.scene, msg.source
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete")

		return m, tea.Println(resultStyle.Render("scene rebuilt"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editAbandonedMsg:
		return m, tea.Println(hintStyle.Render("edit abandoned, keeping previous scene"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Completion / hint line.
	input := m.input.Value()

	viewingHistory := m.historyIdx < m.history.Len()

	cursor := m.input.Position()
	funcCall := detectFunctionCall(input, cursor)

	switch {
	case viewingHistory:
		// Show history position, 1-based for display.
		pos := m.historyIdx + 1
		total := m.history.Len()
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			total)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		// Empty input: show where we are and what to do.
		var hint string
		if m.mode == modeEval {
			hint = elementPath(m.current) + "  (type an expression, or press Esc for commands)"
		} else {
			hint = "Type: help, tree, props, cd, edit, reload, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case funcCall.inCall && m.mode == modeEval:
		// Show the builtin's signature with the current parameter
		// highlighted, or fall back to the completion bar.
		if sig, ok := lookupSignature(m.registry, funcCall.name); ok {
			b.WriteString(renderSignatureHint(sig, funcCall.argIndex))
			b.WriteString("\n")
		} else if len(m.matches) > 0 {
			b.WriteString(renderCandidateBar(
				m.registry, m.matches, m.suggIdx, m.tabActive, m.width,
			))
			b.WriteString("\n")
		} else {
			b.WriteString("\n")
		}

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.registry, m.matches, m.suggIdx, m.tabActive, m.width,
		))
		b.WriteString("\n")

	default:
		// Non-empty input but no matches: blank line.
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.handleTab()

	case tea.KeyShiftTab:
		return m.handleShiftTab()

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyShiftUp:
		return m.historyPrevInMode()

	case tea.KeyShiftDown:
		return m.historyNextInMode()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		// Space while tab-cycling accepts the current candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows) updates the input and
	// recomputes matches without auto-confirm, so the user can edit
	// freely.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

func (m model) handleTab() (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx++
		if m.suggIdx >= len(m.matches) {
			m.suggIdx = 0
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

func (m model) handleShiftTab() (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx--
		if m.suggIdx < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = len(m.matches) - 1
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input
// with the replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly
// one candidate remains and the typed word already equals it. autoConfirm
// should be false for deletions and cursor navigation.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	word := m.input.Value()[m.wordStart:m.wordEnd]

	if word == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Reset both mode inputs after submission.
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")

	if m.mode == modeCtrl {
		_, _ = m.history.Write(input, modeCtrl)
		m.historyIdx = m.history.Len()
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	_, _ = m.history.Write(input, modeEval)
	m.historyIdx = m.history.Len()
	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	result, err := m.builder.Eval(m.ctxFunc(), m.current, input)
	if err != nil {
		lines := errorStyle.Render("error: " + err.Error())
		if snippet := errorContext(err); snippet != "" {
			lines += "\n" + snippet
		}

		return m, tea.Sequence(echoCmd, tea.Println(lines))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval result",
		slog.String("type", result.Type().Name()),
	)

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(result.String())),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd := parts[0]
	args := parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "t", "tree":
		return m, tea.Sequence(echoCmd, tea.Println(renderTree(m.current)))

	case "p", "props":
		return m, tea.Sequence(echoCmd, tea.Println(renderProps(m.current)))

	case "cd":
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		if err := m.changeDir(arg); err != nil {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd,
			tea.Println(hintStyle.Render(elementPath(m.current))))

	case "e", "edit":
		var editCmd tea.Cmd

		m, editCmd = m.handleEdit()

		return m, tea.Sequence(echoCmd, editCmd)

	case "r", "reload":
		return m.reload(echoCmd)

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// changeDir moves the current element: "/" or no argument to the scene
// root, ".." to the parent, and a number into that child.
func (m *model) changeDir(arg string) error {
	switch arg {
	case "", "/":
		m.current = m.scene

		return nil

	case "..":
		if parent := m.current.Parent(); parent != nil {
			m.current = parent
		}

		return nil
	}

	idx, err := strconv.Atoi(arg)
	if err != nil {
		return errors.New(`cd expects a child index, "..", or "/"`)
	}

	n := 0
	for child := range m.current.Children() {
		if n == idx {
			m.current = child

			return nil
		}

		n++
	}

	return fmt.Errorf("child %d: %w (%s has %d children)",
		idx, ErrOutOfBounds, m.current.TypeName(), n)
}

// elementPath formats an element's position as a path from the scene
// root, indexing each element among its parent's children the way cd
// addresses them.
func elementPath(e *element.Element) string {
	if e.Parent() == nil {
		return "/" + e.TypeName()
	}

	return fmt.Sprintf("%s/%s[%d]", elementPath(e.Parent()), e.TypeName(), childIndex(e))
}

func childIndex(e *element.Element) int {
	idx := 0

	for child := range e.Parent().Children() {
		if child == e {
			return idx
		}

		idx++
	}

	return -1
}

// renderTree formats the element subtree rooted at el, one element per
// line, each child prefixed with the index cd uses.
func renderTree(el *element.Element) string {
	var b strings.Builder

	writeTreeLine(&b, el, "", -1)

	return strings.TrimRight(b.String(), "\n")
}

func writeTreeLine(b *strings.Builder, el *element.Element, prefix string, idx int) {
	b.WriteString(prefix)

	if idx >= 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("[%d] ", idx)))
	}

	b.WriteString(resultStyle.Render(el.TypeName()))
	b.WriteString("\n")

	i := 0
	for child := range el.Children() {
		writeTreeLine(b, child, prefix+"  ", i)
		i++
	}
}

// renderProps formats the element's properties, one evaluated value per
// line. A property that fails to evaluate shows its error instead.
func renderProps(el *element.Element) string {
	var b strings.Builder

	b.WriteString(resultStyle.Render(elementPath(el)))
	b.WriteString("\n")

	for p := range el.Properties() {
		v, err := value.Eval(p)
		if err != nil {
			fmt.Fprintf(&b, "  %s = %s\n", p.Name(), errorStyle.Render(err.Error()))

			continue
		}

		fmt.Fprintf(&b, "  %s = %s\n", p.Name(), v.String())
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m model) handleEdit() (model, tea.Cmd) {
	cmd := &editSceneCommand{
		builder: m.builder,
		source:  m.source,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return m, tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editAbandonedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.newScene == nil {
			return editCancelledMsg{}
		}

		return editSceneMsg{scene: cmd.newScene, source: cmd.newSource}
	})
}

// reload rebuilds the scene from its file. Includes resolve through the
// builder's search paths, which contain the scene file's directory.
func (m model) reload(echoCmd tea.Cmd) (model, tea.Cmd) {
	if m.file == "" {
		return m, tea.Sequence(echoCmd,
			tea.Println(errorStyle.Render("error: no scene file to reload")))
	}

	data, err := os.ReadFile(m.file)
	if err != nil {
		return m, tea.Sequence(echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	scene, err := m.builder.Build(m.ctxFunc(), string(data))
	if err != nil {
		lines := errorStyle.Render("error: " + err.Error())
		if snippet := errorContext(err); snippet != "" {
			lines += "\n" + snippet
		}

		return m, tea.Sequence(echoCmd, tea.Println(lines))
	}

	m.scene, m.current, m.source = scene, scene, string(data)

	m.logger.TraceContext(m.ctxFunc(), "repl scene reloaded",
		slog.String("file", m.file),
	)

	return m, tea.Sequence(echoCmd,
		tea.Println(resultStyle.Render("scene reloaded")))
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx > 0 {
		m.historyIdx--

		if entry, err := m.history.GetEntry(m.historyIdx); err == nil {
			if m.mode != entry.Mode {
				m, _ = m.switchToMode(entry.Mode)
			}

			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)
		}
	}

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if entry, err := m.history.GetEntry(m.historyIdx); err == nil {
			if m.mode != entry.Mode {
				m, _ = m.switchToMode(entry.Mode)
			}

			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)
		}
	} else {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

func (m model) historyPrevInMode() (model, tea.Cmd) {
	for i := m.historyIdx - 1; i >= 0; i-- {
		if entry, err := m.history.GetEntry(i); err == nil && entry.Mode == m.mode {
			m.historyIdx = i
			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)

			return m, nil
		}
	}

	return m, nil
}

func (m model) historyNextInMode() (model, tea.Cmd) {
	for i := m.historyIdx + 1; i < m.history.Len(); i++ {
		if entry, err := m.history.GetEntry(i); err == nil && entry.Mode == m.mode {
			m.historyIdx = i
			m.input.SetValue(entry.Line)
			m.input.SetCursor(len(entry.Line))
			refreshMatches(&m, false)

			return m, nil
		}
	}

	// Past the end of this mode's history: clear the input.
	if m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// toggleMode switches between expression and control modes, preserving
// each mode's input.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the given mode, saving the current mode's
// input and restoring the target's.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}

// errorContext extracts the caret snippet of a parse or build error.
func errorContext(err error) string {
	var parseErr *lang.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Context()
	}

	var buildErr *builder.BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Context()
	}

	return ""
}
