package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Vallentin/textmation/builder"
	"github.com/Vallentin/textmation/element"
	"github.com/Vallentin/textmation/log"
	"github.com/Vallentin/textmation/pkg"
)

const defaultEditor = "vi"

// editSceneCommand implements [tea.ExecCommand] for the edit command. It
// writes the scene source to a temp file, opens the user's editor on it,
// and rebuilds the scene from the edited text. After a failed rebuild the
// user chooses between re-editing and abandoning; abandoning returns
// [ErrEditDeclined] so the previous scene stays in place. Clearing the
// file cancels the edit.
type editSceneCommand struct {
	builder *builder.Builder
	source  string
	ctxFunc func() context.Context
	logger  log.Logger

	// Set on a successful rebuild.
	newScene  *element.Element
	newSource string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSceneCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSceneCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSceneCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-rebuild-retry loop.
func (c *editSceneCommand) Run() error {
	ctx := c.ctxFunc()

	// Create a single temp file for the entire loop.
	f, err := os.CreateTemp(os.TempDir(), "textmation-repl-*"+pkg.Ext)
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := c.source

	for {
		// Write current content to temp file.
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		edited, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath)
		if err != nil {
			return err
		}

		// An emptied file means the user cancelled the edit.
		if strings.TrimSpace(edited) == "" {
			return nil
		}

		scene, buildErr := c.builder.Build(ctx, edited)

		c.logger.TraceContext(ctx, "editor rebuild attempt",
			slog.Int("source_length", len(edited)),
			slog.Bool("success", buildErr == nil),
		)

		if buildErr == nil {
			c.newScene = scene
			c.newSource = edited

			return nil
		}

		// Show error and prompt.
		fmt.Fprintf(c.stderr, "\nBuild error: %s\n", buildErr)
		if snippet := errorContext(buildErr); snippet != "" {
			fmt.Fprintln(c.stderr, snippet)
		}

		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = edited
	}
}

// runEditor launches the user's editor on the given file path with the
// terminal wired through, then reads the edited content back.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s: %w", editor, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
