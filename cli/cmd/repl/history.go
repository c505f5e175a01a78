package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history"

// HistoryEntry is a single submitted line together with the mode it was
// submitted in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History holds submitted lines across both input modes, persisted one
// entry per line with an E: or C: mode prefix. A History with an empty
// path keeps entries in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with the contents of the history file. A
// missing file loads as empty.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Mode: modeEval, Line: line}

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			entry.Line = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			entry.Mode, entry.Line = modeCtrl, s
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

// Write appends a line to the history. A line equal to the most recent
// entry of the same mode is skipped, and an earlier duplicate moves to the
// end instead of appearing twice.
func (h *History) Write(line string, mode inputMode) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return len(line), nil
	}

	moved := false

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		moved = true
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return len(line), nil
	}

	// Moving an entry invalidates the file's order.
	if moved {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(prefixFor(mode) + line + "\n")
}

// GetEntry retrieves an entry by index. Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len reports the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// rewriteFile replaces the history file with the current entries. Callers
// must hold h.mu.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	total := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(prefixFor(entry.Mode) + entry.Line + "\n")
		if err != nil {
			return total, err
		}

		total += n
	}

	return total, nil
}

func prefixFor(mode inputMode) string {
	if mode == modeCtrl {
		return "C:"
	}

	return "E:"
}
