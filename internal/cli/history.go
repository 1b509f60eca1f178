package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// loadHistory reads command bar history from path, oldest first.
// Returns nil if path is empty or the file cannot be read.
func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistory adds line to the history file at path.
// History is best-effort: errors are ignored.
func appendHistory(path, line string) {
	line = strings.TrimSpace(line)
	if path == "" || line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line + "\n")
}
