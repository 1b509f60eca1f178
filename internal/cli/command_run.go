package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// errNestedBoard is returned when the command bar is asked to open the board
// view from inside the board view.
var errNestedBoard = errors.New("already in the board view")

// runCommandLine runs one kboard command line against the live board and
// returns what it printed. It shares the board service with the caller but
// never prompts: destructive commands need --yes, as on a pipe.
func runCommandLine(app *App, line string) (string, error) {
	args, err := splitCommandLine(line)
	if err != nil {
		return "", err
	}
	if len(args) > 0 && args[0] == "kboard" {
		args = args[1:]
	}
	if len(args) == 0 || args[0] == "board" {
		return "", errNestedBoard
	}
	if args[0] == "import" && len(args) > 1 && args[1] == "-" {
		return "", errors.New("import from stdin is not available here; pass a file path")
	}

	sub := *app
	sub.IsInteractive = func() bool { return false }
	sub.Confirm = nil

	root := NewRootCmd(&sub)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err = root.Execute()
	return strings.TrimRight(buf.String(), "\n"), err
}

// splitCommandLine splits a line into arguments. Single and double quotes
// group words, and a backslash escapes the next character outside single
// quotes.
func splitCommandLine(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false

		case inSingle:
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}

		case inDouble:
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}

		case r == '\\':
			escaped = true
			tokenStarted = true
		case r == '\'':
			inSingle = true
			tokenStarted = true
		case r == '"':
			inDouble = true
			tokenStarted = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}
	return parts, nil
}
