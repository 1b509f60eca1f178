package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kboard/internal/domain"
)

// resolveColumn resolves a column identifier which can be:
//   - A full column ID
//   - A column title (case-insensitive)
//   - A 1-based position in the board ("1" is the leftmost column)
//   - A unique ID prefix
func resolveColumn(b *domain.Board, input string) (*domain.Column, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("column is required")
	}

	if c := b.FindColumn(input); c != nil {
		return c, nil
	}

	var byTitle []*domain.Column
	for _, c := range b.Columns {
		if strings.EqualFold(c.Title, input) {
			byTitle = append(byTitle, c)
		}
	}
	switch len(byTitle) {
	case 1:
		return byTitle[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("column title %q is ambiguous (%d matches); use the column ID", input, len(byTitle))
	}

	if n, ok := parsePosition(input); ok {
		if n > len(b.Columns) {
			return nil, fmt.Errorf("column #%d not found: board has %d columns", n, len(b.Columns))
		}
		return b.Columns[n-1], nil
	}

	var matches []*domain.Column
	for _, c := range b.Columns {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("column not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("column ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTask resolves a task identifier: a full ID or a unique ID prefix.
func resolveTask(b *domain.Board, input string) (*domain.Task, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("task ID is required")
	}

	if t, _ := b.FindTask(input); t != nil {
		return t, nil
	}

	var matches []*domain.Task
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parsePosition parses a 1-based column position. Positions are limited to
// two digits so an all-digit ID prefix is not mistaken for one.
func parsePosition(s string) (int, bool) {
	if len(s) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil && n > 0
}
