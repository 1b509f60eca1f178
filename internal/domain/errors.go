package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
)

// normalizeTitle trims surrounding whitespace and rejects blank input.
func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}
