package testutil

import (
	"testing"

	"github.com/alexanderramin/kboard/internal/domain"
)

// Board options
type BoardOption func(t *testing.T, b *domain.Board)

// WithTasks appends tasks with the given titles to the column at index col.
func WithTasks(col int, titles ...string) BoardOption {
	return func(t *testing.T, b *domain.Board) {
		t.Helper()
		if col >= len(b.Columns) {
			t.Fatalf("board has no column %d", col)
		}
		c := b.Columns[col]
		for _, title := range titles {
			task, err := domain.NewTask(c, title)
			if err != nil {
				t.Fatalf("creating task %q: %v", title, err)
			}
			c.AddTask(task)
		}
	}
}

// WithExtraColumn appends an empty column.
func WithExtraColumn(title string) BoardOption {
	return func(t *testing.T, b *domain.Board) {
		t.Helper()
		if _, err := b.AddColumn(title); err != nil {
			t.Fatalf("adding column %q: %v", title, err)
		}
	}
}

// NewTestBoard builds a default board ("To Do", "In Progress", "Done") and
// applies opts in order.
func NewTestBoard(t *testing.T, opts ...BoardOption) *domain.Board {
	t.Helper()
	b := domain.NewDefaultBoard("Test Board")
	for _, opt := range opts {
		opt(t, b)
	}
	return b
}

// TaskTitles returns the titles of a column's tasks in order.
func TaskTitles(c *domain.Column) []string {
	titles := make([]string, 0, len(c.Tasks))
	for _, task := range c.Tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

// ColumnByTitle returns the first column with the given title or fails the test.
func ColumnByTitle(t *testing.T, b *domain.Board, title string) *domain.Column {
	t.Helper()
	for _, c := range b.Columns {
		if c.Title == title {
			return c
		}
	}
	t.Fatalf("no column titled %q", title)
	return nil
}
