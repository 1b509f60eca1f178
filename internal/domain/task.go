package domain

import "github.com/google/uuid"

type Task struct {
	ID          string
	Title       string
	Description string

	column *Column
}

// NewTask creates a task owned by column with a fresh ID. The task is not
// appended to the column's sequence; use Column.AddTask for that.
func NewTask(column *Column, title string) (*Task, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:     uuid.New().String(),
		Title:  t,
		column: column,
	}, nil
}

// Column returns the column that currently owns the task, or nil.
func (t *Task) Column() *Column {
	return t.column
}

// SetColumn reassigns ownership without touching either column's task list.
// Callers must keep both sequences consistent.
func (t *Task) SetColumn(c *Column) {
	t.column = c
}

func (t *Task) Rename(title string) error {
	v, err := normalizeTitle(title)
	if err != nil {
		return err
	}
	t.Title = v
	return nil
}

func (t *Task) SetDescription(desc string) {
	t.Description = desc
}
