package domain

import "github.com/google/uuid"

type Column struct {
	ID    string
	Title string
	Tasks []*Task

	board *Board
}

// PropagateResult reports where PropagateTask sent a task. To is nil when the
// task was deleted from the last column.
type PropagateResult struct {
	Deleted bool
	To      *Column
}

// NewColumn creates a column with a fresh ID that navigates back to board.
// The column is not appended to the board; use Board.AddColumn for that.
func NewColumn(board *Board, title string) (*Column, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return &Column{
		ID:    uuid.New().String(),
		Title: t,
		Tasks: []*Task{},
		board: board,
	}, nil
}

// Board returns the board the column navigates back to, or nil.
func (c *Column) Board() *Board {
	return c.board
}

func (c *Column) Rename(title string) error {
	v, err := normalizeTitle(title)
	if err != nil {
		return err
	}
	c.Title = v
	return nil
}

// AddTask appends task to the end of the column and makes the column its owner.
// The caller guarantees task.ID is not already on the board.
func (c *Column) AddTask(task *Task) {
	c.Tasks = append(c.Tasks, task)
	task.SetColumn(c)
}

// RemoveTask drops the task with the given ID. It reports whether a task was removed.
func (c *Column) RemoveTask(id string) bool {
	idx := c.IndexOf(id)
	if idx < 0 {
		return false
	}
	removed := c.Tasks[idx]
	c.Tasks = append(c.Tasks[:idx], c.Tasks[idx+1:]...)
	if removed.column == c {
		removed.SetColumn(nil)
	}
	return true
}

// FindTask returns the task with the given ID, or nil.
func (c *Column) FindTask(id string) *Task {
	if idx := c.IndexOf(id); idx >= 0 {
		return c.Tasks[idx]
	}
	return nil
}

// IndexOf returns the position of the task with the given ID, or -1.
func (c *Column) IndexOf(taskID string) int {
	for i, t := range c.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// FinalizeDrag completes a drag gesture: the task leaves this column and is
// appended to the destination column. If the destination cannot be resolved
// the move is cancelled and nothing changes.
func (c *Column) FinalizeDrag(task *Task, destColumnID string) error {
	if c.board == nil {
		return ErrColumnNotFound
	}
	dest := c.board.FindColumn(destColumnID)
	if dest == nil {
		return ErrColumnNotFound
	}
	idx := c.IndexOf(task.ID)
	if idx < 0 {
		return ErrTaskNotFound
	}

	c.Tasks = append(c.Tasks[:idx], c.Tasks[idx+1:]...)
	dest.Tasks = append(dest.Tasks, task)
	task.SetColumn(dest)
	return nil
}

// PropagateTask advances the task to the next column on the board. A task in
// the last column is deleted instead.
func (c *Column) PropagateTask(task *Task) (PropagateResult, error) {
	if c.board == nil {
		return PropagateResult{}, ErrColumnNotFound
	}
	pos := c.board.ColumnIndex(c.ID)
	if pos < 0 {
		return PropagateResult{}, ErrColumnNotFound
	}
	if c.IndexOf(task.ID) < 0 {
		return PropagateResult{}, ErrTaskNotFound
	}

	if pos+1 < len(c.board.Columns) {
		next := c.board.Columns[pos+1]
		if err := c.FinalizeDrag(task, next.ID); err != nil {
			return PropagateResult{}, err
		}
		return PropagateResult{To: next}, nil
	}

	c.RemoveTask(task.ID)
	return PropagateResult{Deleted: true}, nil
}

// MoveTaskTo reorders a task within the column. Out-of-range indexes are
// clamped to the first or last position.
func (c *Column) MoveTaskTo(taskID string, index int) error {
	from := c.IndexOf(taskID)
	if from < 0 {
		return ErrTaskNotFound
	}
	task := c.Tasks[from]
	rest := append(c.Tasks[:from:from], c.Tasks[from+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(rest) {
		index = len(rest)
	}

	reordered := make([]*Task, 0, len(c.Tasks))
	reordered = append(reordered, rest[:index]...)
	reordered = append(reordered, task)
	reordered = append(reordered, rest[index:]...)
	c.Tasks = reordered
	return nil
}
