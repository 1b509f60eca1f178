package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultColumnTitles is the bootstrap column set for a fresh or reset board.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

type Board struct {
	ID      string
	Title   string
	Columns []*Column
}

// NewBoard creates an empty board with a fresh ID. Unlike columns and tasks a
// board title may be blank.
func NewBoard(title string) *Board {
	return &Board{
		ID:      uuid.New().String(),
		Title:   title,
		Columns: []*Column{},
	}
}

// NewDefaultBoard creates a board holding the default, empty columns.
func NewDefaultBoard(title string) *Board {
	b := NewBoard(title)
	b.setupDefaultColumns()
	return b
}

func (b *Board) setupDefaultColumns() {
	for _, title := range DefaultColumnTitles {
		// Default titles are non-blank; AddColumn cannot fail here.
		_, _ = b.AddColumn(title)
	}
}

// AddColumn appends a new column with a fresh ID.
func (b *Board) AddColumn(title string) (*Column, error) {
	col, err := NewColumn(b, title)
	if err != nil {
		return nil, err
	}
	b.Columns = append(b.Columns, col)
	return col, nil
}

// AttachColumn appends an already-built column, taking ownership of it and
// of every task it holds.
func (b *Board) AttachColumn(col *Column) {
	col.board = b
	for _, t := range col.Tasks {
		t.SetColumn(col)
	}
	b.Columns = append(b.Columns, col)
}

// Replace swaps the whole tree for src's, keeping b as the root. Columns and
// tasks of src are re-parented onto b.
func (b *Board) Replace(src *Board) {
	b.ID = src.ID
	b.Title = src.Title
	b.Columns = make([]*Column, 0, len(src.Columns))
	for _, col := range src.Columns {
		b.AttachColumn(col)
	}
	src.Columns = nil
}

// RemoveColumn deletes the column with the given ID together with its tasks.
func (b *Board) RemoveColumn(id string) bool {
	idx := b.ColumnIndex(id)
	if idx < 0 {
		return false
	}
	col := b.Columns[idx]
	b.Columns = append(b.Columns[:idx], b.Columns[idx+1:]...)
	for _, t := range col.Tasks {
		t.SetColumn(nil)
	}
	col.Tasks = nil
	col.board = nil
	return true
}

// ClearBoard discards every column and task and restores the default columns.
// The board keeps its ID and title.
func (b *Board) ClearBoard() {
	for _, col := range b.Columns {
		for _, t := range col.Tasks {
			t.SetColumn(nil)
		}
		col.board = nil
	}
	b.Columns = []*Column{}
	b.setupDefaultColumns()
}

func (b *Board) FindColumn(id string) *Column {
	if idx := b.ColumnIndex(id); idx >= 0 {
		return b.Columns[idx]
	}
	return nil
}

// ColumnIndex returns the left-to-right position of the column, or -1.
func (b *Board) ColumnIndex(id string) int {
	for i, c := range b.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// NextColumn returns the column right of id, or nil for the last column.
func (b *Board) NextColumn(id string) *Column {
	idx := b.ColumnIndex(id)
	if idx < 0 || idx+1 >= len(b.Columns) {
		return nil
	}
	return b.Columns[idx+1]
}

// PrevColumn returns the column left of id, or nil for the first column.
func (b *Board) PrevColumn(id string) *Column {
	idx := b.ColumnIndex(id)
	if idx <= 0 {
		return nil
	}
	return b.Columns[idx-1]
}

// FindTask searches every column for the task with the given ID.
func (b *Board) FindTask(id string) (*Task, *Column) {
	for _, c := range b.Columns {
		if t := c.FindTask(id); t != nil {
			return t, c
		}
	}
	return nil, nil
}

func (b *Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Validate checks the tree invariants: no nil entries, unique column and task
// IDs, and back references that match the containing sequence.
func (b *Board) Validate() []error {
	var errs []error
	columnIDs := make(map[string]bool)
	taskIDs := make(map[string]bool)

	for i, c := range b.Columns {
		if c == nil {
			errs = append(errs, fmt.Errorf("columns[%d] is nil", i))
			continue
		}
		if columnIDs[c.ID] {
			errs = append(errs, fmt.Errorf("columns[%d]: duplicate column id %q", i, c.ID))
		}
		columnIDs[c.ID] = true
		if c.board != b {
			errs = append(errs, fmt.Errorf("columns[%d]: column %q is not owned by this board", i, c.ID))
		}

		for j, t := range c.Tasks {
			prefix := fmt.Sprintf("columns[%d].tasks[%d]", i, j)
			if t == nil {
				errs = append(errs, fmt.Errorf("%s is nil", prefix))
				continue
			}
			if taskIDs[t.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate task id %q", prefix, t.ID))
			}
			taskIDs[t.ID] = true
			if t.column != c {
				errs = append(errs, fmt.Errorf("%s: task %q is not owned by column %q", prefix, t.ID, c.ID))
			}
		}
	}
	return errs
}
