package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columnTitles(b *Board) []string {
	titles := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		titles = append(titles, c.Title)
	}
	return titles
}

// occurrences counts how many column sequences hold the task ID.
func occurrences(b *Board, taskID string) int {
	n := 0
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == taskID {
				n++
			}
		}
	}
	return n
}

func addTask(t *testing.T, c *Column, title string) *Task {
	t.Helper()
	task, err := NewTask(c, title)
	require.NoError(t, err)
	c.AddTask(task)
	return task
}

func TestNewDefaultBoard_HasThreeEmptyColumns(t *testing.T) {
	b := NewDefaultBoard("")

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, columnTitles(b))
	for _, c := range b.Columns {
		assert.Empty(t, c.Tasks)
		assert.Same(t, b, c.Board())
	}
	assert.Empty(t, b.Validate())
}

func TestAddColumn_AppendsWithFreshID(t *testing.T) {
	b := NewDefaultBoard("")

	col, err := b.AddColumn("  Review  ")
	require.NoError(t, err)

	assert.Equal(t, "Review", col.Title)
	assert.Equal(t, col, b.Columns[len(b.Columns)-1])
	for _, other := range b.Columns[:3] {
		assert.NotEqual(t, other.ID, col.ID)
	}
}

func TestAddColumn_BlankTitleRejected(t *testing.T) {
	b := NewDefaultBoard("")

	_, err := b.AddColumn("   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Len(t, b.Columns, 3)
}

func TestNewTask_BlankTitleRejected(t *testing.T) {
	b := NewDefaultBoard("")

	_, err := NewTask(b.Columns[0], "")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestAddTask_AppendsAndSetsOwner(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]

	first := addTask(t, todo, "first")
	second := addTask(t, todo, "second")

	require.Len(t, todo.Tasks, 2)
	assert.Equal(t, first, todo.Tasks[0])
	assert.Equal(t, second, todo.Tasks[1])
	assert.Same(t, todo, second.Column())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRemoveTask_MissingIDIsNoop(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	addTask(t, todo, "keep")

	assert.False(t, todo.RemoveTask("nope"))
	assert.Len(t, todo.Tasks, 1)
}

func TestRemoveTask_RemovesAndDetaches(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	task := addTask(t, todo, "gone")

	assert.True(t, todo.RemoveTask(task.ID))
	assert.Empty(t, todo.Tasks)
	assert.Nil(t, task.Column())
	found, _ := b.FindTask(task.ID)
	assert.Nil(t, found)
}

func TestFinalizeDrag_MovesToDestination(t *testing.T) {
	b := NewDefaultBoard("")
	todo, done := b.Columns[0], b.Columns[2]
	addTask(t, done, "already done")
	task := addTask(t, todo, "drag me")

	require.NoError(t, todo.FinalizeDrag(task, done.ID))

	assert.Empty(t, todo.Tasks)
	require.Len(t, done.Tasks, 2)
	assert.Equal(t, task, done.Tasks[1], "dragged task is appended")
	assert.Same(t, done, task.Column())
	assert.Equal(t, 1, occurrences(b, task.ID))
	assert.Empty(t, b.Validate())
}

func TestFinalizeDrag_UnknownDestinationCancelsMove(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	task := addTask(t, todo, "stay")

	err := todo.FinalizeDrag(task, "no-such-column")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	require.Len(t, todo.Tasks, 1)
	assert.Equal(t, task, todo.Tasks[0])
	assert.Same(t, todo, task.Column())
}

func TestFinalizeDrag_TaskNotInSource(t *testing.T) {
	b := NewDefaultBoard("")
	todo, doing := b.Columns[0], b.Columns[1]
	task := addTask(t, doing, "elsewhere")

	err := todo.FinalizeDrag(task, b.Columns[2].ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Len(t, doing.Tasks, 1)
}

func TestFinalizeDrag_SameColumnMovesToEnd(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	a := addTask(t, todo, "a")
	bb := addTask(t, todo, "b")

	require.NoError(t, todo.FinalizeDrag(a, todo.ID))

	assert.Equal(t, []*Task{bb, a}, todo.Tasks)
}

func TestPropagateTask_WalksColumnsThenDeletes(t *testing.T) {
	b := NewDefaultBoard("")
	todo, doing, done := b.Columns[0], b.Columns[1], b.Columns[2]
	task := addTask(t, todo, "Write spec")

	res, err := todo.PropagateTask(task)
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Same(t, doing, res.To)
	assert.Empty(t, todo.Tasks)
	assert.Equal(t, []*Task{task}, doing.Tasks)

	res, err = doing.PropagateTask(task)
	require.NoError(t, err)
	assert.Same(t, done, res.To)
	assert.Equal(t, []*Task{task}, done.Tasks)

	res, err = done.PropagateTask(task)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Nil(t, res.To)
	assert.Equal(t, 0, occurrences(b, task.ID))
	assert.Equal(t, 0, b.TaskCount())
}

func TestPropagateTask_DetachedColumn(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	task := addTask(t, todo, "x")
	b.RemoveColumn(todo.ID)

	_, err := todo.PropagateTask(task)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRemoveColumn_CascadesTasks(t *testing.T) {
	b := NewDefaultBoard("")
	doing := b.Columns[1]
	t1 := addTask(t, doing, "one")
	t2 := addTask(t, doing, "two")

	assert.True(t, b.RemoveColumn(doing.ID))

	assert.Equal(t, []string{"To Do", "Done"}, columnTitles(b))
	for _, id := range []string{t1.ID, t2.ID} {
		found, col := b.FindTask(id)
		assert.Nil(t, found)
		assert.Nil(t, col)
	}
	assert.False(t, b.RemoveColumn(doing.ID))
}

func TestClearBoard_RestoresDefaults(t *testing.T) {
	b := NewDefaultBoard("mine")
	id := b.ID
	_, err := b.AddColumn("Extra")
	require.NoError(t, err)
	addTask(t, b.Columns[0], "task")

	b.ClearBoard()

	assert.Equal(t, id, b.ID)
	assert.Equal(t, "mine", b.Title)
	assert.Equal(t, []string{"To Do", "In Progress", "Done"}, columnTitles(b))
	assert.Equal(t, 0, b.TaskCount())
}

func TestReplace_ReparentsOntoReceiver(t *testing.T) {
	b := NewDefaultBoard("live")
	src := NewBoard("restored")
	col, err := src.AddColumn("Only")
	require.NoError(t, err)
	task := addTask(t, col, "kept")

	b.Replace(src)

	assert.Equal(t, src.ID, b.ID)
	assert.Equal(t, "restored", b.Title)
	assert.Equal(t, []string{"Only"}, columnTitles(b))
	assert.Same(t, b, b.Columns[0].Board())
	assert.Same(t, b.Columns[0], task.Column())
	assert.Empty(t, src.Columns)
	assert.Empty(t, b.Validate())
}

func TestMoveTaskTo_ReordersAndClamps(t *testing.T) {
	b := NewDefaultBoard("")
	todo := b.Columns[0]
	a := addTask(t, todo, "a")
	bb := addTask(t, todo, "b")
	c := addTask(t, todo, "c")

	require.NoError(t, todo.MoveTaskTo(c.ID, 0))
	assert.Equal(t, []*Task{c, a, bb}, todo.Tasks)

	require.NoError(t, todo.MoveTaskTo(c.ID, 99))
	assert.Equal(t, []*Task{a, bb, c}, todo.Tasks)

	assert.ErrorIs(t, todo.MoveTaskTo("missing", 0), ErrTaskNotFound)
}

func TestIDsStayUniqueAcrossOperations(t *testing.T) {
	b := NewDefaultBoard("")
	_, err := b.AddColumn("Review")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		col := b.Columns[i%len(b.Columns)]
		task := addTask(t, col, "task")
		if i%3 == 0 {
			_, err := col.PropagateTask(task)
			require.NoError(t, err)
		}
		if owner := task.Column(); i%4 == 0 && owner != nil {
			require.NoError(t, owner.FinalizeDrag(task, b.Columns[0].ID))
		}
	}

	assert.Empty(t, b.Validate())
}

func TestValidate_ReportsDuplicatesAndBadOwnership(t *testing.T) {
	b := NewDefaultBoard("")
	todo, doing := b.Columns[0], b.Columns[1]
	task := addTask(t, todo, "dup")
	doing.Tasks = append(doing.Tasks, task)

	errs := b.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "duplicate task id")
	assert.Contains(t, errs[1].Error(), "not owned by column")
}

func TestRename_RejectsBlank(t *testing.T) {
	b := NewDefaultBoard("")
	col := b.Columns[0]
	task := addTask(t, col, "orig")

	assert.ErrorIs(t, col.Rename(" "), ErrEmptyTitle)
	assert.ErrorIs(t, task.Rename(""), ErrEmptyTitle)
	assert.Equal(t, "To Do", col.Title)
	assert.Equal(t, "orig", task.Title)

	require.NoError(t, col.Rename("Backlog"))
	require.NoError(t, task.Rename("renamed"))
	assert.Equal(t, "Backlog", col.Title)
	assert.Equal(t, "renamed", task.Title)
}

func TestNextAndPrevColumn(t *testing.T) {
	b := NewDefaultBoard("")
	todo, doing, done := b.Columns[0], b.Columns[1], b.Columns[2]

	assert.Same(t, doing, b.NextColumn(todo.ID))
	assert.Nil(t, b.NextColumn(done.ID))
	assert.Same(t, doing, b.PrevColumn(done.ID))
	assert.Nil(t, b.PrevColumn(todo.ID))
	assert.Nil(t, b.NextColumn("missing"))
}
