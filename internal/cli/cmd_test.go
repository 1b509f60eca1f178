package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/kboard/internal/config"
	"github.com/alexanderramin/kboard/internal/document"
	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/alexanderramin/kboard/internal/repository"
	"github.com/alexanderramin/kboard/internal/service"
	"github.com/alexanderramin/kboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
// The board is loaded fresh, so it holds the three default columns.
func testApp(t *testing.T) *App {
	t.Helper()
	store := repository.NewSQLiteBoardStore(testutil.NewTestDB(t))
	svc := service.NewBoardService(store, service.BoardOptions{DefaultTitle: "Test Board"})

	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.True(t, res.Fresh)

	cfg := config.Defaults()
	cfg.ExportDir = t.TempDir()
	cfg.HistoryFile = ""

	return &App{
		Board:      svc,
		Config:     cfg,
		LoadResult: res,
		Now:        func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) },
		Confirm: func(string) (bool, error) {
			t.Fatal("unexpected confirmation prompt")
			return false, nil
		},
	}
}

// seededTasks holds the IDs created by seedBoard.
type seededTasks struct {
	docs, login, review string
}

// seedBoard adds two tasks to "To Do" and one to "In Progress".
func seedBoard(t *testing.T, app *App) seededTasks {
	t.Helper()
	ctx := context.Background()
	cols := app.Board.Board().Columns

	docs, err := app.Board.AddTask(ctx, cols[0].ID, "Write docs", "")
	require.NoError(t, err)
	login, err := app.Board.AddTask(ctx, cols[0].ID, "Fix login bug", "Users get logged out\nafter 5 minutes")
	require.NoError(t, err)
	review, err := app.Board.AddTask(ctx, cols[1].ID, "Review PR", "")
	require.NoError(t, err)

	return seededTasks{docs: docs.ID, login: login.ID, review: review.ID}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return plain(buf.String()), err
}

func taskTitles(b *domain.Board, col int) []string {
	return testutil.TaskTitles(b.Columns[col])
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsBoard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "TEST BOARD")
	assert.Contains(t, output, "To Do")
	assert.Contains(t, output, "In Progress")
	assert.Contains(t, output, "Done")
	assert.Contains(t, output, "Write docs")
}

func TestRootCmd_OpensStorageLazily(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("KBOARD_CONFIG", "")

	var opened *config.Config
	app := &App{
		Open: func(cfg *config.Config) (service.BoardService, error) {
			opened = cfg
			return service.NewBoardService(repository.NewMemoryBoardStore(), service.BoardOptions{DefaultTitle: cfg.BoardTitle}), nil
		},
	}

	_, err := executeCmd(t, app, "--db", ":memory:", "column", "list")
	require.NoError(t, err)
	require.NotNil(t, opened)
	assert.Equal(t, ":memory:", opened.DBPath)
	require.NotNil(t, app.LoadResult)
	assert.True(t, app.LoadResult.Fresh)
	assert.Equal(t, config.DefaultBoardTitle, app.Board.Board().Title)
}

func TestRootCmd_EphemeralSkipsOpen(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("KBOARD_CONFIG", "")

	app := &App{
		Open: func(*config.Config) (service.BoardService, error) {
			t.Fatal("storage opened for an ephemeral run")
			return nil, nil
		},
	}

	output, err := executeCmd(t, app, "--ephemeral", "task", "add", "1", "Scratch")
	require.NoError(t, err)
	assert.Contains(t, output, "Added Scratch to To Do")
	assert.True(t, app.LoadResult.Fresh)
}

func TestRootCmd_HelpSkipsStorage(t *testing.T) {
	app := &App{}

	output, err := executeCmd(t, app, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "kboard")
	assert.Nil(t, app.Board)
}

// --- show ---

func TestShowCmd_Filter(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app, "show", "--filter", "LOGIN")
	require.NoError(t, err)
	assert.Contains(t, output, "Fix login bug")
	assert.NotContains(t, output, "Write docs")
	assert.Contains(t, output, `filter: "LOGIN"`)
	assert.Contains(t, output, "(1/2)")
}

func TestShowCmd_ListSorted(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app, "ls", "--list", "--sort", "title")
	require.NoError(t, err)

	fix := strings.Index(output, "Fix login bug")
	review := strings.Index(output, "Review PR")
	docs := strings.Index(output, "Write docs")
	require.True(t, fix >= 0 && review >= 0 && docs >= 0, output)
	assert.Less(t, fix, review)
	assert.Less(t, review, docs)
	assert.Contains(t, output, "sort: title · list view")

	// The stored order is untouched.
	assert.Equal(t, []string{"Write docs", "Fix login bug"}, taskTitles(app.Board.Board(), 0))
}

func TestShowCmd_LastSaved(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app, "show")
	require.NoError(t, err)
	assert.Regexp(t, `Last saved \d{4}-\d{2}-\d{2} \d{2}:\d{2}`, plain(output))
}

func TestShowCmd_InvalidSort(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "show", "--sort", "priority")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort mode")
}

// --- column ---

func TestColumnCmd_AddRenameList(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "column", "add", "Code", "Review")
	require.NoError(t, err)
	assert.Contains(t, output, "Added column Code Review")

	output, err = executeCmd(t, app, "col", "rename", "code review", "QA")
	require.NoError(t, err)
	assert.Contains(t, output, "Renamed column Code Review to QA")

	output, err = executeCmd(t, app, "column", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "QA")

	b := app.Board.Board()
	require.Len(t, b.Columns, 4)
	assert.Equal(t, "QA", b.Columns[3].Title)
}

func TestColumnCmd_AddBlankTitle(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "column", "add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Len(t, app.Board.Board().Columns, 3)
}

func TestColumnCmd_RemoveEmptyNeedsNoConfirmation(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "column", "rm", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted column Done")
	assert.Len(t, app.Board.Board().Columns, 2)
}

func TestColumnCmd_RemoveWithTasksAsks(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	var asked string
	app.Confirm = func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}

	output, err := executeCmd(t, app, "column", "rm", "To Do")
	require.NoError(t, err)
	assert.Contains(t, asked, `"To Do" and its 2 task(s)`)
	assert.Contains(t, output, "Cancelled.")
	assert.Len(t, app.Board.Board().Columns, 3)

	app.Confirm = func(string) (bool, error) { return true, nil }
	output, err = executeCmd(t, app, "column", "rm", "To Do")
	require.NoError(t, err)
	assert.Contains(t, output, "2 task(s) removed")
	assert.Len(t, app.Board.Board().Columns, 2)
	assert.Equal(t, 1, app.Board.Board().TaskCount())
}

func TestColumnCmd_RemoveYesSkipsPrompt(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	_, err := executeCmd(t, app, "column", "rm", "1", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", app.Board.Board().Columns[0].Title)
}

func TestColumnCmd_RemoveWithoutTerminalFails(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	app.Confirm = nil
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "column", "rm", "To Do")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, app.Board.Board().Columns, 3)
}

// --- task ---

func TestTaskCmd_Add(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "task", "add", "in progress", "Ship", "it", "-d", "before Friday")
	require.NoError(t, err)
	assert.Contains(t, output, "Added Ship it to In Progress")

	col := app.Board.Board().Columns[1]
	require.Len(t, col.Tasks, 1)
	assert.Equal(t, "Ship it", col.Tasks[0].Title)
	assert.Equal(t, "before Friday", col.Tasks[0].Description)
}

func TestTaskCmd_AddUnknownColumn(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "task", "add", "Backlog", "Something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column not found")
	assert.Zero(t, app.Board.Board().TaskCount())
}

func TestTaskCmd_EditByPrefix(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	_, err := executeCmd(t, app, "task", "edit", ids.docs[:8], "--title", "Write README")
	require.NoError(t, err)
	task, _ := app.Board.Board().FindTask(ids.docs)
	assert.Equal(t, "Write README", task.Title)
	assert.Empty(t, task.Description)

	_, err = executeCmd(t, app, "task", "edit", ids.login, "-d", "")
	require.NoError(t, err)
	task, _ = app.Board.Board().FindTask(ids.login)
	assert.Equal(t, "Fix login bug", task.Title)
	assert.Empty(t, task.Description)
}

func TestTaskCmd_EditNothing(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	_, err := executeCmd(t, app, "task", "edit", ids.docs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestTaskCmd_Remove(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	output, err := executeCmd(t, app, "task", "rm", ids.docs)
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted Write docs")
	assert.Equal(t, []string{"Fix login bug"}, taskTitles(app.Board.Board(), 0))
}

func TestTaskCmd_Move(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	output, err := executeCmd(t, app, "task", "move", ids.docs, "in progress")
	require.NoError(t, err)
	assert.Contains(t, output, "Moved Write docs to In Progress")

	b := app.Board.Board()
	assert.Equal(t, []string{"Fix login bug"}, taskTitles(b, 0))
	assert.Equal(t, []string{"Review PR", "Write docs"}, taskTitles(b, 1))
	task, _ := b.FindTask(ids.docs)
	assert.Same(t, b.Columns[1], task.Column())
}

func TestTaskCmd_DoneWalksToDeletion(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	output, err := executeCmd(t, app, "task", "done", ids.review)
	require.NoError(t, err)
	assert.Contains(t, output, "Moved Review PR to Done")

	output, err = executeCmd(t, app, "task", "advance", ids.review)
	require.NoError(t, err)
	assert.Contains(t, output, "Completed Review PR (removed from board)")

	task, _ := app.Board.Board().FindTask(ids.review)
	assert.Nil(t, task)

	_, err = executeCmd(t, app, "task", "done", ids.review)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")
}

func TestTaskCmd_Reorder(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	output, err := executeCmd(t, app, "task", "reorder", ids.login, "1")
	require.NoError(t, err)
	assert.Contains(t, output, "position 1 in To Do")
	assert.Equal(t, []string{"Fix login bug", "Write docs"}, taskTitles(app.Board.Board(), 0))

	_, err = executeCmd(t, app, "task", "reorder", ids.login, "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestTaskCmd_Show(t *testing.T) {
	app := testApp(t)
	ids := seedBoard(t, app)

	output, err := executeCmd(t, app, "task", "show", ids.login)
	require.NoError(t, err)
	assert.Contains(t, output, "Fix login bug")
	assert.Contains(t, output, "To Do")
	assert.Contains(t, output, "after 5 minutes")
}

// --- reset ---

func TestResetCmd_Confirmed(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	_, err := app.Board.AddColumn(context.Background(), "Blocked")
	require.NoError(t, err)
	boardID := app.Board.Board().ID

	var asked string
	app.Confirm = func(prompt string) (bool, error) {
		asked = prompt
		return true, nil
	}

	output, err := executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Equal(t, "Are you sure you want to clear the board? This cannot be undone.", asked)
	assert.Contains(t, output, "Board cleared")

	b := app.Board.Board()
	assert.Equal(t, boardID, b.ID)
	assert.Zero(t, b.TaskCount())
	require.Len(t, b.Columns, 3)
	assert.Equal(t, "To Do", b.Columns[0].Title)
}

func TestResetCmd_Declined(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	app.Confirm = func(string) (bool, error) { return false, nil }

	output, err := executeCmd(t, app, "reset")
	require.NoError(t, err)
	assert.Contains(t, output, "Cancelled.")
	assert.Equal(t, 3, app.Board.Board().TaskCount())
}

// --- export / import ---

func TestExportCmd_DefaultName(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app, "export")
	require.NoError(t, err)

	path := filepath.Join(app.Config.ExportDir, "kboard-2026-10-19.json")
	assert.Contains(t, output, "Exported board to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := document.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Test Board", doc.Title)
	assert.Len(t, doc.Columns, 3)
}

func TestExportCmd_NamedIntoDir(t *testing.T) {
	app := testApp(t)
	dir := filepath.Join(t.TempDir(), "backups")

	_, err := executeCmd(t, app, "export", "sprint", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sprint.json"))
}

func TestExportCmd_Stdout(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	output, err := executeCmd(t, app, "export", "--stdout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "{\n   \"id\""), output)
	assert.Contains(t, output, `"title": "Review PR"`)
}

func TestImportCmd_ReplacesBoard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)

	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"id": "b1", "title": "Imported",
		"columns": [
			{"id": "c1", "title": "Ideas", "tasks": [{"id": "t1", "content": "Legacy title"}]},
			{"id": "c2", "title": "Shipped", "tasks": []}
		]
	}`), 0o644))

	output, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Imported Imported: 2 column(s), 1 task(s)")

	b := app.Board.Board()
	assert.Equal(t, "b1", b.ID)
	task, col := b.FindTask("t1")
	require.NotNil(t, task)
	assert.Equal(t, "Legacy title", task.Title)
	assert.Equal(t, "c1", col.ID)
}

func TestImportCmd_Stdin(t *testing.T) {
	app := testApp(t)

	root := NewRootCmd(app)
	root.SetIn(strings.NewReader(`{"id":"b9","title":"Piped","columns":[]}`))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"import", "-"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Piped", app.Board.Board().Title)
	assert.Empty(t, app.Board.Board().Columns)
}

func TestImportCmd_InvalidFilesKeepBoard(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", `{"id": "b1",`, "Could not parse JSON"},
		{"wrong shape", `{"id": "b1", "title": "x", "columns": {}}`, "does not match the Kanban schema"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := testApp(t)
			seedBoard(t, app)
			before := app.Board.Board()

			path := filepath.Join(t.TempDir(), "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			_, err := executeCmd(t, app, "import", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Same(t, before, app.Board.Board())
			assert.Equal(t, 3, app.Board.Board().TaskCount())
		})
	}
}

func TestImportCmd_MissingFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

// --- persistence across runs ---

func TestCommands_PersistBetweenRuns(t *testing.T) {
	database := testutil.NewTestDB(t)
	open := func() *App {
		svc := service.NewBoardService(repository.NewSQLiteBoardStore(database), service.BoardOptions{DefaultTitle: "Shared"})
		return &App{Board: svc, Config: config.Defaults()}
	}

	first := open()
	_, err := executeCmd(t, first, "task", "add", "To Do", "Carry over")
	require.NoError(t, err)

	second := open()
	output, err := executeCmd(t, second, "show")
	require.NoError(t, err)
	assert.Contains(t, output, "Carry over")
	assert.False(t, second.LoadResult.Fresh)
}
