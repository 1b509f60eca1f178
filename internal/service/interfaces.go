package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/kboard/internal/domain"
)

// LoadResult describes how the live board was obtained at startup.
type LoadResult struct {
	Board *domain.Board
	// Fresh is true when the storage slot was empty and a default board was built.
	Fresh bool
	// Recovered holds the diagnostic when the stored board could not be read
	// and a default board replaced it.
	Recovered error
}

// TaskEdit names the task fields to change; nil fields are left alone.
type TaskEdit struct {
	Title       *string
	Description *string
}

// BoardService owns the single live board and re-persists the whole tree
// after every successful mutation. Failed mutations change nothing.
type BoardService interface {
	Load(ctx context.Context) (*LoadResult, error)
	Board() *domain.Board
	// LastSaved reports when storage was last written; zero if never.
	LastSaved(ctx context.Context) (time.Time, error)

	AddColumn(ctx context.Context, title string) (*domain.Column, error)
	RenameColumn(ctx context.Context, columnID, title string) error
	RemoveColumn(ctx context.Context, columnID string) error

	AddTask(ctx context.Context, columnID, title, description string) (*domain.Task, error)
	EditTask(ctx context.Context, taskID string, edit TaskEdit) error
	RemoveTask(ctx context.Context, taskID string) error
	MoveTask(ctx context.Context, taskID, destColumnID string) error
	ReorderTask(ctx context.Context, taskID string, index int) error
	PropagateTask(ctx context.Context, taskID string) (domain.PropagateResult, error)

	ClearBoard(ctx context.Context) error

	Export(ctx context.Context, w io.Writer) error
	ExportFile(ctx context.Context, dir, base string, now time.Time) (string, error)
	Import(ctx context.Context, r io.Reader) error
	ImportFile(ctx context.Context, path string) error
}
