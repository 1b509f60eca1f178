package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/kboard/internal/document"
	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/alexanderramin/kboard/internal/repository"
)

// ErrBoardNotLoaded is returned by board operations called before Load.
var ErrBoardNotLoaded = errors.New("board not loaded")

// BoardOptions configures a BoardService.
type BoardOptions struct {
	// DefaultTitle is the title given to a freshly bootstrapped board.
	DefaultTitle string
	// Logger receives startup recovery diagnostics. Nil discards them.
	Logger *slog.Logger
}

type boardService struct {
	store        repository.BoardStore
	board        *domain.Board
	defaultTitle string
	logger       *slog.Logger
	observer     UseCaseObserver
}

func NewBoardService(store repository.BoardStore, opts BoardOptions, observers ...UseCaseObserver) BoardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &boardService{
		store:        store,
		defaultTitle: opts.DefaultTitle,
		logger:       logger,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *boardService) live() (*domain.Board, error) {
	if s.board == nil {
		return nil, ErrBoardNotLoaded
	}
	return s.board, nil
}

// persist writes the full board tree to the storage slot.
func (s *boardService) persist(ctx context.Context) error {
	data, err := document.MarshalCompact(document.FromBoard(s.board))
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("persisting board: %w", err)
	}
	return nil
}

func (s *boardService) Board() *domain.Board {
	return s.board
}

func (s *boardService) LastSaved(ctx context.Context) (time.Time, error) {
	ts, err := s.store.UpdatedAt(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading save time: %w", err)
	}
	return ts, nil
}

func (s *boardService) Load(ctx context.Context) (result *LoadResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "load-board", startedAt, fields, err) }()

	blob, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading board: %w", err)
	}

	result = &LoadResult{}
	if err != nil {
		result.Fresh = true
		s.board = domain.NewDefaultBoard(s.defaultTitle)
	} else {
		doc, parseErr := document.Parse(blob)
		if parseErr != nil {
			s.logger.WarnContext(ctx, "corrupt board data found, resetting board", "error", parseErr)
			result.Recovered = parseErr
			s.board = domain.NewDefaultBoard(s.defaultTitle)
		} else {
			s.board = document.ToBoard(doc)
		}
	}

	if result.Fresh || result.Recovered != nil {
		if err = s.persist(ctx); err != nil {
			return nil, err
		}
	}

	result.Board = s.board
	fields["fresh"] = result.Fresh
	fields["recovered"] = result.Recovered != nil
	fields["columns"] = len(s.board.Columns)
	fields["tasks"] = s.board.TaskCount()
	return result, nil
}

// mutate applies fn to the live board and persists the result. If the save
// fails the board is restored to its state before fn ran, so memory never
// holds a change storage does not.
func (s *boardService) mutate(ctx context.Context, fn func(b *domain.Board) error) error {
	b, err := s.live()
	if err != nil {
		return err
	}
	before := document.FromBoard(b)
	if err := fn(b); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		b.Replace(document.ToBoard(before))
		return err
	}
	return nil
}

func (s *boardService) AddColumn(ctx context.Context, title string) (col *domain.Column, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "add-column", startedAt, nil, err) }()

	err = s.mutate(ctx, func(b *domain.Board) error {
		var addErr error
		col, addErr = b.AddColumn(title)
		return addErr
	})
	if err != nil {
		return nil, err
	}
	return col, nil
}

func (s *boardService) RenameColumn(ctx context.Context, columnID, title string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "rename-column", startedAt, map[string]any{"column_id": columnID}, err) }()

	col, err := s.column(columnID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(*domain.Board) error {
		return col.Rename(title)
	})
}

func (s *boardService) RemoveColumn(ctx context.Context, columnID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"column_id": columnID}
	defer func() { s.observe(ctx, "remove-column", startedAt, fields, err) }()

	col, err := s.column(columnID)
	if err != nil {
		return err
	}
	fields["tasks_removed"] = len(col.Tasks)
	return s.mutate(ctx, func(b *domain.Board) error {
		b.RemoveColumn(columnID)
		return nil
	})
}

func (s *boardService) AddTask(ctx context.Context, columnID, title, description string) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "add-task", startedAt, map[string]any{"column_id": columnID}, err) }()

	col, err := s.column(columnID)
	if err != nil {
		return nil, err
	}
	err = s.mutate(ctx, func(*domain.Board) error {
		t, newErr := domain.NewTask(col, title)
		if newErr != nil {
			return newErr
		}
		t.SetDescription(description)
		col.AddTask(t)
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *boardService) EditTask(ctx context.Context, taskID string, edit TaskEdit) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "edit-task", startedAt, map[string]any{"task_id": taskID}, err) }()

	task, _, err := s.task(taskID)
	if err != nil {
		return err
	}
	if edit.Title == nil && edit.Description == nil {
		return nil
	}
	return s.mutate(ctx, func(*domain.Board) error {
		// Rename is the only step that can fail, so it runs first.
		if edit.Title != nil {
			if err := task.Rename(*edit.Title); err != nil {
				return err
			}
		}
		if edit.Description != nil {
			task.SetDescription(*edit.Description)
		}
		return nil
	})
}

func (s *boardService) RemoveTask(ctx context.Context, taskID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "remove-task", startedAt, map[string]any{"task_id": taskID}, err) }()

	_, col, err := s.task(taskID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(*domain.Board) error {
		col.RemoveTask(taskID)
		return nil
	})
}

func (s *boardService) MoveTask(ctx context.Context, taskID, destColumnID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": taskID, "to_column_id": destColumnID}
	defer func() { s.observe(ctx, "move-task", startedAt, fields, err) }()

	task, col, err := s.task(taskID)
	if err != nil {
		return err
	}
	fields["from_column_id"] = col.ID
	return s.mutate(ctx, func(*domain.Board) error {
		if err := col.FinalizeDrag(task, destColumnID); err != nil {
			return fmt.Errorf("moving task to column %q: %w", destColumnID, err)
		}
		return nil
	})
}

func (s *boardService) ReorderTask(ctx context.Context, taskID string, index int) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observe(ctx, "reorder-task", startedAt, map[string]any{"task_id": taskID, "index": index}, err)
	}()

	_, col, err := s.task(taskID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(*domain.Board) error {
		return col.MoveTaskTo(taskID, index)
	})
}

func (s *boardService) PropagateTask(ctx context.Context, taskID string) (res domain.PropagateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": taskID}
	defer func() { s.observe(ctx, "propagate-task", startedAt, fields, err) }()

	task, col, err := s.task(taskID)
	if err != nil {
		return domain.PropagateResult{}, err
	}
	err = s.mutate(ctx, func(*domain.Board) error {
		var propErr error
		res, propErr = col.PropagateTask(task)
		return propErr
	})
	if err != nil {
		return domain.PropagateResult{}, err
	}
	fields["deleted"] = res.Deleted
	return res, nil
}

func (s *boardService) ClearBoard(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "clear-board", startedAt, nil, err) }()

	return s.mutate(ctx, func(b *domain.Board) error {
		b.ClearBoard()
		return nil
	})
}

func (s *boardService) column(id string) (*domain.Column, error) {
	b, err := s.live()
	if err != nil {
		return nil, err
	}
	col := b.FindColumn(id)
	if col == nil {
		return nil, fmt.Errorf("column %q: %w", id, domain.ErrColumnNotFound)
	}
	return col, nil
}

func (s *boardService) task(id string) (*domain.Task, *domain.Column, error) {
	b, err := s.live()
	if err != nil {
		return nil, nil, err
	}
	task, col := b.FindTask(id)
	if task == nil {
		return nil, nil, fmt.Errorf("task %q: %w", id, domain.ErrTaskNotFound)
	}
	return task, col, nil
}
