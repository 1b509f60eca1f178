package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/kboard/internal/document"
)

func (s *boardService) Export(ctx context.Context, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "export-board", startedAt, nil, err) }()

	data, err := s.exportBytes()
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func (s *boardService) ExportFile(ctx context.Context, dir, base string, now time.Time) (path string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "export-board-file", startedAt, fields, err) }()

	data, err := s.exportBytes()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path = filepath.Join(dir, document.ExportFileName(base, now))
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	fields["path"] = path
	return path, nil
}

func (s *boardService) exportBytes() ([]byte, error) {
	b, err := s.live()
	if err != nil {
		return nil, err
	}
	data, err := document.Marshal(document.FromBoard(b))
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Import replaces the live board with the document read from r. The
// document is persisted before it becomes live, so any failure leaves the
// current board in place.
func (s *boardService) Import(ctx context.Context, r io.Reader) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import-board", startedAt, fields, err) }()

	doc, err := document.Read(r)
	if err != nil {
		return err
	}
	return s.replace(ctx, doc, fields)
}

func (s *boardService) ImportFile(ctx context.Context, path string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() { s.observe(ctx, "import-board-file", startedAt, fields, err) }()

	doc, err := document.LoadFile(path)
	if err != nil {
		return err
	}
	return s.replace(ctx, doc, fields)
}

func (s *boardService) replace(ctx context.Context, doc *document.Document, fields map[string]any) error {
	data, err := document.MarshalCompact(doc)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("persisting imported board: %w", err)
	}
	s.board = document.ToBoard(doc)
	fields["columns"] = len(s.board.Columns)
	fields["tasks"] = s.board.TaskCount()
	return nil
}
