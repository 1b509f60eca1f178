package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/kboard/internal/db"
)

// SQLiteBoardStore implements BoardStore on a single row of board_slots.
type SQLiteBoardStore struct {
	db   db.DBTX
	slot string
}

// NewSQLiteBoardStore creates a store bound to DefaultSlot.
func NewSQLiteBoardStore(conn db.DBTX) *SQLiteBoardStore {
	return NewSQLiteBoardStoreForSlot(conn, DefaultSlot)
}

// NewSQLiteBoardStoreForSlot creates a store bound to the given slot key.
func NewSQLiteBoardStoreForSlot(conn db.DBTX, slot string) *SQLiteBoardStore {
	return &SQLiteBoardStore{db: conn, slot: slot}
}

func (s *SQLiteBoardStore) Load(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM board_slots WHERE key = ?`, s.slot).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board slot %q: %w", s.slot, ErrNotFound)
		}
		return nil, fmt.Errorf("loading board slot %q: %w", s.slot, err)
	}
	return []byte(data), nil
}

func (s *SQLiteBoardStore) Save(ctx context.Context, blob []byte) error {
	query := `INSERT OR REPLACE INTO board_slots (key, data, updated_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, s.slot, string(blob), nowUTC()); err != nil {
		return fmt.Errorf("saving board slot %q: %w", s.slot, err)
	}
	return nil
}

func (s *SQLiteBoardStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM board_slots WHERE key = ?`, s.slot).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("board slot %q: %w", s.slot, ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("loading board slot %q: %w", s.slot, err)
	}
	t := parseTime(raw)
	if t == nil {
		return time.Time{}, nil
	}
	return *t, nil
}
