package repository

import (
	"context"
	"fmt"
	"time"
)

// MemoryBoardStore keeps the board blob in process memory. Used for
// ephemeral sessions and tests.
type MemoryBoardStore struct {
	data      []byte
	saves     int
	updatedAt time.Time
}

func NewMemoryBoardStore() *MemoryBoardStore {
	return &MemoryBoardStore{}
}

func (s *MemoryBoardStore) Load(ctx context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("memory board slot: %w", ErrNotFound)
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryBoardStore) Save(ctx context.Context, blob []byte) error {
	s.data = make([]byte, len(blob))
	copy(s.data, blob)
	s.saves++
	s.updatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryBoardStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	if s.data == nil {
		return time.Time{}, fmt.Errorf("memory board slot: %w", ErrNotFound)
	}
	return s.updatedAt, nil
}

// Saves reports how many times Save has been called.
func (s *MemoryBoardStore) Saves() int {
	return s.saves
}
