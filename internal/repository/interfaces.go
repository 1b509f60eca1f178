package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a storage slot holds no board.
var ErrNotFound = errors.New("not found")

// DefaultSlot is the fixed key under which the current board is stored.
const DefaultSlot = "kanbanBoard"

// BoardStore persists the serialized board as a single opaque blob. Every
// save replaces the whole document.
type BoardStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	// UpdatedAt reports when the slot was last written. An empty slot
	// returns ErrNotFound.
	UpdatedAt(ctx context.Context) (time.Time, error)
}
