package testutil

import (
	"context"
	"sync/atomic"
	"time"
)

// blobStore mirrors repository.BoardStore without importing it.
type blobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	UpdatedAt(ctx context.Context) (time.Time, error)
}

// FailOnNthSaveStore wraps a board store and injects Err on the Nth Save
// call (counting from 1). Everything else passes through.
type FailOnNthSaveStore struct {
	Inner  blobStore
	FailOn int32
	Err    error

	count atomic.Int32
}

func (s *FailOnNthSaveStore) Load(ctx context.Context) ([]byte, error) {
	return s.Inner.Load(ctx)
}

func (s *FailOnNthSaveStore) Save(ctx context.Context, blob []byte) error {
	if s.count.Add(1) == s.FailOn {
		return s.Err
	}
	return s.Inner.Save(ctx, blob)
}

func (s *FailOnNthSaveStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	return s.Inner.UpdatedAt(ctx)
}

// Saves reports how many Save calls were attempted, including the failed one.
func (s *FailOnNthSaveStore) Saves() int {
	return int(s.count.Load())
}
