package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/kboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBoardStore_LoadEmptySlot(t *testing.T) {
	store := NewSQLiteBoardStore(testutil.NewTestDB(t))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteBoardStore_SaveThenLoad(t *testing.T) {
	store := NewSQLiteBoardStore(testutil.NewTestDB(t))
	ctx := context.Background()

	blob := []byte(`{"id":"b","title":"","columns":[]}`)
	require.NoError(t, store.Save(ctx, blob))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestSQLiteBoardStore_SaveReplacesWholeBlob(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSQLiteBoardStore(database)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"v":2}`)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	var rows int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM board_slots`).Scan(&rows))
	assert.Equal(t, 1, rows, "a single fixed slot holds the board")
}

func TestSQLiteBoardStore_SlotsAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	main := NewSQLiteBoardStore(database)
	other := NewSQLiteBoardStoreForSlot(database, "scratch")

	require.NoError(t, main.Save(ctx, []byte(`main`)))

	_, err := other.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteBoardStore_UpdatedAt(t *testing.T) {
	store := NewSQLiteBoardStore(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := store.UpdatedAt(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, store.Save(ctx, []byte(`x`)))

	ts, err := store.UpdatedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ts.Before(before.Truncate(time.Second)))
}

func TestMemoryBoardStore(t *testing.T) {
	store := NewMemoryBoardStore()
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`abc`)
	require.NoError(t, store.Save(ctx, blob))
	blob[0] = 'z'

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got), "store keeps its own copy")
	assert.Equal(t, 1, store.Saves())
}

func TestMemoryBoardStore_UpdatedAt(t *testing.T) {
	store := NewMemoryBoardStore()
	ctx := context.Background()

	_, err := store.UpdatedAt(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	before := time.Now().UTC()
	require.NoError(t, store.Save(ctx, []byte(`x`)))

	ts, err := store.UpdatedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
}
