package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Read(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	entries, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestList_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// ids sort in the opposite order to seq
	for i, id := range []string{"c", "b", "a"} {
		e := createTestEntry(int64(10 + i))
		e.ID = id
		_, err := s.Record(ctx, e)
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "a", entries[2].ID)
}

func TestList_Filters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, createTestEntry(15))
	require.NoError(t, err)
	failed := createTestEntry(31)
	failed.Outcome = Outcome{Status: "RANGE_VIOLATION", Result: "bad day"}
	_, err = s.Record(ctx, failed)
	require.NoError(t, err)
	_, err = s.Record(ctx, createTestEntry(16))
	require.NoError(t, err)

	ok, err := s.List(ctx, ListOptions{Status: StatusOK})
	require.NoError(t, err)
	assert.Len(t, ok, 2)

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(1), limited[0].Seq)
}

func TestFindByInputHash(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a, err := s.Record(ctx, createTestEntry(15))
	require.NoError(t, err)
	_, err = s.Record(ctx, createTestEntry(16))
	require.NoError(t, err)
	b, err := s.Record(ctx, createTestEntry(15))
	require.NoError(t, err)

	assert.Equal(t, a.InputHash, b.InputHash)

	found, err := s.FindByInputHash(ctx, a.InputHash)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, a.ID, found[0].ID)
	assert.Equal(t, b.ID, found[1].ID)
}
