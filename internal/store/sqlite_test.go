package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "cloner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleRecord("example_com")))

	rec, err := s.Get(ctx, "example_com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "example_com", rec.ID)
	require.NotNil(t, rec.HTMLContent)
	assert.Equal(t, "<html></html>", *rec.HTMLContent)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLiteStore(t)

	rec, err := s.Get(context.Background(), "never_scraped")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSQLiteStore_PutOverwritesSameID(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleRecord("example_com")))

	updated := sampleRecord("example_com")
	updated.Title = "Example v2"
	require.NoError(t, s.Put(ctx, updated))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Example v2", records["example_com"].Title)
}

func TestSQLiteStore_List(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleRecord("a_com")))
	require.NoError(t, s.Put(ctx, sampleRecord("b_com")))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Contains(t, records, "a_com")
	assert.Contains(t, records, "b_com")
}
