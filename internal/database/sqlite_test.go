package database

import (
	"context"
	"path/filepath"
	"testing"

	"introboard/internal/intro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_AppendAndAll(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "introboard.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	first := intro.Record{Name: "Kim", Department: "Platform", PreviousCompany: "Acme", MBTI: "INTJ", Timestamp: "2025-01-01T00:00:00.000Z"}
	second := intro.Record{Name: "<b>Lee</b>", TMI: "likes tea", Timestamp: "2025-01-02T00:00:00.000Z"}
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	records, err = store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []intro.Record{first, second}, records)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "introboard.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), intro.Record{Name: "Kim"}))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kim", records[0].Name)
}

func TestConnectionAndMigrations_RequireURL(t *testing.T) {
	_, err := Connection(context.Background(), "")
	assert.Error(t, err)
	assert.Error(t, Migrations("file://migrations", ""))
}
