package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"polygo/internal/pattern/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "db", "patterns.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background(), ""))
	return repo
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	doc := []byte(`{"num_sides":5}`)
	saved, err := repo.Save(ctx, "star", 5, doc)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "star", got.Name)
	assert.Equal(t, 5, got.NumSides)
	assert.Equal(t, doc, got.Scheme)
}

func TestGetMissing(t *testing.T) {
	_, err := openRepo(t).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	a, err := repo.Save(ctx, "a", 3, []byte("{}"))
	require.NoError(t, err)
	b, err := repo.Save(ctx, "b", 4, []byte("{}"))
	require.NoError(t, err)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID, "newest first")
	assert.Nil(t, list[0].Scheme)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), repository.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInitIsIdempotent(t *testing.T) {
	repo := openRepo(t)
	assert.NoError(t, repo.Init(context.Background(), ""))
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestInitMissingFile(t *testing.T) {
	repo := openRepo(t)
	assert.Error(t, repo.Init(context.Background(), filepath.Join(t.TempDir(), "missing.sql")))
}
