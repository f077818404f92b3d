package ratings

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "ratings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_RecordAverages(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	require.NoError(t, repo.Create(ctx, entities.NewRating("1", "Dune")))

	var avg float64
	var err error
	for v := 1; v <= 5; v++ {
		avg, err = repo.Record(ctx, "1", v)
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, avg)

	_, err = repo.Record(ctx, "1", 6)
	assert.ErrorIs(t, err, catalog.ErrInvalidValue)

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got.Values)
	assert.Equal(t, 3.0, got.Average)
}

func TestRepository_UnknownBook(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	_, err := repo.Record(ctx, "7", 9)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = repo.Get(ctx, "7")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	removed, err := repo.Delete(ctx, "7")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	require.NoError(t, repo.Create(ctx, entities.NewRating("1", "Dune")))
	assert.ErrorIs(t, repo.Create(ctx, entities.NewRating("1", "Dune")), catalog.ErrDuplicateKey)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	for i := 1; i <= 11; i++ {
		require.NoError(t, repo.Create(ctx, entities.NewRating(strconv.Itoa(i), "T")))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 11)
	assert.Equal(t, "9", all[8].ID)
	assert.Equal(t, "10", all[9].ID)
	assert.Equal(t, []int{}, all[0].Values)

	one, err := repo.List(ctx, "3")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "3", one[0].ID)

	none, err := repo.List(ctx, "99")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	removed, err := repo.Delete(ctx, "3")
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = repo.Get(ctx, "3")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
