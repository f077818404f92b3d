package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestMemoryBookStore(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential ids starting at 1", func(t *testing.T) {
		s := NewMemoryBookStore()
		id1, err := s.Insert(ctx, entities.Book{ISBN: "1", Title: "One"})
		require.NoError(t, err)
		id2, err := s.Insert(ctx, entities.Book{ISBN: "2", Title: "Two"})
		require.NoError(t, err)

		assert.Equal(t, "1", id1)
		assert.Equal(t, "2", id2)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := NewMemoryBookStore()
		_, _ = s.Insert(ctx, entities.Book{ISBN: "1"})
		id2, _ := s.Insert(ctx, entities.Book{ISBN: "2"})

		removed, err := s.DeleteByID(ctx, id2)
		require.NoError(t, err)
		assert.True(t, removed)

		id3, err := s.Insert(ctx, entities.Book{ISBN: "3"})
		require.NoError(t, err)
		assert.Equal(t, "3", id3)
	})

	t.Run("find by id and isbn", func(t *testing.T) {
		s := NewMemoryBookStore()
		id, _ := s.Insert(ctx, entities.Book{ISBN: "9780451524935", Title: "1984"})

		b, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "1984", b.Title)

		b, err = s.FindByISBN(ctx, "9780451524935")
		require.NoError(t, err)
		assert.Equal(t, id, b.ID)

		_, err = s.FindByID(ctx, "42")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindByISBN(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("isbn lookup is case sensitive", func(t *testing.T) {
		s := NewMemoryBookStore()
		_, _ = s.Insert(ctx, entities.Book{ISBN: "080442957X"})

		_, err := s.FindByISBN(ctx, "080442957x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete unknown id reports false", func(t *testing.T) {
		s := NewMemoryBookStore()
		removed, err := s.DeleteByID(ctx, "7")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("all keeps insertion order", func(t *testing.T) {
		s := NewMemoryBookStore()
		for _, isbn := range []string{"a", "b", "c"} {
			_, _ = s.Insert(ctx, entities.Book{ISBN: isbn})
		}
		_, _ = s.DeleteByID(ctx, "2")

		all, err := s.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "1", all[0].ID)
		assert.Equal(t, "3", all[1].ID)
	})

	t.Run("replace keeps position", func(t *testing.T) {
		s := NewMemoryBookStore()
		_, _ = s.Insert(ctx, entities.Book{ISBN: "a", Title: "A"})
		_, _ = s.Insert(ctx, entities.Book{ISBN: "b", Title: "B"})

		require.NoError(t, s.Replace(ctx, entities.Book{ID: "1", ISBN: "a", Title: "A2"}))

		all, _ := s.All(ctx)
		assert.Equal(t, "A2", all[0].Title)
		assert.ErrorIs(t, s.Replace(ctx, entities.Book{ID: "9"}), ErrNotFound)
	})

	t.Run("concurrent inserts get distinct ids", func(t *testing.T) {
		s := NewMemoryBookStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Insert(ctx, entities.Book{})
			}()
		}
		wg.Wait()

		all, _ := s.All(ctx)
		seen := make(map[string]bool)
		for _, b := range all {
			seen[b.ID] = true
		}
		assert.Len(t, seen, 50)
	})
}

func TestMemoryRatingStore(t *testing.T) {
	ctx := context.Background()

	t.Run("record appends and recomputes average", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "1984")))

		var avg float64
		for _, v := range []int{1, 2, 3, 4, 5} {
			var err error
			avg, err = s.Record(ctx, "1", v)
			require.NoError(t, err)
		}
		assert.Equal(t, 3.0, avg)

		r, err := s.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, r.Values)
		assert.Equal(t, 3.0, r.Average)
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "1984")))

		for _, v := range []int{0, 6, -1} {
			_, err := s.Record(ctx, "1", v)
			assert.ErrorIs(t, err, ErrInvalidValue)
		}
		r, _ := s.Get(ctx, "1")
		assert.Empty(t, r.Values)
	})

	t.Run("unknown id is not found before value is checked", func(t *testing.T) {
		s := NewMemoryRatingStore()
		_, err := s.Record(ctx, "9", 6)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list filters by id", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "A")))
		require.NoError(t, s.Create(ctx, entities.NewRating("2", "B")))

		all, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		one, err := s.List(ctx, "2")
		require.NoError(t, err)
		require.Len(t, one, 1)
		assert.Equal(t, "B", one[0].Title)

		none, err := s.List(ctx, "3")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("duplicate create is rejected", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "A")))
		assert.ErrorIs(t, s.Create(ctx, entities.NewRating("1", "A")), ErrDuplicateKey)
	})

	t.Run("snapshots are not changed by later records", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "A")))
		_, _ = s.Record(ctx, "1", 4)

		before, _ := s.List(ctx, "")
		_, _ = s.Record(ctx, "1", 2)

		assert.Equal(t, []int{4}, before[0].Values)
		assert.Equal(t, 4.0, before[0].Average)
	})

	t.Run("concurrent records never lose a value", func(t *testing.T) {
		s := NewMemoryRatingStore()
		require.NoError(t, s.Create(ctx, entities.NewRating("1", "A")))

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				_, _ = s.Record(ctx, "1", v%5+1)
			}(i)
		}
		wg.Wait()

		r, _ := s.Get(ctx, "1")
		assert.Len(t, r.Values, 100)
		assert.Equal(t, 3.0, r.Average)
	})
}
