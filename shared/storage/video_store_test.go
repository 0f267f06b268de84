package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"history-analyzer/internal/models"
)

func TestVideoStore(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		store := NewVideoStore()
		assert.False(t, store.Has("abc"))
		assert.Equal(t, 0, store.Len())
		assert.Empty(t, store.Values())
	})

	t.Run("PreservesInsertionOrder", func(t *testing.T) {
		store := NewVideoStore()
		for _, id := range []string{"c", "a", "b"} {
			store.Set(id, models.VideoRecord{ID: id})
		}

		values := store.Values()
		require.Len(t, values, 3)
		assert.Equal(t, "c", values[0].ID)
		assert.Equal(t, "a", values[1].ID)
		assert.Equal(t, "b", values[2].ID)
	})

	t.Run("FirstSeenWins", func(t *testing.T) {
		store := NewVideoStore()
		store.Set("dup", models.VideoRecord{ID: "dup", Title: "first"})
		store.Set("other", models.VideoRecord{ID: "other"})
		store.Set("dup", models.VideoRecord{ID: "dup", Title: "second"})

		require.Equal(t, 2, store.Len())
		values := store.Values()
		assert.Equal(t, "first", values[0].Title)
		assert.Equal(t, "other", values[1].ID)
	})

	t.Run("ValuesIsACopy", func(t *testing.T) {
		store := NewVideoStore()
		store.Set("a", models.VideoRecord{ID: "a", Title: "kept"})

		values := store.Values()
		values[0].Title = "changed"

		assert.Equal(t, "kept", store.Values()[0].Title)
	})
}

func TestVideoStoreConcurrentSet(t *testing.T) {
	store := NewVideoStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("video-%d", n%10)
			store.Set(id, models.VideoRecord{ID: id})
			store.Has(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
