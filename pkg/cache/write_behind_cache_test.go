package cache

import (
	"testing"

	"github.com/dgraph-io/ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBehindCacheImpl_Get(t *testing.T) {
	wbc := getNewWriteBehindCacheImpl()

	t.Run("Returns error if key is not found", func(t *testing.T) {
		_, err := wbc.Get("key")
		if err == nil {
			t.Error("Expected error, got nil")
		}
		assert.Equal(t, ErrKeyNotFound, err)
	})
}

func TestWriteBehindCacheImpl_Put(t *testing.T) {
	wbc := getNewWriteBehindCacheImpl()

	t.Run("Returns the tracked batch after a put", func(t *testing.T) {
		err := wbc.Put("view-1", []int64{3})
		require.NoError(t, err)
		value, err := wbc.Get("view-1")
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, value)
	})

	t.Run("Replaces the tracked batch, last write wins", func(t *testing.T) {
		require.NoError(t, wbc.Put("view-2", []int64{1}))
		require.NoError(t, wbc.Put("view-2", []int64{2}))
		value, err := wbc.Get("view-2")
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, value)
	})
}

func getNewWriteBehindCacheImpl() *WriteBehindCacheImpl[int64] {
	cache, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     1 << 10,
		BufferItems: 64,
	})
	return NewWriteBehindCacheImpl[int64](cache)
}
