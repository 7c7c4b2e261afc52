package cache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// WriteBehindCache remembers the most recent value batch per key ahead of the
// store behind it. Eviction is based on LRU and LFU policies; a miss is
// answered from the store, so eviction only costs a lookup.
type WriteBehindCache[ValueType any] interface {
	Get(key string) ([]ValueType, error)
	Put(key string, value []ValueType) error
}

type WriteBehindCacheImpl[ValueType any] struct {
	cache *ristretto.Cache
}

func NewWriteBehindCacheImpl[ValueType any](cache *ristretto.Cache) *WriteBehindCacheImpl[ValueType] {
	return &WriteBehindCacheImpl[ValueType]{
		cache: cache,
	}
}

func (wbc *WriteBehindCacheImpl[ValueType]) Get(key string) ([]ValueType, error) {
	value, found := wbc.cache.Get(key)
	if !found {
		return nil, ErrKeyNotFound
	}
	typedValue, ok := value.([]ValueType)
	if !ok {
		return nil, fmt.Errorf("value not of expected type %T returned from cache when getting", value)
	}

	return typedValue, nil
}

// Put replaces the tracked batch for key; the latest write wins.
func (wbc *WriteBehindCacheImpl[ValueType]) Put(key string, value []ValueType) error {
	set := wbc.cache.Set(key, value, int64(len(value)))
	if !set {
		return ErrSetFailed
	}
	wbc.cache.Wait()
	return nil
}

var (
	ErrKeyNotFound = errors.New("key not found within the cache")
	ErrSetFailed   = errors.New("failed to set value in cache")
)
