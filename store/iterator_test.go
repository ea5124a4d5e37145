package store

import (
	"testing"

	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
)

// Release must wait for the walking goroutine, the store is written right
// after it returns.
func TestIteratorReleaseIsSynchronous(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		db := MemStore()
		assert.Nil(t, db.Set([]byte("vault:a"), []byte("A")))
		assert.Nil(t, db.Set([]byte("vault:b"), []byte("B")))
		cache := db.CacheWrap()

		open := cache.Iterator
		if reverse {
			open = cache.ReverseIterator
		}
		it, err := open([]byte("vault:"), []byte("vault;"))
		assert.Nil(t, err)
		it.Release()
		it.Release()
		assert.Nil(t, db.Delete([]byte("vault:a")))
	}
}

func TestIteratorSkipsDeletedTail(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("escrow:1"), []byte("open")))
	cache := db.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("escrow:1")))
	assert.Nil(t, cache.Delete([]byte("escrow:2")))

	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	defer it.Release()
	_, _, err = it.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}
