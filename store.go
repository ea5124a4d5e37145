package bazaar

// ReadOnlyKVStore reads committed or cached state. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks keys in ascending order, from start included to end
	// excluded. A nil bound is open. The iterated domain must not be
	// written to while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks the same domain as Iterator in descending
	// order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what every handler gets to read and write state.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch of writes applied together.
	NewBatch() Batch
}

// Batch groups writes until Write is called.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator returns key value pairs one at a time. It must be released when no
longer used.

	it, err := db.Iterator(start, end)
	if err != nil {
		return err
	}
	defer it.Release()
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		} else if err != nil {
			return err
		}
		// use key and value
	}
*/
type Iterator interface {
	// Next returns ErrIteratorDone once all pairs were returned.
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stack a cache of pending writes on top of itself.
// Pending writes are visible through the cache only, until it is written.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a layer of pending writes. Write moves them to the parent
// store, Discard drops them. Caches can be stacked.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the root store of the ledger. Writes go through a cache
// and become durable with Commit, which creates a new version.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	Commit() (CommitID, error)
	// LoadLatestVersion restores the last complete commit, even after an
	// interrupted one.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a version of the committed state by its number and
// merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
