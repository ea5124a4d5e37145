// Package iavl persists the ledger state in a versioned merkle tree backed
// by leveldb.
package iavl

import (
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of tree nodes kept in memory.
const cacheSize = 10000

// CommitStore holds the working tree. Writes go to the working tree and
// become a new version on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, the leveldb database dir/name.db.
func NewCommitStore(dir, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return CommitStore{}, dbError(err)
	}
	return open(db), nil
}

// NewMemCommitStore keeps every version in memory.
func NewMemCommitStore() CommitStore {
	return open(dbm.NewMemDB())
}

func open(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize), db: db}
}

func dbError(err error) error {
	return errors.Wrap(errors.ErrDatabase, err.Error())
}

// Get reads from the last committed version, ignoring the working tree.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	v := s.tree.Version()
	if v == 0 {
		return nil, nil
	}
	committed, err := s.tree.GetImmutable(v)
	if err != nil {
		return nil, dbError(err)
	}
	_, val := committed.Get(key)
	return val, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, v, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, dbError(err)
	}
	return store.CommitID{Version: v, Hash: hash}, nil
}

// LoadLatestVersion loads the last complete version. A commit interrupted
// by a crash is ignored.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return dbError(err)
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

func (s CommitStore) Close() {
	s.db.Close()
}

// Adapter exposes the working tree as a store.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{s.tree}
}

func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get panics on a nil key, as does the tree.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

// Iterator and ReverseIterator load the whole range up front, so the tree
// may be written while they are open. The end is exclusive.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, true), nil
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, false), nil
}

func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}
