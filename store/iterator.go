package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/bazaar/errors"
)

// walker walks a btree in its own goroutine and hands over one entry at a
// time. The walk must be stopped with release.
type walker struct {
	current entry
	ok      bool

	items <-chan btree.Item
	stop  chan<- struct{}
	once  sync.Once
}

func ascendBtree(bt *btree.BTree, start, end []byte) *walker {
	return walk(func(yield btree.ItemIterator) {
		switch {
		case start == nil && end == nil:
			bt.Ascend(yield)
		case start == nil:
			bt.AscendLessThan(entry{key: end}, yield)
		case end == nil:
			bt.AscendGreaterOrEqual(entry{key: start}, yield)
		default:
			bt.AscendRange(entry{key: start}, entry{key: end}, yield)
		}
	})
}

func descendBtree(bt *btree.BTree, start, end []byte) *walker {
	return walk(func(yield btree.ItemIterator) {
		switch {
		case start == nil && end == nil:
			bt.Descend(yield)
		case start == nil:
			bt.DescendLessOrEqual(lowerBound(end), yield)
		case end == nil:
			bt.DescendGreaterThan(lowerBound(start), yield)
		default:
			bt.DescendRange(lowerBound(end), lowerBound(start), yield)
		}
	})
}

func walk(traverse func(btree.ItemIterator)) *walker {
	items := make(chan btree.Item)
	// Buffered, release must not block on a finished walk.
	stop := make(chan struct{}, 1)

	go func() {
		defer close(items)
		traverse(func(item btree.Item) bool {
			select {
			case items <- item:
				return true
			case <-stop:
				return false
			}
		})
	}()

	w := &walker{items: items, stop: stop}
	w.advance()
	return w
}

func (w *walker) advance() {
	item, ok := <-w.items
	w.ok = ok
	if ok {
		w.current = item.(entry)
	} else {
		w.current = entry{}
	}
}

// release returns once the goroutine is gone and the tree can be written.
func (w *walker) release() {
	w.once.Do(func() {
		w.stop <- struct{}{}
		for range w.items {
		}
	})
}

func (w *walker) wrap(parent Iterator, ascending bool) (*mergeIter, error) {
	it := &mergeIter{cache: w, parent: parent, ascending: ascending}
	if err := it.advanceParent(); err != nil {
		it.Release()
		return nil, err
	}
	return it, nil
}

// mergeIter yields the pending writes of a cache merged with the content
// of its parent. A cache entry wins over a parent entry with the same key
// and a deleted entry hides it.
type mergeIter struct {
	cache     *walker
	ascending bool

	parent      Iterator
	parentKey   []byte
	parentValue []byte
	parentOK    bool
}

var _ Iterator = (*mergeIter)(nil)

func (it *mergeIter) Next() (key, value []byte, err error) {
	for {
		if !it.cache.ok && !it.parentOK {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "btree iterator")
		}

		order := it.order()
		if order < 0 {
			key, value = it.parentKey, it.parentValue
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		e := it.cache.current
		it.cache.advance()
		if order == 0 {
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// order is negative when the parent comes next, positive when the cache
// does and zero when both hold the same key.
func (it *mergeIter) order() int {
	switch {
	case !it.parentOK:
		return 1
	case !it.cache.ok:
		return -1
	}
	cmp := bytes.Compare(it.parentKey, it.cache.current.key)
	if !it.ascending {
		cmp = -cmp
	}
	return cmp
}

func (it *mergeIter) Release() {
	it.cache.release()
	if it.parent != nil {
		it.parent.Release()
	}
}

func (it *mergeIter) advanceParent() error {
	it.parentKey, it.parentValue, it.parentOK = nil, nil, false
	if it.parent == nil {
		return nil
	}
	key, value, err := it.parent.Next()
	switch {
	case err == nil:
		it.parentKey, it.parentValue, it.parentOK = key, value, true
	case !errors.ErrIteratorDone.Is(err):
		return err
	}
	return nil
}
