package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
)

// Opener returns a fresh empty store and a function releasing it.
type Opener func() (base CacheableKVStore, cleanup func())

// Conformance checks the behaviour shared by every CacheableKVStore
// implementation. Backends only provide the Opener.
type Conformance struct {
	open Opener
}

func NewConformance(open Opener) *Conformance {
	return &Conformance{open: open}
}

// Run executes all conformance checks as subtests.
func (c *Conformance) Run(t *testing.T) {
	t.Run("layers", c.layers)
	t.Run("shadowing", c.shadowing)
	t.Run("iteration", c.iteration)
}

// layers ensures writes made on a cache reach the parent only on Write.
func (c *Conformance) layers(t *testing.T) {
	base, cleanup := c.open()
	defer cleanup()

	wallet, balance := []byte("wallet:alice"), []byte{0, 0, 0, 7}
	expectGet(t, base, wallet, nil)
	assert.Nil(t, base.Set(wallet, balance))
	expectGet(t, base, wallet, balance)

	cache := base.CacheWrap()
	expectGet(t, cache, wallet, balance)

	escrow, record := []byte("escrow:bob"), []byte("pending")
	assert.Nil(t, cache.Set(escrow, record))
	expectGet(t, cache, escrow, record)
	expectGet(t, base, escrow, nil)
	assert.Nil(t, cache.Write())
	expectGet(t, base, escrow, record)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Delete(wallet))
	assert.Nil(t, discarded.Set([]byte("vault:bob"), []byte("locked")))
	expectGet(t, discarded, wallet, nil)
	discarded.Discard()
	expectGet(t, base, wallet, balance)
	expectGet(t, base, []byte("vault:bob"), nil)

	nested := base.CacheWrap()
	inner := nested.CacheWrap()
	assert.Nil(t, inner.Delete(escrow))
	assert.Nil(t, inner.Write())
	expectGet(t, nested, escrow, nil)
	expectGet(t, base, escrow, record)
	assert.Nil(t, nested.Write())
	expectGet(t, base, escrow, nil)
}

// shadowing ensures a cache can overwrite and delete parent values.
func (c *Conformance) shadowing(t *testing.T) {
	base, cleanup := c.open()
	defer cleanup()

	a, b, d := []byte("a"), []byte("b"), []byte("d")
	assert.Nil(t, SetOp(a, []byte("parent a")).Apply(base))
	assert.Nil(t, SetOp(b, []byte("parent b")).Apply(base))

	cache := base.CacheWrap()
	ops := []Op{
		SetOp(a, []byte("child a")),
		DelOp(b),
		SetOp(d, []byte("child d")),
	}
	for _, op := range ops {
		assert.Nil(t, op.Apply(cache))
	}

	expectGet(t, base, a, []byte("parent a"))
	expectGet(t, base, b, []byte("parent b"))
	expectGet(t, base, d, nil)

	want := []Model{Pair(a, []byte("child a")), Pair(b, nil), Pair(d, []byte("child d"))}
	for _, m := range want {
		expectGet(t, cache, m.Key, m.Value)
	}
	assert.Nil(t, cache.Write())
	for _, m := range want {
		expectGet(t, base, m.Key, m.Value)
	}
}

// iteration ensures a cache iterates over the merged view of itself and
// its parent, in both directions and with range limits.
func (c *Conformance) iteration(t *testing.T) {
	keys := make([][]byte, 20)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("acct:%02d", i))
	}
	value := func(layer string, i int) []byte {
		return []byte(fmt.Sprintf("%s-%d", layer, i))
	}

	base, cleanup := c.open()
	defer cleanup()
	// Parent holds even keys, the child overwrites every fourth key,
	// adds odd keys and deletes keys divisible by five.
	for i := 0; i < len(keys); i += 2 {
		assert.Nil(t, base.Set(keys[i], value("parent", i)))
	}
	cache := base.CacheWrap()
	var merged []Model
	for i, k := range keys {
		switch {
		case i%5 == 0:
			assert.Nil(t, cache.Delete(k))
		case i%4 == 0 || i%2 == 1:
			assert.Nil(t, cache.Set(k, value("child", i)))
			merged = append(merged, Pair(k, value("child", i)))
		default:
			merged = append(merged, Pair(k, value("parent", i)))
		}
	}

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all":             {want: merged},
		"all reversed":    {reverse: true, want: reversed(merged)},
		"from start":      {start: merged[4].Key, want: merged[4:]},
		"until end":       {end: merged[6].Key, want: merged[:6]},
		"bounded":         {start: merged[2].Key, end: merged[9].Key, want: merged[2:9]},
		"bounded reverse": {start: merged[2].Key, end: merged[9].Key, reverse: true, want: reversed(merged[2:9])},
		"empty range":     {start: keys[0], end: keys[1], want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			for i, m := range tc.want {
				key, val, err := it.Next()
				if err != nil {
					t.Fatalf("item %d: %s", i, err)
				}
				assert.Equal(t, m.Key, key)
				assert.Equal(t, m.Value, val)
			}
			if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
				t.Fatalf("want iterator done, got %+v", err)
			}
		})
	}
}

func expectGet(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func reversed(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}
