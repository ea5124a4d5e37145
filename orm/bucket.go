/*
Package orm splits the state into prefixed buckets.

Every bucket holds records of a single type. A record is addressed by its
primary key, which for most records of the ledger is the address the record
lives at. Buckets support point lookups and iteration in key order.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects under the "<name>:" prefix. It is untyped and
// usually wrapped, either by a ModelBucket or an extension specific type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket panics when the name is not 3 to 10 lowercase letters or
// underscores. Loaded objects are cloned from proto.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string {
	return b.name
}

// DBKey returns a newly allocated prefixed key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns nil without an error when nothing is stored under the key.
func (b Bucket) Get(db bazaar.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	switch {
	case err != nil:
		return nil, err
	case raw == nil:
		return nil, nil
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db bazaar.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse loads a stored value into a fresh clone of the prototype.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %s", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object.
func (b Bucket) Save(db bazaar.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db bazaar.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// All loads every object of the bucket in ascending key order.
func (b Bucket) All(db bazaar.ReadOnlyKVStore) ([]Object, error) {
	// The separator is the last prefix byte, so incrementing it gives the
	// first key past the bucket.
	end := append([]byte(b.name), ':'+1)
	it, err := db.Iterator(b.prefix, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var all []Object
	for {
		key, raw, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		obj, err := b.Parse(key[len(b.prefix):], raw)
		if err != nil {
			return nil, err
		}
		all = append(all, obj)
	}
}
