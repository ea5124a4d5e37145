package orm

import (
	"reflect"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// ModelBucket stores a single Model type and works on models directly.
// Lookups that find nothing fail with ErrNotFound.
type ModelBucket interface {
	// One loads the model stored under key into dest. It fails with
	// ErrType when dest is not of the stored type.
	One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil when key is in use.
	Has(db bazaar.ReadOnlyKVStore, key []byte) error

	// Create fails with ErrDuplicate when key is in use.
	Create(db bazaar.KVStore, key []byte, m Model) error

	// Put creates or overwrites.
	Put(db bazaar.KVStore, key []byte, m Model) error

	Delete(db bazaar.KVStore, key []byte) error
}

// NewModelBucket stores models of the same type as m under name.
func NewModelBucket(name string, m Model) ModelBucket {
	return modelBucket{Bucket: NewBucket(name, NewSimpleObj(nil, m))}
}

type modelBucket struct {
	Bucket
}

func (mb modelBucket) One(db bazaar.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return assign(dest, obj.Value())
}

// assign copies src into the value dest points to.
func assign(dest, src Model) error {
	if reflect.TypeOf(src) != reflect.TypeOf(dest) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", src, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(src).Elem())
	return nil
}

func (mb modelBucket) Has(db bazaar.ReadOnlyKVStore, key []byte) error {
	switch ok, err := mb.Bucket.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "no %s with key %X", mb.Name(), key)
	}
	return nil
}

func (mb modelBucket) Create(db bazaar.KVStore, key []byte, m Model) error {
	err := mb.Has(db, key)
	if err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "%s with key %X", mb.Name(), key)
	}
	if !errors.ErrNotFound.Is(err) {
		return err
	}
	return mb.Put(db, key, m)
}

func (mb modelBucket) Put(db bazaar.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb modelBucket) Delete(db bazaar.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.Bucket.Delete(db, key)
}
