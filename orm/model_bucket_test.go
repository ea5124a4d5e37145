package orm

import (
	"testing"

	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

type counter struct {
	Count int64
}

func (c *counter) Marshal() ([]byte, error) {
	return codec.NewEncoder().Int64(1, c.Count).Marshal()
}

func (c *counter) Unmarshal(bz []byte) error {
	*c = counter{}
	return codec.Decode(bz, func(field int, v codec.Value) (err error) {
		if field == 1 {
			c.Count, err = v.Int64()
		}
		return err
	})
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct {
	counter
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	err := b.Has(db, []byte("c1"))
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, b.Put(db, []byte("c1"), &counter{Count: 1}))
	assert.Nil(t, b.Has(db, []byte("c1")))

	var c1 counter
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(1), c1.Count)

	var wrong other
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("c1"), &wrong))

	assert.IsErr(t, errors.ErrDuplicate, b.Create(db, []byte("c1"), &counter{Count: 2}))
	assert.Nil(t, b.Create(db, []byte("c2"), &counter{Count: 2}))

	assert.IsErr(t, errors.ErrModel, b.Put(db, []byte("c3"), &counter{Count: -1}))

	assert.Nil(t, b.Delete(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("c1"), &c1))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("c1")))
}

func TestBucketAll(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))
	neighbour := NewBucket("cntt", NewSimpleObj(nil, &counter{}))

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("b"), &counter{Count: 2})))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), &counter{Count: 1})))
	assert.Nil(t, neighbour.Save(db, NewSimpleObj([]byte("a"), &counter{Count: 9})))

	all, err := b.All(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(all))
	assert.Equal(t, []byte("a"), all[0].Key())
	assert.Equal(t, &counter{Count: 1}, all[0].Value())
	assert.Equal(t, []byte("b"), all[1].Key())

	obj, err := b.Get(db, []byte("missing"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("Invalid-Name", NewSimpleObj(nil, &counter{})) })
	assert.Panics(t, func() { NewBucket("ab", NewSimpleObj(nil, &counter{})) })
}

func TestSimpleObjValidate(t *testing.T) {
	assert.IsErr(t, errors.ErrEmpty, NewSimpleObj(nil, &counter{}).Validate())
	assert.IsErr(t, errors.ErrModel, NewSimpleObj([]byte("k"), &counter{Count: -2}).Validate())
	assert.Nil(t, NewSimpleObj([]byte("k"), &counter{Count: 2}).Validate())
}
