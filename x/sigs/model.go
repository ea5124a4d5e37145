package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName prefixes the keys of all users.
const BucketName = "sigs"

// UserData is the signature state of a single key.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Marshal implements bazaar.Persistent.
func (u *UserData) Marshal() ([]byte, error) {
	var pubkey []byte
	if u.Pubkey != nil {
		pubkey = u.Pubkey.Ed25519
	}
	return codec.NewEncoder().
		Bytes(1, pubkey).
		Int64(2, u.Sequence).
		Marshal()
}

// Unmarshal implements bazaar.Persistent.
func (u *UserData) Unmarshal(bz []byte) error {
	*u = UserData{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		switch field {
		case 1:
			raw, err := v.Bytes()
			if err != nil {
				return err
			}
			u.Pubkey = &crypto.PublicKey{Ed25519: raw}
		case 2:
			seq, err := v.Int64()
			if err != nil {
				return err
			}
			u.Sequence = seq
		}
		return nil
	})
}

func (u *UserData) Validate() error {
	var errs error
	if u.Pubkey == nil {
		errs = errors.Append(errs, errors.Field("Pubkey", errors.ErrEmpty, "required"))
	}
	switch {
	case u.Sequence < 0:
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	case u.Sequence > 0 && u.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "used without a key"))
	}
	return errs
}

// maxSequence is the greatest sequence a javascript client can represent.
const maxSequence = 1<<53 - 1

// CheckAndIncrementSequence advances the sequence if it equals expected.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// AsUser returns the user stored in obj, or nil.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser returns a user with a zero sequence, stored under the key
// address.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key bazaar.Address
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, &UserData{Pubkey: pubkey})
}

// Bucket stores the signature state of every key that signed a
// transaction.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate loads the user of pubkey, or returns a new unsaved one.
func (b Bucket) GetOrCreate(db bazaar.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, nil
}
