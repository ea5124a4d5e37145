package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// NextNonce returns the sequence to sign the next transaction of signer
// with. An address that never signed starts at zero.
func NextNonce(db bazaar.ReadOnlyKVStore, signer bazaar.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "user")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}
