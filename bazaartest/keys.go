package bazaartest

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
)

// NewKey returns a new, random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a new, random key.
func NewCondition() bazaar.Condition {
	return NewKey().PublicKey().Condition()
}
