// Package crypto wraps the ed25519 keys that sign transactions. A public
// key doubles as the address of its owner.
package crypto

import (
	"github.com/iov-one/bazaar"
	"golang.org/x/crypto/ed25519"
)

// Signer signs without exposing the private key, so that it can be backed
// by a hardware device.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

type PublicKey struct {
	Ed25519 []byte
}

type PrivateKey struct {
	Ed25519 []byte
}

type Signature struct {
	Ed25519 []byte
}

func (p *PublicKey) Address() bazaar.Address {
	return bazaar.Address(p.Ed25519)
}

// Condition is granted to a transaction carrying a valid signature of p.
func (p *PublicKey) Condition() bazaar.Condition {
	return bazaar.KeyCondition(p.Ed25519)
}

// Verify is false for a missing signature or a malformed key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

var _ Signer = (*PrivateKey)(nil)

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 reads the key from crypto/rand.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives the key from a 32 byte seed. Tests use it
// for stable addresses.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
