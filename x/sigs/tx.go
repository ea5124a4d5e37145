package sigs

import (
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
)

// SignedTx is a transaction whose signatures the Decorator verifies.
type SignedTx interface {
	// GetSignBytes returns the bytes every signature covers. They must not
	// include the signatures themselves.
	GetSignBytes() ([]byte, error)

	GetSignatures() []*StdSignature
}

// StdSignature is a signature of a transaction together with the key that
// created it and the sequence it was created for.
type StdSignature struct {
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
	Sequence  int64
}

// Validate checks that all parts of the signature are present.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

// Marshal implements bazaar.Persistent.
func (s *StdSignature) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	if s.Pubkey != nil {
		e.Bytes(1, s.Pubkey.Ed25519)
	}
	if s.Signature != nil {
		e.Bytes(2, s.Signature.Ed25519)
	}
	return e.Int64(3, s.Sequence).Marshal()
}

// Unmarshal implements bazaar.Persistent.
func (s *StdSignature) Unmarshal(bz []byte) error {
	*s = StdSignature{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		switch field {
		case 1:
			raw, err := v.Bytes()
			if err != nil {
				return err
			}
			s.Pubkey = &crypto.PublicKey{Ed25519: raw}
		case 2:
			raw, err := v.Bytes()
			if err != nil {
				return err
			}
			s.Signature = &crypto.Signature{Ed25519: raw}
		case 3:
			seq, err := v.Int64()
			if err != nil {
				return err
			}
			s.Sequence = seq
		}
		return nil
	})
}
