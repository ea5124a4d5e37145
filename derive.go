package bazaar

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/bazaar/errors"
)

const (
	// MaxSeeds is the maximum number of seeds an address can be derived
	// from, including the bump.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
)

// ProgramID is the address all records of this ledger are derived under.
var ProgramID = MustParseAddress("6NSfzFwHeuDCLzFwAo3yQ2KLLb9bThvkEVyeWChoAqBa")

var derivedAddressMarker = []byte("ProgramDerivedAddress")

// CreateDerivedAddress computes the address of a record from the program
// address, the seeds and a bump byte.
//
// The result must not be a valid ed25519 point, so that no private key can
// ever exist for it. If it is, ErrSeeds is returned and another bump must be
// used.
func CreateDerivedAddress(program Address, bump byte, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(program, seeds); err != nil {
		return nil, err
	}
	addr := hashSeeds(program, bump, seeds)
	if isOnCurve(addr) {
		return nil, errors.Wrap(errors.ErrSeeds, "address is on curve")
	}
	return addr, nil
}

// FindDerivedAddress searches for the canonical bump, starting from 255 and
// going down, and returns the first off curve address together with the bump
// used to derive it.
func FindDerivedAddress(program Address, seeds ...[]byte) (Address, byte, error) {
	if err := validateSeeds(program, seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		addr := hashSeeds(program, byte(bump), seeds)
		if !isOnCurve(addr) {
			return addr, byte(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrSeeds, "no valid bump")
}

// VerifyDerivedAddress returns ErrSeeds unless addr is derived from given
// seeds and bump.
func VerifyDerivedAddress(addr, program Address, bump byte, seeds ...[]byte) error {
	want, err := CreateDerivedAddress(program, bump, seeds...)
	if err != nil {
		return err
	}
	if !want.Equals(addr) {
		return errors.Wrapf(errors.ErrSeeds, "want %s address, got %s", want, addr)
	}
	return nil
}

func validateSeeds(program Address, seeds [][]byte) error {
	if err := program.Validate(); err != nil {
		return errors.Wrap(err, "program")
	}
	if len(seeds)+1 > MaxSeeds {
		return errors.Wrapf(errors.ErrSeeds, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLen {
			return errors.Wrapf(errors.ErrSeeds, "seed %d too long: %d", i, len(s))
		}
	}
	return nil
}

func hashSeeds(program Address, bump byte, seeds [][]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(program)
	h.Write(derivedAddressMarker)
	return h.Sum(nil)
}

// isOnCurve returns true if given bytes are a valid compressed ed25519 point.
func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
