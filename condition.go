package bazaar

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// Condition is a permission that was fulfilled for the current action.
// Every condition controls exactly one address.
type Condition interface {
	// Address returns the address this condition is allowed to act for.
	Address() Address
	String() string
}

// KeyCondition is fulfilled by a valid signature of the private key that
// corresponds to the public key. Public keys are used as addresses directly.
type KeyCondition Address

var _ Condition = KeyCondition(nil)

// Address implements Condition.
func (k KeyCondition) Address() Address {
	return Address(k)
}

func (k KeyCondition) String() string {
	return "key/" + Address(k).String()
}

// SeedCondition is the authority a record holds over its own derived
// address. It can be constructed only from seeds and a bump that derive a
// valid address, so whoever knows the seeds of a record can act on its
// behalf. Records use it to sign for accounts they own.
type SeedCondition struct {
	program Address
	seeds   [][]byte
	bump    byte
	addr    Address
}

var _ Condition = (*SeedCondition)(nil)

// NewSeedCondition returns a condition for the address derived from given
// seeds and bump.
func NewSeedCondition(program Address, bump byte, seeds ...[]byte) (*SeedCondition, error) {
	addr, err := CreateDerivedAddress(program, bump, seeds...)
	if err != nil {
		return nil, err
	}
	cp := make([][]byte, len(seeds))
	for i, s := range seeds {
		cp[i] = append([]byte(nil), s...)
	}
	return &SeedCondition{
		program: program.Clone(),
		seeds:   cp,
		bump:    bump,
		addr:    addr,
	}, nil
}

// Address implements Condition.
func (c *SeedCondition) Address() Address {
	return c.addr
}

// Bump returns the bump used to derive the address.
func (c *SeedCondition) Bump() byte {
	return c.bump
}

func (c *SeedCondition) String() string {
	seeds := make([]string, len(c.seeds))
	for i, s := range c.seeds {
		seeds[i] = base58.Encode(s)
	}
	return fmt.Sprintf("seeds/%s/%s/%d", c.program, strings.Join(seeds, ","), c.bump)
}
