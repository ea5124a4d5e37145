package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const (
	// Size is the size of a serialized escrow.
	Size = codec.TagSize + 2*bazaar.AddressLength + 8 + 1 + 1

	recordName   = "Escrow"
	escrowSeed   = "escrow"
	vaultSeed    = "escrow_vault"
	bucketPrefix = "escrow"
)

// Escrow is a payment pending resolution.
type Escrow struct {
	Buyer      bazaar.Address
	Seller     bazaar.Address
	ExpireTime bazaar.UnixTime
	VaultBump  byte
	Bump       byte
}

var _ orm.Model = (*Escrow)(nil)

// Validate does not check the expiration time, any value is accepted.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Buyer", e.Buyer.Validate())
	errs = errors.AppendField(errs, "Seller", e.Seller.Validate())
	return errs
}

// Marshal implements bazaar.Persistent.
func (e *Escrow) Marshal() ([]byte, error) {
	return codec.NewRecordWriter(recordName, Size).
		Fixed(e.Buyer, bazaar.AddressLength).
		Fixed(e.Seller, bazaar.AddressLength).
		Int64(int64(e.ExpireTime)).
		Byte(e.VaultBump).
		Byte(e.Bump).
		Finish()
}

// Unmarshal implements bazaar.Persistent.
func (e *Escrow) Unmarshal(bz []byte) error {
	r, err := codec.NewRecordReader(recordName, Size, bz)
	if err != nil {
		return err
	}
	e.Buyer = r.Fixed(bazaar.AddressLength)
	e.Seller = r.Fixed(bazaar.AddressLength)
	e.ExpireTime = bazaar.UnixTime(r.Int64())
	e.VaultBump = r.Byte()
	e.Bump = r.Byte()
	return nil
}

// NewBucket returns a bucket for storing escrows, keyed by their derived
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketPrefix, &Escrow{})
}

// Address returns the canonical address of the escrow of given buyer for
// given product, together with its bump.
func Address(product, buyer bazaar.Address) (bazaar.Address, byte, error) {
	return bazaar.FindDerivedAddress(bazaar.ProgramID, []byte(escrowSeed), product, buyer)
}

// VaultAddress returns the canonical address of the vault of given buyer
// for given product, together with its bump.
func VaultAddress(product, buyer bazaar.Address) (bazaar.Address, byte, error) {
	return bazaar.FindDerivedAddress(bazaar.ProgramID, []byte(vaultSeed), product, buyer)
}

// Condition returns the authority of the escrow over its vault.
func Condition(product bazaar.Address, e *Escrow) (*bazaar.SeedCondition, error) {
	return bazaar.NewSeedCondition(bazaar.ProgramID, e.Bump, []byte(escrowSeed), product, e.Buyer)
}
