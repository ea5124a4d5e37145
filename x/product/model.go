package product

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const (
	// IDLength is the length of a product identifier.
	IDLength = 16

	// Size is the size of a serialized product.
	Size = codec.TagSize + IDLength + 2*bazaar.AddressLength + 8 + 1

	recordName = "Product"
	seedTag    = "product"
)

// Product is a listing of a single seller.
type Product struct {
	ID          []byte
	Authority   bazaar.Address
	PaymentMint bazaar.Address
	Price       uint64
	Bump        byte
}

var _ orm.Model = (*Product)(nil)

func (p *Product) Validate() error {
	var errs error
	if len(p.ID) != IDLength {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "must be %d bytes", IDLength))
	}
	errs = errors.AppendField(errs, "Authority", p.Authority.Validate())
	errs = errors.AppendField(errs, "PaymentMint", p.PaymentMint.Validate())
	return errs
}

// Marshal implements bazaar.Persistent.
func (p *Product) Marshal() ([]byte, error) {
	return codec.NewRecordWriter(recordName, Size).
		Fixed(p.ID, IDLength).
		Fixed(p.Authority, bazaar.AddressLength).
		Fixed(p.PaymentMint, bazaar.AddressLength).
		Uint64(p.Price).
		Byte(p.Bump).
		Finish()
}

// Unmarshal implements bazaar.Persistent.
func (p *Product) Unmarshal(bz []byte) error {
	r, err := codec.NewRecordReader(recordName, Size, bz)
	if err != nil {
		return err
	}
	p.ID = r.Fixed(IDLength)
	p.Authority = r.Fixed(bazaar.AddressLength)
	p.PaymentMint = r.Fixed(bazaar.AddressLength)
	p.Price = r.Uint64()
	p.Bump = r.Byte()
	return nil
}

// NewBucket returns a bucket for storing products, keyed by their derived
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("product", &Product{})
}

// Address returns the canonical address of the product a seller lists
// under given identifier, together with its bump.
func Address(seller bazaar.Address, id []byte) (bazaar.Address, byte, error) {
	return bazaar.FindDerivedAddress(bazaar.ProgramID, []byte(seedTag), seller, id)
}

// Load returns the product stored at addr. The address is verified against
// the seeds and bump stored in the product.
func Load(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Product, error) {
	var p Product
	if err := NewBucket().One(db, addr, &p); err != nil {
		return nil, errors.Wrapf(err, "product %s", addr)
	}
	err := bazaar.VerifyDerivedAddress(addr, bazaar.ProgramID, p.Bump, []byte(seedTag), p.Authority, p.ID)
	if err != nil {
		return nil, errors.Wrap(err, "product")
	}
	return &p, nil
}
