package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const (
	// MintSize is the size of a serialized mint.
	MintSize = codec.TagSize + bazaar.AddressLength + 1 + 8
	// MintRentSize is the size the mint storage deposit is computed for.
	MintRentSize = 82

	// AccountSize is the size of a serialized holding account.
	AccountSize = codec.TagSize + 2*bazaar.AddressLength + 8
	// AccountRentSize is the size the holding account storage deposit is
	// computed for.
	AccountRentSize = 165

	mintRecord    = "Mint"
	accountRecord = "TokenAccount"
)

// Mint declares a token.
type Mint struct {
	// Authority is allowed to issue new tokens.
	Authority bazaar.Address
	// Decimals is informational only.
	Decimals uint8
	// Supply is the total amount issued.
	Supply uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	return errors.AppendField(nil, "Authority", m.Authority.Validate())
}

// Marshal implements bazaar.Persistent.
func (m *Mint) Marshal() ([]byte, error) {
	return codec.NewRecordWriter(mintRecord, MintSize).
		Fixed(m.Authority, bazaar.AddressLength).
		Byte(m.Decimals).
		Uint64(m.Supply).
		Finish()
}

// Unmarshal implements bazaar.Persistent.
func (m *Mint) Unmarshal(bz []byte) error {
	r, err := codec.NewRecordReader(mintRecord, MintSize, bz)
	if err != nil {
		return err
	}
	m.Authority = r.Fixed(bazaar.AddressLength)
	m.Decimals = r.Byte()
	m.Supply = r.Uint64()
	return nil
}

// Account is a holding account of a single mint.
type Account struct {
	Mint   bazaar.Address
	Owner  bazaar.Address
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	return errs
}

// Marshal implements bazaar.Persistent.
func (a *Account) Marshal() ([]byte, error) {
	return codec.NewRecordWriter(accountRecord, AccountSize).
		Fixed(a.Mint, bazaar.AddressLength).
		Fixed(a.Owner, bazaar.AddressLength).
		Uint64(a.Amount).
		Finish()
}

// Unmarshal implements bazaar.Persistent.
func (a *Account) Unmarshal(bz []byte) error {
	r, err := codec.NewRecordReader(accountRecord, AccountSize, bz)
	if err != nil {
		return err
	}
	a.Mint = r.Fixed(bazaar.AddressLength)
	a.Owner = r.Fixed(bazaar.AddressLength)
	a.Amount = r.Uint64()
	return nil
}

// NewMintBucket returns a bucket for storing mints, keyed by address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mint", &Mint{})
}

// NewAccountBucket returns a bucket for storing holding accounts, keyed by
// address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokenacc", &Account{})
}
