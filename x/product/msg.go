package product

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
)

// InitProductMsg publishes a product. The main signer of the transaction
// is the seller.
type InitProductMsg struct {
	ID          []byte
	Price       uint64
	PaymentMint bazaar.Address
}

var _ bazaar.Msg = (*InitProductMsg)(nil)

func (InitProductMsg) Path() string {
	return "product/init"
}

// Validate checks the shape of the message only. Price is not validated,
// zero price products are allowed.
func (m *InitProductMsg) Validate() error {
	var errs error
	if len(m.ID) != IDLength {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "must be %d bytes", IDLength))
	}
	errs = errors.AppendField(errs, "PaymentMint", m.PaymentMint.Validate())
	return errs
}

func (m *InitProductMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.ID).
		Uint64(2, m.Price).
		Bytes(3, m.PaymentMint).
		Marshal()
}

func (m *InitProductMsg) Unmarshal(bz []byte) error {
	*m = InitProductMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.ID, err = v.Bytes()
		case 2:
			m.Price, err = v.Uint64()
		case 3:
			m.PaymentMint, err = v.Bytes()
		}
		return err
	})
}
