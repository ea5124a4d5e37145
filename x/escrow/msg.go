package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathPay     = "escrow/pay"
	pathAccept  = "escrow/accept"
	pathDeny    = "escrow/deny"
	pathRecover = "escrow/recover"
)

// PayMsg locks the price of a product in a new escrow. The main signer of
// the transaction is the buyer.
type PayMsg struct {
	// ExpireTime is not compared with the current time. An escrow that
	// is already expired can be created and recovered right away.
	ExpireTime  bazaar.UnixTime
	Product     bazaar.Address
	Seller      bazaar.Address
	PaymentMint bazaar.Address
	// Source is the buyer holding account the price is paid from.
	Source bazaar.Address
}

var _ bazaar.Msg = (*PayMsg)(nil)

func (PayMsg) Path() string {
	return pathPay
}

func (m *PayMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Product", m.Product.Validate())
	errs = errors.AppendField(errs, "Seller", m.Seller.Validate())
	errs = errors.AppendField(errs, "PaymentMint", m.PaymentMint.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	return errs
}

func (m *PayMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Int64(1, int64(m.ExpireTime)).
		Bytes(2, m.Product).
		Bytes(3, m.Seller).
		Bytes(4, m.PaymentMint).
		Bytes(5, m.Source).
		Marshal()
}

func (m *PayMsg) Unmarshal(bz []byte) error {
	*m = PayMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			var t int64
			t, err = v.Int64()
			m.ExpireTime = bazaar.UnixTime(t)
		case 2:
			m.Product, err = v.Bytes()
		case 3:
			m.Seller, err = v.Bytes()
		case 4:
			m.PaymentMint, err = v.Bytes()
		case 5:
			m.Source, err = v.Bytes()
		}
		return err
	})
}

// resolution holds the addresses every resolving message references. The
// counterparty is the buyer when the seller resolves and the seller when
// the buyer recovers.
type resolution struct {
	Product      bazaar.Address
	Counterparty bazaar.Address
	Escrow       bazaar.Address
	Vault        bazaar.Address
	PaymentMint  bazaar.Address
	// Destination is the holding account receiving the vault balance.
	Destination bazaar.Address
}

func (r *resolution) validate(counterparty string) error {
	var errs error
	errs = errors.AppendField(errs, "Product", r.Product.Validate())
	errs = errors.AppendField(errs, counterparty, r.Counterparty.Validate())
	errs = errors.AppendField(errs, "Escrow", r.Escrow.Validate())
	errs = errors.AppendField(errs, "Vault", r.Vault.Validate())
	errs = errors.AppendField(errs, "PaymentMint", r.PaymentMint.Validate())
	errs = errors.AppendField(errs, "Destination", r.Destination.Validate())
	return errs
}

func (r *resolution) marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, r.Product).
		Bytes(2, r.Counterparty).
		Bytes(3, r.Escrow).
		Bytes(4, r.Vault).
		Bytes(5, r.PaymentMint).
		Bytes(6, r.Destination).
		Marshal()
}

func (r *resolution) unmarshal(bz []byte) error {
	*r = resolution{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			r.Product, err = v.Bytes()
		case 2:
			r.Counterparty, err = v.Bytes()
		case 3:
			r.Escrow, err = v.Bytes()
		case 4:
			r.Vault, err = v.Bytes()
		case 5:
			r.PaymentMint, err = v.Bytes()
		case 6:
			r.Destination, err = v.Bytes()
		}
		return err
	})
}

// AcceptMsg releases the escrowed payment to the seller. The main signer
// of the transaction is the seller, Destination must be a seller account.
type AcceptMsg struct {
	Product     bazaar.Address
	Buyer       bazaar.Address
	Escrow      bazaar.Address
	Vault       bazaar.Address
	PaymentMint bazaar.Address
	Destination bazaar.Address
}

var _ bazaar.Msg = (*AcceptMsg)(nil)

func (AcceptMsg) Path() string {
	return pathAccept
}

func (m *AcceptMsg) resolution() *resolution {
	return &resolution{
		Product:      m.Product,
		Counterparty: m.Buyer,
		Escrow:       m.Escrow,
		Vault:        m.Vault,
		PaymentMint:  m.PaymentMint,
		Destination:  m.Destination,
	}
}

func (m *AcceptMsg) Validate() error {
	return m.resolution().validate("Buyer")
}

func (m *AcceptMsg) Marshal() ([]byte, error) {
	return m.resolution().marshal()
}

func (m *AcceptMsg) Unmarshal(bz []byte) error {
	var r resolution
	if err := r.unmarshal(bz); err != nil {
		return err
	}
	*m = AcceptMsg{
		Product:     r.Product,
		Buyer:       r.Counterparty,
		Escrow:      r.Escrow,
		Vault:       r.Vault,
		PaymentMint: r.PaymentMint,
		Destination: r.Destination,
	}
	return nil
}

// DenyMsg returns the escrowed payment to the buyer. The main signer of the
// transaction is the seller, Destination must be a buyer account.
type DenyMsg struct {
	Product     bazaar.Address
	Buyer       bazaar.Address
	Escrow      bazaar.Address
	Vault       bazaar.Address
	PaymentMint bazaar.Address
	Destination bazaar.Address
}

var _ bazaar.Msg = (*DenyMsg)(nil)

func (DenyMsg) Path() string {
	return pathDeny
}

func (m *DenyMsg) resolution() *resolution {
	return &resolution{
		Product:      m.Product,
		Counterparty: m.Buyer,
		Escrow:       m.Escrow,
		Vault:        m.Vault,
		PaymentMint:  m.PaymentMint,
		Destination:  m.Destination,
	}
}

func (m *DenyMsg) Validate() error {
	return m.resolution().validate("Buyer")
}

func (m *DenyMsg) Marshal() ([]byte, error) {
	return m.resolution().marshal()
}

func (m *DenyMsg) Unmarshal(bz []byte) error {
	var r resolution
	if err := r.unmarshal(bz); err != nil {
		return err
	}
	*m = DenyMsg{
		Product:     r.Product,
		Buyer:       r.Counterparty,
		Escrow:      r.Escrow,
		Vault:       r.Vault,
		PaymentMint: r.PaymentMint,
		Destination: r.Destination,
	}
	return nil
}

// RecoverMsg returns the escrowed payment to the buyer after the escrow
// expired. The main signer of the transaction is the buyer.
type RecoverMsg struct {
	Product     bazaar.Address
	Seller      bazaar.Address
	Escrow      bazaar.Address
	Vault       bazaar.Address
	PaymentMint bazaar.Address
	Destination bazaar.Address
}

var _ bazaar.Msg = (*RecoverMsg)(nil)

func (RecoverMsg) Path() string {
	return pathRecover
}

func (m *RecoverMsg) resolution() *resolution {
	return &resolution{
		Product:      m.Product,
		Counterparty: m.Seller,
		Escrow:       m.Escrow,
		Vault:        m.Vault,
		PaymentMint:  m.PaymentMint,
		Destination:  m.Destination,
	}
}

func (m *RecoverMsg) Validate() error {
	return m.resolution().validate("Seller")
}

func (m *RecoverMsg) Marshal() ([]byte, error) {
	return m.resolution().marshal()
}

func (m *RecoverMsg) Unmarshal(bz []byte) error {
	var r resolution
	if err := r.unmarshal(bz); err != nil {
		return err
	}
	*m = RecoverMsg{
		Product:     r.Product,
		Seller:      r.Counterparty,
		Escrow:      r.Escrow,
		Vault:       r.Vault,
		PaymentMint: r.PaymentMint,
		Destination: r.Destination,
	}
	return nil
}
