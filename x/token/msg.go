package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
)

const maxDecimals = 18

// CreateMintMsg declares a new token. Mint is a fresh address that must
// sign the transaction, Payer pays the storage deposit.
type CreateMintMsg struct {
	Mint      bazaar.Address
	Authority bazaar.Address
	Payer     bazaar.Address
	Decimals  uint64
}

var _ bazaar.Msg = (*CreateMintMsg)(nil)

func (CreateMintMsg) Path() string {
	return "token/create_mint"
}

func (m *CreateMintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	if m.Decimals > maxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInput, "at most %d", maxDecimals))
	}
	return errs
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Mint).
		Bytes(2, m.Authority).
		Bytes(3, m.Payer).
		Uint64(4, m.Decimals).
		Marshal()
}

func (m *CreateMintMsg) Unmarshal(bz []byte) error {
	*m = CreateMintMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Mint, err = v.Bytes()
		case 2:
			m.Authority, err = v.Bytes()
		case 3:
			m.Payer, err = v.Bytes()
		case 4:
			m.Decimals, err = v.Uint64()
		}
		return err
	})
}

// MintToMsg issues new tokens. It must be signed by the mint authority.
type MintToMsg struct {
	Mint        bazaar.Address
	Destination bazaar.Address
	Amount      uint64
}

var _ bazaar.Msg = (*MintToMsg)(nil)

func (MintToMsg) Path() string {
	return "token/mint"
}

func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Mint).
		Bytes(2, m.Destination).
		Uint64(3, m.Amount).
		Marshal()
}

func (m *MintToMsg) Unmarshal(bz []byte) error {
	*m = MintToMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Mint, err = v.Bytes()
		case 2:
			m.Destination, err = v.Bytes()
		case 3:
			m.Amount, err = v.Uint64()
		}
		return err
	})
}

// OpenAccountMsg creates an empty holding account. Account is a fresh
// address that must sign the transaction, Payer pays the storage deposit.
type OpenAccountMsg struct {
	Account bazaar.Address
	Owner   bazaar.Address
	Mint    bazaar.Address
	Payer   bazaar.Address
}

var _ bazaar.Msg = (*OpenAccountMsg)(nil)

func (OpenAccountMsg) Path() string {
	return "token/open"
}

func (m *OpenAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	return errs
}

func (m *OpenAccountMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Account).
		Bytes(2, m.Owner).
		Bytes(3, m.Mint).
		Bytes(4, m.Payer).
		Marshal()
}

func (m *OpenAccountMsg) Unmarshal(bz []byte) error {
	*m = OpenAccountMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Account, err = v.Bytes()
		case 2:
			m.Owner, err = v.Bytes()
		case 3:
			m.Mint, err = v.Bytes()
		case 4:
			m.Payer, err = v.Bytes()
		}
		return err
	})
}

// TransferMsg moves tokens between holding accounts. It must be signed by
// the owner of the source account.
type TransferMsg struct {
	Source      bazaar.Address
	Destination bazaar.Address
	Amount      uint64
}

var _ bazaar.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "token/send"
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Uint64(3, m.Amount).
		Marshal()
}

func (m *TransferMsg) Unmarshal(bz []byte) error {
	*m = TransferMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Source, err = v.Bytes()
		case 2:
			m.Destination, err = v.Bytes()
		case 3:
			m.Amount, err = v.Uint64()
		}
		return err
	})
}

// CloseAccountMsg deletes an empty holding account. It must be signed by
// the owner.
type CloseAccountMsg struct {
	Account         bazaar.Address
	RentDestination bazaar.Address
}

var _ bazaar.Msg = (*CloseAccountMsg)(nil)

func (CloseAccountMsg) Path() string {
	return "token/close"
}

func (m *CloseAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	errs = errors.AppendField(errs, "RentDestination", m.RentDestination.Validate())
	return errs
}

func (m *CloseAccountMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Account).
		Bytes(2, m.RentDestination).
		Marshal()
}

func (m *CloseAccountMsg) Unmarshal(bz []byte) error {
	*m = CloseAccountMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Account, err = v.Bytes()
		case 2:
			m.RentDestination, err = v.Bytes()
		}
		return err
	})
}
