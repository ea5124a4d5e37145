package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
)

const maxMemoSize int = 128

// SendMsg moves lamports from the source to the destination wallet.
type SendMsg struct {
	Source      bazaar.Address
	Destination bazaar.Address
	Amount      uint64
	Memo        string
}

// Ensure we implement the Msg interface
var _ bazaar.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return err
}

// Marshal implements bazaar.Persistent.
func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Bytes(1, m.Source).
		Bytes(2, m.Destination).
		Uint64(3, m.Amount).
		String(4, m.Memo).
		Marshal()
}

// Unmarshal implements bazaar.Persistent.
func (m *SendMsg) Unmarshal(bz []byte) error {
	*m = SendMsg{}
	return codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			m.Source, err = v.Bytes()
		case 2:
			m.Destination, err = v.Bytes()
		case 3:
			m.Amount, err = v.Uint64()
		case 4:
			m.Memo, err = v.String()
		}
		return err
	})
}
