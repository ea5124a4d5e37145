package bazaartest

import "github.com/iov-one/bazaar"

// Tx carries a single message. When Err is set GetMsg fails with it.
type Tx struct {
	Msg bazaar.Msg
	Err error
}

var _ bazaar.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal and Unmarshal are never needed by the handlers under test.
func (tx *Tx) Marshal() ([]byte, error) {
	panic("test transactions are not serialized")
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("test transactions are not serialized")
}

// Msg is routed to RoutePath. Its serialized form is kept as is, and every
// method fails with Err when it is set.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ bazaar.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
