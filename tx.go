package bazaar

import (
	"reflect"

	"github.com/iov-one/bazaar/errors"
)

// Msg is a request to change the state of the ledger, for example paying
// for a product. It carries no authentication, that lives in the Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. Several message types may
	// share a path. It must match [0-9A-Za-z_\-/]+
	Path() string

	// Validate checks the message without reading the state.
	Validate() error
}

// Marshaller serializes itself. Marshal may fail on invalid data.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be loaded. Unmarshal nearly
// always needs a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: a single message together with whatever
// the decorators need to authenticate it, such as signatures.
type Tx interface {
	Persistent

	GetMsg() (Msg, error)
}

// GetPath returns the path of the transaction message, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// LoadMsg copies the transaction message into dest and validates it. dest
// must point to a value of the message type.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "no transaction message")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if src.Type() != target.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", dest, msg)
	}
	target.Elem().Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
