package app

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/sigs"
)

// Messages resolves a message path to a constructor of an empty message of
// the right type.
type Messages map[string]func() bazaar.Msg

// NewMessages returns a registry of given message constructors, indexed by
// the path of the message they create. It panics if two constructors create
// messages with the same path.
func NewMessages(ctors ...func() bazaar.Msg) Messages {
	m := make(Messages, len(ctors))
	for _, ctor := range ctors {
		path := ctor().Path()
		if _, ok := m[path]; ok {
			panic("message already registered: " + path)
		}
		m[path] = ctor
	}
	return m
}

// TxDecoder returns a decoder of transactions carrying registered messages.
func (m Messages) TxDecoder() bazaar.TxDecoder {
	return func(bz []byte) (bazaar.Tx, error) {
		tx := &Tx{messages: m}
		if err := tx.Unmarshal(bz); err != nil {
			return nil, err
		}
		return tx, nil
	}
}

// Tx is a transaction carrying a single message and signatures of all its
// signers. The message is encoded together with its path, so that it can
// be decoded without knowing its type upfront.
type Tx struct {
	Msg        bazaar.Msg
	Signatures []*sigs.StdSignature

	messages Messages
}

var _ bazaar.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns a transaction carrying given message. Use Sign to add
// signatures.
func NewTx(msg bazaar.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInput, "missing message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return tx.encoder().Marshal()
}

func (tx *Tx) encoder() *codec.Encoder {
	e := codec.NewEncoder()
	if tx.Msg != nil {
		e.String(1, tx.Msg.Path())
		e.Message(2, tx.Msg)
	}
	return e
}

func (tx *Tx) Marshal() ([]byte, error) {
	e := tx.encoder()
	for _, sig := range tx.Signatures {
		e.Message(3, sig)
	}
	return e.Marshal()
}

// Unmarshal decodes the transaction. Only messages known to the registry
// the transaction was created with can be decoded.
func (tx *Tx) Unmarshal(bz []byte) error {
	var (
		path       string
		raw        []byte
		signatures []*sigs.StdSignature
	)
	err := codec.Decode(bz, func(field int, v codec.Value) error {
		var err error
		switch field {
		case 1:
			path, err = v.String()
		case 2:
			raw, err = v.Bytes()
		case 3:
			var sig sigs.StdSignature
			if err = v.Message(&sig); err == nil {
				signatures = append(signatures, &sig)
			}
		}
		return err
	})
	if err != nil {
		return errors.Wrap(err, "cannot decode transaction")
	}

	ctor, ok := tx.messages[path]
	if !ok {
		return errors.Wrapf(errors.ErrInput, "unknown message %q", path)
	}
	msg := ctor()
	if err := msg.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot decode %q message", path)
	}
	tx.Msg = msg
	tx.Signatures = signatures
	return nil
}

// Sign appends the signature of signer for given chain and sequence.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
