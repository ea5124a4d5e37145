package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
)

// StdTx is a transaction carrying signatures, used in tests only.
type StdTx struct {
	bazaartest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ bazaar.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &bazaartest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: bazaartest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
