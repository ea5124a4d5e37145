package app

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxSerialization(t *testing.T) {
	alice := bazaartest.NewKey()
	bob := bazaartest.NewKey()

	msg := &escrow.PayMsg{
		ExpireTime:  1600000000,
		Product:     bazaartest.NewCondition().Address(),
		Seller:      bob.PublicKey().Address(),
		PaymentMint: bazaartest.NewCondition().Address(),
		Source:      bazaartest.NewCondition().Address(),
	}
	tx := NewTx(msg)
	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)

	require.NoError(t, tx.Sign(alice, "test-chain", 0))
	require.NoError(t, tx.Sign(bob, "test-chain", 7))

	// Signatures are not part of the signed content.
	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, signBytes, after)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := AllMessages().TxDecoder()(raw)
	require.NoError(t, err)

	got := decoded.(*Tx)
	assert.Equal(t, msg, got.Msg)
	require.Len(t, got.Signatures, 2)
	assert.Equal(t, tx.Signatures[0], got.Signatures[0])
	assert.Equal(t, int64(7), got.Signatures[1].Sequence)
}

func TestTxDecoderErrors(t *testing.T) {
	decode := AllMessages().TxDecoder()

	unknown, err := codec.NewEncoder().
		String(1, "nothing/here").
		Bytes(2, []byte{1, 2, 3}).
		Marshal()
	require.NoError(t, err)
	_, err = decode(unknown)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = decode([]byte{0xff})
	assert.True(t, errors.ErrInput.Is(err))

	var empty Tx
	_, err = empty.GetMsg()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestMessagesRegistry(t *testing.T) {
	msgs := AllMessages()
	for path, ctor := range msgs {
		assert.Equal(t, path, ctor().Path())
	}

	// Every registered message has a handler.
	r := Routes(Authenticator())
	for path := range msgs {
		_, ok := r.routes[path]
		assert.True(t, ok, path)
	}
	assert.Len(t, r.routes, len(msgs))

	assert.Panics(t, func() {
		NewMessages(
			func() bazaar.Msg { return &cash.SendMsg{} },
			func() bazaar.Msg { return &cash.SendMsg{} },
		)
	})
}
