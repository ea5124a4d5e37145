package sigs

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "bazaar-sign-test"
	pay, accept := []byte("escrow/pay"), []byte("escrow/accept")

	base, err := BuildSignBytes(pay, chainID, 3)
	require.NoError(t, err)
	assert.Len(t, base, 64)
	again, err := BuildSignBytes(pay, chainID, 3)
	require.NoError(t, err)
	assert.Equal(t, base, again)

	variants := map[string]struct {
		payload []byte
		chainID string
		seq     int64
	}{
		"payload":  {accept, chainID, 3},
		"chain id": {pay, chainID + "x", 3},
		"sequence": {pay, chainID, 4},
	}
	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := BuildSignBytes(v.payload, v.chainID, v.seq)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}

	_, err = BuildSignBytes(pay, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(pay, "short", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	const chainID = "bazaar-verify"
	db := store.MemStore()
	buyer := crypto.GenPrivKeyEd25519()
	payload := []byte("pay for the lamp")
	tx := NewStdTx(payload)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(buyer, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	first, err := SignTx(buyer, tx, chainID, 0)
	require.NoError(t, err)
	assert.Equal(t, first, sign(0), "signing must be deterministic")

	_, err = VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "a new signer starts at zero")
	_, err = VerifySignature(db, new(StdSignature), payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	for seq := int64(0); seq < 2; seq++ {
		cond, err := VerifySignature(db, sign(seq), payload, chainID)
		require.NoError(t, err)
		assert.Equal(t, buyer.PublicKey().Condition(), cond)
	}

	_, err = VerifySignature(db, sign(1), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "replay")
	_, err = VerifySignature(db, sign(9), payload, chainID)
	assert.True(t, ErrInvalidSequence.Is(err), "gap")
	_, err = VerifySignature(db, sign(2), payload, "bazaar-other")
	assert.True(t, errors.ErrUnauthorized.Is(err), "another chain")
	_, err = VerifySignature(db, sign(2), []byte("pay for the vase"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "another payload")

	seq, err := NextNonce(db, buyer.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
	seq, err = NextNonce(db, crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "bazaar-multi"
	db := store.MemStore()
	seller := crypto.GenPrivKeyEd25519()
	buyer := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("escrow/deny"))

	sig := func(k *crypto.PrivateKey, signed *StdTx, seq int64) *StdSignature {
		s, err := SignTx(k, signed, chainID, seq)
		require.NoError(t, err)
		return s
	}

	conds, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Empty(t, conds)

	tx.Signatures = []*StdSignature{sig(seller, NewStdTx([]byte("escrow/accept")), 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err), "signature of another transaction")

	tx.Signatures = []*StdSignature{sig(seller, tx, 0)}
	conds, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []bazaar.Condition{seller.PublicKey().Condition()}, conds)

	// The seller sequence already moved to one.
	tx.Signatures = []*StdSignature{sig(seller, tx, 0), sig(buyer, tx, 0)}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	tx.Signatures = []*StdSignature{sig(seller, tx, 1), sig(buyer, tx, 0)}
	conds, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []bazaar.Condition{seller.PublicKey().Condition(), buyer.PublicKey().Condition()}, conds)
}

func TestStdSignatureSerialization(t *testing.T) {
	sig, err := SignTx(crypto.GenPrivKeyEd25519(), NewStdTx([]byte("data")), "bazaar-serial", 7)
	require.NoError(t, err)
	raw, err := sig.Marshal()
	require.NoError(t, err)
	var got StdSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, *sig, got)
}
