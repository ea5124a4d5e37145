package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	const chainID = "bazaar-decorator"
	ctx := bazaar.WithChainID(context.Background(), chainID)
	buyer := crypto.GenPrivKeyEd25519()
	want := []bazaar.Condition{buyer.PublicKey().Condition()}

	tx := NewStdTx([]byte("escrow/recover"))
	sig := func(seq int64) *StdSignature {
		s, err := SignTx(buyer, tx, chainID, seq)
		require.NoError(t, err)
		return s
	}

	// Check runs over a discarded cache, deliver writes the sequence.
	runs := map[string]struct {
		run    func(bazaar.CacheableKVStore, bazaar.Decorator, *recordSigners) error
		replay bool
	}{
		"check": {
			run: func(db bazaar.CacheableKVStore, d bazaar.Decorator, h *recordSigners) error {
				_, err := d.Check(ctx, db.CacheWrap(), tx, h)
				return err
			},
			replay: true,
		},
		"deliver": {
			run: func(db bazaar.CacheableKVStore, d bazaar.Decorator, h *recordSigners) error {
				_, err := d.Deliver(ctx, db, tx, h)
				return err
			},
		},
	}

	for name, tc := range runs {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			strict, lax := NewDecorator(), NewDecorator().AllowMissingSigs()
			var h recordSigners

			tx.Signatures = nil
			assert.True(t, errors.ErrUnauthorized.Is(tc.run(db, strict, &h)))
			assert.Equal(t, 0, h.calls)
			require.NoError(t, tc.run(db, lax, &h))
			assert.Empty(t, h.signers)

			tx.Signatures = []*StdSignature{sig(0)}
			require.NoError(t, tc.run(db, strict, &h))
			assert.Equal(t, want, h.signers)

			err := tc.run(db, strict, &h)
			if tc.replay {
				assert.NoError(t, err)
			} else {
				assert.True(t, ErrInvalidSequence.Is(err))
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	a := crypto.GenPrivKeyEd25519().PublicKey().Condition()
	b := crypto.GenPrivKeyEd25519().PublicKey().Condition()

	ctx := context.Background()
	assert.Empty(t, Authenticate{}.GetConditions(ctx))
	assert.False(t, Authenticate{}.HasAddress(ctx, a.Address()))

	ctx = withSigners(ctx, []bazaar.Condition{a})
	assert.True(t, Authenticate{}.HasAddress(ctx, a.Address()))
	assert.False(t, Authenticate{}.HasAddress(ctx, b.Address()))
}

// recordSigners keeps the signers seen by its last call.
type recordSigners struct {
	calls   int
	signers []bazaar.Condition
}

func (r *recordSigners) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	r.calls++
	r.signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.CheckResult{}, nil
}

func (r *recordSigners) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	r.calls++
	r.signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.DeliverResult{}, nil
}
