package cash

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

func TestSendHandler(t *testing.T) {
	alice := bazaartest.NewCondition()
	bob := bazaartest.NewCondition()

	cases := map[string]struct {
		signer   bazaar.Condition
		msg      *SendMsg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantFrom       uint64
		wantTo         uint64
	}{
		"success": {
			signer:   alice,
			msg:      &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 300},
			wantFrom: 700,
			wantTo:   300,
		},
		"not signed by the source": {
			signer:   bob,
			msg:      &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 300},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantFrom:       1000,
		},
		"insufficient funds": {
			signer:         alice,
			msg:            &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 3000},
			wantDeliverErr: errors.ErrAmount,
			wantFrom:       1000,
		},
		"zero amount is invalid": {
			signer:   alice,
			msg:            &SendMsg{Source: alice.Address(), Destination: bob.Address()},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
			wantFrom:       1000,
		},
		"invalid destination": {
			signer:   alice,
			msg:            &SendMsg{Source: alice.Address(), Destination: bazaar.Address{1, 2}, Amount: 1},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
			wantFrom:       1000,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), 1000))

			h := NewSendHandler(&bazaartest.Auth{Signer: tc.signer}, ctrl)
			tx := &bazaartest.Tx{Msg: tc.msg}
			ctx := context.Background()

			_, err := h.Check(ctx, db, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)

			from, err := ctrl.Balance(db, alice.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantFrom, from)
			to, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantTo, to)
		})
	}
}

func TestSendMsgSerialization(t *testing.T) {
	msg := &SendMsg{
		Source:      bazaartest.NewCondition().Address(),
		Destination: bazaartest.NewCondition().Address(),
		Amount:      12,
		Memo:        "for lunch",
	}
	bz, err := msg.Marshal()
	assert.Nil(t, err)
	var got SendMsg
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, *msg, got)
}
