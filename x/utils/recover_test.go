package utils

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	tx := &bazaartest.Tx{Msg: &bazaartest.Msg{RoutePath: "escrow/accept"}}
	r := NewRecovery()

	_, err := r.Check(ctx, db, tx, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "check panic")

	_, err = r.Deliver(ctx, db, nil, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err))

	// Without a panic the result passes through.
	h := &bazaartest.Handler{}
	_, err = r.Deliver(ctx, db, tx, h)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.CallCount())
}

type panicHandler struct{}

var _ bazaar.Handler = panicHandler{}

func (panicHandler) Check(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(bazaar.Context, bazaar.KVStore, bazaar.Tx) (*bazaar.DeliverResult, error) {
	panic("deliver panic")
}
