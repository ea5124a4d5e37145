package utils

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Recovery turns a panic of the rest of the chain into an ErrPanic error,
// logged with the path of the transaction.
type Recovery struct{}

var _ bazaar.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (res *bazaar.CheckResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (res *bazaar.DeliverResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly, as recover only works there.
func recovered(ctx bazaar.Context, tx bazaar.Tx, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		logger := bazaar.GetLogger(ctx)
		if tx != nil {
			logger = logger.With("path", bazaar.GetPath(tx))
		}
		logger.Error("transaction panicked", "panic", r)
	}
}
