package utils

import (
	"time"

	"github.com/iov-one/bazaar"
)

// Logging writes one log line per transaction with its path, the time
// spent in the stack below and the error, if any. Successful checks are
// logged at debug level, successful deliveries at info and failures at
// error level.
type Logging struct{}

var _ bazaar.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logResult(ctx, tx, time.Since(start), msg, err, false)
	return res, err
}

// logResult emits the entry even when msg is empty.
func logResult(ctx bazaar.Context, tx bazaar.Tx, took time.Duration, msg string, err error, check bool) {
	logger := bazaar.GetLogger(ctx).With("duration", took/time.Microsecond)
	if tx != nil {
		logger = logger.With("path", bazaar.GetPath(tx))
	}
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
