package bazaartest

import "github.com/iov-one/bazaar"

// Decorator counts its calls and passes them to the next handler, unless
// CheckErr or DeliverErr is set. In that case the error is returned and the
// next handler is not called.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checks, delivers int
}

var _ bazaar.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return &bazaar.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return &bazaar.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checks }
func (d *Decorator) DeliverCallCount() int { return d.delivers }
func (d *Decorator) CallCount() int        { return d.checks + d.delivers }

// Decorate returns a handler that runs h behind d.
func Decorate(h bazaar.Handler, d bazaar.Decorator) bazaar.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   bazaar.Handler
	decorator bazaar.Decorator
}

func (d decorated) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
