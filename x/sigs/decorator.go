/*
Package sigs authenticates transactions with ed25519 signatures.

Every signature carries the sequence of its signer, stored by this package,
so that a signed transaction cannot be replayed. The decorator puts the
verified signers in the context, where Authenticate exposes them to the
extensions.
*/
package sigs

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Decorator verifies the signatures of a transaction before passing it
// down the chain. By default at least one signature is required.
type Decorator struct {
	allowMissingSigs bool
}

var _ bazaar.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy that lets unsigned transactions through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Checker) (*bazaar.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx, next bazaar.Deliverer) (*bazaar.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (bazaar.Context, error) {
	var signers []bazaar.Condition
	if signed, ok := tx.(SignedTx); ok {
		var err error
		if signers, err = VerifyTxSignatures(db, signed, bazaar.GetChainID(ctx)); err != nil {
			return nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
