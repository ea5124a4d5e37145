package escrow

import (
	"context"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyEscrow contextKey = iota
)

// withEscrow is a private method, as only this module can act on behalf of
// an escrow.
func withEscrow(ctx bazaar.Context, cond *bazaar.SeedCondition) bazaar.Context {
	return context.WithValue(ctx, contextKeyEscrow, cond)
}

// Authenticate exposes the escrow acting in the current context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the escrow condition previously set on this
// context.
func (a Authenticate) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyEscrow).(*bazaar.SeedCondition)
	if val == nil {
		return nil
	}
	return []bazaar.Condition{val}
}

// HasAddress returns true iff this address is in GetConditions.
func (a Authenticate) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
