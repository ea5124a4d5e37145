package bazaartest

import (
	"context"
	"fmt"

	"github.com/iov-one/bazaar"
)

// Auth authorizes a fixed set of conditions, whatever the context. Signer,
// when set, is the main signer and comes before Signers.
type Auth struct {
	Signer  bazaar.Condition
	Signers []bazaar.Condition
}

func (a *Auth) GetConditions(bazaar.Context) []bazaar.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]bazaar.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authorizes the conditions stored in the context under Key, which
// lets a test sign each transaction differently.
type CtxAuth struct {
	Key string
}

// ctxAuthKey keeps CtxAuth values apart from other context values.
type ctxAuthKey string

// SetConditions returns a context in which conds are authorized.
func (a *CtxAuth) SetConditions(ctx bazaar.Context, conds ...bazaar.Condition) bazaar.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	switch conds := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []bazaar.Condition:
		return conds
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, conds))
	}
}

func (a *CtxAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []bazaar.Condition, addr bazaar.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
