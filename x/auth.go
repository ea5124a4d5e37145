package x

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Authenticator tells which conditions are fulfilled by the current
// transaction. Handlers receive one in their constructor, so that the
// signature scheme can be replaced without touching them.
type Authenticator interface {
	// GetConditions returns all fulfilled conditions. The first one
	// belongs to the main signer.
	GetConditions(bazaar.Context) []bazaar.Condition
	// HasAddress returns true if any fulfilled condition has this address.
	HasAddress(bazaar.Context, bazaar.Address) bool
}

// MultiAuth merges the conditions of several authenticators, in order.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator fulfilled by any of impls.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx bazaar.Context) []bazaar.Condition {
	var all []bazaar.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx bazaar.Context, addr bazaar.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx bazaar.Context, auth Authenticator) bazaar.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner returns the address of the main signer, or ErrUnauthorized
// when the transaction is not signed.
func RequireSigner(ctx bazaar.Context, auth Authenticator) (bazaar.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

// HasAllAddresses returns true if every address is authorized.
func HasAllAddresses(ctx bazaar.Context, auth Authenticator, required []bazaar.Address) bool {
	for _, addr := range required {
		if !auth.HasAddress(ctx, addr) {
			return false
		}
	}
	return true
}
