package x

import (
	"context"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
)

func TestAuthenticators(t *testing.T) {
	seller := bazaartest.NewCondition()
	buyer := bazaartest.NewCondition()
	stranger := bazaartest.NewCondition()

	sigs := &bazaartest.CtxAuth{Key: "sigs"}
	other := &bazaartest.CtxAuth{Key: "other"}
	signed := sigs.SetConditions(context.Background(), seller, buyer)

	cases := map[string]struct {
		ctx    bazaar.Context
		auth   Authenticator
		main   bazaar.Condition
		all    []bazaar.Condition
		absent bazaar.Condition
	}{
		"nothing signed": {
			ctx:    context.Background(),
			auth:   &bazaartest.Auth{},
			absent: seller,
		},
		"single signer": {
			ctx:    context.Background(),
			auth:   &bazaartest.Auth{Signer: buyer},
			main:   buyer,
			all:    []bazaar.Condition{buyer},
			absent: seller,
		},
		"chain keeps the order": {
			ctx:    context.Background(),
			auth:   ChainAuth(&bazaartest.Auth{Signer: seller}, &bazaartest.Auth{}, &bazaartest.Auth{Signer: buyer}),
			main:   seller,
			all:    []bazaar.Condition{seller, buyer},
			absent: stranger,
		},
		"context conditions": {
			ctx:    signed,
			auth:   sigs,
			main:   seller,
			all:    []bazaar.Condition{seller, buyer},
			absent: stranger,
		},
		"context conditions under another key": {
			ctx:    signed,
			auth:   other,
			absent: seller,
		},
		"chain over context": {
			ctx:    signed,
			auth:   ChainAuth(other, sigs),
			main:   seller,
			all:    []bazaar.Condition{seller, buyer},
			absent: stranger,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.main, MainSigner(tc.ctx, tc.auth))
			assert.Equal(t, tc.all, tc.auth.GetConditions(tc.ctx))

			addrs := make([]bazaar.Address, len(tc.all))
			for i, c := range tc.all {
				addrs[i] = c.Address()
				if !tc.auth.HasAddress(tc.ctx, c.Address()) {
					t.Fatalf("%s not authorized", c.Address())
				}
			}
			if tc.auth.HasAddress(tc.ctx, tc.absent.Address()) {
				t.Fatalf("%s must not be authorized", tc.absent.Address())
			}
			if !HasAllAddresses(tc.ctx, tc.auth, addrs) {
				t.Fatal("all signers must be authorized together")
			}
			if HasAllAddresses(tc.ctx, tc.auth, append(addrs, tc.absent.Address())) {
				t.Fatal("an unsigned address must fail the group")
			}
		})
	}
}

func TestRequireSigner(t *testing.T) {
	_, err := RequireSigner(context.Background(), &bazaartest.Auth{})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	buyer := bazaartest.NewCondition()
	addr, err := RequireSigner(context.Background(), &bazaartest.Auth{Signer: buyer, Signers: []bazaar.Condition{bazaartest.NewCondition()}})
	assert.Nil(t, err)
	assert.Equal(t, buyer.Address(), addr)
}
