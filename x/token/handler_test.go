package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/rent"
)

type router map[string]bazaar.Handler

func (r router) Handle(path string, h bazaar.Handler) {
	r[path] = h
}

func TestHandlers(t *testing.T) {
	db := store.MemStore()
	ctrl, bank := newController(db)
	ctx := context.Background()

	payer := bazaartest.NewCondition()
	authority := bazaartest.NewCondition()
	mint := bazaartest.NewCondition()
	alice := bazaartest.NewCondition()
	aliceAcc := bazaartest.NewCondition()
	bobAcc := bazaartest.NewCondition()
	assert.Nil(t, bank.IssueCoins(db, payer.Address(), 100000000))

	auth := &bazaartest.CtxAuth{Key: "auth"}
	r := make(router)
	RegisterRoutes(r, auth, ctrl)

	steps := []struct {
		name    string
		signers []bazaar.Condition
		msg     bazaar.Msg
		wantErr *errors.Error
	}{
		{
			name:    "mint address must sign",
			signers: []bazaar.Condition{payer},
			msg:     &CreateMintMsg{Mint: mint.Address(), Authority: authority.Address(), Payer: payer.Address(), Decimals: 2},
			wantErr: errors.ErrUnauthorized,
		},
		{
			name:    "too many decimals",
			signers: []bazaar.Condition{payer, mint},
			msg:     &CreateMintMsg{Mint: mint.Address(), Authority: authority.Address(), Payer: payer.Address(), Decimals: 19},
			wantErr: errors.ErrInput,
		},
		{
			name:    "create mint",
			signers: []bazaar.Condition{payer, mint},
			msg:     &CreateMintMsg{Mint: mint.Address(), Authority: authority.Address(), Payer: payer.Address(), Decimals: 2},
		},
		{
			name:    "open account",
			signers: []bazaar.Condition{payer, aliceAcc},
			msg:     &OpenAccountMsg{Account: aliceAcc.Address(), Owner: alice.Address(), Mint: mint.Address(), Payer: payer.Address()},
		},
		{
			name:    "open account of unknown mint",
			signers: []bazaar.Condition{payer, bobAcc},
			msg:     &OpenAccountMsg{Account: bobAcc.Address(), Owner: alice.Address(), Mint: alice.Address(), Payer: payer.Address()},
			wantErr: errors.ErrNotFound,
		},
		{
			name:    "open second account",
			signers: []bazaar.Condition{payer, bobAcc},
			msg:     &OpenAccountMsg{Account: bobAcc.Address(), Owner: alice.Address(), Mint: mint.Address(), Payer: payer.Address()},
		},
		{
			name:    "mint tokens",
			signers: []bazaar.Condition{authority},
			msg:     &MintToMsg{Mint: mint.Address(), Destination: aliceAcc.Address(), Amount: 1000},
		},
		{
			name:    "transfer without owner signature",
			signers: []bazaar.Condition{payer},
			msg:     &TransferMsg{Source: aliceAcc.Address(), Destination: bobAcc.Address(), Amount: 1000},
			wantErr: errors.ErrUnauthorized,
		},
		{
			name:    "transfer",
			signers: []bazaar.Condition{alice},
			msg:     &TransferMsg{Source: aliceAcc.Address(), Destination: bobAcc.Address(), Amount: 1000},
		},
		{
			name:    "close empty account",
			signers: []bazaar.Condition{alice},
			msg:     &CloseAccountMsg{Account: aliceAcc.Address(), RentDestination: alice.Address()},
		},
	}

	for _, step := range steps {
		h, ok := r[step.msg.Path()]
		if !ok {
			t.Fatalf("%s: no handler for %q", step.name, step.msg.Path())
		}
		sctx := auth.SetConditions(ctx, step.signers...)
		tx := &bazaartest.Tx{Msg: step.msg}

		cache := db.CacheWrap()
		if _, err := h.Check(sctx, cache, tx); err != nil {
			cache.Discard()
			if !step.wantErr.Is(err) {
				t.Fatalf("%s: check: want %v, got %+v", step.name, step.wantErr, err)
			}
			continue
		}
		_, err := h.Deliver(sctx, cache, tx)
		if !step.wantErr.Is(err) {
			t.Fatalf("%s: deliver: want %v, got %+v", step.name, step.wantErr, err)
		}
		if err != nil {
			cache.Discard()
			continue
		}
		assert.Nil(t, cache.Write())
	}

	n, err := ctrl.Balance(db, bobAcc.Address())
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), n)

	deposit, err := rent.MinimumBalance(rent.DefaultConfiguration(), AccountRentSize)
	assert.Nil(t, err)
	lamports, err := bank.Balance(db, alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, deposit, lamports)
}

func TestCheckRequiresAuthority(t *testing.T) {
	db := store.MemStore()
	ctrl, bank := newController(db)
	payer := bazaartest.NewCondition()
	authority := bazaartest.NewCondition()
	owner := bazaartest.NewCondition()
	mint := bazaartest.NewCondition().Address()
	acc := bazaartest.NewCondition().Address()
	other := bazaartest.NewCondition().Address()
	assert.Nil(t, bank.IssueCoins(db, payer.Address(), 100000000))
	assert.Nil(t, ctrl.CreateMint(db, payer.Address(), mint, authority.Address(), 0))
	assert.Nil(t, ctrl.OpenAccount(db, payer.Address(), acc, owner.Address(), mint))
	assert.Nil(t, ctrl.OpenAccount(db, payer.Address(), other, payer.Address(), mint))

	auth := &bazaartest.CtxAuth{Key: "auth"}
	r := make(router)
	RegisterRoutes(r, auth, ctrl)

	cases := map[string]struct {
		msg    bazaar.Msg
		signer bazaar.Condition
	}{
		"mint to": {
			msg:    &MintToMsg{Mint: mint, Destination: acc, Amount: 10},
			signer: authority,
		},
		"transfer": {
			msg:    &TransferMsg{Source: acc, Destination: other, Amount: 0},
			signer: owner,
		},
		"close account": {
			msg:    &CloseAccountMsg{Account: acc, RentDestination: owner.Address()},
			signer: owner,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := r[tc.msg.Path()]
			tx := &bazaartest.Tx{Msg: tc.msg}

			unsigned := auth.SetConditions(context.Background(), payer)
			_, err := h.Check(unsigned, db.CacheWrap(), tx)
			assert.IsErr(t, errors.ErrUnauthorized, err)

			signed := auth.SetConditions(context.Background(), tc.signer)
			_, err = h.Check(signed, db.CacheWrap(), tx)
			assert.Nil(t, err)
		})
	}
}

func TestGenesis(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, rent.PackageName, rent.DefaultConfiguration()))

	mint := bazaartest.NewCondition().Address()
	authority := bazaartest.NewCondition().Address()
	acc := bazaartest.NewCondition().Address()
	owner := bazaartest.NewCondition().Address()

	raw := `{
		"mints": [{"address": "` + mint.String() + `", "authority": "` + authority.String() + `", "decimals": 6}],
		"accounts": [{"address": "` + acc.String() + `", "owner": "` + owner.String() + `", "mint": "` + mint.String() + `", "amount": 500}]
	}`
	opts := bazaar.Options{"token": json.RawMessage(raw)}
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(rent.NewController(cash.NewController()))
	m, err := ctrl.Mint(db, mint)
	assert.Nil(t, err)
	assert.Equal(t, &Mint{Authority: authority, Decimals: 6, Supply: 500}, m)

	a, err := ctrl.Account(db, acc)
	assert.Nil(t, err)
	assert.Equal(t, &Account{Mint: mint, Owner: owner, Amount: 500}, a)

	deposit, err := rent.MinimumBalance(rent.DefaultConfiguration(), AccountRentSize)
	assert.Nil(t, err)
	lamports, err := cash.NewController().Balance(db, acc)
	assert.Nil(t, err)
	assert.Equal(t, deposit, lamports)

	// Accounts of unknown mints are rejected.
	raw = `{"accounts": [{"address": "` + owner.String() + `", "owner": "` + owner.String() + `", "mint": "` + owner.String() + `"}]}`
	opts = bazaar.Options{"token": json.RawMessage(raw)}
	assert.IsErr(t, errors.ErrNotFound, Initializer{}.FromGenesis(opts, db))
}

func TestRecordLayout(t *testing.T) {
	acc := &Account{
		Mint:   bazaartest.NewCondition().Address(),
		Owner:  bazaartest.NewCondition().Address(),
		Amount: 42,
	}
	raw, err := acc.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, AccountSize, len(raw))
	assert.Equal(t, 80, len(raw))

	var got Account
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, *acc, got)

	var m Mint
	assert.IsErr(t, errors.ErrInput, m.Unmarshal(raw))
}
