package token

import (
	"math"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/rent"
)

const optKey = "token"

// Genesis is the content of the genesis file under the "token" key.
type Genesis struct {
	Mints []struct {
		Address   bazaar.Address `json:"address"`
		Authority bazaar.Address `json:"authority"`
		Decimals  uint8          `json:"decimals"`
	} `json:"mints"`
	Accounts []struct {
		Address bazaar.Address `json:"address"`
		Owner   bazaar.Address `json:"owner"`
		Mint    bazaar.Address `json:"mint"`
		Amount  uint64         `json:"amount"`
	} `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file. Storage deposits of genesis records are issued as new
// lamports, so the rent configuration must be initialized first.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis stores all mints and holding accounts declared in genesis.
func (Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	bank := cash.NewController()
	rents := rent.NewController(bank)
	deposit := func(addr bazaar.Address, size uint64) error {
		amount, err := rents.MinimumBalance(db, size)
		if err != nil {
			return err
		}
		return bank.IssueCoins(db, addr, amount)
	}

	mints := NewMintBucket()
	for i, m := range gen.Mints {
		if err := m.Address.Validate(); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
		mint := &Mint{Authority: m.Authority, Decimals: m.Decimals}
		if err := mints.Create(db, m.Address, mint); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
		if err := deposit(m.Address, MintRentSize); err != nil {
			return errors.Wrapf(err, "mint %d", i)
		}
	}

	accounts := NewAccountBucket()
	for i, a := range gen.Accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		var mint Mint
		if err := mints.One(db, a.Mint, &mint); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if math.MaxUint64-mint.Supply < a.Amount {
			return errors.Wrapf(errors.ErrOverflow, "account %d", i)
		}
		mint.Supply += a.Amount
		if err := mints.Put(db, a.Mint, &mint); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		acc := &Account{Mint: a.Mint, Owner: a.Owner, Amount: a.Amount}
		if err := accounts.Create(db, a.Address, acc); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := deposit(a.Address, AccountRentSize); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
