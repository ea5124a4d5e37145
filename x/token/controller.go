package token

import (
	"math"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/rent"
)

// Controller is the custody service used by other extensions. Operations
// moving tokens out of an account require the authenticator to declare the
// account owner.
type Controller interface {
	// CreateMint stores a new mint at addr. The storage deposit is paid
	// by payer.
	CreateMint(db bazaar.KVStore, payer, addr, authority bazaar.Address, decimals uint8) error

	// MintTo issues new tokens into the dest holding account. The mint
	// authority must be authenticated.
	MintTo(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, mint, dest bazaar.Address, amount uint64) error

	// OpenAccount stores a new empty holding account of given mint at
	// addr. The storage deposit is paid by payer.
	OpenAccount(db bazaar.KVStore, payer, addr, owner, mint bazaar.Address) error

	// Transfer moves amount of tokens between two holding accounts of the
	// same mint. The owner of the source account must be authenticated.
	Transfer(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, from, to bazaar.Address, amount uint64) error

	// CloseAccount deletes an empty holding account and returns its
	// storage deposit to rentDest. The owner must be authenticated.
	CloseAccount(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, addr, rentDest bazaar.Address) error

	// Mint returns the mint stored at addr or ErrNotFound.
	Mint(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Mint, error)

	// Account returns the holding account stored at addr or ErrNotFound.
	Account(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Account, error)

	// Balance returns the amount held by the account at addr.
	Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (uint64, error)
}

// BaseController is the default Controller.
type BaseController struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
	rent     rent.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller charging storage deposits with given
// rent controller.
func NewController(r rent.Controller) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		rent:     r,
	}
}

func (c BaseController) CreateMint(db bazaar.KVStore, payer, addr, authority bazaar.Address, decimals uint8) error {
	mint := &Mint{Authority: authority, Decimals: decimals}
	if err := mint.Validate(); err != nil {
		return errors.Wrap(err, "invalid mint")
	}
	if err := c.mints.Create(db, addr, mint); err != nil {
		return errors.Wrapf(err, "mint %s", addr)
	}
	if _, err := c.rent.Allocate(db, payer, addr, MintRentSize); err != nil {
		return err
	}
	return nil
}

func (c BaseController) MintTo(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, mintAddr, dest bazaar.Address, amount uint64) error {
	mint, err := c.Mint(db, mintAddr)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, mint.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	acc, err := c.Account(db, dest)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mintAddr) {
		return errors.Wrapf(errors.ErrInput, "account %s holds %s tokens", dest, acc.Mint)
	}
	if math.MaxUint64-mint.Supply < amount || math.MaxUint64-acc.Amount < amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += amount
	acc.Amount += amount
	if err := c.mints.Put(db, mintAddr, mint); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, acc)
}

func (c BaseController) OpenAccount(db bazaar.KVStore, payer, addr, owner, mint bazaar.Address) error {
	if _, err := c.Mint(db, mint); err != nil {
		return err
	}
	acc := &Account{Mint: mint, Owner: owner}
	if err := acc.Validate(); err != nil {
		return errors.Wrap(err, "invalid account")
	}
	if err := c.accounts.Create(db, addr, acc); err != nil {
		return errors.Wrapf(err, "account %s", addr)
	}
	if _, err := c.rent.Allocate(db, payer, addr, AccountRentSize); err != nil {
		return err
	}
	return nil
}

func (c BaseController) Transfer(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, from, to bazaar.Address, amount uint64) error {
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !auth.HasAddress(ctx, src.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s of %s", src.Owner, from)
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrap(errors.ErrInput, "mint mismatch")
	}
	if amount == 0 || from.Equals(to) {
		return nil
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrAmount, "%s holds %d, %d required", from, src.Amount, amount)
	}
	if math.MaxUint64-dst.Amount < amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, from, src); err != nil {
		return err
	}
	return c.accounts.Put(db, to, dst)
}

func (c BaseController) CloseAccount(ctx bazaar.Context, db bazaar.KVStore, auth x.Authenticator, addr, rentDest bazaar.Address) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s of %s", acc.Owner, addr)
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d tokens", acc.Amount)
	}
	if err := c.accounts.Delete(db, addr); err != nil {
		return err
	}
	if _, err := c.rent.Reclaim(db, addr, rentDest); err != nil {
		return err
	}
	return nil
}

func (c BaseController) Mint(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Mint, error) {
	var mint Mint
	if err := c.mints.One(db, addr, &mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &mint, nil
}

func (c BaseController) Account(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "token account %s", addr)
	}
	return &acc, nil
}

func (c BaseController) Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (uint64, error) {
	acc, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}
