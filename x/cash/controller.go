package cash

import (
	"math"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Controller is the functionality needed by the other extensions to move
// native balance around. Authorization is the responsibility of the
// caller.
type Controller interface {
	// Balance returns the lamports held by given address.
	Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (uint64, error)

	// MoveCoins moves amount of lamports from src to dest. It fails with
	// ErrAmount if src does not hold enough.
	MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount uint64) error

	// IssueCoins creates new lamports at dest.
	IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount uint64) error

	// Drain moves the whole balance of src to dest and returns the amount
	// moved.
	Drain(db bazaar.KVStore, src, dest bazaar.Address) (uint64, error)
}

// BaseController is the default Controller, backed by the cash bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (uint64, error) {
	w, err := loadWallet(db, c.bucket, addr)
	if err != nil {
		return 0, err
	}
	return w.Lamports, nil
}

func (c BaseController) MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	sender, err := loadWallet(db, c.bucket, src)
	if err != nil {
		return err
	}
	if sender.Lamports < amount {
		return errors.Wrapf(errors.ErrAmount, "%s holds %d lamports, %d required", src, sender.Lamports, amount)
	}
	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	if math.MaxUint64-recipient.Lamports < amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Lamports -= amount
	recipient.Lamports += amount
	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

func (c BaseController) IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount uint64) error {
	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	if math.MaxUint64-recipient.Lamports < amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	recipient.Lamports += amount
	return c.save(db, dest, recipient)
}

func (c BaseController) Drain(db bazaar.KVStore, src, dest bazaar.Address) (uint64, error) {
	amount, err := c.Balance(db, src)
	if err != nil {
		return 0, err
	}
	if err := c.MoveCoins(db, src, dest, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// save stores the wallet, or removes it if it is empty.
func (c BaseController) save(db bazaar.KVStore, addr bazaar.Address, w *Wallet) error {
	if w.Lamports == 0 {
		err := c.bucket.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return c.bucket.Put(db, addr, w)
}
