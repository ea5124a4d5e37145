package rent

import (
	"math/bits"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/cash"
)

// MinimumBalance returns the amount of lamports a record of given size must
// hold to be exempt from rent.
func MinimumBalance(conf *Configuration, size uint64) (uint64, error) {
	total := conf.AccountOverhead + size
	if total < size {
		return 0, errors.Wrap(errors.ErrOverflow, "record size")
	}
	hi, perByte := bits.Mul64(conf.LamportsPerByteYear, conf.ExemptionYears)
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "yearly rent")
	}
	hi, amount := bits.Mul64(total, perByte)
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "deposit")
	}
	return amount, nil
}

// Controller collects and returns storage deposits.
type Controller interface {
	// MinimumBalance returns the deposit required for a record of given
	// size, using the current configuration.
	MinimumBalance(db bazaar.ReadOnlyKVStore, size uint64) (uint64, error)

	// Allocate tops up the wallet at addr so that it holds the deposit of
	// a record of given size. The missing lamports are paid by payer. It
	// returns the amount paid.
	Allocate(db bazaar.KVStore, payer, addr bazaar.Address, size uint64) (uint64, error)

	// Reclaim moves the whole deposit held at addr to dest and returns
	// the amount moved.
	Reclaim(db bazaar.KVStore, addr, dest bazaar.Address) (uint64, error)
}

// BaseController is the default Controller, keeping deposits as cash.
type BaseController struct {
	cash cash.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller moving deposits with given cash
// controller.
func NewController(c cash.Controller) BaseController {
	return BaseController{cash: c}
}

func (c BaseController) MinimumBalance(db bazaar.ReadOnlyKVStore, size uint64) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return MinimumBalance(conf, size)
}

func (c BaseController) Allocate(db bazaar.KVStore, payer, addr bazaar.Address, size uint64) (uint64, error) {
	required, err := c.MinimumBalance(db, size)
	if err != nil {
		return 0, err
	}
	held, err := c.cash.Balance(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "deposit balance")
	}
	if held >= required {
		return 0, nil
	}
	missing := required - held
	if err := c.cash.MoveCoins(db, payer, addr, missing); err != nil {
		return 0, errors.Wrapf(err, "rent deposit of %d lamports", missing)
	}
	return missing, nil
}

func (c BaseController) Reclaim(db bazaar.KVStore, addr, dest bazaar.Address) (uint64, error) {
	amount, err := c.cash.Drain(db, addr, dest)
	if err != nil {
		return 0, errors.Wrap(err, "reclaim deposit")
	}
	return amount, nil
}
