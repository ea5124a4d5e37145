package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/codec"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the native balance of a single address.
type Wallet struct {
	Lamports uint64
}

var _ orm.Model = (*Wallet)(nil)

// Marshal implements bazaar.Persistent.
func (w *Wallet) Marshal() ([]byte, error) {
	return codec.NewEncoder().Uint64(1, w.Lamports).Marshal()
}

// Unmarshal implements bazaar.Persistent.
func (w *Wallet) Unmarshal(bz []byte) error {
	*w = Wallet{}
	return codec.Decode(bz, func(field int, v codec.Value) (err error) {
		if field == 1 {
			w.Lamports, err = v.Uint64()
		}
		return err
	})
}

// Validate implements orm.Model. Any balance is valid.
func (w *Wallet) Validate() error {
	return nil
}

// NewBucket returns a bucket for storing wallets, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

func loadWallet(db bazaar.ReadOnlyKVStore, b orm.ModelBucket, addr bazaar.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}
