package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// checkSellerWindow returns ErrTimeExpired if the seller can no longer
// accept or deny. The expiration second itself is still in the window.
func checkSellerWindow(now bazaar.UnixTime, e *Escrow) error {
	if now > e.ExpireTime {
		return errors.Wrapf(ErrTimeExpired, "expired at %s", e.ExpireTime)
	}
	return nil
}

// checkRecoveryWindow returns ErrCannotRecoverYet if the buyer cannot
// recover the funds yet. Recovery is allowed from the expiration second on.
func checkRecoveryWindow(now bazaar.UnixTime, e *Escrow) error {
	if now < e.ExpireTime {
		return errors.Wrapf(ErrCannotRecoverYet, "expires at %s", e.ExpireTime)
	}
	return nil
}
