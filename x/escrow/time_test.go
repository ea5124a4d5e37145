package escrow

import (
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
)

func TestTimeWindows(t *testing.T) {
	e := &Escrow{ExpireTime: 1000}

	cases := map[string]struct {
		now         bazaar.UnixTime
		wantSeller  *errors.Error
		wantRecover *errors.Error
	}{
		"long before":     {now: 1, wantRecover: ErrCannotRecoverYet},
		"a second before": {now: 999, wantRecover: ErrCannotRecoverYet},
		"at expiration":   {now: 1000},
		"a second after":  {now: 1001, wantSeller: ErrTimeExpired},
		"long after":      {now: 1 << 40, wantSeller: ErrTimeExpired},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.IsErr(t, tc.wantSeller, checkSellerWindow(tc.now, e))
			assert.IsErr(t, tc.wantRecover, checkRecoveryWindow(tc.now, e))
		})
	}
}
