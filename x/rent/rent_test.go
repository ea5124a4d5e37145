package rent

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/store"
	"github.com/iov-one/bazaar/x/cash"
)

func TestMinimumBalance(t *testing.T) {
	cases := map[string]struct {
		conf    *Configuration
		size    uint64
		want    uint64
		wantErr *errors.Error
	}{
		"token account": {
			conf: DefaultConfiguration(),
			size: 165,
			want: 2039280,
		},
		"empty record pays the overhead": {
			conf: DefaultConfiguration(),
			size: 0,
			want: 890880,
		},
		"free storage": {
			conf: &Configuration{ExemptionYears: 2, AccountOverhead: 128},
			size: 100,
			want: 0,
		},
		"size overflow": {
			conf:    DefaultConfiguration(),
			size:    math.MaxUint64,
			wantErr: errors.ErrOverflow,
		},
		"rate overflow": {
			conf:    &Configuration{LamportsPerByteYear: math.MaxUint64, ExemptionYears: 2},
			size:    1,
			wantErr: errors.ErrOverflow,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := MinimumBalance(tc.conf, tc.size)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAllocateAndReclaim(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, PackageName, DefaultConfiguration()))

	bank := cash.NewController()
	ctrl := NewController(bank)
	payer := bazaartest.NewCondition().Address()
	record := bazaartest.NewCondition().Address()

	deposit, err := ctrl.MinimumBalance(db, 97)
	assert.Nil(t, err)

	_, err = ctrl.Allocate(db, payer, record, 97)
	assert.IsErr(t, errors.ErrAmount, err)

	assert.Nil(t, bank.IssueCoins(db, payer, deposit+10))
	paid, err := ctrl.Allocate(db, payer, record, 97)
	assert.Nil(t, err)
	assert.Equal(t, deposit, paid)
	assertBalance(t, bank, db, payer, 10)
	assertBalance(t, bank, db, record, deposit)

	// Already funded record costs nothing.
	paid, err = ctrl.Allocate(db, payer, record, 97)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), paid)

	back, err := ctrl.Reclaim(db, record, payer)
	assert.Nil(t, err)
	assert.Equal(t, deposit, back)
	assertBalance(t, bank, db, payer, deposit+10)
	assertBalance(t, bank, db, record, 0)
}

func TestPrefundedAllocation(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, PackageName, DefaultConfiguration()))

	bank := cash.NewController()
	ctrl := NewController(bank)
	payer := bazaartest.NewCondition().Address()
	record := bazaartest.NewCondition().Address()

	deposit, err := ctrl.MinimumBalance(db, 10)
	assert.Nil(t, err)
	assert.Nil(t, bank.IssueCoins(db, record, 100))
	assert.Nil(t, bank.IssueCoins(db, payer, deposit))

	paid, err := ctrl.Allocate(db, payer, record, 10)
	assert.Nil(t, err)
	assert.Equal(t, deposit-100, paid)
	assertBalance(t, bank, db, payer, 100)
}

func TestMissingConfiguration(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(cash.NewController())
	_, err := ctrl.MinimumBalance(db, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestGenesisConfiguration(t *testing.T) {
	db := store.MemStore()
	initializer := gconf.NewInitializer().
		Register(PackageName, func() gconf.Configuration { return DefaultConfiguration() })

	opts := bazaar.Options{
		"conf": json.RawMessage(`{"rent": {"lamports_per_byte_year": 10}}`),
	}
	assert.Nil(t, initializer.FromGenesis(opts, db))

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, &Configuration{LamportsPerByteYear: 10, ExemptionYears: 2, AccountOverhead: 128}, conf)

	opts = bazaar.Options{
		"conf": json.RawMessage(`{"rent": {"exemption_years": 0}}`),
	}
	assert.IsErr(t, errors.ErrInput, initializer.FromGenesis(opts, store.MemStore()))
}

func assertBalance(t testing.TB, bank cash.Controller, db bazaar.ReadOnlyKVStore, addr bazaar.Address, want uint64) {
	t.Helper()
	got, err := bank.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
}
