package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
	"github.com/iov-one/bazaar/store/iavl"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/escrow"
	"github.com/iov-one/bazaar/x/product"
	"github.com/iov-one/bazaar/x/rent"
	"github.com/iov-one/bazaar/x/sigs"
	"github.com/iov-one/bazaar/x/token"
	"github.com/iov-one/bazaar/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication used by all extensions. Public
// key signatures come first, so the main signer is always a key holder. An
// escrow is recognised while it releases its vault.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, escrow.Authenticate{})
}

// Chain returns the chain of decorators every transaction passes through.
// Metrics can be nil.
func Chain(metrics *utils.Metrics) Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// On CheckTx, bad transactions don't affect the state.
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// On DeliverTx, a failed message still increments the nonce.
		utils.NewSavepoint().OnDeliver(),
	)
}

// Routes returns a router with handlers of all extensions registered.
func Routes(auth x.Authenticator) *Router {
	bank := cash.NewController()
	rents := rent.NewController(bank)
	tokens := token.NewController(rents)

	r := NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	token.RegisterRoutes(r, auth, tokens)
	product.RegisterRoutes(r, auth, tokens, rents)
	escrow.RegisterRoutes(r, auth, tokens, rents)
	return r
}

// Stack wires the router with the decorator chain.
func Stack(metrics *utils.Metrics) bazaar.Handler {
	auth := Authenticator()
	return Chain(metrics).WithHandler(Routes(auth))
}

// AllMessages returns a registry of every message the router handles.
func AllMessages() Messages {
	return NewMessages(
		func() bazaar.Msg { return &cash.SendMsg{} },
		func() bazaar.Msg { return &token.CreateMintMsg{} },
		func() bazaar.Msg { return &token.MintToMsg{} },
		func() bazaar.Msg { return &token.OpenAccountMsg{} },
		func() bazaar.Msg { return &token.TransferMsg{} },
		func() bazaar.Msg { return &token.CloseAccountMsg{} },
		func() bazaar.Msg { return &product.InitProductMsg{} },
		func() bazaar.Msg { return &escrow.PayMsg{} },
		func() bazaar.Msg { return &escrow.AcceptMsg{} },
		func() bazaar.Msg { return &escrow.DenyMsg{} },
		func() bazaar.Msg { return &escrow.RecoverMsg{} },
	)
}

// Initializers returns the genesis initializers of all extensions. The rent
// configuration goes first, because other extensions pay storage deposits
// of their genesis records.
func Initializers() bazaar.Initializer {
	confs := gconf.NewInitializer().
		Register(rent.PackageName, func() gconf.Configuration { return rent.DefaultConfiguration() })
	return bazaar.ChainInitializers(
		confs,
		cash.Initializer{},
		token.Initializer{},
	)
}

// Application constructs a ledger with all extensions. Data is kept in
// memory if dbPath is empty. Metrics are registered with reg unless it is
// nil.
func Application(name, dbPath string, reg prometheus.Registerer, logger log.Logger) (*Ledger, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	var metrics *utils.Metrics
	if reg != nil {
		if metrics, err = utils.NewMetrics(reg); err != nil {
			return nil, err
		}
	}
	return NewLedger(name, kv, AllMessages().TxDecoder(), Stack(metrics), Initializers(), logger)
}

// CommitKVStore returns an initialized store that persists the data to the
// named path. If the path is empty, data is kept in memory.
func CommitKVStore(dbPath string) (bazaar.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is removed.
	path = strings.TrimSuffix(path, filepath.Ext(path))

	kv, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return kv, nil
}
