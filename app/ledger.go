package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Ledger processes transactions against a committed store. Transactions are
// executed one at a time: every call acquires the ledger lock, so all
// operations are serialized. Check runs against the check cache and Deliver
// against the deliver cache, both discarded or flushed by Commit.
type Ledger struct {
	mu sync.Mutex

	name    string
	logger  log.Logger
	store   *CommitStore
	decoder bazaar.TxDecoder
	handler bazaar.Handler
	init    bazaar.Initializer
	debug   bool

	// chainID is loaded from the store, saved once by InitChain.
	chainID string

	// base context is valid for the lifetime of the ledger, block
	// context is reset by BeginBlock.
	base  bazaar.Context
	block bazaar.Context
}

// NewLedger returns a ledger using the latest version of given store.
func NewLedger(
	name string,
	kv bazaar.CommitKVStore,
	decoder bazaar.TxDecoder,
	handler bazaar.Handler,
	init bazaar.Initializer,
	logger log.Logger,
) (*Ledger, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	store, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		name:    name,
		logger:  logger,
		store:   store,
		decoder: decoder,
		handler: handler,
		init:    init,
		base:    bazaar.WithLogger(context.Background(), logger),
	}

	l.chainID, err = loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	if l.chainID != "" {
		l.base = bazaar.WithChainID(l.base, l.chainID)
	}
	info, err := store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	l.block = bazaar.WithHeight(l.base, info.Version)
	return l, nil
}

// WithDebug makes the ledger return full error messages instead of the
// redacted ones.
func (l *Ledger) WithDebug() *Ledger {
	l.debug = true
	return l
}

// ChainID returns the chain id set by InitChain, or an empty string.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// InitChain stores the chain id and initializes all extensions from the
// genesis. It can be called only once in the lifetime of a chain.
func (l *Ledger) InitChain(gen *Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized for chain %q", l.chainID)
	}
	if err := gen.Validate(); err != nil {
		return err
	}

	db := l.store.DeliverStore().CacheWrap()
	if err := saveChainID(db, gen.ChainID); err != nil {
		db.Discard()
		return err
	}
	if err := l.init.FromGenesis(gen.AppState, db); err != nil {
		db.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := db.Write(); err != nil {
		return errors.Wrap(err, "genesis")
	}

	l.chainID = gen.ChainID
	l.base = bazaar.WithChainID(l.base, l.chainID)
	l.block = bazaar.WithChainID(l.block, l.chainID)
	l.logger.Info("chain initialized", "chain_id", l.chainID)
	return nil
}

// BeginBlock sets the height and the block time used by all transactions
// processed until the next call.
func (l *Ledger) BeginBlock(header abci.Header) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx := bazaar.WithHeader(l.base, header)
	ctx = bazaar.WithHeight(ctx, header.Height)
	ctx = bazaar.WithBlockTime(ctx, header.Time)
	l.block = ctx
}

// CheckTx validates a transaction without modifying the deliver state.
func (l *Ledger) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.loadTx(txBytes)
	if err != nil {
		return bazaar.CheckTxError(err, l.debug)
	}
	ctx := bazaar.WithLogInfo(l.block, "call", "check_tx", "path", bazaar.GetPath(tx))
	res, err := l.handler.Check(ctx, l.store.CheckStore(), tx)
	return bazaar.CheckOrError(res, err, l.debug)
}

// DeliverTx executes a transaction against the deliver state.
func (l *Ledger) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.loadTx(txBytes)
	if err != nil {
		return bazaar.DeliverTxError(err, l.debug)
	}
	ctx := bazaar.WithLogInfo(l.block, "call", "deliver_tx", "path", bazaar.GetPath(tx))
	res, err := l.handler.Deliver(ctx, l.store.DeliverStore(), tx)
	return bazaar.DeliverOrError(res, err, l.debug)
}

// loadTx calls the decoder, and captures any panics.
func (l *Ledger) loadTx(txBytes []byte) (tx bazaar.Tx, err error) {
	defer errors.Recover(&err)
	return l.decoder(txBytes)
}

// Commit persists the state of all delivered transactions.
func (l *Ledger) Commit() (bazaar.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	l.logger.Debug("commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// Info returns the name of the ledger and its last committed version.
func (l *Ledger) Info() (string, bazaar.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.CommitInfo()
	return l.name, id, err
}

// Query runs fn against the committed state.
func (l *Ledger) Query(fn func(db bazaar.ReadOnlyKVStore) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	db := l.store.committed.CacheWrap()
	defer db.Discard()
	return fn(db)
}
