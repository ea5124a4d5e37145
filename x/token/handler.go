package token

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(CreateMintMsg{}.Path(), &createMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(MintToMsg{}.Path(), &mintToHandler{auth: auth, ctrl: ctrl})
	r.Handle(OpenAccountMsg{}.Path(), &openAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(TransferMsg{}.Path(), &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(CloseAccountMsg{}.Path(), &closeAccountHandler{auth: auth, ctrl: ctrl})
}

type createMintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = (*createMintHandler)(nil)

func (h *createMintHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{Data: msg.Mint}, nil
}

func (h *createMintHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CreateMint(db, msg.Payer, msg.Mint, msg.Authority, uint8(msg.Decimals)); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: msg.Mint}, nil
}

func (h *createMintHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !x.HasAllAddresses(ctx, h.auth, []bazaar.Address{msg.Mint, msg.Payer}) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint and payer must sign")
	}
	return &msg, nil
}

type mintToHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = (*mintToHandler)(nil)

func (h *mintToHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h *mintToHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MintTo(ctx, db, h.auth, msg.Mint, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

// validate requires the mint authority signature.
func (h *mintToHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	mint, err := h.ctrl.Mint(db, msg.Mint)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	return &msg, nil
}

type openAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = (*openAccountHandler)(nil)

func (h *openAccountHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{Data: msg.Account}, nil
}

func (h *openAccountHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.OpenAccount(db, msg.Payer, msg.Account, msg.Owner, msg.Mint); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{Data: msg.Account}, nil
}

func (h *openAccountHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*OpenAccountMsg, error) {
	var msg OpenAccountMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !x.HasAllAddresses(ctx, h.auth, []bazaar.Address{msg.Account, msg.Payer}) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account and payer must sign")
	}
	if _, err := h.ctrl.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	return &msg, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, h.auth, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth, h.ctrl, msg.Source); err != nil {
		return nil, errors.Wrap(err, "source")
	}
	return &msg, nil
}

type closeAccountHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ bazaar.Handler = (*closeAccountHandler)(nil)

func (h *closeAccountHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h *closeAccountHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CloseAccount(ctx, db, h.auth, msg.Account, msg.RentDestination); err != nil {
		return nil, err
	}
	return &bazaar.DeliverResult{}, nil
}

func (h *closeAccountHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*CloseAccountMsg, error) {
	var msg CloseAccountMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth, h.ctrl, msg.Account); err != nil {
		return nil, err
	}
	return &msg, nil
}

// requireOwner fails unless the owner of the holding account at addr is
// authenticated.
func requireOwner(ctx bazaar.Context, db bazaar.ReadOnlyKVStore, auth x.Authenticator, ctrl Controller, addr bazaar.Address) error {
	acc, err := ctrl.Account(db, addr)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s of %s", acc.Owner, addr)
	}
	return nil
}
