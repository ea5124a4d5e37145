package product

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/rent"
	"github.com/iov-one/bazaar/x/token"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, tokens token.Controller, rents rent.Controller) {
	r.Handle(InitProductMsg{}.Path(), NewInitHandler(auth, tokens, rents))
}

// InitHandler stores new products.
type InitHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rent   rent.Controller
	bucket orm.ModelBucket
}

var _ bazaar.Handler = (*InitHandler)(nil)

// NewInitHandler returns a handler for InitProductMsg.
func NewInitHandler(auth x.Authenticator, tokens token.Controller, rents rent.Controller) *InitHandler {
	return &InitHandler{
		auth:   auth,
		tokens: tokens,
		rent:   rents,
		bucket: NewBucket(),
	}
}

func (h *InitHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	p, addr, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, addr); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "product %X of %s", p.ID, p.Authority)
	}
	return &bazaar.CheckResult{Data: addr}, nil
}

func (h *InitHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	p, addr, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Create(db, addr, p); err != nil {
		return nil, errors.Wrapf(err, "product %X of %s", p.ID, p.Authority)
	}
	if _, err := h.rent.Allocate(db, p.Authority, addr, Size); err != nil {
		return nil, err
	}
	bazaar.GetLogger(ctx).Info("product created",
		"product", addr, "seller", p.Authority, "price", p.Price)
	return &bazaar.DeliverResult{Data: addr}, nil
}

// validate returns the product described by the message together with its
// canonical address.
func (h *InitHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*Product, bazaar.Address, error) {
	var msg InitProductMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	seller, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.tokens.Mint(db, msg.PaymentMint); err != nil {
		return nil, nil, errors.Wrap(err, "payment mint")
	}
	addr, bump, err := Address(seller, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	p := &Product{
		ID:          msg.ID,
		Authority:   seller,
		PaymentMint: msg.PaymentMint,
		Price:       msg.Price,
		Bump:        bump,
	}
	return p, addr, nil
}
