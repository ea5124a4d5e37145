package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x"
	"github.com/iov-one/bazaar/x/product"
	"github.com/iov-one/bazaar/x/rent"
	"github.com/iov-one/bazaar/x/token"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r bazaar.Registry, auth x.Authenticator, tokens token.Controller, rents rent.Controller) {
	res := resolver{
		auth:   auth,
		bucket: NewBucket(),
		tokens: tokens,
		rent:   rents,
	}
	r.Handle(pathPay, &PayHandler{resolver: res})
	r.Handle(pathAccept, &SellerHandler{resolver: res})
	r.Handle(pathDeny, &SellerHandler{resolver: res, deny: true})
	r.Handle(pathRecover, &RecoverHandler{resolver: res})
}

// resolver holds the dependencies shared by all escrow handlers.
type resolver struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	tokens token.Controller
	rent   rent.Controller
}

// PayHandler creates an escrow and locks the product price in its vault.
type PayHandler struct {
	resolver
}

var _ bazaar.Handler = (*PayHandler)(nil)

type payment struct {
	msg        *PayMsg
	buyer      bazaar.Address
	product    *product.Product
	escrowAddr bazaar.Address
	escrowBump byte
}

func (h *PayHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	pay, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{Data: pay.escrowAddr}, nil
}

func (h *PayHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	pay, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	escrow := &Escrow{
		Buyer:      pay.buyer,
		Seller:     pay.product.Authority,
		ExpireTime: pay.msg.ExpireTime,
		Bump:       pay.escrowBump,
	}
	vaultAddr, vaultBump, err := openVault(db, h.tokens, pay.msg.Product, pay.buyer, pay.escrowAddr, pay.product.PaymentMint)
	if err != nil {
		return nil, err
	}
	escrow.VaultBump = vaultBump
	if err := h.bucket.Create(db, pay.escrowAddr, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if _, err := h.rent.Allocate(db, pay.buyer, pay.escrowAddr, Size); err != nil {
		return nil, err
	}
	if err := h.tokens.Transfer(ctx, db, h.auth, pay.msg.Source, vaultAddr, pay.product.Price); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	bazaar.GetLogger(ctx).Info("escrow created",
		"escrow", pay.escrowAddr,
		"product", pay.msg.Product,
		"buyer", pay.buyer,
		"amount", pay.product.Price,
		"expire", int64(pay.msg.ExpireTime))
	return &bazaar.DeliverResult{Data: pay.escrowAddr}, nil
}

// validate runs every check before any state is modified.
func (h *PayHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*payment, error) {
	var msg PayMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	buyer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}

	p, err := product.Load(db, msg.Product)
	if err != nil {
		return nil, err
	}
	if err := checkProduct(p, msg.Seller, msg.PaymentMint); err != nil {
		return nil, err
	}
	source, err := loadAccount(db, h.tokens, msg.Source, "source")
	if err != nil {
		return nil, err
	}
	if err := checkTokenAccount(source, buyer, p.PaymentMint); err != nil {
		return nil, errors.Wrap(err, "source")
	}
	if _, err := h.tokens.Mint(db, msg.PaymentMint); err != nil {
		return nil, errors.Wrap(err, "payment mint")
	}

	escrowAddr, escrowBump, err := Address(msg.Product, buyer)
	if err != nil {
		return nil, err
	}
	switch err := h.bucket.Has(db, escrowAddr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", escrowAddr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	vaultAddr, _, err := VaultAddress(msg.Product, buyer)
	if err != nil {
		return nil, err
	}
	switch _, err := h.tokens.Account(db, vaultAddr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "vault %s", vaultAddr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	return &payment{
		msg:        &msg,
		buyer:      buyer,
		product:    p,
		escrowAddr: escrowAddr,
		escrowBump: escrowBump,
	}, nil
}

// settlement is a validated resolution of an escrow.
type settlement struct {
	outcome     string
	productAddr bazaar.Address
	escrowAddr  bazaar.Address
	escrow      *Escrow
	vaultAddr   bazaar.Address
	destination bazaar.Address
}

// load runs the checks shared by all resolutions. The escrow must be
// between given seller and buyer, and the destination account must belong
// to destOwner.
func (h *resolver) load(db bazaar.KVStore, r *resolution, seller, buyer, destOwner bazaar.Address) (*settlement, error) {
	p, err := product.Load(db, r.Product)
	if err != nil {
		return nil, err
	}
	if err := checkProduct(p, seller, r.PaymentMint); err != nil {
		return nil, err
	}

	escrow, err := loadEscrow(db, h.bucket, r.Escrow, r.Product, buyer)
	if err != nil {
		return nil, err
	}
	if err := checkParticipants(escrow, seller, buyer); err != nil {
		return nil, err
	}
	if _, err := loadVault(db, h.tokens, r.Vault, r.Product, r.Escrow, escrow, r.PaymentMint); err != nil {
		return nil, err
	}

	dest, err := loadAccount(db, h.tokens, r.Destination, "destination")
	if err != nil {
		return nil, err
	}
	if err := checkTokenAccount(dest, destOwner, p.PaymentMint); err != nil {
		return nil, errors.Wrap(err, "destination")
	}
	if _, err := h.tokens.Mint(db, r.PaymentMint); err != nil {
		return nil, errors.Wrap(err, "payment mint")
	}

	return &settlement{
		productAddr: r.Product,
		escrowAddr:  r.Escrow,
		escrow:      escrow,
		vaultAddr:   r.Vault,
		destination: r.Destination,
	}, nil
}

// settle moves the vault balance to the destination and deletes the vault
// and the escrow. Both storage deposits are returned to the buyer.
func (h *resolver) settle(ctx bazaar.Context, db bazaar.KVStore, s *settlement) (*bazaar.DeliverResult, error) {
	cond, err := Condition(s.productAddr, s.escrow)
	if err != nil {
		return nil, err
	}
	buyer := s.escrow.Buyer
	amount, err := releaseVault(ctx, db, h.tokens, cond, s.vaultAddr, s.destination, buyer)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, s.escrowAddr); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	if _, err := h.rent.Reclaim(db, s.escrowAddr, buyer); err != nil {
		return nil, err
	}

	bazaar.GetLogger(ctx).Info("escrow resolved",
		"escrow", s.escrowAddr,
		"outcome", s.outcome,
		"destination", s.destination,
		"amount", amount)
	return &bazaar.DeliverResult{Log: s.outcome}, nil
}

// SellerHandler accepts or denies the payment on behalf of the seller.
type SellerHandler struct {
	resolver
	deny bool
}

var _ bazaar.Handler = (*SellerHandler)(nil)

func (h *SellerHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h *SellerHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.settle(ctx, db, s)
}

func (h *SellerHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*settlement, error) {
	var r *resolution
	if h.deny {
		var msg DenyMsg
		if err := bazaar.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		r = msg.resolution()
	} else {
		var msg AcceptMsg
		if err := bazaar.LoadMsg(tx, &msg); err != nil {
			return nil, errors.Wrap(err, "load msg")
		}
		r = msg.resolution()
	}
	seller, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	buyer := r.Counterparty

	destOwner, outcome := seller, "accepted"
	if h.deny {
		destOwner, outcome = buyer, "denied"
	}
	s, err := h.load(db, r, seller, buyer, destOwner)
	if err != nil {
		return nil, err
	}
	s.outcome = outcome

	now, err := bazaar.CurrentTime(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkSellerWindow(now, s.escrow); err != nil {
		return nil, err
	}
	return s, nil
}

// RecoverHandler returns the payment of an expired escrow to the buyer.
type RecoverHandler struct {
	resolver
}

var _ bazaar.Handler = (*RecoverHandler)(nil)

func (h *RecoverHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bazaar.CheckResult{}, nil
}

func (h *RecoverHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return h.settle(ctx, db, s)
}

func (h *RecoverHandler) validate(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*settlement, error) {
	var msg RecoverMsg
	if err := bazaar.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	buyer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	s, err := h.load(db, msg.resolution(), msg.Seller, buyer, buyer)
	if err != nil {
		return nil, err
	}
	s.outcome = "recovered"

	now, err := bazaar.CurrentTime(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkRecoveryWindow(now, s.escrow); err != nil {
		return nil, err
	}
	return s, nil
}
