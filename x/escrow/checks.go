package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/product"
	"github.com/iov-one/bazaar/x/token"
)

// checkProduct ensures the product is listed by the seller and paid with
// given mint.
func checkProduct(p *product.Product, seller, mint bazaar.Address) error {
	if !p.Authority.Equals(seller) {
		return errors.Wrapf(ErrIncorrectAuthority, "product listed by %s, not %s", p.Authority, seller)
	}
	if !p.PaymentMint.Equals(mint) {
		return errors.Wrapf(ErrIncorrectMint, "product paid with %s, not %s", p.PaymentMint, mint)
	}
	return nil
}

// checkParticipants ensures the escrow is between given seller and buyer.
func checkParticipants(e *Escrow, seller, buyer bazaar.Address) error {
	if !e.Seller.Equals(seller) || !e.Buyer.Equals(buyer) {
		return errors.Wrapf(ErrIncorrectParticipant, "escrow between %s and %s", e.Seller, e.Buyer)
	}
	return nil
}

// checkTokenAccount ensures the holding account is owned by owner and holds
// tokens of mint.
func checkTokenAccount(acc *token.Account, owner, mint bazaar.Address) error {
	if !acc.Owner.Equals(owner) {
		return errors.Wrapf(ErrIncorrectOwner, "owned by %s, not %s", acc.Owner, owner)
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(ErrIncorrectMint, "holds %s, not %s", acc.Mint, mint)
	}
	return nil
}

// loadEscrow returns the escrow stored at addr. The address must be derived
// from the product, the buyer and the bump stored in the escrow.
func loadEscrow(db bazaar.ReadOnlyKVStore, b orm.ModelBucket, addr, productAddr, buyer bazaar.Address) (*Escrow, error) {
	var e Escrow
	if err := b.One(db, addr, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	if err := bazaar.VerifyDerivedAddress(addr, bazaar.ProgramID, e.Bump, []byte(escrowSeed), productAddr, buyer); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	return &e, nil
}

// loadAccount returns the holding account at addr, wrapping the error with
// the role the account plays.
func loadAccount(db bazaar.ReadOnlyKVStore, tokens token.Controller, addr bazaar.Address, role string) (*token.Account, error) {
	acc, err := tokens.Account(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, role)
	}
	return acc, nil
}
