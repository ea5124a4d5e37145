package escrow

import "github.com/iov-one/bazaar/errors"

var (
	// ErrIncorrectAuthority is returned when the product is not listed by
	// the expected seller.
	ErrIncorrectAuthority = errors.Register(6000, "wrong authority")

	// ErrIncorrectOwner is returned when a token account is owned by
	// someone else than required.
	ErrIncorrectOwner = errors.Register(6001, "wrong owner on a token account")

	// ErrIncorrectMint is returned when a token account or the product
	// uses a different mint than required.
	ErrIncorrectMint = errors.Register(6002, "wrong mint on a token account")

	// ErrIncorrectParticipant is returned when the buyer or the seller do
	// not match the escrow.
	ErrIncorrectParticipant = errors.Register(6003, "wrong participant of the escrow")

	// ErrTimeExpired is returned when the seller acts after the
	// expiration time.
	ErrTimeExpired = errors.Register(6004, "time to accept or deny has expired")

	// ErrCannotRecoverYet is returned when the buyer tries to recover the
	// funds before the expiration time.
	ErrCannotRecoverYet = errors.Register(6005, "payment recovery is not allowed at this time")
)
