package escrow

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/token"
)

// openVault creates the vault of the escrow at escrowAddr. The vault is
// owned by the escrow and its storage deposit is paid by the buyer.
func openVault(db bazaar.KVStore, tokens token.Controller, productAddr, buyer, escrowAddr, mint bazaar.Address) (bazaar.Address, byte, error) {
	addr, bump, err := VaultAddress(productAddr, buyer)
	if err != nil {
		return nil, 0, err
	}
	if err := tokens.OpenAccount(db, buyer, addr, escrowAddr, mint); err != nil {
		return nil, 0, errors.Wrap(err, "vault")
	}
	return addr, bump, nil
}

// loadVault returns the vault of given escrow. The address must be derived
// from the product, the buyer and the vault bump stored in the escrow, and
// the vault must be owned by the escrow.
func loadVault(db bazaar.ReadOnlyKVStore, tokens token.Controller, addr, productAddr, escrowAddr bazaar.Address, e *Escrow, mint bazaar.Address) (*token.Account, error) {
	if err := bazaar.VerifyDerivedAddress(addr, bazaar.ProgramID, e.VaultBump, []byte(vaultSeed), productAddr, e.Buyer); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	vault, err := loadAccount(db, tokens, addr, "vault")
	if err != nil {
		return nil, err
	}
	if err := checkTokenAccount(vault, escrowAddr, mint); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	return vault, nil
}

// releaseVault moves the whole vault balance to dest and closes the vault,
// sending its storage deposit to rentDest. The escrow condition authorizes
// both operations. It returns the amount released.
func releaseVault(ctx bazaar.Context, db bazaar.KVStore, tokens token.Controller, cond *bazaar.SeedCondition, vaultAddr, dest, rentDest bazaar.Address) (uint64, error) {
	ctx = withEscrow(ctx, cond)
	auth := Authenticate{}

	amount, err := tokens.Balance(db, vaultAddr)
	if err != nil {
		return 0, errors.Wrap(err, "vault")
	}
	if err := tokens.Transfer(ctx, db, auth, vaultAddr, dest, amount); err != nil {
		return 0, errors.Wrap(err, "release vault")
	}
	if err := tokens.CloseAccount(ctx, db, auth, vaultAddr, rentDest); err != nil {
		return 0, errors.Wrap(err, "close vault")
	}
	return amount, nil
}
