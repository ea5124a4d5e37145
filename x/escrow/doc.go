/*
Package escrow implements a time bounded escrow of a product payment.

A buyer pays for a product by locking its price in a vault: a token holding
account owned by the escrow record itself. Until the expiration time the
seller can either accept the payment, moving the funds to the seller, or
deny it, returning the funds to the buyer. Once the expiration time is
reached the buyer can recover the funds. Both windows include the
expiration second, so at that exact time either side may act and the first
transaction wins.

Escrow and vault live at addresses derived from the product and the buyer,
so a buyer can have at most one pending payment for a product. Resolving an
escrow always deletes both records and returns their storage deposits to
the buyer.

No private key exists for the escrow address. The escrow proves its
authority over the vault with the condition derived from its seeds and the
bump stored in the record.
*/
package escrow
