/*
Package token implements custody of fungible tokens.

A Mint declares a token and the authority allowed to issue it. Balances are
kept in holding accounts. Every holding account belongs to exactly one mint
and is controlled by its owner: only a context authenticated as the owner
can move tokens out of an account or close it. The owner may be a person
or a record, in which case the record proves its authority with the
condition derived from its seeds.

Mints and accounts are stored at their own address and hold the rent
deposit of their storage in the wallet at that address.
*/
package token
