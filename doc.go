/*

Package bazaar defines interfaces used throughout the ledger, such as: storage,
transactions, handlers, addresses and conditions.
It also contains helpers to work with context and abci results.
Look into this package to get an brief overview of design decisions made around
interfaces and extension building blocks.

*/

package bazaar
