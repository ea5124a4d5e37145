/*
Package cash holds the native balance of every address, counted in
lamports.

There is no logic in the lamports, except that the balance of an address
may not go below zero. Lamports pay the storage deposit of every record
created on the ledger, see the rent package. An address without lamports
has no wallet stored.
*/
package cash
