/*
Package rent computes and collects the storage deposit of ledger records.

Every record created on the ledger must hold enough lamports in the wallet
at its own address to be exempt from rent. The deposit is paid by the
creator of the record and is given back, in full, when the record is
removed.
*/
package rent
