/*
Package x contains the extensions of the ledger.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together in the app package to construct
the ledger. This package holds the helpers shared by all of them:
authentication of the transaction signers and serialization helpers.

Messages of each extension are named after what they do and prefixed by
the package, e.g. `escrow.PayMsg` or `token.SendMsg`.
*/
package x
