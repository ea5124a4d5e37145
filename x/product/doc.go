/*
Package product implements the product registry.

A product is a listing published by a seller: a price quoted in the
smallest unit of a single accepted token. Every product is stored at the
address derived from the seller address and a 16 byte identifier chosen by
the seller, so a seller can use each identifier only once. Products are
never modified or deleted.
*/
package product
