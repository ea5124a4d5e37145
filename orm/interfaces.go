package orm

import (
	"github.com/iov-one/bazaar"
)

// Object is a model together with the primary key it is stored under.
type Object interface {
	Keyed
	Cloneable
	// Validate fails when the object cannot be saved.
	Validate() error
	Value() Model
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable creates an empty object to load stored data into.
type Cloneable interface {
	Clone() Object
}

// Model is any entity that a bucket can store.
type Model interface {
	bazaar.Persistent
	Validate() error
}
