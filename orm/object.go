package orm

import (
	"reflect"

	"github.com/iov-one/bazaar/errors"
)

// SimpleObj pairs a primary key with a model.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte  { return o.key }
func (o SimpleObj) Value() Model { return o.value }

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Validate requires both a key and a value, then validates the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "required")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "required")
	}
	return errors.Field("Value", o.value.Validate(), "invalid value")
}

// Clone returns an object holding a zero value of the same model type and
// a copy of the key.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: zero}
}
