package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field marks err as caused by the named field. A nil err gives nil. The
// description is formatted with args when any are given.
//
// Name fields the way they are named in Go. Nested fields are joined with a
// dot and list elements use their index, for example Seller or Tags.2.ID.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: name, desc: description, parent: err}
}

// AppendField adds the field error to errs. Nil values on either side are
// ignored, so validations can be chained without checks in between.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

// FieldErrors walks the error tree and returns the outermost error created
// for the named field in every branch.
func FieldErrors(err error, name string) []error {
	var found []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(found, err)
		}
		switch e := err.(type) {
		case unpacker:
			// Unpack already lists every child, including the cause.
			for _, child := range e.Unpack() {
				found = append(found, FieldErrors(child, name)...)
			}
			return found
		case causer:
			err = e.Cause()
		default:
			return found
		}
	}
	return found
}

type fielder interface {
	Field() string
}
