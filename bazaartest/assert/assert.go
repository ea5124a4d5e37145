/*
Package assert adds to testify the checks that understand bazaar errors.

All assertions stop the test on failure, the same way testify's require
package does.
*/
package assert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/require"
)

// T is the part of testing.TB used by the assertions.
type T interface {
	require.TestingT
	Helper()
}

// Nil fails unless value is nil. Typed nil pointers are nil too. Errors are
// printed with their stack trace.
func Nil(t T, value interface{}) {
	t.Helper()
	if isNil(value) {
		return
	}
	if err, ok := value.(error); ok {
		fail(t, "unexpected error: %+v", err)
		return
	}
	fail(t, "want nil, got %T %+v", value, value)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails unless want and got are deeply equal.
func Equal(t T, want, got interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

// Panics fails unless fn panics.
func Panics(t T, fn func()) {
	t.Helper()
	require.Panics(t, fn)
}

// IsErr fails unless got is want or one of its wrappers. A nil want only
// matches a nil got.
func IsErr(t T, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	fail(t, "want %q, got %+v", want, got)
}

// FieldError fails unless err carries exactly one error for the field and
// that error is of kind want. A nil want asserts there is no error for the
// field.
func FieldError(t T, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	switch {
	case want == nil && len(errs) == 0:
	case want == nil:
		fail(t, "field %q: want no error, got %s", field, listErrors(errs))
	case len(errs) == 0:
		fail(t, "field %q: want %q, got no error", field, want)
	case len(errs) > 1:
		fail(t, "field %q: want a single %q, got %s", field, want, listErrors(errs))
	case !want.Is(errs[0]):
		fail(t, "field %q: want %q, got %q", field, want, errs[0])
	}
}

func listErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = fmt.Sprintf("%d: %q", i+1, e)
	}
	return fmt.Sprintf("%d errors [%s]", len(errs), strings.Join(msgs, ", "))
}

func fail(t T, format string, args ...interface{}) {
	t.Helper()
	t.Errorf(format, args...)
	t.FailNow()
}
