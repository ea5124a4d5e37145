package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err       error
		wantError string
	}{
		"registered error": {
			err:       Wrap(ErrDuplicate, "escrow"),
			wantError: "escrow: duplicate",
		},
		"formatted instance": {
			err:       ErrExpired.Newf("at %d", 1000),
			wantError: "at 1000: expired",
		},
		"stdlib error": {
			err:       Wrap(fmt.Errorf("disk full"), "commit"),
			wantError: "commit: disk full",
		},
		"field error": {
			err:       Wrap(Field("Price", ErrAmount, "negative"), "product"),
			wantError: `product: field "Price": negative: insufficient amount`,
		},
	}

	const thisTestSrc = "errors/stacktrace_test.go"

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.err.Error(), tc.wantError)

			assert.NotNil(t, stackTrace(tc.err))

			fullStack := fmt.Sprintf("%+v", tc.err)
			if !strings.Contains(fullStack, thisTestSrc) {
				t.Logf("Stack trace below\n----%s\n----", fullStack)
				t.Error("full stack trace should contain this test source code information")
			}
			if !strings.Contains(fullStack, tc.wantError) {
				t.Logf("Stack trace below\n----%s\n----", fullStack)
				t.Error("full stack trace should contain the error description")
			}
			if strings.Contains(fullStack, "errors.Wrap\n") {
				t.Errorf("full stack trace should not list Wrap\n----%s\n----", fullStack)
			}

			tinyStack := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(tinyStack, tc.wantError))
			assert.False(t, strings.Contains(tinyStack, "\n"), "only one line is expected")
			// contains a link to where it was created, which must
			// be here, not the Wrap() function
			assert.True(t, strings.Contains(tinyStack, "errors/stacktrace_test.go:"))
		})
	}
}
