package errors

import "fmt"

const (
	// SuccessABCICode is the code of a successful response.
	SuccessABCICode = 0

	// Errors that do not carry an ABCI code are reported with the internal
	// code. Outside of debug mode their message is hidden as well.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log to put in an ABCI response for err. A
// nil err gives the success code and an empty log.
//
// Only errors that wrap a registered error expose their message. In debug
// mode every error is printed in full, including its stack trace when it
// has one.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the wrapping chain that
// provides one.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}
