package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// frameFunc returns the function and location of a stack frame. The pc
// arithmetic follows pkg/errors.
func frameFunc(f errors.Frame) (name, file string, line int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", "unknown", 0
	}
	file, line = fn.FileLine(pc)
	return fn.Name(), file, line
}

func inFuncs(f errors.Frame, prefixes ...string) bool {
	name, _, _ := frameFunc(f)
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// constructors are the functions of this package that create errors. Their
// frames are never interesting to the reader of a stack trace.
var constructors = []string{
	"github.com/iov-one/bazaar/errors.Wrap",
	"github.com/iov-one/bazaar/errors.Wrapf",
	"github.com/iov-one/bazaar/errors.(*Error).New",
	"github.com/iov-one/bazaar/errors.(*Error).Newf",
	"github.com/iov-one/bazaar/errors.Field",
	"runtime.",
}

// trimInternal drops the error constructors from the top of the stack and
// the runtime and test runner from its bottom.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && inFuncs(st[0], constructors...) {
		st = st[1:]
	}
	for len(st) > 1 && inFuncs(st[len(st)-1], "runtime.", "testing.") {
		st = st[:len(st)-1]
	}
	return st
}

// writeFrame writes a short [path:line] reference of the frame.
func writeFrame(w io.Writer, f errors.Frame) {
	_, file, line := frameFunc(f)
	if i := strings.Index(file, "github.com/"); i >= 0 {
		file = file[i+len("github.com/"):]
	}
	fmt.Fprintf(w, " [%s:%d]", file, line)
}

// Format supports the pkg/errors verbs. %s prints the message, %v appends
// the location where the error was created and %+v prints the whole stack
// trace followed by the message.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(stack) > 0 {
		writeFrame(s, stack[0])
	}
}

// stackTrace returns the first stack trace found in the chain of wrapped
// errors, or nil.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
