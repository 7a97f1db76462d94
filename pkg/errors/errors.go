// Package errors provides the error record shared by the fitsunits packages.
//
// Every fallible operation in the module reports failures as an [*Error]: a
// small value carrying an integral status code, a human-readable message and
// the source location (function, file and line) at which the error was raised.
// Status codes are owned by the package that raises them; for example
// [github.com/matzehuels/fitsunits/pkg/units] documents codes 1 through 12.
//
// # Usage
//
//	err := errors.New(3, "Invalid symbol in INITIAL context in '%s'", unit)
//	if errors.Is(err, 3) {
//	    // Handle the syntax error
//	}
//
//	// Keep the origin of a failure raised further down
//	err = errors.Wrap(9, err, "Cannot translate '%s'", unit)
//
//	// Print in the classic diagnostic layout
//	errors.Status(err)          // 3
//	err.Print(os.Stderr, "")    // ERROR 3 in units.Parse() at line 42 of file parse.go: ...
//
// A record is created fresh for each failing call and never mutated
// afterwards, so concurrent callers never share one.
package errors

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// Error is the error record: a status code plus message and source location.
type Error struct {
	Status   int    // Integral status code for the error
	Message  string // Human-readable message
	Function string // Function that raised the error (e.g. "units.Parse")
	File     string // Base name of the source file
	Line     int    // Line number in File
	Cause    error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("status %d: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given status and formatted message. The
// source location is that of the caller of New.
func New(status int, format string, args ...any) *Error {
	return NewDepth(1, status, format, args...)
}

// NewDepth is like New but records the source location depth frames above
// its caller. Helpers that construct errors on behalf of their own callers
// pass 1.
func NewDepth(depth, status int, format string, args ...any) *Error {
	e := &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
	pcs := make([]uintptr, 1)
	if n := runtime.Callers(depth+2, pcs); n > 0 {
		frame, _ := runtime.CallersFrames(pcs[:n]).Next()
		e.Function = shortFuncName(frame.Function)
		e.File = filepath.Base(frame.File)
		e.Line = frame.Line
	}
	return e
}

// Wrap creates an Error with the given status that records cause as its
// origin. The source location is that of the caller of Wrap; the cause keeps
// its own.
func Wrap(status int, cause error, format string, args ...any) *Error {
	e := NewDepth(1, status, format, args...)
	e.Cause = cause
	return e
}

// Copy returns an independent copy of e. The cause is shared. A nil receiver yields nil.
func (e *Error) Copy() *Error {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// Print writes e to w in the two-line diagnostic layout:
//
//	<prefix>ERROR <status> in <function>() at line <line> of file <file>:
//	<prefix>  <message>.
//
// A cause that is itself an *Error is printed after it with the prefix
// indented by two blanks. Nothing is written for a nil receiver.
func (e *Error) Print(w io.Writer, prefix string) error {
	if e == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "%sERROR %d in %s() at line %d of file %s:\n%s  %s.\n",
		prefix, e.Status, e.Function, e.Line, e.File, prefix, e.Message)
	if err != nil {
		return err
	}
	var cause *Error
	if errors.As(e.Cause, &cause) {
		return cause.Print(w, prefix+"  ")
	}
	return nil
}

// Is reports whether err's chain contains an *Error with the given status.
func Is(err error, status int) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Status == status
	}
	return false
}

// Status extracts the status code from an error chain.
// Returns 0 for a nil error and -1 if the chain holds no *Error.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return -1
}

// UserMessage returns the message without the status prefix, followed by
// the user message of its cause, if any.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// shortFuncName trims the import path from a fully qualified function name,
// "github.com/x/y/pkg/units.Parse" becoming "units.Parse".
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
