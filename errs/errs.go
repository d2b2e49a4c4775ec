// Package errs holds the error kinds shared across the translator: the
// Error type, which can be created with one or more "cause" errors and is
// compatible with errors.Is/errors.As, plus the four sentinel kinds the
// core can raise.
//
// Calling errors.Is on an Error with one of the sentinel kinds as target
// returns true iff that Error (or one of its wrapped causes, transitively)
// was built with that kind.
package errs

import "errors"

var (
	// ErrContractViolation marks a broken precondition on an exported
	// constructor or algebra function: a programmer bug, never a user
	// input problem. Examples: And/Or left with zero args after
	// canonicalization in a context that requires at least one, a
	// negative state index, a symbol index >= n_variables.
	ErrContractViolation = errors.New("contract violation")

	// ErrCapacityExceeded marks a DFA state that would require more bits
	// than the builder was configured for.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrIO marks a failure reading or writing external data: a MONA DFA
	// file (mona), the config file (internal/config) or the translation
	// cache (internal/cache). The core proper never raises it.
	ErrIO = errors.New("io error")

	// ErrNotImplemented is reserved for the legacy eager (BDD, SAT)
	// strategies on constructs they don't support.
	ErrNotImplemented = errors.New("not implemented")
)

// Error is a typed error holding a message and zero or more causes. It
// should not be constructed directly; use New or Wrap.
type Error struct {
	msg   string
	cause []error
}

// New builds an Error with the given message and causes. If msg is empty
// and there is at least one cause, Error() delegates to the first cause.
func New(msg string, cause ...error) *Error {
	return &Error{msg: msg, cause: cause}
}

// Contract is shorthand for New(msg, ErrContractViolation, extra...).
func Contract(msg string, extra ...error) *Error {
	return New(msg, append([]error{ErrContractViolation}, extra...)...)
}

// Capacity is shorthand for New(msg, ErrCapacityExceeded, extra...).
func Capacity(msg string, extra ...error) *Error {
	return New(msg, append([]error{ErrCapacityExceeded}, extra...)...)
}

// IO is shorthand for New(msg, ErrIO, extra...).
func IO(msg string, extra ...error) *Error {
	return New(msg, append([]error{ErrIO}, extra...)...)
}

func (e *Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap gives the causes of e, letting errors.Is/errors.As traverse all of
// them (not just the first, which is all Error() includes in its text).
func (e *Error) Unwrap() []error {
	return e.cause
}
