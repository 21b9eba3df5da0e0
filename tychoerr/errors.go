// Package tychoerr defines the three error kinds the calldata compiler can
// return: Fatal, InvalidInput, and Recoverable. No other kind exists; no
// core code panics on user input.
package tychoerr

import "fmt"

// Kind classifies why encoding could not proceed.
type Kind int

const (
	// Fatal indicates a contract violation: a missing required attribute,
	// an unsupported protocol tag, a malformed address, a width overflow,
	// or a validator rejection. Encoding must abort.
	Fatal Kind = iota
	// InvalidInput indicates syntactically valid but semantically
	// disallowed input, e.g. exact-out solutions, splits in the single
	// strategy, or more than one group in executor mode.
	InvalidInput
	// Recoverable indicates an RPC/HTTP failure during a live probe or
	// quote fetch. The caller may retry.
	Recoverable
)

func (k Kind) String() string {
	switch k {
	case Fatal:
		return "Fatal"
	case InvalidInput:
		return "InvalidInput"
	case Recoverable:
		return "Recoverable"
	default:
		return "Unknown"
	}
}

// Error is the sole error type returned across package boundaries in this
// module. It always carries a Kind so callers can branch with errors.As
// instead of string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind. cause may be nil.
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Fatalf builds a Fatal error.
func Fatalf(format string, args ...interface{}) *Error {
	return &Error{Kind: Fatal, Msg: fmt.Sprintf(format, args...)}
}

// WrapFatal builds a Fatal error wrapping cause.
func WrapFatal(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: Fatal, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// InvalidInputf builds an InvalidInput error.
func InvalidInputf(format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// Recoverablef builds a Recoverable error.
func Recoverablef(format string, args ...interface{}) *Error {
	return &Error{Kind: Recoverable, Msg: fmt.Sprintf(format, args...)}
}

// WrapRecoverable builds a Recoverable error wrapping cause.
func WrapRecoverable(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: Recoverable, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if as(err, &e) {
		return e.Kind == kind
	}
	return false
}

// as walks err's single-error Unwrap chain looking for an *Error, a small
// local stand-in for errors.As that does not import the standard "errors"
// package.
func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
