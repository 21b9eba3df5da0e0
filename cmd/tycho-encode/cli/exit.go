package cli

import "github.com/tycho-go/router-encoding/tychoerr"

// ExitCoder lets main map a tychoerr.Kind to a process exit code instead of
// always exiting 1, so scripts driving this CLI can tell a malformed
// request (InvalidInput) from an internal/config failure (Fatal) from a
// transient RPC/RFQ hiccup (Recoverable) worth retrying.
type ExitCoder interface {
	error
	ExitCode() int
}

type exitError struct {
	err error
}

func (e exitError) Error() string { return e.err.Error() }

func (e exitError) ExitCode() int {
	switch {
	case tychoerr.Is(e.err, tychoerr.InvalidInput):
		return 2
	case tychoerr.Is(e.err, tychoerr.Recoverable):
		return 3
	default:
		return 1
	}
}

func wrapExit(err error) error {
	if err == nil {
		return nil
	}
	return exitError{err: err}
}
