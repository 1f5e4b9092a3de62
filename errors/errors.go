package errors

import "errors"

var (
	Is     = errors.Is
	Join   = errors.Join
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New

	// ErrClosed is returned by Conn operations issued after Close. The
	// combinators themselves define no error kinds; everything an endpoint
	// returns is passed through unchanged.
	ErrClosed = errors.New("closed")
)

func Must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}
