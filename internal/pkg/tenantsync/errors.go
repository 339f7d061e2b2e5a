package tenantsync

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnsupported marks a remote that explicitly declines an operation (the
// write channel is not enabled on the hosted sheet script). Callers degrade
// gracefully instead of treating it as a hard failure.
var ErrUnsupported = errors.New("remote does not support this operation")

var unsupportedPattern = regexp.MustCompile(`(?i)unsupported|not enabled|not implemented`)

// NetworkError wraps a transport failure, a non-2xx status or an unparsable
// response from the external source.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("external source %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func netErr(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}

// classifyRemoteError maps the error text the remote returned to either the
// distinguished unsupported outcome or a plain error.
func classifyRemoteError(message string) error {
	if unsupportedPattern.MatchString(message) {
		return fmt.Errorf("%s: %w", message, ErrUnsupported)
	}
	return errors.New(message)
}
