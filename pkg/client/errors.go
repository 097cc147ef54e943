package client

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a request exceeds its deadline. The
// in-flight request is abandoned; retrying is the caller's decision.
var ErrTimeout = errors.New("request timed out")

// TransportError reports a non-timeout transport failure: connection
// refused, an unexpected HTTP status, or an undecodable response body.
type TransportError struct {
	Op     string
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
