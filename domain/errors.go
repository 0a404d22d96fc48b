package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup that matched no row owned by the caller.
var ErrNotFound = errors.New("not found")

// GatewayErrorKind classifies upstream failures so the API layer can map
// them to the right status code.
type GatewayErrorKind int

const (
	// GatewayBad means the upstream service misbehaved: malformed output,
	// missing audio, non-2xx responses.
	GatewayBad GatewayErrorKind = iota
	// GatewayTimeout means the upstream call exceeded its deadline.
	GatewayTimeout
)

// GatewayError is an error attributed to an upstream dependency (text
// generation or speech synthesis), as opposed to bad client input.
// The core never retries these; they surface directly to the caller.
type GatewayError struct {
	Kind   GatewayErrorKind
	Detail string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewBadGatewayError wraps err as an upstream-misbehavior failure.
func NewBadGatewayError(detail string, err error) *GatewayError {
	return &GatewayError{Kind: GatewayBad, Detail: detail, Err: err}
}

// NewGatewayTimeoutError wraps err as an upstream-deadline failure.
func NewGatewayTimeoutError(detail string, err error) *GatewayError {
	return &GatewayError{Kind: GatewayTimeout, Detail: detail, Err: err}
}
