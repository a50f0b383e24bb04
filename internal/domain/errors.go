package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)

// DeliveryErrorKind classifies why an outbound email failed.
type DeliveryErrorKind string

const (
	DeliveryTimeout           DeliveryErrorKind = "timeout"
	DeliveryAuthFailure       DeliveryErrorKind = "auth_failure"
	DeliveryConnectionFailure DeliveryErrorKind = "connection_failure"
	DeliveryOther             DeliveryErrorKind = "other"
)

// DeliveryError is returned by the delivery gateway when a send fails.
// It is never retried by the core; callers re-invoke the flow operation.
type DeliveryError struct {
	Kind DeliveryErrorKind
	Err  error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("email delivery failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("email delivery failed (%s)", e.Kind)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// IsDeliveryError reports whether err is a DeliveryError and returns it.
func IsDeliveryError(err error) (*DeliveryError, bool) {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
