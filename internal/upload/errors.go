package upload

import (
	"context"
	"errors"
	"net"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Failure kinds reported in logs and metrics
const (
	KindHTTPStatus  = "http_status"
	KindMalformed   = "malformed"
	KindNetwork     = "network"
	KindCircuitOpen = "circuit_open"
	KindUnknown     = "unknown"
)

// FailureKind classifies an upload error
func FailureKind(err error) string {
	var statusErr *StatusError
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return KindHTTPStatus
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return KindCircuitOpen
	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindNetwork
	default:
		return KindUnknown
	}
}
