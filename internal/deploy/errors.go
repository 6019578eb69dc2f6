package deploy

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/keshon/command-deploy/internal/catalog"
	"github.com/keshon/command-deploy/pkg/ratelimit"
)

// Kind classifies why a scope failed to synchronize.
type Kind string

const (
	KindAuthorization Kind = "authorization"
	KindValidation    Kind = "validation"
	KindRateLimit     Kind = "rate-limit"
	KindTransport     Kind = "transport"
	KindUnknown       Kind = "unknown"
)

// SyncError is the failure of one scope's bulk replace.
type SyncError struct {
	Scope catalog.Scope
	Kind  Kind
	Err   error
}

func (e *SyncError) Error() string {
	return string(e.Scope) + " " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *SyncError) Unwrap() error { return e.Err }

// Classify maps an error from the registry or from serialization to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}

	var serr *catalog.SerializeError
	if errors.As(err, &serr) {
		return KindValidation
	}

	switch {
	case ratelimit.IsRateLimited(err):
		return KindRateLimit
	case ratelimit.IsUnauthorized(err):
		return KindAuthorization
	case ratelimit.IsClientError(err):
		return KindValidation
	case ratelimit.IsServerError(err):
		return KindTransport
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransport
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindTransport
	}
	return KindUnknown
}
