package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoSession means an authenticated call was made before Login or Register.
	ErrNoSession = errors.New("client: not logged in")
	// ErrSessionExpired means renewal was refused; the session has been cleared
	// and the user must log in again.
	ErrSessionExpired = errors.New("client: session expired")
	// ErrUnauthorizedAfterRenewal is a 401 on the retry that followed a
	// successful renewal. It is never retried.
	ErrUnauthorizedAfterRenewal = errors.New("client: unauthorized after renewal")
	ErrTimeout                  = errors.New("client: request timed out")

	ErrValidation          = errors.New("client: validation failed")
	ErrUnauthenticated     = errors.New("client: unauthenticated")
	ErrNotAuthorized       = errors.New("client: not authorized")
	ErrNotFound            = errors.New("client: not found")
	ErrDuplicateIdentity   = errors.New("client: duplicate identity")
	ErrUpstreamUnavailable = errors.New("client: upstream unavailable")
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Message string
	TraceID string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("api error %d: %s (trace %s)", e.Status, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets callers match on the taxonomy sentinels with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrNotAuthorized:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrDuplicateIdentity:
		return e.Status == http.StatusConflict
	case ErrUpstreamUnavailable:
		return e.Status == http.StatusServiceUnavailable || e.Status == http.StatusBadGateway
	}
	return false
}
