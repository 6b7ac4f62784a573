package ors

import (
	"errors"
	"fmt"
)

// Sentinel errors for API outcomes the caller branches on.
var (
	// ErrInvalidAuth indicates the API rejected the configured key.
	ErrInvalidAuth = errors.New("invalid API key")

	// ErrNoResults indicates geocoding returned no features for an address.
	ErrNoResults = errors.New("address could not be geocoded")

	// ErrNoRoute indicates no route exists between the requested coordinates.
	ErrNoRoute = errors.New("no route found between origin and destination")
)

// APIError is a non-auth failure reported by the routing API or the transport
// underneath it.
type APIError struct {
	// StatusCode is the HTTP status, or 0 for transport-level failures.
	StatusCode int

	// Message is the API's error message when one was decoded, otherwise a
	// transport description.
	Message string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("routing API unreachable: %s", e.Message)
	}
	return fmt.Sprintf("routing API error (status %d): %s", e.StatusCode, e.Message)
}
