// internal/app/gateway/errors.go
package gateway

import (
	"errors"
	"fmt"
)

// ErrAuthExpired reports that the backend rejected our bearer token.
// Callers must treat this as a forced sign-out: the session manager's
// ExpireAndRedirect is the single place that implements the reset.
var ErrAuthExpired = errors.New("gateway: authorization expired")

// ErrAlreadyApproved reports an approve call that lost a race with
// another admin. The entity is no longer pending; surface a notice and
// refresh the list.
var ErrAlreadyApproved = errors.New("gateway: entity already approved")

// ErrUnreachable reports a transport failure, an open circuit breaker,
// or an unparseable response — anything where no backend verdict exists.
var ErrUnreachable = errors.New("gateway: backend unreachable")

// APIError is a backend verdict: a non-2xx response with a message
// payload. It is shown inline near the triggering control.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: api error %d: %s", e.Status, e.Message)
}

// Message returns the user-facing text for a gateway error: the backend's
// own message when there is one, a generic fallback otherwise.
func Message(err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, ErrAlreadyApproved):
		return "This item was already approved by another admin."
	case errors.Is(err, ErrUnreachable):
		return "The service is temporarily unavailable. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
