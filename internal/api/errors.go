package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized signals a 401 from any authenticated call. The
// session is no longer valid; the caller must clear it and send the
// user back to login. Never retried.
var ErrUnauthorized = errors.New("session expired or invalid")

// StatusError is any other non-2xx response. Detail carries the server
// message when one was returned, otherwise the HTTP status text.
// Transport failures are wrapped separately but callers treat both the
// same way: leave local state alone and surface a notice.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err stems from an invalid session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
