// internal/upstream/errors.go
package upstream

import (
	"errors"
	"fmt"
)

// Category buckets every failure the upstream client can produce into a
// stable, user-facing class. Network-level failures (no HTTP response at all)
// are distinguishable from server-side errors.
type Category string

const (
	CategoryBadRequest   Category = "bad_request"
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryNotFound     Category = "not_found"
	CategoryServer       Category = "server"
	CategoryUnavailable  Category = "network_unavailable"
	CategoryUnexpected   Category = "unexpected"
)

// Error is the typed failure surfaced for every unsuccessful upstream call.
// No failure path is silently swallowed: Message is always a human-readable
// string the caller can show directly.
type Error struct {
	Category Category
	Status   int // 0 when no HTTP response was received
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus picks the status the portal should answer with when relaying
// this failure to the browser.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	if e.Category == CategoryUnavailable {
		return 502
	}
	return 500
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsUnavailable reports whether the failure was a network-level one, i.e. the
// upstream never produced an HTTP response.
func IsUnavailable(err error) bool {
	ue, ok := AsError(err)
	return ok && ue.Category == CategoryUnavailable
}

func categoryForStatus(status int) Category {
	switch {
	case status == 400:
		return CategoryBadRequest
	case status == 401:
		return CategoryUnauthorized
	case status == 403:
		return CategoryForbidden
	case status == 404:
		return CategoryNotFound
	case status >= 500:
		return CategoryServer
	default:
		return CategoryUnexpected
	}
}

func defaultMessage(status int) string {
	switch status {
	case 400:
		return "Invalid request. Please check your input."
	case 401:
		return "Invalid email or password. Please check your credentials."
	case 403:
		return "Access denied. You do not have permission to perform this action."
	case 404:
		return "Resource not found."
	case 500:
		return "Server error. Please try again later."
	default:
		return fmt.Sprintf("Request failed with status %d", status)
	}
}

const (
	networkErrorMessage  = "Network error. Please check if the backend server is running."
	invalidBodyMessage   = "Invalid response from server"
	genericFailedMessage = "Request failed"
)
