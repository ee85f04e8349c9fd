package deck

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when no server or token is available
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidServer is returned for server URLs that cannot be used
	ErrInvalidServer = errors.New("invalid server URL")
)

// maxErrorBody bounds how much of a failed response is kept
const maxErrorBody = 512

// APIError describes a response with an unexpected status code
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements error
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// IsUnauthorized returns true when the server rejected the credentials
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is an *APIError with status 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}
