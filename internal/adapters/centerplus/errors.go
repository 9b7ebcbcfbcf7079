package centerplus

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned on any 401/403, regardless of what the body
// says. The message is the one the landing page surfaces to the visitor.
var ErrUnauthorized = errors.New("Token không hợp lệ hoặc đã hết hạn. Vui lòng cập nhật token.")

// APIError is a non-2xx response that carried a body. Message prefers the
// body's message/error field and falls back to the HTTP status line.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
}

// ConnectivityError is a request that got no response at all. It names the
// URL that failed so the operator can diagnose proxy and CORS setups.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("Không thể kết nối API: %s", e.URL)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether the error is the uniform auth failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsConnectivity reports whether the error is a network-level failure.
func IsConnectivity(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}

// IsNotFound reports whether the API answered 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsServerError reports whether the API answered 5xx.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}
