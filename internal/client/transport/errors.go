package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TransportError reports a request that never produced an HTTP response:
// network failure, timeout, cancellation, or an unreadable body.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request was cut off by a deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// HTTPError reports a non-2xx response. Body holds the raw response body
// so that the error classifier can look for a server error payload in it.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   []byte
	Header http.Header
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}
