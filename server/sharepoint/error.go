package sharepoint

import (
	"fmt"
	"net/http"
)

// HTTPError is a non-2xx response returned by SharePoint.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sharepoint http error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// Unauthorized reports whether SharePoint rejected the credentials.
func (e *HTTPError) Unauthorized() bool {
	return e != nil && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// NotFound reports whether the list or item does not exist.
func (e *HTTPError) NotFound() bool {
	return e != nil && e.StatusCode == http.StatusNotFound
}
