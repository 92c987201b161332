package databricks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a structured error response from the Databricks REST API.
// Most endpoints report failures as a JSON body with error_code and
// message fields alongside a non-2xx status.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
}

// Error returns the message alone. The error code is exposed separately
// through ErrorCode so rendered output carries it exactly once.
func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Message
}

// ErrorCode returns the Databricks error code (RESOURCE_DOES_NOT_EXIST,
// PERMISSION_DENIED, ...) for inclusion in rendered error strings.
func (e *APIError) ErrorCode() string {
	return e.Code
}

// IsNotFound reports whether the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == "RESOURCE_DOES_NOT_EXIST"
}

// parseAPIError builds an APIError from a non-2xx response body. Bodies
// that are not the standard error shape (HTML from a proxy, empty 502s)
// fall back to the status text plus a truncated body excerpt.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err == nil && (apiErr.Code != "" || apiErr.Message != "") {
		return apiErr
	}
	msg := http.StatusText(status)
	if excerpt := strings.TrimSpace(string(body)); excerpt != "" {
		if len(excerpt) > 200 {
			excerpt = excerpt[:200] + "..."
		}
		msg = fmt.Sprintf("%s: %s", msg, excerpt)
	}
	return &APIError{StatusCode: status, Message: msg}
}
