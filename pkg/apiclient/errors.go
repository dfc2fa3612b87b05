package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an RFC 7807 problem response from the API.
type APIError struct {
	StatusCode int    `json:"status"`
	Title      string `json:"title"`
	Detail     string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" && e.Detail != e.Title {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	if e.Title != "" {
		return e.Title
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true if this is a not found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict returns true if this is a version or duplicate conflict.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsQuotaExceeded returns true if the server rejected a write for quota.
func (e *APIError) IsQuotaExceeded() bool {
	return e.StatusCode == http.StatusRequestEntityTooLarge
}

// IsGone returns true if the target expired (share link or session).
func (e *APIError) IsGone() bool {
	return e.StatusCode == http.StatusGone
}

// decodeAPIError builds an APIError from a non-2xx response body.
func decodeAPIError(status int, body []byte) error {
	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Title != "" {
		apiErr.StatusCode = status
		return &apiErr
	}
	return &APIError{
		StatusCode: status,
		Title:      strings.TrimSpace(string(body)),
	}
}
