// Package handlers provides HTTP handlers for the paperbay API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// Problem represents an RFC 7807 "problem details" response.
// https://tools.ietf.org/html/rfc7807
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	// If not set, defaults to "about:blank".
	Type string `json:"type,omitempty"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence of the problem.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
}

// ContentTypeProblemJSON is the Content-Type for RFC 7807 problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes an RFC 7807 problem response.
func WriteProblem(w http.ResponseWriter, status int, title, detail string) {
	problem := &Problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}

	w.Header().Set("Content-Type", ContentTypeProblemJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

// Common problem helper functions for standard HTTP errors.

// BadRequest writes a 400 Bad Request problem response.
func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusBadRequest, "Bad Request", detail)
}

// Unauthorized writes a 401 Unauthorized problem response.
func Unauthorized(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusUnauthorized, "Unauthorized", detail)
}

// Forbidden writes a 403 Forbidden problem response.
func Forbidden(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusForbidden, "Forbidden", detail)
}

// NotFound writes a 404 Not Found problem response.
func NotFound(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusNotFound, "Not Found", detail)
}

// Conflict writes a 409 Conflict problem response.
func Conflict(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusConflict, "Conflict", detail)
}

// Gone writes a 410 Gone problem response.
func Gone(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusGone, "Gone", detail)
}

// PayloadTooLarge writes a 413 Payload Too Large problem response.
func PayloadTooLarge(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", detail)
}

// UnprocessableEntity writes a 422 Unprocessable Entity problem response.
func UnprocessableEntity(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
}

// InternalServerError writes a 500 Internal Server Error problem response.
func InternalServerError(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", detail)
}

// WriteDomainError maps a domain error to its problem response.
//
// Access denials on documents deliberately present as 404 so probing the
// API cannot distinguish "exists but not yours" from "does not exist".
func WriteDomainError(w http.ResponseWriter, err error) {
	var quotaErr *models.QuotaExceededError
	var versionErr *models.VersionConflictError

	switch {
	case errors.As(err, &quotaErr):
		PayloadTooLarge(w, fmt.Sprintf(
			"storage quota exceeded: %d bytes requested, %d of %d used",
			quotaErr.Requested, quotaErr.Used, quotaErr.Limit))
	case errors.As(err, &versionErr):
		Conflict(w, fmt.Sprintf(
			"version conflict: expected %d, document is at %d",
			versionErr.Expected, versionErr.Current))
	case errors.Is(err, models.ErrAccessDenied), errors.Is(err, models.ErrNotOwner):
		NotFound(w, "Document not found")
	case errors.Is(err, models.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, models.ErrShareNotFound):
		NotFound(w, "Share not found")
	case errors.Is(err, models.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, models.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, models.ErrFriendshipNotFound):
		NotFound(w, "Friend request not found")
	case errors.Is(err, models.ErrShareExpired):
		Gone(w, "Share link has expired")
	case errors.Is(err, models.ErrSessionExpired):
		Gone(w, "Editor session has expired")
	case errors.Is(err, models.ErrInvalidName):
		BadRequest(w, "Invalid document name")
	case errors.Is(err, models.ErrUnsupportedKind):
		UnprocessableEntity(w, "No editor is available for this document type")
	case errors.Is(err, models.ErrReadOnlySession):
		Forbidden(w, "Session does not permit writes")
	case errors.Is(err, models.ErrNotFriends):
		Forbidden(w, "Documents can only be shared with friends")
	case errors.Is(err, models.ErrDuplicateShare):
		Conflict(w, "Document is already shared with this user")
	case errors.Is(err, models.ErrDuplicateFriendship):
		Conflict(w, "A friend request already exists between these users")
	default:
		InternalServerError(w, "An internal error occurred")
	}
}
