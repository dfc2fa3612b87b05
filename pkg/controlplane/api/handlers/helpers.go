package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paperbay/paperbay/pkg/controlplane/api/middleware"
)

// maxJSONBodySize bounds JSON request bodies. Document content travels in
// dedicated upload endpoints, never in JSON.
const maxJSONBodySize = 1 << 20

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful; on failure a problem response has already
// been written.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// subjectID returns the authenticated subject, or writes 401 and returns
// false. Routes behind JWTAuth always have claims; the guard covers
// misconfigured routing.
func subjectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return "", false
	}
	return claims.SubjectID(), true
}
