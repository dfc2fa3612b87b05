package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// SharesHandler serves share grant management.
type SharesHandler struct {
	sharing *sharing.Service
	users   store.FriendshipStore

	// publicBaseURL prefixes generated public link URLs.
	publicBaseURL string
}

// NewSharesHandler creates a shares handler.
func NewSharesHandler(sh *sharing.Service, users store.FriendshipStore, publicBaseURL string) *SharesHandler {
	return &SharesHandler{sharing: sh, users: users, publicBaseURL: publicBaseURL}
}

// ShareToFriend handles POST /api/v1/documents/{id}/shares/friend.
// The grantee is named by username and resolved through the directory.
func (h *SharesHandler) ShareToFriend(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	documentID := chi.URLParam(r, "id")

	var req struct {
		Username string `json:"username"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Username == "" {
		BadRequest(w, "Grantee username required")
		return
	}

	grantee, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	grant, err := h.sharing.ShareToFriend(r.Context(), subject, documentID, grantee.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, grant)
}

// publicLinkResponse augments a grant with its resolvable URL. The token
// itself is never serialized on the grant record.
type publicLinkResponse struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreatePublicLink handles POST /api/v1/documents/{id}/shares/public.
// An optional expires_in_hours field bounds the link lifetime.
func (h *SharesHandler) CreatePublicLink(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	documentID := chi.URLParam(r, "id")

	var req struct {
		ExpiresInHours int `json:"expires_in_hours"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.ExpiresInHours < 0 {
		BadRequest(w, "expires_in_hours must not be negative")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresInHours > 0 {
		t := time.Now().UTC().Add(time.Duration(req.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}

	grant, err := h.sharing.CreatePublicLink(r.Context(), subject, documentID, expiresAt)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, publicLinkResponse{
		ID:        grant.ID,
		URL:       h.publicBaseURL + "/public/" + *grant.Token,
		Token:     *grant.Token,
		ExpiresAt: grant.ExpiresAt,
	})
}

// Revoke handles DELETE /api/v1/shares/{id}.
func (h *SharesHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	if err := h.sharing.Revoke(r.Context(), subject, chi.URLParam(r, "id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// ListGranted handles GET /api/v1/shares.
// Returns every grant the subject handed out, revoked links included.
func (h *SharesHandler) ListGranted(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	grants, err := h.sharing.ListByGrantor(r.Context(), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, grants)
}

// ListReceived handles GET /api/v1/shares/received.
// Returns the friend shares naming the subject as grantee.
func (h *SharesHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	grants, err := h.sharing.ListGrantedTo(r.Context(), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, grants)
}
