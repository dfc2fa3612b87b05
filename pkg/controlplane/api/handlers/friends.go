package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

// FriendsHandler manages the friend graph and the user directory.
type FriendsHandler struct {
	users store.FriendshipStore
}

// NewFriendsHandler creates a friends handler.
func NewFriendsHandler(users store.FriendshipStore) *FriendsHandler {
	return &FriendsHandler{users: users}
}

// Request handles POST /api/v1/friends/requests. The target is addressed
// by username, the only identifier users know about each other.
func (h *FriendsHandler) Request(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Username == "" {
		BadRequest(w, "Username required")
		return
	}

	target, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if target.ID == subject {
		BadRequest(w, "Cannot friend yourself")
		return
	}

	friendship, err := h.users.CreateFriendRequest(r.Context(), subject, target.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, friendship)
}

// Accept handles POST /api/v1/friends/requests/{id}/accept. Only the
// addressee may accept.
func (h *FriendsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}

	friendship, err := h.users.AcceptFriendRequest(r.Context(), chi.URLParam(r, "id"), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, friendship)
}

// friendshipResponse flattens an edge into the counterpart's profile plus
// the request state, which is what clients render.
type friendshipResponse struct {
	ID       string                  `json:"id"`
	User     *models.User            `json:"user"`
	Status   models.FriendshipStatus `json:"status"`
	Incoming bool                    `json:"incoming"`
}

// List handles GET /api/v1/friends. Returns accepted friendships and
// pending requests in both directions.
func (h *FriendsHandler) List(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}

	friendships, err := h.users.ListFriendships(r.Context(), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]friendshipResponse, 0, len(friendships))
	for _, f := range friendships {
		otherID := f.AddresseeID
		incoming := false
		if f.AddresseeID == subject {
			otherID = f.RequesterID
			incoming = true
		}
		other, err := h.users.GetUser(r.Context(), otherID)
		if err != nil {
			continue
		}
		out = append(out, friendshipResponse{
			ID:       f.ID,
			User:     other,
			Status:   f.Status,
			Incoming: incoming,
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

// Search handles GET /api/v1/users/search?q=... for finding users to
// befriend or share with.
func (h *FriendsHandler) Search(w http.ResponseWriter, r *http.Request) {
	if _, ok := subjectID(w, r); !ok {
		return
	}

	query := r.URL.Query().Get("q")
	if len(query) < 2 {
		BadRequest(w, "Search query must be at least 2 characters")
		return
	}

	users, err := h.users.SearchUsers(r.Context(), query, 20)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}
