package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// PublicHandler serves anonymous access through public share links.
// No authentication; the link token is the credential.
type PublicHandler struct {
	sharing *sharing.Service
	ledger  *ledger.Service
	editor  *editor.Service

	baseURL string
}

// NewPublicHandler creates a public link handler.
func NewPublicHandler(sh *sharing.Service, led *ledger.Service, ed *editor.Service, baseURL string) *PublicHandler {
	return &PublicHandler{sharing: sh, ledger: led, editor: ed, baseURL: baseURL}
}

// publicDocumentResponse describes a shared document without exposing
// owner identity or internal storage details.
type publicDocumentResponse struct {
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Size      int64      `json:"size"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Editable  bool       `json:"editable"`
}

// Get handles GET /public/{token}. Returns document metadata so a landing
// page can render before the download or editor starts.
func (h *PublicHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, share, err := h.sharing.ResolveToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, publicDocumentResponse{
		Name:      doc.Name,
		Kind:      doc.Kind,
		Size:      doc.Size,
		UpdatedAt: doc.UpdatedAt,
		ExpiresAt: share.ExpiresAt,
		Editable:  editor.EditableKind(doc.Kind),
	})
}

// Download handles GET /public/{token}/content.
func (h *PublicHandler) Download(w http.ResponseWriter, r *http.Request) {
	doc, _, err := h.sharing.ResolveToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	doc, rc, err := h.ledger.Open(r.Context(), doc.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	defer rc.Close()
	serveContent(w, doc, rc)
}

// OpenSession handles POST /public/{token}/editor/sessions. Public links
// only ever grant read; the session is view-only.
func (h *PublicHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.editor.OpenPublic(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	_, doc, err := h.editor.Validate(r.Context(), session.Token)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	cfg, err := editor.BuildSessionConfig(session, doc, nil, h.baseURL)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, cfg)
}
