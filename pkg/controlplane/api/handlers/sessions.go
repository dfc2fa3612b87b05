package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/editor"
)

// SessionsHandler brokers editor sessions and serves the session-token
// authenticated endpoints the external editing service calls back on.
type SessionsHandler struct {
	editor *editor.Service
	users  store.FriendshipStore

	// baseURL is the externally reachable address used in session configs.
	baseURL string

	// allowedHosts restricts where save callbacks may download edited
	// documents from. Empty trusts no host at all.
	allowedHosts []string

	// fetch downloads editor-saved content during callbacks. Overridable in
	// tests.
	fetch *http.Client
}

// NewSessionsHandler creates a sessions handler.
func NewSessionsHandler(ed *editor.Service, users store.FriendshipStore, baseURL string, allowedHosts []string) *SessionsHandler {
	return &SessionsHandler{
		editor:       ed,
		users:        users,
		baseURL:      baseURL,
		allowedHosts: allowedHosts,
		fetch:        http.DefaultClient,
	}
}

// Open handles POST /api/v1/documents/{id}/editor/sessions.
// Issues a session and returns the editor bootstrap payload.
func (h *SessionsHandler) Open(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	documentID := chi.URLParam(r, "id")

	var req struct {
		Mode string `json:"mode"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	var wantWrite bool
	switch req.Mode {
	case "edit":
		wantWrite = true
	case "", "view":
		wantWrite = false
	default:
		BadRequest(w, "mode must be 'edit' or 'view'")
		return
	}

	session, err := h.editor.Open(r.Context(), subject, documentID, wantWrite)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	h.writeSessionConfig(w, r, session, subject)
}

// writeSessionConfig loads the remaining pieces and responds with the
// bootstrap payload.
func (h *SessionsHandler) writeSessionConfig(w http.ResponseWriter, r *http.Request, session *models.EditorSession, subject string) {
	_, doc, err := h.editor.Validate(r.Context(), session.Token)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	var user *models.User
	if subject != "" {
		if u, err := h.users.GetUser(r.Context(), subject); err == nil {
			user = u
		}
	}

	cfg, err := editor.BuildSessionConfig(session, doc, user, h.baseURL)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, cfg)
}

// Content handles GET /api/v1/editor/sessions/content?token=...
// The editing service loads the document through this endpoint; the
// session token is the only credential.
func (h *SessionsHandler) Content(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		BadRequest(w, "Session token required")
		return
	}
	doc, rc, err := h.editor.Fetch(r.Context(), token)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	defer rc.Close()
	serveContent(w, doc, rc)
}

// callbackRequest is the status document the editing service posts.
type callbackRequest struct {
	Status int    `json:"status"`
	URL    string `json:"url,omitempty"`
	Key    string `json:"key,omitempty"`
}

// callbackResponse acknowledges a callback. The editing service retries
// until it sees error 0.
type callbackResponse struct {
	Error int `json:"error"`
}

// Callback handles POST /api/v1/editor/sessions/callback?token=...
//
// Save statuses carry a URL to the edited document; the handler downloads
// it and commits the bytes as the next version. A version conflict is
// reported back as an error so the editing service surfaces the failed
// save instead of silently dropping it.
func (h *SessionsHandler) Callback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		BadRequest(w, "Session token required")
		return
	}

	var req callbackRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	switch req.Status {
	case editor.CallbackSave, editor.CallbackForceSave:
		if err := h.commitFromURL(w, r, token, req.URL); err != nil {
			return
		}
	case editor.CallbackClosed:
		if err := h.editor.Close(r.Context(), token); err != nil && !errors.Is(err, models.ErrSessionNotFound) {
			WriteDomainError(w, err)
			return
		}
	case editor.CallbackEditing, editor.CallbackSaveError, editor.CallbackForceSaveError:
		// Nothing to do; acknowledged below.
	default:
		logger.WarnCtx(r.Context(), "unknown editor callback status", "callback_status", req.Status)
	}

	WriteJSON(w, http.StatusOK, callbackResponse{Error: 0})
}

// commitFromURL downloads the saved document and writes it back. On
// failure the problem response has been written and a non-nil error is
// returned.
func (h *SessionsHandler) commitFromURL(w http.ResponseWriter, r *http.Request, token, rawURL string) error {
	if rawURL == "" {
		BadRequest(w, "Save callback carries no document URL")
		return errors.New("missing url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		BadRequest(w, "Invalid document URL")
		return err
	}
	if !h.hostAllowed(u) {
		logger.WarnCtx(r.Context(), "save callback URL host rejected",
			"callback_host", u.Host)
		BadRequest(w, "Document URL host is not an allowed editor host")
		return errors.New("host not allowed")
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		BadRequest(w, "Invalid document URL")
		return err
	}
	resp, err := h.fetch.Do(req)
	if err != nil {
		WriteJSON(w, http.StatusOK, callbackResponse{Error: 1})
		logger.ErrorCtx(r.Context(), "failed to download edited document",
			logger.KeyError, err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		WriteJSON(w, http.StatusOK, callbackResponse{Error: 1})
		logger.ErrorCtx(r.Context(), "edited document download returned non-200",
			logger.KeyStatus, resp.StatusCode)
		return errors.New("download failed")
	}

	if _, err := h.editor.CommitWriteback(r.Context(), token, resp.Body); err != nil {
		WriteDomainError(w, err)
		return err
	}
	return nil
}

// hostAllowed reports whether the URL targets a configured editor host.
// Entries with a port must match host:port exactly; bare entries match any
// port on that host.
func (h *SessionsHandler) hostAllowed(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	for _, entry := range h.allowedHosts {
		if strings.Contains(entry, ":") {
			if strings.EqualFold(entry, u.Host) {
				return true
			}
			continue
		}
		if strings.EqualFold(entry, u.Hostname()) {
			return true
		}
	}
	return false
}
