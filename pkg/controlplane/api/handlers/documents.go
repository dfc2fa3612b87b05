package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// maxUploadBytes caps a single upload body. Individual accounts are bounded
// by quota well below this; the cap only stops a runaway body from tying up
// the content store.
const maxUploadBytes = 256 << 20

// DocumentsHandler serves document CRUD and content transfer.
type DocumentsHandler struct {
	ledger  *ledger.Service
	sharing *sharing.Service
}

// NewDocumentsHandler creates a documents handler.
func NewDocumentsHandler(ld *ledger.Service, sh *sharing.Service) *DocumentsHandler {
	return &DocumentsHandler{ledger: ld, sharing: sh}
}

// List handles GET /api/v1/documents.
// Returns the authenticated user's documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	docs, err := h.ledger.ListByOwner(r.Context(), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, docs)
}

// Create handles POST /api/v1/documents.
// Accepts a multipart form with a "file" part; an optional "name" field
// overrides the uploaded filename.
func (h *DocumentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "Multipart form with a 'file' part required")
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	doc, err := h.ledger.Create(r.Context(), subject, name, editor.MIMEForName(name), file)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, doc)
}

// Get handles GET /api/v1/documents/{id}.
// Owners and friend-share grantees can read metadata.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	access, err := h.sharing.ResolveAccess(r.Context(), subject, id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !access.CanRead() {
		NotFound(w, "Document not found")
		return
	}

	doc, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// Download handles GET /api/v1/documents/{id}/content.
// Streams the current document content to anyone with read access.
func (h *DocumentsHandler) Download(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	access, err := h.sharing.ResolveAccess(r.Context(), subject, id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !access.CanRead() {
		NotFound(w, "Document not found")
		return
	}

	doc, rc, err := h.ledger.Open(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	defer rc.Close()
	serveContent(w, doc, rc)
}

// Replace handles PUT /api/v1/documents/{id}/content.
// The raw request body becomes the next version. The If-Match header must
// carry the version the client last saw; a stale value fails with 409.
// Only the owner may write.
func (h *DocumentsHandler) Replace(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	expectedVersion, ok := parseIfMatch(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, subject, id) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	doc, err := h.ledger.Replace(r.Context(), id, expectedVersion, r.Body)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// Rename handles PATCH /api/v1/documents/{id}.
func (h *DocumentsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !h.requireOwner(w, r, subject, id) {
		return
	}

	doc, err := h.ledger.Rename(r.Context(), id, req.Name)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/v1/documents/{id}.
func (h *DocumentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if !h.requireOwner(w, r, subject, id) {
		return
	}
	if err := h.ledger.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// Quota handles GET /api/v1/quota.
func (h *DocumentsHandler) Quota(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectID(w, r)
	if !ok {
		return
	}
	quota, err := h.ledger.Usage(r.Context(), subject)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{
		"used":      quota.Used,
		"limit":     quota.Limit,
		"available": quota.Available(),
	})
}

// requireOwner checks the subject owns the document, answering 404 for
// anything else so existence is not leaked.
func (h *DocumentsHandler) requireOwner(w http.ResponseWriter, r *http.Request, subject, id string) bool {
	access, err := h.sharing.ResolveAccess(r.Context(), subject, id)
	if err != nil {
		WriteDomainError(w, err)
		return false
	}
	if access != sharing.AccessOwner {
		NotFound(w, "Document not found")
		return false
	}
	return true
}

// parseIfMatch reads the version from the If-Match header.
func parseIfMatch(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.Header.Get("If-Match")
	if raw == "" {
		BadRequest(w, "If-Match header with the current document version required")
		return 0, false
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 1 {
		BadRequest(w, "If-Match header must be a positive version number")
		return 0, false
	}
	return version, true
}

// serveContent writes the document bytes with download headers.
func serveContent(w http.ResponseWriter, doc *models.Document, r io.Reader) {
	w.Header().Set("Content-Type", doc.Kind)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	_, _ = io.Copy(w, r)
}
