package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paperbay/paperbay/pkg/content/store/memory"
	"github.com/paperbay/paperbay/pkg/controlplane/api/auth"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/editor"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// apiFixture wires the full stack behind an httptest server.
type apiFixture struct {
	ts      *httptest.Server
	jwt     *auth.JWTService
	store   store.Store
	ledger  *ledger.Service
	sharing *sharing.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cpStore, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = cpStore.Close() })

	contentStore := memory.New()
	ledgerSvc := ledger.NewService(cpStore, contentStore, ledger.Config{})
	sharingSvc := sharing.NewService(cpStore)
	editorSvc := editor.NewService(cpStore, ledgerSvc, sharingSvc, editor.Config{})

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret-key-for-testing-only-32chars",
		Issuer: "test",
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	router := NewRouter(RouterDeps{
		Store:         cpStore,
		Ledger:        ledgerSvc,
		Sharing:       sharingSvc,
		Editor:        editorSvc,
		JWTService:    jwtService,
		PublicBaseURL: "http://paperbay.test",
		// Callback download tests serve from local httptest servers.
		EditorAllowedHosts: []string{"127.0.0.1"},
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &apiFixture{
		ts:      ts,
		jwt:     jwtService,
		store:   cpStore,
		ledger:  ledgerSvc,
		sharing: sharingSvc,
	}
}

func (f *apiFixture) token(t *testing.T, subject, username string) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(subject, username)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// do issues a request against the test server. An empty token leaves the
// request unauthenticated.
func (f *apiFixture) do(t *testing.T, method, path, token string, body io.Reader, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.ts.URL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func (f *apiFixture) doJSON(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	header := http.Header{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
		header.Set("Content-Type", "application/json")
	}
	return f.do(t, method, path, token, body, header)
}

// upload creates a document through the multipart endpoint and returns
// the decoded record.
func (f *apiFixture) upload(t *testing.T, token, filename, data string) models.Document {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := io.WriteString(part, data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	header := http.Header{}
	header.Set("Content-Type", mw.FormDataContentType())
	resp := f.do(t, http.MethodPost, "/api/v1/documents", token, &buf, header)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload status = %d, want 201, body = %s", resp.StatusCode, raw)
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}
	return doc
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("status = %d, want %d, body = %s", resp.StatusCode, want, raw)
	}
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	f := newAPIFixture(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/documents"},
		{http.MethodGet, "/api/v1/quota"},
		{http.MethodGet, "/api/v1/shares"},
		{http.MethodGet, "/api/v1/friends"},
	}
	for _, p := range paths {
		resp := f.do(t, p.method, p.path, "", nil, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", p.method, p.path, resp.StatusCode)
		}
	}
}

func TestRouter_HealthUnauthenticated(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodGet, "/health", "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	body := decodeBody[map[string]any](t, resp)
	if body["service"] != "paperbay" {
		t.Errorf("service = %v, want paperbay", body["service"])
	}

	resp = f.do(t, http.MethodGet, "/health/ready", "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestDocumentLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")

	doc := f.upload(t, alice, "notes.docx", "hello world")
	if doc.Version != 1 {
		t.Errorf("version = %d, want 1", doc.Version)
	}
	if doc.Size != int64(len("hello world")) {
		t.Errorf("size = %d, want %d", doc.Size, len("hello world"))
	}

	// Listing shows the document.
	resp := f.do(t, http.MethodGet, "/api/v1/documents", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	docs := decodeBody[[]models.Document](t, resp)
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("list = %+v, want single document %s", docs, doc.ID)
	}

	// Download returns the original bytes.
	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/content", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "hello world" {
		t.Errorf("content = %q, want %q", raw, "hello world")
	}

	// Replace with the correct version.
	header := http.Header{}
	header.Set("If-Match", "1")
	resp = f.do(t, http.MethodPut, "/api/v1/documents/"+doc.ID+"/content", alice,
		strings.NewReader("hello again"), header)
	wantStatus(t, resp, http.StatusOK)
	updated := decodeBody[models.Document](t, resp)
	if updated.Version != 2 {
		t.Errorf("version after replace = %d, want 2", updated.Version)
	}

	// Replace with a stale version conflicts.
	header = http.Header{}
	header.Set("If-Match", "1")
	resp = f.do(t, http.MethodPut, "/api/v1/documents/"+doc.ID+"/content", alice,
		strings.NewReader("stale write"), header)
	wantStatus(t, resp, http.StatusConflict)

	// Rename.
	resp = f.doJSON(t, http.MethodPatch, "/api/v1/documents/"+doc.ID, alice,
		map[string]string{"name": "renamed.docx"})
	wantStatus(t, resp, http.StatusOK)
	renamed := decodeBody[models.Document](t, resp)
	if renamed.Name != "renamed.docx" {
		t.Errorf("name = %q, want renamed.docx", renamed.Name)
	}

	// Quota reflects the current content size.
	resp = f.do(t, http.MethodGet, "/api/v1/quota", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	quota := decodeBody[map[string]int64](t, resp)
	if quota["used"] != int64(len("hello again")) {
		t.Errorf("quota used = %d, want %d", quota["used"], len("hello again"))
	}

	// Delete frees the quota.
	resp = f.do(t, http.MethodDelete, "/api/v1/documents/"+doc.ID, alice, nil, nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/quota", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	quota = decodeBody[map[string]int64](t, resp)
	if quota["used"] != 0 {
		t.Errorf("quota used after delete = %d, want 0", quota["used"])
	}
}

func TestDocumentAccessDeniedLooksLikeMissing(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")
	mallory := f.token(t, "user-mallory", "mallory")

	doc := f.upload(t, alice, "secret.docx", "classified")

	cases := []struct {
		name   string
		method string
		path   string
		body   io.Reader
		header http.Header
	}{
		{"get", http.MethodGet, "/api/v1/documents/" + doc.ID, nil, nil},
		{"download", http.MethodGet, "/api/v1/documents/" + doc.ID + "/content", nil, nil},
		{"delete", http.MethodDelete, "/api/v1/documents/" + doc.ID, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, tc.method, tc.path, mallory, tc.body, tc.header)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("status = %d, want 404", resp.StatusCode)
			}
		})
	}
}

// befriend runs the request/accept flow between two authenticated users.
func befriend(t *testing.T, f *apiFixture, requesterToken, addresseeToken, addresseeUsername string) {
	t.Helper()

	resp := f.doJSON(t, http.MethodPost, "/api/v1/friends/requests", requesterToken,
		map[string]string{"username": addresseeUsername})
	wantStatus(t, resp, http.StatusCreated)
	friendship := decodeBody[models.Friendship](t, resp)

	resp = f.doJSON(t, http.MethodPost, "/api/v1/friends/requests/"+friendship.ID+"/accept", addresseeToken, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestFriendShareFlow(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")
	bob := f.token(t, "user-bob", "bob")

	doc := f.upload(t, alice, "plan.docx", "the plan")

	// Sharing before friendship is rejected.
	// Bob's directory row exists because his token has been seen.
	resp := f.do(t, http.MethodGet, "/api/v1/documents", bob, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/shares/friend", alice,
		map[string]string{"username": "bob"})
	wantStatus(t, resp, http.StatusForbidden)

	befriend(t, f, alice, bob, "bob")

	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/shares/friend", alice,
		map[string]string{"username": "bob"})
	wantStatus(t, resp, http.StatusCreated)
	grant := decodeBody[models.ShareGrant](t, resp)

	// Bob can now read metadata and content but not write.
	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID, bob, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/content", bob, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "the plan" {
		t.Errorf("content = %q, want %q", raw, "the plan")
	}

	header := http.Header{}
	header.Set("If-Match", "1")
	resp = f.do(t, http.MethodPut, "/api/v1/documents/"+doc.ID+"/content", bob,
		strings.NewReader("bob's edit"), header)
	wantStatus(t, resp, http.StatusNotFound)

	// The share shows up in both listings.
	resp = f.do(t, http.MethodGet, "/api/v1/shares", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	granted := decodeBody[[]models.ShareGrant](t, resp)
	if len(granted) != 1 {
		t.Errorf("granted shares = %d, want 1", len(granted))
	}
	resp = f.do(t, http.MethodGet, "/api/v1/shares/received", bob, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	received := decodeBody[[]models.ShareGrant](t, resp)
	if len(received) != 1 {
		t.Errorf("received shares = %d, want 1", len(received))
	}

	// Revoking cuts Bob off again.
	resp = f.do(t, http.MethodDelete, "/api/v1/shares/"+grant.ID, alice, nil, nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID, bob, nil, nil)
	wantStatus(t, resp, http.StatusNotFound)
}

func TestPublicLinkFlow(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")

	doc := f.upload(t, alice, "flyer.docx", "come one come all")

	resp := f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/shares/public", alice,
		map[string]int{"expires_in_hours": 24})
	wantStatus(t, resp, http.StatusCreated)
	link := decodeBody[map[string]any](t, resp)
	token, _ := link["token"].(string)
	if token == "" {
		t.Fatal("link response carries no token")
	}
	if url, _ := link["url"].(string); !strings.HasPrefix(url, "http://paperbay.test/public/") {
		t.Errorf("url = %q, want public base prefix", url)
	}

	// Anonymous metadata and download.
	resp = f.do(t, http.MethodGet, "/public/"+token, "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	meta := decodeBody[map[string]any](t, resp)
	if meta["name"] != "flyer.docx" {
		t.Errorf("name = %v, want flyer.docx", meta["name"])
	}
	if _, exposed := meta["owner_id"]; exposed {
		t.Error("public metadata exposes owner_id")
	}

	resp = f.do(t, http.MethodGet, "/public/"+token+"/content", "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "come one come all" {
		t.Errorf("content = %q, want original bytes", raw)
	}

	// Revoke, then the token is dead.
	id, _ := link["id"].(string)
	resp = f.do(t, http.MethodDelete, "/api/v1/shares/"+id, alice, nil, nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/public/"+token, "", nil, nil)
	wantStatus(t, resp, http.StatusNotFound)
}

func TestEditorSessionFlow(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")

	doc := f.upload(t, alice, "draft.docx", "first draft")

	// Open an edit session; the bootstrap config carries token URLs.
	resp := f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/editor/sessions", alice,
		map[string]string{"mode": "edit"})
	wantStatus(t, resp, http.StatusCreated)
	cfg := decodeBody[map[string]any](t, resp)
	document, _ := cfg["document"].(map[string]any)
	if document == nil {
		t.Fatal("session config missing document block")
	}
	contentURL, _ := document["url"].(string)
	if contentURL == "" {
		t.Fatal("session config missing content URL")
	}
	wantKey := fmt.Sprintf("%s-1", doc.ID)
	if document["key"] != wantKey {
		t.Errorf("document key = %v, want %s", document["key"], wantKey)
	}

	sessionToken := contentURL[strings.LastIndex(contentURL, "token=")+len("token="):]

	// The editing service fetches content with only the session token.
	resp = f.do(t, http.MethodGet, "/api/v1/editor/sessions/content?token="+sessionToken, "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "first draft" {
		t.Errorf("fetched content = %q, want %q", raw, "first draft")
	}

	// Stand in for the editing service's document server.
	edited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "second draft")
	}))
	defer edited.Close()

	// Save callback commits the new bytes.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/editor/sessions/callback?token="+sessionToken, "",
		map[string]any{"status": editor.CallbackSave, "url": edited.URL})
	wantStatus(t, resp, http.StatusOK)
	ack := decodeBody[map[string]int](t, resp)
	if ack["error"] != 0 {
		t.Errorf("callback error = %d, want 0", ack["error"])
	}

	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/content", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "second draft" {
		t.Errorf("content after callback = %q, want %q", raw, "second draft")
	}

	// The session was consumed; a second save is rejected.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/editor/sessions/callback?token="+sessionToken, "",
		map[string]any{"status": editor.CallbackSave, "url": edited.URL})
	wantStatus(t, resp, http.StatusNotFound)
}

func TestCallbackRejectsUntrustedHost(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")

	doc := f.upload(t, alice, "draft.docx", "first draft")

	resp := f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/editor/sessions", alice,
		map[string]string{"mode": "edit"})
	wantStatus(t, resp, http.StatusCreated)
	cfg := decodeBody[map[string]any](t, resp)
	document, _ := cfg["document"].(map[string]any)
	contentURL, _ := document["url"].(string)
	sessionToken := contentURL[strings.LastIndex(contentURL, "token=")+len("token="):]

	// Only configured editor hosts may be fetched during a save.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/editor/sessions/callback?token="+sessionToken, "",
		map[string]any{"status": editor.CallbackSave, "url": "http://169.254.169.254/latest/meta-data"})
	wantStatus(t, resp, http.StatusBadRequest)

	// The document is untouched and the session still live.
	resp = f.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/content", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(raw) != "first draft" {
		t.Errorf("content after rejected callback = %q, want %q", raw, "first draft")
	}
	resp = f.do(t, http.MethodGet, "/api/v1/editor/sessions/content?token="+sessionToken, "", nil, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestEditorSessionForGrantee(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")
	bob := f.token(t, "user-bob", "bob")
	mallory := f.token(t, "user-mallory", "mallory")

	doc := f.upload(t, alice, "draft.docx", "first draft")

	// Bob's directory row appears on first authenticated request.
	resp := f.do(t, http.MethodGet, "/api/v1/documents", bob, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	befriend(t, f, alice, bob, "bob")
	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/shares/friend", alice,
		map[string]string{"username": "bob"})
	wantStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	// A friend-share grantee may open an edit session.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/editor/sessions", bob,
		map[string]string{"mode": "edit"})
	wantStatus(t, resp, http.StatusCreated)
	cfg := decodeBody[map[string]any](t, resp)
	editorCfg, _ := cfg["editorConfig"].(map[string]any)
	if editorCfg == nil {
		t.Fatal("session config missing editorConfig block")
	}
	if editorCfg["mode"] != "edit" {
		t.Errorf("mode = %v, want edit", editorCfg["mode"])
	}

	// View sessions stay read-only.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/editor/sessions", bob,
		map[string]string{"mode": "view"})
	wantStatus(t, resp, http.StatusCreated)
	cfg = decodeBody[map[string]any](t, resp)
	editorCfg, _ = cfg["editorConfig"].(map[string]any)
	if editorCfg == nil {
		t.Fatal("session config missing editorConfig block")
	}
	if editorCfg["mode"] != "view" {
		t.Errorf("mode = %v, want view", editorCfg["mode"])
	}

	// No share, no session - the document does not exist for strangers.
	resp = f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/editor/sessions", mallory,
		map[string]string{"mode": "edit"})
	wantStatus(t, resp, http.StatusNotFound)
}

func TestPublicEditorSession(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")

	doc := f.upload(t, alice, "flyer.docx", "come one come all")

	resp := f.doJSON(t, http.MethodPost, "/api/v1/documents/"+doc.ID+"/shares/public", alice,
		map[string]int{})
	wantStatus(t, resp, http.StatusCreated)
	link := decodeBody[map[string]any](t, resp)
	token, _ := link["token"].(string)

	resp = f.doJSON(t, http.MethodPost, "/public/"+token+"/editor/sessions", "", nil)
	wantStatus(t, resp, http.StatusCreated)
	cfg := decodeBody[map[string]any](t, resp)
	editorCfg, _ := cfg["editorConfig"].(map[string]any)
	if editorCfg == nil {
		t.Fatal("session config missing editorConfig block")
	}
	if editorCfg["mode"] != "view" {
		t.Errorf("mode = %v, want view", editorCfg["mode"])
	}
}

func TestUserSearch(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, "user-alice", "alice")
	bob := f.token(t, "user-bob", "bob")

	// Seed directory rows through authenticated requests.
	for _, tok := range []string{alice, bob} {
		resp := f.do(t, http.MethodGet, "/api/v1/documents", tok, nil, nil)
		wantStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}

	resp := f.do(t, http.MethodGet, "/api/v1/users/search?q=bo", alice, nil, nil)
	wantStatus(t, resp, http.StatusOK)
	users := decodeBody[[]models.User](t, resp)
	if len(users) != 1 || users[0].Username != "bob" {
		t.Fatalf("search result = %+v, want bob", users)
	}

	// Too-short queries are rejected.
	resp = f.do(t, http.MethodGet, "/api/v1/users/search?q=b", alice, nil, nil)
	wantStatus(t, resp, http.StatusBadRequest)
}
