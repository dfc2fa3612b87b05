package editor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/paperbay/paperbay/pkg/content/store/memory"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/sharing"
)

type fixture struct {
	editor  *Service
	ledger  *ledger.Service
	sharing *sharing.Service
	store   store.Store
}

func newFixture(t *testing.T, ttl time.Duration) *fixture {
	t.Helper()
	st, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ld := ledger.NewService(st, memory.New(), ledger.Config{DefaultQuotaLimit: 1 << 20})
	sh := sharing.NewService(st)
	return &fixture{
		editor:  NewService(st, ld, sh, Config{SessionTTL: ttl}),
		ledger:  ld,
		sharing: sh,
		store:   st,
	}
}

func (f *fixture) createDoc(t *testing.T, owner, name, body string) *models.Document {
	t.Helper()
	doc, err := f.ledger.Create(context.Background(), owner, name, MIMEForName(name), strings.NewReader(body))
	if err != nil {
		t.Fatalf("create document failed: %v", err)
	}
	return doc
}

func (f *fixture) befriend(t *testing.T, a, b string) {
	t.Helper()
	ctx := context.Background()
	fr, err := f.store.CreateFriendRequest(ctx, a, b)
	if err != nil {
		t.Fatalf("friend request failed: %v", err)
	}
	if _, err := f.store.AcceptFriendRequest(ctx, fr.ID, b); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
}

func TestOpenOwnerReadWrite(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !session.CanWrite() {
		t.Error("owner session must allow writes")
	}
	if session.BaseVersion != 1 {
		t.Errorf("expected base version 1, got %d", session.BaseVersion)
	}
	if session.Token == "" {
		t.Error("expected minted token")
	}
}

func TestOpenGranteeSessions(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")
	f.befriend(t, "alice", "bob")
	if _, err := f.sharing.ShareToFriend(ctx, "alice", doc.ID, "bob"); err != nil {
		t.Fatalf("share failed: %v", err)
	}

	session, err := f.editor.Open(ctx, "bob", doc.ID, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if session.CanWrite() {
		t.Error("view session must be read-only")
	}

	// A friend-share grantee may edit; the pinned base version arbitrates
	// races with the owner.
	writeSession, err := f.editor.Open(ctx, "bob", doc.ID, true)
	if err != nil {
		t.Fatalf("Open write failed: %v", err)
	}
	if !writeSession.CanWrite() {
		t.Error("grantee write session must allow writes")
	}
	if writeSession.BaseVersion != doc.Version {
		t.Errorf("expected base version %d, got %d", doc.Version, writeSession.BaseVersion)
	}

	// Strangers have nothing.
	if _, err := f.editor.Open(ctx, "mallory", doc.ID, false); !errors.Is(err, models.ErrAccessDenied) {
		t.Errorf("expected access denied, got %v", err)
	}
	if _, err := f.editor.Open(ctx, "mallory", doc.ID, true); !errors.Is(err, models.ErrAccessDenied) {
		t.Errorf("expected access denied, got %v", err)
	}
}

func TestGranteeWritebackBumpsVersion(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")
	f.befriend(t, "alice", "bob")
	if _, err := f.sharing.ShareToFriend(ctx, "alice", doc.ID, "bob"); err != nil {
		t.Fatalf("share failed: %v", err)
	}

	session, err := f.editor.Open(ctx, "bob", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	updated, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("bob's draft"))
	if err != nil {
		t.Fatalf("CommitWriteback failed: %v", err)
	}
	if updated.Version != doc.Version+1 {
		t.Errorf("expected version %d, got %d", doc.Version+1, updated.Version)
	}
}

func TestOpenUnsupportedKind(t *testing.T) {
	f := newFixture(t, time.Hour)
	doc := f.createDoc(t, "alice", "archive.zip", "binary")

	if _, err := f.editor.Open(context.Background(), "alice", doc.ID, true); !errors.Is(err, models.ErrUnsupportedKind) {
		t.Errorf("expected unsupported kind, got %v", err)
	}
}

func TestOpenPublicSession(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	link, err := f.sharing.CreatePublicLink(ctx, "alice", doc.ID, nil)
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}

	session, err := f.editor.OpenPublic(ctx, *link.Token)
	if err != nil {
		t.Fatalf("OpenPublic failed: %v", err)
	}
	if session.CanWrite() {
		t.Error("public session must be read-only")
	}
	if session.SubjectID != nil {
		t.Error("public session must carry no subject")
	}
}

func TestFetchStreamsContent(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "the content")

	session, err := f.editor.Open(ctx, "alice", doc.ID, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_, rc, err := f.editor.Fetch(ctx, session.Token)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "the content" {
		t.Errorf("unexpected content: %q", data)
	}

	if _, _, err := f.editor.Fetch(ctx, "bogus-token"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected not found for unknown token, got %v", err)
	}
}

func TestCommitWriteback(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	updated, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("v2 from editor"))
	if err != nil {
		t.Fatalf("CommitWriteback failed: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("expected version=2, got %d", updated.Version)
	}

	// The session is consumed: a second commit is rejected.
	if _, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("v3")); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected consumed session rejected, got %v", err)
	}

	_, rc, err := f.ledger.Open(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "v2 from editor" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestCommitWritebackReadOnlySession(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("x")); !errors.Is(err, models.ErrReadOnlySession) {
		t.Errorf("expected read-only rejection, got %v", err)
	}
}

func TestCommitWritebackStaleBaseVersion(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// The document moves on while the editor holds the session.
	if _, err := f.ledger.Replace(ctx, doc.ID, 1, strings.NewReader("direct upload")); err != nil {
		t.Fatalf("direct replace failed: %v", err)
	}

	_, err = f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("late editor save"))
	if !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	// The newer save survives untouched.
	_, rc, _ := f.ledger.Open(ctx, doc.ID)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "direct upload" {
		t.Errorf("late editor save clobbered newer content: %q", data)
	}
}

func TestSessionExpiry(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, _, err := f.editor.Validate(ctx, session.Token); !errors.Is(err, models.ErrSessionExpired) {
		t.Errorf("expected expired, got %v", err)
	}
	// The lazy transition is persisted.
	stored, err := f.store.GetSessionByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.State != models.SessionExpired {
		t.Errorf("expected expired state persisted, got %s", stored.State)
	}
	if _, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("x")); !errors.Is(err, models.ErrSessionExpired) {
		t.Errorf("expected expired on commit, got %v", err)
	}
}

func TestDeleteCascadeRemovesSessions(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.ledger.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Late write-backs resolve like any unknown token.
	if _, err := f.editor.CommitWriteback(ctx, session.Token, strings.NewReader("x")); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected session not found after delete, got %v", err)
	}
	if _, _, err := f.editor.Validate(ctx, session.Token); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expected session not found on validate, got %v", err)
	}
}

func TestCloseRetiresSession(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.editor.Close(ctx, session.Token); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, _, err := f.editor.Validate(ctx, session.Token); !errors.Is(err, models.ErrSessionExpired) {
		t.Errorf("expected expired after close, got %v", err)
	}
}

func TestTypeForKind(t *testing.T) {
	tests := []struct {
		kind     string
		wantType DocumentType
		wantErr  bool
	}{
		{MIMEForName("report.docx"), TypeWord, false},
		{"text/plain", TypeWord, false},
		{MIMEForName("data.xlsx"), TypeCell, false},
		{"text/csv", TypeCell, false},
		{MIMEForName("deck.pptx"), TypeSlide, false},
		{MIMEForName("slides.odp"), TypeSlide, false},
		{"application/zip", "", true},
		{"application/octet-stream", "", true},
	}
	for _, tt := range tests {
		got, err := TypeForKind(tt.kind)
		if tt.wantErr {
			if !errors.Is(err, models.ErrUnsupportedKind) {
				t.Errorf("%s: expected unsupported kind, got %v", tt.kind, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.kind, err)
			continue
		}
		if got != tt.wantType {
			t.Errorf("%s: expected %s, got %s", tt.kind, tt.wantType, got)
		}
	}
}

func TestEditabilitySurvivesRename(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")

	renamed, err := f.ledger.Rename(ctx, doc.ID, "report")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if !EditableKind(renamed.Kind) {
		t.Fatal("rename must not change the content kind")
	}

	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open after rename failed: %v", err)
	}
	cfg, err := BuildSessionConfig(session, renamed, nil, "http://localhost:8080")
	if err != nil {
		t.Fatalf("BuildSessionConfig failed: %v", err)
	}
	if cfg.DocumentType != string(TypeWord) {
		t.Errorf("expected word surface, got %s", cfg.DocumentType)
	}
	if cfg.Document.FileType != "docx" {
		t.Errorf("expected docx file type, got %s", cfg.Document.FileType)
	}
}

func TestBuildSessionConfig(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	doc := f.createDoc(t, "alice", "report.docx", "v1")
	session, err := f.editor.Open(ctx, "alice", doc.ID, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	cfg, err := BuildSessionConfig(session, doc, &models.User{ID: "alice", Username: "alice"}, "https://paperbay.example")
	if err != nil {
		t.Fatalf("BuildSessionConfig failed: %v", err)
	}
	if cfg.DocumentType != string(TypeWord) {
		t.Errorf("expected word surface, got %s", cfg.DocumentType)
	}
	if cfg.Editor.Mode != "edit" {
		t.Errorf("expected edit mode, got %s", cfg.Editor.Mode)
	}
	if !strings.Contains(cfg.Document.URL, session.Token) {
		t.Error("content URL must carry the session token")
	}
	if !strings.Contains(cfg.Editor.CallbackURL, session.Token) {
		t.Error("callback URL must carry the session token")
	}
	if cfg.Document.Key != doc.ID+"-1" {
		t.Errorf("unexpected document key: %s", cfg.Document.Key)
	}

	// Anonymous sessions fall back to a guest identity and view mode.
	link, err := f.sharing.CreatePublicLink(ctx, "alice", doc.ID, nil)
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}
	pub, err := f.editor.OpenPublic(ctx, *link.Token)
	if err != nil {
		t.Fatalf("OpenPublic failed: %v", err)
	}
	pubCfg, err := BuildSessionConfig(pub, doc, nil, "https://paperbay.example")
	if err != nil {
		t.Fatalf("BuildSessionConfig failed: %v", err)
	}
	if pubCfg.Editor.Mode != "view" || pubCfg.Editor.User.ID != "anonymous" {
		t.Errorf("unexpected public config: %+v", pubCfg.Editor)
	}
}
