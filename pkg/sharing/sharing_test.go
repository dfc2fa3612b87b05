package sharing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st), st
}

func seedDocument(t *testing.T, st store.Store, owner, name string) *models.Document {
	t.Helper()
	doc := &models.Document{
		OwnerID:   owner,
		Name:      name,
		Size:      10,
		Kind:      "application/pdf",
		Version:   1,
		ContentID: "content-" + name,
	}
	if err := st.CreateDocument(context.Background(), doc, 1<<20); err != nil {
		t.Fatalf("seed document failed: %v", err)
	}
	return doc
}

func seedFriendship(t *testing.T, st store.Store, a, b string) {
	t.Helper()
	ctx := context.Background()
	f, err := st.CreateFriendRequest(ctx, a, b)
	if err != nil {
		t.Fatalf("friend request failed: %v", err)
	}
	if _, err := st.AcceptFriendRequest(ctx, f.ID, b); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
}

func TestShareToFriend(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "plan.pdf")
	seedFriendship(t, st, "alice", "bob")

	grant, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob")
	if err != nil {
		t.Fatalf("ShareToFriend failed: %v", err)
	}
	if grant.Type != models.ShareTypeFriend || *grant.GranteeID != "bob" {
		t.Errorf("unexpected grant: %+v", grant)
	}

	access, err := s.ResolveAccess(ctx, "bob", doc.ID)
	if err != nil {
		t.Fatalf("ResolveAccess failed: %v", err)
	}
	if access != AccessRead {
		t.Errorf("expected read access, got %s", access)
	}
}

func TestShareToFriendRejections(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "plan.pdf")
	seedFriendship(t, st, "alice", "bob")

	tests := []struct {
		name    string
		grantor string
		doc     string
		grantee string
		wantErr error
	}{
		{"not owner", "bob", doc.ID, "alice", models.ErrNotOwner},
		{"self share", "alice", doc.ID, "alice", models.ErrNotFriends},
		{"not friends", "alice", doc.ID, "mallory", models.ErrNotFriends},
		{"missing document", "alice", "no-such-doc", "bob", models.ErrDocumentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ShareToFriend(ctx, tt.grantor, tt.doc, tt.grantee); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Duplicate share for the same pair.
	if _, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob"); err != nil {
		t.Fatalf("first share failed: %v", err)
	}
	if _, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob"); !errors.Is(err, models.ErrDuplicateShare) {
		t.Errorf("expected duplicate share, got %v", err)
	}
}

func TestRevokeFriendShareAllowsRegrant(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "plan.pdf")
	seedFriendship(t, st, "alice", "bob")

	grant, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob")
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}

	// Only the grantor may revoke.
	if err := s.Revoke(ctx, "bob", grant.ID); !errors.Is(err, models.ErrNotOwner) {
		t.Errorf("expected not owner, got %v", err)
	}
	if err := s.Revoke(ctx, "alice", grant.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	access, _ := s.ResolveAccess(ctx, "bob", doc.ID)
	if access != AccessNone {
		t.Errorf("expected no access after revoke, got %s", access)
	}

	// A friend share can be granted again after revocation.
	if _, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob"); err != nil {
		t.Fatalf("re-grant failed: %v", err)
	}
}

func TestPublicLinkLifecycle(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "flyer.pdf")

	grant, err := s.CreatePublicLink(ctx, "alice", doc.ID, nil)
	if err != nil {
		t.Fatalf("CreatePublicLink failed: %v", err)
	}
	if grant.Token == nil || len(*grant.Token) < 40 {
		t.Fatalf("expected a long random token, got %v", grant.Token)
	}

	resolved, _, err := s.ResolveToken(ctx, *grant.Token)
	if err != nil {
		t.Fatalf("ResolveToken failed: %v", err)
	}
	if resolved.ID != doc.ID {
		t.Errorf("resolved wrong document: %+v", resolved)
	}

	// After revocation the token behaves like an unknown one.
	if err := s.Revoke(ctx, "alice", grant.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, _, err := s.ResolveToken(ctx, *grant.Token); !errors.Is(err, models.ErrShareNotFound) {
		t.Errorf("expected not found for revoked token, got %v", err)
	}
}

func TestPublicLinkExpiry(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "flyer.pdf")
	past := time.Now().Add(-time.Minute)
	grant, err := s.CreatePublicLink(ctx, "alice", doc.ID, &past)
	if err != nil {
		t.Fatalf("CreatePublicLink failed: %v", err)
	}

	if _, _, err := s.ResolveToken(ctx, *grant.Token); !errors.Is(err, models.ErrShareExpired) {
		t.Errorf("expected expired, got %v", err)
	}

	// Reaping tombstones it; afterwards it is indistinguishable from a
	// revoked link.
	n, err := s.ReapExpired(ctx)
	if err != nil {
		t.Fatalf("ReapExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 reaped, got %d", n)
	}
	if _, _, err := s.ResolveToken(ctx, *grant.Token); !errors.Is(err, models.ErrShareNotFound) {
		t.Errorf("expected not found after reap, got %v", err)
	}
}

func TestPublicLinkOnlyOwner(t *testing.T) {
	s, st := newTestService(t)
	doc := seedDocument(t, st, "alice", "flyer.pdf")

	if _, err := s.CreatePublicLink(context.Background(), "bob", doc.ID, nil); !errors.Is(err, models.ErrNotOwner) {
		t.Errorf("expected not owner, got %v", err)
	}
}

func TestMultiplePublicLinksPerDocument(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()
	doc := seedDocument(t, st, "alice", "flyer.pdf")

	a, err := s.CreatePublicLink(ctx, "alice", doc.ID, nil)
	if err != nil {
		t.Fatalf("first link failed: %v", err)
	}
	b, err := s.CreatePublicLink(ctx, "alice", doc.ID, nil)
	if err != nil {
		t.Fatalf("second link failed: %v", err)
	}
	if *a.Token == *b.Token {
		t.Error("expected distinct tokens")
	}

	// Revoking one leaves the other live.
	if err := s.Revoke(ctx, "alice", a.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, _, err := s.ResolveToken(ctx, *b.Token); err != nil {
		t.Errorf("surviving link broken: %v", err)
	}
}

func TestResolveAccessOwner(t *testing.T) {
	s, st := newTestService(t)
	doc := seedDocument(t, st, "alice", "mine.pdf")

	access, err := s.ResolveAccess(context.Background(), "alice", doc.ID)
	if err != nil {
		t.Fatalf("ResolveAccess failed: %v", err)
	}
	if access != AccessOwner {
		t.Errorf("expected owner access, got %s", access)
	}
	if !access.CanRead() {
		t.Error("owner access must allow read")
	}
}

func TestListings(t *testing.T) {
	s, st := newTestService(t)
	ctx := context.Background()

	doc := seedDocument(t, st, "alice", "plan.pdf")
	seedFriendship(t, st, "alice", "bob")
	if _, err := s.ShareToFriend(ctx, "alice", doc.ID, "bob"); err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if _, err := s.CreatePublicLink(ctx, "alice", doc.ID, nil); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	byGrantor, err := s.ListByGrantor(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByGrantor failed: %v", err)
	}
	if len(byGrantor) != 2 {
		t.Errorf("expected 2 grants, got %d", len(byGrantor))
	}

	toBob, err := s.ListGrantedTo(ctx, "bob")
	if err != nil {
		t.Fatalf("ListGrantedTo failed: %v", err)
	}
	if len(toBob) != 1 {
		t.Errorf("expected 1 grant, got %d", len(toBob))
	}
}
