// Package sharing implements the access-control graph: friend shares,
// public link tokens, and access resolution for documents.
package sharing

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

// Access is the effective access level a subject has on a document.
type Access string

const (
	AccessNone  Access = "none"
	AccessRead  Access = "read"
	AccessOwner Access = "owner"
)

// CanRead reports whether the level allows reading document content.
func (a Access) CanRead() bool {
	return a == AccessRead || a == AccessOwner
}

// tokenBytes is the entropy of a public link token. 32 random bytes encode
// to 43 URL-safe characters.
const tokenBytes = 32

// Service manages share grants. All grants reference documents by ID; the
// document's existence and ownership are checked against the store on every
// mutation.
type Service struct {
	store store.Store
}

// NewService creates a sharing service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ShareToFriend grants granteeID read access to the grantor's document.
// The grantor must own the document and the pair must be friends; sharing
// with oneself or re-sharing an already shared document fails.
func (s *Service) ShareToFriend(ctx context.Context, grantorID, documentID, granteeID string) (*models.ShareGrant, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != grantorID {
		return nil, models.ErrNotOwner
	}
	if granteeID == grantorID {
		return nil, models.ErrNotFriends
	}
	friends, err := s.store.AreFriends(ctx, grantorID, granteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !friends {
		return nil, models.ErrNotFriends
	}

	grant := &models.ShareGrant{
		DocumentID: documentID,
		GrantorID:  grantorID,
		Type:       models.ShareTypeFriend,
		GranteeID:  &granteeID,
	}
	if _, err := s.store.CreateShare(ctx, grant); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "friend share created",
		logger.KeyShare, grant.ID,
		logger.KeyDocument, documentID,
		logger.KeyGrantee, granteeID)
	return grant, nil
}

// CreatePublicLink mints an unguessable token granting read access to any
// bearer. expiresAt is optional; nil means the link lives until revoked.
// A document may carry any number of live public links.
func (s *Service) CreatePublicLink(ctx context.Context, grantorID, documentID string, expiresAt *time.Time) (*models.ShareGrant, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != grantorID {
		return nil, models.ErrNotOwner
	}

	token, err := mintToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}
	grant := &models.ShareGrant{
		DocumentID: documentID,
		GrantorID:  grantorID,
		Type:       models.ShareTypePublic,
		Token:      &token,
		ExpiresAt:  expiresAt,
	}
	if _, err := s.store.CreateShare(ctx, grant); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "public link created",
		logger.KeyShare, grant.ID,
		logger.KeyDocument, documentID)
	return grant, nil
}

// Revoke ends a grant. Only the grantor may revoke. Friend shares disappear
// and can be re-granted later; public links are tombstoned and their token
// is burned for good.
func (s *Service) Revoke(ctx context.Context, grantorID, shareID string) error {
	grant, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		return err
	}
	if grant.GrantorID != grantorID {
		return models.ErrNotOwner
	}
	if err := s.store.RevokeShare(ctx, shareID); err != nil {
		return err
	}
	logger.InfoCtx(ctx, "share revoked",
		logger.KeyShare, shareID,
		logger.KeyDocument, grant.DocumentID)
	return nil
}

// ResolveAccess computes the effective access subjectID has on the
// document: owners get AccessOwner, active friend-share grantees get
// AccessRead, everyone else AccessNone. Expired shares resolve to none but
// are not mutated here.
func (s *Service) ResolveAccess(ctx context.Context, subjectID, documentID string) (Access, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return AccessNone, err
	}
	if doc.OwnerID == subjectID {
		return AccessOwner, nil
	}
	grant, err := s.store.GetActiveFriendShare(ctx, documentID, subjectID)
	if err != nil {
		if errors.Is(err, models.ErrShareNotFound) {
			return AccessNone, nil
		}
		return AccessNone, err
	}
	if !grant.Active(time.Now()) {
		return AccessNone, nil
	}
	return AccessRead, nil
}

// ResolveToken resolves a public link token to its document. Revoked
// tokens behave exactly like unknown ones so a burned link leaks nothing;
// expired tokens fail with ErrShareExpired.
func (s *Service) ResolveToken(ctx context.Context, token string) (*models.Document, *models.ShareGrant, error) {
	grant, err := s.store.GetShareByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if grant.RevokedAt != nil {
		return nil, nil, models.ErrShareNotFound
	}
	if grant.Expired(time.Now()) {
		return nil, nil, models.ErrShareExpired
	}
	doc, err := s.store.GetDocument(ctx, grant.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return doc, grant, nil
}

// ListByGrantor returns every grant the user handed out, tombstones
// included so revoked links remain auditable.
func (s *Service) ListByGrantor(ctx context.Context, grantorID string) ([]*models.ShareGrant, error) {
	return s.store.ListSharesByGrantor(ctx, grantorID)
}

// ListGrantedTo returns the active friend shares naming the user as
// grantee.
func (s *Service) ListGrantedTo(ctx context.Context, granteeID string) ([]*models.ShareGrant, error) {
	return s.store.ListSharesGrantedTo(ctx, granteeID)
}

// ReapExpired tombstones public links whose expiry has passed. Callers run
// it periodically; resolution does not depend on it.
func (s *Service) ReapExpired(ctx context.Context) (int64, error) {
	n, err := s.store.ReapExpiredPublicShares(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.DebugCtx(ctx, "expired public links reaped", "count", n)
	}
	return n, nil
}

// mintToken returns a fresh URL-safe bearer token.
func mintToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
