package store

import (
	"context"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// CreateShare persists a share grant, minting an ID when absent. A second
// active friend share for the same (document, grantee) pair or a token
// collision both surface as ErrDuplicateShare / ErrDuplicateToken through
// the unique indexes.
func (s *GORMStore) CreateShare(ctx context.Context, share *models.ShareGrant) (string, error) {
	dupErr := models.ErrDuplicateShare
	if share.Type == models.ShareTypePublic {
		dupErr = models.ErrDuplicateToken
	}
	return createWithID(s.db, ctx, share,
		func(g *models.ShareGrant, id string) { g.ID = id },
		share.ID, dupErr)
}

// GetShare retrieves a share grant by ID.
func (s *GORMStore) GetShare(ctx context.Context, id string) (*models.ShareGrant, error) {
	return getByField[models.ShareGrant](s.db, ctx, "id", id, models.ErrShareNotFound)
}

// GetShareByToken retrieves a public share by its link token. Tombstoned
// rows are returned too; the caller decides how a revoked link presents.
func (s *GORMStore) GetShareByToken(ctx context.Context, token string) (*models.ShareGrant, error) {
	return getByField[models.ShareGrant](s.db, ctx, "token", token, models.ErrShareNotFound)
}

// GetActiveFriendShare returns the unrevoked friend share granting
// granteeID access to documentID, or ErrShareNotFound.
func (s *GORMStore) GetActiveFriendShare(ctx context.Context, documentID, granteeID string) (*models.ShareGrant, error) {
	var share models.ShareGrant
	err := s.db.WithContext(ctx).
		Where("document_id = ? AND grantee_id = ? AND type = ? AND revoked_at IS NULL",
			documentID, granteeID, models.ShareTypeFriend).
		First(&share).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrShareNotFound)
	}
	return &share, nil
}

// ListSharesByGrantor returns every share the user handed out, newest first,
// tombstones included.
func (s *GORMStore) ListSharesByGrantor(ctx context.Context, grantorID string) ([]*models.ShareGrant, error) {
	return listByField[models.ShareGrant](s.db, ctx, "grantor_id", grantorID, "created_at DESC")
}

// ListSharesGrantedTo returns the active friend shares naming the user as
// grantee, newest first.
func (s *GORMStore) ListSharesGrantedTo(ctx context.Context, granteeID string) ([]*models.ShareGrant, error) {
	var shares []*models.ShareGrant
	err := s.db.WithContext(ctx).
		Where("grantee_id = ? AND revoked_at IS NULL", granteeID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// RevokeShare ends a grant. Friend shares are deleted outright; public
// shares are tombstoned by setting revoked_at so the unique token index
// keeps the token burned forever. Revoking an already revoked public share
// is a no-op.
func (s *GORMStore) RevokeShare(ctx context.Context, id string) error {
	share, err := s.GetShare(ctx, id)
	if err != nil {
		return err
	}
	if share.Type == models.ShareTypeFriend {
		return deleteByField[models.ShareGrant](s.db, ctx, "id", id, models.ErrShareNotFound)
	}
	if share.RevokedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Model(&models.ShareGrant{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ReapExpiredPublicShares tombstones public shares whose expiry passed
// before cutoff. Expired links already resolve to no access; reaping just
// makes the terminal state explicit in the table.
func (s *GORMStore) ReapExpiredPublicShares(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.ShareGrant{}).
		Where("type = ? AND revoked_at IS NULL AND expires_at IS NOT NULL AND expires_at < ?",
			models.ShareTypePublic, cutoff).
		Update("revoked_at", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
