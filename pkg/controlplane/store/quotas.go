package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// GetQuota retrieves an owner's quota account.
func (s *GORMStore) GetQuota(ctx context.Context, ownerID string) (*models.QuotaAccount, error) {
	return getByField[models.QuotaAccount](s.db, ctx, "owner_id", ownerID, models.ErrQuotaNotFound)
}

// EnsureQuota provisions the owner's quota account with defaultLimit when it
// does not exist yet, and returns the account either way.
func (s *GORMStore) EnsureQuota(ctx context.Context, ownerID string, defaultLimit int64) (*models.QuotaAccount, error) {
	var quota *models.QuotaAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		quota, err = ensureQuotaTx(tx, ctx, ownerID, defaultLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quota, nil
}

// SetQuotaLimit overrides an existing account's byte limit. Lowering the
// limit below current usage is allowed; the account simply cannot grow until
// usage drops back under the new limit.
func (s *GORMStore) SetQuotaLimit(ctx context.Context, ownerID string, limit int64) error {
	result := s.db.WithContext(ctx).Model(&models.QuotaAccount{}).
		Where("owner_id = ?", ownerID).
		Update("byte_limit", limit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrQuotaNotFound
	}
	return nil
}
