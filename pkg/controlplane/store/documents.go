package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// GetDocument retrieves a document by ID.
func (s *GORMStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return getByField[models.Document](s.db, ctx, "id", id, models.ErrDocumentNotFound)
}

// ListDocumentsByOwner returns the owner's documents, most recently updated
// first.
func (s *GORMStore) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.Document, error) {
	return listByField[models.Document](s.db, ctx, "owner_id", ownerID, "updated_at DESC")
}

// CreateDocument inserts the document and debits the owner's quota in a
// single transaction. The quota account is provisioned with defaultLimit on
// first use.
//
// Cross-process writers for the same owner are serialized by the caller, so
// the read-check-debit sequence below does not need row locks.
func (s *GORMStore) CreateDocument(ctx context.Context, doc *models.Document, defaultLimit int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quota, err := ensureQuotaTx(tx, ctx, doc.OwnerID, defaultLimit)
		if err != nil {
			return err
		}
		if !quota.Fits(doc.Size) {
			return &models.QuotaExceededError{
				Owner:     doc.OwnerID,
				Requested: doc.Size,
				Used:      quota.Used,
				Limit:     quota.Limit,
			}
		}
		if _, err := createWithID(tx, ctx, doc,
			func(d *models.Document, id string) { d.ID = id },
			doc.ID, models.ErrDocumentNotFound); err != nil {
			return err
		}
		return debitQuotaTx(tx, ctx, doc.OwnerID, doc.Size)
	})
}

// ReplaceDocumentContent points the document at new content, adjusting size,
// quota and version atomically. The version bump is guarded on
// expectedVersion so a writer holding a stale version loses.
func (s *GORMStore) ReplaceDocumentContent(ctx context.Context, id string, expectedVersion int64, newContentID string, newSize int64) (*models.Document, error) {
	var updated *models.Document
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := getByField[models.Document](tx, ctx, "id", id, models.ErrDocumentNotFound)
		if err != nil {
			return err
		}
		if doc.Version != expectedVersion {
			return &models.VersionConflictError{
				DocumentID: id,
				Expected:   expectedVersion,
				Current:    doc.Version,
			}
		}
		delta := newSize - doc.Size
		if delta > 0 {
			quota, err := getByField[models.QuotaAccount](tx, ctx, "owner_id", doc.OwnerID, models.ErrQuotaNotFound)
			if err != nil {
				return err
			}
			if !quota.Fits(delta) {
				return &models.QuotaExceededError{
					Owner:     doc.OwnerID,
					Requested: delta,
					Used:      quota.Used,
					Limit:     quota.Limit,
				}
			}
		}
		result := tx.WithContext(ctx).Model(&models.Document{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Updates(map[string]any{
				"content_id": newContentID,
				"size":       newSize,
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Raced between the read above and the guarded update.
			current, err := getByField[models.Document](tx, ctx, "id", id, models.ErrDocumentNotFound)
			if err != nil {
				return err
			}
			return &models.VersionConflictError{
				DocumentID: id,
				Expected:   expectedVersion,
				Current:    current.Version,
			}
		}
		if err := debitQuotaTx(tx, ctx, doc.OwnerID, delta); err != nil {
			return err
		}
		updated, err = getByField[models.Document](tx, ctx, "id", id, models.ErrDocumentNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RenameDocument updates the display name. Size, version and content are
// untouched.
func (s *GORMStore) RenameDocument(ctx context.Context, id string, newName string) (*models.Document, error) {
	var updated *models.Document
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.WithContext(ctx).Model(&models.Document{}).
			Where("id = ?", id).
			Update("name", newName)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrDocumentNotFound
		}
		var err error
		updated, err = getByField[models.Document](tx, ctx, "id", id, models.ErrDocumentNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDocument removes the document, credits its size back to the owner's
// quota, and cascades to dependent records: friend shares are deleted,
// public shares are tombstoned (their tokens stay burned), and sessions are
// deleted so a late write-back resolves like any unknown token.
func (s *GORMStore) DeleteDocument(ctx context.Context, id string) (*models.Document, error) {
	var deleted *models.Document
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := getByField[models.Document](tx, ctx, "id", id, models.ErrDocumentNotFound)
		if err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error; err != nil {
			return err
		}
		if err := debitQuotaTx(tx, ctx, doc.OwnerID, -doc.Size); err != nil {
			return err
		}
		if err := tx.WithContext(ctx).
			Where("document_id = ? AND type = ?", id, models.ShareTypeFriend).
			Delete(&models.ShareGrant{}).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := tx.WithContext(ctx).Model(&models.ShareGrant{}).
			Where("document_id = ? AND type = ? AND revoked_at IS NULL", id, models.ShareTypePublic).
			Update("revoked_at", now).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).
			Where("document_id = ?", id).
			Delete(&models.EditorSession{}).Error; err != nil {
			return err
		}
		deleted = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// debitQuotaTx adjusts the owner's used bytes by delta inside tx. Negative
// deltas credit; the floor is clamped at zero to keep the account sane even
// if a crash left the ledger ahead of the accounting.
func debitQuotaTx(tx *gorm.DB, ctx context.Context, ownerID string, delta int64) error {
	if delta == 0 {
		return nil
	}
	expr := gorm.Expr("used + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN used + ? < 0 THEN 0 ELSE used + ? END", delta, delta)
	}
	result := tx.WithContext(ctx).Model(&models.QuotaAccount{}).
		Where("owner_id = ?", ownerID).
		Update("used", expr)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrQuotaNotFound
	}
	return nil
}

// ensureQuotaTx fetches the owner's quota account inside tx, provisioning it
// with defaultLimit when missing.
func ensureQuotaTx(tx *gorm.DB, ctx context.Context, ownerID string, defaultLimit int64) (*models.QuotaAccount, error) {
	quota, err := getByField[models.QuotaAccount](tx, ctx, "owner_id", ownerID, models.ErrQuotaNotFound)
	if err == nil {
		return quota, nil
	}
	if !errors.Is(err, models.ErrQuotaNotFound) {
		return nil, err
	}
	quota = &models.QuotaAccount{OwnerID: ownerID, Used: 0, Limit: defaultLimit}
	if err := tx.WithContext(ctx).Create(quota).Error; err != nil {
		if isUniqueConstraintError(err) {
			return getByField[models.QuotaAccount](tx, ctx, "owner_id", ownerID, models.ErrQuotaNotFound)
		}
		return nil, err
	}
	return quota, nil
}
