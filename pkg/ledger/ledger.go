// Package ledger implements per-user storage accounting over versioned
// documents.
//
// Every mutation follows the write-then-link discipline: new content bytes
// land in the content store under a fresh key first, then a single database
// transaction links the key, adjusts the owner's quota and bumps the
// version. A failed transaction deletes the orphaned content; a crash
// between the two steps leaks at most one unreferenced blob, never a
// corrupted ledger.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/content"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/keymutex"
	"github.com/paperbay/paperbay/pkg/metrics"
)

// Config contains ledger tuning.
type Config struct {
	// DefaultQuotaLimit is the byte limit provisioned for an owner's quota
	// account on first use. Default: 100 MiB.
	DefaultQuotaLimit int64 `mapstructure:"default_quota_limit" yaml:"default_quota_limit"`
}

// DefaultQuotaLimit is the quota provisioned for new owners when the
// configuration does not override it.
const DefaultQuotaLimit int64 = 100 << 20

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.DefaultQuotaLimit <= 0 {
		c.DefaultQuotaLimit = DefaultQuotaLimit
	}
}

// Service is the storage ledger. It owns all document metadata mutation;
// nothing else writes documents or quota accounts.
//
// Concurrency: mutations on a document serialize on the document key, and
// quota arithmetic serializes on the owner key. When both are held the
// document lock is always taken first, so lock order is global and
// deadlock-free.
type Service struct {
	store   store.Store
	content content.Store
	config  Config
	metrics metrics.LedgerMetrics // nil disables instrumentation

	docLocks   *keymutex.KeyMutex
	ownerLocks *keymutex.KeyMutex
}

// NewService creates a ledger over the given metadata store and content
// store.
func NewService(st store.Store, cs content.Store, cfg Config) *Service {
	cfg.ApplyDefaults()
	return &Service{
		store:      st,
		content:    cs,
		config:     cfg,
		docLocks:   keymutex.New(),
		ownerLocks: keymutex.New(),
	}
}

// SetMetrics attaches ledger instrumentation. Call before serving traffic;
// nil leaves metrics disabled.
func (s *Service) SetMetrics(m metrics.LedgerMetrics) {
	s.metrics = m
}

// Create stores a new document owned by ownerID. The content is drained
// from r; its byte length becomes the document size and is debited against
// the owner's quota. The new document starts at version 1.
func (s *Service) Create(ctx context.Context, ownerID, name, kind string, r io.Reader) (*models.Document, error) {
	if err := models.ValidateDocumentName(name); err != nil {
		return nil, err
	}

	contentID := uuid.New().String()
	size, err := s.content.Put(ctx, content.ID(contentID), r)
	if err != nil {
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	doc := &models.Document{
		OwnerID:   ownerID,
		Name:      name,
		Size:      size,
		Kind:      kind,
		Version:   1,
		ContentID: contentID,
	}

	s.ownerLocks.Lock(ownerID)
	err = s.store.CreateDocument(ctx, doc, s.config.DefaultQuotaLimit)
	s.ownerLocks.Unlock(ownerID)
	if err != nil {
		if errors.Is(err, models.ErrQuotaExceeded) {
			metrics.RecordQuotaRejection(s.metrics)
		}
		s.discardContent(ctx, contentID)
		return nil, err
	}

	metrics.RecordDocumentCreated(s.metrics, size)
	logger.InfoCtx(ctx, "document created",
		logger.KeyDocument, doc.ID,
		logger.KeyOwner, ownerID,
		logger.KeyName, name,
		logger.KeySize, size)
	return doc, nil
}

// Replace swaps the document's content, guarded by expectedVersion. On
// success the version increments by exactly one and the owner's quota
// reflects the size delta; a stale expectedVersion fails with
// *models.VersionConflictError and changes nothing.
func (s *Service) Replace(ctx context.Context, id string, expectedVersion int64, r io.Reader) (*models.Document, error) {
	// Content is written before any lock is taken; until the transaction
	// links it, the blob is unreachable and harmless.
	newContentID := uuid.New().String()
	size, err := s.content.Put(ctx, content.ID(newContentID), r)
	if err != nil {
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	s.docLocks.Lock(id)
	// The old content ID must be read under the document lock or a racing
	// replace could leave us pointing at an already-released blob.
	current, err := s.store.GetDocument(ctx, id)
	if err != nil {
		s.docLocks.Unlock(id)
		s.discardContent(ctx, newContentID)
		return nil, err
	}
	s.ownerLocks.Lock(current.OwnerID)
	updated, err := s.store.ReplaceDocumentContent(ctx, id, expectedVersion, newContentID, size)
	s.ownerLocks.Unlock(current.OwnerID)
	s.docLocks.Unlock(id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrVersionConflict):
			metrics.RecordVersionConflict(s.metrics)
		case errors.Is(err, models.ErrQuotaExceeded):
			metrics.RecordQuotaRejection(s.metrics)
		}
		s.discardContent(ctx, newContentID)
		return nil, err
	}

	metrics.RecordWriteback(s.metrics, size)

	// The old content is unreachable once the transaction committed.
	if current.ContentID != "" && current.ContentID != updated.ContentID {
		s.discardContent(ctx, current.ContentID)
	}

	logger.InfoCtx(ctx, "document content replaced",
		logger.KeyDocument, id,
		logger.KeyVersion, updated.Version,
		logger.KeySize, size)
	return updated, nil
}

// Rename changes the document's display name. Size, version and content are
// untouched; quota is unaffected.
func (s *Service) Rename(ctx context.Context, id, newName string) (*models.Document, error) {
	if err := models.ValidateDocumentName(newName); err != nil {
		return nil, err
	}

	s.docLocks.Lock(id)
	defer s.docLocks.Unlock(id)

	updated, err := s.store.RenameDocument(ctx, id, newName)
	if err != nil {
		return nil, err
	}
	logger.InfoCtx(ctx, "document renamed",
		logger.KeyDocument, id,
		logger.KeyName, newName)
	return updated, nil
}

// Delete removes the document, credits its size back to the owner's quota
// and releases its content. Dependent shares and sessions are invalidated
// in the same transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.docLocks.Lock(id)
	current, err := s.store.GetDocument(ctx, id)
	if err != nil {
		s.docLocks.Unlock(id)
		return err
	}
	s.ownerLocks.Lock(current.OwnerID)
	deleted, err := s.store.DeleteDocument(ctx, id)
	s.ownerLocks.Unlock(current.OwnerID)
	s.docLocks.Unlock(id)
	if err != nil {
		return err
	}

	s.discardContent(ctx, deleted.ContentID)
	metrics.RecordDocumentDeleted(s.metrics, deleted.Size)

	logger.InfoCtx(ctx, "document deleted",
		logger.KeyDocument, id,
		logger.KeyOwner, deleted.OwnerID,
		logger.KeySize, deleted.Size)
	return nil
}

// Get returns the document metadata.
func (s *Service) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// Open returns the document metadata together with a reader over its
// current content. The caller must close the reader.
func (s *Service) Open(ctx context.Context, id string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.content.Get(ctx, content.ID(doc.ContentID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open content for document %s: %w", id, err)
	}
	return doc, rc, nil
}

// ListByOwner returns the owner's documents, most recently updated first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error) {
	return s.store.ListDocumentsByOwner(ctx, ownerID)
}

// Usage returns the owner's quota account, provisioning it with the default
// limit when the owner has never stored anything.
func (s *Service) Usage(ctx context.Context, ownerID string) (*models.QuotaAccount, error) {
	return s.store.EnsureQuota(ctx, ownerID, s.config.DefaultQuotaLimit)
}

// discardContent deletes an unreferenced blob. Failures are logged, not
// returned: the ledger is already consistent and a leaked blob is only a
// space cost.
func (s *Service) discardContent(ctx context.Context, contentID string) {
	if contentID == "" {
		return
	}
	// Deletion still matters after the request context is cancelled.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := s.content.Delete(dctx, content.ID(contentID)); err != nil {
		logger.WarnCtx(ctx, "failed to delete orphaned content",
			logger.KeyContentID, contentID,
			logger.KeyError, err)
	}
}
