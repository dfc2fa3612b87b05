// Package editor brokers short-lived editing sessions between paperbay and
// an external document editing service.
//
// A session is a single-document capability: an unguessable token that
// grants the editor read (or read-write) access to exactly one document,
// pinned to the version observed at issuance. Write-back is accepted at
// most once per session and only while the document is still at the pinned
// version, so a slow editor can never clobber a newer save.
package editor

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/paperbay/paperbay/internal/logger"
	"github.com/paperbay/paperbay/pkg/controlplane/models"
	"github.com/paperbay/paperbay/pkg/controlplane/store"
	"github.com/paperbay/paperbay/pkg/ledger"
	"github.com/paperbay/paperbay/pkg/sharing"
)

// Config contains session broker tuning.
type Config struct {
	// SessionTTL is how long an issued session stays valid. Default: 30m.
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
}

// DefaultSessionTTL bounds how long an editor can hold a document open
// before it must re-open.
const DefaultSessionTTL = 30 * time.Minute

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
}

// Service issues, validates and consumes editor sessions.
type Service struct {
	store   store.Store
	ledger  *ledger.Service
	sharing *sharing.Service
	config  Config
}

// NewService creates a session broker.
func NewService(st store.Store, ld *ledger.Service, sh *sharing.Service, cfg Config) *Service {
	cfg.ApplyDefaults()
	return &Service{store: st, ledger: ld, sharing: sh, config: cfg}
}

// Open issues a session for subjectID on the document. Owners and
// friend-share grantees may request write capability; conflicting saves
// are arbitrated by the pinned base version, not at issuance. Subjects
// with no access are denied, and documents no editor surface handles fail
// with ErrUnsupportedKind before any session is minted.
func (s *Service) Open(ctx context.Context, subjectID, documentID string, wantWrite bool) (*models.EditorSession, error) {
	access, err := s.sharing.ResolveAccess(ctx, subjectID, documentID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, models.ErrAccessDenied
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !EditableKind(doc.Kind) {
		return nil, models.ErrUnsupportedKind
	}

	capability := models.CapabilityRead
	if wantWrite {
		capability = models.CapabilityReadWrite
	}
	return s.issue(ctx, doc, &subjectID, capability)
}

// OpenPublic issues a read-only session from a public link token. The
// session carries no subject.
func (s *Service) OpenPublic(ctx context.Context, linkToken string) (*models.EditorSession, error) {
	doc, _, err := s.sharing.ResolveToken(ctx, linkToken)
	if err != nil {
		return nil, err
	}
	if !EditableKind(doc.Kind) {
		return nil, models.ErrUnsupportedKind
	}
	return s.issue(ctx, doc, nil, models.CapabilityRead)
}

func (s *Service) issue(ctx context.Context, doc *models.Document, subjectID *string, capability models.SessionCapability) (*models.EditorSession, error) {
	token, err := mintToken()
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}
	session := &models.EditorSession{
		Token:       token,
		DocumentID:  doc.ID,
		SubjectID:   subjectID,
		Capability:  capability,
		State:       models.SessionIssued,
		BaseVersion: doc.Version,
		ExpiresAt:   time.Now().UTC().Add(s.config.SessionTTL),
	}
	if _, err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "editor session issued",
		logger.KeySession, session.ID,
		logger.KeyDocument, doc.ID,
		logger.KeyCapability, string(capability),
		logger.KeyVersion, doc.Version)
	return session, nil
}

// Validate resolves a session token to its live session and document. A
// session past its deadline is expired on sight; consumed and expired
// sessions fail with ErrSessionNotFound and ErrSessionExpired respectively.
func (s *Service) Validate(ctx context.Context, token string) (*models.EditorSession, *models.Document, error) {
	session, err := s.liveSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.store.GetDocument(ctx, session.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return session, doc, nil
}

// Fetch returns the document and a reader over its content for a valid
// session. This is the read path the external editor uses to load the
// document.
func (s *Service) Fetch(ctx context.Context, token string) (*models.Document, io.ReadCloser, error) {
	session, err := s.liveSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return s.ledger.Open(ctx, session.DocumentID)
}

// CommitWriteback applies the editor's saved bytes as the document's next
// version and consumes the session. The replace is guarded on the
// session's base version: if anyone else advanced the document since the
// session opened, the commit fails with a version conflict and the session
// stays issued so the caller can decide how to recover.
func (s *Service) CommitWriteback(ctx context.Context, token string, r io.Reader) (*models.Document, error) {
	session, err := s.liveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.CanWrite() {
		return nil, models.ErrReadOnlySession
	}

	updated, err := s.ledger.Replace(ctx, session.DocumentID, session.BaseVersion, r)
	if err != nil {
		return nil, err
	}

	if err := s.store.ConsumeSession(ctx, token, time.Now().UTC()); err != nil {
		// The write already landed; a lost consume race only means another
		// path retired the session first.
		logger.WarnCtx(ctx, "failed to consume session after write-back",
			logger.KeySession, session.ID,
			logger.KeyError, err)
	}

	logger.InfoCtx(ctx, "editor write-back committed",
		logger.KeySession, session.ID,
		logger.KeyDocument, session.DocumentID,
		logger.KeyVersion, updated.Version)
	return updated, nil
}

// Close retires an issued session without a write-back, for editors that
// signal a clean close. Already terminal sessions are left alone.
func (s *Service) Close(ctx context.Context, token string) error {
	return s.store.ExpireSession(ctx, token)
}

// liveSession fetches the session and enforces its lifecycle: sessions
// past the deadline are transitioned to expired on first sight.
func (s *Service) liveSession(ctx context.Context, token string) (*models.EditorSession, error) {
	session, err := s.store.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	switch session.State {
	case models.SessionConsumed:
		return nil, models.ErrSessionNotFound
	case models.SessionExpired:
		return nil, models.ErrSessionExpired
	}
	if session.TimedOut(time.Now()) {
		if err := s.store.ExpireSession(ctx, token); err != nil && !errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
		return nil, models.ErrSessionExpired
	}
	return session, nil
}

// mintToken returns a fresh URL-safe session token.
func mintToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
