package store

import (
	"context"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/models"
)

// DocumentStore provides document metadata persistence. The mutating
// operations that touch quota run as a single database transaction so a
// partial debit or a document row without its quota adjustment can never
// be observed.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*models.Document, error)

	// CreateDocument inserts the document and debits the owner's quota in
	// one transaction, provisioning the quota account with defaultLimit on
	// first use. Returns *models.QuotaExceededError when the debit would
	// overrun the limit.
	CreateDocument(ctx context.Context, doc *models.Document, defaultLimit int64) error

	// ReplaceDocumentContent swaps the content reference, adjusts the size
	// and quota by the delta, and increments the version, all in one
	// transaction. Fails with *models.VersionConflictError when
	// expectedVersion no longer matches.
	ReplaceDocumentContent(ctx context.Context, id string, expectedVersion int64, newContentID string, newSize int64) (*models.Document, error)

	// RenameDocument updates the display name only.
	RenameDocument(ctx context.Context, id string, newName string) (*models.Document, error)

	// DeleteDocument removes the document, credits the owner's quota, and
	// cascades: friend shares are deleted, public shares are tombstoned,
	// issued sessions are expired. Returns the deleted record so the
	// caller can release its content.
	DeleteDocument(ctx context.Context, id string) (*models.Document, error)
}

// QuotaStore provides read access to quota accounts. Mutation happens only
// through DocumentStore transactions.
type QuotaStore interface {
	GetQuota(ctx context.Context, ownerID string) (*models.QuotaAccount, error)

	// EnsureQuota provisions an account with defaultLimit if absent and
	// returns it.
	EnsureQuota(ctx context.Context, ownerID string, defaultLimit int64) (*models.QuotaAccount, error)

	// SetQuotaLimit overrides the account limit (admin operation).
	SetQuotaLimit(ctx context.Context, ownerID string, limit int64) error
}

// ShareStore provides share grant persistence.
type ShareStore interface {
	CreateShare(ctx context.Context, share *models.ShareGrant) (string, error)
	GetShare(ctx context.Context, id string) (*models.ShareGrant, error)
	GetShareByToken(ctx context.Context, token string) (*models.ShareGrant, error)

	// GetActiveFriendShare returns the unrevoked friend share for
	// (document, grantee), or ErrShareNotFound.
	GetActiveFriendShare(ctx context.Context, documentID, granteeID string) (*models.ShareGrant, error)

	ListSharesByGrantor(ctx context.Context, grantorID string) ([]*models.ShareGrant, error)
	ListSharesGrantedTo(ctx context.Context, granteeID string) ([]*models.ShareGrant, error)

	// RevokeShare removes a friend share or tombstones a public share.
	// Public share rows persist so their token can never be minted again.
	RevokeShare(ctx context.Context, id string) error

	// ReapExpiredPublicShares tombstones public shares whose expiry passed
	// before cutoff. Returns the number of shares reaped.
	ReapExpiredPublicShares(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionStore provides editor session persistence.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.EditorSession) (string, error)
	GetSessionByToken(ctx context.Context, token string) (*models.EditorSession, error)

	// ConsumeSession transitions Issued -> Consumed. The update is guarded
	// on the current state so two concurrent commits cannot both win;
	// returns ErrSessionNotFound when the session is absent or already
	// terminal.
	ConsumeSession(ctx context.Context, token string, at time.Time) error

	// ExpireSession transitions Issued -> Expired. Idempotent on already
	// terminal sessions.
	ExpireSession(ctx context.Context, token string) error
}

// FriendshipStore provides the friend graph and the public user directory.
type FriendshipStore interface {
	UpsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*models.User, error)

	CreateFriendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error)
	AcceptFriendRequest(ctx context.Context, id string, addresseeID string) (*models.Friendship, error)
	ListFriendships(ctx context.Context, userID string) ([]*models.Friendship, error)

	// AreFriends reports whether an accepted edge exists in either
	// direction between the two users.
	AreFriends(ctx context.Context, a, b string) (bool, error)
}

// Store is the complete control plane persistence interface.
type Store interface {
	DocumentStore
	QuotaStore
	ShareStore
	SessionStore
	FriendshipStore

	HealthCheck(ctx context.Context) error
	Close() error
}

// Compile-time check that GORMStore implements Store.
var _ Store = (*GORMStore)(nil)
