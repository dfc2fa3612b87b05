package models

import "time"

// ShareType distinguishes the two grant variants.
type ShareType string

const (
	// ShareTypeFriend grants read access to a named grantee.
	ShareTypeFriend ShareType = "friend"
	// ShareTypePublic grants read access to any bearer of the token.
	ShareTypePublic ShareType = "public"
)

// ShareGrant is a directed permission edge from a document to either a
// grantee (friend share) or an anonymous token bearer (public share).
//
// Public share rows are never deleted on revocation; RevokedAt is set and
// the row remains as a tombstone so the token's unique index keeps the
// token from ever being reissued. Friend shares are deleted outright.
type ShareGrant struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	DocumentID string     `gorm:"not null;size:36;index;index:idx_share_doc_grantee,unique" json:"document_id"`
	GrantorID  string     `gorm:"not null;size:36;index" json:"grantor_id"`
	Type       ShareType  `gorm:"not null;size:16" json:"type"`
	// GranteeID is set on friend shares only. The composite unique index
	// with DocumentID allows at most one live friend share per pair; NULL
	// grantees (public shares) never collide.
	GranteeID *string    `gorm:"size:36;index;index:idx_share_doc_grantee,unique" json:"grantee_id,omitempty"`
	Token     *string    `gorm:"size:64;uniqueIndex" json:"-"` // public shares only
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for ShareGrant.
func (ShareGrant) TableName() string {
	return "share_grants"
}

// Active reports whether the grant is neither revoked nor expired at t.
func (s *ShareGrant) Active(t time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	if s.ExpiresAt != nil && !t.Before(*s.ExpiresAt) {
		return false
	}
	return true
}

// Expired reports whether the grant has an expiry in the past at t.
func (s *ShareGrant) Expired(t time.Time) bool {
	return s.ExpiresAt != nil && !t.Before(*s.ExpiresAt)
}
