package models

import "time"

// SessionCapability is the access level granted to an editor session.
type SessionCapability string

const (
	CapabilityRead      SessionCapability = "read"
	CapabilityReadWrite SessionCapability = "read-write"
)

// SessionState is the explicit state tag of an editor session.
// Transitions: Issued -> Consumed (successful write-back) or
// Issued -> Expired (deadline passed). Both are terminal.
type SessionState string

const (
	SessionIssued   SessionState = "issued"
	SessionConsumed SessionState = "consumed"
	SessionExpired  SessionState = "expired"
)

// EditorSession is a short-lived, single-document capability handed to the
// external editing service. BaseVersion pins the document version observed
// at issuance; a write-back is only accepted while the document is still at
// that version.
type EditorSession struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Token       string            `gorm:"not null;size:64;uniqueIndex" json:"-"`
	DocumentID  string            `gorm:"not null;size:36;index" json:"document_id"`
	SubjectID   *string           `gorm:"size:36" json:"subject_id,omitempty"` // nil for public-token sessions
	Capability  SessionCapability `gorm:"not null;size:16" json:"capability"`
	State       SessionState      `gorm:"not null;size:16;default:issued" json:"state"`
	BaseVersion int64             `gorm:"not null" json:"base_version"`
	IssuedAt    time.Time         `gorm:"autoCreateTime" json:"issued_at"`
	ExpiresAt   time.Time         `gorm:"not null" json:"expires_at"`
	ConsumedAt  *time.Time        `json:"consumed_at,omitempty"`
}

// TableName returns the table name for EditorSession.
func (EditorSession) TableName() string {
	return "editor_sessions"
}

// CanWrite reports whether the session was issued with write capability.
func (s *EditorSession) CanWrite() bool {
	return s.Capability == CapabilityReadWrite
}

// TimedOut reports whether the session deadline has passed at t, regardless
// of the stored state tag.
func (s *EditorSession) TimedOut(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
