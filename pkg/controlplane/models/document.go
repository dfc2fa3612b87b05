package models

import (
	"strings"
	"time"
)

// Document is the metadata record for a stored object. The content bytes
// live in a content store keyed by ContentID; Size always equals the byte
// length of the content version ContentID points at.
type Document struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"not null;size:36;index" json:"owner_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Size      int64     `gorm:"not null" json:"size"`
	Kind      string    `gorm:"not null;size:255" json:"kind"` // MIME type
	Version   int64     `gorm:"not null;default:1" json:"version"`
	ContentID string    `gorm:"not null;size:64" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Document.
func (Document) TableName() string {
	return "documents"
}

// MaxDocumentNameLength bounds display names; longer names are rejected
// rather than truncated.
const MaxDocumentNameLength = 255

// ValidateDocumentName checks a display name for emptiness, length, path
// separators and control characters. Returns ErrInvalidName on failure.
func ValidateDocumentName(name string) error {
	if name == "" || len(name) > MaxDocumentNameLength {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return ErrInvalidName
	}
	for _, r := range name {
		if r < 0x20 {
			return ErrInvalidName
		}
	}
	if name == "." || name == ".." {
		return ErrInvalidName
	}
	return nil
}
