package models

import (
	"errors"
	"fmt"
)

// Common errors for control plane operations.
var (
	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidName      = errors.New("invalid document name")

	// Quota errors
	ErrQuotaNotFound = errors.New("quota account not found")

	// Share errors
	ErrShareNotFound  = errors.New("share not found")
	ErrDuplicateShare = errors.New("document already shared with this user")
	ErrDuplicateToken = errors.New("share token already exists")
	ErrNotFriends     = errors.New("users are not friends")

	// Session errors
	ErrSessionNotFound = errors.New("editor session not found")
	ErrSessionExpired  = errors.New("editor session has expired")
	ErrReadOnlySession = errors.New("editor session is read-only")
	ErrUnsupportedKind = errors.New("content kind is not editable")

	// Access errors
	ErrNotOwner     = errors.New("requester does not own the document")
	ErrAccessDenied = errors.New("access denied")
	ErrShareExpired = errors.New("share has expired")

	// Friendship errors
	ErrFriendshipNotFound  = errors.New("friend request not found")
	ErrDuplicateFriendship = errors.New("friend request already exists")
	ErrUserNotFound        = errors.New("user not found")
)

// QuotaExceededError reports a rejected mutation that would overrun the
// owner's storage limit. Used and Limit reflect the account at rejection
// time so clients can display current usage.
type QuotaExceededError struct {
	Owner     string
	Requested int64
	Used      int64
	Limit     int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("storage quota exceeded: %d bytes requested, %d of %d used", e.Requested, e.Used, e.Limit)
}

// Is lets errors.Is match any QuotaExceededError regardless of fields.
func (e *QuotaExceededError) Is(target error) bool {
	_, ok := target.(*QuotaExceededError)
	return ok
}

// ErrQuotaExceeded is the bare sentinel for errors.Is checks.
var ErrQuotaExceeded error = &QuotaExceededError{}

// VersionConflictError reports an optimistic-concurrency collision on a
// content replacement.
type VersionConflictError struct {
	DocumentID string
	Expected   int64
	Current    int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on document %s: expected %d, current %d", e.DocumentID, e.Expected, e.Current)
}

// Is lets errors.Is match any VersionConflictError regardless of fields.
func (e *VersionConflictError) Is(target error) bool {
	_, ok := target.(*VersionConflictError)
	return ok
}

// ErrVersionConflict is the bare sentinel for errors.Is checks.
var ErrVersionConflict error = &VersionConflictError{}
