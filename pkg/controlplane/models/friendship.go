package models

import "time"

// FriendshipStatus is the lifecycle state of a friend request.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a friend-graph edge. Edges are stored once per request
// (requester -> addressee); a mutual relationship exists when an edge in
// either direction has been accepted.
type Friendship struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	RequesterID string           `gorm:"not null;size:36;index:idx_friend_pair,unique" json:"requester_id"`
	AddresseeID string           `gorm:"not null;size:36;index:idx_friend_pair,unique" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"not null;size:16;default:pending" json:"status"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Friendship.
func (Friendship) TableName() string {
	return "friendships"
}

// User is a minimal public profile of an identity-provider subject. Rows are
// upserted from validated token claims on first sight; paperbay never stores
// credentials.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"not null;size:255;uniqueIndex" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
