package apiclient

import (
	"net/url"
	"time"
)

// User is a public user profile.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Friendship is a friend edge as seen by the caller.
type Friendship struct {
	ID       string `json:"id"`
	User     *User  `json:"user"`
	Status   string `json:"status"` // "pending" or "accepted"
	Incoming bool   `json:"incoming"`
}

// FriendRequest is the raw edge returned when creating a request.
type FriendRequest struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	AddresseeID string    `json:"addressee_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestFriend sends a friend request to the named user.
func (c *Client) RequestFriend(username string) (*FriendRequest, error) {
	req := struct {
		Username string `json:"username"`
	}{Username: username}
	return createResource[FriendRequest](c, "/api/v1/friends/requests", req)
}

// AcceptFriend accepts a pending incoming request.
func (c *Client) AcceptFriend(requestID string) (*FriendRequest, error) {
	return createResource[FriendRequest](c, resourcePath("/api/v1/friends/requests/%s/accept", requestID), nil)
}

// ListFriends returns accepted friendships and pending requests in both
// directions.
func (c *Client) ListFriends() ([]Friendship, error) {
	return listResources[Friendship](c, "/api/v1/friends")
}

// SearchUsers finds users by username prefix or fragment.
func (c *Client) SearchUsers(query string) ([]User, error) {
	return listResources[User](c, "/api/v1/users/search?q="+url.QueryEscape(query))
}
