package apiclient

import "time"

// Share represents a sharing grant on a document.
type Share struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"document_id"`
	GrantorID  string     `json:"grantor_id"`
	Type       string     `json:"type"` // "friend" or "public"
	GranteeID  *string    `json:"grantee_id,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PublicLink is the response to creating a public share link.
type PublicLink struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShareToFriend grants read access on a document to a friend, addressed
// by username.
func (c *Client) ShareToFriend(documentID, username string) (*Share, error) {
	req := struct {
		Username string `json:"username"`
	}{Username: username}
	return createResource[Share](c, resourcePath("/api/v1/documents/%s/shares/friend", documentID), req)
}

// CreatePublicLink mints an anonymous share link. A zero expiresInHours
// means the link never expires.
func (c *Client) CreatePublicLink(documentID string, expiresInHours int) (*PublicLink, error) {
	req := struct {
		ExpiresInHours int `json:"expires_in_hours"`
	}{ExpiresInHours: expiresInHours}
	return createResource[PublicLink](c, resourcePath("/api/v1/documents/%s/shares/public", documentID), req)
}

// ListShares returns grants the caller has issued.
func (c *Client) ListShares() ([]Share, error) {
	return listResources[Share](c, "/api/v1/shares")
}

// ListReceivedShares returns grants issued to the caller.
func (c *Client) ListReceivedShares() ([]Share, error) {
	return listResources[Share](c, "/api/v1/shares/received")
}

// RevokeShare revokes a grant. Revoking a public link burns its token
// permanently.
func (c *Client) RevokeShare(id string) error {
	return deleteResource(c, resourcePath("/api/v1/shares/%s", id))
}
