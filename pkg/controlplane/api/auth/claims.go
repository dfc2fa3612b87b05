// Package auth provides JWT validation for the paperbay API.
//
// Paperbay does not own credentials: tokens are minted by the identity
// provider that shares the HMAC secret with this server. The API only
// validates tokens and reads the subject claims out of them.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims paperbay consumes.
type Claims struct {
	jwt.RegisteredClaims

	// Username is the human-readable name of the subject, used to populate
	// the user directory. The subject ID is the registered Subject claim.
	Username string `json:"username"`
}

// SubjectID returns the stable identifier of the authenticated user.
func (c *Claims) SubjectID() string {
	return c.Subject
}
