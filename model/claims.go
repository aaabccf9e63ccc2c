package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of a short-lived access token. Role and
// permissions are a snapshot taken at issuance; validity is determined by
// signature and expiry alone, never by a lookup.
type AccessClaims struct {
	UserID      int      `json:"user_id"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a long-lived refresh token. The registry
// tracks the token by the jti (RegisteredClaims.ID).
type RefreshClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenID returns the opaque id the session registry keys on.
func (c *RefreshClaims) TokenID() string {
	return c.ID
}
