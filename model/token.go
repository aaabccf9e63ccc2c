// file: model/token.go

package model

import "time"

// RefreshTokenRecord is the registry's bookkeeping entry for one refresh
// token. Only the opaque TokenID is tracked; the signed token string itself
// is never stored server-side.
type RefreshTokenRecord struct {
	TokenID   string    `json:"token_id"`
	UserID    int       `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
