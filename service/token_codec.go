// file: service/token_codec.go

package service

import (
	"errors"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/config"
	"go-auth-api/logger"
	"go-auth-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenCodec signs and verifies access and refresh tokens (HS256). Access
// tokens are stateless: their validity is established by signature and
// expiry alone. Refresh tokens carry a random jti that the session registry
// tracks, so they can be revoked before natural expiry.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenCodec(cfg config.AuthConfig) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(cfg.SecretKey),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

// IssueAccess mints an access token carrying a snapshot of the user's role
// and permissions.
func (c *TokenCodec) IssueAccess(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.AccessClaims{
		UserID:      user.ID,
		Role:        user.Role,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return "", fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	return tokenString, nil
}

// IssueRefresh mints a refresh token with a fresh random token id and
// returns both the bookkeeping record (for the registry) and the signed
// string (for the caller).
func (c *TokenCodec) IssueRefresh(userID int) (*model.RefreshTokenRecord, string, error) {
	now := time.Now()
	record := &model.RefreshTokenRecord{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.refreshTTL),
	}
	claims := &model.RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        record.TokenID,
			IssuedAt:  jwt.NewNumericDate(record.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign refresh token")
		return nil, "", fmt.Errorf("%w: %v", common.ErrSigning, err)
	}
	return record, tokenString, nil
}

// VerifyAccess checks signature first, then expiry, and returns the decoded
// claims. A signature mismatch is reported as ErrTokenTampered, distinct
// from the benign ErrTokenExpired.
func (c *TokenCodec) VerifyAccess(tokenString string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh is VerifyAccess for refresh tokens. Callers must still
// consult the session registry before honoring the token.
func (c *TokenCodec) VerifyRefresh(tokenString string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	if err := c.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		// An access token presented on the refresh path has no jti.
		return nil, common.ErrTokenNotRegistered
	}
	return claims, nil
}

func (c *TokenCodec) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil && token.Valid:
		return nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		logger.Log.WithError(err).Warn("Token with invalid signature presented")
		return common.ErrTokenTampered
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	default:
		// Malformed tokens are indistinguishable from forgeries.
		logger.Log.WithError(err).Warn("Malformed token presented")
		return common.ErrTokenTampered
	}
}
