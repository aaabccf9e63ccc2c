// file: service/token_codec_test.go

package service

import (
	"go-auth-api/common"
	"go-auth-api/config"
	"go-auth-api/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testCodec(accessTTL, refreshTTL time.Duration) *TokenCodec {
	return NewTokenCodec(config.AuthConfig{
		SecretKey:       "test-secret-key",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func testUser() *model.User {
	return &model.User{
		ID:          42,
		Username:    "alice",
		Email:       "a@example.com",
		Role:        model.RoleUser,
		Permissions: []string{"documents:read", "documents:write"},
	}
}

func TestTokenCodec_AccessRoundTrip(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)
	user := testUser()

	tokenString, err := codec.IssueAccess(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := codec.VerifyAccess(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.Permissions, claims.Permissions)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenCodec_RefreshRoundTrip(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)

	record, tokenString, err := codec.IssueRefresh(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, record.TokenID)
	assert.Equal(t, 42, record.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), record.ExpiresAt, 5*time.Second)

	claims, err := codec.VerifyRefresh(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, record.TokenID, claims.TokenID())
}

func TestTokenCodec_RefreshIDsAreUnique(t *testing.T) {
	codec := testCodec(time.Minute, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		record, _, err := codec.IssueRefresh(1)
		assert.NoError(t, err)
		assert.False(t, seen[record.TokenID], "token id issued twice")
		seen[record.TokenID] = true
	}
}

func TestTokenCodec_Expiry(t *testing.T) {
	// A negative TTL mints a token that is already past its exp.
	codec := testCodec(-1*time.Minute, -1*time.Minute)

	tokenString, err := codec.IssueAccess(testUser())
	assert.NoError(t, err)

	_, err = codec.VerifyAccess(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	_, refreshString, err := codec.IssueRefresh(42)
	assert.NoError(t, err)

	_, err = codec.VerifyRefresh(refreshString)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenCodec_TamperDetection(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)

	tokenString, err := codec.IssueAccess(testUser())
	assert.NoError(t, err)

	// Flip one byte at every position; the codec must always report
	// tampering, never expiry or a decoded claim set. The final character
	// of each segment is skipped: its unused low bits are discarded by
	// base64 decoding, so flipping them does not change the token bytes.
	for i := 0; i < len(tokenString); i++ {
		if tokenString[i] == '.' {
			continue
		}
		if i == len(tokenString)-1 || tokenString[i+1] == '.' {
			continue
		}
		tampered := []byte(tokenString)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		if string(tampered) == tokenString {
			continue
		}

		_, err := codec.VerifyAccess(string(tampered))
		assert.ErrorIs(t, err, common.ErrTokenTampered, "byte %d", i)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)
	other := NewTokenCodec(config.AuthConfig{
		SecretKey:       "a-different-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	tokenString, err := codec.IssueAccess(testUser())
	assert.NoError(t, err)

	_, err = other.VerifyAccess(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenTampered)
}

func TestTokenCodec_AccessTokenRejectedOnRefreshPath(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)

	// An access token carries no jti, so it can never name a registered
	// session.
	tokenString, err := codec.IssueAccess(testUser())
	assert.NoError(t, err)

	_, err = codec.VerifyRefresh(tokenString)
	assert.ErrorIs(t, err, common.ErrTokenNotRegistered)
}

func TestTokenCodec_GarbageToken(t *testing.T) {
	codec := testCodec(15*time.Minute, 24*time.Hour)

	_, err := codec.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, common.ErrTokenTampered)
}
