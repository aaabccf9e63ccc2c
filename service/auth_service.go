// file: service/auth_service.go

package service

import (
	"context"
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"

	"github.com/sirupsen/logrus"
)

// dummyHash is compared against when a login names an unknown user, so the
// not-found path costs roughly the same as a real verification.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// LoginResult bundles what a successful authentication returns to the
// caller: the public profile plus the freshly minted token pair.
type LoginResult struct {
	User         *model.PublicUser `json:"user"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
}

// AuthService orchestrates credential verification, token issuance and
// session revocation over the injected collaborators. Safe for concurrent
// use; all shared state lives in the repository and the registry.
type AuthService struct {
	userRepo repository.IUserRepository
	sessions repository.ISessionRegistry
	hasher   *PasswordHasher
	codec    *TokenCodec
}

func NewAuthService(userRepo repository.IUserRepository, sessions repository.ISessionRegistry, hasher *PasswordHasher, codec *TokenCodec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		codec:    codec,
	}
}

// Register creates a new account with the default role and an empty
// capability set, and returns its public profile.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.PublicUser, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, common.ErrDuplicateUsername
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    username,
		Email:       email,
		Password:    hash,
		Role:        model.RoleUser,
		Permissions: []string{},
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("New user registered")

	return user.PublicProfile(), nil
}

// Authenticate verifies the credentials and, on success, issues an access
// and a refresh token and records the refresh token id in the registry.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller, but repeated failures are logged with the username for alerting
// policies layered on top.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			// Burn a hash comparison anyway so the miss costs the same.
			s.hasher.Verify(password, dummyHash)
			logger.Log.WithField("username", username).Warn("Login attempt for unknown username")
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		// Corrupt stored hash: no match for the caller, loud for us.
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Stored credential record is unusable")
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		logger.Log.WithField("user_id", user.ID).Warn("Login attempt with wrong password")
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.codec.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	record, refreshToken, err := s.codec.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Add(ctx, record.UserID, record.TokenID); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User authenticated")

	return &LoginResult{
		User:         user.PublicProfile(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid, registered refresh token for a new access
// token. The refresh token itself is not rotated; it stays valid until
// logout, password change or natural expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	registered, err := s.sessions.Contains(ctx, claims.UserID, claims.TokenID())
	if err != nil {
		return "", err
	}
	if !registered {
		return "", common.ErrTokenNotRegistered
	}

	// Re-read the user so the new access token snapshots the current role
	// and permissions, not the ones at refresh-token issuance.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return "", common.ErrTokenNotRegistered
		}
		return "", err
	}

	return s.codec.IssueAccess(user)
}

// Logout revokes the refresh token's session. Tampered or expired tokens
// are treated as already logged out: the call is idempotent and never
// fails for a token that can no longer be used anyway.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenTampered) || errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrTokenNotRegistered) {
			return nil
		}
		return err
	}
	return s.sessions.Revoke(ctx, claims.UserID, claims.TokenID())
}

// ChangePassword verifies the current password, stores the new hash and
// then revokes every outstanding refresh token for the user. Once this
// returns success, no pre-change refresh token is honored again.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(currentPassword, user.Password)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Stored credential record is unusable")
		return common.ErrInvalidCurrentPassword
	}
	if !ok {
		return common.ErrInvalidCurrentPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.sessions.RevokeAll(ctx, userID); err != nil {
		return err
	}

	logger.Log.WithField("user_id", userID).Info("Password changed, all sessions revoked")
	return nil
}
