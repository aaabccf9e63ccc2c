// file: service/password_hasher.go

package service

import (
	"errors"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configurable cost. The produced record
// is self-describing (algorithm, cost and salt are embedded in the hash
// string), so the cost can be raised later without invalidating old hashes.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	return string(bytes), nil
}

// Verify recomputes the hash and compares in constant time. A mismatch
// returns (false, nil); a malformed stored record returns ErrHashing, which
// callers treat as no-match but which signals data corruption rather than
// bad input.
func (h *PasswordHasher) Verify(password, record string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(record), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	logger.Log.WithError(err).Error("Stored password hash could not be verified")
	return false, fmt.Errorf("%w: %v", common.ErrHashing, err)
}
