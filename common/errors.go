package common

import (
	"encoding/json"
	"errors"
	"go-auth-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Client and input errors. These are reported verbatim to the caller.
// ErrInvalidCredentials intentionally covers both "no such user" and "wrong
// password" so callers cannot enumerate accounts.
var (
	ErrDuplicateUsername      = errors.New("username is already taken")
	ErrDuplicateEmail         = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrUserNotFound           = errors.New("user not found")
)

// Token errors. Tampering is an active-attack signal and is logged at
// elevated severity where it is detected; expiry is a normal lifecycle
// event; an unregistered token is authentic but revoked or unknown.
var (
	ErrTokenTampered      = errors.New("token signature is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenNotRegistered = errors.New("token is not registered")
)

// Internal errors. Never exposed with detail to callers; logged internally
// and surfaced as a generic failure.
var (
	ErrStorage = errors.New("storage failure")
	ErrHashing = errors.New("password hash verification failed")
	ErrSigning = errors.New("token signing failed")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
