package handler

import (
	"encoding/json"
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register a new user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201 {object} model.PublicUser
// @Failure      409 {object} common.AppError
// @Router       /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateUsername), errors.Is(err, common.ErrDuplicateEmail):
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not register user", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(profile)
	return nil
}

// Login godoc
// @Summary      Authenticate with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login payload"
// @Success      200 {object} service.LoginResult
// @Failure      401 {object} common.AppError
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	result, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not authenticate", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
	return nil
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest true "Refresh payload"
// @Success      200 {object} map[string]string
// @Failure      401 {object} common.AppError
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	accessToken, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenTampered),
			errors.Is(err, common.ErrTokenExpired),
			errors.Is(err, common.ErrTokenNotRegistered):
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"access_token": accessToken})
	return nil
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LogoutRequest true "Logout payload"
// @Success      200 {object} map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LogoutRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "logged out"})
	return nil
}

// ChangePassword godoc
// @Summary      Change the authenticated user's password
// @Description  Revokes every outstanding session for the user on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.ChangePasswordRequest true "Password change payload"
// @Success      200 {object} map[string]string
// @Failure      401 {object} common.AppError
// @Security     BearerAuth
// @Router       /change-password [post]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ChangePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCurrentPassword):
			return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
		case errors.Is(err, common.ErrUserNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not change password", err)
		}
	}

	logger.Log.WithField("user_id", userID).Info("Password change request completed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "password changed"})
	return nil
}

// Me godoc
// @Summary      Return the profile encoded in the presented access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} model.AccessClaims
// @Security     BearerAuth
// @Router       /me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	claims, ok := r.Context().Value(ClaimsKey).(*model.AccessClaims)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid claims in token", nil)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(claims)
	return nil
}
