package handler

import (
	"encoding/json"
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func userIDFromPath(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil && id > 0
}

// UpdateRole godoc
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body model.UpdateUserRoleRequest true "Role payload"
// @Success      200 {object} map[string]string
// @Failure      403 {object} common.AppError
// @Security     BearerAuth
// @Router       /users/{id}/role [put]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	targetID, ok := userIDFromPath(r)
	if !ok {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID in path", nil)
	}

	var req model.UpdateUserRoleRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"target_user_id": targetID,
		"new_role":       req.Role,
	})
	log.Info("Update role request received")

	if err := h.service.UpdateUserRole(r.Context(), targetID, req.Role); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update role", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "role updated"})
	return nil
}

// UpdatePermissions godoc
// @Summary      Replace a user's explicit permission set
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body model.UpdateUserPermissionsRequest true "Permissions payload"
// @Success      200 {object} map[string]string
// @Failure      403 {object} common.AppError
// @Security     BearerAuth
// @Router       /users/{id}/permissions [put]
func (h *UserHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) *common.AppError {
	targetID, ok := userIDFromPath(r)
	if !ok {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID in path", nil)
	}

	var req model.UpdateUserPermissionsRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.UpdateUserPermissions(r.Context(), targetID, req.Permissions); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, err.Error(), nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update permissions", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "permissions updated"})
	return nil
}
