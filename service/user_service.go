package service

import (
	"context"
	"errors"
	"go-auth-api/model"
	"go-auth-api/repository"
)

// UserService handles user administration: role and permission changes.
type UserService struct {
	userRepo repository.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserRole validates the role and calls the repository to update it.
func (s *UserService) UpdateUserRole(ctx context.Context, userID int, newRole model.Role) error {
	// We ensure that only valid roles can be assigned.
	if newRole != model.RoleAdmin && newRole != model.RoleUser {
		return errors.New("invalid role specified")
	}
	// In the future, more complex logic can be added here.
	// e.g., "The last admin cannot demote themselves."

	return s.userRepo.UpdateRole(ctx, userID, newRole)
}

// UpdateUserPermissions replaces the user's explicit capability set.
func (s *UserService) UpdateUserPermissions(ctx context.Context, userID int, permissions []string) error {
	return s.userRepo.UpdatePermissions(ctx, userID, permissions)
}
