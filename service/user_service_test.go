package service

import (
	"context"
	"go-auth-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockUserRepoForUserSvc is a mock implementation of IUserRepository for
// testing the user service.
type mockUserRepoForUserSvc struct{ mock.Mock }

func (m *mockUserRepoForUserSvc) UpdateRole(ctx context.Context, userID int, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *mockUserRepoForUserSvc) UpdatePermissions(ctx context.Context, userID int, permissions []string) error {
	args := m.Called(ctx, userID, permissions)
	return args.Error(0)
}

// --- Unused methods that are required to satisfy the interface contract ---
func (m *mockUserRepoForUserSvc) FindByUsername(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepoForUserSvc) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepoForUserSvc) FindByID(context.Context, int) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepoForUserSvc) Insert(context.Context, *model.User) error             { return nil }
func (m *mockUserRepoForUserSvc) UpdatePasswordHash(context.Context, int, string) error { return nil }

func TestUserService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("valid role", func(t *testing.T) {
		mockRepo := new(mockUserRepoForUserSvc)
		userService := NewUserService(mockRepo)

		mockRepo.On("UpdateRole", mock.Anything, 1, model.RoleAdmin).Return(nil).Once()

		err := userService.UpdateUserRole(ctx, 1, model.RoleAdmin)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		mockRepo := new(mockUserRepoForUserSvc)
		userService := NewUserService(mockRepo)

		err := userService.UpdateUserRole(ctx, 1, model.Role("superuser"))

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "UpdateRole")
	})
}

func TestUserService_UpdateUserPermissions(t *testing.T) {
	mockRepo := new(mockUserRepoForUserSvc)
	userService := NewUserService(mockRepo)

	permissions := []string{"documents:read", "users:manage"}
	mockRepo.On("UpdatePermissions", mock.Anything, 1, permissions).Return(nil).Once()

	err := userService.UpdateUserPermissions(context.Background(), 1, permissions)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
