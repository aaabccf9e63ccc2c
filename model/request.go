// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the signed refresh token to exchange for a new
// access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest carries the refresh token whose session should end.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest defines the payload for a password change. The
// current password must verify before the new one is accepted.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UpdateUserRoleRequest defines the payload for updating a user's role.
// Using a dedicated struct instead of an inline anonymous struct in the handler
// improves code clarity, reusability, and compatibility with tooling like swag.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUserPermissionsRequest replaces a user's explicit capability set.
type UpdateUserPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,min=1"`
}
