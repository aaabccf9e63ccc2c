// file: model/user.go

package model

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record stored by the repository. The password hash
// is never exposed in JSON responses.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // bcrypt hash, opaque to everything but the hasher.
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicProfile strips the user down to what callers are allowed to see.
func (u *User) PublicProfile() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
	}
}

// PublicUser is the caller-facing view of a user account.
type PublicUser struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}
