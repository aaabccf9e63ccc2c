// file: service/permission.go

package service

import "go-auth-api/model"

// HasPermission reports whether the user may exercise the given capability.
// Admin is a wildcard: a user whose role is admin, or whose explicit set
// contains "admin", satisfies every capability. Pure function, no failure
// mode; absence of a permission is a normal false, never an error.
func HasPermission(user *model.User, capability string) bool {
	if user == nil {
		return false
	}
	if user.Role == model.RoleAdmin {
		return true
	}
	for _, p := range user.Permissions {
		if p == "admin" || p == capability {
			return true
		}
	}
	return false
}

// ClaimsHavePermission applies the same wildcard rule to decoded access
// token claims, for callers that only hold a verified token.
func ClaimsHavePermission(claims *model.AccessClaims, capability string) bool {
	if claims == nil {
		return false
	}
	return HasPermission(&model.User{
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}, capability)
}
