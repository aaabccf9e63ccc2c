// file: service/permission_test.go

package service

import (
	"go-auth-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	t.Run("explicit capability", func(t *testing.T) {
		user := &model.User{Role: model.RoleUser, Permissions: []string{"documents:read"}}

		assert.True(t, HasPermission(user, "documents:read"))
		assert.False(t, HasPermission(user, "documents:write"))
	})

	t.Run("admin tag is a wildcard", func(t *testing.T) {
		user := &model.User{Role: model.RoleUser, Permissions: []string{"admin"}}

		// Every capability is satisfied, including ones never listed.
		for _, capability := range []string{"documents:read", "users:manage", "never:granted"} {
			assert.True(t, HasPermission(user, capability), capability)
		}
	})

	t.Run("admin role is a wildcard", func(t *testing.T) {
		user := &model.User{Role: model.RoleAdmin, Permissions: nil}

		assert.True(t, HasPermission(user, "anything:at:all"))
	})

	t.Run("empty set grants nothing", func(t *testing.T) {
		user := &model.User{Role: model.RoleUser}

		assert.False(t, HasPermission(user, "documents:read"))
	})

	t.Run("nil user grants nothing", func(t *testing.T) {
		assert.False(t, HasPermission(nil, "documents:read"))
	})
}

func TestClaimsHavePermission(t *testing.T) {
	claims := &model.AccessClaims{Role: model.RoleUser, Permissions: []string{"reports:view"}}

	assert.True(t, ClaimsHavePermission(claims, "reports:view"))
	assert.False(t, ClaimsHavePermission(claims, "reports:edit"))
	assert.False(t, ClaimsHavePermission(nil, "reports:view"))

	adminClaims := &model.AccessClaims{Role: model.RoleAdmin}
	assert.True(t, ClaimsHavePermission(adminClaims, "reports:edit"))
}
