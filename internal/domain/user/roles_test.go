package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissionTable(t *testing.T) {
	assert.True(t, Can(RoleAdmin, PermissionEdit))
	assert.True(t, Can(RoleAdmin, PermissionDelete))
	assert.True(t, Can(RoleAdmin, PermissionView))
	assert.True(t, Can(RoleAdmin, PermissionManageUsers))

	assert.True(t, Can(RoleEditor, PermissionEdit))
	assert.True(t, Can(RoleEditor, PermissionView))
	assert.False(t, Can(RoleEditor, PermissionDelete))
	assert.False(t, Can(RoleEditor, PermissionManageUsers))

	assert.True(t, Can(RoleViewer, PermissionView))
	assert.False(t, Can(RoleViewer, PermissionEdit))
	assert.False(t, Can(RoleViewer, PermissionDelete))
	assert.False(t, Can(RoleViewer, PermissionManageUsers))
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	assert.False(t, Can(Role("superuser"), PermissionView))
	assert.False(t, Can(Role(""), PermissionEdit))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleEditor, ParseRole("editor"))
	assert.Equal(t, RoleViewer, ParseRole("viewer"))
	assert.Equal(t, Role(""), ParseRole("root"))
}

func TestNilIdentityCannotDoAnything(t *testing.T) {
	var identity *Identity
	assert.False(t, identity.Can(PermissionView))
}
