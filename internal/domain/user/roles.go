// Package user defines identities, roles, and the permission policy shared
// by every mutation gate in the API. This is the single authoritative copy;
// any client-side mirror of it is advisory only.
package user

// Role is an authenticated caller's role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Permission names a single capability.
type Permission string

const (
	PermissionEdit        Permission = "edit"
	PermissionDelete      Permission = "delete"
	PermissionView        Permission = "view"
	PermissionManageUsers Permission = "manage_users"
)

// rolePermissions is the fixed role → permission table.
var rolePermissions = map[Role][]Permission{
	RoleAdmin:  {PermissionEdit, PermissionDelete, PermissionView, PermissionManageUsers},
	RoleEditor: {PermissionEdit, PermissionView},
	RoleViewer: {PermissionView},
}

// Can reports whether a role holds a permission. Unknown or empty roles hold
// nothing, so unauthenticated callers fail closed.
func Can(role Role, permission Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}

// Permissions returns the permission set for a role, nil for unknown roles.
func Permissions(role Role) []Permission {
	perms := rolePermissions[role]
	if perms == nil {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// ParseRole normalizes a role claim. Anything outside the known set maps to
// the empty role, which holds no permissions.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor:
		return RoleEditor
	case RoleViewer:
		return RoleViewer
	}
	return ""
}

// Identity is the resolved caller for a request.
type Identity struct {
	Role Role `json:"role"`
}

// Can reports whether the identity holds a permission. A nil identity is an
// unauthenticated caller and holds nothing.
func (id *Identity) Can(permission Permission) bool {
	if id == nil {
		return false
	}
	return Can(id.Role, permission)
}
