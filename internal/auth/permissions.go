package auth

import "errors"

// Platform roles.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RoleStudent = "student"
)

// Permissions per role.
var Permissions = map[string][]string{
	RoleAdmin: {
		"users:read",
		"users:write",
		"users:delete",
		"cases:read",
		"cases:write",
		"cases:delete",
		"verification:review",
		"reports:resolve",
		"system:admin",
	},
	RoleDoctor: {
		"users:read:self",
		"users:write:self",
		"cases:read",
		"cases:write:self",
		"cases:delete:self",
		"verification:submit",
	},
	RoleStudent: {
		"users:read:self",
		"users:write:self",
		"cases:read",
	},
}

// HasPermission reports whether the role grants the permission.
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidateRole rejects unknown roles.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleDoctor, RoleStudent:
		return nil
	default:
		return errors.New("invalid role")
	}
}
