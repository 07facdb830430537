// Package rbac holds the fixed system roles and maps role sets to capabilities.
package rbac

import "strings"

// System roles known to every installation.
const (
	SysAdmin    = "SysAdmin"
	Admin       = "Admin"
	Application = "Application"
	AuthManager = "AuthManager"
	Publisher   = "Publisher"
	Designer    = "Designer"
	User        = "User"
	Visitor     = "Visitor"
)

// SystemRoles returns the well known roles in seed order.
func SystemRoles() []string {
	return []string{SysAdmin, Admin, Application, AuthManager, Publisher, Designer, User, Visitor}
}

// IsSystemRole reports whether name matches a well known role, ignoring case.
func IsSystemRole(name string) bool {
	for _, r := range SystemRoles() {
		if strings.EqualFold(r, name) {
			return true
		}
	}

	return false
}
