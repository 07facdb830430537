package rbac

import "strings"

// Permission names a capability derived from roles.
type Permission string

const (
	// PermPublish allows publishing content.
	PermPublish Permission = "content.publish"
	// PermModifyRights allows changing role assignments of other users.
	PermModifyRights Permission = "rights.modify"
	// PermDesign allows editing layouts and templates.
	PermDesign Permission = "site.design"
)

// rolePermissions is keyed by the upper case role name.
var rolePermissions = map[string][]Permission{ //nolint:gochecknoglobals
	strings.ToUpper(Admin):       {PermPublish, PermModifyRights, PermDesign},
	strings.ToUpper(Publisher):   {PermPublish},
	strings.ToUpper(AuthManager): {PermModifyRights},
	strings.ToUpper(Designer):    {PermDesign},
}

// HasPermission reports whether any of roles grants perm. An empty role set grants nothing.
func HasPermission(roles []string, perm Permission) bool {
	for _, role := range roles {
		for _, p := range rolePermissions[strings.ToUpper(role)] {
			if p == perm {
				return true
			}
		}
	}

	return false
}

// Permissions returns the distinct permissions granted by roles.
func Permissions(roles []string) []Permission {
	seen := make(map[Permission]bool)

	var out []Permission

	for _, role := range roles {
		for _, p := range rolePermissions[strings.ToUpper(role)] {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	return out
}

// CanPublish is true for Publisher and Admin.
func CanPublish(roles []string) bool {
	return HasPermission(roles, PermPublish)
}

// CanModifyRights is true for AuthManager and Admin.
func CanModifyRights(roles []string) bool {
	return HasPermission(roles, PermModifyRights)
}

// CanDesign is true for Designer and Admin.
func CanDesign(roles []string) bool {
	return HasPermission(roles, PermDesign)
}
