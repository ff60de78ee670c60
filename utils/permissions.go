package utils

import "strings"

// MatchesPermission checks if a user permission matches the required permission
// Supports wildcard patterns:
//
// Examples:
//   - "*:*:*" or "*" matches everything (super admin wildcard)
//   - "product:*" matches all actions on the product resource (e.g., product:create, product:read, product:delete)
//   - "*:read" matches read action on all resources (e.g., product:read, project:read, customer:read)
//   - "product:create" exact match
//
// Permission format: "resource:action" or "resource:action:scope"
func MatchesPermission(userPerm, requiredPerm string) bool {
	// Exact match (fastest path)
	if userPerm == requiredPerm {
		return true
	}

	// Full wildcard - grants everything
	if userPerm == "*:*:*" || userPerm == "*" {
		return true
	}

	// Split permissions into parts (format: resource:action or resource:action:scope)
	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")

	// Ensure both have at least 2 parts (resource:action)
	if len(userParts) < 2 || len(reqParts) < 2 {
		// Old format (no colons): only exact match works
		return userPerm == requiredPerm
	}

	// Check resource match (first part)
	resourceMatch := userParts[0] == "*" || userParts[0] == reqParts[0]

	// Check action match (second part)
	actionMatch := userParts[1] == "*" || userParts[1] == reqParts[1]

	// Both resource and action must match for permission to be granted
	return resourceMatch && actionMatch
}

// RolePermissions is the static capability table for the three application
// roles. Workers can read the catalog and move stock; project managers
// additionally manage products, projects and customers; super admins get the
// full wildcard, including user administration.
var RolePermissions = map[string][]string{
	"super_admin": {"*:*:*"},
	"project_manager": {
		"product:*",
		"category:*",
		"project:*",
		"customer:*",
		"transaction:*",
		"kpi:read",
		"export:*",
		"file:upload",
	},
	"worker": {
		"product:read",
		"category:read",
		"project:read",
		"customer:read",
		"transaction:create",
		"transaction:read",
		"kpi:read",
	},
}

// RoleHasPermission reports whether the given role grants the required
// permission under the wildcard rules above.
func RoleHasPermission(role, requiredPerm string) bool {
	for _, p := range RolePermissions[role] {
		if MatchesPermission(p, requiredPerm) {
			return true
		}
	}
	return false
}
