package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name     string
		userPerm string
		required string
		want     bool
	}{
		{"exact match", "product:read", "product:read", true},
		{"full wildcard", "*:*:*", "customer:delete", true},
		{"bare wildcard", "*", "transaction:create", true},
		{"resource wildcard", "product:*", "product:delete", true},
		{"resource wildcard wrong resource", "product:*", "project:delete", false},
		{"action wildcard", "*:read", "project:read", true},
		{"action wildcard wrong action", "*:read", "project:update", false},
		{"different action", "product:read", "product:update", false},
		{"different resource", "product:read", "customer:read", false},
		{"legacy format exact only", "manage_users", "manage_users", true},
		{"legacy format no wildcard", "manage_users", "manage_roles", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesPermission(tt.userPerm, tt.required); got != tt.want {
				t.Errorf("MatchesPermission(%q, %q) = %v, want %v", tt.userPerm, tt.required, got, tt.want)
			}
		})
	}
}

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		want     bool
	}{
		{"super admin does everything", "super_admin", "user:delete", true},
		{"manager manages products", "project_manager", "product:delete", true},
		{"manager exports", "project_manager", "export:read", true},
		{"manager uploads files", "project_manager", "file:upload", true},
		{"manager cannot administer users", "project_manager", "user:update", false},
		{"worker reads products", "worker", "product:read", true},
		{"worker records transactions", "worker", "transaction:create", true},
		{"worker cannot edit products", "worker", "product:update", false},
		{"worker cannot export", "worker", "export:read", false},
		{"worker cannot manage projects", "worker", "project:update", false},
		{"unknown role has nothing", "auditor", "product:read", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleHasPermission(tt.role, tt.required); got != tt.want {
				t.Errorf("RoleHasPermission(%q, %q) = %v, want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func BenchmarkMatchesPermission(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("product:*", "product:delete")
	}
}
