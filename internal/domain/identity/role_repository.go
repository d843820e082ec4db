package identity

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// Save creates or updates a role
	Save(ctx context.Context, role *Role) error
}

// PermissionLookup answers permission checks for a role. Workflows depend
// on this narrow interface instead of the full repository.
type PermissionLookup interface {
	// PermissionsForRole returns the permission set granted to the role
	PermissionsForRole(ctx context.Context, roleID uuid.UUID) (PermissionSet, error)
}
