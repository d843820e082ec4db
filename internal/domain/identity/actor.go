package identity

import (
	"github.com/google/uuid"
)

// Actor is the authenticated user on whose behalf a workflow operation
// runs. It is produced by the surrounding auth layer and only consumed here.
type Actor struct {
	ID      uuid.UUID
	Name    string
	IsAdmin bool
	RoleID  uuid.UUID
}

// CanAccessRecordOf reports whether the actor may mutate a record owned by
// the given user. Admins may access any record.
func (a Actor) CanAccessRecordOf(ownerID uuid.UUID) bool {
	return a.IsAdmin || a.ID == ownerID
}
