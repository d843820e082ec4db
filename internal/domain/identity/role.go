package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// Well-known permission codes consulted by the workflow layer. The HTTP
// layer additionally gates each route on its view/create/edit/delete codes.
const (
	PermApprovePayment = "approve-payment"
	PermManageCatalog  = "manage-catalog"
)

// PermissionSet is the list of permission codes granted to a role.
// It is stored as a JSON array in a single text column.
type PermissionSet []string

// Has reports whether the set contains the given permission code
func (p PermissionSet) Has(code string) bool {
	for _, c := range p {
		if c == code {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for database storage
func (p PermissionSet) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (p *PermissionSet) Scan(value interface{}) error {
	if value == nil {
		*p = PermissionSet{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PermissionSet", value)
	}
}

// Role represents a named permission set assigned to users.
// Role administration lives outside this system; roles are only read here
// to answer permission checks.
type Role struct {
	shared.BaseAggregateRoot
	Name        string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	Permissions PermissionSet `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role with the given permissions
func NewRole(name string, permissions []string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Permissions:       PermissionSet(permissions),
	}, nil
}

// Grant adds a permission code to the role
func (r *Role) Grant(code string) {
	if r.Permissions.Has(code) {
		return
	}
	r.Permissions = append(r.Permissions, code)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
