package audit

import (
	"fmt"
	"strings"
)

// FieldChange is one structured difference between the pre- and post-update
// state of an entity. Workflows produce these; rendering to human text is a
// separate presentation step so audit history stays queryable by field.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// NewFieldChange creates a change record for a field transition
func NewFieldChange(field, oldValue, newValue string) FieldChange {
	return FieldChange{Field: field, OldValue: oldValue, NewValue: newValue}
}

// NewStructuralChange creates a change record that only states the field
// changed, without old/new values. Used for item lists compared structurally.
func NewStructuralChange(field string) FieldChange {
	return FieldChange{Field: field}
}

// RenderChange renders a single change as a human-readable clause
func RenderChange(c FieldChange) string {
	switch {
	case c.OldValue == "" && c.NewValue == "":
		return fmt.Sprintf("%s changed", c.Field)
	case c.OldValue == "false" && c.NewValue == "true":
		return fmt.Sprintf("%s set", c.Field)
	case c.OldValue == "true" && c.NewValue == "false":
		return fmt.Sprintf("%s unset", c.Field)
	default:
		return fmt.Sprintf("%s changed from %s to %s", c.Field, c.OldValue, c.NewValue)
	}
}

// RenderChanges renders a change list as a comma-separated description,
// preserving the order the workflow computed the changes in
func RenderChanges(changes []FieldChange) string {
	clauses := make([]string, 0, len(changes))
	for _, c := range changes {
		clauses = append(clauses, RenderChange(c))
	}
	return strings.Join(clauses, ", ")
}
