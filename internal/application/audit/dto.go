package audit

import (
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
)

// SubscribeRequest registers a browser push endpoint for the caller
type SubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256dh   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// ChangeEntryResponse is the API representation of an audit entry
type ChangeEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	ChangeType  string    `json:"changeType"`
	Description string    `json:"description"`
	ChangeDate  int64     `json:"changeDate"`
}

// ToChangeEntryResponse converts a domain entry to its API representation
func ToChangeEntryResponse(e *audit.ChangeEntry) ChangeEntryResponse {
	return ChangeEntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		ChangeType:  e.ChangeType,
		Description: e.Description,
		ChangeDate:  e.ChangeDate,
	}
}

// ToChangeEntryResponses converts a slice of domain entries
func ToChangeEntryResponses(entries []audit.ChangeEntry) []ChangeEntryResponse {
	responses := make([]ChangeEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToChangeEntryResponse(&entries[i]))
	}
	return responses
}
