package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// ===================== Request DTOs =====================

// CountItemRequest is one count line in an update request
type CountItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity" binding:"gte=0"`
}

// UpdateCountRequest represents a partial count session update; nil
// fields are left unchanged
type UpdateCountRequest struct {
	Items       *[]CountItemRequest `json:"items"`
	IsCompleted *bool               `json:"is_completed"`
	Comment     *string             `json:"comment"`
}

// ===================== Response DTOs =====================

// CountItemResponse is one count line in a response
type CountItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
}

// CountResponse represents a count session in API responses
type CountResponse struct {
	ID          uuid.UUID           `json:"id"`
	CreatedByID uuid.UUID           `json:"created_by_id"`
	StartDate   time.Time           `json:"start_date"`
	IsCompleted bool                `json:"is_completed"`
	Items       []CountItemResponse `json:"items"`
	Comment     string              `json:"comment"`
}

// ToCountResponse maps a count session to a response
func ToCountResponse(s *inventory.CountSession) CountResponse {
	items := make([]CountItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, CountItemResponse{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			NewQuantity: item.NewQuantity,
		})
	}
	return CountResponse{
		ID:          s.ID,
		CreatedByID: s.CreatedByID,
		StartDate:   s.StartDate,
		IsCompleted: s.IsCompleted,
		Items:       items,
		Comment:     s.Comment,
	}
}

// ToCountResponses maps count sessions to responses
func ToCountResponses(sessions []inventory.CountSession) []CountResponse {
	responses := make([]CountResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, ToCountResponse(&sessions[i]))
	}
	return responses
}
