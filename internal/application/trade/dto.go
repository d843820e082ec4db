package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/trade"
)

// ===================== Request DTOs =====================

// OrderItemRequest is one order line in a create or update request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// UpdateOrderRequest represents a partial order update; nil fields are
// left unchanged
type UpdateOrderRequest struct {
	Items         *[]OrderItemRequest `json:"items"`
	IsPaid        *bool               `json:"is_paid"`
	ConfirmedPaid *bool               `json:"confirmed_paid"`
	IsCompleted   *bool               `json:"is_completed"`
	Comment       *string             `json:"comment"`
}

// PurchaseItemRequest is one purchase line in an update request.
// ConfirmedQuantity is the cumulative total received, not an increment.
type PurchaseItemRequest struct {
	ProductID         uuid.UUID `json:"product_id" binding:"required"`
	Quantity          int       `json:"quantity"`
	ConfirmedQuantity int       `json:"confirmed_quantity"`
}

// UpdatePurchaseRequest represents a partial purchase update
type UpdatePurchaseRequest struct {
	Items            *[]PurchaseItemRequest `json:"items"`
	IsPaid           *bool                  `json:"is_paid"`
	IsCompleted      *bool                  `json:"is_completed"`
	PartialCompleted *bool                  `json:"partial_completed"`
	IsCreated        *bool                  `json:"is_created"`
	Comment          *string                `json:"comment"`
}

// ===================== Response DTOs =====================

// OrderItemResponse is one order line in a response
type OrderItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   int                 `json:"order_number"`
	UserID        uuid.UUID           `json:"user_id"`
	Items         []OrderItemResponse `json:"items"`
	IsCompleted   bool                `json:"is_completed"`
	IsPaid        bool                `json:"is_paid"`
	ConfirmedPaid bool                `json:"confirmed_paid"`
	Comment       string              `json:"comment"`
	OrderDate     time.Time           `json:"order_date"`
}

// ToOrderResponse maps an order to a response
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Items:         items,
		IsCompleted:   o.IsCompleted,
		IsPaid:        o.IsPaid,
		ConfirmedPaid: o.ConfirmedPaid,
		Comment:       o.Comment,
		OrderDate:     o.OrderDate,
	}
}

// ToOrderResponses maps orders to responses
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}

// PurchaseItemResponse is one purchase line in a response
type PurchaseItemResponse struct {
	ProductID         uuid.UUID `json:"product_id"`
	Quantity          int       `json:"quantity"`
	ConfirmedQuantity int       `json:"confirmed_quantity"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID               uuid.UUID              `json:"id"`
	PurchaseNumber   int                    `json:"purchase_number"`
	UserID           uuid.UUID              `json:"user_id"`
	Items            []PurchaseItemResponse `json:"items"`
	IsCompleted      bool                   `json:"is_completed"`
	PartialCompleted bool                   `json:"partial_completed"`
	IsPaid           bool                   `json:"is_paid"`
	IsCreated        bool                   `json:"is_created"`
	Comment          string                 `json:"comment"`
	PurchaseDate     time.Time              `json:"purchase_date"`
}

// ToPurchaseResponse maps a purchase to a response
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			ConfirmedQuantity: item.ConfirmedQuantity,
		})
	}
	return PurchaseResponse{
		ID:               p.ID,
		PurchaseNumber:   p.PurchaseNumber,
		UserID:           p.UserID,
		Items:            items,
		IsCompleted:      p.IsCompleted,
		PartialCompleted: p.PartialCompleted,
		IsPaid:           p.IsPaid,
		IsCreated:        p.IsCreated,
		Comment:          p.Comment,
		PurchaseDate:     p.PurchaseDate,
	}
}

// ToPurchaseResponses maps purchases to responses
func ToPurchaseResponses(purchases []trade.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, ToPurchaseResponse(&purchases[i]))
	}
	return responses
}
