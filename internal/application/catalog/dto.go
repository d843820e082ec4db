package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
)

// ===================== Request DTOs =====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"gte=0"`
	Category string          `json:"category" binding:"max=100"`
}

// UpdateProductRequest represents a partial product update; nil fields are
// left unchanged
type UpdateProductRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=200"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
}

// ===================== Response DTOs =====================

// ProductResponse annotates a product with both the sellable quantity
// (ledger minus open-order reservations) and the raw ledger value
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`       // sellable
	TotalQuantity int             `json:"total_quantity"` // ledger
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToProductResponse maps a product and its reserved quantity to a response
func ToProductResponse(p *catalog.Product, reserved int) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      p.Quantity - reserved,
		TotalQuantity: p.Quantity,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
	}
}
