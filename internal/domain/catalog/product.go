package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Product is the aggregate root of the stock ledger. Its Quantity field is
// the authoritative on-hand stock, mutated only through AdjustQuantity and
// SetQuantity, and only by the workflow services.
type Product struct {
	shared.BaseAggregateRoot
	Name      string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity  int             `gorm:"not null;default:0"`
	Category  string          `gorm:"type:varchar(100)"`
	DeletedAt *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, quantity int, category string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Quantity:          quantity,
		Category:          category,
	}, nil
}

// ProductPatch carries the optional field updates of a product edit
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
	Category *string
}

// ApplyPatch applies the patch and returns the field-level diff in the
// fixed order name, price, quantity, category
func (p *Product) ApplyPatch(patch ProductPatch) ([]audit.FieldChange, error) {
	if p.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot update a deleted product")
	}

	var changes []audit.FieldChange

	if patch.Name != nil && *patch.Name != p.Name {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
		changes = append(changes, audit.NewFieldChange("name", p.Name, *patch.Name))
		p.Name = *patch.Name
	}
	if patch.Price != nil && !patch.Price.Equal(p.Price) {
		if patch.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		changes = append(changes, audit.NewFieldChange("price", p.Price.String(), patch.Price.String()))
		p.Price = *patch.Price
	}
	if patch.Quantity != nil && *patch.Quantity != p.Quantity {
		changes = append(changes, audit.NewFieldChange("quantity", strconv.Itoa(p.Quantity), strconv.Itoa(*patch.Quantity)))
		p.Quantity = *patch.Quantity
	}
	if patch.Category != nil && *patch.Category != p.Category {
		changes = append(changes, audit.NewFieldChange("category", p.Category, *patch.Category))
		p.Category = *patch.Category
	}

	if len(changes) > 0 {
		p.UpdatedAt = time.Now()
		p.IncrementVersion()
	}

	return changes, nil
}

// AdjustQuantity adds delta to the stock ledger value. No lower bound is
// enforced; a completion may drive stock negative.
func (p *Product) AdjustQuantity(delta int) {
	p.Quantity += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetQuantity overwrites the stock ledger value with a counted quantity
func (p *Product) SetQuantity(quantity int) {
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SoftDelete marks the product deleted, zeroes its stock and renames it to
// a collision-avoiding derived value so the unique name index stays free
// for a future active product with the same name.
func (p *Product) SoftDelete() error {
	if p.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Product is already deleted")
	}

	now := time.Now()
	p.DeletedAt = &now
	p.Quantity = 0
	p.Name = fmt.Sprintf("%s_deleted_%s", p.Name, now.UTC().Format(time.RFC3339))
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// IsDeleted returns true if the product has been soft-deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
