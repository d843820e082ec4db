package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ProductService owns the product catalog and the stock ledger. It is the
// sole mutator of product quantity: the workflow services reach the ledger
// only through its AdjustQuantity and SetQuantity primitives.
type ProductService struct {
	products catalog.ProductRepository
	orders   trade.OrderRepository
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepository,
	orders trade.OrderRepository,
	recorder audit.Recorder,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		orders:   orders,
		recorder: recorder,
		logger:   logger,
	}
}

// Create creates a product, enforcing name uniqueness among active products
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actor identity.Actor) (*ProductResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Price, req.Quantity, req.Category)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeProductCreated,
		Description: fmt.Sprintf("%s: Product %s created.", actor.Name, product.Name),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, 0)
	return &response, nil
}

// List returns all active products annotated with sellable quantities
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	reserved, err := s.AvailableQuantities(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], reserved[products[i].ID]))
	}
	return responses, nil
}

// Get returns one active product annotated with its sellable quantity
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reserved, err := s.AvailableQuantities(ctx)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, reserved[product.ID])
	return &response, nil
}

// Update applies a partial update and records the field-level diff
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, actor identity.Actor) (*ProductResponse, error) {
	product, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != product.Name {
		if err := s.ensureNameFree(ctx, *req.Name); err != nil {
			return nil, err
		}
	}

	changes, err := product.ApplyPatch(catalog.ProductPatch{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeProductUpdated,
		Description: fmt.Sprintf("%s: Product %s updated. Changes: %s", actor.Name, product.Name, audit.RenderChanges(changes)),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, 0)
	return &response, nil
}

// Delete soft-deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, actor identity.Actor) error {
	product, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	name := product.Name
	if err := product.SoftDelete(); err != nil {
		return err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeProductDeleted,
		Description: fmt.Sprintf("%s: Product %s deleted.", actor.Name, name),
	})
	return err
}

// AvailableQuantities scans all open orders and returns the reserved
// quantity per product. Recomputed fully on every call; correctness
// depends only on the current open-order set.
func (s *ProductService) AvailableQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	open, err := s.orders.FindOpen(ctx)
	if err != nil {
		return nil, err
	}

	reserved := make(map[uuid.UUID]int)
	for _, order := range open {
		for _, item := range order.Items {
			reserved[item.ProductID] += item.Quantity
		}
	}
	return reserved, nil
}

// AdjustQuantity adds delta to a product's ledger quantity. Invoked only
// by the workflow services on order completion and purchase delivery.
func (s *ProductService) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	product.AdjustQuantity(delta)
	return s.products.Save(ctx, product)
}

// SetQuantity overwrites a product's ledger quantity. Invoked only by the
// inventory workflow on count completion.
func (s *ProductService) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	product.SetQuantity(quantity)
	return s.products.Save(ctx, product)
}

func (s *ProductService) ensureNameFree(ctx context.Context, name string) error {
	existing, err := s.products.FindActiveByName(ctx, name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil {
		return shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}
	return nil
}

// Ensure ProductService provides the ledger mutation primitives
var _ catalog.StockMutator = (*ProductService)(nil)
