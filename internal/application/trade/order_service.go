package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService drives the sales-order workflow. Completing an order is the
// only path that decrements the stock ledger.
type OrderService struct {
	orders   trade.OrderRepository
	stock    catalog.StockMutator
	perms    identity.PermissionLookup
	recorder audit.Recorder
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders trade.OrderRepository,
	stock catalog.StockMutator,
	perms identity.PermissionLookup,
	recorder audit.Recorder,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		stock:    stock,
		perms:    perms,
		recorder: recorder,
		logger:   logger,
	}
}

// Create creates an order with the next sequence number and the submitted
// item snapshot. Numbering reads the current maximum and adds one; the
// unique index on order_number turns a concurrent duplicate into a
// conflict instead of a corrupted sequence.
func (s *OrderService) Create(ctx context.Context, items []OrderItemRequest, actor identity.Actor) (*OrderResponse, error) {
	maxNumber, err := s.orders.MaxOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	specs := make([]trade.ItemSpec, 0, len(items))
	for _, item := range items {
		specs = append(specs, trade.ItemSpec{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := trade.NewOrder(maxNumber+1, actor.ID, specs)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeOrderCreated,
		Description: fmt.Sprintf("%s: Order %d created.", actor.Name, order.OrderNumber),
	}); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List returns all orders
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Get returns one order
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Update applies a partial update under the workflow guards. On the
// completion edge it decrements the ledger once per item; no stock
// sufficiency check precedes the decrement.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest, actor identity.Actor) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	perms, err := s.actorPermissions(ctx, actor)
	if err != nil {
		return nil, err
	}

	patch := trade.OrderPatch{
		IsPaid:        req.IsPaid,
		ConfirmedPaid: req.ConfirmedPaid,
		IsCompleted:   req.IsCompleted,
		Comment:       req.Comment,
	}
	if req.Items != nil {
		specs := make([]trade.ItemSpec, 0, len(*req.Items))
		for _, item := range *req.Items {
			specs = append(specs, trade.ItemSpec{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		patch.Items = &specs
	}

	changes, completedNow, err := order.ApplyPatch(patch, actor, perms)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if completedNow {
		for _, item := range order.Items {
			if err := s.stock.AdjustQuantity(ctx, item.ProductID, -item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if _, err := s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeOrderUpdated,
		Description: fmt.Sprintf("%s: Order %d updated. Changes: %s", actor.Name, order.OrderNumber, audit.RenderChanges(changes)),
	}); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Remove deletes an order that is not yet completed
func (s *OrderService) Remove(ctx context.Context, id uuid.UUID, actor identity.Actor) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := order.EnsureRemovable(actor); err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	_, err = s.recorder.Record(ctx, audit.NewEntry{
		UserID:      actor.ID,
		ChangeType:  audit.ChangeOrderDeleted,
		Description: fmt.Sprintf("%s: Order %d deleted.", actor.Name, order.OrderNumber),
	})
	return err
}

func (s *OrderService) actorPermissions(ctx context.Context, actor identity.Actor) (identity.PermissionSet, error) {
	if actor.RoleID == uuid.Nil {
		return identity.PermissionSet{}, nil
	}
	return s.perms.PermissionsForRole(ctx, actor.RoleID)
}
