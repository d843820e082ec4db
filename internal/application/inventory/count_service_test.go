package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/warehouse/backend/internal/domain/audit"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockCountSessionRepository is a mock implementation of CountSessionRepository
type MockCountSessionRepository struct {
	mock.Mock
}

func (m *MockCountSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CountSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.CountSession), args.Error(1)
}

func (m *MockCountSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.CountSession, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.CountSession), args.Error(1)
}

func (m *MockCountSessionRepository) Save(ctx context.Context, session *inventory.CountSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockCountSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMutator is a mock implementation of catalog.StockMutator
type MockStockMutator struct {
	mock.Mock
}

func (m *MockStockMutator) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}

func (m *MockStockMutator) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockRecorder is a mock implementation of audit.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, entry audit.NewEntry) (*audit.ChangeEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.ChangeEntry), args.Error(1)
}

func testActor() identity.Actor {
	return identity.Actor{
		ID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name: "alice",
	}
}

func recordedEntry() *audit.ChangeEntry {
	entry, _ := audit.NewChangeEntry(uuid.New(), audit.ChangeInventoryUpdated, "recorded")
	return entry
}

func boolPtr(b bool) *bool { return &b }

func newCountService(sessions *MockCountSessionRepository, products *MockProductRepository, stock *MockStockMutator, recorder *MockRecorder) *CountService {
	return NewCountService(sessions, products, stock, recorder, zap.NewNop())
}

func activeProduct(name string, quantity int) catalog.Product {
	product, _ := catalog.NewProduct(name, decimal.NewFromInt(2), quantity, "")
	return *product
}

func TestCountService_Create_SnapshotsLedgerQuantities(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	hammer := activeProduct("Hammer", 93)
	wrench := activeProduct("Wrench", 12)

	products.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{hammer, wrench}, nil)
	sessions.On("Save", ctx, mock.AnythingOfType("*inventory.CountSession")).Return(nil)
	recorder.On("Record", ctx, mock.MatchedBy(func(e audit.NewEntry) bool {
		return e.ChangeType == audit.ChangeInventoryCreated
	})).Return(recordedEntry(), nil)

	result, err := service.Create(ctx, testActor())

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, hammer.ID, result.Items[0].ProductID)
	assert.Equal(t, 93, result.Items[0].Quantity)
	assert.Equal(t, 0, result.Items[0].NewQuantity)
	assert.False(t, result.IsCompleted)
	sessions.AssertExpectations(t)
}

func TestCountService_Update_CompletionOverwritesLedger(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	actor := testActor()
	hammerID := uuid.New()
	wrenchID := uuid.New()
	session, err := inventory.NewCountSession(actor.ID, []inventory.CountSnapshot{
		{ProductID: hammerID, Quantity: 93},
		{ProductID: wrenchID, Quantity: 12},
	})
	assert.NoError(t, err)

	sessions.On("FindByID", ctx, session.ID).Return(session, nil)
	sessions.On("Save", ctx, session).Return(nil)
	stock.On("SetQuantity", ctx, hammerID, 100).Return(nil).Once()
	stock.On("SetQuantity", ctx, wrenchID, 12).Return(nil).Once()
	recorder.On("Record", ctx, mock.Anything).Return(recordedEntry(), nil)

	items := []CountItemRequest{
		{ProductID: hammerID, Quantity: 93, NewQuantity: 100},
		{ProductID: wrenchID, Quantity: 12, NewQuantity: 12},
	}
	result, err := service.Update(ctx, session.ID, UpdateCountRequest{
		Items:       &items,
		IsCompleted: boolPtr(true),
	}, actor)

	assert.NoError(t, err)
	assert.True(t, result.IsCompleted)
	stock.AssertExpectations(t)
}

func TestCountService_Update_NoOverwriteWhileOpen(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	actor := testActor()
	hammerID := uuid.New()
	session, err := inventory.NewCountSession(actor.ID, []inventory.CountSnapshot{
		{ProductID: hammerID, Quantity: 93},
	})
	assert.NoError(t, err)

	sessions.On("FindByID", ctx, session.ID).Return(session, nil)
	sessions.On("Save", ctx, session).Return(nil)
	recorder.On("Record", ctx, mock.Anything).Return(recordedEntry(), nil)

	items := []CountItemRequest{{ProductID: hammerID, Quantity: 93, NewQuantity: 95}}
	_, err = service.Update(ctx, session.ID, UpdateCountRequest{Items: &items}, actor)

	assert.NoError(t, err)
	stock.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCountService_Update_CompletedSessionConflicts(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	actor := testActor()
	session, err := inventory.NewCountSession(actor.ID, nil)
	assert.NoError(t, err)
	session.IsCompleted = true

	sessions.On("FindByID", ctx, session.ID).Return(session, nil)

	result, err := service.Update(ctx, session.ID, UpdateCountRequest{IsCompleted: boolPtr(true)}, actor)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCountService_Remove_Success(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	actor := testActor()
	session, err := inventory.NewCountSession(actor.ID, nil)
	assert.NoError(t, err)

	sessions.On("FindByID", ctx, session.ID).Return(session, nil)
	sessions.On("Delete", ctx, session.ID).Return(nil)
	recorder.On("Record", ctx, mock.MatchedBy(func(e audit.NewEntry) bool {
		return e.ChangeType == audit.ChangeInventoryDeleted
	})).Return(recordedEntry(), nil)

	err = service.Remove(ctx, session.ID, actor)

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestCountService_Remove_CompletedSessionConflicts(t *testing.T) {
	sessions := new(MockCountSessionRepository)
	products := new(MockProductRepository)
	stock := new(MockStockMutator)
	recorder := new(MockRecorder)
	service := newCountService(sessions, products, stock, recorder)

	ctx := context.Background()
	actor := testActor()
	session, err := inventory.NewCountSession(actor.ID, nil)
	assert.NoError(t, err)
	session.IsCompleted = true

	sessions.On("FindByID", ctx, session.ID).Return(session, nil)

	err = service.Remove(ctx, session.ID, actor)

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
