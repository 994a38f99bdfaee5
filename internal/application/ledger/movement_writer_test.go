package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

func (m *MockEventPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// memMovementRepo is an in-memory MovementRepository good enough for
// exercising the writer, including its concurrency behavior.
type memMovementRepo struct {
	mu        sync.Mutex
	movements []ledger.Movement
	failAll   bool
}

func (r *memMovementRepo) Insert(ctx context.Context, m *ledger.Movement) error {
	return r.InsertAll(ctx, []*ledger.Movement{m})
}

func (r *memMovementRepo) InsertAll(ctx context.Context, movements []*ledger.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return shared.NewStoreError(errors.New("connection reset"))
	}
	for _, m := range movements {
		r.movements = append(r.movements, *m)
	}
	return nil
}

func (r *memMovementRepo) FindAll(ctx context.Context) ([]ledger.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ledger.Movement, len(r.movements))
	for i := range r.movements {
		out[len(r.movements)-1-i] = r.movements[i]
	}
	return out, nil
}

func (r *memMovementRepo) Find(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	all, _ := r.FindAll(ctx)
	out := make([]ledger.Movement, 0, len(all))
	for _, m := range all {
		if filter.ProductID != uuid.Nil && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != uuid.Nil && !m.Touches(filter.LocationID) {
			continue
		}
		if !filter.Since.IsZero() && m.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovementRepo) FindByOperation(ctx context.Context, operationID uuid.UUID) ([]ledger.Movement, error) {
	all, _ := r.FindAll(ctx)
	out := make([]ledger.Movement, 0)
	for _, m := range all {
		if m.OperationID == operationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

func (r *memMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
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

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWarehouseRepository is a mock implementation of location.WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByName(ctx context.Context, name string) (*location.Warehouse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context) ([]location.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]location.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *location.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testSession(t *testing.T) auth.Session {
	t.Helper()
	s, err := auth.NewSession(uuid.New(), "Sarah Johnson", auth.RoleManager)
	require.NoError(t, err)
	return s
}

func testProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, strings.ToUpper(name), decimal.NewFromInt(price/2), decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func testWarehouse(t *testing.T, name string) *location.Warehouse {
	t.Helper()
	w, err := location.NewWarehouse(name, location.TypeStoreFront, "")
	require.NoError(t, err)
	return w
}

func seedStock(t *testing.T, repo *memMovementRepo, productID, locationID uuid.UUID, qty int64) {
	t.Helper()
	m, err := ledger.NewInbound(productID, locationID, ledger.MovementTypeIn, qty, InitialLoadReason, uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), m))
}

func TestRecordInitialStock(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	t.Run("appends IN movement to default location", func(t *testing.T) {
		movementRepo := &memMovementRepo{}
		productRepo := new(MockProductRepository)
		warehouseRepo := new(MockWarehouseRepository)
		publisher := NewMockEventPublisher()

		product := testProduct(t, "Laptop", 1200)
		mainStore := testWarehouse(t, location.DefaultLocationName)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		warehouseRepo.On("FindByName", ctx, location.DefaultLocationName).Return(mainStore, nil)

		writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
		writer.SetEventPublisher(publisher)

		resp, err := writer.RecordInitialStock(ctx, session, product.ID, nil, 25, "")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, int64(25), resp.Quantity)
		assert.Equal(t, InitialLoadReason, resp.Reason)
		assert.Equal(t, mainStore.ID, *resp.ToLocationID)
		assert.Len(t, publisher.GetEventsByType(ledger.EventTypeStockLoaded), 1)
	})

	t.Run("zero quantity is a silent no-op", func(t *testing.T) {
		movementRepo := &memMovementRepo{}
		writer := NewMovementWriter(movementRepo, new(MockProductRepository), new(MockWarehouseRepository))

		resp, err := writer.RecordInitialStock(ctx, session, uuid.New(), nil, 0, "")
		require.NoError(t, err)
		assert.Nil(t, resp)
		assert.Zero(t, movementRepo.count())
	})

	t.Run("missing default location is a configuration error", func(t *testing.T) {
		movementRepo := &memMovementRepo{}
		productRepo := new(MockProductRepository)
		warehouseRepo := new(MockWarehouseRepository)

		product := testProduct(t, "Laptop", 1200)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		warehouseRepo.On("FindByName", ctx, location.DefaultLocationName).Return(nil, shared.ErrNotFound)

		writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)

		_, err := writer.RecordInitialStock(ctx, session, product.ID, nil, 5, "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeConfiguration, shared.CodeOf(err))
		assert.Zero(t, movementRepo.count())
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		writer := NewMovementWriter(&memMovementRepo{}, new(MockProductRepository), new(MockWarehouseRepository))
		_, err := writer.RecordInitialStock(ctx, session, uuid.New(), nil, -1, "")
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestRecordSale(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	setup := func(t *testing.T) (*MovementWriter, *memMovementRepo, *MockEventPublisher, *catalog.Product, *catalog.Product, *location.Warehouse) {
		movementRepo := &memMovementRepo{}
		productRepo := new(MockProductRepository)
		warehouseRepo := new(MockWarehouseRepository)
		publisher := NewMockEventPublisher()

		phone := testProduct(t, "Phone", 1000)
		charger := testProduct(t, "Charger", 40)
		mainStore := testWarehouse(t, location.DefaultLocationName)

		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*phone, *charger}, nil)
		warehouseRepo.On("FindByName", ctx, location.DefaultLocationName).Return(mainStore, nil)
		warehouseRepo.On("FindByID", ctx, mainStore.ID).Return(mainStore, nil)

		writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
		writer.SetEventPublisher(publisher)
		return writer, movementRepo, publisher, phone, charger, mainStore
	}

	t.Run("commits one OUT row per line with shared operation id", func(t *testing.T) {
		writer, movementRepo, publisher, phone, charger, mainStore := setup(t)
		seedStock(t, movementRepo, phone.ID, mainStore.ID, 10)
		seedStock(t, movementRepo, charger.ID, mainStore.ID, 10)

		result, err := writer.RecordSale(ctx, session, RecordSaleRequest{
			Items: []SaleLine{
				{ProductID: phone.ID, Quantity: 2},
				{ProductID: charger.ID, Quantity: 1},
			},
			Customer: "Walk-in Customer",
		})
		require.NoError(t, err)
		require.Len(t, result.Movements, 2)
		assert.Equal(t, result.Movements[0].OperationID, result.Movements[1].OperationID)
		assert.Equal(t, int64(-2), result.Movements[0].Quantity)
		assert.True(t, result.Total.Equal(decimal.NewFromInt(2040)))
		assert.Contains(t, result.Movements[0].Reason, result.OrderNumber)
		assert.Len(t, publisher.GetEventsByType(ledger.EventTypeSaleRecorded), 1)

		stock, err := movementRepo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(8), ledger.StockFor(stock, phone.ID))
	})

	t.Run("insufficient line rejects the whole sale and writes nothing", func(t *testing.T) {
		writer, movementRepo, publisher, phone, charger, mainStore := setup(t)
		seedStock(t, movementRepo, phone.ID, mainStore.ID, 10)
		seedStock(t, movementRepo, charger.ID, mainStore.ID, 1)
		before := movementRepo.count()

		_, err := writer.RecordSale(ctx, session, RecordSaleRequest{
			Items: []SaleLine{
				{ProductID: phone.ID, Quantity: 2},
				{ProductID: charger.ID, Quantity: 5},
			},
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
		assert.Contains(t, err.Error(), "Available: 1")
		assert.Equal(t, before, movementRepo.count())
		assert.Zero(t, publisher.Count())
	})

	t.Run("duplicate lines are checked against combined demand", func(t *testing.T) {
		writer, movementRepo, _, phone, _, mainStore := setup(t)
		seedStock(t, movementRepo, phone.ID, mainStore.ID, 3)

		_, err := writer.RecordSale(ctx, session, RecordSaleRequest{
			Items: []SaleLine{
				{ProductID: phone.ID, Quantity: 2},
				{ProductID: phone.ID, Quantity: 2},
			},
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		writer, _, _, _, _, _ := setup(t)
		_, err := writer.RecordSale(ctx, session, RecordSaleRequest{})
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestRecordTransfer(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	setup := func(t *testing.T) (*MovementWriter, *memMovementRepo, *MockEventPublisher, *catalog.Product, *location.Warehouse, *location.Warehouse) {
		movementRepo := &memMovementRepo{}
		productRepo := new(MockProductRepository)
		warehouseRepo := new(MockWarehouseRepository)
		publisher := NewMockEventPublisher()

		product := testProduct(t, "Monitor", 300)
		mainStore := testWarehouse(t, location.DefaultLocationName)
		backroom := testWarehouse(t, "Backroom A")

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		warehouseRepo.On("FindByID", ctx, mainStore.ID).Return(mainStore, nil)
		warehouseRepo.On("FindByID", ctx, backroom.ID).Return(backroom, nil)

		writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
		writer.SetEventPublisher(publisher)
		return writer, movementRepo, publisher, product, mainStore, backroom
	}

	t.Run("commits a balanced pair sharing one operation id", func(t *testing.T) {
		writer, movementRepo, publisher, product, mainStore, backroom := setup(t)
		seedStock(t, movementRepo, product.ID, mainStore.ID, 30)

		pair, err := writer.RecordTransfer(ctx, session, RecordTransferRequest{
			ProductID:      product.ID,
			FromLocationID: mainStore.ID,
			ToLocationID:   backroom.ID,
			Quantity:       5,
			Reason:         "Restock front shelf",
		})
		require.NoError(t, err)
		require.Len(t, pair, 2)
		assert.Equal(t, pair[0].OperationID, pair[1].OperationID)
		assert.Equal(t, int64(-5), pair[0].Quantity)
		assert.Equal(t, int64(5), pair[1].Quantity)
		assert.True(t, strings.HasPrefix(pair[0].Reason, "Transfer OUT: "))
		assert.True(t, strings.HasPrefix(pair[1].Reason, "Transfer IN: "))
		assert.Len(t, publisher.GetEventsByType(ledger.EventTypeStockTransferred), 1)

		all, err := movementRepo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(30), ledger.StockFor(all, product.ID), "transfer must not change global stock")
		assert.Equal(t, int64(25), ledger.StockAtFor(all, product.ID, mainStore.ID))
		assert.Equal(t, int64(5), ledger.StockAtFor(all, product.ID, backroom.ID))
	})

	t.Run("rejects transfer beyond source stock", func(t *testing.T) {
		writer, movementRepo, publisher, product, mainStore, backroom := setup(t)
		seedStock(t, movementRepo, product.ID, mainStore.ID, 3)
		before := movementRepo.count()

		_, err := writer.RecordTransfer(ctx, session, RecordTransferRequest{
			ProductID:      product.ID,
			FromLocationID: mainStore.ID,
			ToLocationID:   backroom.ID,
			Quantity:       4,
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
		assert.Contains(t, err.Error(), "Available: 3")
		assert.Equal(t, before, movementRepo.count())
		assert.Zero(t, publisher.Count())
	})

	t.Run("rejects same source and destination", func(t *testing.T) {
		writer, _, _, product, mainStore, _ := setup(t)
		_, err := writer.RecordTransfer(ctx, session, RecordTransferRequest{
			ProductID:      product.ID,
			FromLocationID: mainStore.ID,
			ToLocationID:   mainStore.ID,
			Quantity:       1,
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestRecordReturn(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	movementRepo := &memMovementRepo{}
	productRepo := new(MockProductRepository)
	warehouseRepo := new(MockWarehouseRepository)
	publisher := NewMockEventPublisher()

	product := testProduct(t, "Keyboard", 80)
	mainStore := testWarehouse(t, location.DefaultLocationName)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	warehouseRepo.On("FindByName", ctx, location.DefaultLocationName).Return(mainStore, nil)

	writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
	writer.SetEventPublisher(publisher)

	resp, err := writer.RecordReturn(ctx, session, RecordReturnRequest{
		ProductID: product.ID,
		Quantity:  2,
		Reason:    "Defective unit swap",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Quantity)
	assert.Equal(t, ledger.MovementTypeReturn.String(), resp.MovementType)
	assert.Len(t, publisher.GetEventsByType(ledger.EventTypeReturnRecorded), 1)
}

func TestRecordAdjustment(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	setup := func(t *testing.T) (*MovementWriter, *memMovementRepo, *catalog.Product, *location.Warehouse) {
		movementRepo := &memMovementRepo{}
		productRepo := new(MockProductRepository)
		warehouseRepo := new(MockWarehouseRepository)

		product := testProduct(t, "Cable", 10)
		mainStore := testWarehouse(t, location.DefaultLocationName)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		warehouseRepo.On("FindByID", ctx, mainStore.ID).Return(mainStore, nil)

		writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
		writer.SetEventPublisher(NewMockEventPublisher())
		return writer, movementRepo, product, mainStore
	}

	t.Run("applies signed correction", func(t *testing.T) {
		writer, movementRepo, product, mainStore := setup(t)
		seedStock(t, movementRepo, product.ID, mainStore.ID, 10)

		resp, err := writer.RecordAdjustment(ctx, session, RecordAdjustmentRequest{
			ProductID:  product.ID,
			LocationID: mainStore.ID,
			Quantity:   -4,
			Reason:     "Shrinkage count",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(-4), resp.Quantity)

		all, err := movementRepo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6), ledger.StockAtFor(all, product.ID, mainStore.ID))
	})

	t.Run("rejects correction below zero", func(t *testing.T) {
		writer, movementRepo, product, mainStore := setup(t)
		seedStock(t, movementRepo, product.ID, mainStore.ID, 2)

		_, err := writer.RecordAdjustment(ctx, session, RecordAdjustmentRequest{
			ProductID:  product.ID,
			LocationID: mainStore.ID,
			Quantity:   -3,
			Reason:     "Shrinkage count",
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
	})

	t.Run("requires a reason", func(t *testing.T) {
		writer, _, product, mainStore := setup(t)
		_, err := writer.RecordAdjustment(ctx, session, RecordAdjustmentRequest{
			ProductID:  product.ID,
			LocationID: mainStore.ID,
			Quantity:   1,
		})
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

// Twenty concurrent single-unit sales against a stock of ten must end
// with exactly ten committed and the balance at zero, never negative.
func TestConcurrentSalesAreSerialized(t *testing.T) {
	ctx := context.Background()
	session := testSession(t)

	movementRepo := &memMovementRepo{}
	productRepo := new(MockProductRepository)
	warehouseRepo := new(MockWarehouseRepository)

	product := testProduct(t, "Headset", 150)
	mainStore := testWarehouse(t, location.DefaultLocationName)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
	warehouseRepo.On("FindByName", mock.Anything, location.DefaultLocationName).Return(mainStore, nil)

	writer := NewMovementWriter(movementRepo, productRepo, warehouseRepo)
	seedStock(t, movementRepo, product.ID, mainStore.ID, 10)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := writer.RecordSale(ctx, session, RecordSaleRequest{
				Items: []SaleLine{{ProductID: product.ID, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.Equal(t, shared.CodeInsufficientStock, shared.CodeOf(err))
			failed++
		}
	}
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, failed)

	all, err := movementRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ledger.StockAtFor(all, product.ID, mainStore.ID))
}
