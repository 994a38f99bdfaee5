package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitialLoadReason marks the IN movement created when a product enters
// the catalog with starting stock.
const InitialLoadReason = "Initial Inventory Load"

// MovementWriter is the only path that appends to the movement ledger.
// Every operation validates against derived stock, commits its rows
// atomically, and publishes a domain event on success.
type MovementWriter struct {
	movementRepo   ledger.MovementRepository
	productRepo    catalog.ProductRepository
	warehouseRepo  location.WarehouseRepository
	eventPublisher shared.EventPublisher

	// productLocks serializes check-then-insert per product within this
	// process. The lost-update race across processes remains; see the
	// repository documentation for the deployment constraint.
	mu           sync.Mutex
	productLocks map[uuid.UUID]*sync.Mutex
}

// NewMovementWriter creates a new MovementWriter
func NewMovementWriter(
	movementRepo ledger.MovementRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo location.WarehouseRepository,
) *MovementWriter {
	return &MovementWriter{
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		productLocks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (w *MovementWriter) SetEventPublisher(publisher shared.EventPublisher) {
	w.eventPublisher = publisher
}

func (w *MovementWriter) lockFor(productID uuid.UUID) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.productLocks[productID]
	if !ok {
		l = &sync.Mutex{}
		w.productLocks[productID] = l
	}
	return l
}

// lockProducts acquires the per-product locks for the given IDs in a
// stable order so concurrent multi-item operations cannot deadlock.
// The returned function releases them.
func (w *MovementWriter) lockProducts(ids []uuid.UUID) func() {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	locks := make([]*sync.Mutex, len(unique))
	for i, id := range unique {
		locks[i] = w.lockFor(id)
		locks[i].Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// resolveLocation returns the warehouse for an explicit ID, or the
// default location when the caller omitted one.
func (w *MovementWriter) resolveLocation(ctx context.Context, locationID *uuid.UUID) (*location.Warehouse, error) {
	if locationID != nil && *locationID != uuid.Nil {
		return w.warehouseRepo.FindByID(ctx, *locationID)
	}
	wh, err := w.warehouseRepo.FindByName(ctx, location.DefaultLocationName)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainErrorf(shared.CodeConfiguration,
				"Default location %q is not configured", location.DefaultLocationName)
		}
		return nil, err
	}
	return wh, nil
}

// availableAt derives the current stock of a product at a location by
// folding that product's full movement history.
func (w *MovementWriter) availableAt(ctx context.Context, productID, locationID uuid.UUID) (int64, error) {
	movements, err := w.movementRepo.Find(ctx, ledger.MovementFilter{ProductID: productID})
	if err != nil {
		return 0, err
	}
	return ledger.StockAtFor(movements, productID, locationID), nil
}

func (w *MovementWriter) publish(ctx context.Context, events ...shared.DomainEvent) {
	if w.eventPublisher == nil {
		return
	}
	_ = w.eventPublisher.Publish(ctx, events...)
}

// RecordInitialStock appends the IN movement that loads a product's
// starting stock into a location. A zero quantity is a silent no-op;
// callers creating stockless products hit this path.
func (w *MovementWriter) RecordInitialStock(ctx context.Context, session auth.Session, productID uuid.UUID, locationID *uuid.UUID, quantity int64, note string) (*MovementResponse, error) {
	if quantity < 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Initial stock cannot be negative")
	}
	if quantity == 0 {
		return nil, nil
	}

	product, err := w.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	loc, err := w.resolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if note == "" {
		note = InitialLoadReason
	}
	movement, err := ledger.NewInbound(productID, loc.ID, ledger.MovementTypeIn, quantity, note, uuid.Nil)
	if err != nil {
		return nil, err
	}

	unlock := w.lockProducts([]uuid.UUID{productID})
	defer unlock()

	if err := w.movementRepo.Insert(ctx, movement); err != nil {
		return nil, err
	}

	w.publish(ctx, ledger.NewStockLoadedEvent(movement, product.Name, session.Name, string(session.Role)))

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// RecordSale commits a checkout: one OUT row per line, all sharing a
// single operation ID, written atomically. Every line is validated
// against derived stock before anything is appended; an insufficient
// line rejects the entire sale.
func (w *MovementWriter) RecordSale(ctx context.Context, session auth.Session, req RecordSaleRequest) (*SaleResult, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Sale must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError(shared.CodeValidation, "Sale item quantity must be positive")
		}
	}

	loc, err := w.resolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := w.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range productIDs {
		if byID[id] == nil {
			return nil, shared.NewDomainErrorf(shared.CodeNotFound, "Product %s not found", id)
		}
	}

	unlock := w.lockProducts(productIDs)
	defer unlock()

	// Demand per product, so duplicate lines cannot slip past the check.
	demand := make(map[uuid.UUID]int64, len(req.Items))
	for _, item := range req.Items {
		demand[item.ProductID] += item.Quantity
	}
	for id, qty := range demand {
		available, err := w.availableAt(ctx, id, loc.ID)
		if err != nil {
			return nil, err
		}
		if available < qty {
			return nil, shared.NewDomainErrorf(shared.CodeInsufficientStock,
				"Insufficient stock at source. Available: %d", available)
		}
	}

	operationID := uuid.New()
	orderNumber := fmt.Sprintf("ORD-%d", time.Now().UnixMilli())

	total := decimal.Zero
	movements := make([]*ledger.Movement, 0, len(req.Items))
	for _, item := range req.Items {
		product := byID[item.ProductID]
		reason := fmt.Sprintf("Sale: %s - %s", product.Name, orderNumber)
		m, err := ledger.NewOutbound(item.ProductID, loc.ID, ledger.MovementTypeOut, item.Quantity, reason, operationID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
		total = total.Add(product.SellingPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	if err := w.movementRepo.InsertAll(ctx, movements); err != nil {
		return nil, err
	}

	w.publish(ctx, ledger.NewSaleRecordedEvent(operationID, loc.ID, len(req.Items), total, req.Customer, session.Name, string(session.Role)))

	result := &SaleResult{
		OperationID: operationID,
		OrderNumber: orderNumber,
		ItemCount:   len(req.Items),
		Total:       total,
		Movements:   make([]MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		result.Movements = append(result.Movements, ToMovementResponse(m))
	}
	return result, nil
}

// RecordTransfer moves stock between two locations as a balanced pair
// of movements committed in one transaction.
func (w *MovementWriter) RecordTransfer(ctx context.Context, session auth.Session, req RecordTransferRequest) ([]MovementResponse, error) {
	product, err := w.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := w.warehouseRepo.FindByID(ctx, req.FromLocationID); err != nil {
		return nil, err
	}
	if _, err := w.warehouseRepo.FindByID(ctx, req.ToLocationID); err != nil {
		return nil, err
	}

	out, in, err := ledger.NewTransferPair(req.ProductID, req.FromLocationID, req.ToLocationID, req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}

	unlock := w.lockProducts([]uuid.UUID{req.ProductID})
	defer unlock()

	available, err := w.availableAt(ctx, req.ProductID, req.FromLocationID)
	if err != nil {
		return nil, err
	}
	if available < req.Quantity {
		return nil, shared.NewDomainErrorf(shared.CodeInsufficientStock,
			"Insufficient stock at source. Available: %d", available)
	}

	if err := w.movementRepo.InsertAll(ctx, []*ledger.Movement{out, in}); err != nil {
		return nil, err
	}

	w.publish(ctx, ledger.NewStockTransferredEvent(out, in, product.Name, session.Name, string(session.Role)))

	return []MovementResponse{ToMovementResponse(out), ToMovementResponse(in)}, nil
}

// RecordReturn appends a positive RETURN movement into a location
func (w *MovementWriter) RecordReturn(ctx context.Context, session auth.Session, req RecordReturnRequest) (*MovementResponse, error) {
	product, err := w.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	loc, err := w.resolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Customer return"
	}
	movement, err := ledger.NewInbound(req.ProductID, loc.ID, ledger.MovementTypeReturn, req.Quantity, reason, uuid.Nil)
	if err != nil {
		return nil, err
	}

	unlock := w.lockProducts([]uuid.UUID{req.ProductID})
	defer unlock()

	if err := w.movementRepo.Insert(ctx, movement); err != nil {
		return nil, err
	}

	w.publish(ctx, ledger.NewReturnRecordedEvent(movement, product.Name, session.Name, string(session.Role)))

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// RecordAdjustment appends a signed manual correction. Negative
// adjustments may not take the location below zero.
func (w *MovementWriter) RecordAdjustment(ctx context.Context, session auth.Session, req RecordAdjustmentRequest) (*MovementResponse, error) {
	product, err := w.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := w.warehouseRepo.FindByID(ctx, req.LocationID); err != nil {
		return nil, err
	}

	movement, err := ledger.NewAdjustment(req.ProductID, req.LocationID, req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}

	unlock := w.lockProducts([]uuid.UUID{req.ProductID})
	defer unlock()

	if req.Quantity < 0 {
		available, err := w.availableAt(ctx, req.ProductID, req.LocationID)
		if err != nil {
			return nil, err
		}
		if available+req.Quantity < 0 {
			return nil, shared.NewDomainErrorf(shared.CodeInsufficientStock,
				"Insufficient stock at source. Available: %d", available)
		}
	}

	if err := w.movementRepo.Insert(ctx, movement); err != nil {
		return nil, err
	}

	w.publish(ctx, ledger.NewStockAdjustedEvent(movement, product.Name, session.Name, string(session.Role)))

	resp := ToMovementResponse(movement)
	return &resp, nil
}
