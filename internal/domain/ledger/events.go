package ledger

import (
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeMovement = "Movement"

// Event type constants
const (
	EventTypeStockLoaded      = "StockLoaded"
	EventTypeSaleRecorded     = "SaleRecorded"
	EventTypeStockTransferred = "StockTransferred"
	EventTypeReturnRecorded   = "ReturnRecorded"
	EventTypeStockAdjusted    = "StockAdjusted"
)

// StockLoadedEvent is raised when initial stock is loaded into a location
type StockLoadedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int64     `json:"quantity"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewStockLoadedEvent creates a new StockLoadedEvent
func NewStockLoadedEvent(m *Movement, productName, actor, role string) *StockLoadedEvent {
	return &StockLoadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockLoaded, AggregateTypeMovement, m.ID),
		ProductID:       m.ProductID,
		ProductName:     productName,
		LocationID:      *m.ToLocationID,
		Quantity:        m.Quantity,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *StockLoadedEvent) EventType() string {
	return EventTypeStockLoaded
}

// SaleRecordedEvent is raised once per completed sale, after every item's
// OUT movement has been committed
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	OperationID uuid.UUID       `json:"operation_id"`
	LocationID  uuid.UUID       `json:"location_id"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	Customer    string          `json:"customer"`
	Actor       string          `json:"actor"`
	Role        string          `json:"role"`
}

// NewSaleRecordedEvent creates a new SaleRecordedEvent
func NewSaleRecordedEvent(operationID, locationID uuid.UUID, itemCount int, total decimal.Decimal, customer, actor, role string) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleRecorded, AggregateTypeMovement, operationID),
		OperationID:     operationID,
		LocationID:      locationID,
		ItemCount:       itemCount,
		Total:           total,
		Customer:        customer,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *SaleRecordedEvent) EventType() string {
	return EventTypeSaleRecorded
}

// StockTransferredEvent is raised when a balanced transfer pair is committed
type StockTransferredEvent struct {
	shared.BaseDomainEvent
	OperationID    uuid.UUID `json:"operation_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	FromLocationID uuid.UUID `json:"from_location_id"`
	ToLocationID   uuid.UUID `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	Actor          string    `json:"actor"`
	Role           string    `json:"role"`
}

// NewStockTransferredEvent creates a new StockTransferredEvent
func NewStockTransferredEvent(out, in *Movement, productName, actor, role string) *StockTransferredEvent {
	return &StockTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockTransferred, AggregateTypeMovement, out.OperationID),
		OperationID:     out.OperationID,
		ProductID:       out.ProductID,
		ProductName:     productName,
		FromLocationID:  *out.FromLocationID,
		ToLocationID:    *in.ToLocationID,
		Quantity:        in.Quantity,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *StockTransferredEvent) EventType() string {
	return EventTypeStockTransferred
}

// ReturnRecordedEvent is raised when returned stock re-enters a location
type ReturnRecordedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int64     `json:"quantity"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewReturnRecordedEvent creates a new ReturnRecordedEvent
func NewReturnRecordedEvent(m *Movement, productName, actor, role string) *ReturnRecordedEvent {
	return &ReturnRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnRecorded, AggregateTypeMovement, m.ID),
		ProductID:       m.ProductID,
		ProductName:     productName,
		LocationID:      *m.ToLocationID,
		Quantity:        m.Quantity,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *ReturnRecordedEvent) EventType() string {
	return EventTypeReturnRecorded
}

// StockAdjustedEvent is raised when a manual correction is committed
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	LocationID  uuid.UUID `json:"location_id"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(m *Movement, productName, actor, role string) *StockAdjustedEvent {
	locationID := uuid.Nil
	if m.ToLocationID != nil {
		locationID = *m.ToLocationID
	} else if m.FromLocationID != nil {
		locationID = *m.FromLocationID
	}
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeMovement, m.ID),
		ProductID:       m.ProductID,
		ProductName:     productName,
		LocationID:      locationID,
		Quantity:        m.Quantity,
		Reason:          m.Reason,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventTypeStockAdjusted
}
