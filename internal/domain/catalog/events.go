package catalog

import (
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeProduct   = "Product"
	AggregateTypeCategory  = "Category"
	AggregateTypeWarehouse = "Warehouse"
)

// Event type constants
const (
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductUpdated  = "ProductUpdated"
	EventTypeProductDeleted  = "ProductDeleted"
	EventTypeCategoryCreated = "CategoryCreated"
)

// ProductCreatedEvent is raised when a product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product, actor, role string) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		ProductName:     p.Name,
		SKU:             p.SKU,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return EventTypeProductCreated
}

// ProductUpdatedEvent is raised when catalog fields of a product change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product, actor, role string) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		ProductName:     p.Name,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *ProductUpdatedEvent) EventType() string {
	return EventTypeProductUpdated
}

// ProductDeletedEvent is raised after the destructive cascade removes a
// product together with its movements, serials and batches
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Actor       string    `json:"actor"`
	Role        string    `json:"role"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(productID uuid.UUID, productName, actor, role string) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, productID),
		ProductID:       productID,
		ProductName:     productName,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *ProductDeletedEvent) EventType() string {
	return EventTypeProductDeleted
}

// CategoryCreatedEvent is raised for both explicit creation and the
// auto-create path during product intake
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Actor        string    `json:"actor"`
	Role         string    `json:"role"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(c *Category, actor, role string) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, AggregateTypeCategory, c.ID),
		CategoryID:      c.ID,
		CategoryName:    c.Name,
		Actor:           actor,
		Role:            role,
	}
}

// EventType returns the event type name
func (e *CategoryCreatedEvent) EventType() string {
	return EventTypeCategoryCreated
}
