package ledger

import (
	"time"

	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLine is one product line of a checkout request
type SaleLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// RecordSaleRequest represents a checkout: every line ships from the same
// location. An empty LocationID means the default location.
type RecordSaleRequest struct {
	Items      []SaleLine `json:"items" binding:"required,min=1,dive"`
	LocationID *uuid.UUID `json:"location_id"`
	Customer   string     `json:"customer"`
}

// RecordTransferRequest moves stock between two locations
type RecordTransferRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	FromLocationID uuid.UUID `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID `json:"to_location_id" binding:"required"`
	Quantity       int64     `json:"quantity" binding:"required,gt=0"`
	Reason         string    `json:"reason"`
}

// RecordReturnRequest puts returned stock back into a location
type RecordReturnRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	LocationID *uuid.UUID `json:"location_id"`
	Quantity   int64      `json:"quantity" binding:"required,gt=0"`
	Reason     string     `json:"reason"`
}

// RecordAdjustmentRequest applies a signed manual correction
type RecordAdjustmentRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required"`
	Reason     string    `json:"reason" binding:"required"`
}

// MovementResponse represents one ledger row in API responses
type MovementResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	FromLocationID *uuid.UUID `json:"from_location_id,omitempty"`
	ToLocationID   *uuid.UUID `json:"to_location_id,omitempty"`
	Quantity       int64      `json:"quantity"`
	MovementType   string     `json:"movement_type"`
	Reason         string     `json:"reason"`
	OperationID    uuid.UUID  `json:"operation_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToMovementResponse converts a movement to its response form
func ToMovementResponse(m *ledger.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		MovementType:   m.MovementType.String(),
		Reason:         m.Reason,
		OperationID:    m.OperationID,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementResponses converts a movement slice
func ToMovementResponses(movements []ledger.Movement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}

// SaleResult summarizes a committed checkout
type SaleResult struct {
	OperationID uuid.UUID          `json:"operation_id"`
	OrderNumber string             `json:"order_number"`
	ItemCount   int                `json:"item_count"`
	Total       decimal.Decimal    `json:"total"`
	Movements   []MovementResponse `json:"movements"`
}

// StockLevelResponse is the derived per-product stock position
type StockLevelResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int64     `json:"stock"`
	Status    string    `json:"status"`
}
