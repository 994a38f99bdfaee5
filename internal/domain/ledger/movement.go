package ledger

import (
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	// MovementTypeIn represents stock entering the ledger (initial load, receiving)
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut represents stock leaving the ledger (sale)
	MovementTypeOut MovementType = "OUT"
	// MovementTypeTransfer represents one leg of an inter-location transfer
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeAdjustment represents a manual stock correction
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	// MovementTypeReserve represents stock held for a pending order
	MovementTypeReserve MovementType = "RESERVE"
	// MovementTypeReturn represents returned stock re-entering the ledger
	MovementTypeReturn MovementType = "RETURN"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn,
		MovementTypeOut,
		MovementTypeTransfer,
		MovementTypeAdjustment,
		MovementTypeReserve,
		MovementTypeReturn:
		return true
	}
	return false
}

// Movement is an immutable signed-quantity event affecting a product's stock.
// Once written, movements are never updated; corrections are recorded as new
// movements. The sign convention is set at write time: inbound rows carry
// positive quantity, outbound rows carry negative quantity. Stock is always
// a fold over movements, never a persisted counter.
type Movement struct {
	shared.BaseEntity
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_movement_product"`
	FromLocationID *uuid.UUID   `gorm:"type:uuid;index:idx_movement_from"`
	ToLocationID   *uuid.UUID   `gorm:"type:uuid;index:idx_movement_to"`
	Quantity       int64        `gorm:"not null"` // signed; direction is encoded in the sign
	MovementType   MovementType `gorm:"type:varchar(20);not null;index:idx_movement_type"`
	Reason         string       `gorm:"type:varchar(255)"`
	OperationID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_movement_operation"` // correlates multi-row operations
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "inventory_movements"
}

func newMovement(productID uuid.UUID, movementType MovementType, quantity int64, reason string, operationID uuid.UUID) (*Movement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "Invalid movement type %q", movementType)
	}
	if quantity == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity cannot be zero")
	}
	if operationID == uuid.Nil {
		operationID = uuid.New()
	}

	return &Movement{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		MovementType: movementType,
		Quantity:     quantity,
		Reason:       reason,
		OperationID:  operationID,
	}, nil
}

// NewInbound creates a positive movement into a location (IN or RETURN)
func NewInbound(productID, toLocationID uuid.UUID, movementType MovementType, quantity int64, reason string, operationID uuid.UUID) (*Movement, error) {
	if movementType != MovementTypeIn && movementType != MovementTypeReturn {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "%s is not an inbound movement type", movementType)
	}
	if toLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Destination location ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Inbound quantity must be positive")
	}

	m, err := newMovement(productID, movementType, quantity, reason, operationID)
	if err != nil {
		return nil, err
	}
	m.ToLocationID = &toLocationID
	return m, nil
}

// NewOutbound creates a negative movement out of a location (OUT or RESERVE).
// The quantity argument is the positive amount to deduct; the stored
// quantity is its negation.
func NewOutbound(productID, fromLocationID uuid.UUID, movementType MovementType, quantity int64, reason string, operationID uuid.UUID) (*Movement, error) {
	if movementType != MovementTypeOut && movementType != MovementTypeReserve {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "%s is not an outbound movement type", movementType)
	}
	if fromLocationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Source location ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Outbound quantity must be positive")
	}

	m, err := newMovement(productID, movementType, -quantity, reason, operationID)
	if err != nil {
		return nil, err
	}
	m.FromLocationID = &fromLocationID
	return m, nil
}

// NewAdjustment creates a signed correction movement at a location.
// Positive quantities add stock at the location, negative quantities remove it.
func NewAdjustment(productID, locationID uuid.UUID, quantity int64, reason string) (*Movement, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Location ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Adjustment reason is required")
	}

	m, err := newMovement(productID, MovementTypeAdjustment, quantity, reason, uuid.New())
	if err != nil {
		return nil, err
	}
	if quantity > 0 {
		m.ToLocationID = &locationID
	} else {
		m.FromLocationID = &locationID
	}
	return m, nil
}

// NewTransferPair creates the balanced pair of movements representing one
// inter-location transfer: an outbound leg with negative quantity and the
// source set, and an inbound leg with positive quantity and the destination
// set. Both legs share the same operation ID so the pair can be reliably
// reconstructed.
func NewTransferPair(productID, fromLocationID, toLocationID uuid.UUID, quantity int64, reason string) (*Movement, *Movement, error) {
	if fromLocationID == toLocationID {
		return nil, nil, shared.NewDomainError(shared.CodeValidation, "Source and destination locations must differ")
	}
	if fromLocationID == uuid.Nil || toLocationID == uuid.Nil {
		return nil, nil, shared.NewDomainError(shared.CodeValidation, "Transfer locations cannot be empty")
	}
	if quantity <= 0 {
		return nil, nil, shared.NewDomainError(shared.CodeValidation, "Transfer quantity must be positive")
	}

	operationID := uuid.New()

	out, err := newMovement(productID, MovementTypeTransfer, -quantity, "Transfer OUT: "+reason, operationID)
	if err != nil {
		return nil, nil, err
	}
	out.FromLocationID = &fromLocationID

	in, err := newMovement(productID, MovementTypeTransfer, quantity, "Transfer IN: "+reason, operationID)
	if err != nil {
		return nil, nil, err
	}
	in.ToLocationID = &toLocationID

	return out, in, nil
}

// IsInbound returns true if the movement adds stock globally
func (m *Movement) IsInbound() bool {
	return m.Quantity > 0
}

// IsOutbound returns true if the movement removes stock globally
func (m *Movement) IsOutbound() bool {
	return m.Quantity < 0
}

// AbsQuantity returns the magnitude of the movement quantity
func (m *Movement) AbsQuantity() int64 {
	if m.Quantity < 0 {
		return -m.Quantity
	}
	return m.Quantity
}

// Touches reports whether the movement affects the given location,
// either as source or destination.
func (m *Movement) Touches(locationID uuid.UUID) bool {
	if m.FromLocationID != nil && *m.FromLocationID == locationID {
		return true
	}
	if m.ToLocationID != nil && *m.ToLocationID == locationID {
		return true
	}
	return false
}
