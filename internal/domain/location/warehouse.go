package location

import (
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
)

// WarehouseType classifies a stock location
type WarehouseType string

const (
	TypeWarehouse  WarehouseType = "Warehouse"
	TypeStoreFront WarehouseType = "Store Front"
	TypeBackroom   WarehouseType = "Backroom"
)

// IsValid checks if the warehouse type is valid
func (t WarehouseType) IsValid() bool {
	switch t {
	case TypeWarehouse, TypeStoreFront, TypeBackroom:
		return true
	}
	return false
}

// DefaultLocationName is the location that receives initial stock and
// ships sales when the caller does not name one.
const DefaultLocationName = "Main Store"

// Warehouse is a physical stock location. Balances are never stored on
// it; they are derived from the movement ledger.
type Warehouse struct {
	shared.BaseAggregateRoot
	Name     string        `gorm:"type:varchar(100);not null;index"`
	Type     WarehouseType `gorm:"type:varchar(20);not null"`
	Address  string        `gorm:"type:text"`
	IsActive bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name string, warehouseType WarehouseType, address string) (*Warehouse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Warehouse name cannot be empty")
	}
	if !warehouseType.IsValid() {
		return nil, shared.NewDomainErrorf(shared.CodeValidation, "Invalid warehouse type: %s", warehouseType)
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              warehouseType,
		Address:           address,
		IsActive:          true,
	}, nil
}

// Deactivate marks the warehouse as inactive without touching history
func (w *Warehouse) Deactivate() {
	w.IsActive = false
	w.UpdatedAt = time.Now()
}

// Activate marks the warehouse as active
func (w *Warehouse) Activate() {
	w.IsActive = true
	w.UpdatedAt = time.Now()
}

// IsDefault reports whether this is the fallback location for
// unqualified stock operations.
func (w *Warehouse) IsDefault() bool {
	return strings.EqualFold(w.Name, DefaultLocationName)
}
