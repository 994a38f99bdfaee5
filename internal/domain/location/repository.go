package location

import (
	"context"

	"github.com/google/uuid"
)

// WarehouseRepository defines persistence for warehouses
type WarehouseRepository interface {
	// FindByID finds a warehouse by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByName finds a warehouse by exact name, case-insensitively
	FindByName(ctx context.Context, name string) (*Warehouse, error)

	// FindAll returns all warehouses ordered by name
	FindAll(ctx context.Context) ([]Warehouse, error)

	// Save persists a warehouse (insert or update)
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete removes a warehouse by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
