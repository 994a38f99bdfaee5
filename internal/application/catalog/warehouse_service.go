package catalog

import (
	"context"

	"github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseService manages stock locations
type WarehouseService struct {
	warehouseRepo location.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo location.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

func toWarehouseResponse(w *location.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:       w.ID,
		Name:     w.Name,
		Type:     string(w.Type),
		Address:  w.Address,
		IsActive: w.IsActive,
	}
}

// CreateWarehouse adds a stock location with a unique name
func (s *WarehouseService) CreateWarehouse(ctx context.Context, session auth.Session, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	if existing, err := s.warehouseRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Warehouse %q already exists", existing.Name)
	} else if !shared.IsNotFound(err) {
		return nil, err
	}

	warehouse, err := location.NewWarehouse(req.Name, location.WarehouseType(req.Type), req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// UpdateWarehouse applies the non-nil fields of the request
func (s *WarehouseService) UpdateWarehouse(ctx context.Context, session auth.Session, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != warehouse.Name {
		if existing, err := s.warehouseRepo.FindByName(ctx, *req.Name); err == nil && existing.ID != id {
			return nil, shared.NewDomainErrorf(shared.CodeAlreadyExists, "Warehouse %q already exists", existing.Name)
		} else if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		warehouse.Name = *req.Name
	}
	if req.Type != nil {
		t := location.WarehouseType(*req.Type)
		if !t.IsValid() {
			return nil, shared.NewDomainErrorf(shared.CodeValidation, "Invalid warehouse type: %s", t)
		}
		warehouse.Type = t
	}
	if req.Address != nil {
		warehouse.Address = *req.Address
	}
	if req.IsActive != nil {
		if *req.IsActive {
			warehouse.Activate()
		} else {
			warehouse.Deactivate()
		}
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// DeleteWarehouse removes a stock location. Ledger rows referencing it
// remain; the history stays intact.
func (s *WarehouseService) DeleteWarehouse(ctx context.Context, session auth.Session, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse.IsDefault() {
		return shared.NewDomainErrorf(shared.CodeValidation, "%s cannot be deleted", location.DefaultLocationName)
	}
	return s.warehouseRepo.Delete(ctx, id)
}

// ListWarehouses returns all stock locations
func (s *WarehouseService) ListWarehouses(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		out = append(out, toWarehouseResponse(&warehouses[i]))
	}
	return out, nil
}

// EnsureDefault creates the default location when it is missing, so a
// fresh install can record stock immediately.
func (s *WarehouseService) EnsureDefault(ctx context.Context) error {
	_, err := s.warehouseRepo.FindByName(ctx, location.DefaultLocationName)
	if err == nil {
		return nil
	}
	if !shared.IsNotFound(err) {
		return err
	}
	warehouse, err := location.NewWarehouse(location.DefaultLocationName, location.TypeStoreFront, "")
	if err != nil {
		return err
	}
	return s.warehouseRepo.Save(ctx, warehouse)
}
