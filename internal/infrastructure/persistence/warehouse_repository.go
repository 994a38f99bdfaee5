package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/dreamshub/backend/internal/domain/location"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Warehouse, error) {
	var warehouse location.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError(err)
	}
	return &warehouse, nil
}

// FindByName finds a warehouse by exact name, case-insensitively
func (r *GormWarehouseRepository) FindByName(ctx context.Context, name string) (*location.Warehouse, error) {
	var warehouse location.Warehouse
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError(err)
	}
	return &warehouse, nil
}

// FindAll returns all warehouses ordered by name
func (r *GormWarehouseRepository) FindAll(ctx context.Context) ([]location.Warehouse, error) {
	var warehouses []location.Warehouse
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&warehouses).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return warehouses, nil
}

// Save persists a warehouse (insert or update)
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *location.Warehouse) error {
	if err := r.db.WithContext(ctx).Save(warehouse).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// Delete removes a warehouse by ID
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&location.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ location.WarehouseRepository = (*GormWarehouseRepository)(nil)
