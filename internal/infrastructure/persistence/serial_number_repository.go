package persistence

import (
	"context"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSerialNumberRepository implements SerialNumberRepository using GORM
type GormSerialNumberRepository struct {
	db *gorm.DB
}

// NewGormSerialNumberRepository creates a new GormSerialNumberRepository
func NewGormSerialNumberRepository(db *gorm.DB) *GormSerialNumberRepository {
	return &GormSerialNumberRepository{db: db}
}

// FindByProduct finds all serials for a product
func (r *GormSerialNumberRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.SerialNumber, error) {
	var serials []catalog.SerialNumber
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("serial_number ASC").
		Find(&serials).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return serials, nil
}

// FindAll finds all serials
func (r *GormSerialNumberRepository) FindAll(ctx context.Context) ([]catalog.SerialNumber, error) {
	var serials []catalog.SerialNumber
	if err := r.db.WithContext(ctx).
		Order("serial_number ASC").
		Find(&serials).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return serials, nil
}

// SaveAll persists a batch of serials
func (r *GormSerialNumberRepository) SaveAll(ctx context.Context, serials []*catalog.SerialNumber) error {
	if len(serials) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Save(serials).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// Save persists a single serial
func (r *GormSerialNumberRepository) Save(ctx context.Context, serial *catalog.SerialNumber) error {
	if err := r.db.WithContext(ctx).Save(serial).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// DeleteByProduct deletes all serials for a product
func (r *GormSerialNumberRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&catalog.SerialNumber{}, "product_id = ?", productID).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

var _ catalog.SerialNumberRepository = (*GormSerialNumberRepository)(nil)
