package persistence

import (
	"context"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByProduct finds all batches for a product
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Batch, error) {
	var batches []catalog.Batch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return batches, nil
}

// FindAll finds all batches
func (r *GormBatchRepository) FindAll(ctx context.Context) ([]catalog.Batch, error) {
	var batches []catalog.Batch
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *catalog.Batch) error {
	if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// DeleteByProduct deletes all batches for a product
func (r *GormBatchRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&catalog.Batch{}, "product_id = ?", productID).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

var _ catalog.BatchRepository = (*GormBatchRepository)(nil)
