package persistence

import (
	"context"
	"errors"

	"github.com/dreamshub/backend/internal/domain/ledger"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
// Movements are append-only; there is no update path.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Insert appends a single movement
func (r *GormMovementRepository) Insert(ctx context.Context, movement *ledger.Movement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// InsertAll appends all movements of one logical operation atomically:
// either every row is committed or none are.
func (r *GormMovementRepository) InsertAll(ctx context.Context, movements []*ledger.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, movement := range movements {
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// FindAll returns every movement, newest first
func (r *GormMovementRepository) FindAll(ctx context.Context) ([]ledger.Movement, error) {
	var movements []ledger.Movement
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&movements).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return movements, nil
}

// Find returns movements matching the filter, newest first
func (r *GormMovementRepository) Find(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Movement{})

	if filter.ProductID != uuid.Nil {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.LocationID != uuid.Nil {
		query = query.Where("from_location_id = ? OR to_location_id = ?", filter.LocationID, filter.LocationID)
	}
	if filter.Type != "" {
		query = query.Where("movement_type = ?", filter.Type)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}

	var movements []ledger.Movement
	if err := query.Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return movements, nil
}

// FindByOperation returns all movements sharing an operation ID
func (r *GormMovementRepository) FindByOperation(ctx context.Context, operationID uuid.UUID) ([]ledger.Movement, error) {
	var movements []ledger.Movement
	if err := r.db.WithContext(ctx).
		Where("operation_id = ?", operationID).
		Order("created_at DESC, id DESC").
		Find(&movements).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return movements, nil
}

// DeleteByProduct removes all movements for a product
func (r *GormMovementRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&ledger.Movement{}, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return shared.NewStoreError(err)
	}
	return nil
}

var _ ledger.MovementRepository = (*GormMovementRepository)(nil)
