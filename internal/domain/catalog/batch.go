package catalog

import (
	"fmt"
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Batch ties expiry and manufacture dates to a product
type Batch struct {
	shared.BaseEntity
	ProductID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	BatchNumber      string     `gorm:"type:varchar(50);not null"`
	ExpiryDate       *time.Time `gorm:"type:timestamptz"`
	ManufacturedDate *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch creates a batch for a product with an auto-generated batch number
func NewBatch(productID uuid.UUID, expiryDate, manufacturedDate *time.Time) (*Batch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}

	return &Batch{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		BatchNumber:      fmt.Sprintf("B-%d", time.Now().UnixMilli()),
		ExpiryDate:       expiryDate,
		ManufacturedDate: manufacturedDate,
	}, nil
}

// DisplayBatch picks the batch whose dates represent the product: the one
// with the earliest non-null expiry date (soonest to expire wins). Batches
// without an expiry date do not participate unless no batch has one, in
// which case the first batch is returned. Returns nil for an empty slice.
func DisplayBatch(batches []Batch) *Batch {
	var best *Batch
	for i := range batches {
		b := &batches[i]
		if b.ExpiryDate == nil {
			continue
		}
		if best == nil || best.ExpiryDate == nil || b.ExpiryDate.Before(*best.ExpiryDate) {
			best = b
		}
	}
	if best == nil && len(batches) > 0 {
		best = &batches[0]
	}
	return best
}
