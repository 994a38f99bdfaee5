package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MovementFilter narrows a movement query. Zero values mean "no constraint".
type MovementFilter struct {
	ProductID  uuid.UUID
	LocationID uuid.UUID
	Type       MovementType
	Since      time.Time
}

// MovementRepository defines the persistence contract for the append-only
// movement log. There is no update path; deletion exists only to support
// the destructive cascade on product removal.
type MovementRepository interface {
	// Insert appends a single movement
	Insert(ctx context.Context, movement *Movement) error

	// InsertAll appends all movements of one logical operation atomically:
	// either every row is committed or none are
	InsertAll(ctx context.Context, movements []*Movement) error

	// FindAll returns every movement, newest first
	FindAll(ctx context.Context) ([]Movement, error)

	// Find returns movements matching the filter, newest first
	Find(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// FindByOperation returns all movements sharing an operation ID
	FindByOperation(ctx context.Context, operationID uuid.UUID) ([]Movement, error)

	// DeleteByProduct removes all movements for a product. Destructive:
	// it breaks the append-only history for that product.
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
