package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products, name ascending
	FindAll(ctx context.Context) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by case-insensitive name match
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories, name ascending
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	// FindByProduct finds all batches for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Batch, error)

	// FindAll finds all batches
	FindAll(ctx context.Context) ([]Batch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *Batch) error

	// DeleteByProduct deletes all batches for a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

// SerialNumberRepository defines the interface for serial number persistence
type SerialNumberRepository interface {
	// FindByProduct finds all serials for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]SerialNumber, error)

	// FindAll finds all serials
	FindAll(ctx context.Context) ([]SerialNumber, error)

	// SaveAll persists a batch of serials
	SaveAll(ctx context.Context, serials []*SerialNumber) error

	// Save persists a single serial
	Save(ctx context.Context, serial *SerialNumber) error

	// DeleteByProduct deletes all serials for a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
