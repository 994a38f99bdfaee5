package catalog

import (
	"time"

	"github.com/dreamshub/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the product intake payload. Category is a
// free-text name resolved case-insensitively, created when unknown.
type CreateProductRequest struct {
	Name             string          `json:"name" binding:"required"`
	SKU              string          `json:"sku"`
	Category         string          `json:"category"`
	Model            string          `json:"model"`
	Description      string          `json:"description"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	ImageURL         string          `json:"image_url"`
	Colors           []string        `json:"colors"`
	InitialStock     int64           `json:"initial_stock" binding:"gte=0"`
	LocationID       *uuid.UUID      `json:"location_id"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
	ManufacturedDate *time.Time      `json:"manufactured_date"`
	SerialNumbers    []string        `json:"serial_numbers"`
}

// UpdateProductRequest carries the editable catalog fields. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Model        *string          `json:"model"`
	Description  *string          `json:"description"`
	BuyingPrice  *decimal.Decimal `json:"buying_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	ImageURL     *string          `json:"image_url"`
	Colors       []string         `json:"colors"`

	// Batch dates. When set they are written onto the product's batch,
	// which is created on the spot if the product has none.
	ExpiryDate       *time.Time `json:"expiry_date"`
	ManufacturedDate *time.Time `json:"manufactured_date"`
}

// ProductResponse represents a product in API responses, with the model
// decoded back out of the description
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Model        string          `json:"model"`
	Description  string          `json:"description"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ImageURL     string          `json:"image_url,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		CategoryID:   p.CategoryID,
		Model:        p.Model(),
		Description:  p.CleanDescription(),
		BuyingPrice:  p.BuyingPrice,
		SellingPrice: p.SellingPrice,
		ImageURL:     p.ImageURL,
		Colors:       p.ColorList(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateCategoryRequest is the explicit category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	HasExpiry   bool   `json:"has_expiry"`
	HasSerials  bool   `json:"has_serials"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	HasExpiry   bool      `json:"has_expiry"`
	HasSerials  bool      `json:"has_serials"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		HasExpiry:   c.HasExpiry,
		HasSerials:  c.HasSerials,
		CreatedAt:   c.CreatedAt,
	}
}

// CreateWarehouseRequest adds a stock location
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Address string `json:"address"`
}

// UpdateWarehouseRequest edits a stock location; nil fields unchanged
type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"`
}

// WarehouseResponse represents a stock location in API responses
type WarehouseResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Address  string    `json:"address,omitempty"`
	IsActive bool      `json:"is_active"`
}
