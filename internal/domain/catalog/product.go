package catalog

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var modelTagPattern = regexp.MustCompile(`\[MODEL:\s*([^\]]+)\]`)

// Product represents a product/SKU in the catalog. Products carry pricing
// but never a stock counter; stock is always derived from the movement
// ledger at read time.
type Product struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	SKU          string          `gorm:"type:varchar(50);index"` // should be unique but not enforced
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	BuyingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description  string          `gorm:"type:text"` // may carry a "[MODEL: ...]" prefix
	ImageURL     string          `gorm:"type:text"`
	Colors       string          `gorm:"type:text"` // JSON-encoded list
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validated pricing
func NewProduct(name, sku string, buyingPrice, sellingPrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	if buyingPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Prices cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		BuyingPrice:       buyingPrice,
		SellingPrice:      sellingPrice,
	}
	return p, nil
}

// SetPrices updates both prices
func (p *Product) SetPrices(buying, selling decimal.Decimal) error {
	if buying.IsNegative() || selling.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Prices cannot be negative")
	}
	p.BuyingPrice = buying
	p.SellingPrice = selling
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory sets the product category reference
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetDescription stores the description with the model tag encoded in front,
// matching the wire format the dashboard expects.
func (p *Product) SetDescription(model, description string) {
	p.Description = EncodeModel(model, description)
	p.UpdatedAt = time.Now()
}

// Model extracts the model tag from the description, or "N/A" when absent
func (p *Product) Model() string {
	model, _ := DecodeModel(p.Description)
	return model
}

// CleanDescription returns the description with the model tag stripped
func (p *Product) CleanDescription() string {
	_, desc := DecodeModel(p.Description)
	return desc
}

// SetColors stores the color list as JSON
func (p *Product) SetColors(colors []string) {
	if len(colors) == 0 {
		p.Colors = ""
		return
	}
	raw, err := json.Marshal(colors)
	if err != nil {
		return
	}
	p.Colors = string(raw)
}

// ColorList decodes the stored color list
func (p *Product) ColorList() []string {
	if p.Colors == "" {
		return nil
	}
	var colors []string
	if err := json.Unmarshal([]byte(p.Colors), &colors); err != nil {
		return nil
	}
	return colors
}

// EncodeModel prepends the "[MODEL: ...]" tag when a model is given
func EncodeModel(model, description string) string {
	if model == "" {
		return description
	}
	if description == "" {
		return "[MODEL: " + model + "]"
	}
	return "[MODEL: " + model + "] " + description
}

// DecodeModel splits a description into its model tag and clean text.
// Descriptions without a tag yield model "N/A".
func DecodeModel(description string) (model, clean string) {
	match := modelTagPattern.FindStringSubmatch(description)
	if match == nil {
		return "N/A", description
	}
	clean = strings.TrimSpace(modelTagPattern.ReplaceAllString(description, ""))
	return strings.TrimSpace(match[1]), clean
}
