package catalog

import (
	"strings"
	"time"

	"github.com/dreamshub/backend/internal/domain/shared"
)

// Category groups products. Membership is matched case-insensitively by
// name against the product's category reference; the flags control which
// optional product fields are meaningful for members.
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
	Icon        string `gorm:"type:varchar(50)"`
	HasExpiry   bool   `gorm:"not null;default:false"`
	HasSerials  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Category name cannot be empty")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeValidation, "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// MatchesName reports whether the given free-text name refers to this
// category, using the case-insensitive convention of the dashboard.
func (c *Category) MatchesName(name string) bool {
	return strings.EqualFold(c.Name, name)
}
