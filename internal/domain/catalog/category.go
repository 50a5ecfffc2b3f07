package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
)

// Category groups products by item type. Identity is a generated surrogate
// id; the natural key is the case-insensitively unique name.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:category_id"`
	Name        string    `gorm:"column:category_name;type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "product_categories"
}

// NewCategory creates a category from a source item-type value
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	now := time.Now()
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NaturalKey returns the case-insensitive dedup key for the category
func (c *Category) NaturalKey() string {
	return NormalizeCategoryName(c.Name)
}

// Merge applies a later sighting of the same category; the most recent
// non-empty description wins.
func (c *Category) Merge(description string) {
	if description != "" {
		c.Description = description
	}
	c.UpdatedAt = time.Now()
}

// NormalizeCategoryName computes the natural key for a category name
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
