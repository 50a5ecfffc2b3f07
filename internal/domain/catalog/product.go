package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
)

// Product is a catalog item. Unlike the surrogate-keyed entities its identity
// is the source system's item number, assumed stable across runs; the engine
// never mints product ids of its own.
type Product struct {
	ID              int64      `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Name            string     `gorm:"column:product_name;type:varchar(200);not null"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;column:category_id"`
	UnitOfMeasure   string     `gorm:"column:unit_of_measure;type:varchar(50)"`
	LocationCode    string     `gorm:"column:location_code;type:varchar(50)"`
	PrimaryVendorID *uuid.UUID `gorm:"type:uuid;column:primary_vendor_id"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product from its source item number and description
func NewProduct(id int64, name string) (*Product, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM_NUMBER", "Product item number must be positive")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	now := time.Now()
	return &Product{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetCatalogFields records the normalized unit and location codes
func (p *Product) SetCatalogFields(unit, location string) {
	p.UnitOfMeasure = unit
	p.LocationCode = location
	p.UpdatedAt = time.Now()
}

// SetCategory links the product to its category; nil clears the link
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
}

// SetPrimaryVendor records the vendor first seen supplying this product
func (p *Product) SetPrimaryVendor(vendorID *uuid.UUID) {
	p.PrimaryVendorID = vendorID
	p.UpdatedAt = time.Now()
}

// Rename applies a later sighting's description; the most recent row wins
func (p *Product) Rename(name string) {
	name = strings.TrimSpace(name)
	if name != "" {
		p.Name = name
		p.UpdatedAt = time.Now()
	}
}
