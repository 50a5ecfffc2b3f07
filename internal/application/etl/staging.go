package etl

import (
	"time"

	"github.com/greenspot/etl/internal/domain/catalog"
	"github.com/greenspot/etl/internal/domain/inventory"
	"github.com/greenspot/etl/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// StagedProduct holds a product together with its unresolved links. Category
// and vendor surrogate ids are not final until the loader has reconciled the
// staged entities against the store, so the links stay pointers until then.
type StagedProduct struct {
	Product       *catalog.Product
	Category      *catalog.Category
	PrimaryVendor *partner.Vendor
	Line          int
}

// StagedPurchase is a purchase row waiting on its vendor's final surrogate
// id. The product is referenced by its stable item number.
type StagedPurchase struct {
	ProductID int64
	Vendor    *partner.Vendor
	Quantity  int64
	UnitCost  decimal.Decimal
	Date      time.Time
	Line      int
}

// StagedSale is a sale row. A nil CustomerID is a walk-in sale.
type StagedSale struct {
	ProductID  int64
	CustomerID *int64
	Quantity   int64
	UnitPrice  decimal.Decimal
	Date       time.Time
	Line       int
}

// Staging is the fully resolved, deduplicated in-memory model of one input
// file, ready for the loader. Maps are keyed by natural key; slices keep
// input order.
type Staging struct {
	Categories map[string]*catalog.Category
	Vendors    map[string]*partner.Vendor
	Products   map[int64]*StagedProduct
	Customers  map[int64]*partner.Customer
	Inventory  map[int64]*inventory.Record
	Purchases  []*StagedPurchase
	Sales      []*StagedSale
}

// NewStaging creates an empty staging area
func NewStaging() *Staging {
	return &Staging{
		Categories: make(map[string]*catalog.Category),
		Vendors:    make(map[string]*partner.Vendor),
		Products:   make(map[int64]*StagedProduct),
		Customers:  make(map[int64]*partner.Customer),
		Inventory:  make(map[int64]*inventory.Record),
	}
}

// Counts returns the number of staged entities per class, keyed by the
// class name used in reports.
func (s *Staging) Counts() map[string]int {
	return map[string]int{
		"categories": len(s.Categories),
		"vendors":    len(s.Vendors),
		"products":   len(s.Products),
		"customers":  len(s.Customers),
		"inventory":  len(s.Inventory),
		"purchases":  len(s.Purchases),
		"sales":      len(s.Sales),
	}
}
