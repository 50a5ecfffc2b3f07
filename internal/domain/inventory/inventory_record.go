package inventory

import (
	"time"

	"github.com/greenspot/etl/internal/domain/shared"
)

// Record tracks the stock level of a single product. There is at most one
// record per product, keyed by the product's item number.
type Record struct {
	ProductID      int64 `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	QuantityOnHand int64 `gorm:"column:quantity_on_hand;not null"`
	ReorderLevel   int64 `gorm:"column:reorder_level;not null;default:10"`
	MaxLevel       int64 `gorm:"column:max_level"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory"
}

// DefaultReorderLevel is assumed when the source carries no reorder data.
const DefaultReorderLevel = 10

// NewRecord creates an inventory record for a product
func NewRecord(productID, quantityOnHand int64) (*Record, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM_NUMBER", "Inventory product id must be positive")
	}
	now := time.Now()
	return &Record{
		ProductID:      productID,
		QuantityOnHand: quantityOnHand,
		ReorderLevel:   DefaultReorderLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// SetQuantity applies a later sighting's on-hand count; the most recent row wins
func (r *Record) SetQuantity(quantityOnHand int64) {
	r.QuantityOnHand = quantityOnHand
	r.UpdatedAt = time.Now()
}

// NeedsReorder reports whether the on-hand quantity has reached the reorder level
func (r *Record) NeedsReorder() bool {
	return r.QuantityOnHand <= r.ReorderLevel
}
