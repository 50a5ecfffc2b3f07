package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseStatus is the fulfilment state of a purchase order
type PurchaseStatus string

const (
	// PurchaseStatusReceived marks an order whose goods have arrived. Legacy
	// rows describe completed purchases, so every imported order starts here.
	PurchaseStatusReceived PurchaseStatus = "received"
	// PurchaseStatusPending marks an order placed but not yet delivered
	PurchaseStatusPending PurchaseStatus = "pending"
	// PurchaseStatusCancelled marks an order that will never be delivered
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

// PurchaseOrder is a single restocking event: a quantity of one product
// bought from one vendor on one date. The total is always derived from
// quantity and unit cost, never trusted from the source.
type PurchaseOrder struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;column:purchase_id"`
	ProductID    int64           `gorm:"column:product_id;not null;index"`
	VendorID     uuid.UUID       `gorm:"type:uuid;column:vendor_id;not null;index"`
	Quantity     int64           `gorm:"not null"`
	UnitCost     decimal.Decimal `gorm:"column:unit_cost;type:decimal(12,2);not null"`
	TotalCost    decimal.Decimal `gorm:"column:total_cost;type:decimal(14,2);not null"`
	PurchaseDate time.Time       `gorm:"column:purchase_date;type:date;not null"`
	Status       PurchaseStatus  `gorm:"type:varchar(20);not null;default:'received'"`
	RunID        uuid.UUID       `gorm:"type:uuid;column:run_id;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a purchase order within a load run. Quantity and
// cost are recorded as given; business-rule checks run after the load.
func NewPurchaseOrder(productID int64, vendorID uuid.UUID, quantity int64, unitCost decimal.Decimal, purchaseDate time.Time, runID uuid.UUID) (*PurchaseOrder, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM_NUMBER", "Purchase product id must be positive")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Purchase vendor id cannot be nil")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Purchase date cannot be zero")
	}
	now := time.Now()
	return &PurchaseOrder{
		ID:           uuid.New(),
		ProductID:    productID,
		VendorID:     vendorID,
		Quantity:     quantity,
		UnitCost:     unitCost,
		TotalCost:    unitCost.Mul(decimal.NewFromInt(quantity)),
		PurchaseDate: purchaseDate,
		Status:       PurchaseStatusReceived,
		RunID:        runID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
