package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleTransaction is a single sale: a quantity of one product sold on one
// date, optionally to a known customer. Walk-in sales carry no customer id.
// The total is always derived from quantity and unit price.
type SaleTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;column:transaction_id"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	CustomerID  *int64          `gorm:"column:customer_id;index"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(14,2);not null"`
	SaleDate    time.Time       `gorm:"column:sale_date;type:date;not null"`
	RunID       uuid.UUID       `gorm:"type:uuid;column:run_id;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleTransaction) TableName() string {
	return "sales_transactions"
}

// NewSaleTransaction creates a sale within a load run. A nil customerID
// records a walk-in sale. Quantity and price are recorded as given;
// business-rule checks run after the load.
func NewSaleTransaction(productID int64, customerID *int64, quantity int64, unitPrice decimal.Decimal, saleDate time.Time, runID uuid.UUID) (*SaleTransaction, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM_NUMBER", "Sale product id must be positive")
	}
	if customerID != nil && *customerID <= 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Sale customer id must be positive")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date cannot be zero")
	}
	now := time.Now()
	return &SaleTransaction{
		ID:          uuid.New(),
		ProductID:   productID,
		CustomerID:  customerID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice.Mul(decimal.NewFromInt(quantity)),
		SaleDate:    saleDate,
		RunID:       runID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsWalkIn reports whether the sale has no associated customer
func (s *SaleTransaction) IsWalkIn() bool {
	return s.CustomerID == nil
}
