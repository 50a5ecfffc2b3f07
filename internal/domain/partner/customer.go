package partner

import (
	"fmt"
	"time"

	"github.com/greenspot/etl/internal/domain/shared"
)

// Customer is a buyer referenced by the cust column on sale rows. The legacy
// data carries only the numeric id, so every customer starts as a placeholder
// named "Customer <id>" until a richer source backfills the real details.
type Customer struct {
	ID        int64  `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	FirstName string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(100);not null"`
	Phone     string `gorm:"type:varchar(50)"`
	Email     string `gorm:"type:varchar(200)"`
	Street    string `gorm:"column:address;type:varchar(200)"`
	City      string `gorm:"type:varchar(100)"`
	State     string `gorm:"type:varchar(2)"`
	Zip       string `gorm:"column:zip_code;type:varchar(10)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewPlaceholderCustomer creates a customer known only by its source id
func NewPlaceholderCustomer(id int64) (*Customer, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer id must be positive")
	}
	now := time.Now()
	return &Customer{
		ID:        id,
		FirstName: "Customer",
		LastName:  fmt.Sprintf("%d", id),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsPlaceholder reports whether the customer still carries the generated name
func (c *Customer) IsPlaceholder() bool {
	return c.FirstName == "Customer" && c.LastName == fmt.Sprintf("%d", c.ID)
}
