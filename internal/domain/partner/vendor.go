package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
)

// Vendor is a supplier resolved from the legacy free-text vendor column.
// Identity is a generated surrogate id; the natural key is the normalized
// trade name together with the parsed city and state, because distinct
// locations trading under the same name must stay distinct vendors.
//
// The address fields come out of the address parser only. There is no setter
// for them: once a vendor is created its address is never hand-edited.
type Vendor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:vendor_id"`
	Name      string    `gorm:"column:vendor_name;type:varchar(200);not null;index:idx_vendor_natural_key"`
	Street    string    `gorm:"column:address;type:varchar(200)"`
	City      string    `gorm:"type:varchar(100);index:idx_vendor_natural_key"`
	State     string    `gorm:"type:varchar(2);index:idx_vendor_natural_key"`
	Zip       string    `gorm:"column:zip_code;type:varchar(10)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Email     string    `gorm:"type:varchar(200)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a vendor from a parsed trade name and address fields
func NewVendor(name, street, city, state, zip string) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	now := time.Now()
	return &Vendor{
		ID:        uuid.New(),
		Name:      name,
		Street:    street,
		City:      city,
		State:     strings.ToUpper(state),
		Zip:       zip,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NaturalKey returns the dedup key for the vendor
func (v *Vendor) NaturalKey() string {
	return VendorNaturalKey(v.Name, v.City, v.State)
}

// MergeContact applies contact details arriving on a later row; non-empty
// values win over whatever was recorded before.
func (v *Vendor) MergeContact(phone, email string) {
	if phone != "" {
		v.Phone = phone
	}
	if email != "" {
		v.Email = email
	}
	v.UpdatedAt = time.Now()
}

// VendorNaturalKey computes the dedup key from the name and parsed location
func VendorNaturalKey(name, city, state string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" +
		strings.ToLower(strings.TrimSpace(city)) + "|" +
		strings.ToUpper(strings.TrimSpace(state))
}
