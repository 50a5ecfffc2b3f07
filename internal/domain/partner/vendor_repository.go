package partner

import (
	"context"

	"github.com/google/uuid"
)

// VendorRepository defines the persistence interface for vendors
type VendorRepository interface {
	// FindByNaturalKey finds a vendor by its case-insensitive name, city and state
	FindByNaturalKey(ctx context.Context, name, city, state string) (*Vendor, error)
	// FindByID finds a vendor by its surrogate id
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error
	// Count returns the number of persisted vendors
	Count(ctx context.Context) (int64, error)
}
