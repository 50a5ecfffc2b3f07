package inventory

import "context"

// Repository defines the persistence interface for inventory records
type Repository interface {
	// FindByProductID finds the inventory record for a product
	FindByProductID(ctx context.Context, productID int64) (*Record, error)
	// Save creates or updates an inventory record
	Save(ctx context.Context, record *Record) error
	// Count returns the number of persisted inventory records
	Count(ctx context.Context) (int64, error)
}
