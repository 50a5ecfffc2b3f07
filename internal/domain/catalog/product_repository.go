package catalog

import "context"

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by its source item number
	FindByID(ctx context.Context, id int64) (*Product, error)
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
	// Count returns the number of persisted products
	Count(ctx context.Context) (int64, error)
}
