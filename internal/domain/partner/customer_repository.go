package partner

import "context"

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	// FindByID finds a customer by its source id
	FindByID(ctx context.Context, id int64) (*Customer, error)
	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
	// Count returns the number of persisted customers
	Count(ctx context.Context) (int64, error)
}
