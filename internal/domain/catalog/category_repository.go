package catalog

import "context"

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	// FindByName finds a category by its case-insensitive natural key
	FindByName(ctx context.Context, name string) (*Category, error)
	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
	// Count returns the number of persisted categories
	Count(ctx context.Context) (int64, error)
}
