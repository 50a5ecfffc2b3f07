package trade

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the persistence interface for purchase orders
type PurchaseOrderRepository interface {
	// InsertBatch inserts a batch of purchase orders
	InsertBatch(ctx context.Context, orders []*PurchaseOrder) error
	// CountByRun returns the number of purchase orders loaded by a run
	CountByRun(ctx context.Context, runID uuid.UUID) (int64, error)
	// Count returns the number of persisted purchase orders
	Count(ctx context.Context) (int64, error)
}

// SaleTransactionRepository defines the persistence interface for sales
type SaleTransactionRepository interface {
	// InsertBatch inserts a batch of sale transactions
	InsertBatch(ctx context.Context, sales []*SaleTransaction) error
	// CountByRun returns the number of sales loaded by a run
	CountByRun(ctx context.Context, runID uuid.UUID) (int64, error)
	// Count returns the number of persisted sale transactions
	Count(ctx context.Context) (int64, error)
}
