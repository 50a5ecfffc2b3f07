package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB, batchSize int) *GormPurchaseOrderRepository {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &GormPurchaseOrderRepository{db: db, batchSize: batchSize}
}

// InsertBatch inserts a batch of purchase orders
func (r *GormPurchaseOrderRepository) InsertBatch(ctx context.Context, orders []*trade.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(orders, r.batchSize).Error
}

// CountByRun counts purchase orders loaded by a run
func (r *GormPurchaseOrderRepository) CountByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("run_id = ?", runID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts persisted purchase orders
func (r *GormPurchaseOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
