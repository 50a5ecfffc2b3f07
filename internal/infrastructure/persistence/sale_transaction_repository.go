package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleTransactionRepository implements SaleTransactionRepository using GORM
type GormSaleTransactionRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewGormSaleTransactionRepository creates a new GormSaleTransactionRepository
func NewGormSaleTransactionRepository(db *gorm.DB, batchSize int) *GormSaleTransactionRepository {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &GormSaleTransactionRepository{db: db, batchSize: batchSize}
}

// InsertBatch inserts a batch of sale transactions
func (r *GormSaleTransactionRepository) InsertBatch(ctx context.Context, sales []*trade.SaleTransaction) error {
	if len(sales) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(sales, r.batchSize).Error
}

// CountByRun counts sales loaded by a run
func (r *GormSaleTransactionRepository) CountByRun(ctx context.Context, runID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.SaleTransaction{}).
		Where("run_id = ?", runID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts persisted sale transactions
func (r *GormSaleTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.SaleTransaction{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSaleTransactionRepository implements SaleTransactionRepository
var _ trade.SaleTransactionRepository = (*GormSaleTransactionRepository)(nil)
