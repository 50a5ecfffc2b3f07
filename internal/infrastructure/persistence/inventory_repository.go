package persistence

import (
	"context"
	"errors"

	"github.com/greenspot/etl/internal/domain/inventory"
	"github.com/greenspot/etl/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByProductID finds the inventory record for a product
func (r *GormInventoryRepository) FindByProductID(ctx context.Context, productID int64) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save creates or updates an inventory record
func (r *GormInventoryRepository) Save(ctx context.Context, record *inventory.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Count counts persisted inventory records
func (r *GormInventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Record{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInventoryRepository implements inventory.Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)
