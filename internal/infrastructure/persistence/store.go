package persistence

import (
	"context"

	"github.com/greenspot/etl/internal/domain/catalog"
	"github.com/greenspot/etl/internal/domain/inventory"
	"github.com/greenspot/etl/internal/domain/partner"
	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/domain/trade"
	"gorm.io/gorm"
)

// Store bundles the repositories over a single gorm handle so the loader can
// run a whole entity class against one transaction.
type Store struct {
	db        *gorm.DB
	batchSize int

	Categories catalog.CategoryRepository
	Products   catalog.ProductRepository
	Vendors    partner.VendorRepository
	Customers  partner.CustomerRepository
	Inventory  inventory.Repository
	Purchases  trade.PurchaseOrderRepository
	Sales      trade.SaleTransactionRepository
	Runs       run.Repository
}

// NewStore creates a store over a gorm handle
func NewStore(db *gorm.DB, batchSize int) *Store {
	return &Store{
		db:         db,
		batchSize:  batchSize,
		Categories: NewGormCategoryRepository(db),
		Products:   NewGormProductRepository(db),
		Vendors:    NewGormVendorRepository(db),
		Customers:  NewGormCustomerRepository(db),
		Inventory:  NewGormInventoryRepository(db),
		Purchases:  NewGormPurchaseOrderRepository(db, batchSize),
		Sales:      NewGormSaleTransactionRepository(db, batchSize),
		Runs:       NewGormLoadRunRepository(db),
	}
}

// Transaction runs fn with a store bound to a database transaction. Returning
// an error rolls back everything fn wrote.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(NewStore(txdb, s.batchSize))
	})
}

// DB exposes the underlying gorm handle for schema checks
func (s *Store) DB() *gorm.DB {
	return s.db
}
