package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLoadRunRepository implements run.Repository using GORM
type GormLoadRunRepository struct {
	db *gorm.DB
}

// NewGormLoadRunRepository creates a new GormLoadRunRepository
func NewGormLoadRunRepository(db *gorm.DB) *GormLoadRunRepository {
	return &GormLoadRunRepository{db: db}
}

// FindByID finds a run by its id
func (r *GormLoadRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*run.LoadRun, error) {
	var loadRun run.LoadRun
	if err := r.db.WithContext(ctx).First(&loadRun, "run_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loadRun, nil
}

// Save creates or updates a run
func (r *GormLoadRunRepository) Save(ctx context.Context, loadRun *run.LoadRun) error {
	return r.db.WithContext(ctx).Save(loadRun).Error
}

// Ensure GormLoadRunRepository implements run.Repository
var _ run.Repository = (*GormLoadRunRepository)(nil)
