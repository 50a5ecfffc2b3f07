package run

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for load runs
type Repository interface {
	// FindByID finds a run by its id
	FindByID(ctx context.Context, id uuid.UUID) (*LoadRun, error)
	// Save creates or updates a run
	Save(ctx context.Context, loadRun *LoadRun) error
}
