package run

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/shared"
)

// EntityClass names one of the loadable entity classes, in the order the
// loader visits them.
type EntityClass string

const (
	ClassCategories EntityClass = "categories"
	ClassVendors    EntityClass = "vendors"
	ClassProducts   EntityClass = "products"
	ClassCustomers  EntityClass = "customers"
	ClassInventory  EntityClass = "inventory"
	ClassPurchases  EntityClass = "purchases"
	ClassSales      EntityClass = "sales"
)

// Classes lists the entity classes in load order. Each class is loaded only
// after every class it references.
func Classes() []EntityClass {
	return []EntityClass{
		ClassCategories, ClassVendors, ClassProducts,
		ClassCustomers, ClassInventory, ClassPurchases, ClassSales,
	}
}

// IsValid checks if the entity class is valid
func (c EntityClass) IsValid() bool {
	switch c {
	case ClassCategories, ClassVendors, ClassProducts,
		ClassCustomers, ClassInventory, ClassPurchases, ClassSales:
		return true
	}
	return false
}

// Status represents the lifecycle state of a load run
type Status string

const (
	StatusStaged           Status = "staged"
	StatusValidatingSchema Status = "validating_schema"
	StatusLoading          Status = "loading"
	StatusReporting        Status = "reporting"
	StatusDone             Status = "done"
	StatusFailed           Status = "failed"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusStaged, StatusValidatingSchema, StatusLoading,
		StatusReporting, StatusDone, StatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// LoadRun tracks one execution of the engine from staging to report. The run
// id also tags every transactional row it loads, which is what makes retries
// of a half-finished run safe.
type LoadRun struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;column:run_id"`
	Source       string      `gorm:"type:varchar(500);not null"`
	Status       Status      `gorm:"type:varchar(30);not null"`
	CurrentClass EntityClass `gorm:"column:current_class;type:varchar(20)"`
	TotalRows    int         `gorm:"column:total_rows"`
	LoadedRows   int         `gorm:"column:loaded_rows"`
	SkippedRows  int         `gorm:"column:skipped_rows"`
	Error        string      `gorm:"type:text"`
	StartedAt    *time.Time  `gorm:"column:started_at"`
	FinishedAt   *time.Time  `gorm:"column:finished_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (LoadRun) TableName() string {
	return "load_runs"
}

// NewLoadRun creates a run for a source file
func NewLoadRun(source string) (*LoadRun, error) {
	if source == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Run source cannot be empty")
	}
	now := time.Now()
	return &LoadRun{
		ID:        uuid.New(),
		Source:    source,
		Status:    StatusStaged,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ResumeLoadRun reconstitutes a run with a known id, used when retrying a
// half-finished run so already-loaded classes are recognized and skipped.
func ResumeLoadRun(id uuid.UUID, source string) (*LoadRun, error) {
	r, err := NewLoadRun(source)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUN_ID", "Run id cannot be nil")
	}
	r.ID = id
	return r, nil
}

// StartValidation moves the run into schema validation
func (r *LoadRun) StartValidation(totalRows int) error {
	if r.Status != StatusStaged {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start validation from state: %s", r.Status))
	}
	if totalRows < 0 {
		return shared.NewDomainError("INVALID_TOTAL_ROWS", "Total rows cannot be negative")
	}
	r.Status = StatusValidatingSchema
	r.TotalRows = totalRows
	now := time.Now()
	r.StartedAt = &now
	r.UpdatedAt = now
	return nil
}

// StartLoading moves the run into the loading phase
func (r *LoadRun) StartLoading() error {
	if r.Status != StatusValidatingSchema {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start loading from state: %s", r.Status))
	}
	r.Status = StatusLoading
	r.UpdatedAt = time.Now()
	return nil
}

// AdvanceClass records which entity class the loader is working on
func (r *LoadRun) AdvanceClass(class EntityClass) error {
	if r.Status != StatusLoading {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot advance class from state: %s", r.Status))
	}
	if !class.IsValid() {
		return shared.NewDomainError("INVALID_CLASS", fmt.Sprintf("Invalid entity class: %s", class))
	}
	r.CurrentClass = class
	r.UpdatedAt = time.Now()
	return nil
}

// StartReporting moves the run into the reporting phase
func (r *LoadRun) StartReporting(loadedRows, skippedRows int) error {
	if r.Status != StatusLoading {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start reporting from state: %s", r.Status))
	}
	r.Status = StatusReporting
	r.LoadedRows = loadedRows
	r.SkippedRows = skippedRows
	r.UpdatedAt = time.Now()
	return nil
}

// Complete marks the run as done
func (r *LoadRun) Complete() error {
	if r.Status != StatusReporting {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete from state: %s", r.Status))
	}
	r.Status = StatusDone
	now := time.Now()
	r.FinishedAt = &now
	r.UpdatedAt = now
	return nil
}

// Fail marks the run as failed with a reason
func (r *LoadRun) Fail(reason string) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail from terminal state: %s", r.Status))
	}
	r.Status = StatusFailed
	r.Error = reason
	now := time.Now()
	r.FinishedAt = &now
	r.UpdatedAt = now
	return nil
}

// IsDone returns true if the run completed successfully
func (r *LoadRun) IsDone() bool {
	return r.Status == StatusDone
}

// Duration returns how long the run has been executing
func (r *LoadRun) Duration() time.Duration {
	if r.StartedAt == nil {
		return 0
	}
	end := time.Now()
	if r.FinishedAt != nil {
		end = *r.FinishedAt
	}
	return end.Sub(*r.StartedAt)
}
