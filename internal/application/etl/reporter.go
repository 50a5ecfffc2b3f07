package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"github.com/greenspot/etl/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// RunReport is the final account of one run: what was staged, what was
// loaded, what was skipped, and every quality finding and post-load rule
// violation. Passed means the loaded data is clean, not merely that the run
// finished.
type RunReport struct {
	RunID      uuid.UUID                    `json:"run_id"`
	Source     string                       `json:"source"`
	TotalRows  int                          `json:"total_rows"`
	Classified map[RowKind]int              `json:"classified"`
	Loaded     map[run.EntityClass]int      `json:"loaded"`
	Skipped    map[run.EntityClass]string   `json:"skipped,omitempty"`
	Failed     map[run.EntityClass]string   `json:"failed,omitempty"`
	Tables     map[string]int64             `json:"tables"`
	Warnings   []ingest.RowIssue            `json:"warnings,omitempty"`
	FailedRows []ingest.RowIssue            `json:"failed_rows,omitempty"`
	Violations []persistence.IntegrityIssue `json:"violations,omitempty"`
	Duration   time.Duration                `json:"duration"`
	Passed     bool                         `json:"passed"`
}

// Summary renders the report as human-readable lines
func (r *RunReport) Summary() []string {
	lines := []string{
		fmt.Sprintf("run %s (%s): %d rows in %s", r.RunID, r.Source, r.TotalRows, r.Duration.Round(time.Millisecond)),
		fmt.Sprintf("classified: %d purchases, %d sales, %d catalog, %d malformed",
			r.Classified[KindPurchase], r.Classified[KindSale], r.Classified[KindCatalog], r.Classified[KindMalformed]),
	}
	for _, class := range run.Classes() {
		switch {
		case r.Failed[class] != "":
			lines = append(lines, fmt.Sprintf("%-10s FAILED: %s", class, r.Failed[class]))
		case r.Skipped[class] != "":
			lines = append(lines, fmt.Sprintf("%-10s skipped: %s", class, r.Skipped[class]))
		default:
			lines = append(lines, fmt.Sprintf("%-10s loaded %d (table now %d)", class, r.Loaded[class], r.Tables[string(class)]))
		}
	}
	if len(r.Warnings) > 0 {
		lines = append(lines, fmt.Sprintf("%d warnings:", len(r.Warnings)))
		for _, w := range r.Warnings {
			lines = append(lines, "  "+w.String())
		}
	}
	if len(r.FailedRows) > 0 {
		lines = append(lines, fmt.Sprintf("%d rows dropped:", len(r.FailedRows)))
		for _, f := range r.FailedRows {
			lines = append(lines, "  "+f.String())
		}
	}
	if len(r.Violations) > 0 {
		lines = append(lines, fmt.Sprintf("%d rule violations:", len(r.Violations)))
		for _, v := range r.Violations {
			lines = append(lines, "  "+v.String())
		}
	}
	if r.Passed {
		lines = append(lines, "result: PASSED")
	} else {
		lines = append(lines, "result: FAILED")
	}
	return lines
}

// IntegrityChecker runs the post-load referential and business-rule queries
type IntegrityChecker interface {
	CheckAll(ctx context.Context) ([]persistence.IntegrityIssue, error)
}

// Reporter assembles the run report after loading
type Reporter struct {
	store   *persistence.Store
	checker IntegrityChecker
	logger  *zap.Logger
}

// NewReporter creates a Reporter
func NewReporter(store *persistence.Store, checker IntegrityChecker, logger *zap.Logger) *Reporter {
	return &Reporter{store: store, checker: checker, logger: logger}
}

// Build queries the store state, runs the integrity checks and assembles the
// final report for a run.
func (r *Reporter) Build(ctx context.Context, loadRun *run.LoadRun, classified []ClassifiedRow, loadResult *LoadResult, quality *ingest.QualityLog) (*RunReport, error) {
	report := &RunReport{
		RunID:      loadRun.ID,
		Source:     loadRun.Source,
		TotalRows:  loadRun.TotalRows,
		Classified: make(map[RowKind]int),
		Loaded:     make(map[run.EntityClass]int),
		Skipped:    make(map[run.EntityClass]string),
		Failed:     make(map[run.EntityClass]string),
		Tables:     make(map[string]int64),
		Warnings:   quality.Warnings(),
		FailedRows: quality.Failures(),
		Duration:   loadRun.Duration(),
	}

	for _, row := range classified {
		report.Classified[row.Kind]++
	}
	for class, cr := range loadResult.Results {
		report.Loaded[class] = cr.Loaded
		if cr.Err != nil {
			report.Failed[class] = cr.Err.Error()
		} else if cr.Skipped {
			report.Skipped[class] = cr.SkipReason
		}
	}

	if err := r.collectTableCounts(ctx, report); err != nil {
		return nil, err
	}

	violations, err := r.checker.CheckAll(ctx)
	if err != nil {
		return nil, err
	}
	report.Violations = violations
	report.Passed = len(violations) == 0 && len(loadResult.FailedClasses()) == 0

	r.logger.Info("report assembled",
		zap.String("run_id", loadRun.ID.String()),
		zap.Int("violations", len(violations)),
		zap.Bool("passed", report.Passed),
	)
	return report, nil
}

func (r *Reporter) collectTableCounts(ctx context.Context, report *RunReport) error {
	counters := map[run.EntityClass]func(context.Context) (int64, error){
		run.ClassCategories: r.store.Categories.Count,
		run.ClassVendors:    r.store.Vendors.Count,
		run.ClassProducts:   r.store.Products.Count,
		run.ClassCustomers:  r.store.Customers.Count,
		run.ClassInventory:  r.store.Inventory.Count,
		run.ClassPurchases:  r.store.Purchases.Count,
		run.ClassSales:      r.store.Sales.Count,
	}
	for class, count := range counters {
		n, err := count(ctx)
		if err != nil {
			return fmt.Errorf("counting %s: %w", class, err)
		}
		report.Tables[string(class)] = n
	}
	return nil
}
