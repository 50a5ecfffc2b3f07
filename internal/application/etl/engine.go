package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/domain/run"
	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"github.com/greenspot/etl/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Engine drives one run end to end: schema validation, classification,
// resolution, dependency-ordered loading, and the final report. A schema
// failure is fatal and produces no report; everything after that degrades
// per row or per entity class instead of aborting.
type Engine struct {
	store      *persistence.Store
	classifier *Classifier
	resolver   *Resolver
	loader     *Loader
	reporter   *Reporter
	logger     *zap.Logger

	maxQualityEntries int
}

// NewEngine creates an Engine over a store
func NewEngine(store *persistence.Store, logger *zap.Logger, maxQualityEntries int) *Engine {
	checker := persistence.NewGormIntegrityChecker(store.DB())
	return &Engine{
		store:             store,
		classifier:        NewClassifier(),
		resolver:          NewResolver(logger),
		loader:            NewLoader(store, logger),
		reporter:          NewReporter(store, checker, logger),
		logger:            logger,
		maxQualityEntries: maxQualityEntries,
	}
}

// Run executes a fresh run over a dataset
func (e *Engine) Run(ctx context.Context, dataset *ingest.Dataset) (*RunReport, error) {
	loadRun, err := run.NewLoadRun(dataset.Source)
	if err != nil {
		return nil, err
	}
	return e.execute(ctx, loadRun, dataset)
}

// Resume retries a previously started run id over the same dataset. Entity
// classes whose rows this run already wrote are skipped, so a crash between
// classes does not duplicate transactional rows.
func (e *Engine) Resume(ctx context.Context, runID uuid.UUID, dataset *ingest.Dataset) (*RunReport, error) {
	loadRun, err := run.ResumeLoadRun(runID, dataset.Source)
	if err != nil {
		return nil, err
	}
	return e.execute(ctx, loadRun, dataset)
}

func (e *Engine) execute(ctx context.Context, loadRun *run.LoadRun, dataset *ingest.Dataset) (*RunReport, error) {
	e.logger.Info("run starting",
		zap.String("run_id", loadRun.ID.String()),
		zap.String("source", dataset.Source),
		zap.Int("rows", len(dataset.Rows)),
	)
	if err := e.store.Runs.Save(ctx, loadRun); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	if err := loadRun.StartValidation(len(dataset.Rows)); err != nil {
		return nil, err
	}
	if missing := dataset.MissingColumns(ingest.RequiredColumns()); len(missing) > 0 {
		reason := fmt.Sprintf("input is missing required columns: %s", strings.Join(missing, ", "))
		return nil, e.fail(ctx, loadRun, reason)
	}

	quality := ingest.NewQualityLog(e.maxQualityEntries)
	classified := e.classifier.ClassifyAll(dataset.Rows)
	staging := e.resolver.Resolve(classified, quality)

	if err := loadRun.StartLoading(); err != nil {
		return nil, err
	}
	if err := e.store.Runs.Save(ctx, loadRun); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	loadResult, err := e.loader.Load(ctx, staging, loadRun)
	if err != nil {
		return nil, e.fail(ctx, loadRun, err.Error())
	}

	if err := loadRun.StartReporting(loadResult.Loaded(), len(quality.Failures())); err != nil {
		return nil, err
	}
	report, err := e.reporter.Build(ctx, loadRun, classified, loadResult, quality)
	if err != nil {
		return nil, e.fail(ctx, loadRun, err.Error())
	}

	if failed := loadResult.FailedClasses(); len(failed) > 0 {
		reasons := make([]string, 0, len(failed))
		for _, class := range failed {
			reasons = append(reasons, string(class))
		}
		if err := loadRun.Fail(fmt.Sprintf("entity classes failed: %s", strings.Join(reasons, ", "))); err != nil {
			return nil, err
		}
	} else {
		if err := loadRun.Complete(); err != nil {
			return nil, err
		}
	}
	if err := e.store.Runs.Save(ctx, loadRun); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	e.logger.Info("run finished",
		zap.String("run_id", loadRun.ID.String()),
		zap.String("status", string(loadRun.Status)),
		zap.Bool("passed", report.Passed),
	)
	return report, nil
}

// fail transitions the run to failed and persists it; the returned error
// carries the reason.
func (e *Engine) fail(ctx context.Context, loadRun *run.LoadRun, reason string) error {
	if err := loadRun.Fail(reason); err != nil {
		return err
	}
	if err := e.store.Runs.Save(ctx, loadRun); err != nil {
		e.logger.Error("failed to record failed run", zap.Error(err))
	}
	return fmt.Errorf("run %s failed: %s", loadRun.ID, reason)
}
