package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/greenspot/etl/internal/application/etl"
	"github.com/greenspot/etl/internal/infrastructure/config"
	"github.com/greenspot/etl/internal/infrastructure/ingest"
	"github.com/greenspot/etl/internal/infrastructure/logger"
	"github.com/greenspot/etl/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		inputPath string
		resumeID  string
	)
	flag.StringVar(&inputPath, "input", "", "Path to the source export (.csv or .xlsx)")
	flag.StringVar(&resumeID, "resume", "", "Run id to resume instead of starting fresh")
	flag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: etl -input <file.csv|file.xlsx> [-resume <run-id>]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := ingest.ReadFile(inputPath, cfg.ETL.InputFormat, rune(cfg.ETL.Delimiter[0]))
	if err != nil {
		log.Fatal("Failed to read input file", zap.String("path", inputPath), zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	store := persistence.NewStore(db.DB, cfg.ETL.BatchSize)
	engine := etl.NewEngine(store, log, cfg.ETL.MaxQualityLogEntries)

	var report *etl.RunReport
	if resumeID != "" {
		runID, perr := uuid.Parse(resumeID)
		if perr != nil {
			log.Fatal("Invalid run id", zap.String("value", resumeID), zap.Error(perr))
		}
		report, err = engine.Resume(ctx, runID, dataset)
	} else {
		report, err = engine.Run(ctx, dataset)
	}
	if err != nil {
		log.Fatal("Run failed", zap.Error(err))
	}

	for _, line := range report.Summary() {
		fmt.Println(line)
	}
	if !report.Passed {
		os.Exit(1)
	}
}
