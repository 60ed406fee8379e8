package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/data-importer/internal/backup"
	"github.com/mentorhub/data-importer/internal/model"
	"github.com/mentorhub/data-importer/internal/pipeline"
)

// Fetcher retrieves the raw rows for all configured spreadsheet ranges.
type Fetcher interface {
	FetchAll(ctx context.Context) (model.RawData, error)
}

// DataImporter is the database phase of a run. *Importer satisfies it.
type DataImporter interface {
	Run(ctx context.Context, data model.ProcessedData) (Outcome, error)
}

// Service drives import runs end to end: fetch, process, persist, report.
// Runs execute in the background; callers poll run state through the RunStore.
type Service struct {
	log        *slog.Logger
	fetcher    Fetcher
	processor  *pipeline.Processor
	importer   DataImporter
	backups    *backup.Writer
	runs       RunStore
	runTimeout time.Duration
}

// NewService wires a Service from its collaborators.
func NewService(log *slog.Logger, fetcher Fetcher, processor *pipeline.Processor, imp DataImporter, backups *backup.Writer, runs RunStore, runTimeout time.Duration) *Service {
	return &Service{
		log:        log,
		fetcher:    fetcher,
		processor:  processor,
		importer:   imp,
		backups:    backups,
		runs:       runs,
		runTimeout: runTimeout,
	}
}

// StartImport registers a new run and executes it in the background. The
// returned id is immediately pollable via Status.
func (s *Service) StartImport() string {
	run := Run{
		ID:        uuid.NewString(),
		Status:    StatusStarted,
		StartedAt: time.Now().UTC(),
	}
	s.runs.Put(run)

	go s.execute(run)

	s.log.Info("import run started", "import_id", run.ID)
	return run.ID
}

// Status returns the current state of a run.
func (s *Service) Status(id string) (Run, bool) {
	return s.runs.Get(id)
}

// DryRun fetches and processes the data without touching the database.
func (s *Service) DryRun(ctx context.Context) (*model.Result, error) {
	raw, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet data: %w", err)
	}
	return s.processor.Process(raw), nil
}

// execute runs one import to completion, updating run state at each phase.
// It owns its context: the run outlives the HTTP request that started it.
func (s *Service) execute(run Run) {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	fail := func(stage string, err error) {
		s.log.Error("import run failed", "import_id", run.ID, "stage", stage, "error", err)
		now := time.Now().UTC()
		run.Status = StatusFailed
		run.Error = fmt.Sprintf("%s: %v", stage, err)
		run.FinishedAt = &now
		s.runs.Put(run)
	}

	run.Status = StatusFetching
	s.runs.Put(run)

	raw, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		fail("fetching data", err)
		return
	}
	s.backups.SaveRaw(raw)

	run.Status = StatusProcessing
	s.runs.Put(run)

	result := s.processor.Process(raw)
	s.backups.SaveProcessed(result)

	run.Status = StatusImporting
	s.runs.Put(run)

	outcome, err := s.importer.Run(ctx, result.Data)
	if err != nil {
		fail("importing", err)
		return
	}

	report := BuildReport(result, outcome)
	s.backups.SaveReport(report)

	now := time.Now().UTC()
	run.Status = StatusCompleted
	run.Report = &report
	run.FinishedAt = &now
	s.runs.Put(run)

	s.log.Info("import run completed", "import_id", run.ID)
}
