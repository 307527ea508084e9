package service

import (
	"context"
	"fmt"
	"time"

	"resto-insights/internal/dataset"
	"resto-insights/internal/model"
	"resto-insights/internal/repository"
	"resto-insights/internal/transform"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ingestService implements IngestService. The pipeline is single-threaded and
// run-to-completion: one dataset in, two tables out, one audit row either way.
type ingestService struct {
	loader  dataset.Loader
	cleaner *transform.Cleaner
	repo    repository.IngestRepository
	logger  zerolog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	loader dataset.Loader,
	cleaner *transform.Cleaner,
	repo repository.IngestRepository,
	logger zerolog.Logger,
) IngestService {
	return &ingestService{
		loader:  loader,
		cleaner: cleaner,
		repo:    repo,
		logger:  logger.With().Str("service", "ingest").Logger(),
	}
}

// Migrate ensures the reporting schema exists.
func (s *ingestService) Migrate(ctx context.Context) error {
	return s.repo.Migrate(ctx)
}

// Run executes the pipeline once. The returned IngestRun carries the full
// accounting of the run; it is also persisted to ingest_runs, with status
// "failed" when any stage errors, so exclusions and conflicts leave a trail.
func (s *ingestService) Run(ctx context.Context, source string) (*model.IngestRun, error) {
	run := &model.IngestRun{
		RunID:     uuid.New(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Info().
		Str("run_id", run.RunID.String()).
		Str("source", source).
		Msg("starting ingest run")

	err := s.runPipeline(ctx, source, run)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = model.RunStatusFailed
	} else {
		run.Status = model.RunStatusSucceeded
	}

	if recordErr := s.repo.RecordRun(ctx, run); recordErr != nil {
		if err == nil {
			return nil, fmt.Errorf("ingest succeeded but audit record failed: %w", recordErr)
		}
		s.logger.Error().
			Err(recordErr).
			Str("run_id", run.RunID.String()).
			Msg("failed to record failed ingest run")
	}

	if err != nil {
		return run, err
	}

	s.logger.Info().
		Str("run_id", run.RunID.String()).
		Int("rows_read", run.RowsRead).
		Int("rows_ingested", run.RowsIngested).
		Int("rows_dropped_country", run.RowsDroppedCountry).
		Int("rows_dropped_invalid", run.RowsDroppedInvalid).
		Int("cuisines_truncated", run.CuisinesTruncated).
		Msg("ingest run completed")

	return run, nil
}

// runPipeline performs load, clean, split, and persist, filling the run's
// counters as stages complete.
func (s *ingestService) runPipeline(ctx context.Context, source string, run *model.IngestRun) error {
	table, err := s.loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load stage failed: %w", err)
	}

	cleaned, report, err := s.cleaner.Clean(table)
	if err != nil {
		return fmt.Errorf("clean stage failed: %w", err)
	}

	run.RowsRead = report.RowsRead
	run.RowsDroppedCountry = report.RowsDroppedCountry
	run.RowsDroppedInvalid = report.RowsDroppedInvalid
	run.CuisinesTruncated = report.CuisinesTruncated

	restaurants, cuisines := transform.Split(cleaned)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("persist stage failed: %w", err)
	}

	// Roll back on any error so a conflict leaves the store untouched.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.repo.InsertRestaurants(ctx, tx, restaurants); err != nil {
		return fmt.Errorf("persist stage failed: %w", err)
	}

	if err = s.repo.InsertCuisines(ctx, tx, cuisines); err != nil {
		return fmt.Errorf("persist stage failed: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("persist stage failed: %w", err)
	}

	run.RowsIngested = len(restaurants)
	return nil
}
