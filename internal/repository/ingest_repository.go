package repository

import (
	"context"
	"errors"
	"fmt"

	"resto-insights/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for duplicate key violations.
const uniqueViolation = "23505"

// ingestRepository implements IngestRepository using PostgreSQL.
type ingestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewIngestRepository creates a new PostgreSQL-backed ingest repository.
func NewIngestRepository(pool *pgxpool.Pool, logger zerolog.Logger) IngestRepository {
	return &ingestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "ingest").Logger(),
	}
}

// Migrate creates the reporting schema and the unpivot function.
func (r *ingestRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		r.logger.Error().Err(err).Msg("failed to apply schema")
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	r.logger.Info().Msg("schema applied")
	return nil
}

// BeginTx starts a new database transaction.
func (r *ingestRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// InsertRestaurants bulk-inserts restaurant records within the transaction.
// Inserts are plain (no ON CONFLICT): re-running ingestion against a
// populated store fails fast instead of silently overwriting.
func (r *ingestRepository) InsertRestaurants(ctx context.Context, tx pgx.Tx, restaurants []model.RestaurantRecord) error {
	if len(restaurants) == 0 {
		return nil
	}

	query := `
		INSERT INTO restaurant_info (
			restaurant_id, restaurant_name, city, locality, latitude, longitude,
			average_cost_for_two, has_table_booking, has_online_delivery,
			price_range, aggregate_rating, rating_text, votes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	batch := &pgx.Batch{}
	for _, rec := range restaurants {
		batch.Queue(query,
			rec.RestaurantID, rec.Name, rec.City, rec.Locality, rec.Latitude, rec.Longitude,
			rec.AverageCostForTwo, rec.HasTableBooking, rec.HasOnlineDelivery,
			rec.PriceRange, rec.AggregateRating, rec.RatingText, rec.Votes,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(restaurants); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("restaurant_id", restaurants[i].RestaurantID).
				Msg("failed to insert restaurant")
			return r.wrapInsertError(err, restaurants[i].RestaurantID)
		}
	}

	r.logger.Debug().
		Int("count", len(restaurants)).
		Msg("restaurants inserted")

	return nil
}

// InsertCuisines bulk-inserts cuisine records within the transaction.
func (r *ingestRepository) InsertCuisines(ctx context.Context, tx pgx.Tx, cuisines []model.CuisineRecord) error {
	if len(cuisines) == 0 {
		return nil
	}

	query := `
		INSERT INTO cuisine_info (
			restaurant_id,
			cuisine_1, cuisine_2, cuisine_3, cuisine_4,
			cuisine_5, cuisine_6, cuisine_7, cuisine_8
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, rec := range cuisines {
		batch.Queue(query,
			rec.RestaurantID,
			rec.Cuisines[0], rec.Cuisines[1], rec.Cuisines[2], rec.Cuisines[3],
			rec.Cuisines[4], rec.Cuisines[5], rec.Cuisines[6], rec.Cuisines[7],
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(cuisines); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("restaurant_id", cuisines[i].RestaurantID).
				Msg("failed to insert cuisine record")
			return r.wrapInsertError(err, cuisines[i].RestaurantID)
		}
	}

	r.logger.Debug().
		Int("count", len(cuisines)).
		Msg("cuisine records inserted")

	return nil
}

// RecordRun persists the audit row for a pipeline invocation.
func (r *ingestRepository) RecordRun(ctx context.Context, run *model.IngestRun) error {
	query := `
		INSERT INTO ingest_runs (
			run_id, source, status, started_at, finished_at,
			rows_read, rows_ingested, rows_dropped_country,
			rows_dropped_invalid, cuisines_truncated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		run.RunID, run.Source, run.Status, run.StartedAt, run.FinishedAt,
		run.RowsRead, run.RowsIngested, run.RowsDroppedCountry,
		run.RowsDroppedInvalid, run.CuisinesTruncated,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("run_id", run.RunID.String()).
			Msg("failed to record ingest run")
		return fmt.Errorf("failed to record ingest run: %w", err)
	}

	r.logger.Debug().
		Str("run_id", run.RunID.String()).
		Str("status", run.Status).
		Msg("ingest run recorded")

	return nil
}

// wrapInsertError maps unique violations onto the duplicate-restaurant domain
// error so callers can distinguish conflicts from transport failures.
func (r *ingestRepository) wrapInsertError(err error, restaurantID int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("restaurant %d: %w", restaurantID, model.ErrDuplicateRestaurant)
	}
	return fmt.Errorf("failed to insert restaurant %d: %w", restaurantID, err)
}
