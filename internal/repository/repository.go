package repository

import (
	"context"

	"resto-insights/internal/model"

	"github.com/jackc/pgx/v5"
)

// IngestRepository defines the write side of the store: schema management and
// the bulk load of one cleaned dataset.
type IngestRepository interface {
	// Migrate creates the tables, indexes, and the unpivot_cuisines() function.
	Migrate(ctx context.Context) error

	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// InsertRestaurants bulk-inserts restaurant records within the transaction.
	// A duplicate restaurant_id fails the whole batch.
	InsertRestaurants(ctx context.Context, tx pgx.Tx, restaurants []model.RestaurantRecord) error

	// InsertCuisines bulk-inserts cuisine records within the transaction.
	InsertCuisines(ctx context.Context, tx pgx.Tx, cuisines []model.CuisineRecord) error

	// RecordRun persists the audit record of a pipeline invocation. It runs
	// outside the ingest transaction so failed runs still leave a trail.
	RecordRun(ctx context.Context, run *model.IngestRun) error
}

// ReportRepository defines the read side: every analytical query over the
// persisted tables and the unpivoted cuisine relation. All methods are pure
// reads and safe to run concurrently.
type ReportRepository interface {
	// TopCuisinesByCity dense-ranks cuisines within each city by restaurant
	// count and returns rows with rank <= maxRank.
	TopCuisinesByCity(ctx context.Context, maxRank int) ([]model.CityCuisineRank, error)

	// SpecialtyRestaurants returns restaurants serving exactly one distinct cuisine.
	SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error)

	// MostCommonCuisine returns the nationally most common cuisine, or nil
	// when the store is empty. Ties break on cuisine name ascending.
	MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error)

	// ExpansionCities returns cities with fewer than maxRestaurants listings
	// and an average rating above minRating.
	ExpansionCities(ctx context.Context, maxRestaurants int, minRating float64) ([]model.CityOpportunity, error)

	// DeliveryAdoptionByCity returns the online-delivery share per city.
	DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error)

	// RatingDistribution aggregates restaurants by rating text.
	RatingDistribution(ctx context.Context) ([]model.RatingBucket, error)

	// UnpivotedCuisines returns the full derived (restaurant, cuisine) relation.
	UnpivotedCuisines(ctx context.Context) ([]model.UnpivotedCuisineRow, error)
}
