package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"resto-insights/internal/model"
	"resto-insights/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool, and the
// full reporting schema including the unpivot function.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := repository.NewIngestRepository(pool, zerolog.Nop()).Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"cuisine_info", "restaurant_info", "ingest_runs"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedRestaurants inserts restaurant and cuisine record pairs directly,
// bypassing the pipeline, for query-layer tests.
func SeedRestaurants(t *testing.T, pool *pgxpool.Pool, restaurants []model.RestaurantRecord, cuisines []model.CuisineRecord) {
	t.Helper()

	ctx := context.Background()

	for _, r := range restaurants {
		_, err := pool.Exec(ctx, `
			INSERT INTO restaurant_info (
				restaurant_id, restaurant_name, city, locality, latitude, longitude,
				average_cost_for_two, has_table_booking, has_online_delivery,
				price_range, aggregate_rating, rating_text, votes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			r.RestaurantID, r.Name, r.City, r.Locality, r.Latitude, r.Longitude,
			r.AverageCostForTwo, r.HasTableBooking, r.HasOnlineDelivery,
			r.PriceRange, r.AggregateRating, r.RatingText, r.Votes,
		)
		if err != nil {
			t.Fatalf("failed to seed restaurant %d: %v", r.RestaurantID, err)
		}
	}

	for _, c := range cuisines {
		_, err := pool.Exec(ctx, `
			INSERT INTO cuisine_info (
				restaurant_id,
				cuisine_1, cuisine_2, cuisine_3, cuisine_4,
				cuisine_5, cuisine_6, cuisine_7, cuisine_8
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.RestaurantID,
			c.Cuisines[0], c.Cuisines[1], c.Cuisines[2], c.Cuisines[3],
			c.Cuisines[4], c.Cuisines[5], c.Cuisines[6], c.Cuisines[7],
		)
		if err != nil {
			t.Fatalf("failed to seed cuisine record %d: %v", c.RestaurantID, err)
		}
	}
}

// seedSingleCuisineCity seeds count restaurants in city, each serving only
// the given cuisine, with IDs starting at startID.
func seedSingleCuisineCity(t *testing.T, pool *pgxpool.Pool, startID int64, count int, city, cuisine string, rating float64) {
	t.Helper()

	restaurants := make([]model.RestaurantRecord, 0, count)
	cuisineRecords := make([]model.CuisineRecord, 0, count)
	for i := 0; i < count; i++ {
		id := startID + int64(i)
		restaurants = append(restaurants, model.RestaurantRecord{
			RestaurantID:      id,
			Name:              fmt.Sprintf("%s House %d", cuisine, i+1),
			City:              city,
			AverageCostForTwo: 500,
			PriceRange:        2,
			AggregateRating:   rating,
			RatingText:        "Very Good",
			Votes:             100,
		})
		cuisineRecords = append(cuisineRecords, model.CuisineRecord{
			RestaurantID: id,
			Cuisines:     [model.CuisineSlots]string{cuisine},
		})
	}

	SeedRestaurants(t, pool, restaurants, cuisineRecords)
}
