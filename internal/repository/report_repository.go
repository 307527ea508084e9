package repository

import (
	"context"
	"errors"
	"fmt"

	"resto-insights/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reportRepository implements ReportRepository using PostgreSQL. Every query
// is a pure read over restaurant_info and the unpivot_cuisines() relation.
type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

// TopCuisinesByCity dense-ranks cuisines within each city by restaurant count.
// Tied counts share a rank and the next distinct count takes the immediately
// following rank.
func (r *reportRepository) TopCuisinesByCity(ctx context.Context, maxRank int) ([]model.CityCuisineRank, error) {
	query := `
		SELECT city, cuisine, restaurant_count, cuisine_rank
		FROM (
			SELECT r.city,
			       u.cuisine,
			       COUNT(*) AS restaurant_count,
			       DENSE_RANK() OVER (
			           PARTITION BY r.city ORDER BY COUNT(*) DESC
			       ) AS cuisine_rank
			FROM unpivot_cuisines() u
			JOIN restaurant_info r USING (restaurant_id)
			GROUP BY r.city, u.cuisine
		) ranked
		WHERE cuisine_rank <= $1
		ORDER BY city, cuisine_rank, cuisine
	`

	rows, err := r.pool.Query(ctx, query, maxRank)
	if err != nil {
		r.logger.Error().Err(err).Int("max_rank", maxRank).Msg("failed to query top cuisines by city")
		return nil, fmt.Errorf("failed to query top cuisines by city: %w", err)
	}
	defer rows.Close()

	var results []model.CityCuisineRank
	for rows.Next() {
		var row model.CityCuisineRank
		if err := rows.Scan(&row.City, &row.Cuisine, &row.RestaurantCount, &row.Rank); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan city cuisine rank row")
			return nil, fmt.Errorf("failed to scan city cuisine rank: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating city cuisine rank rows")
		return nil, fmt.Errorf("error iterating city cuisine ranks: %w", err)
	}

	return results, nil
}

// SpecialtyRestaurants returns restaurants serving exactly one distinct cuisine.
func (r *reportRepository) SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error) {
	query := `
		SELECT r.restaurant_id, r.restaurant_name, r.city, MIN(u.cuisine) AS cuisine
		FROM unpivot_cuisines() u
		JOIN restaurant_info r USING (restaurant_id)
		GROUP BY r.restaurant_id, r.restaurant_name, r.city
		HAVING COUNT(DISTINCT u.cuisine) = 1
		ORDER BY r.restaurant_name, r.restaurant_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query specialty restaurants")
		return nil, fmt.Errorf("failed to query specialty restaurants: %w", err)
	}
	defer rows.Close()

	var results []model.SpecialtyRestaurant
	for rows.Next() {
		var row model.SpecialtyRestaurant
		if err := rows.Scan(&row.RestaurantID, &row.Name, &row.City, &row.Cuisine); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan specialty restaurant row")
			return nil, fmt.Errorf("failed to scan specialty restaurant: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating specialty restaurant rows")
		return nil, fmt.Errorf("error iterating specialty restaurants: %w", err)
	}

	return results, nil
}

// MostCommonCuisine returns the single most common cuisine nationally, or nil
// when no cuisines are stored. Equal counts break deterministically on
// cuisine name ascending.
func (r *reportRepository) MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error) {
	query := `
		SELECT cuisine, COUNT(*) AS restaurant_count
		FROM unpivot_cuisines()
		GROUP BY cuisine
		ORDER BY restaurant_count DESC, cuisine ASC
		LIMIT 1
	`

	var result model.CuisineCount
	err := r.pool.QueryRow(ctx, query).Scan(&result.Cuisine, &result.RestaurantCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("no cuisines stored")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query most common cuisine")
		return nil, fmt.Errorf("failed to query most common cuisine: %w", err)
	}

	return &result, nil
}

// ExpansionCities returns high-rating, low-density cities. An empty result is
// a valid outcome.
func (r *reportRepository) ExpansionCities(ctx context.Context, maxRestaurants int, minRating float64) ([]model.CityOpportunity, error) {
	query := `
		SELECT city,
		       COUNT(*) AS restaurant_count,
		       AVG(aggregate_rating) AS average_rating
		FROM restaurant_info
		GROUP BY city
		HAVING COUNT(*) < $1 AND AVG(aggregate_rating) > $2
		ORDER BY average_rating DESC, city
	`

	rows, err := r.pool.Query(ctx, query, maxRestaurants, minRating)
	if err != nil {
		r.logger.Error().Err(err).
			Int("max_restaurants", maxRestaurants).
			Float64("min_rating", minRating).
			Msg("failed to query expansion cities")
		return nil, fmt.Errorf("failed to query expansion cities: %w", err)
	}
	defer rows.Close()

	var results []model.CityOpportunity
	for rows.Next() {
		var row model.CityOpportunity
		if err := rows.Scan(&row.City, &row.RestaurantCount, &row.AverageRating); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan expansion city row")
			return nil, fmt.Errorf("failed to scan expansion city: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating expansion city rows")
		return nil, fmt.Errorf("error iterating expansion cities: %w", err)
	}

	return results, nil
}

// DeliveryAdoptionByCity returns the online-delivery share per city.
func (r *reportRepository) DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error) {
	query := `
		SELECT city,
		       COUNT(*) AS restaurant_count,
		       COUNT(*) FILTER (WHERE has_online_delivery) AS delivery_count,
		       (COUNT(*) FILTER (WHERE has_online_delivery))::float8 / COUNT(*) AS delivery_share
		FROM restaurant_info
		GROUP BY city
		ORDER BY delivery_share DESC, city
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query delivery adoption")
		return nil, fmt.Errorf("failed to query delivery adoption: %w", err)
	}
	defer rows.Close()

	var results []model.CityDeliveryShare
	for rows.Next() {
		var row model.CityDeliveryShare
		if err := rows.Scan(&row.City, &row.RestaurantCount, &row.DeliveryCount, &row.DeliveryShare); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan delivery adoption row")
			return nil, fmt.Errorf("failed to scan delivery adoption: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating delivery adoption rows")
		return nil, fmt.Errorf("error iterating delivery adoption: %w", err)
	}

	return results, nil
}

// RatingDistribution aggregates restaurants by their categorical rating text.
func (r *reportRepository) RatingDistribution(ctx context.Context) ([]model.RatingBucket, error) {
	query := `
		SELECT rating_text,
		       COUNT(*) AS restaurant_count,
		       AVG(votes)::float8 AS average_votes
		FROM restaurant_info
		GROUP BY rating_text
		ORDER BY restaurant_count DESC, rating_text
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query rating distribution")
		return nil, fmt.Errorf("failed to query rating distribution: %w", err)
	}
	defer rows.Close()

	var results []model.RatingBucket
	for rows.Next() {
		var row model.RatingBucket
		if err := rows.Scan(&row.RatingText, &row.RestaurantCount, &row.AverageVotes); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan rating bucket row")
			return nil, fmt.Errorf("failed to scan rating bucket: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating rating bucket rows")
		return nil, fmt.Errorf("error iterating rating buckets: %w", err)
	}

	return results, nil
}

// UnpivotedCuisines returns the full derived (restaurant, cuisine) relation.
func (r *reportRepository) UnpivotedCuisines(ctx context.Context) ([]model.UnpivotedCuisineRow, error) {
	query := `
		SELECT restaurant_id, cuisine
		FROM unpivot_cuisines()
		ORDER BY restaurant_id, cuisine
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query unpivoted cuisines")
		return nil, fmt.Errorf("failed to query unpivoted cuisines: %w", err)
	}
	defer rows.Close()

	var results []model.UnpivotedCuisineRow
	for rows.Next() {
		var row model.UnpivotedCuisineRow
		if err := rows.Scan(&row.RestaurantID, &row.Cuisine); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan unpivoted cuisine row")
			return nil, fmt.Errorf("failed to scan unpivoted cuisine: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating unpivoted cuisine rows")
		return nil, fmt.Errorf("error iterating unpivoted cuisines: %w", err)
	}

	return results, nil
}
