package service

import (
	"context"
	"fmt"
	"strconv"

	"resto-insights/internal/export"
	"resto-insights/internal/model"
	"resto-insights/internal/repository"

	"github.com/rs/zerolog"
)

// Report thresholds. The rank cutoff and the expansion criteria are fixed by
// the business questions the dashboard answers.
const (
	topCuisineMaxRank      = 3
	expansionMaxRestaurant = 10
	expansionMinRating     = 4.0
)

// reportService implements ReportService on top of the report repository.
type reportService struct {
	repo   repository.ReportRepository
	writer *export.Writer
	logger zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(repo repository.ReportRepository, writer *export.Writer, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		writer: writer,
		logger: logger.With().Str("service", "report").Logger(),
	}
}

// TopCuisinesByCity returns the three most common cuisines per city.
func (s *reportService) TopCuisinesByCity(ctx context.Context) ([]model.CityCuisineRank, error) {
	results, err := s.repo.TopCuisinesByCity(ctx, topCuisineMaxRank)
	if err != nil {
		return nil, fmt.Errorf("failed to get top cuisines by city: %w", err)
	}
	return results, nil
}

// SpecialtyRestaurants returns restaurants serving exactly one cuisine.
func (s *reportService) SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error) {
	results, err := s.repo.SpecialtyRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get specialty restaurants: %w", err)
	}
	return results, nil
}

// MostCommonCuisine returns the nationally most common cuisine.
func (s *reportService) MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error) {
	result, err := s.repo.MostCommonCuisine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get most common cuisine: %w", err)
	}
	return result, nil
}

// ExpansionCities returns cities with fewer than ten restaurants averaging a
// rating above 4.0.
func (s *reportService) ExpansionCities(ctx context.Context) ([]model.CityOpportunity, error) {
	results, err := s.repo.ExpansionCities(ctx, expansionMaxRestaurant, expansionMinRating)
	if err != nil {
		return nil, fmt.Errorf("failed to get expansion cities: %w", err)
	}
	return results, nil
}

// DeliveryAdoptionByCity returns online-delivery share per city.
func (s *reportService) DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error) {
	results, err := s.repo.DeliveryAdoptionByCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery adoption: %w", err)
	}
	return results, nil
}

// RatingDistribution aggregates restaurants by rating text.
func (s *reportService) RatingDistribution(ctx context.Context) ([]model.RatingBucket, error) {
	results, err := s.repo.RatingDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating distribution: %w", err)
	}
	return results, nil
}

// ExportAll runs every report and writes each result set as a CSV file for
// the dashboard. Empty result sets produce header-only files.
func (s *reportService) ExportAll(ctx context.Context) ([]string, error) {
	var paths []string

	topCuisines, err := s.TopCuisinesByCity(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(topCuisines))
	for _, r := range topCuisines {
		rows = append(rows, []string{r.City, r.Cuisine, strconv.Itoa(r.RestaurantCount), strconv.Itoa(r.Rank)})
	}
	path, err := s.writer.Write("top_cuisines_by_city", []string{"city", "cuisine", "restaurant_count", "rank"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	specialties, err := s.SpecialtyRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	rows = make([][]string, 0, len(specialties))
	for _, r := range specialties {
		rows = append(rows, []string{strconv.FormatInt(r.RestaurantID, 10), r.Name, r.City, r.Cuisine})
	}
	path, err = s.writer.Write("specialty_restaurants", []string{"restaurant_id", "restaurant_name", "city", "cuisine"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	topCuisine, err := s.MostCommonCuisine(ctx)
	if err != nil {
		return nil, err
	}
	rows = rows[:0]
	if topCuisine != nil {
		rows = [][]string{{topCuisine.Cuisine, strconv.Itoa(topCuisine.RestaurantCount)}}
	}
	path, err = s.writer.Write("most_common_cuisine", []string{"cuisine", "restaurant_count"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	opportunities, err := s.ExpansionCities(ctx)
	if err != nil {
		return nil, err
	}
	rows = make([][]string, 0, len(opportunities))
	for _, r := range opportunities {
		rows = append(rows, []string{r.City, strconv.Itoa(r.RestaurantCount), strconv.FormatFloat(r.AverageRating, 'f', 2, 64)})
	}
	path, err = s.writer.Write("expansion_cities", []string{"city", "restaurant_count", "average_rating"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	delivery, err := s.DeliveryAdoptionByCity(ctx)
	if err != nil {
		return nil, err
	}
	rows = make([][]string, 0, len(delivery))
	for _, r := range delivery {
		rows = append(rows, []string{r.City, strconv.Itoa(r.RestaurantCount), strconv.Itoa(r.DeliveryCount), strconv.FormatFloat(r.DeliveryShare, 'f', 4, 64)})
	}
	path, err = s.writer.Write("delivery_adoption_by_city", []string{"city", "restaurant_count", "delivery_count", "delivery_share"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	ratings, err := s.RatingDistribution(ctx)
	if err != nil {
		return nil, err
	}
	rows = make([][]string, 0, len(ratings))
	for _, r := range ratings {
		rows = append(rows, []string{r.RatingText, strconv.Itoa(r.RestaurantCount), strconv.FormatFloat(r.AverageVotes, 'f', 1, 64)})
	}
	path, err = s.writer.Write("rating_distribution", []string{"rating_text", "restaurant_count", "average_votes"}, rows)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	s.logger.Info().
		Int("reports", len(paths)).
		Msg("all reports exported")

	return paths, nil
}
