package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"resto-insights/internal/export"
	"resto-insights/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportRepository is a mock implementation of repository.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) TopCuisinesByCity(ctx context.Context, maxRank int) ([]model.CityCuisineRank, error) {
	args := m.Called(ctx, maxRank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityCuisineRank), args.Error(1)
}

func (m *MockReportRepository) SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SpecialtyRestaurant), args.Error(1)
}

func (m *MockReportRepository) MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CuisineCount), args.Error(1)
}

func (m *MockReportRepository) ExpansionCities(ctx context.Context, maxRestaurants int, minRating float64) ([]model.CityOpportunity, error) {
	args := m.Called(ctx, maxRestaurants, minRating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityOpportunity), args.Error(1)
}

func (m *MockReportRepository) DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityDeliveryShare), args.Error(1)
}

func (m *MockReportRepository) RatingDistribution(ctx context.Context) ([]model.RatingBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingBucket), args.Error(1)
}

func (m *MockReportRepository) UnpivotedCuisines(ctx context.Context) ([]model.UnpivotedCuisineRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UnpivotedCuisineRow), args.Error(1)
}

func TestReportService_TopCuisinesByCity_UsesRankCutoff(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	repo.On("TopCuisinesByCity", ctx, 3).Return([]model.CityCuisineRank{
		{City: "New Delhi", Cuisine: "North Indian", RestaurantCount: 10, Rank: 1},
	}, nil)

	svc := NewReportService(repo, export.NewWriter(t.TempDir(), zerolog.Nop()), zerolog.Nop())

	results, err := svc.TopCuisinesByCity(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "North Indian", results[0].Cuisine)
	repo.AssertExpectations(t)
}

func TestReportService_ExpansionCities_UsesThresholds(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	repo.On("ExpansionCities", ctx, 10, 4.0).Return([]model.CityOpportunity{}, nil)

	svc := NewReportService(repo, export.NewWriter(t.TempDir(), zerolog.Nop()), zerolog.Nop())

	results, err := svc.ExpansionCities(ctx)
	require.NoError(t, err)
	assert.Empty(t, results, "an empty result set is a valid outcome")
	repo.AssertExpectations(t)
}

func TestReportService_MostCommonCuisine_EmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	repo.On("MostCommonCuisine", ctx).Return(nil, nil)

	svc := NewReportService(repo, export.NewWriter(t.TempDir(), zerolog.Nop()), zerolog.Nop())

	result, err := svc.MostCommonCuisine(ctx)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReportService_ExportAll(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := new(MockReportRepository)

	repo.On("TopCuisinesByCity", ctx, 3).Return([]model.CityCuisineRank{
		{City: "New Delhi", Cuisine: "North Indian", RestaurantCount: 10, Rank: 1},
		{City: "New Delhi", Cuisine: "Chinese", RestaurantCount: 10, Rank: 1},
		{City: "New Delhi", Cuisine: "Mughlai", RestaurantCount: 5, Rank: 2},
	}, nil)
	repo.On("SpecialtyRestaurants", ctx).Return([]model.SpecialtyRestaurant{
		{RestaurantID: 42, Name: "Solo", City: "Agra", Cuisine: "Mughlai"},
	}, nil)
	repo.On("MostCommonCuisine", ctx).Return(&model.CuisineCount{Cuisine: "North Indian", RestaurantCount: 120}, nil)
	repo.On("ExpansionCities", ctx, 10, 4.0).Return([]model.CityOpportunity{}, nil)
	repo.On("DeliveryAdoptionByCity", ctx).Return([]model.CityDeliveryShare{
		{City: "Mumbai", RestaurantCount: 8, DeliveryCount: 4, DeliveryShare: 0.5},
	}, nil)
	repo.On("RatingDistribution", ctx).Return([]model.RatingBucket{
		{RatingText: "Excellent", RestaurantCount: 12, AverageVotes: 640.5},
	}, nil)

	svc := NewReportService(repo, export.NewWriter(dir, zerolog.Nop()), zerolog.Nop())

	paths, err := svc.ExportAll(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	for _, path := range paths {
		_, err := os.Stat(path)
		assert.NoError(t, err, "report file %s must exist", path)
	}

	topCuisines, err := os.ReadFile(filepath.Join(dir, "top_cuisines_by_city.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(topCuisines), "city,cuisine,restaurant_count,rank")
	assert.Contains(t, string(topCuisines), "New Delhi,North Indian,10,1")

	// Empty result set still produces a header-only file.
	expansion, err := os.ReadFile(filepath.Join(dir, "expansion_cities.csv"))
	require.NoError(t, err)
	assert.Equal(t, "city,restaurant_count,average_rating\n", string(expansion))
}

func TestReportService_ExportAll_PropagatesQueryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	repo.On("TopCuisinesByCity", ctx, 3).Return(nil, assert.AnError)

	svc := NewReportService(repo, export.NewWriter(t.TempDir(), zerolog.Nop()), zerolog.Nop())

	_, err := svc.ExportAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
