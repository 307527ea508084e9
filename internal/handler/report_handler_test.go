package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resto-insights/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) TopCuisinesByCity(ctx context.Context) ([]model.CityCuisineRank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityCuisineRank), args.Error(1)
}

func (m *MockReportService) SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SpecialtyRestaurant), args.Error(1)
}

func (m *MockReportService) MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CuisineCount), args.Error(1)
}

func (m *MockReportService) ExpansionCities(ctx context.Context) ([]model.CityOpportunity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityOpportunity), args.Error(1)
}

func (m *MockReportService) DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityDeliveryShare), args.Error(1)
}

func (m *MockReportService) RatingDistribution(ctx context.Context) ([]model.RatingBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingBucket), args.Error(1)
}

func (m *MockReportService) ExportAll(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestReportHandler_TopCuisinesByCity(t *testing.T) {
	svc := new(MockReportService)
	svc.On("TopCuisinesByCity", mock.Anything).Return([]model.CityCuisineRank{
		{City: "New Delhi", Cuisine: "North Indian", RestaurantCount: 10, Rank: 1},
	}, nil)

	h := NewReportHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/top-cuisines", nil)
	w := httptest.NewRecorder()
	h.TopCuisinesByCity(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var results []model.CityCuisineRank
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, "North Indian", results[0].Cuisine)
}

func TestReportHandler_TopCuisinesByCity_MethodNotAllowed(t *testing.T) {
	h := NewReportHandler(new(MockReportService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/reports/top-cuisines", nil)
	w := httptest.NewRecorder()
	h.TopCuisinesByCity(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestReportHandler_ExpansionCities_EmptyResult(t *testing.T) {
	svc := new(MockReportService)
	svc.On("ExpansionCities", mock.Anything).Return([]model.CityOpportunity(nil), nil)

	h := NewReportHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/expansion-cities", nil)
	w := httptest.NewRecorder()
	h.ExpansionCities(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "an empty result is a valid, non-error outcome")
}

func TestReportHandler_MostCommonCuisine(t *testing.T) {
	tests := []struct {
		name           string
		result         *model.CuisineCount
		expectedStatus int
	}{
		{
			name:           "Cuisine found",
			result:         &model.CuisineCount{Cuisine: "North Indian", RestaurantCount: 120},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty store",
			result:         nil,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			svc.On("MostCommonCuisine", mock.Anything).Return(tt.result, nil)

			h := NewReportHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/reports/top-cuisine", nil)
			w := httptest.NewRecorder()
			h.MostCommonCuisine(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReportHandler_ServiceError(t *testing.T) {
	svc := new(MockReportService)
	svc.On("SpecialtyRestaurants", mock.Anything).Return(nil, assert.AnError)

	h := NewReportHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/specialty-restaurants", nil)
	w := httptest.NewRecorder()
	h.SpecialtyRestaurants(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportHandler_DeliveryAdoptionByCity(t *testing.T) {
	svc := new(MockReportService)
	svc.On("DeliveryAdoptionByCity", mock.Anything).Return([]model.CityDeliveryShare{
		{City: "Mumbai", RestaurantCount: 8, DeliveryCount: 4, DeliveryShare: 0.5},
	}, nil)

	h := NewReportHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/reports/delivery-adoption", nil)
	w := httptest.NewRecorder()
	h.DeliveryAdoptionByCity(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var results []model.CityDeliveryShare
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.InDelta(t, 0.5, results[0].DeliveryShare, 0.0001)
}
