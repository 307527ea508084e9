package handler

import (
	"net/http"

	"resto-insights/internal/model"
	"resto-insights/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler serves the analytical reports as JSON. All endpoints are pure
// reads; an empty result set is returned as an empty JSON array, not an error.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// TopCuisinesByCity handles GET /api/reports/top-cuisines.
func (h *ReportHandler) TopCuisinesByCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.TopCuisinesByCity(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve top cuisines", h.logger)
		return
	}
	if results == nil {
		results = []model.CityCuisineRank{}
	}

	writeJSON(w, http.StatusOK, results)
}

// SpecialtyRestaurants handles GET /api/reports/specialty-restaurants.
func (h *ReportHandler) SpecialtyRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.SpecialtyRestaurants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve specialty restaurants", h.logger)
		return
	}
	if results == nil {
		results = []model.SpecialtyRestaurant{}
	}

	writeJSON(w, http.StatusOK, results)
}

// MostCommonCuisine handles GET /api/reports/top-cuisine.
func (h *ReportHandler) MostCommonCuisine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	result, err := h.service.MostCommonCuisine(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve most common cuisine", h.logger)
		return
	}

	if result == nil {
		writeError(w, http.StatusNotFound, "no cuisines stored", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ExpansionCities handles GET /api/reports/expansion-cities.
func (h *ReportHandler) ExpansionCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.ExpansionCities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve expansion cities", h.logger)
		return
	}
	if results == nil {
		results = []model.CityOpportunity{}
	}

	writeJSON(w, http.StatusOK, results)
}

// DeliveryAdoptionByCity handles GET /api/reports/delivery-adoption.
func (h *ReportHandler) DeliveryAdoptionByCity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.DeliveryAdoptionByCity(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve delivery adoption", h.logger)
		return
	}
	if results == nil {
		results = []model.CityDeliveryShare{}
	}

	writeJSON(w, http.StatusOK, results)
}

// RatingDistribution handles GET /api/reports/rating-distribution.
func (h *ReportHandler) RatingDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.RatingDistribution(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve rating distribution", h.logger)
		return
	}
	if results == nil {
		results = []model.RatingBucket{}
	}

	writeJSON(w, http.StatusOK, results)
}
