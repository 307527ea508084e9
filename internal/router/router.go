package router

import (
	"net/http"

	"resto-insights/internal/handler"
	"resto-insights/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router for the read-only report API.
func New(reportHandler *handler.ReportHandler, apiKey string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/reports/top-cuisines", reportHandler.TopCuisinesByCity)
	mux.HandleFunc("/api/reports/specialty-restaurants", reportHandler.SpecialtyRestaurants)
	mux.HandleFunc("/api/reports/top-cuisine", reportHandler.MostCommonCuisine)
	mux.HandleFunc("/api/reports/expansion-cities", reportHandler.ExpansionCities)
	mux.HandleFunc("/api/reports/delivery-adoption", reportHandler.DeliveryAdoptionByCity)
	mux.HandleFunc("/api/reports/rating-distribution", reportHandler.RatingDistribution)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
