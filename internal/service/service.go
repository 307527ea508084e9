package service

import (
	"context"

	"resto-insights/internal/model"
)

// IngestService defines the batch pipeline: load, clean, split, persist.
type IngestService interface {
	// Migrate ensures the reporting schema exists.
	Migrate(ctx context.Context) error

	// Run executes the pipeline once against the dataset at source and
	// returns the audit record of the run.
	Run(ctx context.Context, source string) (*model.IngestRun, error)
}

// ReportService defines the analytical reports over the persisted store.
// Every method is a pure read.
type ReportService interface {
	// TopCuisinesByCity returns the three most common cuisines per city,
	// dense-ranked.
	TopCuisinesByCity(ctx context.Context) ([]model.CityCuisineRank, error)

	// SpecialtyRestaurants returns restaurants serving exactly one cuisine.
	SpecialtyRestaurants(ctx context.Context) ([]model.SpecialtyRestaurant, error)

	// MostCommonCuisine returns the nationally most common cuisine, or nil
	// when the store is empty.
	MostCommonCuisine(ctx context.Context) (*model.CuisineCount, error)

	// ExpansionCities returns cities with few restaurants and high ratings.
	ExpansionCities(ctx context.Context) ([]model.CityOpportunity, error)

	// DeliveryAdoptionByCity returns online-delivery share per city.
	DeliveryAdoptionByCity(ctx context.Context) ([]model.CityDeliveryShare, error)

	// RatingDistribution aggregates restaurants by rating text.
	RatingDistribution(ctx context.Context) ([]model.RatingBucket, error)

	// ExportAll writes every report as a CSV file and returns the paths.
	ExportAll(ctx context.Context) ([]string, error)
}
