package transform

import "resto-insights/internal/model"

// Split partitions cleaned rows into the two persisted record sets. Every
// input row yields exactly one RestaurantRecord and one CuisineRecord sharing
// the restaurant identifier; nothing is duplicated or dropped here.
func Split(rows []CleanedRow) ([]model.RestaurantRecord, []model.CuisineRecord) {
	restaurants := make([]model.RestaurantRecord, 0, len(rows))
	cuisines := make([]model.CuisineRecord, 0, len(rows))

	for _, row := range rows {
		restaurants = append(restaurants, model.RestaurantRecord{
			RestaurantID:      row.RestaurantID,
			Name:              row.Name,
			City:              row.City,
			Locality:          row.Locality,
			Latitude:          row.Latitude,
			Longitude:         row.Longitude,
			AverageCostForTwo: row.AverageCostForTwo,
			HasTableBooking:   row.HasTableBooking,
			HasOnlineDelivery: row.HasOnlineDelivery,
			PriceRange:        row.PriceRange,
			AggregateRating:   row.AggregateRating,
			RatingText:        row.RatingText,
			Votes:             row.Votes,
		})

		cuisines = append(cuisines, model.CuisineRecord{
			RestaurantID: row.RestaurantID,
			Cuisines:     row.Cuisines,
		})
	}

	return restaurants, cuisines
}
