package model

// CuisineSlots is the fixed number of positional cuisine columns persisted
// per restaurant. Listings carrying more cuisines are truncated on ingest.
const CuisineSlots = 8

// RestaurantRecord is one restaurant listing as persisted in restaurant_info.
// Records are written once at ingest time and never mutated.
type RestaurantRecord struct {
	RestaurantID      int64   `json:"restaurantId" db:"restaurant_id"`
	Name              string  `json:"name" db:"restaurant_name"`
	City              string  `json:"city" db:"city"`
	Locality          string  `json:"locality" db:"locality"`
	Latitude          float64 `json:"latitude" db:"latitude"`
	Longitude         float64 `json:"longitude" db:"longitude"`
	AverageCostForTwo int     `json:"averageCostForTwo" db:"average_cost_for_two"`
	HasTableBooking   bool    `json:"hasTableBooking" db:"has_table_booking"`
	HasOnlineDelivery bool    `json:"hasOnlineDelivery" db:"has_online_delivery"`
	PriceRange        int     `json:"priceRange" db:"price_range"`
	AggregateRating   float64 `json:"aggregateRating" db:"aggregate_rating"`
	RatingText        string  `json:"ratingText" db:"rating_text"`
	Votes             int     `json:"votes" db:"votes"`
}

// CuisineRecord holds the positional cuisine slots for one restaurant, in the
// order they appeared in the source listing. Unused slots are empty strings.
// Every RestaurantRecord has exactly one CuisineRecord and vice versa.
type CuisineRecord struct {
	RestaurantID int64                `json:"restaurantId" db:"restaurant_id"`
	Cuisines     [CuisineSlots]string `json:"cuisines"`
}

// NonEmptyCuisines returns the populated slots in source order.
func (c *CuisineRecord) NonEmptyCuisines() []string {
	out := make([]string, 0, CuisineSlots)
	for _, name := range c.Cuisines {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// UnpivotedCuisineRow is one (restaurant, cuisine) pair produced by the
// unpivot_cuisines() database function. It is derived at query time and never
// persisted as base data.
type UnpivotedCuisineRow struct {
	RestaurantID int64  `json:"restaurantId" db:"restaurant_id"`
	Cuisine      string `json:"cuisine" db:"cuisine"`
}
