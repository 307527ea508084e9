package model

// CityCuisineRank is one row of the "top cuisines per city" report: cuisines
// dense-ranked within each city by how many restaurants serve them.
type CityCuisineRank struct {
	City            string `json:"city"`
	Cuisine         string `json:"cuisine"`
	RestaurantCount int    `json:"restaurantCount"`
	Rank            int    `json:"rank"`
}

// SpecialtyRestaurant is a restaurant serving exactly one cuisine.
type SpecialtyRestaurant struct {
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Cuisine      string `json:"cuisine"`
}

// CuisineCount is a cuisine with its national restaurant count.
type CuisineCount struct {
	Cuisine         string `json:"cuisine"`
	RestaurantCount int    `json:"restaurantCount"`
}

// CityOpportunity is a city with few restaurants but a high average rating,
// flagged as an expansion candidate.
type CityOpportunity struct {
	City            string  `json:"city"`
	RestaurantCount int     `json:"restaurantCount"`
	AverageRating   float64 `json:"averageRating"`
}

// CityDeliveryShare reports online-delivery adoption per city.
type CityDeliveryShare struct {
	City            string  `json:"city"`
	RestaurantCount int     `json:"restaurantCount"`
	DeliveryCount   int     `json:"deliveryCount"`
	DeliveryShare   float64 `json:"deliveryShare"`
}

// RatingBucket aggregates restaurants by their categorical rating text.
type RatingBucket struct {
	RatingText      string  `json:"ratingText"`
	RestaurantCount int     `json:"restaurantCount"`
	AverageVotes    float64 `json:"averageVotes"`
}
