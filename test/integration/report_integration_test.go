package integration

import (
	"context"
	"testing"

	"resto-insights/internal/model"
	"resto-insights/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewReportRepository(testDB.Pool, zerolog.Nop())

	t.Run("top cuisines use dense ranking on ties", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedSingleCuisineCity(t, testDB.Pool, 1000, 10, "New Delhi", "North Indian", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 2000, 10, "New Delhi", "Chinese", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 3000, 5, "New Delhi", "Mughlai", 4.0)

		ranks, err := repo.TopCuisinesByCity(ctx, 3)
		require.NoError(t, err)
		require.Len(t, ranks, 3)

		assert.Equal(t, model.CityCuisineRank{City: "New Delhi", Cuisine: "Chinese", RestaurantCount: 10, Rank: 1}, ranks[0])
		assert.Equal(t, model.CityCuisineRank{City: "New Delhi", Cuisine: "North Indian", RestaurantCount: 10, Rank: 1}, ranks[1])
		assert.Equal(t, model.CityCuisineRank{City: "New Delhi", Cuisine: "Mughlai", RestaurantCount: 5, Rank: 2}, ranks[2])
	})

	t.Run("rank cutoff keeps all tied rows", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedSingleCuisineCity(t, testDB.Pool, 1000, 4, "Goa", "Goan", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 2000, 3, "Goa", "Seafood", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 3000, 3, "Goa", "Continental", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 4000, 2, "Goa", "Cafe", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 5000, 1, "Goa", "Desserts", 4.0)

		ranks, err := repo.TopCuisinesByCity(ctx, 3)
		require.NoError(t, err)

		// Ranks are 1, 2, 2, 3: four cuisines survive the cutoff, the
		// fifth (rank 4) does not.
		require.Len(t, ranks, 4)
		assert.Equal(t, 3, ranks[3].Rank)
		for _, r := range ranks {
			assert.NotEqual(t, "Desserts", r.Cuisine)
		}
	})

	t.Run("specialty restaurants serve exactly one cuisine", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedRestaurants(t, testDB.Pool,
			[]model.RestaurantRecord{
				{RestaurantID: 1, Name: "Single Origin", City: "Pune", PriceRange: 2, RatingText: "Good"},
				{RestaurantID: 2, Name: "Fusion Corner", City: "Pune", PriceRange: 2, RatingText: "Good"},
			},
			[]model.CuisineRecord{
				{RestaurantID: 1, Cuisines: [model.CuisineSlots]string{"Maharashtrian"}},
				{RestaurantID: 2, Cuisines: [model.CuisineSlots]string{"Chinese", "Thai"}},
			},
		)

		specials, err := repo.SpecialtyRestaurants(ctx)
		require.NoError(t, err)
		require.Len(t, specials, 1)
		assert.Equal(t, int64(1), specials[0].RestaurantID)
		assert.Equal(t, "Maharashtrian", specials[0].Cuisine)
	})

	t.Run("most common cuisine ties break alphabetically", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedSingleCuisineCity(t, testDB.Pool, 1000, 7, "Chennai", "South Indian", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 2000, 7, "Kochi", "Kerala", 4.0)
		seedSingleCuisineCity(t, testDB.Pool, 3000, 2, "Chennai", "Chettinad", 4.0)

		top, err := repo.MostCommonCuisine(ctx)
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, "Kerala", top.Cuisine)
		assert.Equal(t, 7, top.RestaurantCount)
	})

	t.Run("most common cuisine on empty store", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		top, err := repo.MostCommonCuisine(ctx)
		require.NoError(t, err)
		assert.Nil(t, top)
	})

	t.Run("expansion cities need few listings and high ratings", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedSingleCuisineCity(t, testDB.Pool, 1000, 5, "Shimla", "Himachali", 4.5)
		seedSingleCuisineCity(t, testDB.Pool, 2000, 20, "Gurgaon", "North Indian", 4.5)
		seedSingleCuisineCity(t, testDB.Pool, 3000, 5, "Agra", "Mughlai", 3.5)

		cities, err := repo.ExpansionCities(ctx, 10, 4.0)
		require.NoError(t, err)
		require.Len(t, cities, 1)
		assert.Equal(t, "Shimla", cities[0].City)
		assert.Equal(t, 5, cities[0].RestaurantCount)
		assert.InDelta(t, 4.5, cities[0].AverageRating, 0.0001)
	})

	t.Run("boundary values stay outside the expansion report", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		// Exactly 10 restaurants: the count bound is strict.
		seedSingleCuisineCity(t, testDB.Pool, 1000, 10, "Jaipur", "Rajasthani", 4.8)
		// Exactly 4.0 average: the rating bound is strict too.
		seedSingleCuisineCity(t, testDB.Pool, 2000, 3, "Indore", "Street Food", 4.0)

		cities, err := repo.ExpansionCities(ctx, 10, 4.0)
		require.NoError(t, err)
		assert.Empty(t, cities)
	})

	t.Run("delivery adoption counts online delivery per city", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedRestaurants(t, testDB.Pool,
			[]model.RestaurantRecord{
				{RestaurantID: 1, Name: "A", City: "Mumbai", PriceRange: 1, RatingText: "Good", HasOnlineDelivery: true},
				{RestaurantID: 2, Name: "B", City: "Mumbai", PriceRange: 1, RatingText: "Good", HasOnlineDelivery: false},
				{RestaurantID: 3, Name: "C", City: "Mumbai", PriceRange: 1, RatingText: "Good", HasOnlineDelivery: true},
				{RestaurantID: 4, Name: "D", City: "Mumbai", PriceRange: 1, RatingText: "Good", HasOnlineDelivery: true},
			},
			[]model.CuisineRecord{
				{RestaurantID: 1, Cuisines: [model.CuisineSlots]string{"Cafe"}},
				{RestaurantID: 2, Cuisines: [model.CuisineSlots]string{"Cafe"}},
				{RestaurantID: 3, Cuisines: [model.CuisineSlots]string{"Cafe"}},
				{RestaurantID: 4, Cuisines: [model.CuisineSlots]string{"Cafe"}},
			},
		)

		shares, err := repo.DeliveryAdoptionByCity(ctx)
		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.Equal(t, 4, shares[0].RestaurantCount)
		assert.Equal(t, 3, shares[0].DeliveryCount)
		assert.InDelta(t, 0.75, shares[0].DeliveryShare, 0.0001)
	})

	t.Run("rating distribution groups by rating text", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedRestaurants(t, testDB.Pool,
			[]model.RestaurantRecord{
				{RestaurantID: 1, Name: "A", City: "Delhi", PriceRange: 1, RatingText: "Excellent", Votes: 100},
				{RestaurantID: 2, Name: "B", City: "Delhi", PriceRange: 1, RatingText: "Excellent", Votes: 300},
				{RestaurantID: 3, Name: "C", City: "Delhi", PriceRange: 1, RatingText: "Average", Votes: 40},
			},
			[]model.CuisineRecord{
				{RestaurantID: 1, Cuisines: [model.CuisineSlots]string{"Cafe"}},
				{RestaurantID: 2, Cuisines: [model.CuisineSlots]string{"Cafe"}},
				{RestaurantID: 3, Cuisines: [model.CuisineSlots]string{"Cafe"}},
			},
		)

		buckets, err := repo.RatingDistribution(ctx)
		require.NoError(t, err)

		byText := map[string]model.RatingBucket{}
		for _, b := range buckets {
			byText[b.RatingText] = b
		}
		require.Contains(t, byText, "Excellent")
		assert.Equal(t, 2, byText["Excellent"].RestaurantCount)
		assert.InDelta(t, 200.0, byText["Excellent"].AverageVotes, 0.0001)
		assert.Equal(t, 1, byText["Average"].RestaurantCount)
	})
}
