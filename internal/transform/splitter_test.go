package transform

import (
	"testing"

	"resto-insights/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_OneRecordPairPerRow(t *testing.T) {
	rows := []CleanedRow{
		{
			RestaurantID:      1,
			Name:              "First",
			City:              "New Delhi",
			Cuisines:          [model.CuisineSlots]string{"North Indian", "Chinese", "Mughlai"},
			AverageCostForTwo: 850,
			PriceRange:        3,
			AggregateRating:   4.2,
			RatingText:        "Very Good",
			Votes:             1203,
		},
		{
			RestaurantID: 2,
			Name:         "Second",
			City:         "Mumbai",
			Cuisines:     [model.CuisineSlots]string{"Seafood"},
		},
	}

	restaurants, cuisines := Split(rows)

	require.Len(t, restaurants, len(rows), "no row may be dropped or duplicated")
	require.Len(t, cuisines, len(rows))

	for i := range rows {
		assert.Equal(t, rows[i].RestaurantID, restaurants[i].RestaurantID)
		assert.Equal(t, rows[i].RestaurantID, cuisines[i].RestaurantID,
			"record pair must share the identifier")
		assert.Equal(t, rows[i].Cuisines, cuisines[i].Cuisines)
	}

	assert.Equal(t, "First", restaurants[0].Name)
	assert.Equal(t, 850, restaurants[0].AverageCostForTwo)
	assert.Equal(t, "Very Good", restaurants[0].RatingText)
}

func TestSplit_Empty(t *testing.T) {
	restaurants, cuisines := Split(nil)

	assert.Empty(t, restaurants)
	assert.Empty(t, cuisines)
}

func TestCuisineRecord_NonEmptyCuisines(t *testing.T) {
	record := model.CuisineRecord{
		RestaurantID: 7,
		Cuisines:     [model.CuisineSlots]string{"North Indian", "Chinese", "Mughlai"},
	}

	assert.Equal(t, []string{"North Indian", "Chinese", "Mughlai"}, record.NonEmptyCuisines())
}
