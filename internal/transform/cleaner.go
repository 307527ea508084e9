package transform

import (
	"fmt"
	"strconv"
	"strings"

	"resto-insights/internal/dataset"
	"resto-insights/internal/model"

	"github.com/rs/zerolog"
)

// requiredColumns are the source columns the cleaner projects, keyed by their
// normalized names. A dataset missing any of these cannot be ingested.
var requiredColumns = []string{
	"restaurant_id",
	"restaurant_name",
	"city",
	"locality",
	"latitude",
	"longitude",
	"cuisines",
	"average_cost_for_two",
	"has_table_booking",
	"has_online_delivery",
	"price_range",
	"aggregate_rating",
	"rating_text",
	"votes",
	"country_code",
}

// DroppedColumns are known low-value columns in the raw export that the
// cleaner never projects. Listed for documentation and testing; their absence
// from the input is not an error.
var DroppedColumns = []string{
	"address",
	"currency",
	"rating_color",
	"is_delivering_now",
	"switch_to_order_menu",
}

// Report accounts for every row the cleaner saw and every exclusion it made,
// so drops and truncations are recorded rather than silent.
type Report struct {
	RowsRead           int
	RowsKept           int
	RowsDroppedCountry int
	RowsDroppedInvalid int
	CuisinesTruncated  int
}

// CleanedRow is one source row after filtering, renaming, typing, and cuisine
// splitting. Cuisine slots preserve source order; unused slots are empty.
type CleanedRow struct {
	RestaurantID      int64
	Name              string
	City              string
	Locality          string
	Latitude          float64
	Longitude         float64
	Cuisines          [model.CuisineSlots]string
	AverageCostForTwo int
	HasTableBooking   bool
	HasOnlineDelivery bool
	PriceRange        int
	AggregateRating   float64
	RatingText        string
	Votes             int
}

// Cleaner filters raw dataset rows to the target country and reshapes them
// into CleanedRows. The country filter is supplied at construction rather
// than hardcoded in the transform.
type Cleaner struct {
	targetCountryCode string
	logger            zerolog.Logger
}

// NewCleaner creates a cleaner that keeps only rows matching targetCountryCode.
func NewCleaner(targetCountryCode string, logger zerolog.Logger) *Cleaner {
	return &Cleaner{
		targetCountryCode: targetCountryCode,
		logger:            logger.With().Str("component", "cleaner").Logger(),
	}
}

// Clean transforms a raw table into cleaned rows. Rows from other countries
// and rows with missing or unparsable required fields are dropped and counted;
// a bad row never fails the whole run. A missing required column does.
func (c *Cleaner) Clean(table *dataset.Table) ([]CleanedRow, *Report, error) {
	columns := make(map[string]int, len(table.Headers))
	for i, header := range table.Headers {
		columns[NormalizeHeader(header)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("column %q: %w", name, model.ErrMissingColumn)
		}
	}

	report := &Report{}
	cleaned := make([]CleanedRow, 0, len(table.Rows))

	for i, row := range table.Rows {
		report.RowsRead++

		country := cell(row, columns["country_code"])
		if country != c.targetCountryCode {
			report.RowsDroppedCountry++
			continue
		}

		cleanedRow, truncated, err := c.cleanRow(row, columns)
		if err != nil {
			report.RowsDroppedInvalid++
			c.logger.Warn().
				Err(err).
				Int("row", i+2).
				Msg("dropping invalid row")
			continue
		}

		if truncated > 0 {
			report.CuisinesTruncated += truncated
			c.logger.Warn().
				Int64("restaurant_id", cleanedRow.RestaurantID).
				Int("discarded", truncated).
				Msg("truncated excess cuisines")
		}

		report.RowsKept++
		cleaned = append(cleaned, *cleanedRow)
	}

	c.logger.Info().
		Int("rows_read", report.RowsRead).
		Int("rows_kept", report.RowsKept).
		Int("dropped_country", report.RowsDroppedCountry).
		Int("dropped_invalid", report.RowsDroppedInvalid).
		Int("cuisines_truncated", report.CuisinesTruncated).
		Msg("dataset cleaned")

	return cleaned, report, nil
}

// cleanRow parses one raw row. It returns the number of cuisine names
// discarded when the listing carried more than the slot capacity.
func (c *Cleaner) cleanRow(row []string, columns map[string]int) (*CleanedRow, int, error) {
	id, err := strconv.ParseInt(cell(row, columns["restaurant_id"]), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid restaurant_id: %w", err)
	}

	name := cell(row, columns["restaurant_name"])
	if name == "" {
		return nil, 0, fmt.Errorf("missing restaurant_name")
	}

	city := cell(row, columns["city"])
	if city == "" {
		return nil, 0, fmt.Errorf("missing city")
	}

	cuisines, truncated := splitCuisines(cell(row, columns["cuisines"]))
	if cuisines[0] == "" {
		return nil, 0, fmt.Errorf("missing cuisines")
	}

	latitude, err := parseFloat(cell(row, columns["latitude"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid latitude: %w", err)
	}

	longitude, err := parseFloat(cell(row, columns["longitude"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid longitude: %w", err)
	}

	cost, err := strconv.Atoi(cell(row, columns["average_cost_for_two"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid average_cost_for_two: %w", err)
	}

	tableBooking, err := parseYesNo(cell(row, columns["has_table_booking"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid has_table_booking: %w", err)
	}

	onlineDelivery, err := parseYesNo(cell(row, columns["has_online_delivery"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid has_online_delivery: %w", err)
	}

	priceRange, err := strconv.Atoi(cell(row, columns["price_range"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid price_range: %w", err)
	}
	if priceRange < 1 || priceRange > 4 {
		return nil, 0, fmt.Errorf("price_range out of range: %d", priceRange)
	}

	rating, err := parseFloat(cell(row, columns["aggregate_rating"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid aggregate_rating: %w", err)
	}

	votes, err := strconv.Atoi(cell(row, columns["votes"]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid votes: %w", err)
	}

	return &CleanedRow{
		RestaurantID:      id,
		Name:              name,
		City:              city,
		Locality:          cell(row, columns["locality"]),
		Latitude:          latitude,
		Longitude:         longitude,
		Cuisines:          cuisines,
		AverageCostForTwo: cost,
		HasTableBooking:   tableBooking,
		HasOnlineDelivery: onlineDelivery,
		PriceRange:        priceRange,
		AggregateRating:   rating,
		RatingText:        cell(row, columns["rating_text"]),
		Votes:             votes,
	}, truncated, nil
}

// NormalizeHeader rewrites a raw column name to lowercase_with_underscores.
func NormalizeHeader(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(header))
	normalized = strings.Join(strings.Fields(normalized), "_")
	return normalized
}

// splitCuisines splits the comma-delimited cuisines text into positional
// slots, preserving source order. Returns the slots and how many cuisine
// names were discarded beyond the slot capacity.
func splitCuisines(text string) ([model.CuisineSlots]string, int) {
	var slots [model.CuisineSlots]string

	next := 0
	truncated := 0
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if next == model.CuisineSlots {
			truncated++
			continue
		}
		slots[next] = name
		next++
	}

	return slots, truncated
}

// cell returns the trimmed value at index, or "" for short rows.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// parseFloat parses a float field, treating empty as zero. Some exports leave
// geocoordinates and ratings blank for unlisted restaurants.
func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// parseYesNo parses the export's Yes/No boolean columns.
func parseYesNo(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, nil
	}
	return false, fmt.Errorf("not a yes/no value: %q", value)
}
