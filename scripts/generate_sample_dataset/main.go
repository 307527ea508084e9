package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates a small sample dataset exercising every ingest path: the country
// filter, the 8-slot cuisine split, truncation, and invalid-row drops.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	headers := []string{
		"Restaurant ID", "Restaurant Name", "Country Code", "City", "Address",
		"Locality", "Longitude", "Latitude", "Cuisines", "Average Cost for two",
		"Currency", "Has Table booking", "Has Online delivery", "Is delivering now",
		"Switch to order menu", "Price range", "Aggregate rating", "Rating color",
		"Rating text", "Votes",
	}

	rows := [][]string{
		// Ordinary listings in the target country (code 1)
		{"3400025", "Jahanpanah", "1", "New Delhi", "7 Local Market", "Hauz Khas", "77.2090", "28.6139", "North Indian, Chinese, Mughlai", "850", "Indian Rupees(Rs.)", "Yes", "No", "No", "No", "3", "4.2", "Green", "Very Good", "1203"},
		{"3400123", "Biryani Mahal", "1", "Lucknow", "12 Hazratganj", "Hazratganj", "80.9462", "26.8467", "Mughlai", "400", "Indian Rupees(Rs.)", "No", "Yes", "No", "No", "2", "4.6", "Dark Green", "Excellent", "845"},
		// A listing with more cuisines than slots; the tail gets truncated
		{"3400200", "Fusion Junction", "1", "Mumbai", "5 Linking Road", "Bandra", "72.8777", "19.0760", "North Indian, Chinese, Thai, Italian, Mexican, Lebanese, Continental, Japanese, Korean, Burmese", "1200", "Indian Rupees(Rs.)", "Yes", "Yes", "No", "No", "4", "4.0", "Green", "Very Good", "2210"},
		// Wrong country; dropped by the filter
		{"6100052", "The Gallery Cafe", "189", "Colombo", "1 Alfred House Rd", "Kollupitiya", "79.8612", "6.9271", "Cafe, European", "3000", "Sri Lankan Rupee(LKR)", "No", "No", "No", "No", "3", "4.4", "Green", "Very Good", "515"},
		// Missing restaurant ID; dropped and counted
		{"", "No Name Dhaba", "1", "Amritsar", "GT Road", "Putlighar", "74.8723", "31.6340", "Punjabi", "250", "Indian Rupees(Rs.)", "No", "No", "No", "No", "1", "3.9", "Yellow", "Good", "97"},
	}

	path := filepath.Join(dataDir, "restaurants.csv")
	if err := writeCSV(path, headers, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d rows\n", path, len(rows))
	fmt.Println("Expected ingest outcome with TARGET_COUNTRY_CODE=1:")
	fmt.Println("  - 3 rows ingested")
	fmt.Println("  - 1 row dropped (country filter)")
	fmt.Println("  - 1 row dropped (missing restaurant ID)")
	fmt.Println("  - 2 cuisine names truncated (Fusion Junction)")
}

func writeCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
