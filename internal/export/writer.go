package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Writer writes report result sets as CSV files into a fixed output
// directory, one file per report, for consumption by the dashboard tool.
type Writer struct {
	dir    string
	logger zerolog.Logger
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string, logger zerolog.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logger.With().Str("component", "csv-export").Logger(),
	}
}

// Write stores one result set as <name>.csv with a header row. An empty
// result set produces a header-only file, which is a valid outcome.
func (w *Writer) Write(name string, headers []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		w.logger.Error().Err(err).Str("file", path).Msg("failed to create report file")
		return "", fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row for %s: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report %s: %w", name, err)
	}

	w.logger.Info().
		Str("report", name).
		Str("file", path).
		Int("rows", len(rows)).
		Msg("report exported")

	return path, nil
}
