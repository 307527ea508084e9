package dataset

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"resto-insights/internal/model"

	"github.com/rs/zerolog"
)

// Table is a fully-materialized tabular dataset: one header row plus data
// rows. Row values are kept as raw strings; typing happens in the cleaner.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Loader defines the interface for reading a raw spreadsheet export.
type Loader interface {
	// Load reads a CSV export (optionally gzipped) into a Table.
	Load(ctx context.Context, path string) (*Table, error)
}

// fileLoader implements Loader for exports on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based dataset loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "dataset-loader").Logger(),
	}
}

// Load reads a CSV dataset file. Files ending in .gz are transparently
// decompressed.
func (l *fileLoader) Load(ctx context.Context, path string) (*Table, error) {
	l.logger.Info().Str("file", path).Msg("loading dataset file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open dataset file")
		return nil, fmt.Errorf("failed to open dataset file %s: %w", path, model.ErrDatasetNotFound)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	table, err := decodeCSV(ctx, reader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode dataset")
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("columns", len(table.Headers)).
		Int("rows", len(table.Rows)).
		Msg("dataset loaded successfully")

	return table, nil
}

// decodeCSV parses a CSV stream into a Table. The first record is treated as
// the header row. Spreadsheet exports are messy, so quoting is lenient and
// short records are tolerated (the cleaner drops rows it cannot use).
func decodeCSV(ctx context.Context, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, model.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, model.ErrEmptyDataset
	}

	return &Table{Headers: headers, Rows: rows}, nil
}
