package model

import (
	"time"

	"github.com/google/uuid"
)

// IngestRun is the audit record of a single pipeline invocation, persisted to
// ingest_runs. Dropped and truncated rows are accounted for here so that
// exclusions are recorded rather than silent.
type IngestRun struct {
	RunID              uuid.UUID `json:"runId" db:"run_id"`
	Source             string    `json:"source" db:"source"`
	Status             string    `json:"status" db:"status"`
	StartedAt          time.Time `json:"startedAt" db:"started_at"`
	FinishedAt         time.Time `json:"finishedAt" db:"finished_at"`
	RowsRead           int       `json:"rowsRead" db:"rows_read"`
	RowsIngested       int       `json:"rowsIngested" db:"rows_ingested"`
	RowsDroppedCountry int       `json:"rowsDroppedCountry" db:"rows_dropped_country"`
	RowsDroppedInvalid int       `json:"rowsDroppedInvalid" db:"rows_dropped_invalid"`
	CuisinesTruncated  int       `json:"cuisinesTruncated" db:"cuisines_truncated"`
}

// Ingest run statuses.
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)
