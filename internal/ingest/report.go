package ingest

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one ingestion run: what was committed per entity and
// what the transform skipped. A run that failed part-way still carries
// the counts committed before the failure.
type Report struct {
	RunID        uuid.UUID
	Regions      int
	Observations int
	Listings     int
	SkippedCells int
	SkippedRows  int
	Duration     time.Duration
}

// NewReport creates a Report with a fresh run identifier.
func NewReport() Report {
	return Report{RunID: uuid.New()}
}
