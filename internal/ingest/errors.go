package ingest

import "fmt"

// PartialLoadError reports a run that stopped part-way through: chunks
// flushed before the failure stay committed, later chunks were never
// attempted, and no rollback of prior chunks happens. Callers must treat
// this as partial completion, not success.
type PartialLoadError struct {
	Entity    string // entity being loaded ("regions", "observations", "listings")
	Committed int    // rows committed before the failure
	Err       error  // cause from the persistence layer
}

func (e *PartialLoadError) Error() string {
	return fmt.Sprintf("load %s: %d rows committed before failure: %v", e.Entity, e.Committed, e.Err)
}

func (e *PartialLoadError) Unwrap() error { return e.Err }
