package database

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConnected is returned when an operation is attempted before
// Connect, or after Disconnect. This is a programming error in the caller.
var ErrNotConnected = errors.New("database: not connected")

// ConnectError indicates the database was unreachable or rejected the
// configured credentials. It aborts the run; no automatic retry.
type ConnectError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// QueryError carries the failing statement alongside the driver diagnostic.
// Malformed statements and constraint violations both surface here.
type QueryError struct {
	Stmt string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q: %v", stmtSummary(e.Stmt), e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// stmtSummary collapses whitespace and truncates long statements so error
// messages stay log-friendly.
func stmtSummary(stmt string) string {
	s := strings.Join(strings.Fields(stmt), " ")
	const max = 120
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
