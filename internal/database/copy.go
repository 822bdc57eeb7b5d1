package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// CopyFrom streams rows into a table using the PostgreSQL COPY protocol:
// one stream, one transaction, one commit. Either every row becomes
// visible or none do. Row order follows input order.
//
// COPY has no conflict handling, so this path targets append-heavy fact
// tables without uniqueness constraints that would reject duplicates; use
// the upsert pipeline where a conflict policy is required.
func (e *Executor) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, &QueryError{Stmt: "COPY " + table, Err: err}
	}

	start := time.Now()

	count, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, &QueryError{Stmt: "COPY " + table, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, &QueryError{Stmt: "COPY " + table, Err: err}
	}

	e.logger.Debug("copy complete",
		"table", table,
		"rows", count,
		"duration", time.Since(start),
	)
	return count, nil
}
