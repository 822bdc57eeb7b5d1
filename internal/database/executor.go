package database

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Executor runs parameterized statements over connections acquired from a
// Manager. Every operation acquires its own scoped connection and releases
// it before returning; each call is its own transaction.
type Executor struct {
	mgr    *Manager
	logger *slog.Logger
}

// NewExecutor creates an Executor backed by the given Manager.
func NewExecutor(mgr *Manager, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{mgr: mgr, logger: logger}
}

// Exec runs one statement and commits, returning the affected row count.
func (e *Executor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, &QueryError{Stmt: sql, Err: err}
	}
	return tag.RowsAffected(), nil
}

// ExecReturning runs one statement and returns the first column of the
// first result row, typically from a RETURNING clause. Returns nil when
// the statement produces no rows.
func (e *Executor) ExecReturning(ctx context.Context, sql string, args ...any) (any, error) {
	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	defer rows.Close()

	var result any
	if rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Stmt: sql, Err: err}
		}
		if len(vals) > 0 {
			result = vals[0]
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	return result, nil
}

// ExecMany runs the statement once per argument set inside a single
// transaction. The whole call is all-or-nothing: a failure on any set
// rolls back every set.
func (e *Executor) ExecMany(ctx context.Context, sql string, argSets [][]any) error {
	if len(argSets) == 0 {
		return nil
	}

	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return &QueryError{Stmt: sql, Err: err}
	}

	batch := &pgx.Batch{}
	for _, args := range argSets {
		batch.Queue(sql, args...)
	}

	results := tx.SendBatch(ctx, batch)
	var execErr error
	for range argSets {
		if _, err := results.Exec(); err != nil {
			execErr = err
			break
		}
	}
	if closeErr := results.Close(); execErr == nil {
		execErr = closeErr
	}

	if execErr != nil {
		_ = tx.Rollback(ctx)
		return &QueryError{Stmt: sql, Err: execErr}
	}
	if err := tx.Commit(ctx); err != nil {
		return &QueryError{Stmt: sql, Err: err}
	}
	return nil
}

// FetchOne returns the first result row as ordered values, or nil when the
// query matches nothing.
func (e *Executor) FetchOne(ctx context.Context, sql string, args ...any) ([]any, error) {
	rows, err := e.fetch(ctx, 1, sql, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchOneNamed returns the first result row keyed by column name, or nil
// when the query matches nothing.
func (e *Executor) FetchOneNamed(ctx context.Context, sql string, args ...any) (map[string]any, error) {
	rows, err := e.fetchNamed(ctx, 1, sql, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchMany returns up to size result rows as ordered values.
func (e *Executor) FetchMany(ctx context.Context, size int, sql string, args ...any) ([][]any, error) {
	return e.fetch(ctx, size, sql, args)
}

// FetchAll returns every result row as ordered values.
func (e *Executor) FetchAll(ctx context.Context, sql string, args ...any) ([][]any, error) {
	return e.fetch(ctx, 0, sql, args)
}

// FetchAllNamed returns every result row keyed by column name.
func (e *Executor) FetchAllNamed(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return e.fetchNamed(ctx, 0, sql, args)
}

const tableExistsSQL = `
	SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`

// TableExists reports whether the table exists in the given schema
// (default "public"). A missing table is a false result, never an error.
func (e *Executor) TableExists(ctx context.Context, table, schema string) (bool, error) {
	if schema == "" {
		schema = "public"
	}
	row, err := e.FetchOne(ctx, tableExistsSQL, schema, table)
	if err != nil {
		return false, err
	}
	if len(row) == 0 {
		return false, nil
	}
	exists, _ := row[0].(bool)
	return exists, nil
}

// fetch runs a read-only query and collects up to limit rows (0 = all).
func (e *Executor) fetch(ctx context.Context, limit int, sql string, args []any) ([][]any, error) {
	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Stmt: sql, Err: err}
		}
		out = append(out, vals)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	return out, nil
}

// fetchNamed is fetch with rows keyed by column name.
func (e *Executor) fetchNamed(ctx context.Context, limit int, sql string, args []any) ([]map[string]any, error) {
	conn, err := e.mgr.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, &QueryError{Stmt: sql, Err: err}
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = vals[i]
		}
		out = append(out, row)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Stmt: sql, Err: err}
	}
	return out, nil
}
