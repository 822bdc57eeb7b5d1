// Package database provides connection management and query execution for
// PostgreSQL.
//
// Manager owns the connection lifecycle: either a bounded pgxpool pool or a
// single connection, selected by configuration. Executor layers uniform
// query, batch, and COPY operations on top of scoped connections acquired
// from a Manager. No other package holds a connection beyond the scope of
// one operation.
package database
