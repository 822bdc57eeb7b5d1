package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmoran/housing-data/internal/config"
)

// state tracks the manager lifecycle: Disconnected -> Connecting ->
// Connected -> Disconnected. Connecting is transient and falls back to
// Disconnected on error.
type state int

const (
	stateDisconnected state = iota
	stateConnecting
	stateConnected
)

// querier is the subset of pgx connection methods the Executor needs.
// Both *pgx.Conn and *pgxpool.Conn satisfy it.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Conn is a scoped connection handle. Callers must Release it when the
// enclosing operation completes; Release is safe to call more than once.
type Conn struct {
	querier
	release func()
}

// Release returns the connection to its owner.
func (c *Conn) Release() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// Manager owns the database connection for a run: either a bounded
// connection pool or a single connection, per config. It is the only
// component that manipulates pool membership.
type Manager struct {
	cfg    config.DBConfig
	logger *slog.Logger

	mu    sync.Mutex
	state state
	pool  *pgxpool.Pool
	conn  *pgx.Conn

	// Serializes callers in single-connection mode. Holds one token while
	// connected; Acquire takes it, Release puts it back.
	single chan struct{}
}

// NewManager creates a Manager in the Disconnected state.
func NewManager(cfg config.DBConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{cfg: cfg, logger: logger}
}

// Connect establishes the pool or single connection and verifies it with a
// ping. On failure the manager returns to Disconnected; it does not retry.
// Connect on an already-connected manager is a no-op.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateConnected {
		return nil
	}
	m.state = stateConnecting

	connStr := BuildConnString(m.cfg)

	if m.cfg.Mode == config.ModeSingle {
		conn, err := pgx.Connect(ctx, connStr)
		if err != nil {
			m.state = stateDisconnected
			return &ConnectError{Host: m.cfg.Host, Port: m.cfg.Port, Err: err}
		}
		if err := conn.Ping(ctx); err != nil {
			_ = conn.Close(ctx)
			m.state = stateDisconnected
			return &ConnectError{Host: m.cfg.Host, Port: m.cfg.Port, Err: err}
		}
		m.conn = conn
		m.single = make(chan struct{}, 1)
		m.single <- struct{}{}
		m.state = stateConnected
		m.logger.Info("database connection established",
			"host", m.cfg.Host,
			"database", m.cfg.Name,
		)
		return nil
	}

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		m.state = stateDisconnected
		return &ConnectError{Host: m.cfg.Host, Port: m.cfg.Port, Err: fmt.Errorf("parse connection string: %w", err)}
	}

	poolCfg.MinConns = int32(m.cfg.MinConns)
	poolCfg.MaxConns = int32(m.cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		m.state = stateDisconnected
		return &ConnectError{Host: m.cfg.Host, Port: m.cfg.Port, Err: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		m.state = stateDisconnected
		return &ConnectError{Host: m.cfg.Host, Port: m.cfg.Port, Err: err}
	}

	m.pool = pool
	m.state = stateConnected
	m.logger.Info("connection pool initialized",
		"host", m.cfg.Host,
		"database", m.cfg.Name,
		"min_conns", m.cfg.MinConns,
		"max_conns", m.cfg.MaxConns,
	)
	return nil
}

// Disconnect closes the pool or connection. It is idempotent and must be
// reachable on every exit path, including after a mid-pipeline failure.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != stateConnected {
		return nil
	}

	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
		m.logger.Info("connection pool closed")
	} else if m.conn != nil {
		if err := m.conn.Close(ctx); err != nil {
			m.logger.Warn("error closing connection", "error", err)
		}
		m.conn = nil
		m.single = nil
		m.logger.Info("database connection closed")
	}

	m.state = stateDisconnected
	return nil
}

// Connected reports whether the manager is in the Connected state.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateConnected
}

// Acquire returns a scoped connection handle. In pooled mode it blocks
// until a connection is free (backpressure by blocking, cancellable via
// ctx); in single mode it blocks until the one connection is free. Returns
// ErrNotConnected before Connect.
func (m *Manager) Acquire(ctx context.Context) (*Conn, error) {
	m.mu.Lock()
	if m.state != stateConnected {
		m.mu.Unlock()
		return nil, ErrNotConnected
	}
	pool, conn, single := m.pool, m.conn, m.single
	m.mu.Unlock()

	if pool != nil {
		pc, err := pool.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire connection: %w", err)
		}
		return &Conn{querier: pc, release: pc.Release}, nil
	}

	select {
	case <-single:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Conn{querier: conn, release: func() { single <- struct{}{} }}, nil
}
