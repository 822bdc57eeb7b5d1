package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rmoran/housing-data/internal/config"
)

func testDBConfig(mode string) config.DBConfig {
	return config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "testdb",
		User:     "testuser",
		Password: "testpass",
		Mode:     mode,
		MinConns: 1,
		MaxConns: 4,
	}
}

func TestAcquireBeforeConnect(t *testing.T) {
	for _, mode := range []string{config.ModePool, config.ModeSingle} {
		t.Run(mode, func(t *testing.T) {
			m := NewManager(testDBConfig(mode), nil)
			_, err := m.Acquire(context.Background())
			if !errors.Is(err, ErrNotConnected) {
				t.Errorf("Acquire() error = %v, want ErrNotConnected", err)
			}
		})
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	m := NewManager(testDBConfig(config.ModePool), nil)

	// Never connected: Disconnect must be a no-op, repeatedly.
	for i := 0; i < 3; i++ {
		if err := m.Disconnect(context.Background()); err != nil {
			t.Fatalf("Disconnect() #%d error = %v", i+1, err)
		}
	}

	if m.Connected() {
		t.Error("Connected() = true after Disconnect")
	}
}

func TestExecutorBeforeConnect(t *testing.T) {
	m := NewManager(testDBConfig(config.ModePool), nil)
	e := NewExecutor(m, nil)
	ctx := context.Background()

	if _, err := e.Exec(ctx, "SELECT 1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Exec() error = %v, want ErrNotConnected", err)
	}
	if err := e.ExecMany(ctx, "SELECT 1", [][]any{{1}}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ExecMany() error = %v, want ErrNotConnected", err)
	}
	if _, err := e.FetchAll(ctx, "SELECT 1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("FetchAll() error = %v, want ErrNotConnected", err)
	}
	if _, err := e.CopyFrom(ctx, "t", []string{"c"}, [][]any{{1}}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("CopyFrom() error = %v, want ErrNotConnected", err)
	}
}

func TestExecManyEmptyInput(t *testing.T) {
	// An empty arg set must not touch the connection at all.
	m := NewManager(testDBConfig(config.ModePool), nil)
	e := NewExecutor(m, nil)

	if err := e.ExecMany(context.Background(), "SELECT 1", nil); err != nil {
		t.Errorf("ExecMany(empty) error = %v, want nil", err)
	}
}

func TestSingleModeAcquireBlocksUntilRelease(t *testing.T) {
	m := NewManager(testDBConfig(config.ModeSingle), nil)

	// Seed the connected state directly; the blocking contract does not
	// depend on a live server.
	m.state = stateConnected
	m.single = make(chan struct{}, 1)
	m.single <- struct{}{}

	first, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	// A second acquire must block, not error.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("blocked Acquire error = %v, want context.DeadlineExceeded", err)
	}

	// Releasing unblocks exactly one waiter.
	done := make(chan struct{})
	go func() {
		defer close(done)
		c, err := m.Acquire(context.Background())
		if err != nil {
			t.Errorf("waiter Acquire failed: %v", err)
			return
		}
		c.Release()
	}()

	first.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter never unblocked after Release")
	}
}

func TestConnReleaseIdempotent(t *testing.T) {
	calls := 0
	c := &Conn{release: func() { calls++ }}

	c.Release()
	c.Release()
	c.Release()

	if calls != 1 {
		t.Errorf("release called %d times, want 1", calls)
	}
}
