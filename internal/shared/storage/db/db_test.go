package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// pingFailures makes the next N pings through the test driver fail.
var pingFailures atomic.Int32

type testDriver struct{}

func (testDriver) Open(string) (driver.Conn, error) { return testConn{}, nil }

type testConn struct{}

func (testConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (testConn) Close() error                        { return nil }
func (testConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }
func (testConn) Ping(context.Context) error {
	if pingFailures.Add(-1) >= 0 {
		return errors.New("connection refused")
	}
	pingFailures.Store(0)
	return nil
}

var registerOnce sync.Once

func withTestDriver(t *testing.T, failures int32) {
	t.Helper()
	registerOnce.Do(func() { sql.Register("dbtest", testDriver{}) })
	pingFailures.Store(failures)
	prev := openDB
	openDB = func(_, dsn string) (*sql.DB, error) { return sql.Open("dbtest", dsn) }
	t.Cleanup(func() {
		openDB = prev
		pingFailures.Store(0)
	})
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")
	t.Setenv("DB_PING_ATTEMPTS", "not-a-number")

	opts := OptionsFromEnv(DefaultServerOptions())
	want := Options{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     time.Second,
		PingAttempts:    3,
		RetryDelay:      time.Second,
	}
	if opts != want {
		t.Fatalf("unexpected options:\n got %+v\nwant %+v", opts, want)
	}
}

func TestConnectAppliesPoolOptions(t *testing.T) {
	withTestDriver(t, 0)

	opts := DefaultServerOptions()
	opts.MaxOpenConns = 7
	pool, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer pool.Close()
	if got := pool.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}
}

func TestConnectRetriesPing(t *testing.T) {
	withTestDriver(t, 2)

	opts := DefaultServerOptions()
	opts.RetryDelay = time.Millisecond
	pool, err := Connect(context.Background(), "ignored", opts)
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	pool.Close()
}

func TestConnectGivesUpAfterAttempts(t *testing.T) {
	withTestDriver(t, 5)

	_, err := Connect(context.Background(), "ignored", DefaultMigrateOptions())
	if err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestConnectWrapsOpenError(t *testing.T) {
	prev := openDB
	openDB = func(string, string) (*sql.DB, error) { return nil, driver.ErrBadConn }
	defer func() { openDB = prev }()

	_, err := Connect(context.Background(), "ignored", DefaultMigrateOptions())
	if !errors.Is(err, driver.ErrBadConn) {
		t.Fatalf("expected wrapped ErrBadConn, got %v", err)
	}
}

func TestDefaultMigrateOptionsUseSingleConnection(t *testing.T) {
	opts := DefaultMigrateOptions()
	if opts.MaxOpenConns != 1 || opts.PingAttempts != 1 {
		t.Fatalf("unexpected migrate options %+v", opts)
	}
}
