package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
)

// lockStub stands in for a Postgres session: it answers the advisory-lock
// query with a canned result and records every statement it executes.
type lockStub struct {
	tryLockResult bool
	queries       []string
	execs         []string
}

func (s *lockStub) sawUnlock() bool {
	for _, q := range s.execs {
		if strings.Contains(q, "pg_advisory_unlock") {
			return true
		}
	}
	return false
}

type stubDriver struct{ state *lockStub }

func (d *stubDriver) Open(name string) (driver.Conn, error) {
	return &stubConn{state: d.state}, nil
}

type stubConn struct{ state *lockStub }

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{query: query, state: c.state}, nil
}
func (c *stubConn) Close() error              { return nil }
func (c *stubConn) Begin() (driver.Tx, error) { return nil, driver.ErrSkip }

type stubStmt struct {
	query string
	state *lockStub
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.state.execs = append(s.state.execs, s.query)
	return driver.RowsAffected(0), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.state.queries = append(s.state.queries, s.query)
	return &stubRows{value: s.state.tryLockResult}, nil
}

type stubRows struct {
	value bool
	done  bool
}

func (r *stubRows) Columns() []string { return []string{"pg_try_advisory_lock"} }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.value
	return nil
}

func newStubDB(t *testing.T, state *lockStub) *sql.DB {
	t.Helper()
	name := "runlock_stub_" + t.Name()
	sql.Register(name, &stubDriver{state: state})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("opening stub database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunLock_AcquireAndRelease(t *testing.T) {
	state := &lockStub{tryLockResult: true}
	lock := NewPostgresRunLock(newStubDB(t, state), "crm_customer_cleanup")

	ctx := context.Background()
	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if len(state.queries) != 1 || !strings.Contains(state.queries[0], "pg_try_advisory_lock") {
		t.Errorf("expected one try-lock query, got %v", state.queries)
	}
	if !state.sawUnlock() {
		t.Errorf("expected an unlock statement, got %v", state.execs)
	}
}

func TestRunLock_HeldByAnotherSession(t *testing.T) {
	state := &lockStub{tryLockResult: false}
	lock := NewPostgresRunLock(newStubDB(t, state), "crm_customer_cleanup")

	err := lock.Acquire(context.Background())
	if !errors.Is(err, ErrRunLockHeld) {
		t.Fatalf("expected ErrRunLockHeld, got %v", err)
	}
	if state.sawUnlock() {
		t.Error("a failed acquire must not unlock anything")
	}
}

func TestRunLock_ReleaseAfterCallerContextExpiry(t *testing.T) {
	state := &lockStub{tryLockResult: true}
	lock := NewPostgresRunLock(newStubDB(t, state), "crm_customer_cleanup")

	ctx, cancel := context.WithCancel(context.Background())
	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}

	// A run that dies by timeout releases with its already-expired
	// context; the unlock must still reach the server, or the pooled
	// session keeps the lock.
	cancel()
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("Release after caller context expiry returned error: %v", err)
	}
	if !state.sawUnlock() {
		t.Errorf("expected an unlock statement, got %v", state.execs)
	}
}

func TestRunLock_ReleaseWithoutAcquireIsNoop(t *testing.T) {
	state := &lockStub{tryLockResult: true}
	lock := NewPostgresRunLock(newStubDB(t, state), "crm_customer_cleanup")

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("Release without Acquire returned error: %v", err)
	}
	if len(state.execs) != 0 {
		t.Errorf("expected no statements, got %v", state.execs)
	}
}
