package database

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"
)

// ErrRunLockHeld is returned when another process already holds the lock
// for the same task name.
var ErrRunLockHeld = fmt.Errorf("run lock is held by another process")

// PostgresRunLock guards a maintenance task against overlapping runs using
// a session-scoped Postgres advisory lock keyed on the task name. The lock
// is tied to a dedicated connection so that Release unlocks the same session
// that acquired it.
type PostgresRunLock struct {
	db   *sql.DB
	key  int64
	conn *sql.Conn
}

func NewPostgresRunLock(db *sql.DB, taskName string) *PostgresRunLock {
	h := fnv.New64a()
	h.Write([]byte(taskName))
	return &PostgresRunLock{db: db, key: int64(h.Sum64())}
}

// Acquire takes the advisory lock, returning ErrRunLockHeld without blocking
// if another session holds it.
func (l *PostgresRunLock) Acquire(ctx context.Context) error {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("error obtaining connection for run lock: %w", err)
	}

	var acquired bool
	if err := conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, l.key).Scan(&acquired); err != nil {
		conn.Close()
		return fmt.Errorf("error acquiring run lock: %w", err)
	}
	if !acquired {
		conn.Close()
		return ErrRunLockHeld
	}

	l.conn = conn
	return nil
}

// releaseTimeout bounds the unlock round-trip when Release runs with a
// detached context.
const releaseTimeout = 10 * time.Second

// Release unlocks and returns the connection to the pool. Safe to call only
// after a successful Acquire. The caller's context may already be expired
// when the run it guarded failed by timeout, so the unlock runs under a
// fresh context; otherwise the session would go back to the pool still
// holding the lock.
func (l *PostgresRunLock) Release(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	defer func() {
		l.conn.Close()
		l.conn = nil
	}()

	unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if _, err := l.conn.ExecContext(unlockCtx, `SELECT pg_advisory_unlock($1)`, l.key); err != nil {
		return fmt.Errorf("error releasing run lock: %w", err)
	}
	return nil
}
