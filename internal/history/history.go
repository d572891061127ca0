// Package history keeps a local journal of completed lookups in SQLite.
//
// The journal is strictly write-then-browse: entries are appended after a
// lookup finishes and read back only for display. It is never consulted to
// answer a query, so it is not a cache.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dnsq/dnsq/internal/helpers"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Journal is an append-only lookup log backed by SQLite.
// Safe for concurrent use.
type Journal struct {
	conn *sql.DB
}

// Entry is one recorded lookup.
type Entry struct {
	ID      int64
	At      time.Time
	Server  string
	Name    string
	QType   string
	RCode   string
	Answers int
	RTTMs   int64
	Err     string
}

// Open opens or creates the journal database at path and brings its schema
// up to date.
func Open(path string) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Journal{conn: conn}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// Append records one completed lookup.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.conn.ExecContext(ctx,
		`INSERT INTO lookups (at_ms, server, name, qtype, rcode, answers, rtt_ms, err)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		at.UnixMilli(), e.Server, e.Name, e.QType, e.RCode, e.Answers, e.RTTMs, e.Err,
	)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// maxRecent bounds how many entries Recent will return in one call.
const maxRecent = 1000

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	n = helpers.ClampInt(n, 1, maxRecent)
	rows, err := j.conn.QueryContext(ctx,
		`SELECT id, at_ms, server, name, qtype, rcode, answers, rtt_ms, err
		 FROM lookups ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var atMs int64
		if err := rows.Scan(&e.ID, &atMs, &e.Server, &e.Name, &e.QType, &e.RCode,
			&e.Answers, &e.RTTMs, &e.Err); err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		e.At = time.UnixMilli(atMs)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DefaultPath returns the per-user journal location, creating its parent
// directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dnsq")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
