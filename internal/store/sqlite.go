package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/devtrack/internal/domain"
	"github.com/ashureev/devtrack/internal/shared"
	_ "modernc.org/sqlite"
)

// DefaultRecentLimit is used when QueryRecent is called with limit <= 0.
const DefaultRecentLimit = 50

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository. Schema creation is a
// separate step: call Migrate before serving traffic.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Migrate creates the activity tables and indexes if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS web_activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		duration REAL NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'uncategorized',
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_web_activity_timestamp ON web_activity(timestamp);

	CREATE TABLE IF NOT EXISTS app_activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		app_name TEXT NOT NULL,
		duration REAL NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'uncategorized',
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_app_activity_timestamp ON app_activity(timestamp);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// AppendWeb stores a web visit, assigning its ID and timestamp.
func (s *SQLiteStore) AppendWeb(ctx context.Context, visit *domain.WebVisit) (int64, error) {
	visit.Duration = sanitizeDuration(visit.Duration)
	visit.Timestamp = time.Now()
	if visit.Category == "" {
		visit.Category = domain.CategoryUncategorized
	}

	query := `
		INSERT INTO web_activity (url, title, domain, duration, category, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`

	id, err := s.execInsert(ctx, query,
		visit.URL, visit.Title, visit.Domain,
		visit.Duration, string(visit.Category), visit.Timestamp.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert web activity: %w", err)
	}
	visit.ID = id
	return id, nil
}

// AppendApp stores an app usage record, assigning its ID and timestamp.
func (s *SQLiteStore) AppendApp(ctx context.Context, usage *domain.AppUsage) (int64, error) {
	usage.Duration = sanitizeDuration(usage.Duration)
	usage.Timestamp = time.Now()
	if usage.Category == "" {
		usage.Category = domain.CategoryUncategorized
	}

	query := `
		INSERT INTO app_activity (app_name, duration, category, timestamp)
		VALUES (?, ?, ?, ?)`

	id, err := s.execInsert(ctx, query,
		usage.AppName, usage.Duration, string(usage.Category), usage.Timestamp.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert app activity: %w", err)
	}
	usage.ID = id
	return id, nil
}

// execInsert runs an insert with retry on SQLITE_BUSY, returning the new
// rowid. Backoff: 100ms, 200ms, 400ms.
func (s *SQLiteStore) execInsert(ctx context.Context, query string, args ...interface{}) (int64, error) {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		result, err := s.db.ExecContext(ctx, query, args...)
		if err == nil {
			return result.LastInsertId()
		}
		lastErr = err

		if !shared.IsSQLiteConflictError(err) {
			return 0, err
		}
		if i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("insert hit SQLITE_BUSY, retrying", "attempt", i+1, "delay", delay)
			time.Sleep(delay)
		}
	}

	return 0, fmt.Errorf("insert failed after %d attempts: %w", maxRetries, lastErr)
}

// QueryDayWeb returns the web visits of the given local calendar day in
// insertion order.
func (s *SQLiteStore) QueryDayWeb(ctx context.Context, day time.Time) ([]domain.WebVisit, error) {
	start, end := dayBounds(day)
	query := `
		SELECT id, url, title, domain, duration, category, timestamp
		FROM web_activity
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query web activity: %w", err)
	}
	defer closeRows(rows, "web activity")

	var visits []domain.WebVisit
	for rows.Next() {
		var v domain.WebVisit
		var category string
		var ts int64
		if err := rows.Scan(&v.ID, &v.URL, &v.Title, &v.Domain, &v.Duration, &category, &ts); err != nil {
			return nil, fmt.Errorf("scan web activity row: %w", err)
		}
		v.Category = domain.CategoryLabel(category)
		v.Timestamp = time.Unix(0, ts)
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate web activity: %w", err)
	}
	return visits, nil
}

// QueryDayApps returns the app usage records of the given local calendar
// day in insertion order.
func (s *SQLiteStore) QueryDayApps(ctx context.Context, day time.Time) ([]domain.AppUsage, error) {
	start, end := dayBounds(day)
	query := `
		SELECT id, app_name, duration, category, timestamp
		FROM app_activity
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query app activity: %w", err)
	}
	defer closeRows(rows, "app activity")

	var usages []domain.AppUsage
	for rows.Next() {
		var u domain.AppUsage
		var category string
		var ts int64
		if err := rows.Scan(&u.ID, &u.AppName, &u.Duration, &category, &ts); err != nil {
			return nil, fmt.Errorf("scan app activity row: %w", err)
		}
		u.Category = domain.CategoryLabel(category)
		u.Timestamp = time.Unix(0, ts)
		usages = append(usages, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate app activity: %w", err)
	}
	return usages, nil
}

// QueryRecent returns the latest records of both kinds, newest first.
func (s *SQLiteStore) QueryRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT 'web' AS type, url AS name, title, domain, duration, category, timestamp, id
		FROM web_activity
		UNION ALL
		SELECT 'app' AS type, app_name AS name, '' AS title, '' AS domain, duration, category, timestamp, id
		FROM app_activity
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer closeRows(rows, "history")

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var category string
		var ts, id int64
		if err := rows.Scan(&e.Type, &e.Name, &e.Title, &e.Domain, &e.Duration, &category, &ts, &id); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Category = domain.CategoryLabel(category)
		e.Timestamp = time.Unix(0, ts)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// dayBounds returns the [start, end) instants of the local calendar day
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// sanitizeDuration coerces negative and non-finite durations to 0 rather
// than rejecting the record.
func sanitizeDuration(d float64) float64 {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Warn("failed to close rows", "query", what, "error", err)
	}
}
