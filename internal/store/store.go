// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/ashureev/devtrack/internal/domain"
)

// Repository defines the interface for the append-only activity log.
// Records are immutable once written; there is no update or delete path.
type Repository interface {
	// Migrate creates the schema. Run once at startup before the store
	// accepts traffic.
	Migrate(ctx context.Context) error

	// AppendWeb stores a web visit, assigning its ID and timestamp.
	// Content is never rejected; a negative or non-finite duration is
	// coerced to 0.
	AppendWeb(ctx context.Context, visit *domain.WebVisit) (int64, error)

	// AppendApp stores an app usage record, assigning its ID and timestamp.
	AppendApp(ctx context.Context, usage *domain.AppUsage) (int64, error)

	// QueryDayWeb returns the web visits of the local calendar day
	// containing day, in insertion order.
	QueryDayWeb(ctx context.Context, day time.Time) ([]domain.WebVisit, error)

	// QueryDayApps returns the app usage records of the local calendar day
	// containing day, in insertion order.
	QueryDayApps(ctx context.Context, day time.Time) ([]domain.AppUsage, error)

	// QueryRecent returns the latest records of both kinds, newest first,
	// ties broken by most recent insertion.
	QueryRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
