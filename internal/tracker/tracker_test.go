package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/ashureev/devtrack/internal/domain"
)

// memRepo is an in-memory store.Repository for tests. It mirrors the real
// store's contract: appends assign id and timestamp, day queries return
// insertion order, recent queries return the newest insertion first.
type memRepo struct {
	web     []domain.WebVisit
	apps    []domain.AppUsage
	history []domain.HistoryEntry
	nextID  int64
	failing bool
}

var errStoreDown = errors.New("storage unavailable")

func (m *memRepo) Migrate(ctx context.Context) error { return nil }

func (m *memRepo) AppendWeb(ctx context.Context, visit *domain.WebVisit) (int64, error) {
	if m.failing {
		return 0, errStoreDown
	}
	m.nextID++
	visit.ID = m.nextID
	visit.Timestamp = time.Now()
	m.web = append(m.web, *visit)
	m.history = append(m.history, domain.HistoryEntry{
		Type: domain.HistoryTypeWeb, Name: visit.URL, Title: visit.Title, Domain: visit.Domain,
		Duration: visit.Duration, Category: visit.Category, Timestamp: visit.Timestamp,
	})
	return visit.ID, nil
}

func (m *memRepo) AppendApp(ctx context.Context, usage *domain.AppUsage) (int64, error) {
	if m.failing {
		return 0, errStoreDown
	}
	m.nextID++
	usage.ID = m.nextID
	usage.Timestamp = time.Now()
	m.apps = append(m.apps, *usage)
	m.history = append(m.history, domain.HistoryEntry{
		Type: domain.HistoryTypeApp, Name: usage.AppName,
		Duration: usage.Duration, Category: usage.Category, Timestamp: usage.Timestamp,
	})
	return usage.ID, nil
}

func (m *memRepo) QueryDayWeb(ctx context.Context, day time.Time) ([]domain.WebVisit, error) {
	if m.failing {
		return nil, errStoreDown
	}
	var out []domain.WebVisit
	for _, v := range m.web {
		if sameDay(v.Timestamp, day) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memRepo) QueryDayApps(ctx context.Context, day time.Time) ([]domain.AppUsage, error) {
	if m.failing {
		return nil, errStoreDown
	}
	var out []domain.AppUsage
	for _, u := range m.apps {
		if sameDay(u.Timestamp, day) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memRepo) QueryRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if m.failing {
		return nil, errStoreDown
	}
	if limit <= 0 {
		limit = 50
	}
	out := make([]domain.HistoryEntry, 0, limit)
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.history[i])
	}
	return out, nil
}

func (m *memRepo) Ping(ctx context.Context) error {
	if m.failing {
		return errStoreDown
	}
	return nil
}

func (m *memRepo) Close() error { return nil }

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
