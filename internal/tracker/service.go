// Package tracker implements the activity tracking core: the ingestion
// service that classifies and appends records, and the aggregator that
// derives daily insights from them.
package tracker

import (
	"context"
	"fmt"

	"github.com/ashureev/devtrack/internal/classify"
	"github.com/ashureev/devtrack/internal/domain"
	"github.com/ashureev/devtrack/internal/observability"
	"github.com/ashureev/devtrack/internal/store"
)

// Service is the ingestion gateway's entry point into the core. It resolves
// a category for every incoming event and appends it to the store. Only
// storage failures propagate; malformed input degrades to defaults.
type Service struct {
	repo       store.Repository
	classifier *classify.Classifier
}

// NewService creates an ingestion service.
func NewService(repo store.Repository, classifier *classify.Classifier) *Service {
	return &Service{repo: repo, classifier: classifier}
}

// LogWeb records a website visit and returns the resolved category.
func (s *Service) LogWeb(ctx context.Context, url, title string, duration float64) (domain.CategoryLabel, error) {
	visit := &domain.WebVisit{
		URL:      url,
		Title:    title,
		Domain:   classify.ExtractDomain(url),
		Duration: duration,
		Category: s.classifier.ClassifyWeb(url, title),
	}

	if _, err := s.repo.AppendWeb(ctx, visit); err != nil {
		observability.RecordIngestFailure(domain.HistoryTypeWeb)
		return "", fmt.Errorf("append web visit: %w", err)
	}
	observability.RecordIngest(domain.HistoryTypeWeb)

	return visit.Category, nil
}

// LogApp records application usage and returns the resolved category. A
// non-empty override that names a valid label takes precedence over
// classification; unknown overrides are ignored and the app name is
// classified normally, so a stored category is always from the closed set.
func (s *Service) LogApp(ctx context.Context, appName string, duration float64, override string) (domain.CategoryLabel, error) {
	category := domain.CategoryLabel(override)
	if override == "" || !category.Valid() {
		category = s.classifier.Classify(appName)
	}

	usage := &domain.AppUsage{
		AppName:  appName,
		Duration: duration,
		Category: category,
	}

	if _, err := s.repo.AppendApp(ctx, usage); err != nil {
		observability.RecordIngestFailure(domain.HistoryTypeApp)
		return "", fmt.Errorf("append app usage: %w", err)
	}
	observability.RecordIngest(domain.HistoryTypeApp)

	return usage.Category, nil
}

// History returns the most recent records of both kinds, newest first.
// limit <= 0 falls back to the store default.
func (s *Service) History(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.QueryRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent activity: %w", err)
	}
	return entries, nil
}
