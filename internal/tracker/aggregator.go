package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ashureev/devtrack/internal/domain"
	"github.com/ashureev/devtrack/internal/store"
)

// topEntities caps the per-day site and app rankings.
const topEntities = 10

// Aggregator derives daily insights from stored records. It holds no state
// across calls; every call re-reads the store, so insights can be recomputed
// for any day at any time.
type Aggregator struct {
	repo store.Repository
}

// NewAggregator creates an aggregator over the given repository.
func NewAggregator(repo store.Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Daily computes the insights for the local calendar day containing day.
func (a *Aggregator) Daily(ctx context.Context, day time.Time) (*domain.DailyInsights, error) {
	webRecords, err := a.repo.QueryDayWeb(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("query web records: %w", err)
	}
	appRecords, err := a.repo.QueryDayApps(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("query app records: %w", err)
	}

	webGroups := groupWebByCategory(webRecords)
	appGroups := groupAppsByCategory(appRecords)

	insights := &domain.DailyInsights{
		Date:           day.Format("2006-01-02"),
		WebByCategory:  webGroups,
		AppsByCategory: appGroups,
		TopSites:       topSites(webRecords),
		TopApps:        topApps(appRecords),
	}

	for _, g := range webGroups {
		insights.Summary.TotalWebSeconds += g.TotalSeconds
	}
	for _, g := range appGroups {
		insights.Summary.TotalAppSeconds += g.TotalSeconds
	}
	insights.Summary.ProductivityScore = productivityScore(webGroups, appGroups)

	return insights, nil
}

// groupWebByCategory sums durations and visit counts per category. Groups
// are sorted by duration descending, category ascending on ties, so output
// ordering is deterministic.
func groupWebByCategory(records []domain.WebVisit) []domain.CategoryGroup {
	byCategory := make(map[domain.CategoryLabel]*domain.CategoryGroup)
	for _, r := range records {
		g, ok := byCategory[r.Category]
		if !ok {
			g = &domain.CategoryGroup{Category: r.Category}
			byCategory[r.Category] = g
		}
		g.TotalSeconds += r.Duration
		g.Visits++
	}
	return sortGroups(byCategory)
}

// groupAppsByCategory sums durations per category; visit counts are not
// meaningful for app pulses.
func groupAppsByCategory(records []domain.AppUsage) []domain.CategoryGroup {
	byCategory := make(map[domain.CategoryLabel]*domain.CategoryGroup)
	for _, r := range records {
		g, ok := byCategory[r.Category]
		if !ok {
			g = &domain.CategoryGroup{Category: r.Category}
			byCategory[r.Category] = g
		}
		g.TotalSeconds += r.Duration
	}
	return sortGroups(byCategory)
}

func sortGroups(byCategory map[domain.CategoryLabel]*domain.CategoryGroup) []domain.CategoryGroup {
	groups := make([]domain.CategoryGroup, 0, len(byCategory))
	for _, g := range byCategory {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalSeconds != groups[j].TotalSeconds {
			return groups[i].TotalSeconds > groups[j].TotalSeconds
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// topSites ranks domains by summed duration. Records arrive in insertion
// order, so the last title seen for a domain is the most recent one.
func topSites(records []domain.WebVisit) []domain.SiteUsage {
	byDomain := make(map[string]*domain.SiteUsage)
	for _, r := range records {
		s, ok := byDomain[r.Domain]
		if !ok {
			s = &domain.SiteUsage{Domain: r.Domain}
			byDomain[r.Domain] = s
		}
		s.TotalSeconds += r.Duration
		s.Title = r.Title
	}

	sites := make([]domain.SiteUsage, 0, len(byDomain))
	for _, s := range byDomain {
		sites = append(sites, *s)
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].TotalSeconds != sites[j].TotalSeconds {
			return sites[i].TotalSeconds > sites[j].TotalSeconds
		}
		return sites[i].Domain < sites[j].Domain
	})
	if len(sites) > topEntities {
		sites = sites[:topEntities]
	}
	return sites
}

// topApps ranks applications by summed duration.
func topApps(records []domain.AppUsage) []domain.AppRank {
	byApp := make(map[string]*domain.AppRank)
	for _, r := range records {
		a, ok := byApp[r.AppName]
		if !ok {
			a = &domain.AppRank{AppName: r.AppName}
			byApp[r.AppName] = a
		}
		a.TotalSeconds += r.Duration
	}

	apps := make([]domain.AppRank, 0, len(byApp))
	for _, a := range byApp {
		apps = append(apps, *a)
	}
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].TotalSeconds != apps[j].TotalSeconds {
			return apps[i].TotalSeconds > apps[j].TotalSeconds
		}
		return apps[i].AppName < apps[j].AppName
	})
	if len(apps) > topEntities {
		apps = apps[:topEntities]
	}
	return apps
}

// productivityScore is the integer percentage of productive time over
// productive plus distraction time across both record kinds. Categories in
// neither bucket are excluded; a zero denominator yields 0.
func productivityScore(webGroups, appGroups []domain.CategoryGroup) int {
	var productive, distraction float64
	for _, groups := range [][]domain.CategoryGroup{webGroups, appGroups} {
		for _, g := range groups {
			switch {
			case g.Category.Productive():
				productive += g.TotalSeconds
			case g.Category.Distraction():
				distraction += g.TotalSeconds
			}
		}
	}

	total := productive + distraction
	if total == 0 {
		return 0
	}
	return int(100 * productive / total)
}
