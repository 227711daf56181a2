package domain

// CategoryGroup is the summed usage for one category within a day.
// Visits is meaningful for web groups only and stays zero for app groups.
type CategoryGroup struct {
	Category     CategoryLabel `json:"category"`
	TotalSeconds float64       `json:"total_seconds"`
	Visits       int           `json:"visits,omitempty"`
}

// SiteUsage is one entry of the top-sites ranking. Title is the most
// recently seen title for the domain within the day.
type SiteUsage struct {
	Domain       string  `json:"domain"`
	Title        string  `json:"title"`
	TotalSeconds float64 `json:"total_seconds"`
}

// AppRank is one entry of the top-apps ranking.
type AppRank struct {
	AppName      string  `json:"app_name"`
	TotalSeconds float64 `json:"total_seconds"`
}

// InsightsSummary carries the day totals and the productivity score.
type InsightsSummary struct {
	TotalWebSeconds   float64 `json:"total_web_time_seconds"`
	TotalAppSeconds   float64 `json:"total_app_time_seconds"`
	ProductivityScore int     `json:"productivity_score"`
}

// DailyInsights is the full aggregation result for one local calendar day.
// It is derived entirely from stored records and can be recomputed at any
// time for any day.
type DailyInsights struct {
	Date           string          `json:"date"`
	Summary        InsightsSummary `json:"summary"`
	WebByCategory  []CategoryGroup `json:"web_by_category"`
	AppsByCategory []CategoryGroup `json:"apps_by_category"`
	TopSites       []SiteUsage     `json:"top_sites"`
	TopApps        []AppRank       `json:"top_apps"`
}
