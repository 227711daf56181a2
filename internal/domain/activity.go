package domain

import "time"

// WebVisit is one logged unit of website usage.
type WebVisit struct {
	ID        int64         `json:"id"`
	URL       string        `json:"url"`
	Title     string        `json:"title"`
	Domain    string        `json:"domain"`
	Duration  float64       `json:"duration"`
	Category  CategoryLabel `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
}

// AppUsage is one logged unit of desktop application usage.
type AppUsage struct {
	ID        int64         `json:"id"`
	AppName   string        `json:"app_name"`
	Duration  float64       `json:"duration"`
	Category  CategoryLabel `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
}

// History entry types, discriminated by Type.
const (
	HistoryTypeWeb = "web"
	HistoryTypeApp = "app"
)

// HistoryEntry is the unified shape of a record in the recent-activity feed.
// Web entries carry the URL in Name plus Title and Domain; app entries carry
// the application name in Name with Title and Domain empty.
type HistoryEntry struct {
	Type      string        `json:"type"`
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Domain    string        `json:"domain"`
	Duration  float64       `json:"duration"`
	Category  CategoryLabel `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
}
