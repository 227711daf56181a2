// Package domain contains core domain types for the DevTrack application.
package domain

// CategoryLabel is a closed-set tag expressing user intent for an activity.
// The set is fixed at compile time; runtime data never introduces new labels.
type CategoryLabel string

const (
	CategoryLearning      CategoryLabel = "learning"
	CategoryCoding        CategoryLabel = "coding"
	CategorySocial        CategoryLabel = "social"
	CategoryEntertainment CategoryLabel = "entertainment"
	CategoryNews          CategoryLabel = "news"
	CategoryShopping      CategoryLabel = "shopping"
	CategoryProductivity  CategoryLabel = "productivity"
	CategoryUncategorized CategoryLabel = "uncategorized"
)

// Labels lists every valid category label.
var Labels = []CategoryLabel{
	CategoryLearning,
	CategoryCoding,
	CategorySocial,
	CategoryEntertainment,
	CategoryNews,
	CategoryShopping,
	CategoryProductivity,
	CategoryUncategorized,
}

// Valid reports whether the label is a member of the closed set.
func (c CategoryLabel) Valid() bool {
	for _, l := range Labels {
		if c == l {
			return true
		}
	}
	return false
}

// Productive reports whether time in this category counts toward the
// productive side of the daily score.
func (c CategoryLabel) Productive() bool {
	return c == CategoryLearning || c == CategoryCoding || c == CategoryProductivity
}

// Distraction reports whether time in this category counts toward the
// distraction side of the daily score. Categories that are neither
// productive nor distraction are excluded from the score entirely.
func (c CategoryLabel) Distraction() bool {
	return c == CategoryEntertainment || c == CategorySocial
}
