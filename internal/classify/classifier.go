// Package classify maps activity text to a category label using an ordered
// keyword rule table.
package classify

import (
	"net/url"
	"strings"

	"github.com/ashureev/devtrack/internal/domain"
)

// Classifier assigns category labels by substring matching against its rule
// table. The table is fixed at construction; classification is pure and
// never fails.
type Classifier struct {
	rules []Rule
}

// New creates a classifier over the given rule table. The slice is used
// as-is; callers must not mutate it afterwards.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the first category in table order with any keyword that
// is a substring of the lower-cased text. Empty text, or text matching no
// keyword, yields uncategorized.
func (c *Classifier) Classify(text string) domain.CategoryLabel {
	lowered := strings.ToLower(text)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Category
			}
		}
	}

	return domain.CategoryUncategorized
}

// ClassifyWeb classifies a page visit from its URL and title combined.
func (c *Classifier) ClassifyWeb(rawURL, title string) domain.CategoryLabel {
	return c.Classify(rawURL + " " + title)
}

// ExtractDomain derives the domain shown in rankings from a raw URL: the
// lower-cased host with any "www." prefix stripped. If the URL does not
// parse or has no host, the input is returned verbatim.
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return rawURL
	}
	return strings.TrimPrefix(host, "www.")
}
