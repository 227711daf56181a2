package classify

import (
	"fmt"
	"os"
	"strings"

	"github.com/ashureev/devtrack/internal/domain"
	"gopkg.in/yaml.v3"
)

// Rule binds one category to the keywords that select it. Rule order and
// keyword order are significant: classification returns the first category
// whose keywords match, so a table is an ordered list, not a map.
type Rule struct {
	Category domain.CategoryLabel `yaml:"category"`
	Keywords []string             `yaml:"keywords"`
}

// DefaultRules returns the built-in category rule table.
func DefaultRules() []Rule {
	return []Rule{
		{Category: domain.CategoryLearning, Keywords: []string{
			"udemy", "coursera", "stackoverflow", "docs", "tutorial", "learn",
			"education", "course", "documentation", "mdn", "w3schools",
		}},
		{Category: domain.CategoryCoding, Keywords: []string{
			"github", "gitlab", "vscode", "replit", "codepen", "leetcode",
			"hackerrank", "code", "developer",
		}},
		{Category: domain.CategorySocial, Keywords: []string{
			"twitter", "facebook", "instagram", "linkedin", "reddit",
			"discord", "whatsapp", "telegram", "x.com",
		}},
		{Category: domain.CategoryEntertainment, Keywords: []string{
			"youtube", "netflix", "spotify", "twitch", "gaming", "movie",
			"music", "video",
		}},
		{Category: domain.CategoryNews, Keywords: []string{
			"news", "bbc", "cnn", "times", "guardian", "blog",
		}},
		{Category: domain.CategoryShopping, Keywords: []string{
			"amazon", "flipkart", "ebay", "shop", "store", "buy",
		}},
		{Category: domain.CategoryProductivity, Keywords: []string{
			"notion", "trello", "asana", "calendar", "drive", "sheets", "docs",
		}},
	}
}

// LoadRules reads a rule table from a YAML file. The file is an ordered
// list of {category, keywords} entries; list order becomes match order.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	for i := range rules {
		r := &rules[i]
		if !r.Category.Valid() || r.Category == domain.CategoryUncategorized {
			return nil, fmt.Errorf("rule %d: invalid category %q", i, r.Category)
		}
		if len(r.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, r.Category)
		}
		for j, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("rule %d (%s): empty keyword at %d", i, r.Category, j)
			}
			r.Keywords[j] = kw
		}
	}

	return rules, nil
}
