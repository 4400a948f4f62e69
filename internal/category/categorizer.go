// Package category assigns product names to a fixed taxonomy of shopping
// categories using an ordered keyword and pattern rule table.
package category

import (
	"regexp"
	"strings"
)

// Categorizer maps free-text product names onto the taxonomy. It holds no
// mutable state and is safe for concurrent use.
type Categorizer struct {
	rules []Rule
}

// NewCategorizer returns a Categorizer backed by the default taxonomy.
func NewCategorizer() *Categorizer {
	return &Categorizer{rules: DefaultTaxonomy()}
}

// NewCategorizerWithRules returns a Categorizer over a custom rule table,
// evaluated in slice order.
func NewCategorizerWithRules(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Categorize returns the first category whose keywords or patterns match
// the product name, or the fallback when nothing fires. Keywords are
// checked against the lowercased name; patterns against the original
// casing.
func (c *Categorizer) Categorize(productName string) string {
	lower := strings.ToLower(productName)

	for _, rule := range c.rules {
		if matchesKeywords(lower, rule.Keywords) {
			return rule.Category
		}
		if matchesPatterns(productName, rule.Patterns) {
			return rule.Category
		}
	}

	return FallbackCategory
}

func matchesKeywords(lowerName string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

func matchesPatterns(name string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
