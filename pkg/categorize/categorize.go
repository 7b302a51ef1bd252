// Package categorize assigns a bookkeeping category to a transaction
// description using an ordered rule table. Rules are data, not code: each
// rule pairs a set of keywords with a category, and the first rule with a
// matching keyword wins.
package categorize

import "strings"

// Uncategorized is returned when no rule matches.
const Uncategorized = "UNCATEGORIZED"

// Rule maps keywords to a category. Keyword matching is a case-insensitive
// substring test against the description.
type Rule struct {
	Keywords []string
	Category string
}

// Categorizer evaluates rules in order.
type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer over the given rule table.
func New(rules []Rule) *Categorizer {
	return &Categorizer{rules: rules}
}

// Default returns a Categorizer with the stock rule table for Swedish SME
// bank feeds.
func Default() *Categorizer {
	return New([]Rule{
		{Keywords: []string{"hyra", "rent"}, Category: "RENT"},
		{Keywords: []string{"lön", "salary", "payroll"}, Category: "SALARIES"},
		{Keywords: []string{"skatteverket", "tax", "moms"}, Category: "TAXES"},
		{Keywords: []string{"invoice", "faktura"}, Category: "SALES"},
		{Keywords: []string{"office", "kontor", "supplies"}, Category: "OFFICE_SUPPLIES"},
		{Keywords: []string{"insurance", "försäkring"}, Category: "INSURANCE"},
		{Keywords: []string{"bank", "avgift", "fee"}, Category: "BANK_FEES"},
	})
}

// Categorize returns the category of the first matching rule, or
// Uncategorized when nothing matches.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return Uncategorized
}
