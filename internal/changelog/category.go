package changelog

import (
	"regexp"
	"strings"
)

// Rule maps a set of conventional-commit prefixes to a category.
type Rule struct {
	Category Category
	Prefixes []string
	strip    *regexp.Regexp
}

// NewRule builds a rule whose strip pattern removes the prefix, an optional
// parenthesized scope, an optional breaking-change marker and the colon.
func NewRule(category Category, prefixes ...string) Rule {
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(p))
	}
	pattern := `(?i)^(?:` + strings.Join(quoted, "|") + `)(?:\([^)]*\))?!?:\s*`
	return Rule{
		Category: category,
		Prefixes: prefixes,
		strip:    regexp.MustCompile(pattern),
	}
}

// Matches reports whether message starts with one of the rule's prefixes, ignoring case.
func (r Rule) Matches(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range r.Prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Strip removes the conventional-commit header from message.
// A message that would become empty is returned unchanged.
func (r Rule) Strip(message string) string {
	stripped := r.strip.ReplaceAllString(message, "")
	if strings.TrimSpace(stripped) == "" {
		return message
	}
	return stripped
}

// DefaultRules returns the prefix table in priority order.
func DefaultRules() []Rule {
	return []Rule{
		NewRule(Features, "feat"),
		NewRule(BugFixes, "fix"),
		NewRule(Documentation, "docs"),
		NewRule(Improvements, "style", "refactor", "perf", "test"),
		NewRule(Maintenance, "build", "ci", "chore"),
	}
}

// Categorizer assigns messages to categories using an ordered rule table.
// The first matching rule wins; unmatched messages fall into Other.
type Categorizer struct {
	rules []Rule
}

// NewCategorizer returns a categorizer over rules, or DefaultRules when rules is empty.
func NewCategorizer(rules ...Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Categorizer{rules: rules}
}

// Categorize returns the category of message and the message with its header stripped.
func (c *Categorizer) Categorize(message string) (Category, string) {
	for _, r := range c.rules {
		if r.Matches(message) {
			return r.Category, r.Strip(message)
		}
	}
	return Other, message
}
