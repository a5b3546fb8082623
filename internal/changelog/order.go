package changelog

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Order describes the chronological direction of a commit sequence.
type Order string

const (
	NewestFirst  Order = "newest-first"
	OldestFirst  Order = "oldest-first"
	OrderAuto    Order = "auto"
	OrderUnknown Order = "unknown"
)

// ValidOrders returns the values accepted for the input order option.
func ValidOrders() []string {
	return []string{string(NewestFirst), string(OldestFirst), string(OrderAuto)}
}

// ParseOrder converts a configuration value to an Order.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case NewestFirst, OldestFirst, OrderAuto:
		return o, nil
	case "":
		return NewestFirst, nil
	default:
		return "", fmt.Errorf("invalid input order %q (valid: %s)", s, strings.Join(ValidOrders(), ", "))
	}
}

// dateLayouts are the date formats git commonly prints. Dates that match none
// of them make the order undetectable.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	time.RFC1123Z,
	"Mon Jan 2 15:04:05 2006 -0700",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Chronological returns a reversed copy of a newest-first sequence.
func Chronological(commits []Commit) []Commit {
	out := slices.Clone(commits)
	slices.Reverse(out)
	return out
}

// DetectOrder infers the direction of commits from their dates. It returns
// OrderUnknown when any date is unparseable, when fewer than two distinct
// dates exist, or when the dates are not monotonic.
func DetectOrder(commits []Commit) Order {
	times := make([]time.Time, 0, len(commits))
	for _, c := range commits {
		t, ok := parseDate(c.Date)
		if !ok {
			return OrderUnknown
		}
		times = append(times, t)
	}

	increasing, decreasing := false, false
	for i := 1; i < len(times); i++ {
		switch {
		case times[i].After(times[i-1]):
			increasing = true
		case times[i].Before(times[i-1]):
			decreasing = true
		}
	}

	switch {
	case increasing && !decreasing:
		return OldestFirst
	case decreasing && !increasing:
		return NewestFirst
	default:
		return OrderUnknown
	}
}

// Normalize returns commits in oldest-first processing order according to
// the declared input order.
func Normalize(commits []Commit, declared Order) ([]Commit, []Warning) {
	switch declared {
	case OldestFirst:
		return slices.Clone(commits), nil
	case OrderAuto:
		if DetectOrder(commits) == OldestFirst {
			return slices.Clone(commits), nil
		}
		return Chronological(commits), nil
	default:
		var warnings []Warning
		if DetectOrder(commits) == OldestFirst {
			warnings = append(warnings, Warning{
				Kind:    WarnSuspiciousOrder,
				Message: "log dates increase from top to bottom; input may already be oldest-first (use --order oldest-first or auto)",
			})
		}
		return Chronological(commits), warnings
	}
}
