package changelog

import "strings"

// Commit is one parsed log row. It is created by the line parser and never
// mutated afterwards.
type Commit struct {
	Hash    string `yaml:"hash"`
	Message string `yaml:"message"`
	// Date is an opaque display token copied verbatim from the log.
	Date string `yaml:"date"`
}

// Category is one of the fixed change-type buckets.
type Category string

const (
	Features      Category = "Features"
	BugFixes      Category = "Bug Fixes"
	Documentation Category = "Documentation"
	Improvements  Category = "Improvements"
	Maintenance   Category = "Maintenance"
	Other         Category = "Other"
)

// RenderOrder returns the categories in the order they appear in rendered output.
func RenderOrder() []Category {
	return []Category{Features, BugFixes, Improvements, Documentation, Maintenance, Other}
}

// Key returns the snake_case identifier used in YAML output and CLI display.
func (c Category) Key() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), " ", "_")
}

// Entry is a single categorized change within a segment.
type Entry struct {
	Message string `yaml:"message"`
	Hash    string `yaml:"hash"`
}

// String returns the bullet line written to the Markdown document.
func (e Entry) String() string {
	return "- " + e.Message + " (" + e.Hash + ")"
}

// Changes groups entries by category. Order within a category is chronological.
type Changes map[Category][]Entry

// IsEmpty returns true if no category holds an entry.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}

// Segment is the set of changes attributed to one release window.
type Segment struct {
	Label   string
	Date    string
	Changes Changes
	// Released is true when the segment was closed by a version bump commit.
	Released bool
}

func newSegment(label, date string) *Segment {
	return &Segment{
		Label:   label,
		Date:    date,
		Changes: make(Changes),
	}
}

// Entries returns every entry of the segment in render order.
func (s *Segment) Entries() []Entry {
	entries := make([]Entry, 0, s.Changes.Count())
	for _, cat := range RenderOrder() {
		entries = append(entries, s.Changes[cat]...)
	}
	return entries
}

// WarningKind identifies a recoverable condition met while generating notes.
type WarningKind string

const (
	// WarnUnlabeledBump marks a bump commit whose version number could not be extracted.
	WarnUnlabeledBump WarningKind = "unlabeled_bump"
	// WarnSuspiciousOrder marks a log whose dates suggest it is already oldest-first.
	WarnSuspiciousOrder WarningKind = "suspicious_order"
)

// Warning is a recoverable condition surfaced to the caller instead of failing the run.
type Warning struct {
	Kind    WarningKind
	Hash    string
	Message string
}

func (w Warning) String() string {
	if w.Hash != "" {
		return w.Message + " (" + w.Hash + ")"
	}
	return w.Message
}

// Notes is the result of running the pipeline over a commit log.
type Notes struct {
	// Segments are in push order, oldest release first.
	Segments []Segment
	// OldestHash and NewestHash name the ends of the input range.
	OldestHash string
	NewestHash string
	// Parsed is the number of commits that matched the record shape.
	Parsed int
	// Dropped is the number of input lines that were blank or malformed.
	Dropped int
	// Skipped is the number of commits discarded as merge noise.
	Skipped  int
	Warnings []Warning
}
