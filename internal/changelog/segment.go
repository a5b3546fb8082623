package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// Default placeholder labels for segments not named by a version bump.
const (
	DefaultSeedLabel       = "Baseline"
	DefaultUnreleasedLabel = "Unreleased / Next"
	DefaultLatestLabel     = "Latest (Post-release)"
)

var (
	bumpPattern    = regexp.MustCompile(`(?i)(?:v\d+\.\d+\.\d+|version to \d+\.\d+\.\d+|bump.*?version.*?to \d+\.\d+\.\d+)`)
	versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?`)
)

// Options configures segmentation and categorization.
type Options struct {
	// SeedLabel names the segment that is open before the first bump.
	SeedLabel string
	// UnreleasedLabel names segments opened after a bump.
	UnreleasedLabel string
	// LatestLabel names the trailing segment when it holds entries.
	LatestLabel string
	// DefaultBranches lists branches whose merges are discarded as noise.
	DefaultBranches []string
	// Order declares the direction of the input log.
	Order Order
	// Rules overrides the category prefix table.
	Rules []Rule
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		SeedLabel:       DefaultSeedLabel,
		UnreleasedLabel: DefaultUnreleasedLabel,
		LatestLabel:     DefaultLatestLabel,
		DefaultBranches: []string{"main"},
		Order:           NewestFirst,
	}
}

// withDefaults fills empty fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SeedLabel == "" {
		o.SeedLabel = d.SeedLabel
	}
	if o.UnreleasedLabel == "" {
		o.UnreleasedLabel = d.UnreleasedLabel
	}
	if o.LatestLabel == "" {
		o.LatestLabel = d.LatestLabel
	}
	if o.DefaultBranches == nil {
		o.DefaultBranches = d.DefaultBranches
	}
	if o.Order == "" {
		o.Order = d.Order
	}
	return o
}

// DetectBump reports whether message announces a new release version.
// The returned label is the first dotted version number in the message with
// a "v" prefix, or empty when none could be extracted.
func DetectBump(message string) (bool, string) {
	if !bumpPattern.MatchString(message) {
		return false, ""
	}
	num := versionPattern.FindString(message)
	if num == "" {
		return true, ""
	}
	return true, "v" + num
}

// IsMergeNoise reports whether message is a trivial merge of one of the
// default branches.
func IsMergeNoise(message string, branches []string) bool {
	if !strings.HasPrefix(strings.ToLower(message), "merge") {
		return false
	}
	for _, b := range branches {
		if strings.Contains(message, "Merge branch '"+b+"'") ||
			strings.Contains(message, "Merge branch 'origin/"+b+"'") {
			return true
		}
	}
	return false
}

// segmenter is the fold state: one open segment plus the closed ones.
type segmenter struct {
	opts       Options
	categorize *Categorizer
	current    *Segment
	closed     []Segment
	skipped    int
	warnings   []Warning
}

func newSegmenter(opts Options, firstDate string) *segmenter {
	return &segmenter{
		opts:       opts,
		categorize: NewCategorizer(opts.Rules...),
		current:    newSegment(opts.SeedLabel, firstDate),
	}
}

// absorb processes one commit in chronological order.
func (s *segmenter) absorb(c Commit) {
	bump, label := DetectBump(c.Message)

	if IsMergeNoise(c.Message, s.opts.DefaultBranches) {
		s.skipped++
		return
	}

	cat, msg := s.categorize.Categorize(c.Message)
	s.current.Changes[cat] = append(s.current.Changes[cat], Entry{Message: msg, Hash: c.Hash})

	if bump {
		s.closeWith(c, label)
	}
}

// closeWith attributes the bump commit c to the open segment, pushes it and
// opens an unreleased one. An empty label keeps the current one.
func (s *segmenter) closeWith(c Commit, label string) {
	if label != "" {
		s.current.Label = label
	} else {
		s.warnings = append(s.warnings, Warning{
			Kind:    WarnUnlabeledBump,
			Hash:    c.Hash,
			Message: fmt.Sprintf("version bump without a version number, keeping label %q", s.current.Label),
		})
	}
	s.current.Date = c.Date
	s.current.Released = true
	s.closed = append(s.closed, *s.current)
	s.current = newSegment(s.opts.UnreleasedLabel, c.Date)
}

// finish closes the trailing segment if it holds entries.
func (s *segmenter) finish() []Segment {
	if !s.current.Changes.IsEmpty() {
		s.current.Label = s.opts.LatestLabel
		s.closed = append(s.closed, *s.current)
	}
	s.current = nil
	return s.closed
}

// BuildSegments folds oldest-first commits into version segments, returned
// in push order. It also reports the number of commits discarded as merge
// noise and any warnings raised along the way.
func BuildSegments(commits []Commit, opts Options) ([]Segment, int, []Warning) {
	opts = opts.withDefaults()

	firstDate := ""
	if len(commits) > 0 {
		firstDate = commits[0].Date
	}

	s := newSegmenter(opts, firstDate)
	for _, c := range commits {
		s.absorb(c)
	}
	return s.finish(), s.skipped, s.warnings
}
