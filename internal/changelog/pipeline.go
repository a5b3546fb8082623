package changelog

import (
	"fmt"
	"io"
	"os"
)

// Generate runs the full pipeline over raw log lines: parse, normalize to
// oldest-first, segment and categorize. It is total over its input; an
// empty or entirely malformed log yields Notes with no segments.
func Generate(lines []string, opts Options) *Notes {
	commits := ParseLines(lines)
	notes := FromCommits(commits, opts)
	notes.Dropped = len(lines) - len(commits)
	return notes
}

// FromCommits runs normalization and segmentation over already parsed commits
// given in the declared input order.
func FromCommits(commits []Commit, opts Options) *Notes {
	opts = opts.withDefaults()

	ordered, warnings := Normalize(commits, opts.Order)
	segments, skipped, segWarnings := BuildSegments(ordered, opts)

	notes := &Notes{
		Segments: segments,
		Parsed:   len(commits),
		Skipped:  skipped,
		Warnings: append(warnings, segWarnings...),
	}
	if len(ordered) > 0 {
		notes.OldestHash = ordered[0].Hash
		notes.NewestHash = ordered[len(ordered)-1].Hash
	}
	return notes
}

// GenerateFromReader reads a log from r and runs the pipeline.
func GenerateFromReader(r io.Reader, opts Options) (*Notes, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Generate(lines, opts), nil
}

// Load reads the log file at path and runs the pipeline.
func Load(path string, opts Options) (*Notes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening commit log: %w", err)
	}
	defer f.Close()

	return GenerateFromReader(f, opts)
}
