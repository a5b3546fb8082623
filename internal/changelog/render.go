package changelog

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Banner is the first line of every generated Markdown document.
const Banner = "# Release Notes (Generated from Git History)"

// RenderMarkdown writes the release notes as Markdown, newest version first.
// Segments without entries are skipped, as are empty categories.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(n *Notes, w io.Writer) error {
	if err := renderHeader(n, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for _, s := range newestFirst(n.Segments) {
		if err := renderSegment(&s, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", s.Label, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(n *Notes) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(n, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderVersionMarkdown writes a single version section, suitable for the
// body of a GitHub release.
func RenderVersionMarkdown(s *Segment, w io.Writer) error {
	return renderSegment(s, w)
}

// renderHeader writes the banner and the range annotation.
func renderHeader(n *Notes, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n\nRange: `%s` ... `%s`\n\n", Banner, n.OldestHash, n.NewestHash)
	return err
}

// renderSegment writes one version section with its non-empty categories.
func renderSegment(s *Segment, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## %s (%s)\n\n", s.Label, s.Date); err != nil {
		return err
	}

	for _, cat := range RenderOrder() {
		entries := s.Changes[cat]
		if len(entries) == 0 {
			continue
		}
		if err := renderCategory(cat, entries, w); err != nil {
			return err
		}
	}

	return nil
}

// renderCategory writes a level-3 heading, one bullet per entry and a blank line.
func renderCategory(cat Category, entries []Entry, w io.Writer) error {
	if _, err := io.WriteString(w, "### "+string(cat)+"\n"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := io.WriteString(w, e.String()+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// newestFirst returns the non-empty segments in reverse push order.
func newestFirst(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if !s.Changes.IsEmpty() {
			out = append(out, s)
		}
	}
	slices.Reverse(out)
	return out
}
