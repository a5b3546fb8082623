package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	Features:      {Color: color.New(color.FgGreen), Icon: "✓"},
	BugFixes:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Improvements:  {Color: color.New(color.FgBlue), Icon: "~"},
	Documentation: {Color: color.New(color.FgCyan), Icon: "✎"},
	Maintenance:   {Color: color.New(color.FgMagenta), Icon: "⚙"},
	Other:         {Color: color.New(color.FgWhite), Icon: "•"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatNotes writes every rendered version to w with terminal styling,
// newest first.
func FormatNotes(n *Notes, w io.Writer, opts FormatOptions) error {
	versions := n.Versions()
	if len(versions) == 0 {
		_, err := fmt.Fprintln(w, "No release notes found.")
		return err
	}

	for i := range versions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatVersion(&versions[i], w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", versions[i].Label, err)
		}
	}

	return nil
}

// FormatVersion writes a single version's entries to the writer.
func FormatVersion(s *Segment, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(s.Label, s.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, cat := range RenderOrder() {
		entries := s.Changes[cat]
		if len(entries) == 0 {
			continue
		}
		if err := writeCategorySection(cat, entries, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(label, date string, w io.Writer, opts FormatOptions) error {
	header := label
	if date != "" {
		header = fmt.Sprintf("%s (%s)", label, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(cat Category, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[cat]

	if err := writeCategoryHeader(cat, style, w, opts); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(cat Category, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", cat)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(string(cat)))
	return err
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := entry.Message + " (" + entry.Hash + ")"

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatSummary returns a one-line description of the generated notes.
func FormatSummary(n *Notes) string {
	return fmt.Sprintf("%d commits parsed, %d versions, %d entries, %d merges skipped",
		n.Parsed, len(n.Versions()), n.EntryCount(), n.Skipped)
}
