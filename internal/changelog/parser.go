package changelog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// recordPattern matches "<hash> - <message> (<date>)". The message is greedy,
// so the date is always the last parenthesized group on the line.
var recordPattern = regexp.MustCompile(`^([0-9a-fA-F]+) - (.*) \((.*)\)`)

// maxLineSize bounds a single log row read by ParseReader.
const maxLineSize = 1024 * 1024

// ParseLine parses a single log row. Returns false for blank or malformed rows.
func ParseLine(line string) (Commit, bool) {
	m := recordPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Commit{}, false
	}
	return Commit{Hash: m[1], Message: m[2], Date: m[3]}, true
}

// ParseLines parses log rows in order, silently dropping rows that do not match.
// The result keeps the input order (newest first for a git log).
func ParseLines(lines []string) []Commit {
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		if c, ok := ParseLine(line); ok {
			commits = append(commits, c)
		}
	}
	return commits
}

// ParseReader reads log rows from r and parses them.
// Only read errors are returned; malformed rows are dropped.
func ParseReader(r io.Reader) ([]Commit, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines), nil
}

// readLines splits r into lines, tolerating CRLF endings.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log lines: %w", err)
	}
	return lines, nil
}
