package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion normalizes a version label by lowercasing it and removing
// the "v" prefix. This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// Versions returns the rendered segments, newest first.
func (n *Notes) Versions() []Segment {
	return newestFirst(n.Segments)
}

// ListVersions returns the labels of the rendered segments, newest first.
func (n *Notes) ListVersions() []string {
	versions := n.Versions()
	labels := make([]string, len(versions))
	for i, v := range versions {
		labels[i] = v.Label
	}
	return labels
}

// GetVersion retrieves a rendered segment by label.
// Accepts both "v0.6.0" and "0.6.0" formats (normalizes the input).
// Returns VersionNotFoundError if the version doesn't exist.
func (n *Notes) GetVersion(version string) (*Segment, error) {
	normalized := NormalizeVersion(version)

	versions := n.Versions()
	for i := range versions {
		if NormalizeVersion(versions[i].Label) == normalized {
			return &versions[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: n.ListVersions(),
	}
}

// GetLatestRelease returns the newest segment closed by a version bump.
// Returns nil if the log contains no bump.
func (n *Notes) GetLatestRelease() *Segment {
	versions := n.Versions()
	for i := range versions {
		if versions[i].Released {
			return &versions[i]
		}
	}
	return nil
}

// EntryCount returns the total number of entries across all segments.
func (n *Notes) EntryCount() int {
	count := 0
	for _, s := range n.Segments {
		count += s.Changes.Count()
	}
	return count
}

// ReleaseCount returns the number of segments closed by a version bump.
func (n *Notes) ReleaseCount() int {
	count := 0
	for _, s := range n.Segments {
		if s.Released {
			count++
		}
	}
	return count
}
