package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBump(t *testing.T) {
	tests := map[string]struct {
		message   string
		wantBump  bool
		wantLabel string
	}{
		"v-prefixed":             {message: "v1.0.0 release", wantBump: true, wantLabel: "v1.0.0"},
		"chore release":          {message: "chore: release v2.3.4", wantBump: true, wantLabel: "v2.3.4"},
		"version to":             {message: "Update version to 1.2.3", wantBump: true, wantLabel: "v1.2.3"},
		"bump phrasing":          {message: "Bump app version from 1.0 to 1.1.0", wantBump: true, wantLabel: "v1.0"},
		"pre-release suffix":     {message: "release v3.0.0-beta1", wantBump: true, wantLabel: "v3.0.0-beta1"},
		"uppercase":              {message: "RELEASE V4.5.6", wantBump: true, wantLabel: "v4.5.6"},
		"plain feature":          {message: "feat: add login", wantBump: false},
		"two part version alone": {message: "docs: mention go 1.25", wantBump: false},
		"bump without target":    {message: "bump version", wantBump: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			bump, label := DetectBump(tt.message)
			assert.Equal(t, tt.wantBump, bump)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestIsMergeNoise(t *testing.T) {
	branches := []string{"main", "master"}

	tests := map[string]struct {
		message  string
		expected bool
	}{
		"merge main":              {message: "Merge branch 'main' into dev", expected: true},
		"merge origin main":       {message: "Merge branch 'origin/main' of github.com:x/y", expected: true},
		"merge master":            {message: "Merge branch 'master'", expected: true},
		"merge feature branch":    {message: "Merge branch 'feature/login'", expected: false},
		"merge pull request":      {message: "Merge pull request #12 from x/main", expected: false},
		"lowercase merge keyword": {message: "merge branch 'main'", expected: false},
		"not a merge":             {message: "feat: Merge branch 'main' handling", expected: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMergeNoise(tt.message, branches))
		})
	}
}

func TestBuildSegments_BumpClosesSegment(t *testing.T) {
	commits := []Commit{
		{Hash: "a1b2c3", Message: "feat: add login", Date: "2024-01-01"},
		{Hash: "d4e5f6", Message: "v1.0.0 release", Date: "2024-01-02"},
	}

	segments, skipped, warnings := BuildSegments(commits, DefaultOptions())

	require.Len(t, segments, 1)
	assert.Zero(t, skipped)
	assert.Empty(t, warnings)

	s := segments[0]
	assert.Equal(t, "v1.0.0", s.Label)
	assert.Equal(t, "2024-01-02", s.Date)
	assert.True(t, s.Released)
	assert.Equal(t, []Entry{{Message: "add login", Hash: "a1b2c3"}}, s.Changes[Features])
	assert.Equal(t, []Entry{{Message: "v1.0.0 release", Hash: "d4e5f6"}}, s.Changes[Other])
}

func TestBuildSegments_OnlyDefaultBranchMerge(t *testing.T) {
	commits := []Commit{
		{Hash: "aaa111", Message: "Merge branch 'main' into dev", Date: "2024-02-01"},
	}

	segments, skipped, _ := BuildSegments(commits, DefaultOptions())

	assert.Empty(t, segments)
	assert.Equal(t, 1, skipped)
}

func TestBuildSegments_NoBumpYieldsLatest(t *testing.T) {
	commits := []Commit{
		{Hash: "aaa111", Message: "feat: one", Date: "2024-01-01"},
		{Hash: "bbb222", Message: "fix: two", Date: "2024-01-02"},
	}

	segments, _, _ := BuildSegments(commits, DefaultOptions())

	require.Len(t, segments, 1)
	assert.Equal(t, DefaultLatestLabel, segments[0].Label)
	assert.Equal(t, "2024-01-01", segments[0].Date)
	assert.False(t, segments[0].Released)
}

func TestBuildSegments_TrailingEmptySegmentDropped(t *testing.T) {
	commits := []Commit{
		{Hash: "aaa111", Message: "feat: one", Date: "2024-01-01"},
		{Hash: "bbb222", Message: "chore: release v0.1.0", Date: "2024-01-02"},
		{Hash: "ccc333", Message: "Merge branch 'main'", Date: "2024-01-03"},
	}

	segments, skipped, _ := BuildSegments(commits, DefaultOptions())

	require.Len(t, segments, 1)
	assert.Equal(t, "v0.1.0", segments[0].Label)
	assert.Equal(t, 1, skipped)
}

func TestBuildSegments_MultipleReleases(t *testing.T) {
	commits := []Commit{
		{Hash: "a01", Message: "feat: one", Date: "2024-01-01"},
		{Hash: "a02", Message: "chore: release v0.1.0", Date: "2024-01-02"},
		{Hash: "a03", Message: "fix: two", Date: "2024-01-03"},
		{Hash: "a04", Message: "Merge branch 'feature/x'", Date: "2024-01-04"},
		{Hash: "a05", Message: "chore: bump version to 0.2.0", Date: "2024-01-05"},
		{Hash: "a06", Message: "docs: three", Date: "2024-01-06"},
	}

	segments, skipped, _ := BuildSegments(commits, DefaultOptions())

	require.Len(t, segments, 3)
	assert.Zero(t, skipped)

	assert.Equal(t, "v0.1.0", segments[0].Label)
	assert.Equal(t, "v0.2.0", segments[1].Label)
	assert.Equal(t, "2024-01-05", segments[1].Date)
	assert.Equal(t, []Entry{{Message: "two", Hash: "a03"}}, segments[1].Changes[BugFixes])
	assert.Equal(t, []Entry{{Message: "Merge branch 'feature/x'", Hash: "a04"}}, segments[1].Changes[Other])
	assert.Equal(t, DefaultLatestLabel, segments[2].Label)
	assert.Equal(t, "2024-01-05", segments[2].Date)
}

func TestBuildSegments_UnlabeledBumpKeepsLabel(t *testing.T) {
	commits := []Commit{
		{Hash: "a01", Message: "feat: one", Date: "2024-01-01"},
		{Hash: "a02", Message: "release vX with v1.2.3-style tagging", Date: "2024-01-02"},
	}

	segments, _, _ := BuildSegments(commits, DefaultOptions())
	require.Len(t, segments, 1)
	assert.Equal(t, "v1.2.3-style", segments[0].Label)

	// A bump phrase whose only dotted number is absent cannot occur with the
	// default patterns, so exercise the fallback through the segmenter directly.
	s := newSegmenter(DefaultOptions().withDefaults(), "2024-01-01")
	s.current.Changes[Features] = []Entry{{Message: "one", Hash: "a01"}}
	s.closeWith(Commit{Hash: "a02", Date: "2024-01-02"}, "")

	closed := s.finish()
	require.Len(t, closed, 1)
	assert.Equal(t, DefaultSeedLabel, closed[0].Label)
	require.Len(t, s.warnings, 1)
	assert.Equal(t, WarnUnlabeledBump, s.warnings[0].Kind)
	assert.Equal(t, "a02", s.warnings[0].Hash)
}

func TestBuildSegments_CustomLabelsAndBranches(t *testing.T) {
	opts := Options{
		SeedLabel:       "Genesis",
		UnreleasedLabel: "Pending",
		LatestLabel:     "HEAD",
		DefaultBranches: []string{"trunk"},
	}
	commits := []Commit{
		{Hash: "a01", Message: "Merge branch 'main'", Date: "2024-01-01"},
		{Hash: "a02", Message: "Merge branch 'trunk'", Date: "2024-01-02"},
		{Hash: "a03", Message: "feat: x", Date: "2024-01-03"},
	}

	segments, skipped, _ := BuildSegments(commits, opts)

	require.Len(t, segments, 1)
	assert.Equal(t, "HEAD", segments[0].Label)
	assert.Equal(t, 1, skipped)
	assert.Len(t, segments[0].Changes[Other], 1)
}

func TestBuildSegments_ClosedCountEqualsBumpCount(t *testing.T) {
	var commits []Commit
	bumps := 0
	for i := 0; i < 30; i++ {
		msg := "feat: change"
		if i%7 == 6 {
			msg = "chore: release v1." + string(rune('0'+i/7)) + ".0"
			bumps++
		}
		commits = append(commits, Commit{Hash: "abc", Message: msg, Date: "2024-01-01"})
	}

	segments, _, _ := BuildSegments(commits, DefaultOptions())

	released := 0
	for _, s := range segments {
		if s.Released {
			released++
		}
	}
	assert.Equal(t, bumps, released)
}

func TestBuildSegments_Empty(t *testing.T) {
	segments, skipped, warnings := BuildSegments(nil, DefaultOptions())
	assert.Empty(t, segments)
	assert.Zero(t, skipped)
	assert.Empty(t, warnings)
}
