package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"with v prefix":      {input: "v1.2.3", expected: "1.2.3"},
		"without v prefix":   {input: "1.2.3", expected: "1.2.3"},
		"uppercase V":        {input: "V1.2.3", expected: "1.2.3"},
		"placeholder label":  {input: "Unreleased / Next", expected: "unreleased / next"},
		"surrounding spaces": {input: "  v2.0.0 ", expected: "2.0.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeVersion(tt.input))
		})
	}
}

func TestGetVersion(t *testing.T) {
	n := sampleNotes()

	tests := map[string]struct {
		version  string
		expected string
		wantErr  bool
	}{
		"exact label":          {version: "v1.0.0", expected: "v1.0.0"},
		"without v":            {version: "1.0.0", expected: "v1.0.0"},
		"placeholder any case": {version: "latest (post-release)", expected: DefaultLatestLabel},
		"missing":              {version: "9.9.9", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := n.GetVersion(tt.version)
			if tt.wantErr {
				var notFound *VersionNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, []string{DefaultLatestLabel, "v1.0.0"}, notFound.AvailableVersions)
				assert.Contains(t, err.Error(), "9.9.9")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Label)
		})
	}
}

func TestGetLatestRelease(t *testing.T) {
	latest := sampleNotes().GetLatestRelease()
	require.NotNil(t, latest)
	assert.Equal(t, "v1.0.0", latest.Label)

	unreleased := Generate([]string{"aaa111 - feat: x (2024-01-01)"}, DefaultOptions())
	assert.Nil(t, unreleased.GetLatestRelease())
}

func TestNotesCounts(t *testing.T) {
	n := sampleNotes()
	assert.Equal(t, 4, n.EntryCount())
	assert.Equal(t, 1, n.ReleaseCount())
	assert.Equal(t, []string{DefaultLatestLabel, "v1.0.0"}, n.ListVersions())
}
