package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// sampleLog is a newest-first log with one release and one follow-up commit.
var sampleLog = []string{
	"e5e5e5 - docs: update readme (2024-01-04)",
	"d4e5f6 - chore: release v1.0.0 (2024-01-03)",
	"c3c3c3 - fix(ui): adjust padding (2024-01-02)",
	"a1b2c3 - feat: add login (2024-01-01)",
}

const sampleMarkdown = "# Release Notes (Generated from Git History)\n" +
	"\n" +
	"Range: `a1b2c3` ... `e5e5e5`\n" +
	"\n" +
	"## Latest (Post-release) (2024-01-03)\n" +
	"\n" +
	"### Documentation\n" +
	"- update readme (e5e5e5)\n" +
	"\n" +
	"## v1.0.0 (2024-01-03)\n" +
	"\n" +
	"### Features\n" +
	"- add login (a1b2c3)\n" +
	"\n" +
	"### Bug Fixes\n" +
	"- adjust padding (c3c3c3)\n" +
	"\n" +
	"### Maintenance\n" +
	"- release v1.0.0 (d4e5f6)\n" +
	"\n"

func sampleNotes() *Notes {
	return Generate(sampleLog, DefaultOptions())
}

func TestRenderMarkdown(t *testing.T) {
	got, err := RenderMarkdownString(sampleNotes())
	require.NoError(t, err)
	assert.Equal(t, sampleMarkdown, got)
}

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	tests := map[string]struct {
		lines []string
	}{
		"no lines":        {lines: nil},
		"only malformed":  {lines: []string{"", "garbage", "zzz - nope (x)"}},
		"only main merge": {lines: []string{"aaa111 - Merge branch 'main' into dev (2024-02-01)"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := RenderMarkdownString(Generate(tt.lines, DefaultOptions()))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, Banner+"\n\nRange: `"))
			assert.NotContains(t, got, "## ")
		})
	}

	got, err := RenderMarkdownString(Generate(nil, DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, Banner+"\n\nRange: `` ... ``\n\n", got)
}

func TestRenderMarkdown_SkipsEmptySegments(t *testing.T) {
	n := &Notes{
		Segments: []Segment{
			{Label: "v0.1.0", Date: "2024-01-01", Changes: Changes{Features: {{Message: "a", Hash: "1"}}}},
			{Label: "v0.2.0", Date: "2024-01-02", Changes: Changes{}},
		},
	}

	got, err := RenderMarkdownString(n)
	require.NoError(t, err)
	assert.Contains(t, got, "## v0.1.0 (2024-01-01)")
	assert.NotContains(t, got, "v0.2.0")
}

func TestRenderVersionMarkdown(t *testing.T) {
	v, err := sampleNotes().GetVersion("v1.0.0")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, RenderVersionMarkdown(v, &b))

	assert.True(t, strings.HasPrefix(b.String(), "## v1.0.0 (2024-01-03)\n\n### Features\n"))
	assert.NotContains(t, b.String(), Banner)
}

func TestRenderYAML(t *testing.T) {
	got, err := RenderString(sampleNotes(), FormatYAML)
	require.NoError(t, err)

	var doc struct {
		Range struct {
			Oldest string `yaml:"oldest"`
			Newest string `yaml:"newest"`
		} `yaml:"range"`
		Versions []struct {
			Version string             `yaml:"version"`
			Date    string             `yaml:"date"`
			Changes map[string][]Entry `yaml:"changes"`
		} `yaml:"versions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))

	assert.Equal(t, "a1b2c3", doc.Range.Oldest)
	assert.Equal(t, "e5e5e5", doc.Range.Newest)
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, DefaultLatestLabel, doc.Versions[0].Version)
	assert.Equal(t, "v1.0.0", doc.Versions[1].Version)
	assert.Equal(t, "2024-01-03", doc.Versions[1].Date)
	assert.Equal(t, []Entry{{Message: "adjust padding", Hash: "c3c3c3"}}, doc.Versions[1].Changes["bug_fixes"])

	// Categories keep render order in the document.
	features := strings.Index(got, "features:")
	fixes := strings.Index(got, "bug_fixes:")
	maintenance := strings.Index(got, "maintenance:")
	assert.Less(t, features, fixes)
	assert.Less(t, fixes, maintenance)
}

func TestRenderYAML_Empty(t *testing.T) {
	got, err := RenderString(Generate(nil, DefaultOptions()), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, got, "versions: []")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Format
		wantErr  bool
	}{
		"empty":    {input: "", expected: FormatMarkdown},
		"markdown": {input: "markdown", expected: FormatMarkdown},
		"md alias": {input: "MD", expected: FormatMarkdown},
		"yaml":     {input: "yaml", expected: FormatYAML},
		"yml":      {input: "yml", expected: FormatYAML},
		"invalid":  {input: "html", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := RenderString(sampleNotes(), Format("pdf"))
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release_notes.md")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	require.NoError(t, WriteFile(path, sampleNotes(), FormatMarkdown))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleMarkdown, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed into place")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "notes.md")
	require.Error(t, WriteFile(path, sampleNotes(), FormatMarkdown))
}
