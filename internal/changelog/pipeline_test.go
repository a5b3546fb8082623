package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LoginReleaseScenario(t *testing.T) {
	// The log is listed oldest-first, so the order has to be detected.
	lines := []string{
		"a1b2c3 - feat: add login (2024-01-01)",
		"d4e5f6 - v1.0.0 release (2024-01-02)",
	}

	n := Generate(lines, Options{Order: OrderAuto})

	require.Len(t, n.Segments, 1)
	assert.Equal(t, "v1.0.0", n.Segments[0].Label)

	md, err := RenderMarkdownString(n)
	require.NoError(t, err)
	assert.Contains(t, md, "### Features\n- add login (a1b2c3)\n")
	assert.Empty(t, n.Warnings)
}

func TestGenerate_WarnsOnAscendingLog(t *testing.T) {
	lines := []string{
		"a1b2c3 - feat: add login (2024-01-01)",
		"d4e5f6 - v1.0.0 release (2024-01-02)",
	}

	n := Generate(lines, DefaultOptions())

	require.Len(t, n.Warnings, 1)
	assert.Equal(t, WarnSuspiciousOrder, n.Warnings[0].Kind)
	assert.Equal(t, "d4e5f6", n.OldestHash)
	assert.Equal(t, "a1b2c3", n.NewestHash)
}

func TestGenerate_EveryKeptRecordAppearsOnce(t *testing.T) {
	var lines []string
	for i := 40; i > 0; i-- {
		msg := []string{"feat: f", "fix: b", "docs: d", "refactor: r", "ci: c", "misc"}[i%6]
		switch {
		case i%9 == 0:
			msg = fmt.Sprintf("chore: release v0.%d.0", i/9)
		case i%11 == 0:
			msg = "Merge branch 'main' into dev"
		}
		lines = append(lines, fmt.Sprintf("%06x - %s (2024-01-%02d)", 0xa00000+i, msg, (i%28)+1))
		if i%5 == 0 {
			lines = append(lines, "malformed line")
		}
	}

	n := Generate(lines, DefaultOptions())
	md, err := RenderMarkdownString(n)
	require.NoError(t, err)

	assert.Equal(t, 40, n.Parsed)
	assert.Equal(t, 8, n.Dropped)
	merges := 0
	for i := 40; i > 0; i-- {
		hash := fmt.Sprintf("%06x", 0xa00000+i)
		bullet := "(" + hash + ")\n"
		if i%11 == 0 && i%9 != 0 {
			merges++
			assert.NotContains(t, md, bullet, hash)
			continue
		}
		assert.Equal(t, 1, strings.Count(md, bullet), hash)
	}
	assert.Equal(t, merges, n.Skipped)
	assert.Equal(t, n.Parsed-n.Skipped, n.EntryCount())
}

func TestGenerate_Idempotent(t *testing.T) {
	first, err := RenderMarkdownString(Generate(sampleLog, DefaultOptions()))
	require.NoError(t, err)
	second, err := RenderMarkdownString(Generate(sampleLog, DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstYAML, err := RenderString(Generate(sampleLog, DefaultOptions()), FormatYAML)
	require.NoError(t, err)
	secondYAML, err := RenderString(Generate(sampleLog, DefaultOptions()), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, firstYAML, secondYAML)
}

func TestGenerateFromReader(t *testing.T) {
	n, err := GenerateFromReader(strings.NewReader(strings.Join(sampleLog, "\n")), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, n.Parsed)
	assert.Equal(t, "a1b2c3", n.OldestHash)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "release_notes_raw.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(sampleLog, "\n")+"\n"), 0o644))

	n, err := Load(path, DefaultOptions())
	require.NoError(t, err)

	md, err := RenderMarkdownString(n)
	require.NoError(t, err)
	assert.Equal(t, sampleMarkdown, md)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
