package config

import "github.com/ariel-frischer/relnotes/internal/changelog"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnotes Configuration
# See 'relnotes config -h' for commands

# Files
input_path: release_notes_raw.txt     # Commit log: "<hash> - <message> (<date>)" per line
output_path: release_notes.md         # Generated release notes
format: markdown                      # Output format: markdown | yaml

# Log direction
input_order: newest-first             # newest-first (git log default) | oldest-first | auto

# Segment labels
seed_label: "Baseline"                # Changes before the first version bump
unreleased_label: "Unreleased / Next" # Segment after a bump, kept if the next bump has no version
latest_label: "Latest (Post-release)" # Changes after the last version bump

# Merge commits of these branches are dropped as noise
default_branches:
  - main
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"input_path":       "release_notes_raw.txt",
		"output_path":      "release_notes.md",
		"format":           string(changelog.FormatMarkdown),
		"input_order":      string(changelog.NewestFirst),
		"seed_label":       changelog.DefaultSeedLabel,
		"unreleased_label": changelog.DefaultUnreleasedLabel,
		"latest_label":     changelog.DefaultLatestLabel,
		"default_branches": []string{"main"},
	}
}
