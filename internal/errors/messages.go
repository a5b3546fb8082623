package errors

import "fmt"

// Common error messages for the relnotes CLI.
// These templates ensure consistent, actionable error messages.

// MissingInputFile creates an error for a commit log that does not exist.
func MissingInputFile(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("commit log not found: %s", path),
		"Export the log first: git log --pretty=format:'%h - %s (%ad)' --date=short > "+path,
		"Or point relnotes at another file: relnotes generate --input <path>",
		"Or set input_path in .relnotes/config.yml",
	)
}

// UnreadableInput creates an error for a commit log that exists but cannot be read.
func UnreadableInput(path string, err error) *CLIError {
	return WrapWithMessage(err, Input,
		fmt.Sprintf("cannot read commit log %s", path),
		"Check file permissions",
	)
}

// MissingOutputFile creates an error when check has nothing to compare against.
func MissingOutputFile(path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("release notes not found: %s", path),
		"Generate them first: relnotes generate",
	)
}

// InvalidFormat creates an error for an unsupported --format value.
func InvalidFormat(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid format: %s", provided),
		"relnotes generate --format <markdown|yaml>",
		"Use 'markdown' for a Markdown document or 'yaml' for structured output",
	)
}

// InvalidOrder creates an error for an unsupported --order value.
func InvalidOrder(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid input order: %s", provided),
		"relnotes generate --order <newest-first|oldest-first|auto>",
		"git log prints newest-first; use oldest-first only for reversed logs",
	)
}

// ConfigLoadFailed creates an error when configuration cannot be loaded.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .relnotes/config.yml for syntax errors",
		"Show the effective configuration with: relnotes config show",
	)
}

// WriteFailed creates an error when the release notes cannot be written.
func WriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("failed to write %s", path),
		"Check that the output directory exists and is writable",
	)
}
