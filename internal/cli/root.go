package cli

import (
	"errors"
	"io"
	"log"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	GroupGenerate      = "generate"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

var (
	configPathFlag string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Generate release notes from plain-text git history",
	Long: `relnotes turns a plain-text commit log into release notes grouped by
version and change category.

The log is one commit per line, newest first, as printed by:
  git log --pretty=format:'%h - %s (%ad)' --date=short

Commits are sorted into Features, Bug Fixes, Improvements, Documentation,
Maintenance and Other by their conventional-commit prefix. A commit that
mentions a version (v1.2.3, "version to 1.2.3", "bump ... version ... to 1.2.3")
closes the current release.

Running relnotes without a subcommand is the same as 'relnotes generate'.

Source: https://github.com/ariel-frischer/relnotes`,
	Example: `  # Generate release_notes.md from release_notes_raw.txt
  relnotes

  # Explicit paths
  relnotes generate --input history.txt --output NOTES.md

  # Fail in CI when the committed notes are stale
  relnotes check

  # Browse the notes in the terminal
  relnotes show
  relnotes show v1.4.0`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebugLog(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, &generateOptions{})
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Generate:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspect:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Project config file (default: .relnotes/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug trace to stderr")
}

// Execute runs the root command and reports errors that were not already
// printed by a subcommand.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintError(rootCmd.ErrOrStderr(), toCLIError(err))
	}
	return err
}

// toCLIError converts err to a CLIError, keeping an existing one.
func toCLIError(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}
	return clierrors.Wrap(err, clierrors.Runtime)
}

// configureDebugLog routes the standard logger to w when --debug is set.
func configureDebugLog(w io.Writer) {
	if debugFlag {
		log.SetOutput(w)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}
}

// debugf writes a debug trace line when --debug is set.
func debugf(format string, args ...interface{}) {
	if debugFlag {
		log.Printf("[relnotes] debug: "+format, args...)
	}
}
