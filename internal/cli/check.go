package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var checkFlags generateOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the release notes match the commit log",
	Long: `Verify that the release notes file is in sync with the commit log.

This command compares the current output file with what 'relnotes generate'
would produce. Returns exit code 0 if in sync, or exit code 1 with a useful
message if out of sync.`,
	Example: `  relnotes check
  relnotes check -i history.txt -o NOTES.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, &checkFlags)
	},
}

func init() {
	checkCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(checkCmd)

	addGenerateFlags(checkCmd, &checkFlags)
}

func runCheck(cmd *cobra.Command, opts *generateOptions) error {
	s, err := resolveSettings(cmd, opts)
	if err != nil {
		return fail(cmd, err)
	}

	notes, err := loadNotes(s)
	if err != nil {
		return fail(cmd, err)
	}

	expected, err := changelog.RenderString(notes, s.format)
	if err != nil {
		return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering expected release notes"))
	}

	actual, err := os.ReadFile(s.outputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(cmd, clierrors.MissingOutputFile(s.outputPath))
		}
		return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Input, "reading "+s.outputPath))
	}

	if !bytes.Equal([]byte(expected), actual) {
		return reportSyncMismatch(cmd, s)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is in sync with %s", s.outputPath, s.inputPath))
	return nil
}

func reportSyncMismatch(cmd *cobra.Command, s *settings) error {
	output.PrintFailure(cmd.OutOrStdout(), fmt.Sprintf("%s is out of sync with %s", s.outputPath, s.inputPath))
	fmt.Fprintf(cmd.OutOrStdout(), "\nTo fix, run:\n  relnotes generate -i %s -o %s\n", s.inputPath, s.outputPath)
	return NewExitError(ExitFailed)
}
