package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var generateFlags generateOptions

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate release notes from a commit log",
	Long: `Generate release notes from a plain-text commit log.

The log is read from input_path (default release_notes_raw.txt) and the
notes are written to output_path (default release_notes.md). Lines that do
not look like "<hash> - <message> (<date>)" are ignored.

The output is idempotent - running generate twice on the same log produces
identical files.`,
	Example: `  relnotes generate
  relnotes generate -i history.txt -o NOTES.md
  relnotes generate --format yaml -o notes.yaml
  relnotes generate --stdout | less`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, &generateFlags)
	},
}

func init() {
	generateCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(generateCmd)

	addGenerateFlags(generateCmd, &generateFlags)
	generateCmd.Flags().BoolVar(&generateFlags.stdout, "stdout", false, "Write to stdout instead of the output file")
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	s, err := resolveSettings(cmd, opts)
	if err != nil {
		return fail(cmd, err)
	}

	notes, err := loadNotes(s)
	if err != nil {
		return fail(cmd, err)
	}
	reportWarnings(cmd.ErrOrStderr(), notes)

	if opts.stdout {
		if err := changelog.Render(notes, s.format, cmd.OutOrStdout()); err != nil {
			return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering release notes"))
		}
		return nil
	}

	return writeNotes(cmd, s, notes)
}

// writeNotes writes notes to the configured output file and reports the result.
func writeNotes(cmd *cobra.Command, s *settings, notes *changelog.Notes) error {
	if err := changelog.WriteFile(s.outputPath, notes, s.format); err != nil {
		return fail(cmd, clierrors.WriteFailed(s.outputPath, err))
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s → %s", s.inputPath, s.outputPath))
	output.PrintInfo(cmd.OutOrStdout(), "  "+changelog.FormatSummary(notes))
	return nil
}
