package cli

import (
	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

var (
	extractFlags      generateOptions
	extractLatestFlag bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [version]",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

This command outputs the section of the release notes for one version, in a
format suitable for GitHub release notes. The output is written to stdout.
With --latest the newest version closed by a version bump is used.`,
	Example: `  relnotes extract v1.2.0     # Notes for version 1.2.0
  relnotes extract 1.2.0      # Same (v prefix optional)
  relnotes extract --latest   # Newest tagged release`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args)
	},
}

func init() {
	extractCmd.GroupID = GroupInspect
	rootCmd.AddCommand(extractCmd)

	addPathFlags(extractCmd, &extractFlags)
	extractCmd.Flags().StringVar(&extractFlags.order, "order", "", "Input log order: newest-first | oldest-first | auto")
	extractCmd.Flags().BoolVar(&extractLatestFlag, "latest", false, "Extract the newest released version")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !extractLatestFlag {
		return fail(cmd, clierrors.NewArgumentErrorWithUsage(
			"a version or --latest is required",
			"relnotes extract <version> | relnotes extract --latest",
			"List available versions with: relnotes show --plain",
		))
	}

	s, err := resolveSettings(cmd, &extractFlags)
	if err != nil {
		return fail(cmd, err)
	}

	notes, err := loadNotes(s)
	if err != nil {
		return fail(cmd, err)
	}

	var v *changelog.Segment
	if len(args) == 1 {
		if v, err = lookupVersion(cmd, notes, args[0]); err != nil {
			return err
		}
	} else if v = notes.GetLatestRelease(); v == nil {
		return fail(cmd, clierrors.NewInputError(
			"no version bump found in the commit log",
			"Release commits must mention a version, e.g. 'chore: release v1.2.0'",
		))
	}

	return changelog.RenderVersionMarkdown(v, cmd.OutOrStdout())
}
