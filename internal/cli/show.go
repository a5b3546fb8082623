package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var (
	showFlags      generateOptions
	showPlainFlag  bool
	showRenderFlag bool
	showWidthFlag  int
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Show release notes in the terminal",
	Long: `Show release notes generated from the commit log in the terminal.

Without arguments every version is shown, newest first. Use a version argument
to see a single version. By default versions are shown with colored category
headers; --render displays the generated Markdown instead.`,
	Example: `  relnotes show              # All versions
  relnotes show v1.2.0       # One version
  relnotes show 1.2.0        # Same (v prefix optional)
  relnotes show --render     # Rendered Markdown
  relnotes show --plain      # No colors or icons`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.GroupID = GroupInspect
	rootCmd.AddCommand(showCmd)

	addPathFlags(showCmd, &showFlags)
	showCmd.Flags().StringVar(&showFlags.order, "order", "", "Input log order: newest-first | oldest-first | auto")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().BoolVar(&showRenderFlag, "render", false, "Render the generated Markdown")
	showCmd.Flags().IntVar(&showWidthFlag, "width", 0, "Wrap width (0 = terminal width)")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, &showFlags)
	if err != nil {
		return fail(cmd, err)
	}

	notes, err := loadNotes(s)
	if err != nil {
		return fail(cmd, err)
	}
	reportWarnings(cmd.ErrOrStderr(), notes)

	if len(args) == 1 {
		return showVersion(cmd, notes, args[0])
	}
	return showAll(cmd, notes)
}

func showAll(cmd *cobra.Command, notes *changelog.Notes) error {
	if showRenderFlag {
		md, err := changelog.RenderMarkdownString(notes)
		if err != nil {
			return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering release notes"))
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderMarkdown(md, showWidthFlag, showPlainFlag))
		return nil
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag, MaxWidth: showWidthFlag}
	return changelog.FormatNotes(notes, cmd.OutOrStdout(), opts)
}

func showVersion(cmd *cobra.Command, notes *changelog.Notes, version string) error {
	v, err := lookupVersion(cmd, notes, version)
	if err != nil {
		return err
	}

	if showRenderFlag {
		var b strings.Builder
		if err := changelog.RenderVersionMarkdown(v, &b); err != nil {
			return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "rendering version"))
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderMarkdown(b.String(), showWidthFlag, showPlainFlag))
		return nil
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag, MaxWidth: showWidthFlag}
	return changelog.FormatVersion(v, cmd.OutOrStdout(), opts)
}

// lookupVersion finds version in notes, listing the available versions on
// stderr when it does not exist.
func lookupVersion(cmd *cobra.Command, notes *changelog.Notes, version string) (*changelog.Segment, error) {
	v, err := notes.GetVersion(version)
	if err == nil {
		return v, nil
	}

	var notFound *changelog.VersionNotFoundError
	if !errors.As(err, &notFound) {
		return nil, fail(cmd, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
	fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
	for _, label := range notFound.AvailableVersions {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", label)
	}
	return nil, NewExitError(ExitInvalidArguments)
}
