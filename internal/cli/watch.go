package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/watch"
	"github.com/spf13/cobra"
)

var watchFlags generateOptions

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate release notes whenever the commit log changes",
	Long: `Watch the commit log and regenerate the release notes on every change.

Each change reruns the whole pipeline and rewrites the output file; nothing
is carried over between runs. Press Ctrl+C to stop.`,
	Example: `  relnotes watch
  relnotes watch -i history.txt -o NOTES.md`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, &watchFlags)
	},
}

func init() {
	watchCmd.GroupID = GroupGenerate
	rootCmd.AddCommand(watchCmd)

	addGenerateFlags(watchCmd, &watchFlags)
}

func runWatch(cmd *cobra.Command, opts *generateOptions) error {
	s, err := resolveSettings(cmd, opts)
	if err != nil {
		return fail(cmd, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() error {
		return regenerateOnce(cmd, s)
	}

	// The first run may fail because the log does not exist yet; keep watching.
	if err := regenerate(); err != nil {
		clierrors.FprintError(cmd.ErrOrStderr(), toCLIError(err))
	}
	output.PrintInfo(cmd.OutOrStdout(), fmt.Sprintf("Watching %s (Ctrl+C to stop)", s.inputPath))

	w := watch.New(s.inputPath, regenerate, watch.WithErrorHandler(func(err error) {
		clierrors.FprintError(cmd.ErrOrStderr(), toCLIError(err))
	}))
	if err := w.Run(ctx); err != nil {
		return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "watching "+s.inputPath))
	}
	return nil
}

// regenerateOnce runs the pipeline and rewrites the output file.
func regenerateOnce(cmd *cobra.Command, s *settings) error {
	notes, err := loadNotes(s)
	if err != nil {
		return err
	}
	reportWarnings(cmd.ErrOrStderr(), notes)

	if err := changelog.WriteFile(s.outputPath, notes, s.format); err != nil {
		return clierrors.WriteFailed(s.outputPath, err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Regenerated %s (%s)", s.outputPath, changelog.FormatSummary(notes)))
	return nil
}
