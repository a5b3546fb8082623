package cli

import (
	"errors"
	"io"
	"io/fs"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

// generateOptions holds per-command overrides of the configuration.
// Empty fields fall back to the loaded config.
type generateOptions struct {
	input  string
	output string
	format string
	order  string
	stdout bool
}

// addPathFlags registers --input and --output on cmd.
func addPathFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Commit log to read (default from config: release_notes_raw.txt)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Release notes file (default from config: release_notes.md)")
}

// addGenerateFlags registers the flags shared by generate, check and watch.
func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	addPathFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: markdown | yaml")
	cmd.Flags().StringVar(&opts.order, "order", "", "Input log order: newest-first | oldest-first | auto")
}

// settings is the resolved configuration for one run.
type settings struct {
	inputPath  string
	outputPath string
	format     changelog.Format
	pipeline   changelog.Options
}

// resolveSettings loads the configuration and applies flag overrides.
func resolveSettings(cmd *cobra.Command, opts *generateOptions) (*settings, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPathFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}
	debugf("config loaded from %v", cfg.Sources)

	if opts.input != "" {
		cfg.InputPath = opts.input
	}
	if opts.output != "" {
		cfg.OutputPath = opts.output
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.order != "" {
		cfg.InputOrder = opts.order
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, clierrors.InvalidFormat(cfg.Format)
	}
	pipeline, err := cfg.ChangelogOptions()
	if err != nil {
		return nil, clierrors.InvalidOrder(cfg.InputOrder)
	}

	return &settings{
		inputPath:  cfg.InputPath,
		outputPath: cfg.OutputPath,
		format:     format,
		pipeline:   pipeline,
	}, nil
}

// loadNotes runs the pipeline over the configured input file.
func loadNotes(s *settings) (*changelog.Notes, error) {
	notes, err := changelog.Load(s.inputPath, s.pipeline)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, clierrors.MissingInputFile(s.inputPath)
		}
		return nil, clierrors.UnreadableInput(s.inputPath, err)
	}
	debugf("%s: %s, %d lines dropped", s.inputPath, changelog.FormatSummary(notes), notes.Dropped)
	return notes, nil
}

// reportWarnings prints recoverable pipeline conditions to w.
func reportWarnings(w io.Writer, notes *changelog.Notes) {
	for _, warning := range notes.Warnings {
		output.PrintWarning(w, warning.String())
	}
}

// exitCodeFor returns the exit code matching a CLIError category.
func exitCodeFor(err error) int {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailed
	}
	switch cliErr.Category {
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	case clierrors.Input:
		return ExitMissingInput
	default:
		return ExitFailed
	}
}

// fail prints err as a CLIError and returns an ExitError with the matching code.
func fail(cmd *cobra.Command, err error) error {
	clierrors.FprintError(cmd.ErrOrStderr(), toCLIError(err))
	return NewExitError(exitCodeFor(err))
}
