package cli

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configInitForce     bool
	configInitUser      bool
	configMigrateDryRun bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relnotes configuration",
	Long: `Manage relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RELNOTES_*)
  3. Project config (.relnotes/config.yml)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  relnotes config show

  # Create .relnotes/config.yml with all options documented
  relnotes config init`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the effective configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a documented config file",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

var configMigrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Convert .relnotes/config.json to YAML",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMigrate(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configMigrateCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write the user config instead of the project config")
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "Report what would be migrated without writing")
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPathFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return fail(cmd, clierrors.ConfigLoadFailed(err))
	}

	data, err := yaml.Marshal(map[string]interface{}{
		"input_path":       cfg.InputPath,
		"output_path":      cfg.OutputPath,
		"format":           cfg.Format,
		"input_order":      cfg.InputOrder,
		"seed_label":       cfg.SeedLabel,
		"unreleased_label": cfg.UnreleasedLabel,
		"latest_label":     cfg.LatestLabel,
		"default_branches": cfg.DefaultBranches,
	})
	if err != nil {
		return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "encoding configuration"))
	}

	sources := make([]string, len(cfg.Sources))
	for i, src := range cfg.Sources {
		sources[i] = string(src)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# sources: %s\n", strings.Join(sources, " < "))
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configInitUser {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return fail(cmd, clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory"))
		}
		path = userPath
	}

	if err := config.WriteDefaultConfig(path, configInitForce); err != nil {
		return fail(cmd, clierrors.Wrap(err, clierrors.Configuration))
	}
	output.PrintSuccess(cmd.OutOrStdout(), "Created "+path)
	return nil
}

func runConfigMigrate(cmd *cobra.Command) error {
	result, err := config.MigrateProjectConfig(configMigrateDryRun)
	if err != nil {
		return fail(cmd, clierrors.Wrap(err, clierrors.Configuration))
	}
	if result.Success {
		output.PrintSuccess(cmd.OutOrStdout(), result.Message)
	} else {
		output.PrintInfo(cmd.OutOrStdout(), result.Message)
	}
	return nil
}
