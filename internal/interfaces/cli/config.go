package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/application/ports"
)

// NewConfigCommand creates the config command
func NewConfigCommand(container *CLIContainer) *cobra.Command {
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage configuration settings for modlist.

Values are read from the configuration file and MODLIST_* environment
variables; the environment wins.`,
	}

	configCmd.AddCommand(NewConfigShowCommand(container))
	configCmd.AddCommand(NewConfigPathCommand(container))
	configCmd.AddCommand(NewConfigInitCommand(container))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand
func NewConfigShowCommand(container *CLIContainer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := container.ConfigRepo.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), config)
			}

			printConfig(cmd.OutOrStdout(), config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the configuration as JSON")
	return cmd
}

func printConfig(w io.Writer, config *ports.Configuration) {
	excluded := "(none)"
	if len(config.ExcludedIDs) > 0 {
		excluded = strings.Join(config.ExcludedIDs, ", ")
	}

	fmt.Fprintln(w, titleStyle.Render("Current Configuration:"))
	fmt.Fprintf(w, "Output Path: %s\n", config.OutputPath)
	fmt.Fprintf(w, "Atomic Move: %t\n", config.AtomicMove)
	fmt.Fprintf(w, "Mods Dir: %s\n", config.ModsDir)
	fmt.Fprintf(w, "Excluded IDs: %s\n", excluded)
	fmt.Fprintf(w, "Log Level: %s\n", config.LogLevel)
}

// NewConfigPathCommand creates the path subcommand
func NewConfigPathCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := container.ConfigRepo.GetConfigPath()
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file path: %s\n", path)
			return nil
		},
	}
}

// NewConfigInitCommand creates the init subcommand
func NewConfigInitCommand(container *CLIContainer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := container.ConfigRepo.GetConfigPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check configuration file: %w", err)
			}

			if err := container.ConfigRepo.Save(container.ConfigRepo.LoadDefault()); err != nil {
				return fmt.Errorf("failed to write configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Configuration written to"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
