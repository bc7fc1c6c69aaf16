package cli

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/application/services"
	"modlist.dev/cli/internal/core/component"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	ConfigRepo    ports.ConfigurationRepository
	Publisher     services.SnapshotPublisher
	Logger        ports.LoggingGateway
	NewSource     func(modsDir string) component.Source
	MainContainer interface{} // Will be set to *di.Container, avoiding circular import
}

// NewRootCommand RootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "modlist",
		Short: "Mod list exporter - publish the loaded components as JSON",
		Long: `modlist collects the components (mods) loaded by a host runtime, drops the
configured exclusions, and publishes the sorted list as pretty-printed JSON.

The file is replaced atomically, so status pages and launchers reading it
never observe a partially written document.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigurationOverrides(cmd, container); err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}

			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.config/modlist/config.json)")

	rootCmd.AddCommand(NewExportCommand(container))
	rootCmd.AddCommand(NewListCommand(container))
	rootCmd.AddCommand(NewViewCommand(container))
	rootCmd.AddCommand(NewCleanCommand(container))
	rootCmd.AddCommand(NewConfigCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides applies configuration overrides from command line flags
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	mainContainer, ok := container.MainContainer.(interface {
		UseConfigFile(string) error
		ApplyLogLevel(string) error
	})
	if !ok {
		// Silently continue if container doesn't support overrides
		return nil
	}

	if cmd.Flags().Changed("config") {
		path, _ := cmd.Flags().GetString("config")
		if err := mainContainer.UseConfigFile(path); err != nil {
			return fmt.Errorf("failed to use config file: %w", err)
		}
	}

	if debugEnabled(cmd) {
		if err := mainContainer.ApplyLogLevel(string(ports.LogLevelDebug)); err != nil {
			return err
		}
	}

	return nil
}

// loadConfiguration loads the configuration and applies its log level
// unless --debug already raised it
func loadConfiguration(cmd *cobra.Command, container *CLIContainer) (*ports.Configuration, error) {
	config, err := container.ConfigRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if debugEnabled(cmd) {
		container.Logger.SetLogLevel(ports.LogLevelDebug)
	} else if level, ok := ports.ParseLogLevel(config.LogLevel); ok {
		container.Logger.SetLogLevel(level)
	}

	return config, nil
}

func debugEnabled(cmd *cobra.Command) bool {
	enabled, _ := cmd.Flags().GetBool("debug")
	return enabled
}

// Execute adds all child commands to the root command and runs it with ctx
func Execute(ctx context.Context, container *CLIContainer) error {
	return NewRootCommand(container).ExecuteContext(ctx)
}
