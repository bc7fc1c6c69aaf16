package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/application/commands"
	"modlist.dev/cli/internal/application/ports"
	"modlist.dev/cli/internal/application/services"
)

// ExportFlags holds command-line flags for the export command
type ExportFlags struct {
	OutputPath string
	ModsDir    string
	Exclude    []string
	Atomic     bool
	JSON       bool
}

// NewExportCommand creates the export command
func NewExportCommand(container *CLIContainer) *cobra.Command {
	flags := &ExportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Collect the loaded components and publish the mod list",
		Long: `Collect the components found in the mods directory, drop the excluded ids,
and publish the sorted list at the output path.

This is what a host does once its initialization completes: the export
runs once in the background and the command waits for it to finish.

Examples:
  modlist export
  modlist export --output public/modlist.json --exclude minecraft --exclude neoforge
  modlist export --atomic=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, container, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output file (overrides configuration)")
	cmd.Flags().StringVar(&flags.ModsDir, "mods-dir", "", "Directory containing component manifests")
	cmd.Flags().StringArrayVar(&flags.Exclude, "exclude", nil, "Component id to leave out (repeatable)")
	cmd.Flags().BoolVar(&flags.Atomic, "atomic", true, "Replace the output with an atomic rename")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the result as JSON")

	return cmd
}

func runExport(cmd *cobra.Command, container *CLIContainer, flags *ExportFlags) error {
	config, err := loadConfiguration(cmd, container)
	if err != nil {
		return err
	}

	exportCmd := &commands.ExportCommand{
		OutputPath:  flags.OutputPath,
		ModsDir:     flags.ModsDir,
		ExcludedIDs: flags.Exclude,
	}
	if cmd.Flags().Changed("atomic") {
		atomic := flags.Atomic
		exportCmd.AtomicMove = &atomic
	}

	if failed, err := commands.Prepare(exportCmd); err != nil {
		if flags.JSON {
			printJSON(cmd.OutOrStdout(), failed)
		}
		return err
	}
	config = exportCmd.Apply(config)
	if err := container.ConfigRepo.Validate(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	service := services.NewExportService(container.NewSource(config.ModsDir), container.Publisher, config, container.Logger)

	task := service.OnInitializationComplete(cmd.Context())
	result, err := task.Wait(cmd.Context())
	if err != nil {
		if flags.JSON {
			printJSON(cmd.OutOrStdout(), commands.NewErrorResult(exportCmd, "Failed to write mod list", err))
		}
		return fmt.Errorf("export failed: %w", err)
	}

	if flags.JSON {
		return printJSON(cmd.OutOrStdout(), exportResult(exportCmd, config, result))
	}

	printExportSummary(cmd.OutOrStdout(), result)
	return nil
}

// exportResult wraps a finished run for --json output
func exportResult(exportCmd *commands.ExportCommand, config *ports.Configuration, result services.ExportResult) *commands.CommandResult {
	out := commands.NewSuccessResult(exportCmd, "Mod list written", result)
	out.ExecutionTime = result.Duration
	out.SetMetadata("mods_dir", config.ModsDir)
	out.SetMetadata("excluded_ids", config.ExcludedIDs)
	if result.Exported == 0 {
		out.AddWarning("no components were exported")
	}
	return out
}

func printExportSummary(w io.Writer, result services.ExportResult) {
	mode := "atomic rename"
	if !result.AtomicMove {
		mode = "replace"
	}

	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("✓ Mod list written"),
		fmt.Sprintf("  Output:   %s", result.OutputPath),
		fmt.Sprintf("  Exported: %d", result.Exported),
		fmt.Sprintf("  Excluded: %d", result.Excluded),
		mutedStyle.Render(fmt.Sprintf("  Mode:     %s, %s", mode, result.Duration.Round(time.Millisecond))),
	))
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
