package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/application/commands"
	"modlist.dev/cli/internal/application/services"
	"modlist.dev/cli/internal/core/snapshot"
)

// ListFlags holds command-line flags for the list command
type ListFlags struct {
	ModsDir string
	Exclude []string
	JSON    bool
}

// NewListCommand creates the list command
func NewListCommand(container *CLIContainer) *cobra.Command {
	flags := &ListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the mod list without publishing it",
		Long: `Collect and filter the components exactly like export does and print them.
Nothing is written to disk. With --json the exact document export would
publish is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, container, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ModsDir, "mods-dir", "", "Directory containing component manifests")
	cmd.Flags().StringArrayVar(&flags.Exclude, "exclude", nil, "Component id to leave out (repeatable)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the JSON document")

	return cmd
}

func runList(cmd *cobra.Command, container *CLIContainer, flags *ListFlags) error {
	config, err := loadConfiguration(cmd, container)
	if err != nil {
		return err
	}

	listCmd := &commands.ExportCommand{ModsDir: flags.ModsDir, ExcludedIDs: flags.Exclude}
	if _, err := commands.Prepare(listCmd); err != nil {
		return err
	}
	config = listCmd.Apply(config)

	service := services.NewExportService(container.NewSource(config.ModsDir), container.Publisher, config, container.Logger)
	snap, err := service.Preview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to collect components: %w", err)
	}

	out := cmd.OutOrStdout()
	if flags.JSON {
		data, err := snapshot.Encode(snap)
		if err != nil {
			return fmt.Errorf("failed to encode mod list: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Mods (%d)", snap.Len())))
	fmt.Fprintln(out, renderRecordTable(snap.Records()))
	return nil
}
