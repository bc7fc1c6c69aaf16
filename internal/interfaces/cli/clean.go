package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"modlist.dev/cli/internal/infrastructure/publish"
)

// CleanFlags holds command-line flags for the clean command
type CleanFlags struct {
	OutputPath string
	OlderThan  time.Duration
	DryRun     bool
}

// NewCleanCommand creates the clean command
func NewCleanCommand(container *CLIContainer) *cobra.Command {
	flags := &CleanFlags{}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove temporary files left by interrupted exports",
		Long: `Remove leftover temporary files from the output directory. Only files
named like the exporter's temporary files (32 hex characters plus .json)
and older than --older-than are removed. The output file is never touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, container, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output file whose directory is cleaned (overrides configuration)")
	cmd.Flags().DurationVar(&flags.OlderThan, "older-than", time.Hour, "Only remove files older than this")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "List the files without removing them")

	return cmd
}

func runClean(cmd *cobra.Command, container *CLIContainer, flags *CleanFlags) error {
	if flags.OlderThan < 0 {
		return fmt.Errorf("--older-than cannot be negative")
	}

	config, err := loadConfiguration(cmd, container)
	if err != nil {
		return err
	}

	target := config.OutputPath
	if flags.OutputPath != "" {
		target = flags.OutputPath
	}

	removed, err := publish.Sweep(target, publish.SweepOptions{
		OlderThan: flags.OlderThan,
		DryRun:    flags.DryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to clean: %w", err)
	}

	container.Logger.LogDebug("Swept temporary files", map[string]interface{}{
		"target":  target,
		"count":   len(removed),
		"dry_run": flags.DryRun,
	})

	out := cmd.OutOrStdout()
	verb := "Removed"
	if flags.DryRun {
		verb = "Would remove"
	}
	for _, path := range removed {
		fmt.Fprintf(out, "%s %s\n", verb, path)
	}
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%s %d temporary file(s)", verb, len(removed))))

	return nil
}
